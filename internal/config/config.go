package config

import (
	"log"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type (
	Config struct {
		HTTP
		Database
		OpenLibrary
		Covers
		Tasks
		UI
		Global
	}

	HTTP struct {
		Port int32
		Host string
	}
	Database struct {
		Driver   string // "postgres" (default) or "sqlite"
		Host     string
		Port     string
		User     string
		Password string
		Name     string
		Path     string // sqlite database file, used when Driver is "sqlite"
	}
	OpenLibrary struct {
		BaseURL   string
		CoversURL string
	}
	Covers struct {
		CacheTTL     time.Duration
		WarmSchedule string // Cron format: "0 * * * *" = hourly; empty disables
	}
	Tasks struct {
		Enabled         bool
		DBPath          string
		Workers         int
		ReleaseAfter    time.Duration
		CleanupInterval time.Duration
	}
	UI struct {
		TemplatesPath string
		StaticPath    string
		ListTitle     string
	}
	Global struct {
		ShutdownTimeoutInSeconds int
	}
)

func NewConfig() *Config {
	// Optional .env file, same keys as the environment.
	if err := godotenv.Load(); err == nil {
		log.Printf("Loaded configuration from .env")
	}

	v := viper.New()
	v.AutomaticEnv()
	v.SetDefault("port", 3000)
	v.SetDefault("host", "0.0.0.0")
	v.SetDefault("shutdown_timeout_in_seconds", 2)

	v.SetDefault("db_driver", "postgres")
	v.SetDefault("db_host", "localhost")
	v.SetDefault("db_port", "5432")
	v.SetDefault("db_user", "postgres")
	v.SetDefault("db_password", "")
	v.SetDefault("db_name", "books")
	v.SetDefault("db_path", "./books.db")

	v.SetDefault("templates_path", "./templates")
	v.SetDefault("static_path", "./static")
	v.SetDefault("list_title", "My Book Collection")

	v.SetDefault("openlibrary_base_url", "https://openlibrary.org")
	v.SetDefault("openlibrary_covers_url", "https://covers.openlibrary.org")
	v.SetDefault("cover_cache_ttl", "1h")
	v.SetDefault("cover_warm_schedule", "")

	v.SetDefault("tasks_enabled", true)
	v.SetDefault("tasks_db_path", "./books-tasks.db")
	v.SetDefault("task_workers", 2)
	v.SetDefault("task_release_after", "15m")
	v.SetDefault("task_cleanup_interval", "1h")

	return &Config{
		HTTP: HTTP{
			Port: v.GetInt32("PORT"),
			Host: v.GetString("HOST"),
		},
		Database: Database{
			Driver:   v.GetString("DB_DRIVER"),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASSWORD"),
			Name:     v.GetString("DB_NAME"),
			Path:     v.GetString("DB_PATH"),
		},
		OpenLibrary: OpenLibrary{
			BaseURL:   v.GetString("OPENLIBRARY_BASE_URL"),
			CoversURL: v.GetString("OPENLIBRARY_COVERS_URL"),
		},
		Covers: Covers{
			CacheTTL:     v.GetDuration("COVER_CACHE_TTL"),
			WarmSchedule: v.GetString("COVER_WARM_SCHEDULE"),
		},
		Tasks: Tasks{
			Enabled:         v.GetBool("TASKS_ENABLED"),
			DBPath:          v.GetString("TASKS_DB_PATH"),
			Workers:         v.GetInt("TASK_WORKERS"),
			ReleaseAfter:    v.GetDuration("TASK_RELEASE_AFTER"),
			CleanupInterval: v.GetDuration("TASK_CLEANUP_INTERVAL"),
		},
		UI: UI{
			TemplatesPath: v.GetString("TEMPLATES_PATH"),
			StaticPath:    v.GetString("STATIC_PATH"),
			ListTitle:     v.GetString("LIST_TITLE"),
		},
		Global: Global{
			ShutdownTimeoutInSeconds: v.GetInt("SHUTDOWN_TIMEOUT_IN_SECONDS"),
		},
	}
}
