package entrypoint

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/robfig/cron/v3"

	"github.com/Anusha-Pandit/Books-Log/internal/config"
	"github.com/Anusha-Pandit/Books-Log/internal/covers"
	"github.com/Anusha-Pandit/Books-Log/internal/database"
	http_controllers "github.com/Anusha-Pandit/Books-Log/internal/http"
	"github.com/Anusha-Pandit/Books-Log/internal/metadata"
	"github.com/Anusha-Pandit/Books-Log/internal/tasks"
)

// ShutdownFunc is called during graceful shutdown to clean up resources.
type ShutdownFunc func(ctx context.Context)

func Serve(router *gin.Engine, cfg *config.Config, onShutdown ShutdownFunc) {
	timeout := time.Duration(cfg.Global.ShutdownTimeoutInSeconds) * time.Second

	srv := &http.Server{
		Addr:    fmt.Sprintf("%s:%d", cfg.HTTP.Host, cfg.HTTP.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Server running on http://%s:%d", cfg.HTTP.Host, cfg.HTTP.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("listen: %s", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Printf("Shutdown Server, waiting %v before killing", timeout)

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	if onShutdown != nil {
		onShutdown(ctx)
	}

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Server Shutdown:", err)
	}

	log.Println("Server exiting")
}

func Run(cfg *config.Config, version string) {
	log.Printf("Starting Books-Log v%s", version)

	db, err := database.New(cfg.Database)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}
	defer func() {
		if err := db.Close(); err != nil {
			log.Printf("Error closing database: %v", err)
		}
	}()

	openLibrary := metadata.NewOpenLibraryClient(cfg.OpenLibrary.BaseURL, cfg.OpenLibrary.CoversURL)
	coverService := covers.NewService(openLibrary, cfg.Covers.CacheTTL)

	// Task queue for background cover warming after writes.
	var taskClient *tasks.Client
	var taskCtxCancel context.CancelFunc
	if cfg.Tasks.Enabled {
		taskClient, err = tasks.NewClient(cfg.Tasks)
		if err != nil {
			log.Fatalf("Failed to initialize task queue: %v", err)
		}
		defer func() {
			if err := taskClient.Close(); err != nil {
				log.Printf("Error closing task client: %v", err)
			}
		}()

		taskClient.Register(tasks.NewCoverWarmQueue(coverService))

		var taskCtx context.Context
		taskCtx, taskCtxCancel = context.WithCancel(context.Background())
		go taskClient.Start(taskCtx)
	}

	// Scheduled full warm: refresh every book's cover off the request path
	// and prune stale cache entries.
	var scheduler *cron.Cron
	if cfg.Covers.WarmSchedule != "" {
		scheduler = cron.New()
		if _, err := scheduler.AddFunc(cfg.Covers.WarmSchedule, func() {
			warmAllCovers(db, coverService)
		}); err != nil {
			log.Fatalf("Invalid cover warm schedule %q: %v", cfg.Covers.WarmSchedule, err)
		}
		scheduler.Start()
		log.Printf("Cover warm scheduled: %s", cfg.Covers.WarmSchedule)
	}

	routerCfg := http_controllers.RouterConfig{
		Store:         db,
		Covers:        coverService,
		CoverCache:    coverService,
		Tasks:         taskClient,
		Database:      db,
		TemplatesPath: cfg.UI.TemplatesPath,
		StaticPath:    cfg.UI.StaticPath,
		ListTitle:     cfg.UI.ListTitle,
		Version:       version,
	}

	router := http_controllers.NewRouter(routerCfg)

	onShutdown := func(ctx context.Context) {
		if scheduler != nil {
			scheduler.Stop()
		}
		if taskClient != nil && taskCtxCancel != nil {
			taskClient.Stop(ctx)
			taskCtxCancel()
		}
	}

	Serve(router, cfg, onShutdown)
}

func warmAllCovers(db *database.Database, coverService *covers.Service) {
	books, err := db.ListBooks()
	if err != nil {
		log.Printf("WARNING: cover warm: list books: %v", err)
		return
	}
	for _, book := range books {
		coverService.Warm(context.Background(), book.Title)
	}
	pruned := coverService.Prune()
	log.Printf("Cover warm complete: %d books refreshed, %d stale entries pruned", len(books), pruned)
}
