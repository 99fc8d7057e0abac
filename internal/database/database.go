package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/Anusha-Pandit/Books-Log/internal/config"
	"github.com/Anusha-Pandit/Books-Log/internal/entities"
)

// Connection pool limits. The pool is shared by all in-flight requests, so
// concurrency is bounded here rather than at the handler level.
const (
	maxOpenConns    = 25
	maxIdleConns    = 25
	connMaxLifetime = 5 * time.Minute
	pingTimeout     = 5 * time.Second
)

type Database struct {
	DB *gorm.DB
}

// New opens the configured database, tunes the connection pool and migrates
// the books table. Connectivity problems are logged rather than treated as
// fatal: the pool re-dials on the next query, so the server still comes up
// while the database is unreachable.
func New(cfg config.Database) (*Database, error) {
	dialector, err := dialectorFor(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger:               logger.Default.LogMode(logger.Warn),
		DisableAutomaticPing: true,
	})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("access connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(maxOpenConns)
	sqlDB.SetMaxIdleConns(maxIdleConns)
	sqlDB.SetConnMaxLifetime(connMaxLifetime)

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		log.Printf("WARNING: database unreachable, queries will fail until it recovers: %v", err)
	} else {
		log.Printf("Connected to %s database", driverName(cfg.Driver))
	}

	if err := db.AutoMigrate(&entities.Book{}); err != nil {
		log.Printf("WARNING: failed to migrate database: %v", err)
	}

	return &Database{DB: db}, nil
}

func dialectorFor(cfg config.Database) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "postgres":
		dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.Name)
		return postgres.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(cfg.Path), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

func driverName(driver string) string {
	if driver == "" {
		return "postgres"
	}
	return driver
}

// Ping probes the underlying connection pool.
func (d *Database) Ping(ctx context.Context) error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.PingContext(ctx)
}

func (d *Database) Close() error {
	sqlDB, err := d.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// ListBooks returns every book, ordered ascending by id.
func (d *Database) ListBooks() ([]entities.Book, error) {
	var books []entities.Book
	err := d.DB.Order("id ASC").Find(&books).Error
	return books, err
}

// GetBook returns the book with the given id, or gorm.ErrRecordNotFound.
func (d *Database) GetBook(id uint) (*entities.Book, error) {
	var book entities.Book
	if err := d.DB.First(&book, id).Error; err != nil {
		return nil, err
	}
	return &book, nil
}

func (d *Database) CreateBook(book *entities.Book) error {
	return d.DB.Create(book).Error
}

// UpdateBook rewrites title, author and description. The stored cover is
// replaced only when new bytes are supplied; a nil cover leaves the previous
// upload untouched.
func (d *Database) UpdateBook(id uint, title, author, description string, cover []byte) error {
	updates := map[string]any{
		"title":       title,
		"author":      author,
		"description": description,
	}
	if cover != nil {
		updates["cover"] = cover
	}
	return d.DB.Model(&entities.Book{}).Where("id = ?", id).Updates(updates).Error
}

// DeleteBook removes the row. Deleting an id that does not exist is not an
// error; a delete affecting zero rows counts as success.
func (d *Database) DeleteBook(id uint) error {
	return d.DB.Delete(&entities.Book{}, id).Error
}
