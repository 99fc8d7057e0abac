package http

import (
	"context"

	"github.com/Anusha-Pandit/Books-Log/internal/entities"
)

// BookStore is the storage surface the handlers depend on.
type BookStore interface {
	ListBooks() ([]entities.Book, error)
	GetBook(id uint) (*entities.Book, error)
	CreateBook(book *entities.Book) error
	UpdateBook(id uint, title, author, description string, cover []byte) error
	DeleteBook(id uint) error
}

// CoverResolver resolves display cover URLs for book titles. An empty URL
// means no cover is available.
type CoverResolver interface {
	CoverURL(ctx context.Context, title string) string
}
