package http

import (
	"context"
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"github.com/Anusha-Pandit/Books-Log/internal/entities"
	"github.com/Anusha-Pandit/Books-Log/internal/tasks"
)

// BooksController serves the listing page, the add/edit forms and their
// mutating submissions.
type BooksController struct {
	store     BookStore
	covers    CoverResolver
	tasks     *tasks.Client
	listTitle string
}

func NewBooksController(store BookStore, covers CoverResolver, taskClient *tasks.Client, listTitle string) *BooksController {
	return &BooksController{
		store:     store,
		covers:    covers,
		tasks:     taskClient,
		listTitle: listTitle,
	}
}

// bookView pairs a stored book with its display cover URL for the listing
// template.
type bookView struct {
	entities.Book
	CoverURL string
}

// ListPage renders the collection.
// GET /
func (ctrl *BooksController) ListPage(c *gin.Context) {
	books, err := ctrl.store.ListBooks()
	if err != nil {
		log.Printf("Error fetching books: %v", err)
		c.String(http.StatusInternalServerError, "Internal Server Error")
		return
	}

	// One cover lookup per book, issued concurrently; results land at their
	// original index so the listing stays ordered by id. A failed lookup only
	// blanks that book's cover.
	views := make([]bookView, len(books))
	var wg sync.WaitGroup
	for i, book := range books {
		wg.Add(1)
		go func(i int, book entities.Book) {
			defer wg.Done()
			views[i] = bookView{
				Book:     book,
				CoverURL: ctrl.coverURL(c.Request.Context(), book.Title),
			}
		}(i, book)
	}
	wg.Wait()

	c.HTML(http.StatusOK, "index", gin.H{
		"ListTitle": ctrl.listTitle,
		"Books":     views,
	})
}

// NewPage renders the empty add-book form.
// GET /new
func (ctrl *BooksController) NewPage(c *gin.Context) {
	c.HTML(http.StatusOK, "book_form", gin.H{
		"Book":   nil,
		"IsEdit": false,
	})
}

// CreateBook inserts a book from the multipart form and redirects to the
// listing.
// POST /new
func (ctrl *BooksController) CreateBook(c *gin.Context) {
	cover, err := readCoverFile(c)
	if err != nil {
		log.Printf("Error reading cover upload: %v", err)
		c.String(http.StatusInternalServerError, "Error saving book to database")
		return
	}

	book := &entities.Book{
		Title:       c.PostForm("title"),
		Author:      c.PostForm("author"),
		Description: c.PostForm("description"),
		Cover:       cover,
	}
	if err := ctrl.store.CreateBook(book); err != nil {
		log.Printf("Error adding new book: %v", err)
		c.String(http.StatusInternalServerError, "Error saving book to database")
		return
	}

	ctrl.enqueueCoverWarm(book.ID, book.Title)
	c.Redirect(http.StatusFound, "/")
}

// EditPage renders the form prefilled with an existing book.
// GET /edit/:id
func (ctrl *BooksController) EditPage(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	book, err := ctrl.store.GetBook(id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.String(http.StatusNotFound, "Book not found")
			return
		}
		log.Printf("Error fetching book %d: %v", id, err)
		c.String(http.StatusInternalServerError, "Error fetching book from database")
		return
	}

	c.HTML(http.StatusOK, "book_form", gin.H{
		"Book":   book,
		"IsEdit": true,
	})
}

// UpdateBook applies the edit form. The cover is replaced only when a new
// file was uploaded.
// POST /edit/:id
func (ctrl *BooksController) UpdateBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	cover, err := readCoverFile(c)
	if err != nil {
		log.Printf("Error reading cover upload: %v", err)
		c.String(http.StatusInternalServerError, "Error updating book in database")
		return
	}

	title := c.PostForm("title")
	if err := ctrl.store.UpdateBook(id, title, c.PostForm("author"), c.PostForm("description"), cover); err != nil {
		log.Printf("Error updating book %d: %v", id, err)
		c.String(http.StatusInternalServerError, "Error updating book in database")
		return
	}

	ctrl.enqueueCoverWarm(id, title)
	c.Redirect(http.StatusFound, "/")
}

// DeleteBook removes a book and redirects to the listing.
// POST /delete/:id
func (ctrl *BooksController) DeleteBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := ctrl.store.DeleteBook(id); err != nil {
		log.Printf("Error deleting book %d: %v", id, err)
		c.String(http.StatusInternalServerError, "Error deleting book from database")
		return
	}

	c.Redirect(http.StatusFound, "/")
}

func (ctrl *BooksController) coverURL(ctx context.Context, title string) string {
	if ctrl.covers == nil {
		return ""
	}
	return ctrl.covers.CoverURL(ctx, title)
}

// enqueueCoverWarm schedules a background cover lookup after a write so the
// next listing render finds the URL already cached. Best effort only.
func (ctrl *BooksController) enqueueCoverWarm(bookID uint, title string) {
	if ctrl.tasks == nil || title == "" {
		return
	}
	if _, err := ctrl.tasks.Add(tasks.CoverWarmTask{BookID: bookID, Title: title}).Save(); err != nil {
		log.Printf("WARNING: failed to enqueue cover warm for book %d: %v", bookID, err)
	}
}
