package database

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/Anusha-Pandit/Books-Log/internal/config"
	"github.com/Anusha-Pandit/Books-Log/internal/entities"
)

func setupTestDB(t *testing.T) *Database {
	t.Helper()

	db, err := New(config.Database{
		Driver: "sqlite",
		Path:   filepath.Join(t.TempDir(), "test.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestNew_UnsupportedDriver(t *testing.T) {
	_, err := New(config.Database{Driver: "oracle"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported database driver")
}

func TestCreateAndListBooks(t *testing.T) {
	db := setupTestDB(t)

	first := &entities.Book{Title: "Dune", Author: "Frank Herbert", Description: "Desert planet"}
	second := &entities.Book{Title: "Neuromancer", Author: "William Gibson"}
	require.NoError(t, db.CreateBook(first))
	require.NoError(t, db.CreateBook(second))

	assert.NotZero(t, first.ID)
	assert.NotZero(t, second.ID)
	assert.NotEqual(t, first.ID, second.ID)

	books, err := db.ListBooks()
	require.NoError(t, err)
	require.Len(t, books, 2)
	assert.Equal(t, "Dune", books[0].Title)
	assert.Equal(t, "Frank Herbert", books[0].Author)
	assert.Equal(t, "Desert planet", books[0].Description)
	assert.Equal(t, "Neuromancer", books[1].Title)
}

func TestListBooks_OrderedByID(t *testing.T) {
	db := setupTestDB(t)

	for _, title := range []string{"C", "A", "B"} {
		require.NoError(t, db.CreateBook(&entities.Book{Title: title, Author: "Author"}))
	}

	// Editing a later row must not change the listing order.
	require.NoError(t, db.UpdateBook(1, "C edited", "Author", "", nil))

	books, err := db.ListBooks()
	require.NoError(t, err)
	require.Len(t, books, 3)
	for i := 1; i < len(books); i++ {
		assert.Less(t, books[i-1].ID, books[i].ID)
	}
	assert.Equal(t, "C edited", books[0].Title)
}

func TestGetBook(t *testing.T) {
	db := setupTestDB(t)

	book := &entities.Book{Title: "Dune", Author: "Frank Herbert"}
	require.NoError(t, db.CreateBook(book))

	got, err := db.GetBook(book.ID)
	require.NoError(t, err)
	assert.Equal(t, "Dune", got.Title)

	_, err = db.GetBook(999)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestUpdateBook_PartialCover(t *testing.T) {
	db := setupTestDB(t)

	original := []byte{0xFF, 0xD8, 0xFF, 0x01, 0x02}
	book := &entities.Book{Title: "Dune", Author: "Frank Herbert", Cover: original}
	require.NoError(t, db.CreateBook(book))

	t.Run("nil cover preserves the stored bytes", func(t *testing.T) {
		require.NoError(t, db.UpdateBook(book.ID, "Dune (revised)", "Frank Herbert", "New description", nil))

		got, err := db.GetBook(book.ID)
		require.NoError(t, err)
		assert.Equal(t, "Dune (revised)", got.Title)
		assert.Equal(t, "New description", got.Description)
		assert.Equal(t, original, got.Cover)
	})

	t.Run("new cover replaces the stored bytes", func(t *testing.T) {
		replacement := []byte{0x89, 0x50, 0x4E, 0x47}
		require.NoError(t, db.UpdateBook(book.ID, "Dune", "Frank Herbert", "", replacement))

		got, err := db.GetBook(book.ID)
		require.NoError(t, err)
		assert.Equal(t, replacement, got.Cover)
	})
}

func TestDeleteBook(t *testing.T) {
	db := setupTestDB(t)

	book := &entities.Book{Title: "Dune", Author: "Frank Herbert"}
	require.NoError(t, db.CreateBook(book))

	require.NoError(t, db.DeleteBook(book.ID))

	books, err := db.ListBooks()
	require.NoError(t, err)
	assert.Empty(t, books)

	// Deleting an id that never existed is not an error.
	assert.NoError(t, db.DeleteBook(999))
}
