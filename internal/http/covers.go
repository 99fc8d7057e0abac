package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// CoversController serves cover images uploaded through the add/edit form.
type CoversController struct {
	store BookStore
}

func NewCoversController(store BookStore) *CoversController {
	return &CoversController{store: store}
}

// GetCover serves the stored cover blob for a book.
// GET /covers/:id
func (cc *CoversController) GetCover(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	book, err := cc.store.GetBook(id)
	if err != nil {
		c.Status(http.StatusNotFound)
		return
	}
	if len(book.Cover) == 0 {
		c.Status(http.StatusNotFound)
		return
	}

	c.Data(http.StatusOK, http.DetectContentType(book.Cover), book.Cover)
}
