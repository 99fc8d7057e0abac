package http

import (
	"html/template"

	"github.com/gin-gonic/gin"
)

// NewRouter creates and configures the HTTP router with all endpoints.
// Dependencies arrive through RouterConfig so tests can substitute fakes.
func NewRouter(cfg RouterConfig) *gin.Engine {
	router := gin.New()
	router.Use(gin.Logger())
	router.Use(gin.Recovery())

	tmpl := template.Must(template.New("").ParseGlob(cfg.TemplatesPath + "/*.html"))
	router.SetHTMLTemplate(tmpl)

	router.Static("/static", cfg.StaticPath)

	booksController := NewBooksController(cfg.Store, cfg.Covers, cfg.Tasks, cfg.ListTitle)
	coversController := NewCoversController(cfg.Store)
	health := NewHealthController(cfg.Database, cfg.Tasks, cfg.CoverCache, cfg.Version)

	router.GET("/", booksController.ListPage)
	router.GET("/new", booksController.NewPage)
	router.POST("/new", booksController.CreateBook)
	router.GET("/edit/:id", booksController.EditPage)
	router.POST("/edit/:id", booksController.UpdateBook)
	router.POST("/delete/:id", booksController.DeleteBook)

	// Uploaded covers; the listing itself uses catalog-derived URLs.
	router.GET("/covers/:id", coversController.GetCover)

	router.GET("/health", health.Status)

	return router
}
