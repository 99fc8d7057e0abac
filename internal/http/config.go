package http

import (
	"github.com/Anusha-Pandit/Books-Log/internal/database"
	"github.com/Anusha-Pandit/Books-Log/internal/tasks"
)

// RouterConfig holds all dependencies needed to construct the router.
type RouterConfig struct {
	Store      BookStore
	Covers     CoverResolver
	CoverCache CoverCacheStats // health reporting only
	Tasks      *tasks.Client
	Database   *database.Database // health checks only

	TemplatesPath string
	StaticPath    string
	ListTitle     string
	Version       string
}
