package http

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/Anusha-Pandit/Books-Log/internal/database"
	"github.com/Anusha-Pandit/Books-Log/internal/tasks"
)

// CoverCacheStats exposes the lookup-cache counters reported by /health.
type CoverCacheStats interface {
	Size() int
}

// Probes share one deadline so a hung database cannot stall the endpoint.
const healthProbeTimeout = 2 * time.Second

type HealthResponse struct {
	Status    string            `json:"status"`
	Version   string            `json:"version,omitempty"`
	CheckedAt time.Time         `json:"checked_at"`
	Checks    map[string]string `json:"checks"`
}

// HealthController reports liveness of the book store and the task queue,
// plus the current size of the cover lookup cache.
type HealthController struct {
	db      *database.Database
	tasks   *tasks.Client
	cache   CoverCacheStats
	version string
}

func NewHealthController(db *database.Database, taskClient *tasks.Client, cache CoverCacheStats, version string) *HealthController {
	return &HealthController{
		db:      db,
		tasks:   taskClient,
		cache:   cache,
		version: version,
	}
}

// Status runs one probe per wired component. A component that was never
// configured is reported as such without degrading the overall status; a
// configured component that fails its probe flips the response to 503.
// GET /health
func (h *HealthController) Status(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), healthProbeTimeout)
	defer cancel()

	resp := HealthResponse{
		Status:    "healthy",
		Version:   h.version,
		CheckedAt: time.Now(),
		Checks:    make(map[string]string),
	}
	fail := func(name string, err error) {
		resp.Checks[name] = "error: " + err.Error()
		resp.Status = "unhealthy"
	}

	if h.db == nil {
		resp.Checks["database"] = "not configured"
	} else if err := h.db.Ping(ctx); err != nil {
		fail("database", err)
	} else {
		resp.Checks["database"] = "ok"
	}

	if h.tasks == nil {
		resp.Checks["tasks"] = "disabled"
	} else if err := h.tasks.Ping(ctx); err != nil {
		fail("tasks", err)
	} else {
		resp.Checks["tasks"] = "ok"
	}

	if h.cache != nil {
		resp.Checks["cover_cache"] = fmt.Sprintf("%d cached lookups", h.cache.Size())
	}

	code := http.StatusOK
	if resp.Status != "healthy" {
		code = http.StatusServiceUnavailable
	}
	c.JSON(code, resp)
}
