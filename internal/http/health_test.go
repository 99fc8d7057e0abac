package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Anusha-Pandit/Books-Log/internal/database"
	"github.com/Anusha-Pandit/Books-Log/internal/tasks"
)

type fakeCacheStats struct {
	entries int
}

func (f *fakeCacheStats) Size() int {
	return f.entries
}

func setupHealthRouter(db *database.Database, taskClient *tasks.Client, cache CoverCacheStats, version string) *gin.Engine {
	gin.SetMode(gin.TestMode)

	router := gin.New()
	router.GET("/health", NewHealthController(db, taskClient, cache, version).Status)
	return router
}

func getHealth(t *testing.T, router *gin.Engine) (int, HealthResponse) {
	t.Helper()

	w := httptest.NewRecorder()
	req, _ := http.NewRequest("GET", "/health", nil)
	router.ServeHTTP(w, req)

	var health HealthResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &health))
	return w.Code, health
}

func TestHealthController_Status(t *testing.T) {
	t.Run("healthy with all components wired", func(t *testing.T) {
		db := setupTestDB(t)
		taskClient := setupTaskClient(t)
		router := setupHealthRouter(db, taskClient, &fakeCacheStats{entries: 3}, "test-version")

		code, health := getHealth(t, router)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", health.Status)
		assert.Equal(t, "test-version", health.Version)
		assert.Equal(t, "ok", health.Checks["database"])
		assert.Equal(t, "ok", health.Checks["tasks"])
		assert.Equal(t, "3 cached lookups", health.Checks["cover_cache"])
		assert.False(t, health.CheckedAt.IsZero())
	})

	t.Run("unwired components are reported without degrading status", func(t *testing.T) {
		router := setupHealthRouter(nil, nil, nil, "")

		code, health := getHealth(t, router)

		assert.Equal(t, http.StatusOK, code)
		assert.Equal(t, "healthy", health.Status)
		assert.Equal(t, "not configured", health.Checks["database"])
		assert.Equal(t, "disabled", health.Checks["tasks"])
		assert.NotContains(t, health.Checks, "cover_cache")
	})

	t.Run("unreachable task queue flips to unhealthy", func(t *testing.T) {
		db := setupTestDB(t)
		taskClient := setupTaskClient(t)
		require.NoError(t, taskClient.Close())
		router := setupHealthRouter(db, taskClient, nil, "")

		code, health := getHealth(t, router)

		assert.Equal(t, http.StatusServiceUnavailable, code)
		assert.Equal(t, "unhealthy", health.Status)
		assert.Equal(t, "ok", health.Checks["database"])
		assert.True(t, strings.HasPrefix(health.Checks["tasks"], "error:"))
	})
}
