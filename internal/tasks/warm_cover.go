package tasks

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/mikestefanello/backlite"
)

// CoverWarmTask resolves a book's cover URL into the lookup cache off the
// request path, so the next listing render finds it already cached.
type CoverWarmTask struct {
	BookID uint   `json:"book_id"`
	Title  string `json:"title"`
}

// Config returns the queue configuration for cover warm tasks.
func (t CoverWarmTask) Config() backlite.QueueConfig {
	return backlite.QueueConfig{
		Name:        "cover_warm",
		MaxAttempts: 3,
		Backoff:     30 * time.Second,
		Timeout:     time.Minute,
		Retention: &backlite.Retention{
			Duration:   24 * time.Hour,
			OnlyFailed: false,
			Data:       &backlite.RetainData{OnlyFailed: true},
		},
	}
}

// Warmer is the part of the covers service the warm task needs.
type Warmer interface {
	Warm(ctx context.Context, title string) string
}

// CoverWarmProcessor creates a processor function for CoverWarmTask.
func CoverWarmProcessor(covers Warmer) backlite.QueueProcessor[CoverWarmTask] {
	return func(ctx context.Context, task CoverWarmTask) error {
		if covers == nil {
			return fmt.Errorf("covers service not configured")
		}

		if coverURL := covers.Warm(ctx, task.Title); coverURL != "" {
			log.Printf("[TASK] Warmed cover for book %d (%s)", task.BookID, task.Title)
		} else {
			log.Printf("[TASK] No cover found for book %d (%s)", task.BookID, task.Title)
		}
		return nil
	}
}

// NewCoverWarmQueue creates a backlite queue for cover warm tasks.
func NewCoverWarmQueue(covers Warmer) backlite.Queue {
	return backlite.NewQueue(CoverWarmProcessor(covers))
}
