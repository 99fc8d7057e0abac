package covers

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeLookup struct {
	urls  map[string]string
	err   error
	calls int
}

func (f *fakeLookup) FetchCoverURL(_ context.Context, title string) (string, error) {
	f.calls++
	if f.err != nil {
		return "", f.err
	}
	return f.urls[title], nil
}

func TestService_CoverURL(t *testing.T) {
	t.Run("resolves and caches", func(t *testing.T) {
		lookup := &fakeLookup{urls: map[string]string{"Dune": "https://covers.example/dune.jpg"}}
		svc := NewService(lookup, time.Hour)

		assert.Equal(t, "https://covers.example/dune.jpg", svc.CoverURL(context.Background(), "Dune"))
		assert.Equal(t, "https://covers.example/dune.jpg", svc.CoverURL(context.Background(), "Dune"))
		assert.Equal(t, 1, lookup.calls, "second lookup should be served from cache")
	})

	t.Run("caches negative results", func(t *testing.T) {
		lookup := &fakeLookup{urls: map[string]string{}}
		svc := NewService(lookup, time.Hour)

		assert.Empty(t, svc.CoverURL(context.Background(), "Unknown Book"))
		assert.Empty(t, svc.CoverURL(context.Background(), "Unknown Book"))
		assert.Equal(t, 1, lookup.calls)
	})

	t.Run("degrades errors to no cover without caching them", func(t *testing.T) {
		lookup := &fakeLookup{err: fmt.Errorf("connection refused")}
		svc := NewService(lookup, time.Hour)

		assert.Empty(t, svc.CoverURL(context.Background(), "Dune"))
		assert.Empty(t, svc.CoverURL(context.Background(), "Dune"))
		assert.Equal(t, 2, lookup.calls, "failures must be retried on the next request")
	})

	t.Run("expired entries are refreshed", func(t *testing.T) {
		lookup := &fakeLookup{urls: map[string]string{"Dune": "https://covers.example/dune.jpg"}}
		svc := NewService(lookup, time.Minute)

		current := time.Now()
		svc.now = func() time.Time { return current }

		svc.CoverURL(context.Background(), "Dune")
		current = current.Add(2 * time.Minute)
		svc.CoverURL(context.Background(), "Dune")

		assert.Equal(t, 2, lookup.calls)
	})
}

func TestService_Warm(t *testing.T) {
	lookup := &fakeLookup{urls: map[string]string{"Dune": "https://covers.example/dune.jpg"}}
	svc := NewService(lookup, time.Hour)

	// Populate, then warm again: the cache must be bypassed.
	svc.CoverURL(context.Background(), "Dune")
	svc.Warm(context.Background(), "Dune")

	assert.Equal(t, 2, lookup.calls)
	assert.Equal(t, 1, svc.Size())
}

func TestService_Prune(t *testing.T) {
	lookup := &fakeLookup{urls: map[string]string{
		"Dune":        "https://covers.example/dune.jpg",
		"Neuromancer": "https://covers.example/neuromancer.jpg",
	}}
	svc := NewService(lookup, time.Minute)

	current := time.Now()
	svc.now = func() time.Time { return current }

	svc.CoverURL(context.Background(), "Dune")
	current = current.Add(2 * time.Minute)
	svc.CoverURL(context.Background(), "Neuromancer")

	assert.Equal(t, 1, svc.Prune())
	assert.Equal(t, 1, svc.Size())

	// Surviving entry is still served from cache.
	svc.CoverURL(context.Background(), "Neuromancer")
	assert.Equal(t, 2, lookup.calls)
}
