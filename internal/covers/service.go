package covers

import (
	"context"
	"log"
	"sync"
	"time"
)

// Lookup resolves a cover-image URL for a book title. An empty URL with a
// nil error means no cover is known for the title.
type Lookup interface {
	FetchCoverURL(ctx context.Context, title string) (string, error)
}

type entry struct {
	url     string
	expires time.Time
}

// Service answers cover-URL lookups through a TTL cache so a listing render
// does not pay one catalog round trip per book on every request. Lookup
// failures degrade to "no cover": they are logged and never propagated.
type Service struct {
	client Lookup
	ttl    time.Duration

	mu    sync.RWMutex
	cache map[string]entry
	now   func() time.Time
}

func NewService(client Lookup, ttl time.Duration) *Service {
	return &Service{
		client: client,
		ttl:    ttl,
		cache:  make(map[string]entry),
		now:    time.Now,
	}
}

// CoverURL returns the display cover URL for a title, or "" when none is
// available. Fresh cache entries are served directly; everything else goes
// through Warm.
func (s *Service) CoverURL(ctx context.Context, title string) string {
	s.mu.RLock()
	e, ok := s.cache[title]
	s.mu.RUnlock()
	if ok && s.now().Before(e.expires) {
		return e.url
	}
	return s.Warm(ctx, title)
}

// Warm resolves the title against the catalog and refreshes its cache entry,
// bypassing any cached value. No-match results are cached too, so titles
// unknown to the catalog do not trigger a lookup on every render. Errors are
// not cached; a transient failure is retried on the next request.
func (s *Service) Warm(ctx context.Context, title string) string {
	coverURL, err := s.client.FetchCoverURL(ctx, title)
	if err != nil {
		log.Printf("Error fetching book cover for %q: %v", title, err)
		return ""
	}

	s.mu.Lock()
	s.cache[title] = entry{url: coverURL, expires: s.now().Add(s.ttl)}
	s.mu.Unlock()
	return coverURL
}

// Prune drops expired cache entries and reports how many were removed.
func (s *Service) Prune() int {
	now := s.now()
	s.mu.Lock()
	defer s.mu.Unlock()

	removed := 0
	for title, e := range s.cache {
		if !now.Before(e.expires) {
			delete(s.cache, title)
			removed++
		}
	}
	return removed
}

// Size reports the number of cached entries, expired or not.
func (s *Service) Size() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.cache)
}
