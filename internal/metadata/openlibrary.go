package metadata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

const userAgent = "BooksLog/1.0 (https://github.com/Anusha-Pandit/Books-Log)"

// OpenLibraryClient resolves cover-image URLs for book titles via the
// OpenLibrary search API.
type OpenLibraryClient struct {
	httpClient *http.Client
	baseURL    string
	coversURL  string
}

func NewOpenLibraryClient(baseURL, coversURL string) *OpenLibraryClient {
	return &OpenLibraryClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:   baseURL,
		coversURL: coversURL,
	}
}

// FetchCoverURL searches OpenLibrary for the title and derives a cover URL
// from the first ISBN of the first search result. An empty URL with a nil
// error means the catalog has no usable match for the title.
func (c *OpenLibraryClient) FetchCoverURL(ctx context.Context, title string) (string, error) {
	if title == "" {
		return "", fmt.Errorf("title is required")
	}

	searchURL := fmt.Sprintf("%s/search.json?title=%s", c.baseURL, url.QueryEscape(title))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("search books: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	var result openLibrarySearchResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return "", fmt.Errorf("decode search response: %w", err)
	}

	if result.NumFound == 0 || len(result.Docs) == 0 {
		return "", nil
	}

	if isbns := result.Docs[0].ISBN; len(isbns) > 0 {
		return fmt.Sprintf("%s/b/isbn/%s-L.jpg", c.coversURL, isbns[0]), nil
	}
	return "", nil
}

// OpenLibrary API response types (internal)

type openLibrarySearchResult struct {
	NumFound int                    `json:"numFound"`
	Docs     []openLibrarySearchDoc `json:"docs"`
}

type openLibrarySearchDoc struct {
	Title string   `json:"title"`
	ISBN  []string `json:"isbn"`
}
