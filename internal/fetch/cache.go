package fetch

import (
	"context"
	"fmt"
	"log"
	"time"
)

// DefaultCacheTTL is how long a fetched page is served from the store.
const DefaultCacheTTL = 24 * time.Hour

// Page is a successfully fetched page as kept by a PageStore.
type Page struct {
	URL        string
	HTML       string
	Text       string
	StatusCode int
	FetchedAt  time.Time
}

// PageStore persists fetched pages. FreshPage returns nil, nil when the URL has no page
// younger than maxAge.
type PageStore interface {
	FreshPage(ctx context.Context, url string, maxAge time.Duration) (*Page, error)
	SavePage(ctx context.Context, page *Page) error
}

// CachedFetcher serves pages from a PageStore and fetches them on a miss.
type CachedFetcher struct {
	store   PageStore
	options *Options
	ttl     time.Duration
	verbose bool
}

// NewCachedFetcher creates a fetcher. A nil store disables caching; ttl <= 0 uses DefaultCacheTTL.
func NewCachedFetcher(store PageStore, opts *Options, ttl time.Duration, verbose bool) *CachedFetcher {
	if opts == nil {
		opts = DefaultOptions()
	}
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &CachedFetcher{store: store, options: opts, ttl: ttl, verbose: verbose}
}

// CachedResult extends Result with cache metadata.
type CachedResult struct {
	*Result
	FromCache bool
}

// Fetch returns a fresh cached page if there is one, otherwise fetches and stores it.
// Text is extracted with the platform selectors for the URL.
func (f *CachedFetcher) Fetch(ctx context.Context, urlStr string) (*CachedResult, error) {
	if f.store != nil {
		cached, err := f.store.FreshPage(ctx, urlStr, f.ttl)
		if err != nil {
			return nil, fmt.Errorf("failed to check page cache: %w", err)
		}
		if cached != nil {
			if f.verbose {
				log.Printf("[VERBOSE] Cache hit for %s (fetched %s)", urlStr, cached.FetchedAt.Format(time.RFC3339))
			}
			return &CachedResult{
				Result: &Result{
					URL:        cached.URL,
					HTML:       cached.HTML,
					Text:       cached.Text,
					StatusCode: cached.StatusCode,
				},
				FromCache: true,
			}, nil
		}
	}

	result, err := URL(ctx, urlStr, f.options)
	if err != nil {
		return nil, err
	}

	platform := DetectPlatform(urlStr)
	text, err := ExtractMainText(result.HTML, PlatformContentSelectors(platform), PlatformNoiseSelectors(platform)...)
	if err != nil {
		return nil, &Error{URL: urlStr, Message: "content extraction failed", Cause: err}
	}
	result.Text = text

	if f.store != nil {
		page := &Page{
			URL:        urlStr,
			HTML:       result.HTML,
			Text:       result.Text,
			StatusCode: result.StatusCode,
			FetchedAt:  time.Now().UTC(),
		}
		// the fetch itself succeeded; a cache write failure only costs a refetch
		if err := f.store.SavePage(ctx, page); err != nil && f.verbose {
			log.Printf("[VERBOSE] Failed to cache %s: %v", urlStr, err)
		}
	}

	return &CachedResult{Result: result}, nil
}
