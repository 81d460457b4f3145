package ingestion

import (
	"context"
	"fmt"
	"log"
	"strings"

	"github.com/jonathan/skill-extractor/internal/fetch"
)

// URLOptions configures web ingestion.
type URLOptions struct {
	// Fetcher serves and caches pages; nil fetches without a cache.
	Fetcher *fetch.CachedFetcher
	// UseBrowser renders the page in headless Chrome when plain HTTP yields too little text.
	UseBrowser bool
	Verbose    bool
}

// IsURL reports whether source looks like an http(s) URL rather than a file path.
func IsURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}

// IngestFromURL fetches a job posting or web resume and returns its cleaned text.
func IngestFromURL(ctx context.Context, urlStr string, opts *URLOptions) (string, *Metadata, error) {
	if opts == nil {
		opts = &URLOptions{}
	}
	fetcher := opts.Fetcher
	if fetcher == nil {
		fetcher = fetch.NewCachedFetcher(nil, nil, 0, opts.Verbose)
	}

	platform := fetch.DetectPlatform(urlStr)
	if opts.Verbose {
		log.Printf("[VERBOSE] URL: %s", urlStr)
		log.Printf("[VERBOSE] Detected platform: %s", platform)
	}

	result, err := fetcher.Fetch(ctx, urlStr)
	if err != nil {
		return "", nil, fmt.Errorf("failed to fetch %s: %w", urlStr, err)
	}
	text := result.Text
	if opts.Verbose {
		log.Printf("[VERBOSE] Extracted text: %d chars (cached: %v)", len(text), result.FromCache)
	}

	if opts.UseBrowser && fetch.ShouldUseBrowser(text) {
		if opts.Verbose {
			log.Printf("[VERBOSE] Content too short (%d chars < %d), falling back to browser rendering...",
				len(text), fetch.MinContentLength)
		}
		html, renderErr := fetch.Render(ctx, urlStr, 0, opts.Verbose)
		switch {
		case renderErr != nil:
			if opts.Verbose {
				log.Printf("[VERBOSE] Browser rendering failed: %v, using HTTP content", renderErr)
			}
		default:
			rendered, extractErr := fetch.ExtractMainText(html,
				fetch.PlatformContentSelectors(platform), fetch.PlatformNoiseSelectors(platform)...)
			if extractErr == nil {
				text = rendered
			} else if opts.Verbose {
				log.Printf("[VERBOSE] Browser content extraction failed: %v", extractErr)
			}
		}
	}

	cleaned := BasicClean(text)
	meta := NewMetadata(urlStr, text, cleaned)
	meta.URL = urlStr
	meta.Type = string(TypeHTML)
	meta.Platform = string(platform)
	meta.FromCache = result.FromCache
	return cleaned, meta, nil
}

// IngestFromFile reads a document from disk and returns its cleaned text.
func IngestFromFile(path string) (string, *Metadata, error) {
	docType, err := DetectType(path)
	if err != nil {
		return "", nil, err
	}
	raw, cleaned, err := ExtractText(path)
	if err != nil {
		return "", nil, err
	}
	meta := NewMetadata(path, raw, cleaned)
	meta.Type = string(docType)
	return cleaned, meta, nil
}

// Ingest dispatches on source: URLs are fetched, anything else is read from disk.
func Ingest(ctx context.Context, source string, opts *URLOptions) (string, *Metadata, error) {
	if IsURL(source) {
		return IngestFromURL(ctx, source, opts)
	}
	return IngestFromFile(source)
}
