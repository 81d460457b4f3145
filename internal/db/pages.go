package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jonathan/skill-extractor/internal/fetch"
)

var _ fetch.PageStore = (*DB)(nil)

// FreshPage returns the stored page for url if it was fetched within maxAge.
// Returns nil, nil otherwise.
func (db *DB) FreshPage(ctx context.Context, url string, maxAge time.Duration) (*fetch.Page, error) {
	var p fetch.Page
	err := db.pool.QueryRow(ctx,
		`SELECT url, html, text, status_code, fetched_at FROM fetched_pages
		 WHERE url = $1 AND fetched_at > $2`,
		url, time.Now().Add(-maxAge),
	).Scan(&p.URL, &p.HTML, &p.Text, &p.StatusCode, &p.FetchedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get fetched page: %w", err)
	}
	return &p, nil
}

// SavePage upserts a fetched page. A zero FetchedAt is stored as now.
func (db *DB) SavePage(ctx context.Context, page *fetch.Page) error {
	fetchedAt := page.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now()
	}
	_, err := db.pool.Exec(ctx,
		`INSERT INTO fetched_pages (url, html, text, status_code, fetched_at)
		 VALUES ($1, $2, $3, $4, $5)
		 ON CONFLICT (url) DO UPDATE SET html = $2, text = $3, status_code = $4, fetched_at = $5`,
		page.URL, page.HTML, page.Text, page.StatusCode, fetchedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save fetched page: %w", err)
	}
	return nil
}
