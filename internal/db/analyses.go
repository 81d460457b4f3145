package db

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jonathan/skill-extractor/internal/types"
)

// Paging limits for ListAnalyses.
const (
	DefaultListLimit = 20
	MaxListLimit     = 100
)

const analysisColumns = `id, owner, candidate_source, requirement_source, match_percentage, status,
	matched, missing, recommendations, candidate, requirement, created_at`

// SaveAnalysis inserts an analysis. A nil ID is replaced with a new one; ID and CreatedAt
// are written back to a.
func (db *DB) SaveAnalysis(ctx context.Context, a *types.Analysis) error {
	if a.Report == nil {
		return errors.New("analysis has no gap report")
	}
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	cols, err := encodeAnalysis(a)
	if err != nil {
		return err
	}

	err = db.pool.QueryRow(ctx,
		`INSERT INTO skill_analyses (id, owner, candidate_source, requirement_source, match_percentage,
		     status, matched, missing, recommendations, candidate, requirement)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING created_at`,
		a.ID, a.Owner, a.CandidateSource, a.RequirementSource, a.Report.MatchPercentage,
		a.Status, cols.matched, cols.missing, cols.recommendations, cols.candidate, cols.requirement,
	).Scan(&a.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to save analysis: %w", err)
	}
	return nil
}

// GetAnalysis retrieves an analysis by ID. Returns nil, nil when it does not exist.
func (db *DB) GetAnalysis(ctx context.Context, id uuid.UUID) (*types.Analysis, error) {
	row := db.pool.QueryRow(ctx,
		`SELECT `+analysisColumns+` FROM skill_analyses WHERE id = $1`, id)
	a, err := scanAnalysis(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get analysis: %w", err)
	}
	return a, nil
}

// ListAnalyses returns an owner's analyses, newest first. limit <= 0 uses DefaultListLimit
// and is capped at MaxListLimit.
func (db *DB) ListAnalyses(ctx context.Context, owner string, limit, offset int) ([]types.Analysis, error) {
	limit, offset = clampPage(limit, offset)

	rows, err := db.pool.Query(ctx,
		`SELECT `+analysisColumns+` FROM skill_analyses
		 WHERE owner = $1
		 ORDER BY created_at DESC, id
		 LIMIT $2 OFFSET $3`,
		owner, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	defer rows.Close()

	out := []types.Analysis{}
	for rows.Next() {
		a, err := scanAnalysis(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan analysis: %w", err)
		}
		out = append(out, *a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to list analyses: %w", err)
	}
	return out, nil
}

// DeleteAnalysis removes an analysis and reports whether it existed.
func (db *DB) DeleteAnalysis(ctx context.Context, id uuid.UUID) (bool, error) {
	tag, err := db.pool.Exec(ctx, `DELETE FROM skill_analyses WHERE id = $1`, id)
	if err != nil {
		return false, fmt.Errorf("failed to delete analysis: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

func clampPage(limit, offset int) (int, int) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	if limit > MaxListLimit {
		limit = MaxListLimit
	}
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

type encodedColumns struct {
	matched, missing, recommendations, candidate, requirement []byte
}

func encodeAnalysis(a *types.Analysis) (*encodedColumns, error) {
	var cols encodedColumns
	var err error
	if cols.matched, err = marshalList(a.Report.Matched); err != nil {
		return nil, err
	}
	if cols.missing, err = marshalList(a.Report.Missing); err != nil {
		return nil, err
	}
	if cols.recommendations, err = marshalList(a.Recommendations); err != nil {
		return nil, err
	}
	if cols.candidate, err = marshalResult(a.Candidate); err != nil {
		return nil, err
	}
	if cols.requirement, err = marshalResult(a.Requirement); err != nil {
		return nil, err
	}
	return &cols, nil
}

func marshalList(items []string) ([]byte, error) {
	if items == nil {
		items = []string{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal list: %w", err)
	}
	return data, nil
}

func marshalResult(r *types.ExtractionResult) ([]byte, error) {
	if r == nil {
		r = types.FromGroups(nil)
	}
	data, err := json.Marshal(r)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal extraction result: %w", err)
	}
	return data, nil
}

func scanAnalysis(row pgx.Row) (*types.Analysis, error) {
	a := &types.Analysis{Report: &types.GapReport{}}
	var matched, missing, recommendations, candidate, requirement []byte
	if err := row.Scan(&a.ID, &a.Owner, &a.CandidateSource, &a.RequirementSource,
		&a.Report.MatchPercentage, &a.Status, &matched, &missing, &recommendations,
		&candidate, &requirement, &a.CreatedAt); err != nil {
		return nil, err
	}
	if err := decodeAnalysis(a, matched, missing, recommendations, candidate, requirement); err != nil {
		return nil, err
	}
	return a, nil
}

func decodeAnalysis(a *types.Analysis, matched, missing, recommendations, candidate, requirement []byte) error {
	targets := []struct {
		data []byte
		into any
		name string
	}{
		{matched, &a.Report.Matched, "matched"},
		{missing, &a.Report.Missing, "missing"},
		{recommendations, &a.Recommendations, "recommendations"},
		{candidate, &a.Candidate, "candidate"},
		{requirement, &a.Requirement, "requirement"},
	}
	for _, t := range targets {
		if err := json.Unmarshal(t.data, t.into); err != nil {
			return fmt.Errorf("failed to unmarshal %s: %w", t.name, err)
		}
	}
	return nil
}
