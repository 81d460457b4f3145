// Package pipeline runs an end-to-end skill analysis: ingest both documents, extract
// skills, compare them and optionally persist the result.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skill-extractor/internal/ingestion"
	"github.com/jonathan/skill-extractor/internal/pipeline/steps"
	"github.com/jonathan/skill-extractor/internal/skills"
	"github.com/jonathan/skill-extractor/internal/types"
)

// ProgressEvent represents a progress update during pipeline execution
type ProgressEvent struct {
	Step     string `json:"step"`
	Category string `json:"category"`
	Message  string `json:"message"`
	Content  any    `json:"content,omitempty"`
}

// ProgressCallback is called when pipeline progress occurs. Ingestion events arrive from
// concurrent goroutines.
type ProgressCallback func(event ProgressEvent)

// Store persists finished analyses.
type Store interface {
	SaveAnalysis(ctx context.Context, a *types.Analysis) error
}

// Options holds configuration for running the pipeline
type Options struct {
	// Candidate and Requirement are file paths or http(s) URLs.
	Candidate   string
	Requirement string
	Owner       string
	Ingest      *ingestion.URLOptions
	// Store is optional; when set the analysis is saved and gets an ID.
	Store      Store
	Verbose    bool
	OnProgress ProgressCallback
}

// Result is a finished pipeline run.
type Result struct {
	Analysis        *types.Analysis
	CandidateMeta   *ingestion.Metadata
	RequirementMeta *ingestion.Metadata
	Saved           bool
}

// ErrMissingSource is returned when either document source is empty.
var ErrMissingSource = errors.New("both candidate and requirement sources are required")

func emitProgress(opts *Options, step, message string, content any) {
	if opts.OnProgress != nil {
		opts.OnProgress(ProgressEvent{
			Step:     step,
			Category: steps.Category(step),
			Message:  message,
			Content:  content,
		})
	}
}

// Analyze ingests the candidate and requirement documents concurrently, extracts skills
// from both and builds the analysis. A store failure is returned after the analysis is built,
// so callers get both.
func Analyze(ctx context.Context, db *skills.Database, opts Options) (*Result, error) {
	if opts.Candidate == "" || opts.Requirement == "" {
		return nil, ErrMissingSource
	}
	tracker := steps.NewTracker()

	var candidateText, requirementText string
	var candidateMeta, requirementMeta *ingestion.Metadata

	g, gCtx := errgroup.WithContext(ctx)
	g.Go(func() error {
		text, meta, err := ingestion.Ingest(gCtx, opts.Candidate, opts.Ingest)
		if err != nil {
			return fmt.Errorf("candidate ingestion failed: %w", err)
		}
		candidateText, candidateMeta = text, meta
		emitProgress(&opts, steps.IngestCandidate,
			fmt.Sprintf("Ingested candidate from %s (%d chars)", opts.Candidate, meta.CleanedChars), meta)
		return tracker.Complete(steps.IngestCandidate)
	})
	g.Go(func() error {
		text, meta, err := ingestion.Ingest(gCtx, opts.Requirement, opts.Ingest)
		if err != nil {
			return fmt.Errorf("requirement ingestion failed: %w", err)
		}
		requirementText, requirementMeta = text, meta
		emitProgress(&opts, steps.IngestRequirement,
			fmt.Sprintf("Ingested requirement from %s (%d chars)", opts.Requirement, meta.CleanedChars), meta)
		return tracker.Complete(steps.IngestRequirement)
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}
	if opts.Verbose {
		log.Printf("[VERBOSE] Candidate hash %s, requirement hash %s", candidateMeta.Hash, requirementMeta.Hash)
	}

	result, err := analyzeTexts(ctx, db, tracker, candidateText, requirementText, &opts)
	if result != nil {
		result.CandidateMeta, result.RequirementMeta = candidateMeta, requirementMeta
	}
	return result, err
}

// AnalyzeTexts runs the pipeline on already ingested text. Candidate and Requirement in opts
// are only recorded as sources.
func AnalyzeTexts(ctx context.Context, db *skills.Database, candidateText, requirementText string, opts Options) (*Result, error) {
	tracker := steps.NewTracker()
	for _, step := range []string{steps.IngestCandidate, steps.IngestRequirement} {
		if err := tracker.Complete(step); err != nil {
			return nil, err
		}
	}
	return analyzeTexts(ctx, db, tracker, candidateText, requirementText, &opts)
}

func analyzeTexts(ctx context.Context, db *skills.Database, tracker *steps.Tracker, candidateText, requirementText string, opts *Options) (*Result, error) {
	candidate := skills.Extract(db, candidateText)
	if err := tracker.Complete(steps.ExtractCandidate); err != nil {
		return nil, err
	}
	emitProgress(opts, steps.ExtractCandidate,
		fmt.Sprintf("Found %d candidate skills", candidate.Total()), candidate)

	requirement := skills.Extract(db, requirementText)
	if err := tracker.Complete(steps.ExtractRequirement); err != nil {
		return nil, err
	}
	emitProgress(opts, steps.ExtractRequirement,
		fmt.Sprintf("Found %d required skills", requirement.Total()), requirement)

	analysis := NewAnalysis(db, candidate, requirement)
	analysis.Owner = opts.Owner
	analysis.CandidateSource = opts.Candidate
	analysis.RequirementSource = opts.Requirement
	for _, step := range []string{steps.MatchSkills, steps.RecommendSkills} {
		if err := tracker.Complete(step); err != nil {
			return nil, err
		}
	}
	emitProgress(opts, steps.MatchSkills,
		fmt.Sprintf("Match %.1f%% (%s)", skills.RoundPercentage(analysis.Report.MatchPercentage), analysis.Status),
		analysis.Report)
	emitProgress(opts, steps.RecommendSkills,
		fmt.Sprintf("%d recommendations", len(analysis.Recommendations)), analysis.Recommendations)

	result := &Result{Analysis: analysis}
	if opts.Store == nil {
		return result, nil
	}
	if err := tracker.ValidateDependencies(steps.SaveAnalysis); err != nil {
		return result, err
	}
	if err := opts.Store.SaveAnalysis(ctx, analysis); err != nil {
		return result, fmt.Errorf("failed to save analysis: %w", err)
	}
	result.Saved = true
	emitProgress(opts, steps.SaveAnalysis, fmt.Sprintf("Saved analysis %s", analysis.ID), nil)
	return result, tracker.Complete(steps.SaveAnalysis)
}

// NewAnalysis compares two extraction results and recommends related skills for the
// candidate. The returned analysis has no ID, owner or sources.
func NewAnalysis(db *skills.Database, candidate, requirement *types.ExtractionResult) *types.Analysis {
	report := skills.CalculateMatch(candidate, requirement)
	return &types.Analysis{
		Candidate:       candidate,
		Requirement:     requirement,
		Report:          report,
		Status:          skills.MatchStatus(report.MatchPercentage),
		Recommendations: skills.Recommend(db, candidate),
	}
}
