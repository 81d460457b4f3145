package server

import (
	"bytes"
	"context"
	"fmt"
	"log"
	"net/http"
	"strconv"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/jonathan/skill-extractor/internal/db"
	"github.com/jonathan/skill-extractor/internal/export"
	"github.com/jonathan/skill-extractor/internal/ingestion"
	"github.com/jonathan/skill-extractor/internal/pipeline"
	"github.com/jonathan/skill-extractor/internal/types"
)

// inlineSource labels a side that was posted as text.
const inlineSource = "inline"

// ListAnalysesResponse is the body of GET /analyses.
type ListAnalysesResponse struct {
	Analyses []types.Analysis `json:"analyses"`
	Count    int              `json:"count"`
	Limit    int              `json:"limit"`
	Offset   int              `json:"offset"`
}

// sources resolves both sides of an analysis request to cleaned text, fetching URLs
// concurrently. Inline text gets the same BasicClean that file and URL ingestion apply.
func (s *Server) sources(ctx context.Context, req *types.AnalysisRequest) (candidate, requirement string, opts pipeline.Options, err error) {
	candidate, requirement = ingestion.BasicClean(req.CandidateText), ingestion.BasicClean(req.RequirementText)
	opts.Candidate, opts.Requirement = inlineSource, inlineSource

	g, gCtx := errgroup.WithContext(ctx)
	if req.CandidateText == "" {
		opts.Candidate = req.CandidateURL
		g.Go(func() error {
			text, _, err := ingestion.IngestFromURL(gCtx, req.CandidateURL, s.ingest)
			if err != nil {
				return fmt.Errorf("candidate ingestion failed: %w", err)
			}
			candidate = text
			return nil
		})
	}
	if req.RequirementText == "" {
		opts.Requirement = req.RequirementURL
		g.Go(func() error {
			text, _, err := ingestion.IngestFromURL(gCtx, req.RequirementURL, s.ingest)
			if err != nil {
				return fmt.Errorf("requirement ingestion failed: %w", err)
			}
			requirement = text
			return nil
		})
	}
	err = g.Wait()
	return candidate, requirement, opts, err
}

// prepareAnalysis decodes and validates a create request and resolves its sources.
func (s *Server) prepareAnalysis(w http.ResponseWriter, r *http.Request) (string, string, pipeline.Options, bool) {
	if s.store == nil {
		s.errorFrom(w, ErrNoStore)
		return "", "", pipeline.Options{}, false
	}
	var req types.AnalysisRequest
	if !s.decodeJSON(w, r, &req) {
		return "", "", pipeline.Options{}, false
	}
	if err := req.Validate(); err != nil {
		s.errorFrom(w, err)
		return "", "", pipeline.Options{}, false
	}

	candidate, requirement, opts, err := s.sources(r.Context(), &req)
	if err != nil {
		s.errorFrom(w, err)
		return "", "", pipeline.Options{}, false
	}
	opts.Owner = s.owner(r)
	opts.Store = s.store
	return candidate, requirement, opts, true
}

// handleCreateAnalysis runs and saves an analysis.
func (s *Server) handleCreateAnalysis(w http.ResponseWriter, r *http.Request) {
	candidate, requirement, opts, ok := s.prepareAnalysis(w, r)
	if !ok {
		return
	}

	result, err := pipeline.AnalyzeTexts(r.Context(), s.skills, candidate, requirement, opts)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	s.jsonResponse(w, http.StatusCreated, result.Analysis)
}

// handleStreamAnalysis runs and saves an analysis, streaming pipeline progress via SSE.
func (s *Server) handleStreamAnalysis(w http.ResponseWriter, r *http.Request) {
	candidate, requirement, opts, ok := s.prepareAnalysis(w, r)
	if !ok {
		return
	}

	sse, err := NewSSEWriter(w)
	if err != nil {
		s.errorResponse(w, http.StatusInternalServerError, err.Error())
		return
	}
	opts.OnProgress = func(event pipeline.ProgressEvent) {
		if err := sse.WriteEvent("step", event); err != nil {
			log.Printf("Error writing SSE event: %v", err)
		}
	}

	result, err := pipeline.AnalyzeTexts(r.Context(), s.skills, candidate, requirement, opts)
	if err != nil {
		log.Printf("Streaming analysis failed: %v", err)
		sse.WriteError(ErrorMessage(err), HTTPStatus(err))
		return
	}
	a := result.Analysis
	sse.WriteComplete(a.ID.String(), a.Status, a.Report.MatchPercentage)
}

func (s *Server) handleListAnalyses(w http.ResponseWriter, r *http.Request) {
	if s.store == nil {
		s.errorFrom(w, ErrNoStore)
		return
	}
	limit, err := queryInt(r, "limit", db.DefaultListLimit)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	offset, err := queryInt(r, "offset", 0)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	limit = min(max(limit, 1), db.MaxListLimit)
	offset = max(offset, 0)

	analyses, err := s.store.ListAnalyses(r.Context(), s.owner(r), limit, offset)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	if analyses == nil {
		analyses = []types.Analysis{}
	}
	s.jsonResponse(w, http.StatusOK, ListAnalysesResponse{
		Analyses: analyses,
		Count:    len(analyses),
		Limit:    limit,
		Offset:   offset,
	})
}

func queryInt(r *http.Request, name string, fallback int) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &ErrValidation{Field: name, Message: "must be an integer"}
	}
	return n, nil
}

// loadAnalysis fetches the analysis named by the {id} path value. Analyses owned by someone
// else are reported as not found.
func (s *Server) loadAnalysis(w http.ResponseWriter, r *http.Request) (*types.Analysis, bool) {
	if s.store == nil {
		s.errorFrom(w, ErrNoStore)
		return nil, false
	}
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		s.errorFrom(w, &ErrValidation{Field: "id", Message: "must be a UUID"})
		return nil, false
	}

	a, err := s.store.GetAnalysis(r.Context(), id)
	if err != nil {
		s.errorFrom(w, err)
		return nil, false
	}
	if a == nil || a.Owner != s.owner(r) {
		s.errorFrom(w, &ErrAnalysisNotFound{ID: id})
		return nil, false
	}
	return a, true
}

func (s *Server) handleGetAnalysis(w http.ResponseWriter, r *http.Request) {
	a, ok := s.loadAnalysis(w, r)
	if !ok {
		return
	}
	s.jsonResponse(w, http.StatusOK, a)
}

func (s *Server) handleDeleteAnalysis(w http.ResponseWriter, r *http.Request) {
	a, ok := s.loadAnalysis(w, r)
	if !ok {
		return
	}
	deleted, err := s.store.DeleteAnalysis(r.Context(), a.ID)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	if !deleted {
		s.errorFrom(w, &ErrAnalysisNotFound{ID: a.ID})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleExportAnalysis serves a saved analysis as CSV, JSON or XLSX.
func (s *Server) handleExportAnalysis(w http.ResponseWriter, r *http.Request) {
	format, err := export.ParseFormat(r.URL.Query().Get("format"))
	if err != nil {
		s.errorFrom(w, &ErrValidation{Field: "format", Message: err.Error()})
		return
	}
	a, ok := s.loadAnalysis(w, r)
	if !ok {
		return
	}

	var buf bytes.Buffer
	if err := export.Write(&buf, format, a); err != nil {
		s.errorFrom(w, err)
		return
	}
	w.Header().Set("Content-Type", format.ContentType())
	w.Header().Set("Content-Disposition", fmt.Sprintf(`attachment; filename="analysis-%s.%s"`, a.ID, format))
	w.WriteHeader(http.StatusOK)
	if _, err := buf.WriteTo(w); err != nil {
		log.Printf("Error writing export: %v", err)
	}
}
