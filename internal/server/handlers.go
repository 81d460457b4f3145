package server

import (
	"net/http"

	"github.com/jonathan/skill-extractor/internal/ingestion"
	"github.com/jonathan/skill-extractor/internal/pipeline"
	"github.com/jonathan/skill-extractor/internal/similarity"
	"github.com/jonathan/skill-extractor/internal/skills"
	"github.com/jonathan/skill-extractor/internal/types"
)

// CleanResponse is the body of POST /clean.
type CleanResponse struct {
	Mode string `json:"mode"`
	Text string `json:"text"`
}

// ExtractResponse is the body of POST /extract.
type ExtractResponse struct {
	Result   *types.ExtractionResult `json:"result"`
	Overview *types.SkillOverview    `json:"overview"`
}

// NormalizeResponse is the body of POST /normalize.
type NormalizeResponse struct {
	Skills  []types.NormalizedSkill `json:"skills"`
	Changes int                     `json:"changes"`
}

// RecommendResponse is the body of POST /recommend.
type RecommendResponse struct {
	Found           []string               `json:"found"`
	Recommendations []types.Recommendation `json:"recommendations"`
}

// SimilarityResponse is the body of POST /similarity.
type SimilarityResponse struct {
	Rows       []types.SimilarityRow `json:"rows"`
	Summary    map[string]int        `json:"summary"`
	TopMatches []types.TopMatch      `json:"top_matches"`
}

// handleSkills returns the skill database and its table sizes.
func (s *Server) handleSkills(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"overview": s.skills.Overview(),
		"database": s.skills,
	})
}

func (s *Server) handleClean(w http.ResponseWriter, r *http.Request) {
	var req types.CleanRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFrom(w, err)
		return
	}

	resp := CleanResponse{Mode: req.Mode}
	switch req.Mode {
	case "resume":
		resp.Text = ingestion.CleanResumeText(req.Text)
	case "stopwords":
		resp.Text = ingestion.RemoveStopWords(ingestion.BasicClean(req.Text))
	default:
		resp.Mode = "basic"
		resp.Text = ingestion.BasicClean(req.Text)
	}
	s.jsonResponse(w, http.StatusOK, resp)
}

func (s *Server) handleExtract(w http.ResponseWriter, r *http.Request) {
	var req types.ExtractRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}

	result := skills.Extract(s.skills, req.Text)
	s.jsonResponse(w, http.StatusOK, ExtractResponse{
		Result:   result,
		Overview: skills.Summarize(s.skills, result),
	})
}

func (s *Server) handleNormalize(w http.ResponseWriter, r *http.Request) {
	var req types.NormalizeRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFrom(w, err)
		return
	}

	detailed := skills.NormalizeDetailed(s.skills, req.Skills)
	changes := 0
	for _, d := range detailed {
		if d.Changed {
			changes++
		}
	}
	s.jsonResponse(w, http.StatusOK, NormalizeResponse{Skills: detailed, Changes: changes})
}

// handleGap compares candidate and requirement without saving anything.
func (s *Server) handleGap(w http.ResponseWriter, r *http.Request) {
	var req types.GapRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFrom(w, err)
		return
	}

	analysis := pipeline.NewAnalysis(s.skills,
		s.resolveSide(req.CandidateText, req.Candidate),
		s.resolveSide(req.RequirementText, req.Requirement))
	analysis.CandidateSource = req.CandidateSource
	analysis.RequirementSource = req.RequirementSource
	s.jsonResponse(w, http.StatusOK, analysis)
}

// resolveSide prefers caller-supplied groups over extraction from text.
func (s *Server) resolveSide(text string, groups []types.CategoryMatch) *types.ExtractionResult {
	if len(groups) > 0 {
		return types.FromGroups(groups)
	}
	return skills.Extract(s.skills, text)
}

func (s *Server) handleRecommend(w http.ResponseWriter, r *http.Request) {
	var req types.RecommendRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFrom(w, err)
		return
	}

	found := s.resolveSide(req.Text, req.Found)
	flat := found.Flatten()
	if flat == nil {
		flat = []string{}
	}
	s.jsonResponse(w, http.StatusOK, RecommendResponse{
		Found:           flat,
		Recommendations: skills.ExplainRecommendations(s.skills, found),
	})
}

func (s *Server) handleSimilarity(w http.ResponseWriter, r *http.Request) {
	if s.embedder == nil {
		s.errorFrom(w, similarity.ErrNoEmbedder)
		return
	}
	var req types.SimilarityRequest
	if !s.decodeJSON(w, r, &req) {
		return
	}
	if err := req.Validate(); err != nil {
		s.errorFrom(w, err)
		return
	}

	rows, err := similarity.GapReport(r.Context(), s.embedder, req.JDSkills, req.ResumeSkills)
	if err != nil {
		s.errorFrom(w, err)
		return
	}
	k := req.TopK
	if k == 0 {
		k = s.topK
	}
	top, err := similarity.TopMatches(r.Context(), s.embedder, req.ResumeSkills, req.JDSkills, k)
	if err != nil {
		s.errorFrom(w, err)
		return
	}

	s.jsonResponse(w, http.StatusOK, SimilarityResponse{
		Rows:       rows,
		Summary:    similarity.Summary(rows),
		TopMatches: top,
	})
}
