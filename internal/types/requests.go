package types

import "github.com/go-playground/validator/v10"

// validate is safe for concurrent use and caches struct metadata.
var validate = validator.New()

// CleanRequest asks for text normalization. Mode is "basic" (default), "resume" or
// "stopwords".
type CleanRequest struct {
	Text string `json:"text"`
	Mode string `json:"mode,omitempty" validate:"omitempty,oneof=basic resume stopwords"`
}

// ExtractRequest asks for skill extraction from raw text.
type ExtractRequest struct {
	Text string `json:"text"`
}

// NormalizeRequest asks for abbreviation expansion.
type NormalizeRequest struct {
	Skills []string `json:"skills" validate:"required"`
}

// GapRequest compares a candidate with a requirement. Either the texts or the
// pre-extracted category groups must be given for each side.
type GapRequest struct {
	CandidateText     string          `json:"candidate_text,omitempty" validate:"required_without=Candidate"`
	RequirementText   string          `json:"requirement_text,omitempty" validate:"required_without=Requirement"`
	Candidate         []CategoryMatch `json:"candidate,omitempty"`
	Requirement       []CategoryMatch `json:"requirement,omitempty"`
	CandidateSource   string          `json:"candidate_source,omitempty" validate:"max=512"`
	RequirementSource string          `json:"requirement_source,omitempty" validate:"max=512"`
}

// RecommendRequest asks for related-skill suggestions.
type RecommendRequest struct {
	Text  string          `json:"text,omitempty" validate:"required_without=Found"`
	Found []CategoryMatch `json:"found,omitempty"`
}

// SimilarityRequest compares skill lists through sentence embeddings.
type SimilarityRequest struct {
	ResumeSkills []string `json:"resume_skills" validate:"required,min=1,dive,required"`
	JDSkills     []string `json:"jd_skills" validate:"required,min=1,dive,required"`
	TopK         int      `json:"top_k,omitempty" validate:"gte=0,lte=20"`
}

// AnalysisRequest asks for a saved analysis. Each side is given either as inline text or as
// an http(s) URL to fetch.
type AnalysisRequest struct {
	CandidateText   string `json:"candidate_text,omitempty" validate:"required_without=CandidateURL"`
	CandidateURL    string `json:"candidate_url,omitempty" validate:"omitempty,http_url"`
	RequirementText string `json:"requirement_text,omitempty" validate:"required_without=RequirementURL"`
	RequirementURL  string `json:"requirement_url,omitempty" validate:"omitempty,http_url"`
}

// Validate validates the CleanRequest using the validator.
func (r *CleanRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the NormalizeRequest using the validator.
func (r *NormalizeRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the GapRequest using the validator.
func (r *GapRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the RecommendRequest using the validator.
func (r *RecommendRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the SimilarityRequest using the validator.
func (r *SimilarityRequest) Validate() error {
	return validate.Struct(r)
}

// Validate validates the AnalysisRequest using the validator.
func (r *AnalysisRequest) Validate() error {
	return validate.Struct(r)
}
