package types

// Similarity statuses for the embedding-based gap report.
const (
	StatusStrong  = "Strong"
	StatusPartial = "Partial"
	StatusMissing = "Missing"
)

// SimilarityRow is one line of the embedding-based gap report.
type SimilarityRow struct {
	JDSkill     string  `json:"jd_skill"`
	ResumeMatch string  `json:"resume_match"`
	Score       float64 `json:"score"`
	Status      string  `json:"status"`
}

// TopMatch is one of the best job-description matches for a resume skill.
type TopMatch struct {
	ResumeSkill string  `json:"resume_skill"`
	JDMatch     string  `json:"jd_match"`
	Score       float64 `json:"similarity_score"`
}
