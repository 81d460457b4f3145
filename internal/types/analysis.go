package types

import (
	"time"

	"github.com/google/uuid"
)

// Analysis is a complete candidate-versus-requirement comparison, as persisted and served.
type Analysis struct {
	ID                uuid.UUID         `json:"id"`
	Owner             string            `json:"owner,omitempty"`
	CandidateSource   string            `json:"candidate_source,omitempty"`
	RequirementSource string            `json:"requirement_source,omitempty"`
	Candidate         *ExtractionResult `json:"candidate"`
	Requirement       *ExtractionResult `json:"requirement"`
	Report            *GapReport        `json:"report"`
	Status            string            `json:"status"`
	Recommendations   []string          `json:"recommendations"`
	CreatedAt         time.Time         `json:"created_at"`
}
