// Package steps defines the analysis pipeline steps, their categories and dependencies,
// and tracks step completion for one run.
package steps

import (
	"fmt"
	"sort"
	"sync"
)

// Step categories
const (
	CategoryIngestion  = "ingestion"
	CategoryExtraction = "extraction"
	CategoryAnalysis   = "analysis"
	CategoryStorage    = "storage"
)

// Step names
const (
	IngestCandidate    = "ingest_candidate"
	IngestRequirement  = "ingest_requirement"
	ExtractCandidate   = "extract_candidate"
	ExtractRequirement = "extract_requirement"
	MatchSkills        = "match_skills"
	RecommendSkills    = "recommend_skills"
	SaveAnalysis       = "save_analysis"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
}

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	IngestCandidate: {
		Name:     IngestCandidate,
		Category: CategoryIngestion,
	},
	IngestRequirement: {
		Name:     IngestRequirement,
		Category: CategoryIngestion,
	},
	ExtractCandidate: {
		Name:         ExtractCandidate,
		Category:     CategoryExtraction,
		Dependencies: []string{IngestCandidate},
	},
	ExtractRequirement: {
		Name:         ExtractRequirement,
		Category:     CategoryExtraction,
		Dependencies: []string{IngestRequirement},
	},
	MatchSkills: {
		Name:         MatchSkills,
		Category:     CategoryAnalysis,
		Dependencies: []string{ExtractCandidate, ExtractRequirement},
	},
	RecommendSkills: {
		Name:         RecommendSkills,
		Category:     CategoryAnalysis,
		Dependencies: []string{ExtractCandidate},
	},
	SaveAnalysis: {
		Name:         SaveAnalysis,
		Category:     CategoryStorage,
		Dependencies: []string{MatchSkills, RecommendSkills},
	},
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s: missing dependencies: %v", e.Step, e.MissingDependencies)
}

// Category returns the category of a step, or "" for an unknown step.
func Category(step string) string {
	return StepRegistry[step].Category
}

// Tracker records completed steps of one run. It is safe for concurrent use.
type Tracker struct {
	mu        sync.Mutex
	completed map[string]bool
}

// NewTracker returns a tracker with no completed steps.
func NewTracker() *Tracker {
	return &Tracker{completed: make(map[string]bool)}
}

// ValidateDependencies checks if all required dependencies for a step are completed
func (t *Tracker) ValidateDependencies(stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	t.mu.Lock()
	defer t.mu.Unlock()
	var missing []string
	for _, dep := range def.Dependencies {
		if !t.completed[dep] {
			missing = append(missing, dep)
		}
	}
	if len(missing) > 0 {
		return &DependencyError{
			Step:                stepName,
			MissingDependencies: missing,
		}
	}
	return nil
}

// Complete marks a step as done after checking its dependencies.
func (t *Tracker) Complete(stepName string) error {
	if err := t.ValidateDependencies(stepName); err != nil {
		return err
	}
	t.mu.Lock()
	t.completed[stepName] = true
	t.mu.Unlock()
	return nil
}

// Completed reports whether a step is done.
func (t *Tracker) Completed(stepName string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completed[stepName]
}

// AvailableSteps returns the sorted steps not yet completed whose dependencies are met.
func (t *Tracker) AvailableSteps() []string {
	var available []string
	for stepName := range StepRegistry {
		if t.Completed(stepName) {
			continue
		}
		if err := t.ValidateDependencies(stepName); err != nil {
			continue
		}
		available = append(available, stepName)
	}
	sort.Strings(available)
	return available
}
