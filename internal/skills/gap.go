package skills

import (
	"math"

	"github.com/jonathan/skill-extractor/internal/types"
)

// Qualitative match levels.
const (
	StatusExcellent        = "Excellent"
	StatusGood             = "Good"
	StatusNeedsImprovement = "Needs improvement"
)

// CalculateMatch compares a candidate's skills with required skills, ignoring categories.
// The requirement is flattened without deduplication, so a skill required under two
// categories is counted twice in Matched or Missing. An empty requirement yields 0%.
func CalculateMatch(candidate, requirement *types.ExtractionResult) *types.GapReport {
	report := &types.GapReport{
		Matched: []string{},
		Missing: []string{},
	}

	required := requirement.Flatten()
	if len(required) == 0 {
		return report
	}

	have := make(map[string]bool)
	for _, s := range candidate.Flatten() {
		have[s] = true
	}

	for _, s := range required {
		if have[s] {
			report.Matched = append(report.Matched, s)
		} else {
			report.Missing = append(report.Missing, s)
		}
	}
	report.MatchPercentage = float64(len(report.Matched)) / float64(len(required)) * 100
	return report
}

// MatchStatus classifies a match percentage. Boundaries are inclusive.
func MatchStatus(percentage float64) string {
	switch {
	case percentage >= 75:
		return StatusExcellent
	case percentage >= 50:
		return StatusGood
	default:
		return StatusNeedsImprovement
	}
}

// RoundPercentage rounds to one decimal place.
func RoundPercentage(percentage float64) float64 {
	return math.Round(percentage*10) / 10
}
