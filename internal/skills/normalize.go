package skills

import "github.com/jonathan/skill-extractor/internal/types"

// Normalize maps each skill through the abbreviation table. The result has the same length
// and order as skills; entries that are not exact (case-sensitive) keys are kept as is.
func Normalize(db *Database, skills []string) []string {
	out := make([]string, len(skills))
	for i, s := range skills {
		if full, ok := db.Expand(s); ok {
			out[i] = full
			continue
		}
		out[i] = s
	}
	return out
}

// NormalizeDetailed is Normalize with the original value kept alongside each result.
func NormalizeDetailed(db *Database, skills []string) []types.NormalizedSkill {
	normalized := Normalize(db, skills)
	out := make([]types.NormalizedSkill, len(skills))
	for i := range skills {
		out[i] = types.NormalizedSkill{
			Original:   skills[i],
			Normalized: normalized[i],
			Changed:    skills[i] != normalized[i],
		}
	}
	return out
}

// NormalizationChanges counts positions where normalization changed the value.
func NormalizationChanges(original, normalized []string) int {
	n := 0
	for i := 0; i < len(original) && i < len(normalized); i++ {
		if original[i] != normalized[i] {
			n++
		}
	}
	return n
}
