package skills

import "github.com/jonathan/skill-extractor/internal/types"

// Coverage is the share of database skills that were found, as a percentage.
func Coverage(db *Database, result *types.ExtractionResult) float64 {
	if db.total == 0 {
		return 0
	}
	found := 0
	for _, s := range result.Flatten() {
		if _, ok := db.versioned[s]; ok {
			found++
		}
	}
	return float64(min(found, db.total)) / float64(db.total) * 100
}

// TechnicalCount counts found skills outside the soft skills category.
func TechnicalCount(result *types.ExtractionResult) int {
	n := 0
	for _, c := range result.Categories {
		if c.Category != SoftSkills {
			n += len(c.Skills)
		}
	}
	return n
}

// MissingFromDatabase lists, per category, the database skills that were not found.
// Category and skill order follow the database; fully covered categories are omitted.
func MissingFromDatabase(db *Database, result *types.ExtractionResult) []types.CategoryMatch {
	have := make(map[string]bool)
	for _, s := range result.Flatten() {
		have[s] = true
	}

	var out []types.CategoryMatch
	for _, c := range db.categories {
		var missing []string
		for _, s := range c.Skills {
			if !have[s] {
				missing = append(missing, s)
			}
		}
		if len(missing) > 0 {
			out = append(out, types.CategoryMatch{Category: c.Name, Skills: missing})
		}
	}
	return out
}

// Summarize collects the counts, coverage, gaps and recommendations for one extraction.
func Summarize(db *Database, result *types.ExtractionResult) *types.SkillOverview {
	return &types.SkillOverview{
		TotalSkills:     result.Total(),
		Categories:      len(result.Categories),
		TechnicalSkills: TechnicalCount(result),
		Coverage:        Coverage(db, result),
		Missing:         MissingFromDatabase(db, result),
		Recommendations: ExplainRecommendations(db, result),
	}
}
