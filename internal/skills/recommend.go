package skills

import (
	"sort"

	"github.com/jonathan/skill-extractor/internal/types"
)

// Recommend walks the relationship table from every found skill and returns the related
// skills that were not found anywhere, sorted and unique.
func Recommend(db *Database, found *types.ExtractionResult) []string {
	explained := ExplainRecommendations(db, found)
	out := make([]string, len(explained))
	for i, r := range explained {
		out[i] = r.Skill
	}
	return out
}

// ExplainRecommendations is Recommend with, for each suggestion, the found skills that led to it.
func ExplainRecommendations(db *Database, found *types.ExtractionResult) []types.Recommendation {
	pool := found.Flatten()
	have := make(map[string]bool, len(pool))
	for _, s := range pool {
		have[s] = true
	}

	sources := make(map[string][]string)
	linked := make(map[string]map[string]bool)
	for _, s := range pool {
		for _, related := range db.tables.Relationships[s] {
			if have[related] {
				continue
			}
			if linked[related] == nil {
				linked[related] = make(map[string]bool)
			}
			if !linked[related][s] {
				linked[related][s] = true
				sources[related] = append(sources[related], s)
			}
		}
	}

	out := make([]types.Recommendation, 0, len(sources))
	for skill, from := range sources {
		out = append(out, types.Recommendation{Skill: skill, RelatedTo: from})
	}
	sort.Slice(out, func(i, j int) bool {
		return out[i].Skill < out[j].Skill
	})
	return out
}
