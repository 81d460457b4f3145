// Package types provides type definitions for structured data used throughout the skill-extractor system.
//
//nolint:revive // types is a standard Go package name pattern
package types

// CategoryMatch holds the skills found for one database category.
type CategoryMatch struct {
	Category string   `json:"category"`
	Skills   []string `json:"skills"`
	// Contexts maps a found skill to every text window around its literal occurrences.
	// Skills matched only through a synonym have no entry.
	Contexts map[string][]string `json:"contexts,omitempty"`
}

// ExtractionResult is the output of one extraction call. Categories follow the
// database declaration order and categories without matches are omitted.
type ExtractionResult struct {
	Categories []CategoryMatch `json:"categories"`
	AllSkills  []string        `json:"all_skills"`
}

// Found returns the skills found for a category, or nil when the category had no match.
func (r *ExtractionResult) Found(category string) []string {
	if r == nil {
		return nil
	}
	for _, c := range r.Categories {
		if c.Category == category {
			return c.Skills
		}
	}
	return nil
}

// Has reports whether the category has at least one found skill.
func (r *ExtractionResult) Has(category string) bool {
	return len(r.Found(category)) > 0
}

// Total returns the number of found skills across categories.
func (r *ExtractionResult) Total() int {
	if r == nil {
		return 0
	}
	n := 0
	for _, c := range r.Categories {
		n += len(c.Skills)
	}
	return n
}

// Map returns the category -> skills view of the result.
func (r *ExtractionResult) Map() map[string][]string {
	out := make(map[string][]string)
	if r == nil {
		return out
	}
	for _, c := range r.Categories {
		out[c.Category] = append([]string(nil), c.Skills...)
	}
	return out
}

// Flatten concatenates category skill lists in order without deduplication.
func (r *ExtractionResult) Flatten() []string {
	if r == nil {
		return nil
	}
	var out []string
	for _, c := range r.Categories {
		out = append(out, c.Skills...)
	}
	return out
}

// FromGroups builds a result from ordered category groups, such as a caller-supplied
// requirement list. Empty groups are dropped; AllSkills is deduplicated in order.
func FromGroups(groups []CategoryMatch) *ExtractionResult {
	result := &ExtractionResult{
		Categories: make([]CategoryMatch, 0, len(groups)),
		AllSkills:  []string{},
	}
	seen := make(map[string]bool)
	for _, g := range groups {
		if len(g.Skills) == 0 {
			continue
		}
		result.Categories = append(result.Categories, CategoryMatch{
			Category: g.Category,
			Skills:   append([]string(nil), g.Skills...),
			Contexts: g.Contexts,
		})
		for _, s := range g.Skills {
			if !seen[s] {
				seen[s] = true
				result.AllSkills = append(result.AllSkills, s)
			}
		}
	}
	return result
}
