package types

// GapReport compares candidate skills against required skills.
// MatchPercentage is in [0, 100]; Matched and Missing keep the requirement's
// flattened order, duplicates included.
type GapReport struct {
	MatchPercentage float64  `json:"match_percentage"`
	Matched         []string `json:"matched"`
	Missing         []string `json:"missing"`
}

// TotalRequired returns the size of the flattened requirement list.
func (g *GapReport) TotalRequired() int {
	return len(g.Matched) + len(g.Missing)
}

// Recommendation is a related skill suggested from the found skills.
type Recommendation struct {
	Skill     string   `json:"skill"`
	RelatedTo []string `json:"related_to"`
}

// SkillOverview summarizes an extraction against the whole database.
type SkillOverview struct {
	TotalSkills     int              `json:"total_skills"`
	Categories      int              `json:"categories"`
	TechnicalSkills int              `json:"technical_skills"`
	Coverage        float64          `json:"coverage"`
	Missing         []CategoryMatch  `json:"missing_from_database"`
	Recommendations []Recommendation `json:"recommendations"`
}

// NormalizedSkill pairs an extracted skill with its abbreviation-expanded form.
type NormalizedSkill struct {
	Original   string `json:"original"`
	Normalized string `json:"normalized"`
	Changed    bool   `json:"changed"`
}
