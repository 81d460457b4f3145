// Package export turns extraction results and gap reports into tables and writes them
// as CSV, JSON or XLSX.
package export

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/jonathan/skill-extractor/internal/types"
)

// Row statuses for gap tables.
const (
	RowMatched = "matched"
	RowMissing = "missing"
)

// SkillRow is one found skill with its display category.
type SkillRow struct {
	Category string `json:"category"`
	Skill    string `json:"skill"`
}

// GapRow is one required skill with whether the candidate has it.
type GapRow struct {
	Skill  string `json:"skill"`
	Status string `json:"status"`
}

var titleCaser = cases.Title(language.English)

// CategoryTitle turns a category key such as "cloud_platforms" into "Cloud Platforms".
func CategoryTitle(category string) string {
	return titleCaser.String(strings.ReplaceAll(category, "_", " "))
}

// SkillRows flattens a result into rows, category order then skill order.
func SkillRows(result *types.ExtractionResult) []SkillRow {
	rows := []SkillRow{}
	if result == nil {
		return rows
	}
	for _, c := range result.Categories {
		title := CategoryTitle(c.Category)
		for _, s := range c.Skills {
			rows = append(rows, SkillRow{Category: title, Skill: s})
		}
	}
	return rows
}

// GapRows lists matched skills first, then missing ones, each in report order.
func GapRows(report *types.GapReport) []GapRow {
	rows := []GapRow{}
	if report == nil {
		return rows
	}
	for _, s := range report.Matched {
		rows = append(rows, GapRow{Skill: s, Status: RowMatched})
	}
	for _, s := range report.Missing {
		rows = append(rows, GapRow{Skill: s, Status: RowMissing})
	}
	return rows
}
