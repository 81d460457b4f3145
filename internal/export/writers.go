package export

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/jonathan/skill-extractor/internal/schemas"
	"github.com/jonathan/skill-extractor/internal/skills"
	"github.com/jonathan/skill-extractor/internal/types"
)

// Format is an export file format.
type Format string

// Supported formats.
const (
	FormatCSV  Format = "csv"
	FormatJSON Format = "json"
	FormatXLSX Format = "xlsx"
)

// maxSheetName is the Excel limit on worksheet names.
const maxSheetName = 31

// ParseFormat accepts "csv", "json" or "xlsx"; empty means JSON.
func ParseFormat(s string) (Format, error) {
	switch Format(s) {
	case "":
		return FormatJSON, nil
	case FormatCSV, FormatJSON, FormatXLSX:
		return Format(s), nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

// ContentType returns the MIME type for a format.
func (f Format) ContentType() string {
	switch f {
	case FormatCSV:
		return "text/csv"
	case FormatXLSX:
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	default:
		return "application/json"
	}
}

// Write writes an analysis in the given format.
func Write(w io.Writer, format Format, a *types.Analysis) error {
	switch format {
	case FormatCSV:
		return WriteAnalysisCSV(w, a)
	case FormatXLSX:
		return WriteXLSX(w, a)
	default:
		return WriteJSON(w, a)
	}
}

// WriteCSV writes skill rows with a Category,Skill header.
func WriteCSV(w io.Writer, rows []SkillRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Category", "Skill"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Category, r.Skill}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteGapCSV writes gap rows with a Skill,Status header.
func WriteGapCSV(w io.Writer, rows []GapRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"Skill", "Status"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	for _, r := range rows {
		if err := cw.Write([]string{r.Skill, r.Status}); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteAnalysisCSV writes the gap table of an analysis.
func WriteAnalysisCSV(w io.Writer, a *types.Analysis) error {
	return WriteGapCSV(w, GapRows(a.Report))
}

// WriteJSON validates an analysis against the analysis schema and writes it indented.
func WriteJSON(w io.Writer, a *types.Analysis) error {
	data, err := json.MarshalIndent(withEmptySlices(a), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal analysis: %w", err)
	}
	if err := schemas.Validate(schemas.Analysis, data); err != nil {
		return fmt.Errorf("analysis failed schema validation: %w", err)
	}
	if _, err := w.Write(append(data, '\n')); err != nil {
		return fmt.Errorf("failed to write analysis: %w", err)
	}
	return nil
}

// withEmptySlices returns a copy whose nil slices marshal as [] rather than null.
func withEmptySlices(a *types.Analysis) *types.Analysis {
	out := *a
	if out.Candidate == nil {
		out.Candidate = types.FromGroups(nil)
	}
	if out.Requirement == nil {
		out.Requirement = types.FromGroups(nil)
	}
	report := types.GapReport{Matched: []string{}, Missing: []string{}}
	if out.Report != nil {
		report = *out.Report
		if report.Matched == nil {
			report.Matched = []string{}
		}
		if report.Missing == nil {
			report.Missing = []string{}
		}
	}
	out.Report = &report
	if out.Recommendations == nil {
		out.Recommendations = []string{}
	}
	return &out
}

// WriteXLSX writes a workbook with a Summary sheet, a Gap sheet and one sheet per
// candidate category.
func WriteXLSX(w io.Writer, a *types.Analysis) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	const summary = "Summary"
	if err := f.SetSheetName("Sheet1", summary); err != nil {
		return fmt.Errorf("failed to rename sheet: %w", err)
	}

	pct := 0.0
	if a.Report != nil {
		pct = skills.RoundPercentage(a.Report.MatchPercentage)
	}
	summaryRows := [][]interface{}{
		{"Field", "Value"},
		{"Candidate", a.CandidateSource},
		{"Requirement", a.RequirementSource},
		{"Match percentage", pct},
		{"Status", a.Status},
		{"Candidate skills", len(a.Candidate.Flatten())},
		{"Required skills", len(a.Requirement.Flatten())},
	}
	if len(a.Recommendations) > 0 {
		summaryRows = append(summaryRows, []interface{}{"Recommendations", strings.Join(a.Recommendations, ", ")})
	}
	if err := writeRows(f, summary, summaryRows); err != nil {
		return err
	}

	gap := [][]interface{}{{"Skill", "Status"}}
	for _, r := range GapRows(a.Report) {
		gap = append(gap, []interface{}{r.Skill, r.Status})
	}
	if err := addSheet(f, "Gap", gap); err != nil {
		return err
	}

	if a.Candidate != nil {
		used := map[string]bool{summary: true, "Gap": true}
		for _, c := range a.Candidate.Categories {
			base := []rune(SheetName(CategoryTitle(c.Category)))
			name := string(base)
			for i := 2; used[name]; i++ {
				suffix := " " + strconv.Itoa(i)
				name = string(base[:min(len(base), maxSheetName-len(suffix))]) + suffix
			}
			used[name] = true

			rows := [][]interface{}{{"Skill"}}
			for _, s := range c.Skills {
				rows = append(rows, []interface{}{s})
			}
			if err := addSheet(f, name, rows); err != nil {
				return err
			}
		}
	}

	if err := f.Write(w); err != nil {
		return fmt.Errorf("failed to write workbook: %w", err)
	}
	return nil
}

// SheetName truncates a name to the 31 rune Excel limit.
func SheetName(name string) string {
	r := []rune(name)
	if len(r) > maxSheetName {
		return string(r[:maxSheetName])
	}
	return name
}

func addSheet(f *excelize.File, name string, rows [][]interface{}) error {
	if _, err := f.NewSheet(name); err != nil {
		return fmt.Errorf("failed to create sheet %q: %w", name, err)
	}
	return writeRows(f, name, rows)
}

func writeRows(f *excelize.File, sheet string, rows [][]interface{}) error {
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			return fmt.Errorf("failed to write sheet %q: %w", sheet, err)
		}
	}
	return nil
}
