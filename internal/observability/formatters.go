// Package observability provides formatted output utilities for the CLI.
package observability

import (
	"fmt"
	"io"
	"strings"

	"github.com/jonathan/skill-extractor/internal/export"
	"github.com/jonathan/skill-extractor/internal/skills"
	"github.com/jonathan/skill-extractor/internal/types"
)

const (
	// boxWidth is the default width for formatted output boxes
	boxWidth = 60
	// maxItemsToShow is the default number of items to display in lists
	maxItemsToShow = 5
)

// Printer handles formatted output for the CLI
type Printer struct {
	out io.Writer
}

// NewPrinter creates a new Printer that writes to the given writer
func NewPrinter(out io.Writer) *Printer {
	return &Printer{out: out}
}

// printBox prints a formatted box with a title and content
//
//nolint:errcheck // writing to stdout; errors are not recoverable
func (p *Printer) printBox(title string, content string) {
	border := strings.Repeat("─", boxWidth-2)
	fmt.Fprintf(p.out, "┌%s┐\n", border)
	fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, title)
	fmt.Fprintf(p.out, "├%s┤\n", border)

	lines := strings.Split(content, "\n")
	for _, line := range lines {
		// Truncate long lines
		if r := []rune(line); len(r) > boxWidth-4 {
			line = string(r[:boxWidth-7]) + "..."
		}
		fmt.Fprintf(p.out, "│ %-*s │\n", boxWidth-4, line)
	}

	fmt.Fprintf(p.out, "└%s┘\n", border)
}

// wrapList joins items into comma separated lines that fit the box.
func wrapList(items []string, indent string) string {
	var sb strings.Builder
	line := indent
	for i, item := range items {
		piece := item
		if i < len(items)-1 {
			piece += ", "
		}
		if len([]rune(line))+len([]rune(piece)) > boxWidth-4 && strings.TrimSpace(line) != "" {
			sb.WriteString(strings.TrimRight(line, " ") + "\n")
			line = indent
		}
		line += piece
	}
	sb.WriteString(line)
	return sb.String()
}

// PrintExtraction outputs found skills grouped by category.
func (p *Printer) PrintExtraction(title string, result *types.ExtractionResult) {
	if result == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Total skills found: %d\n", result.Total()))
	for _, c := range result.Categories {
		sb.WriteString(fmt.Sprintf("\n%s (%d):\n", export.CategoryTitle(c.Category), len(c.Skills)))
		sb.WriteString(wrapList(c.Skills, "  ") + "\n")
	}
	p.printBox(title, strings.TrimSuffix(sb.String(), "\n"))
}

// PrintContexts outputs up to maxItemsToShow context windows per skill.
func (p *Printer) PrintContexts(result *types.ExtractionResult) {
	if result == nil {
		return
	}
	var sb strings.Builder
	for _, c := range result.Categories {
		for _, s := range c.Skills {
			windows := c.Contexts[s]
			if len(windows) == 0 {
				continue
			}
			sb.WriteString(fmt.Sprintf("%s:\n", s))
			for _, w := range windows[:min(len(windows), maxItemsToShow)] {
				sb.WriteString(fmt.Sprintf("  ...%s...\n", w))
			}
			if len(windows) > maxItemsToShow {
				sb.WriteString(fmt.Sprintf("  ... and %d more\n", len(windows)-maxItemsToShow))
			}
		}
	}
	if sb.Len() == 0 {
		return
	}
	p.printBox("SKILL CONTEXTS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintGapReport outputs the match percentage, qualitative status and skill lists.
func (p *Printer) PrintGapReport(report *types.GapReport) {
	if report == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Match:   %.1f%%\n", skills.RoundPercentage(report.MatchPercentage)))
	sb.WriteString(fmt.Sprintf("Status:  %s\n", skills.MatchStatus(report.MatchPercentage)))
	sb.WriteString(fmt.Sprintf("\nMatched (%d):\n", len(report.Matched)))
	if len(report.Matched) > 0 {
		sb.WriteString(wrapList(report.Matched, "  ") + "\n")
	}
	sb.WriteString(fmt.Sprintf("\nMissing (%d):\n", len(report.Missing)))
	if len(report.Missing) > 0 {
		sb.WriteString(wrapList(report.Missing, "  ") + "\n")
	}
	p.printBox("SKILL GAP", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintRecommendations outputs suggested skills with the found skills behind them.
func (p *Printer) PrintRecommendations(recs []types.Recommendation) {
	var sb strings.Builder
	if len(recs) == 0 {
		sb.WriteString("No recommendations")
	}
	for _, r := range recs {
		sb.WriteString(fmt.Sprintf("  • %s (from %s)\n", r.Skill, strings.Join(r.RelatedTo, ", ")))
	}
	p.printBox("RECOMMENDED SKILLS", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintNormalized outputs each skill with its expansion, marking changed entries.
func (p *Printer) PrintNormalized(items []types.NormalizedSkill) {
	var sb strings.Builder
	changed := 0
	for _, n := range items {
		if n.Changed {
			changed++
			sb.WriteString(fmt.Sprintf("  %s -> %s\n", n.Original, n.Normalized))
		} else {
			sb.WriteString(fmt.Sprintf("  %s\n", n.Original))
		}
	}
	sb.WriteString(fmt.Sprintf("\n%d of %d expanded", changed, len(items)))
	p.printBox("NORMALIZED SKILLS", sb.String())
}

// PrintOverview outputs database coverage for an extraction.
func (p *Printer) PrintOverview(o *types.SkillOverview) {
	if o == nil {
		return
	}
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("Skills found:     %d\n", o.TotalSkills))
	sb.WriteString(fmt.Sprintf("Categories:       %d\n", o.Categories))
	sb.WriteString(fmt.Sprintf("Technical skills: %d\n", o.TechnicalSkills))
	sb.WriteString(fmt.Sprintf("Coverage:         %.1f%%", o.Coverage))
	p.printBox("SKILL OVERVIEW", sb.String())
}

// PrintSimilarity outputs the embedding gap report as a table.
func (p *Printer) PrintSimilarity(rows []types.SimilarityRow) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("%-20s %-20s %5s %s\n", "JD skill", "Resume match", "Score", "Status"))
	for _, r := range rows {
		sb.WriteString(fmt.Sprintf("%-20s %-20s %5.2f %s\n", clip(r.JDSkill, 20), clip(r.ResumeMatch, 20), r.Score, r.Status))
	}
	p.printBox("SEMANTIC SKILL GAP", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintTopMatches outputs the best job-description matches per resume skill.
func (p *Printer) PrintTopMatches(matches []types.TopMatch) {
	var sb strings.Builder
	current := ""
	for _, m := range matches {
		if m.ResumeSkill != current {
			current = m.ResumeSkill
			sb.WriteString(fmt.Sprintf("%s:\n", current))
		}
		sb.WriteString(fmt.Sprintf("  %.3f  %s\n", m.Score, m.JDMatch))
	}
	p.printBox("TOP MATCHES", strings.TrimSuffix(sb.String(), "\n"))
}

// PrintAnalyses outputs a list of saved analyses.
func (p *Printer) PrintAnalyses(list []types.Analysis) {
	var sb strings.Builder
	if len(list) == 0 {
		sb.WriteString("No saved analyses")
	}
	for _, a := range list {
		pct := 0.0
		if a.Report != nil {
			pct = skills.RoundPercentage(a.Report.MatchPercentage)
		}
		sb.WriteString(fmt.Sprintf("%s  %5.1f%%  %s\n", a.ID, pct, a.Status))
		sb.WriteString(fmt.Sprintf("  %s  %s\n", a.CreatedAt.Format("2006-01-02 15:04"), clip(a.RequirementSource, 38)))
	}
	p.printBox("SAVED ANALYSES", strings.TrimSuffix(sb.String(), "\n"))
}

func clip(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
