package observability

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"github.com/jonathan/skill-extractor/internal/types"
)

func TestPrintExtraction(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintExtraction("RESUME SKILLS", types.FromGroups([]types.CategoryMatch{
		{Category: "programming_languages", Skills: []string{"Python", "Go"}},
		{Category: "cloud", Skills: []string{"AWS"}},
	}))
	output := buf.String()

	assert.Contains(t, output, "RESUME SKILLS")
	assert.Contains(t, output, "Total skills found: 3")
	assert.Contains(t, output, "Programming Languages (2):")
	assert.Contains(t, output, "Python, Go")
	assert.Contains(t, output, "Cloud (1):")
}

func TestPrintExtraction_Nil(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.PrintExtraction("X", nil)
	p.PrintGapReport(nil)
	p.PrintOverview(nil)
	p.PrintContexts(nil)

	assert.Empty(t, buf.String())
}

func TestPrintGapReport(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintGapReport(&types.GapReport{
		MatchPercentage: 200.0 / 3,
		Matched:         []string{"Python", "AWS"},
		Missing:         []string{"Docker"},
	})
	output := buf.String()

	assert.Contains(t, output, "66.7%")
	assert.Contains(t, output, "Good")
	assert.Contains(t, output, "Matched (2):")
	assert.Contains(t, output, "Missing (1):")
	assert.Contains(t, output, "Docker")
}

func TestPrintContexts(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintContexts(&types.ExtractionResult{Categories: []types.CategoryMatch{{
		Category: "programming_languages",
		Skills:   []string{"Python"},
		Contexts: map[string][]string{"Python": {"years of Python work"}},
	}}})
	assert.Contains(t, buf.String(), "...years of Python work...")
}

func TestPrintRecommendations(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)
	p.PrintRecommendations([]types.Recommendation{{Skill: "Django", RelatedTo: []string{"Python"}}})
	assert.Contains(t, buf.String(), "Django (from Python)")

	buf.Reset()
	p.PrintRecommendations(nil)
	assert.Contains(t, buf.String(), "No recommendations")
}

func TestPrintNormalized(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintNormalized([]types.NormalizedSkill{
		{Original: "ML", Normalized: "Machine Learning", Changed: true},
		{Original: "Python", Normalized: "Python"},
	})
	assert.Contains(t, buf.String(), "ML -> Machine Learning")
	assert.Contains(t, buf.String(), "1 of 2 expanded")
}

func TestPrintSimilarity(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintSimilarity([]types.SimilarityRow{
		{JDSkill: "Kubernetes", ResumeMatch: "Docker", Score: 0.81, Status: "Strong"},
		{JDSkill: "Leadership", ResumeMatch: "-", Score: 0.2, Status: "Missing"},
	})
	output := buf.String()
	assert.Contains(t, output, "SEMANTIC SKILL GAP")
	assert.Contains(t, output, "0.81 Strong")
	assert.Contains(t, output, "Missing")
}

func TestPrintTopMatches_GroupsByResumeSkill(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).PrintTopMatches([]types.TopMatch{
		{ResumeSkill: "Go", JDMatch: "Golang", Score: 0.9},
		{ResumeSkill: "Go", JDMatch: "Rust", Score: 0.5},
	})
	assert.Equal(t, 1, strings.Count(buf.String(), "Go:"))
	assert.Contains(t, buf.String(), "0.900  Golang")
}

func TestPrintAnalyses(t *testing.T) {
	var buf bytes.Buffer
	id := uuid.New()
	NewPrinter(&buf).PrintAnalyses([]types.Analysis{{
		ID:                id,
		RequirementSource: "jd.txt",
		Report:            &types.GapReport{MatchPercentage: 80},
		Status:            "Excellent",
		CreatedAt:         time.Date(2026, 3, 1, 9, 30, 0, 0, time.UTC),
	}})
	output := buf.String()
	assert.Contains(t, output, id.String()[:8])
	assert.Contains(t, output, "80.0%")
	assert.Contains(t, output, "2026-03-01 09:30")
}

func TestPrintBox_TruncatesLongLines(t *testing.T) {
	var buf bytes.Buffer
	NewPrinter(&buf).printBox("T", strings.Repeat("é", 100))
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth)
	}
	assert.Contains(t, buf.String(), "...")
}

func TestWrapList(t *testing.T) {
	items := []string{"Kubernetes", "Terraform", "Ansible", "Jenkins", "Docker", "Elasticsearch", "PostgreSQL"}
	out := wrapList(items, "  ")
	for _, line := range strings.Split(out, "\n") {
		assert.LessOrEqual(t, len([]rune(line)), boxWidth-4)
		assert.True(t, strings.HasPrefix(line, "  "))
	}
	assert.Contains(t, out, "PostgreSQL")
}
