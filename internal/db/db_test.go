package db

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-extractor/internal/types"
)

func TestSchema_DefinesTables(t *testing.T) {
	schema := Schema()
	assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS skill_analyses")
	assert.Contains(t, schema, "CREATE TABLE IF NOT EXISTS fetched_pages")
}

func TestClampPage(t *testing.T) {
	tests := []struct {
		name           string
		limit, offset  int
		wantL, wantOff int
	}{
		{"defaults", 0, 0, DefaultListLimit, 0},
		{"negative", -5, -1, DefaultListLimit, 0},
		{"capped", 1000, 40, MaxListLimit, 40},
		{"passthrough", 10, 30, 10, 30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l, o := clampPage(tt.limit, tt.offset)
			assert.Equal(t, tt.wantL, l)
			assert.Equal(t, tt.wantOff, o)
		})
	}
}

func TestEncodeDecodeAnalysis(t *testing.T) {
	in := &types.Analysis{
		Candidate: types.FromGroups([]types.CategoryMatch{
			{Category: "programming_languages", Skills: []string{"Go"}},
		}),
		Report:          &types.GapReport{MatchPercentage: 50, Matched: []string{"Go"}, Missing: []string{"AWS"}},
		Recommendations: nil,
	}
	cols, err := encodeAnalysis(in)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(cols.recommendations))
	assert.JSONEq(t, `{"categories":[],"all_skills":[]}`, string(cols.requirement))

	out := &types.Analysis{Report: &types.GapReport{}}
	require.NoError(t, decodeAnalysis(out, cols.matched, cols.missing, cols.recommendations, cols.candidate, cols.requirement))
	assert.Equal(t, []string{"Go"}, out.Report.Matched)
	assert.Equal(t, []string{"AWS"}, out.Report.Missing)
	assert.Equal(t, []string{}, out.Recommendations)
	assert.Equal(t, []string{"Go"}, out.Candidate.Found("programming_languages"))
	assert.Equal(t, 0, out.Requirement.Total())
}

func TestDecodeAnalysis_BadJSON(t *testing.T) {
	out := &types.Analysis{Report: &types.GapReport{}}
	empty, _ := json.Marshal([]string{})
	err := decodeAnalysis(out, []byte("{"), empty, empty, []byte("{}"), []byte("{}"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "matched")
}
