package similarity

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/skill-extractor/internal/types"
)

// fakeEmbedder returns fixed vectors by text; unknown texts get a zero vector.
type fakeEmbedder struct {
	vectors map[string][]float32
	err     error
	calls   int
}

func (f *fakeEmbedder) Embed(_ context.Context, texts []string) ([][]float32, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	out := make([][]float32, len(texts))
	for i, t := range texts {
		v, ok := f.vectors[t]
		if !ok {
			v = []float32{0, 0, 0}
		}
		out[i] = v
	}
	return out, nil
}

func newFake() *fakeEmbedder {
	return &fakeEmbedder{vectors: map[string][]float32{
		"Python":           {1, 0, 0},
		"Python scripting": {0.9, 0.1, 0},
		"Kubernetes":       {0, 1, 0},
		"Docker":           {0, 0.8, 0.6},
		"Leadership":       {0, 0, 1},
		"Go":               {0.6, 0, 0.8},
	}}
}

func TestCosine(t *testing.T) {
	assert.InDelta(t, 1.0, Cosine([]float32{1, 2}, []float32{2, 4}), 1e-9)
	assert.InDelta(t, 0.0, Cosine([]float32{1, 0}, []float32{0, 1}), 1e-9)
	assert.InDelta(t, -1.0, Cosine([]float32{1, 0}, []float32{-1, 0}), 1e-9)
	assert.Equal(t, 0.0, Cosine([]float32{0, 0}, []float32{1, 1}))
	assert.Equal(t, 0.0, Cosine([]float32{1}, []float32{1, 1}))
	assert.Equal(t, 0.0, Cosine(nil, nil))
}

func TestStatus(t *testing.T) {
	assert.Equal(t, types.StatusStrong, Status(0.75))
	assert.Equal(t, types.StatusStrong, Status(0.99))
	assert.Equal(t, types.StatusPartial, Status(0.5))
	assert.Equal(t, types.StatusPartial, Status(0.7499))
	assert.Equal(t, types.StatusMissing, Status(0.4999))
	assert.Equal(t, types.StatusMissing, Status(-1))
}

func TestGapReport(t *testing.T) {
	emb := newFake()
	rows, err := GapReport(context.Background(), emb,
		[]string{"Python", "Kubernetes", "Leadership"},
		[]string{"Python scripting", "Docker"})
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, 1, emb.calls, "both lists are embedded in one batch")

	assert.Equal(t, "Python", rows[0].JDSkill)
	assert.Equal(t, "Python scripting", rows[0].ResumeMatch)
	assert.Equal(t, types.StatusStrong, rows[0].Status)

	// cos(Kubernetes, Docker) = 0.8
	assert.Equal(t, "Docker", rows[1].ResumeMatch)
	assert.Equal(t, types.StatusStrong, rows[1].Status)
	assert.InDelta(t, 0.8, rows[1].Score, 1e-9)

	// cos(Leadership, Docker) = 0.6
	assert.Equal(t, "Docker", rows[2].ResumeMatch)
	assert.Equal(t, types.StatusPartial, rows[2].Status)
}

func TestGapReport_MissingUsesPlaceholder(t *testing.T) {
	rows, err := GapReport(context.Background(), newFake(), []string{"Leadership"}, []string{"Python"})
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, NoMatch, rows[0].ResumeMatch)
	assert.Equal(t, types.StatusMissing, rows[0].Status)
	assert.Equal(t, 0.0, rows[0].Score)
}

func TestGapReport_EmptyResume(t *testing.T) {
	rows, err := GapReport(context.Background(), newFake(), []string{"Python", "Go"}, nil)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	for _, r := range rows {
		assert.Equal(t, NoMatch, r.ResumeMatch)
		assert.Equal(t, types.StatusMissing, r.Status)
	}
}

func TestGapReport_TieGoesToFirst(t *testing.T) {
	emb := &fakeEmbedder{vectors: map[string][]float32{
		"a": {1, 0}, "x": {1, 0}, "y": {1, 0},
	}}
	rows, err := GapReport(context.Background(), emb, []string{"a"}, []string{"x", "y"})
	require.NoError(t, err)
	assert.Equal(t, "x", rows[0].ResumeMatch)
}

func TestGapReport_Errors(t *testing.T) {
	_, err := GapReport(context.Background(), nil, []string{"a"}, []string{"b"})
	assert.ErrorIs(t, err, ErrNoEmbedder)

	boom := errors.New("quota exceeded")
	_, err = GapReport(context.Background(), &fakeEmbedder{err: boom}, []string{"a"}, []string{"b"})
	assert.ErrorIs(t, err, boom)
}

func TestTopMatches(t *testing.T) {
	matches, err := TopMatches(context.Background(), newFake(),
		[]string{"Python scripting"},
		[]string{"Kubernetes", "Python", "Go", "Leadership"}, 2)
	require.NoError(t, err)
	require.Len(t, matches, 2)
	assert.Equal(t, "Python", matches[0].JDMatch)
	assert.Equal(t, "Go", matches[1].JDMatch)
	assert.GreaterOrEqual(t, matches[0].Score, matches[1].Score)
	assert.Equal(t, "Python scripting", matches[1].ResumeSkill)
}

func TestTopMatches_DefaultK(t *testing.T) {
	matches, err := TopMatches(context.Background(), newFake(),
		[]string{"Python", "Go"},
		[]string{"Kubernetes", "Python", "Go", "Leadership", "Docker"}, 0)
	require.NoError(t, err)
	assert.Len(t, matches, 2*DefaultTopK)
}

func TestTopMatches_FewerThanK(t *testing.T) {
	matches, err := TopMatches(context.Background(), newFake(), []string{"Python"}, []string{"Go"}, 5)
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, 0.6, matches[0].Score)
}

func TestSummary(t *testing.T) {
	counts := Summary([]types.SimilarityRow{
		{Status: types.StatusStrong}, {Status: types.StatusStrong}, {Status: types.StatusMissing},
	})
	assert.Equal(t, map[string]int{types.StatusStrong: 2, types.StatusPartial: 0, types.StatusMissing: 1}, counts)
}

func TestCandidateSkills(t *testing.T) {
	got := CandidateSkills([]string{" Python ", "R", "", "machine learning", "Python", "C"})
	assert.Equal(t, []string{"Python", "machine learning"}, got)
	assert.Equal(t, []string{}, CandidateSkills(nil))
}

func TestSplitList(t *testing.T) {
	assert.Equal(t, []string{"Go", "Docker", "AWS"}, SplitList("Go, Docker,AWS, ,Go"))
}
