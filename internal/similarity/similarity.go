// Package similarity compares skill lists through sentence embeddings: a gap report that
// finds the closest resume skill for every job requirement, and top-k matches per resume skill.
package similarity

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/jonathan/skill-extractor/internal/types"
)

// Status thresholds on cosine similarity. Both are inclusive.
const (
	StrongThreshold  = 0.75
	PartialThreshold = 0.5
)

// DefaultTopK is the number of matches TopMatches returns per resume skill.
const DefaultTopK = 3

// NoMatch is the resume match shown for a missing skill.
const NoMatch = "-"

// ErrNoEmbedder is returned when an operation needs embeddings but none are configured.
var ErrNoEmbedder = errors.New("no embedder configured")

// Embedder maps texts to fixed-length vectors, one per input, in order.
type Embedder interface {
	Embed(ctx context.Context, texts []string) ([][]float32, error)
}

// Cosine returns the cosine similarity of a and b, or 0 when either is a zero vector
// or the lengths differ.
func Cosine(a, b []float32) float64 {
	if len(a) != len(b) || len(a) == 0 {
		return 0
	}
	var dot, na, nb float64
	for i := range a {
		x, y := float64(a[i]), float64(b[i])
		dot += x * y
		na += x * x
		nb += y * y
	}
	if na == 0 || nb == 0 {
		return 0
	}
	return dot / (math.Sqrt(na) * math.Sqrt(nb))
}

// Status classifies a similarity score.
func Status(score float64) string {
	switch {
	case score >= StrongThreshold:
		return types.StatusStrong
	case score >= PartialThreshold:
		return types.StatusPartial
	default:
		return types.StatusMissing
	}
}

func embedBoth(ctx context.Context, emb Embedder, a, b []string) ([][]float32, [][]float32, error) {
	if emb == nil {
		return nil, nil, ErrNoEmbedder
	}
	all := make([]string, 0, len(a)+len(b))
	all = append(all, a...)
	all = append(all, b...)
	if len(all) == 0 {
		return nil, nil, nil
	}
	vectors, err := emb.Embed(ctx, all)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to embed skills: %w", err)
	}
	if len(vectors) != len(all) {
		return nil, nil, fmt.Errorf("embedder returned %d vectors for %d texts", len(vectors), len(all))
	}
	return vectors[:len(a)], vectors[len(a):], nil
}

// GapReport finds, for every job-description skill, the most similar resume skill.
// The first resume skill wins ties. A score below PartialThreshold, or an empty resume list,
// yields a Missing row whose match is NoMatch.
func GapReport(ctx context.Context, emb Embedder, jdSkills, resumeSkills []string) ([]types.SimilarityRow, error) {
	jdVecs, resumeVecs, err := embedBoth(ctx, emb, jdSkills, resumeSkills)
	if err != nil {
		return nil, err
	}

	rows := make([]types.SimilarityRow, 0, len(jdSkills))
	for i, jd := range jdSkills {
		row := types.SimilarityRow{JDSkill: jd, ResumeMatch: NoMatch, Status: types.StatusMissing}
		best := -1
		bestScore := math.Inf(-1)
		for j := range resumeSkills {
			if s := Cosine(jdVecs[i], resumeVecs[j]); s > bestScore {
				best, bestScore = j, s
			}
		}
		if best >= 0 {
			row.Score = round(bestScore, 3)
			row.Status = Status(bestScore)
			if row.Status != types.StatusMissing {
				row.ResumeMatch = resumeSkills[best]
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}

// TopMatches returns, for each resume skill, its k most similar job-description skills
// ordered by descending score. k <= 0 uses DefaultTopK. Scores are rounded to 3 decimals.
func TopMatches(ctx context.Context, emb Embedder, resumeSkills, jdSkills []string, k int) ([]types.TopMatch, error) {
	if k <= 0 {
		k = DefaultTopK
	}
	resumeVecs, jdVecs, err := embedBoth(ctx, emb, resumeSkills, jdSkills)
	if err != nil {
		return nil, err
	}

	var out []types.TopMatch
	for i, skill := range resumeSkills {
		scored := make([]types.TopMatch, len(jdSkills))
		for j, jd := range jdSkills {
			scored[j] = types.TopMatch{ResumeSkill: skill, JDMatch: jd, Score: Cosine(resumeVecs[i], jdVecs[j])}
		}
		sort.SliceStable(scored, func(a, b int) bool {
			return scored[a].Score > scored[b].Score
		})
		for _, m := range scored[:min(k, len(scored))] {
			m.Score = round(m.Score, 3)
			out = append(out, m)
		}
	}
	return out, nil
}

// Summary counts rows per status.
func Summary(rows []types.SimilarityRow) map[string]int {
	counts := map[string]int{types.StatusStrong: 0, types.StatusPartial: 0, types.StatusMissing: 0}
	for _, r := range rows {
		counts[r.Status]++
	}
	return counts
}

// CandidateSkills trims candidate strings such as noun phrases or entities, drops entries
// of one character or less and removes duplicates keeping first occurrence.
func CandidateSkills(tokens []string) []string {
	seen := make(map[string]bool)
	out := []string{}
	for _, tok := range tokens {
		tok = strings.TrimSpace(tok)
		if len([]rune(tok)) <= 1 || seen[tok] {
			continue
		}
		seen[tok] = true
		out = append(out, tok)
	}
	return out
}

// SplitList parses a comma separated skill list.
func SplitList(s string) []string {
	return CandidateSkills(strings.Split(s, ","))
}

func round(x float64, places int) float64 {
	p := math.Pow(10, float64(places))
	return math.Round(x*p) / p
}
