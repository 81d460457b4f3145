package skills

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPresent(t *testing.T) {
	db := MustDefault()

	tests := []struct {
		name     string
		haystack string
		skill    string
		want     bool
	}{
		{"substring", "built services in python", "Python", true},
		{"synonym", "ran postgres in production", "PostgreSQL", true},
		{"synonym only lower form", "deployed on k8s", "Kubernetes", true},
		{"version suffix", "python3.10 and pandas", "Python", true},
		{"multi word skill", "strong problem solving skills", "Problem Solving", true},
		{"punctuation in name", "wrote c++ daily", "C++", true},
		{"absent", "wrote cobol daily", "Kotlin", false},
		{"empty haystack", "", "Python", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, db.Present(tt.haystack, tt.skill))
		})
	}
}

func TestExtract_ExampleScenario(t *testing.T) {
	db := MustDefault()
	text := "Proficient in Python, React, and MongoDB. Experience with AWS and Docker."

	result := Extract(db, text)

	assert.Contains(t, result.Found("programming_languages"), "Python")
	assert.Contains(t, result.Found("frameworks"), "React")
	assert.Contains(t, result.Found("databases"), "MongoDB")
	assert.Contains(t, result.Found("cloud"), "AWS")
	assert.Contains(t, result.Found("tools"), "Docker")
	assert.False(t, result.Has("soft_skills"))

	// Plain substring matching also picks up "Go" inside "MongoDB" and "R" inside words.
	assert.Equal(t, []string{"Python", "Go", "R"}, result.Found("programming_languages"))
	assert.Equal(t, []string{"Python", "Go", "R", "React", "MongoDB", "AWS", "Docker"}, result.AllSkills)
	assert.Equal(t, 7, result.Total())
}

func TestExtract_EmptyText(t *testing.T) {
	result := Extract(MustDefault(), "")

	assert.Empty(t, result.Categories)
	assert.Empty(t, result.AllSkills)
	assert.NotNil(t, result.AllSkills)
	assert.Equal(t, 0, result.Total())
}

func TestExtract_CategoryOrderFollowsDatabase(t *testing.T) {
	db := MustDefault()
	result := Extract(db, "Docker, Teamwork, AWS, Redis, Flask, Java")

	var names []string
	for _, c := range result.Categories {
		names = append(names, c.Category)
	}
	assert.Equal(t, []string{"programming_languages", "frameworks", "databases", "cloud", "soft_skills", "tools"}, names)
}

func TestExtract_FoundListIsSubsequenceOfDatabaseOrder(t *testing.T) {
	db := MustDefault()
	texts := []string{
		"Kubernetes Docker Git terraform jenkins",
		"TypeScript, Rust, Scala and Python 3 with FastAPI and Django",
		"Leadership; Creativity; Communication; Adaptability",
		"Oracle Cloud, Azure, GCP, Heroku and DigitalOcean",
		"nothing relevant here",
	}

	for _, text := range texts {
		result := Extract(db, text)
		for _, c := range result.Categories {
			declared, ok := db.Skills(c.Category)
			require.True(t, ok)
			assert.True(t, isSubsequence(c.Skills, declared), "%q: %v not in order of %v", text, c.Skills, declared)
		}
	}
}

func TestExtract_NoSkillInTwoCategories(t *testing.T) {
	db := MustDefault()
	result := Extract(db, "Oracle and Oracle Cloud with Java and JavaScript")

	seen := make(map[string]string)
	for _, c := range result.Categories {
		for _, s := range c.Skills {
			prev, dup := seen[s]
			assert.False(t, dup, "%s in %s and %s", s, prev, c.Category)
			seen[s] = c.Category
		}
	}
	assert.Contains(t, result.Found("databases"), "Oracle")
	assert.Contains(t, result.Found("cloud"), "Oracle Cloud")
}

func TestExtract_Contexts(t *testing.T) {
	db := MustDefault()
	text := strings.Repeat("a ", 40) + "Docker" + strings.Repeat(" b", 40)

	result := Extract(db, text)
	require.True(t, result.Has("tools"))

	var contexts map[string][]string
	for _, c := range result.Categories {
		if c.Category == "tools" {
			contexts = c.Contexts
		}
	}
	require.Contains(t, contexts, "Docker")
	want := strings.Repeat("a ", 25) + "Docker" + strings.Repeat(" b", 25)
	assert.Equal(t, []string{want}, contexts["Docker"])
}

func TestExtract_ContextPerOccurrence(t *testing.T) {
	db := MustDefault()
	result := Extract(db, "Docker images. Later migrated docker compose files.")

	for _, c := range result.Categories {
		if c.Category == "tools" {
			assert.Len(t, c.Contexts["Docker"], 2)
			return
		}
	}
	t.Fatal("tools category not found")
}

func TestExtract_ContextsClipToBoundariesAndKeepRunes(t *testing.T) {
	db := MustDefault()
	text := "Développeur Kotlin à Zürich"

	result := Extract(db, text)
	for _, c := range result.Categories {
		if c.Category != "programming_languages" {
			continue
		}
		windows := c.Contexts["Kotlin"]
		require.Len(t, windows, 1)
		assert.Equal(t, text, windows[0])
		assert.True(t, utf8.ValidString(windows[0]))
		return
	}
	t.Fatal("programming_languages category not found")
}

func TestExtract_SynonymOnlyMatchHasNoContext(t *testing.T) {
	db := MustDefault()
	result := Extract(db, "Operated k8s clusters")

	assert.Contains(t, result.Found("tools"), "Kubernetes")
	for _, c := range result.Categories {
		if c.Category == "tools" {
			_, ok := c.Contexts["Kubernetes"]
			assert.False(t, ok)
		}
	}
}

func isSubsequence(sub, full []string) bool {
	i := 0
	for _, s := range full {
		if i < len(sub) && sub[i] == s {
			i++
		}
	}
	return i == len(sub)
}
