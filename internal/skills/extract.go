package skills

import (
	"strings"
	"unicode/utf8"

	"github.com/jonathan/skill-extractor/internal/types"
)

// ContextRadius is the number of characters kept on each side of a match.
const ContextRadius = 50

// Extract scans text for every database skill. Per-category lists keep database order and
// categories with no match are omitted. Each found skill gets one context window per
// non-overlapping literal occurrence; a skill found only through a synonym has none.
func Extract(db *Database, text string) *types.ExtractionResult {
	result := &types.ExtractionResult{
		Categories: []types.CategoryMatch{},
		AllSkills:  []string{},
	}
	if text == "" {
		return result
	}

	haystack := lower(text)
	original := []rune(text)
	seen := make(map[string]bool)

	for _, category := range db.categories {
		match := types.CategoryMatch{Category: category.Name}
		for _, skill := range category.Skills {
			if !db.Present(haystack, skill) {
				continue
			}
			match.Skills = append(match.Skills, skill)
			if !seen[skill] {
				seen[skill] = true
				result.AllSkills = append(result.AllSkills, skill)
			}

			if windows := contexts(haystack, original, lower(skill)); len(windows) > 0 {
				if match.Contexts == nil {
					match.Contexts = make(map[string][]string)
				}
				match.Contexts[skill] = windows
			}
		}
		if len(match.Skills) > 0 {
			result.Categories = append(result.Categories, match)
		}
	}
	return result
}

// contexts cuts a window of ContextRadius runes around each occurrence of needle in haystack.
// haystack is the rune-for-rune lower-cased form of original.
func contexts(haystack string, original []rune, needle string) []string {
	if needle == "" {
		return nil
	}
	needleRunes := utf8.RuneCountInString(needle)

	var windows []string
	offset := 0     // byte offset into haystack
	runeOffset := 0 // rune index matching offset
	for {
		i := strings.Index(haystack[offset:], needle)
		if i < 0 {
			break
		}
		start := runeOffset + utf8.RuneCountInString(haystack[offset:offset+i])
		end := start + needleRunes

		from := max(0, start-ContextRadius)
		to := min(len(original), end+ContextRadius)
		windows = append(windows, strings.TrimSpace(string(original[from:to])))

		offset += i + len(needle)
		runeOffset = end
	}
	return windows
}
