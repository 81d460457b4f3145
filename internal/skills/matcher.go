package skills

import (
	"regexp"
	"strings"
	"unicode"
)

// lower folds case rune by rune so the result has exactly as many runes as s.
// Context windows computed on the folded text can then be cut from the original.
func lower(s string) string {
	return strings.Map(unicode.ToLower, s)
}

// versionPattern matches a skill followed by optional version characters ("python3", "python 3.10").
func versionPattern(skill string) *regexp.Regexp {
	return regexp.MustCompile(regexp.QuoteMeta(lower(skill)) + `[\d.\s]*`)
}

// Present reports whether skill occurs in haystack, which must already be lower-cased.
// A skill is present when its name, or any registered synonym, is a substring, or when its
// version pattern matches. Presence is binary; no score is computed.
func (db *Database) Present(haystack, skill string) bool {
	if strings.Contains(haystack, lower(skill)) {
		return true
	}

	for _, synonym := range db.lowerSynonyms[skill] {
		if strings.Contains(haystack, synonym) {
			return true
		}
	}

	re, ok := db.versioned[skill]
	if !ok {
		re = versionPattern(skill)
	}
	return re.MatchString(haystack)
}
