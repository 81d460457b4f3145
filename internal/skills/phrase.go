package skills

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// tokenPattern keeps "C++", "C#", "Node.js" and "CI/CD" as single tokens.
var tokenPattern = regexp.MustCompile(`[\p{L}\p{N}]+(?:[.+#/\-][\p{L}\p{N}+#]*)*`)

type token struct {
	text       string // lower-cased
	start, end int    // byte offsets into the source
}

func tokenize(s string) []token {
	locs := tokenPattern.FindAllStringIndex(s, -1)
	tokens := make([]token, 0, len(locs))
	for _, loc := range locs {
		start, end := loc[0], loc[1]
		// sentence punctuation glued on by the pattern
		for end > start && strings.ContainsRune(".-/", rune(s[end-1])) {
			end--
		}
		tokens = append(tokens, token{text: lower(s[start:end]), start: start, end: end})
	}
	return tokens
}

// PhraseMatcher finds dictionary phrases in text by case-insensitive token sequence matching.
type PhraseMatcher struct {
	// phrases indexed by first token
	byFirst map[string][][]string
}

// NewPhraseMatcher builds a matcher from skill phrases. Blank phrases are ignored.
func NewPhraseMatcher(phrases []string) *PhraseMatcher {
	m := &PhraseMatcher{byFirst: make(map[string][][]string)}
	seen := make(map[string]bool)
	for _, p := range phrases {
		toks := tokenize(norm.NFC.String(p))
		if len(toks) == 0 {
			continue
		}
		words := make([]string, len(toks))
		for i, t := range toks {
			words[i] = t.text
		}
		key := strings.Join(words, " ")
		if seen[key] {
			continue
		}
		seen[key] = true
		m.byFirst[words[0]] = append(m.byFirst[words[0]], words)
	}
	return m
}

// ReadPhrases reads one phrase per line, skipping blank lines.
func ReadPhrases(r io.Reader) ([]string, error) {
	var phrases []string
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			phrases = append(phrases, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read phrases: %w", err)
	}
	return phrases, nil
}

// LoadPhraseMatcher builds a matcher from a dictionary file.
func LoadPhraseMatcher(path string) (*PhraseMatcher, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open phrase dictionary: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	phrases, err := ReadPhrases(f)
	if err != nil {
		return nil, err
	}
	return NewPhraseMatcher(phrases), nil
}

// Len returns the number of distinct phrases.
func (m *PhraseMatcher) Len() int {
	n := 0
	for _, group := range m.byFirst {
		n += len(group)
	}
	return n
}

// Match returns the matched spans exactly as they appear in text, sorted and unique.
func (m *PhraseMatcher) Match(text string) []string {
	text = norm.NFC.String(text)
	tokens := tokenize(text)

	found := make(map[string]bool)
	for i, t := range tokens {
		for _, phrase := range m.byFirst[t.text] {
			if i+len(phrase) > len(tokens) {
				continue
			}
			ok := true
			for j := 1; j < len(phrase); j++ {
				if tokens[i+j].text != phrase[j] {
					ok = false
					break
				}
			}
			if ok {
				found[text[t.start:tokens[i+len(phrase)-1].end]] = true
			}
		}
	}

	out := make([]string, 0, len(found))
	for s := range found {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
