// Package ingestion turns documents and web pages into clean text ready for skill extraction.
package ingestion

import (
	"regexp"
	"strings"
)

var (
	// applied after line endings are normalized
	hyphenBreakPattern = regexp.MustCompile(`-\n[\s\v\x{85}\p{Z}]*`)
	urlPattern         = regexp.MustCompile(`https?://[^\s\v\x{85}\p{Z}]+|www\.[^\s\v\x{85}\p{Z}]+`)
	emailPattern       = regexp.MustCompile(`[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}`)
	whitespacePattern  = regexp.MustCompile(`[\s\v\x1c-\x1f\x{85}\p{Z}]+`)

	resumeEmailPattern = regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z|]{2,}\b`)
	phonePattern       = regexp.MustCompile(`[+]?[(]?[0-9]{1,4}[)]?[-\s.]?[(]?[0-9]{1,4}[)]?[-\s.]?[0-9]{1,4}[-\s.]?[0-9]{1,9}`)
	resumeURLPattern   = regexp.MustCompile(`https?://(?:[a-zA-Z0-9$-_@.&+!*\\(),]|%[0-9a-fA-F]{2})+`)
	resumeWWWPattern   = regexp.MustCompile(`www\.(?:[a-zA-Z0-9$-_@.&+!*\\(),]|%[0-9a-fA-F]{2})+`)
	disallowedPattern  = regexp.MustCompile(`[^a-zA-Z0-9\s+#\-.]`)
	asciiSpacesPattern = regexp.MustCompile(`\s+`)
)

// BasicClean normalizes raw document text: line endings are unified, words split across
// a hyphenated line break are joined, URLs and e-mail addresses are removed, and all
// whitespace runs collapse to single spaces. Empty input yields empty output.
// BasicClean is idempotent.
func BasicClean(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")
	text = hyphenBreakPattern.ReplaceAllString(text, "")
	text = urlPattern.ReplaceAllString(text, " ")
	text = emailPattern.ReplaceAllString(text, " ")
	return normalizeWhitespace(text)
}

func normalizeWhitespace(text string) string {
	text = strings.ReplaceAll(text, " ", " ")
	text = whitespacePattern.ReplaceAllString(text, " ")
	return strings.Trim(text, " ")
}

// CleanResumeText is the aggressive cleaner used before token-level processing: contact
// details and URLs are dropped, anything outside letters, digits, whitespace and "+#-."
// becomes a space, and the result is lower-cased with whitespace collapsed.
func CleanResumeText(text string) string {
	text = resumeEmailPattern.ReplaceAllString(text, "")
	text = phonePattern.ReplaceAllString(text, "")
	text = resumeURLPattern.ReplaceAllString(text, "")
	text = resumeWWWPattern.ReplaceAllString(text, "")
	text = disallowedPattern.ReplaceAllString(text, " ")
	text = strings.ToLower(text)
	return strings.TrimSpace(asciiSpacesPattern.ReplaceAllString(text, " "))
}
