package ingestion

import (
	"regexp"
	"strings"
	"unicode"
)

// preservedWords are single-letter or short language names that must survive stop word removal.
var preservedWords = map[string]bool{"c": true, "r": true, "go": true, "d": true}

var wordPattern = regexp.MustCompile(`[\p{L}\p{N}_]+(?:['’.+#\-][\p{L}\p{N}_+#]*)*|[^\s\p{L}\p{N}_]+`)

var stopWords = toSet(`a about above across after afterwards again against all almost alone along already
also although always am among amongst amount an and another any anyhow anyone anything anyway anywhere
are around as at back be became because become becomes becoming been before beforehand behind being
below beside besides between beyond both bottom but by ca call can cannot could did do does doing done
down due during each eight either eleven else elsewhere empty enough even ever every everyone everything
everywhere except few fifteen fifty first five for former formerly forty four from front full further
get give had has have he hence her here hereafter hereby herein hereupon hers herself him himself his
how however hundred i if in indeed into is it its itself just keep last latter latterly least less
made make many may me meanwhile might mine more moreover most mostly move much must my myself name
namely neither never nevertheless next nine no nobody none noone nor not nothing now nowhere of off
often on once one only onto or other others otherwise our ours ourselves out over own part per perhaps
please put quite rather re really regarding same say see seem seemed seeming seems serious several she
should show side since six sixty so some somehow someone something sometime sometimes somewhere still
such take ten than that the their them themselves then thence there thereafter thereby therefore
therein thereupon these they third this those though three through throughout thru thus to together
too top toward towards twelve twenty two under unless until up upon us used using various very via was
we well were what whatever when whence whenever where whereafter whereas whereby wherein whereupon
wherever whether which while whither who whoever whole whom whose why will with within without would
yet you your yours yourself yourselves`)

func toSet(words string) map[string]bool {
	set := make(map[string]bool)
	for _, w := range strings.Fields(words) {
		set[w] = true
	}
	return set
}

// IsStopWord reports whether word is an English stop word, ignoring case.
func IsStopWord(word string) bool {
	return stopWords[strings.ToLower(word)]
}

// Tokenize splits text into word and punctuation tokens. A trailing period is split off
// words so sentence ends do not glue to the last word.
func Tokenize(text string) []string {
	var tokens []string
	for _, tok := range wordPattern.FindAllString(text, -1) {
		if len(tok) > 1 && strings.HasSuffix(tok, ".") && isWordRune(rune(tok[0])) {
			tokens = append(tokens, strings.TrimRight(tok, "."), ".")
			continue
		}
		tokens = append(tokens, tok)
	}
	return tokens
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'
}

func isPunctuation(tok string) bool {
	for _, r := range tok {
		if !unicode.IsPunct(r) && !unicode.IsSymbol(r) {
			return false
		}
	}
	return true
}

// RemoveStopWords drops stop words and punctuation tokens and joins the rest with single
// spaces. The language names c, r, go and d are always kept, in their original case.
func RemoveStopWords(text string) string {
	var kept []string
	for _, tok := range Tokenize(text) {
		lower := strings.ToLower(tok)
		switch {
		case preservedWords[lower]:
			kept = append(kept, tok)
		case stopWords[lower], isPunctuation(tok):
		default:
			kept = append(kept, tok)
		}
	}
	return strings.Join(kept, " ")
}
