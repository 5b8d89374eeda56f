package blanks

import (
	"regexp"
	"strings"
)

var (
	tokenPattern    = regexp.MustCompile(`\S+`)
	nonWordPattern  = regexp.MustCompile(`[^A-Za-z0-9_]`)
	alphabetPattern = regexp.MustCompile(`^[A-Za-z]+$`)
)

// minEligibleLen is the exclusive lower bound on a blankable word's length.
const minEligibleLen = 3

// stopWords are never blanked: articles, conjunctions, common prepositions
// and auxiliary/modal verbs.
var stopWords = map[string]bool{
	"the": true, "a": true, "an": true,
	"and": true, "or": true, "but": true, "nor": true, "yet": true, "so": true,
	"in": true, "on": true, "at": true, "to": true, "for": true, "of": true,
	"with": true, "by": true, "from": true, "into": true, "onto": true,
	"about": true, "over": true, "under": true, "than": true, "upon": true,
	"is": true, "are": true, "was": true, "were": true, "be": true, "been": true,
	"being": true, "have": true, "has": true, "had": true, "do": true,
	"does": true, "did": true, "will": true, "would": true, "could": true,
	"should": true, "shall": true, "might": true, "must": true, "can": true,
	"may": true, "this": true, "that": true, "these": true, "those": true,
}

// token is one whitespace-delimited word with its byte span in the text.
type token struct {
	word       string
	start, end int
}

func tokenize(text string) []token {
	locs := tokenPattern.FindAllStringIndex(text, -1)
	out := make([]token, len(locs))
	for i, loc := range locs {
		out[i] = token{word: text[loc[0]:loc[1]], start: loc[0], end: loc[1]}
	}
	return out
}

// Strip removes every character that is not a letter, digit or underscore.
func Strip(word string) string {
	return nonWordPattern.ReplaceAllString(word, "")
}

// Eligible reports whether a surface word may be blanked.
func Eligible(word string) bool {
	w := strings.ToLower(Strip(word))
	return len(w) > minEligibleLen && !stopWords[w] && alphabetPattern.MatchString(w)
}

// KeyWords returns the stripped eligible words of text in order.
func KeyWords(text string) []string {
	var out []string
	for _, tok := range tokenize(text) {
		if Eligible(tok.word) {
			out = append(out, Strip(tok.word))
		}
	}
	return out
}
