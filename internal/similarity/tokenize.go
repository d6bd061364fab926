package similarity

import (
	"regexp"
	"strings"
)

// tokenRe matches word tokens of at least two characters. Single-character
// tokens carry no signal for merchant descriptions.
var tokenRe = regexp.MustCompile(`[a-z0-9]{2,}`)

// stopwords are common English words removed before n-gram construction.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "and": {}, "are": {}, "as": {}, "at": {},
	"be": {}, "by": {}, "for": {}, "from": {}, "has": {}, "he": {},
	"in": {}, "is": {}, "it": {}, "its": {}, "of": {}, "on": {},
	"or": {}, "that": {}, "the": {}, "to": {}, "was": {}, "were": {},
	"will": {}, "with": {},
}

// tokenize lowercases text, extracts word tokens, drops stopwords, then
// emits unigrams and bigrams over the surviving sequence.
func tokenize(text string) []string {
	words := tokenRe.FindAllString(strings.ToLower(text), -1)

	kept := words[:0]
	for _, w := range words {
		if _, stop := stopwords[w]; !stop {
			kept = append(kept, w)
		}
	}
	if len(kept) == 0 {
		return nil
	}

	terms := make([]string, 0, 2*len(kept)-1)
	terms = append(terms, kept...)
	for i := 0; i+1 < len(kept); i++ {
		terms = append(terms, kept[i]+" "+kept[i+1])
	}
	return terms
}
