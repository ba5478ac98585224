package intent

import (
	"strings"
	"unicode"
)

// stopwords are dropped from normalized queries before they are handed
// to the search tool. The list is intentionally small: over-filtering
// hurts recall more than the noise words cost.
var stopwords = map[string]struct{}{
	"a": {}, "an": {}, "the": {}, "of": {}, "for": {}, "on": {},
	"please": {}, "can": {}, "you": {}, "me": {},
}

// Normalize lower-cases the query, strips punctuation, collapses
// whitespace, and drops stopwords. It never returns an error; a query
// that normalizes to nothing comes back as an empty string.
func Normalize(query string) string {
	var b strings.Builder
	b.Grow(len(query))
	for _, r := range strings.ToLower(query) {
		switch {
		case unicode.IsLetter(r) || unicode.IsDigit(r):
			b.WriteRune(r)
		case unicode.IsSpace(r):
			b.WriteRune(' ')
		}
		// Punctuation and symbols are dropped.
	}

	fields := strings.Fields(b.String())
	kept := fields[:0]
	for _, f := range fields {
		if _, skip := stopwords[f]; !skip {
			kept = append(kept, f)
		}
	}
	return strings.Join(kept, " ")
}
