// Package intent classifies free-text queries into a fixed set of intent
// tags using an ordered rule table, and normalizes queries for tool
// consumption. Classification is pure, deterministic, and total: every
// string maps to exactly one Intent and the classifier never fails.
package intent

import (
	"regexp"
	"strings"
)

// Intent is the classified purpose of a user query.
type Intent string

// Intent tags. UNKNOWN is declared for completeness but the classifier
// never produces it: unrecognized input defaults to GENERAL so it is
// routed to the LLM rather than a canned rejection.
const (
	Greeting         Intent = "greeting"
	Search           Intent = "search"
	Visualization    Intent = "visualization"
	Document         Intent = "document"
	Smalltalk        Intent = "smalltalk"
	EmotionalSupport Intent = "emotional_support"
	Gratitude        Intent = "gratitude"
	Affirmation      Intent = "affirmation"
	Curiosity        Intent = "curiosity"
	Feedback         Intent = "feedback"
	General          Intent = "general"
	Unknown          Intent = "unknown"
)

// rule pairs a compiled predicate with the tag it produces.
type rule struct {
	tag     Intent
	pattern *regexp.Regexp
}

// rules is evaluated top to bottom; the first match wins. Ordering is
// load-bearing: capability-routing intents (search, visualization,
// document) outrank conversational ones, so "hello, can you search for
// bitcoin" classifies as Search, not Greeting. Single words match on
// word boundaries to keep "hi" from firing inside "this".
var rules = []rule{
	{Search, wordPattern("search", "find", "lookup", "current", "latest", "information", "weather", "news")},
	{Visualization, wordPattern("visualize", "visualise", "graph", "chart", "plot", "display data")},
	{Document, wordPattern("document", "pdf", "file", "report", "uploaded")},
	{Greeting, wordPattern("hi", "hello", "hey")},
	{Smalltalk, wordPattern("how are you", "what's up", "whats up")},
	{EmotionalSupport, wordPattern("help", "support", "feel", "anxious", "stressed", "overwhelmed", "worried", "sad")},
	{Gratitude, wordPattern("thank you", "thanks")},
	{Affirmation, wordPattern("great", "good job", "well done", "awesome")},
	{Curiosity, wordPattern("why", "how", "what if", "curious", "wonder")},
	{Feedback, wordPattern("feedback", "suggestion", "comment")},
}

// wordPattern compiles a case-insensitive alternation of the given
// keywords, each anchored on word boundaries. Phrases are matched as a
// whole; regex metacharacters in keywords are escaped.
func wordPattern(keywords ...string) *regexp.Regexp {
	escaped := make([]string, len(keywords))
	for i, kw := range keywords {
		escaped[i] = regexp.QuoteMeta(kw)
	}
	return regexp.MustCompile(`(?i)\b(` + strings.Join(escaped, "|") + `)\b`)
}

// Classify maps a query to exactly one Intent. Empty or unmatched input
// returns General.
func Classify(query string) Intent {
	query = strings.TrimSpace(query)
	if query == "" {
		return General
	}
	for _, r := range rules {
		if r.pattern.MatchString(query) {
			return r.tag
		}
	}
	return General
}
