// Package composer assembles the per-query LLM prompt from the
// classified intent, the trimmed conversation context, and the query
// itself. Composition is best-effort: it degrades to a minimal prompt
// rather than failing, so the dispatcher never depends on it for
// correctness.
package composer

// TokenEstimator estimates the token count of a string.
type TokenEstimator interface {
	Estimate(text string) int
}

// CharEstimator estimates tokens using a characters-per-token ratio.
// A ratio of ~4 works well for English text.
type CharEstimator struct {
	CharsPerToken float64
}

// NewCharEstimator creates a CharEstimator with the given ratio.
// If charsPerToken is <= 0, defaults to 4.0.
func NewCharEstimator(charsPerToken float64) *CharEstimator {
	if charsPerToken <= 0 {
		charsPerToken = 4.0
	}
	return &CharEstimator{CharsPerToken: charsPerToken}
}

// Estimate returns the estimated token count for the given text.
// Rounds up to avoid underestimation.
func (e *CharEstimator) Estimate(text string) int {
	if len(text) == 0 {
		return 0
	}
	return int(float64(len(text))/e.CharsPerToken) + 1
}
