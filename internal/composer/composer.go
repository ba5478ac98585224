package composer

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/lenoxlabs/lenox/internal/intent"
	"github.com/lenoxlabs/lenox/internal/memory"
)

// Config holds the tuning knobs for prompt composition.
type Config struct {
	// MaxPromptTokens is the budget for the whole composed prompt.
	// Zero means use the default (1024).
	MaxPromptTokens int

	// Logger receives trim diagnostics. Nil means slog.Default().
	Logger *slog.Logger
}

// withDefaults returns a copy of cfg with zero values replaced.
func (cfg Config) withDefaults() Config {
	if cfg.MaxPromptTokens <= 0 {
		cfg.MaxPromptTokens = 1024
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	return cfg
}

// Composer builds prompts within a token budget, dropping whole context
// turns oldest-first when the budget is exceeded.
type Composer struct {
	estimator TokenEstimator
	cfg       Config
}

// New creates a Composer. A nil estimator falls back to the default
// char-ratio estimator.
func New(estimator TokenEstimator, cfg Config) *Composer {
	if estimator == nil {
		estimator = NewCharEstimator(0)
	}
	return &Composer{estimator: estimator, cfg: cfg.withDefaults()}
}

// Compose assembles the prompt for one query. Trimming is whole-turn
// and oldest-first: a turn's content is either present in full or
// absent, never split. With zero turns remaining the bare query is used
// with no context. Compose never fails.
func (c *Composer) Compose(query string, tag intent.Intent, turns []memory.Turn, now time.Time) string {
	skeleton := c.render(query, tag, nil, now)
	budget := c.cfg.MaxPromptTokens - c.estimator.Estimate(skeleton)

	kept := turns
	for len(kept) > 0 && c.estimateTurns(kept) > budget {
		kept = kept[1:]
	}
	if dropped := len(turns) - len(kept); dropped > 0 {
		c.cfg.Logger.Debug("composer: context trimmed",
			"dropped_turns", dropped,
			"kept_turns", len(kept),
			"budget_tokens", c.cfg.MaxPromptTokens,
		)
	}

	return c.render(query, tag, kept, now)
}

// render interpolates the prompt template. Context turns appear in
// chronological order, most recent last.
func (c *Composer) render(query string, tag intent.Intent, turns []memory.Turn, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Current time: %s\n", now.Format(time.RFC3339))

	if len(turns) > 0 {
		b.WriteString("\nConversation so far:\n")
		for _, t := range turns {
			b.WriteString(renderTurn(t))
		}
	}

	b.WriteString("\n")
	b.WriteString(instructionFor(tag))
	fmt.Fprintf(&b, "\n\nUser: %s\nAssistant:", query)
	return b.String()
}

// renderTurn formats one turn as a transcript line.
func renderTurn(t memory.Turn) string {
	label := "User"
	if t.Role == memory.RoleAssistant {
		label = "Assistant"
	}
	return fmt.Sprintf("%s: %s\n", label, t.Content)
}

// estimateTurns returns the estimated token cost of the rendered turns.
func (c *Composer) estimateTurns(turns []memory.Turn) int {
	total := 0
	for _, t := range turns {
		total += c.estimator.Estimate(renderTurn(t))
	}
	return total
}
