package composer_test

import (
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/lenoxlabs/lenox/internal/composer"
	"github.com/lenoxlabs/lenox/internal/intent"
	"github.com/lenoxlabs/lenox/internal/memory"
)

// Compile-time interface guard.
var _ composer.TokenEstimator = (*composer.CharEstimator)(nil)

var testTime = time.Date(2026, 3, 14, 9, 26, 53, 0, time.UTC)

func mkTurns(contents ...string) []memory.Turn {
	turns := make([]memory.Turn, len(contents))
	for i, content := range contents {
		role := memory.RoleUser
		if i%2 == 1 {
			role = memory.RoleAssistant
		}
		turns[i] = memory.Turn{Role: role, Content: content, Timestamp: testTime}
	}
	return turns
}

// ---------------------------------------------------------------------------
// CharEstimator
// ---------------------------------------------------------------------------

func TestCharEstimator_Estimate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name          string
		charsPerToken float64
		input         string
		want          int
	}{
		{name: "empty", charsPerToken: 0, input: "", want: 0},
		{name: "default_ratio", charsPerToken: 0, input: "hello world!", want: 4}, // int(12/4)+1
		{name: "ratio_one", charsPerToken: 1, input: "abc", want: 4},              // int(3/1)+1
		{name: "negative_defaults", charsPerToken: -1, input: "abcd", want: 2},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := composer.NewCharEstimator(tt.charsPerToken).Estimate(tt.input)
			if got != tt.want {
				t.Errorf("Estimate(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Compose
// ---------------------------------------------------------------------------

func TestCompose_ContainsQueryTimestampAndContext(t *testing.T) {
	t.Parallel()

	c := composer.New(nil, composer.Config{})
	turns := mkTurns("what is bitcoin", "Bitcoin is a cryptocurrency.")

	got := c.Compose("and ethereum?", intent.General, turns, testTime)

	for _, want := range []string{
		"2026-03-14T09:26:53Z",
		"User: what is bitcoin",
		"Assistant: Bitcoin is a cryptocurrency.",
		"User: and ethereum?",
	} {
		if !strings.Contains(got, want) {
			t.Errorf("Compose() missing %q in:\n%s", want, got)
		}
	}
}

func TestCompose_IntentTemplatesDiffer(t *testing.T) {
	t.Parallel()

	c := composer.New(nil, composer.Config{})

	greeting := c.Compose("hi", intent.Greeting, nil, testTime)
	general := c.Compose("hi", intent.General, nil, testTime)
	unknownTag := c.Compose("hi", intent.Intent("made-up"), nil, testTime)

	if greeting == general {
		t.Error("greeting and general prompts are identical; intent templates not applied")
	}
	if unknownTag != general {
		t.Error("unrecognized tag did not fall back to the general template")
	}
}

// Trimming must drop whole turns, oldest first, and never split a turn.
func TestCompose_TrimsWholeTurnsOldestFirst(t *testing.T) {
	t.Parallel()

	// 50 turns of 200 chars each; ratio 1 makes tokens ≈ chars, so a
	// 500-token context budget fits only the most recent turns.
	contents := make([]string, 50)
	for i := range contents {
		contents[i] = fmt.Sprintf("turn-%02d ", i) + strings.Repeat("x", 192)
	}
	turns := mkTurns(contents...)

	c := composer.New(composer.NewCharEstimator(1), composer.Config{MaxPromptTokens: 700})
	got := c.Compose("now what", intent.General, turns, testTime)

	if !strings.Contains(got, "turn-49") {
		t.Error("most recent turn missing from trimmed prompt")
	}
	if strings.Contains(got, "turn-00") || strings.Contains(got, "turn-40") {
		t.Error("old turns survived trimming")
	}

	// Every turn that appears must appear in full.
	for i := range contents {
		marker := fmt.Sprintf("turn-%02d", i)
		if strings.Contains(got, marker) && !strings.Contains(got, contents[i]) {
			t.Errorf("turn %s is partially included; trimming must be whole-turn", marker)
		}
	}
}

func TestCompose_AllContextDroppedWhenBudgetTiny(t *testing.T) {
	t.Parallel()

	turns := mkTurns(strings.Repeat("a", 500), strings.Repeat("b", 500))
	c := composer.New(composer.NewCharEstimator(1), composer.Config{MaxPromptTokens: 10})

	got := c.Compose("just the query", intent.General, turns, testTime)

	if strings.Contains(got, "aaaa") || strings.Contains(got, "bbbb") {
		t.Error("context present despite budget smaller than any turn")
	}
	if !strings.Contains(got, "just the query") {
		t.Error("query missing from degraded prompt")
	}
}

func TestCompose_NeverFails(t *testing.T) {
	t.Parallel()

	c := composer.New(nil, composer.Config{})

	inputs := []struct {
		query string
		turns []memory.Turn
	}{
		{query: "", turns: nil},
		{query: strings.Repeat("q", 1<<15), turns: nil},
		{query: "ok", turns: mkTurns("", "", "")},
	}

	for _, in := range inputs {
		got := c.Compose(in.query, intent.General, in.turns, testTime)
		if got == "" {
			t.Errorf("Compose(%.10q, %d turns) returned empty prompt", in.query, len(in.turns))
		}
	}
}
