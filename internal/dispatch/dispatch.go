// Package dispatch orchestrates one query end to end: classify the
// intent, route to the matching collaborator (search tool,
// visualization builder, document index, or LLM oracle), normalize the
// result into a response envelope, and record both sides of the
// exchange in the context store. Handle always returns a well-formed
// envelope; collaborator failures become error envelopes and never
// propagate.
package dispatch

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/lenoxlabs/lenox/internal/intent"
	"github.com/lenoxlabs/lenox/internal/memory"
	"github.com/lenoxlabs/lenox/internal/viz"
	"github.com/lenoxlabs/lenox/pkg/envelope"
)

// Each dispatch traverses these phases exactly once, ending in
// phaseResponded. They exist for observability; no phase is persisted.
const (
	phaseReceived   = "received"
	phaseClassified = "classified"
	phaseRouted     = "routed"
	phaseResponded  = "responded"
)

// Collaborator names used in logs and failure metrics.
const (
	collabSearch  = "search"
	collabViz     = "visualization"
	collabDocs    = "document_index"
	collabOracle  = "oracle"
	collabHistory = "history"
)

// Canned reply for empty input. Matches the product voice, not an error.
const emptyQueryReply = "Please enter a query."

// Dispatcher is the sole entry point into the conversational core.
type Dispatcher struct {
	cfg   Config
	lanes *laneLock

	// now is injectable for deterministic testing.
	now func() time.Time
}

// New creates a Dispatcher from the given configuration.
func New(cfg Config) *Dispatcher {
	return &Dispatcher{
		cfg:   cfg.withDefaults(),
		lanes: newLaneLock(),
		now:   time.Now,
	}
}

// Handle processes one query for one session and returns the response
// envelope. Guarantees:
//   - it never panics and never returns a malformed envelope;
//   - an empty or whitespace-only query gets a prompting text reply and
//     appends no turns;
//   - every other query appends exactly one user turn and one assistant
//     turn, error paths included;
//   - queries within a session are serialized, sessions are independent.
func (d *Dispatcher) Handle(ctx context.Context, sessionID, query string) envelope.Envelope {
	if strings.TrimSpace(query) == "" {
		return envelope.Text(emptyQueryReply)
	}

	ctx, span := otel.Tracer("lenox/dispatch").Start(ctx, "dispatch.Handle",
		trace.WithAttributes(attribute.String("session_id", sessionID)))
	defer span.End()

	logger := d.cfg.Logger
	start := d.now()
	logger.Debug("dispatch: query received", "session_id", sessionID, "phase", phaseReceived)

	d.lanes.acquire(sessionID)
	defer d.lanes.release(sessionID)

	if err := d.cfg.History.Append(sessionID, memory.Turn{
		Role: memory.RoleUser, Content: query, Timestamp: d.now(),
	}); err != nil {
		// Losing the user turn corrupts future context; fail the whole
		// dispatch rather than answer off a broken transcript.
		logger.Error("dispatch: user turn append failed",
			"session_id", sessionID, "collaborator", collabHistory, "error", err)
		d.cfg.Metrics.RecordFailure(collabHistory)
		return envelope.Errorf("conversation store is unavailable")
	}

	tag := intent.Classify(query)
	span.SetAttributes(attribute.String("intent", string(tag)))
	logger.Debug("dispatch: intent classified",
		"session_id", sessionID, "intent", tag, "phase", phaseClassified)

	env, collaborator := d.route(ctx, sessionID, query, tag)
	if env.IsError() {
		d.cfg.Metrics.RecordFailure(collaborator)
	}

	if err := d.cfg.History.Append(sessionID, memory.Turn{
		Role: memory.RoleAssistant, Content: env.Content, Timestamp: d.now(),
	}); err != nil {
		// The envelope is already formed; log and return it anyway.
		logger.Error("dispatch: assistant turn append failed",
			"session_id", sessionID, "collaborator", collabHistory, "error", err)
		d.cfg.Metrics.RecordFailure(collabHistory)
	}

	d.cfg.Metrics.RecordDispatch(string(tag), d.now().Sub(start))
	logger.Debug("dispatch: responded",
		"session_id", sessionID, "intent", tag, "type", env.Type, "phase", phaseResponded)
	return env
}

// route branches on the classified intent and returns the envelope plus
// the collaborator name involved (for failure accounting). A panicking
// collaborator is recovered into an error envelope so Handle keeps its
// no-panic guarantee.
func (d *Dispatcher) route(ctx context.Context, sessionID, query string, tag intent.Intent) (env envelope.Envelope, collaborator string) {
	defer func() {
		if r := recover(); r != nil {
			d.cfg.Logger.Error("dispatch: collaborator panicked",
				"session_id", sessionID, "collaborator", collaborator, "panic", r)
			env = envelope.Errorf("internal error while handling the request")
		}
	}()

	d.cfg.Logger.Debug("dispatch: routing",
		"session_id", sessionID, "intent", tag, "phase", phaseRouted)

	// collaborator is assigned before the branch runs so the recover
	// above still knows who panicked.
	switch tag {
	case intent.Search:
		collaborator = collabSearch
		env = d.routeSearch(ctx, sessionID, query)
	case intent.Visualization:
		collaborator = collabViz
		env = d.routeVisualization(ctx, sessionID, query)
	case intent.Document:
		collaborator = collabDocs
		env = d.routeDocument(ctx, sessionID, query)
	default:
		collaborator = collabOracle
		env = d.routeGeneral(ctx, sessionID, query, tag)
	}
	return env, collaborator
}

// routeSearch hands the normalized query to the configured search tool.
func (d *Dispatcher) routeSearch(ctx context.Context, sessionID, query string) envelope.Envelope {
	if d.cfg.Registry == nil {
		return envelope.Errorf("no search tool is configured")
	}

	normalized := intent.Normalize(query)
	out, err := d.cfg.Registry.Invoke(ctx, d.cfg.SearchTool, normalized, d.cfg.CallTimeout)
	if err != nil {
		d.cfg.Logger.Warn("dispatch: search tool failed",
			"session_id", sessionID, "query", query, "error", err)
		return envelope.Errorf("the search tool could not complete the request")
	}
	return envelope.Text(out)
}

// routeVisualization extracts a series from the query and asks the
// builder for a chart. A query without numeric tokens is an explicit
// error, not a sample chart.
func (d *Dispatcher) routeVisualization(ctx context.Context, sessionID, query string) envelope.Envelope {
	if d.cfg.Viz == nil {
		return envelope.Errorf("no visualization builder is configured")
	}

	series, err := viz.ExtractSeries(query)
	if err != nil {
		if errors.Is(err, viz.ErrNoData) {
			return envelope.Errorf("no numeric data found in query")
		}
		return envelope.Errorf("could not extract chart data from the query")
	}

	ctx, cancel := context.WithTimeout(ctx, d.cfg.CallTimeout)
	defer cancel()

	chart, err := d.cfg.Viz.Build(ctx, series, viz.ParseKind(query))
	if err != nil {
		d.cfg.Logger.Warn("dispatch: visualization builder failed",
			"session_id", sessionID, "query", query, "error", err)
		return envelope.Errorf("the chart could not be rendered")
	}
	return envelope.Visual(chart)
}

// routeDocument delegates to the document index.
func (d *Dispatcher) routeDocument(ctx context.Context, sessionID, query string) envelope.Envelope {
	if d.cfg.Docs == nil {
		return envelope.Errorf("no document index is configured")
	}

	ctx, cancel := context.WithTimeout(ctx, d.cfg.CallTimeout)
	defer cancel()

	out, err := d.cfg.Docs.Query(ctx, query)
	if err != nil {
		d.cfg.Logger.Warn("dispatch: document index failed",
			"session_id", sessionID, "query", query, "error", err)
		return envelope.Errorf("the document index could not answer the query")
	}
	return envelope.Text(out)
}

// routeGeneral composes a context-bearing prompt and asks the oracle.
// A history read failure degrades to an empty context rather than
// aborting the query.
func (d *Dispatcher) routeGeneral(ctx context.Context, sessionID, query string, tag intent.Intent) envelope.Envelope {
	if d.cfg.Oracle == nil {
		return envelope.Errorf("no assistant backend is configured")
	}

	turns, err := d.cfg.History.Recent(sessionID, d.cfg.RecentWindow)
	if err != nil {
		d.cfg.Logger.Warn("dispatch: history read failed, continuing without context",
			"session_id", sessionID, "error", err)
		turns = nil
	}
	// The user turn for this query is already in history; the composer
	// receives it separately, so drop it from the context block.
	if n := len(turns); n > 0 && turns[n-1].Role == memory.RoleUser && turns[n-1].Content == query {
		turns = turns[:n-1]
	}

	prompt := d.cfg.Composer.Compose(query, tag, turns, d.now())

	ctx, cancel := context.WithTimeout(ctx, d.cfg.CallTimeout)
	defer cancel()

	resp, err := d.cfg.Oracle.Complete(ctx, completionRequest(prompt))
	if err != nil {
		d.cfg.Logger.Warn("dispatch: oracle failed",
			"session_id", sessionID, "query", query, "error", err)
		return envelope.Errorf("the assistant backend is unavailable")
	}
	return envelope.Text(resp.Content)
}
