package dispatch

import (
	"context"
	"log/slog"
	"time"

	"github.com/lenoxlabs/lenox/internal/composer"
	"github.com/lenoxlabs/lenox/internal/memory"
	"github.com/lenoxlabs/lenox/internal/metrics"
	"github.com/lenoxlabs/lenox/internal/provider"
	"github.com/lenoxlabs/lenox/internal/tool"
	"github.com/lenoxlabs/lenox/internal/viz"
)

const (
	defaultRecentWindow = 10
	defaultCallTimeout  = 30 * time.Second
	defaultSearchTool   = "search"
)

// DocumentIndex is the document-query collaborator. Implementations
// live under modules/docindex.
type DocumentIndex interface {
	// Query answers a free-text question against the ingested corpus.
	Query(ctx context.Context, query string) (string, error)
}

// Config groups the collaborators and knobs for a Dispatcher.
// History, Registry, Oracle, and Composer are required; Viz and Docs
// are optional — routing to them without one configured yields an
// error envelope, not a crash.
type Config struct {
	History  memory.Store
	Registry *tool.Registry
	Oracle   provider.Provider
	Composer *composer.Composer
	Viz      viz.Builder
	Docs     DocumentIndex

	// SearchTool is the registry name invoked for search intents.
	// Empty means "search".
	SearchTool string

	// RecentWindow is how many turns of history feed the composer.
	// Zero means the default (10).
	RecentWindow int

	// CallTimeout bounds each external collaborator call.
	// Zero means the default (30s).
	CallTimeout time.Duration

	// Logger receives dispatch diagnostics. Nil means slog.Default().
	Logger *slog.Logger

	// Metrics, if non-nil, records dispatch counts and latency.
	Metrics *metrics.Metrics
}

// withDefaults returns a copy of cfg with zero values replaced.
func (cfg Config) withDefaults() Config {
	if cfg.SearchTool == "" {
		cfg.SearchTool = defaultSearchTool
	}
	if cfg.RecentWindow <= 0 {
		cfg.RecentWindow = defaultRecentWindow
	}
	if cfg.CallTimeout <= 0 {
		cfg.CallTimeout = defaultCallTimeout
	}
	if cfg.Logger == nil {
		cfg.Logger = slog.Default()
	}
	if cfg.Composer == nil {
		cfg.Composer = composer.New(nil, composer.Config{Logger: cfg.Logger})
	}
	return cfg
}
