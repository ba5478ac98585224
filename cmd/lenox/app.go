package main

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/lenoxlabs/lenox/internal/composer"
	"github.com/lenoxlabs/lenox/internal/config"
	"github.com/lenoxlabs/lenox/internal/cron"
	"github.com/lenoxlabs/lenox/internal/dispatch"
	"github.com/lenoxlabs/lenox/internal/memory"
	"github.com/lenoxlabs/lenox/internal/metrics"
	"github.com/lenoxlabs/lenox/internal/tool"
	"github.com/lenoxlabs/lenox/internal/viz"
	docindex "github.com/lenoxlabs/lenox/modules/docindex/sqlite"
	memsqlite "github.com/lenoxlabs/lenox/modules/memory/sqlite"
	"github.com/lenoxlabs/lenox/modules/provider/openai"
	"github.com/lenoxlabs/lenox/modules/tool/ddg"
)

// defaultMaxTurns caps stored turns per session when unconfigured.
const defaultMaxTurns = 200

// app bundles the wired assistant and everything that needs shutdown.
type app struct {
	dispatcher *dispatch.Dispatcher
	scheduler  *cron.Scheduler
	logger     *slog.Logger
	closers    []func()
}

// buildApp wires config into a running dispatcher: history store,
// tool registry, document index, provider, metrics, retention sweeper.
func buildApp(cfg *config.Config, logger *slog.Logger) (*app, error) {
	a := &app{logger: logger}

	store, err := a.openHistory(cfg.History)
	if err != nil {
		a.Close()
		return nil, err
	}

	var prov openai.Config
	if err := cfg.Provider.Decode(&prov); err != nil {
		a.Close()
		return nil, fmt.Errorf("config: decoding provider: %w", err)
	}
	oracle, err := openai.New(prov)
	if err != nil {
		a.Close()
		return nil, err
	}

	registry := tool.NewRegistry()
	search, err := ddg.New(ddg.Config{
		BaseURL: cfg.Search.BaseURL,
		Timeout: cfg.Search.Timeout,
	})
	if err != nil {
		a.Close()
		return nil, err
	}
	if err := registry.Register("search", search.Search); err != nil {
		a.Close()
		return nil, err
	}

	var docs dispatch.DocumentIndex
	if cfg.Documents.Path != "" {
		index, db, err := openDocIndex(cfg.Documents.Path)
		if err != nil {
			a.Close()
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = db.Close() })
		docs = index
	}

	promReg, shutdownTelemetry, err := setupTelemetry(cfg.Telemetry, logger)
	if err != nil {
		a.Close()
		return nil, err
	}
	a.closers = append(a.closers, shutdownTelemetry)

	comp := composer.New(
		composer.NewCharEstimator(cfg.Composer.CharsPerToken),
		composer.Config{
			MaxPromptTokens: cfg.Composer.MaxPromptTokens,
			Logger:          logger,
		},
	)

	a.dispatcher = dispatch.New(dispatch.Config{
		History:      store,
		Registry:     registry,
		Oracle:       oracle,
		Composer:     comp,
		Viz:          &viz.JSONBuilder{},
		Docs:         docs,
		SearchTool:   cfg.Dispatch.SearchTool,
		RecentWindow: cfg.History.RecentWindow,
		CallTimeout:  cfg.Dispatch.Timeout(),
		Logger:       logger,
		Metrics:      metrics.New(promReg),
	})

	if err := a.startSweeper(cfg.Retention, store); err != nil {
		a.Close()
		return nil, err
	}

	return a, nil
}

// openHistory opens the configured turn store and registers its closer.
func (a *app) openHistory(cfg config.HistoryConfig) (memory.Store, error) {
	maxTurns := cfg.MaxTurns
	if maxTurns == 0 {
		maxTurns = defaultMaxTurns
	}

	if cfg.Backend == "sqlite" {
		store, db, err := memsqlite.OpenStore(cfg.Path, maxTurns)
		if err != nil {
			return nil, err
		}
		a.closers = append(a.closers, func() { _ = db.Close() })
		return store, nil
	}
	return memory.NewInMemoryStore(maxTurns), nil
}

// startSweeper schedules the idle-session cleanup when the store
// supports pruning.
func (a *app) startSweeper(cfg config.RetentionConfig, store memory.Store) error {
	pruner, ok := store.(memory.Pruner)
	if !ok {
		return nil
	}

	a.scheduler = cron.NewScheduler(a.logger)
	if err := a.scheduler.RegisterJob(&cron.SessionSweepJob{
		Store:        pruner,
		MaxIdle:      cfg.IdleCutoff(),
		Logger:       a.logger,
		ScheduleExpr: cfg.Schedule,
	}); err != nil {
		return err
	}
	return a.scheduler.Start()
}

// Close releases resources in reverse acquisition order.
func (a *app) Close() {
	if a.scheduler != nil {
		_ = a.scheduler.Stop(context.Background())
	}
	for i := len(a.closers) - 1; i >= 0; i-- {
		a.closers[i]()
	}
}

func openDocIndex(path string) (*docindex.Index, *sql.DB, error) {
	return docindex.Open(path)
}
