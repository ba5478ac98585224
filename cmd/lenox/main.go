// Package main is the entry point for the lenox CLI.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/lenoxlabs/lenox/internal/config"
)

// Set by goreleaser ldflags.
var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "lenox",
		Short:         "A conversational crypto assistant",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(versionCmd(), chatCmd(), ingestCmd(), configCmd())
	return root
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Printf("lenox %s (commit: %s, built: %s)\n", version, commit, date)
		},
	}
}

func chatCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "chat",
		Short: "Start an interactive chat session",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			logger := newLogger(cfg.Logging)

			app, err := buildApp(cfg, logger)
			if err != nil {
				return err
			}
			defer app.Close()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			sessionID, _ := cmd.Flags().GetString("session")
			if sessionID == "" {
				sessionID = uuid.NewString()
			}
			return runREPL(ctx, app, sessionID, os.Stdin, os.Stdout)
		},
	}
	cmd.Flags().StringP("config", "c", "", "Path to configuration file")
	cmd.Flags().String("session", "", "Session ID (default: a fresh UUID)")
	return cmd
}

// runREPL reads queries line by line and prints envelopes until EOF
// or cancellation.
func runREPL(ctx context.Context, app *app, sessionID string, in *os.File, out *os.File) error {
	fmt.Fprintf(out, "lenox %s, session %s (ctrl-d to exit)\n", version, sessionID)

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		if ctx.Err() != nil {
			break
		}

		env := app.dispatcher.Handle(ctx, sessionID, scanner.Text())
		switch {
		case env.IsError():
			fmt.Fprintf(out, "! %s\n", env.Content)
		default:
			// Visual envelopes carry serialized figure documents;
			// both kinds print raw.
			fmt.Fprintln(out, env.Content)
		}
	}
	return scanner.Err()
}

func ingestCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ingest <title> <file>",
		Short: "Add a document to the full-text index",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cfg.Documents.Path == "" {
				return fmt.Errorf("documents.path is not configured")
			}

			content, err := os.ReadFile(args[1])
			if err != nil {
				return err
			}

			index, db, err := openDocIndex(cfg.Documents.Path)
			if err != nil {
				return err
			}
			defer db.Close()

			id, err := index.Ingest(cmd.Context(), args[0], string(content))
			if err != nil {
				return err
			}
			fmt.Printf("ingested %q as %s\n", args[0], id)
			return nil
		},
	}
	cmd.Flags().StringP("config", "c", "", "Path to configuration file")
	return cmd
}

func configCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management",
	}
	cmd.AddCommand(&cobra.Command{
		Use:   "check <path>",
		Short: "Validate configuration",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := config.Load(args[0])
			if err != nil {
				return err
			}
			if err := config.Validate(cfg); err != nil {
				return err
			}

			summary, _ := json.Marshal(map[string]string{
				"history":   historyBackend(cfg),
				"documents": enabledWhen(cfg.Documents.Path != ""),
				"metrics":   enabledWhen(cfg.Telemetry.MetricsListen != ""),
				"tracing":   enabledWhen(cfg.Telemetry.OTLPEndpoint != ""),
			})
			fmt.Printf("Configuration OK %s\n", summary)
			return nil
		},
	})
	return cmd
}

func historyBackend(cfg *config.Config) string {
	if cfg.History.Backend == "" {
		return "memory"
	}
	return cfg.History.Backend
}

func enabledWhen(on bool) string {
	if on {
		return "enabled"
	}
	return "disabled"
}

func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	if cfgPath == "" {
		resolved, err := resolveConfigPath()
		if err != nil {
			return nil, err
		}
		cfgPath = resolved
	}

	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, err
	}
	if err := config.Validate(cfg); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveConfigPath searches for a config file in standard locations.
// Search order: $XDG_CONFIG_HOME/lenox/lenox.yaml → ./lenox.yaml
func resolveConfigPath() (string, error) {
	var candidates []string

	if xdg, ok := os.LookupEnv("XDG_CONFIG_HOME"); ok {
		candidates = append(candidates, filepath.Join(xdg, "lenox", "lenox.yaml"))
	} else if home, err := os.UserHomeDir(); err == nil {
		candidates = append(candidates, filepath.Join(home, ".config", "lenox", "lenox.yaml"))
	}

	candidates = append(candidates, "lenox.yaml")

	for _, path := range candidates {
		if _, err := os.Stat(path); err == nil {
			return path, nil
		}
	}

	return "", fmt.Errorf("no configuration file found (searched: %v)", candidates)
}

func newLogger(cfg config.LoggingConfig) *slog.Logger {
	level := slog.LevelInfo
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = slog.LevelDebug
	case "warn":
		level = slog.LevelWarn
	case "error":
		level = slog.LevelError
	}

	opts := &slog.HandlerOptions{Level: level}
	if cfg.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}
