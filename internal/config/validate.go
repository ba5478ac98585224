package config

import (
	"errors"
	"fmt"
	"time"
)

// Validate checks the structural validity of a Config. It verifies the
// version field, the selected history backend, duration fields, and
// that a provider section is present.
func Validate(cfg *Config) error {
	var errs []error

	if cfg.Version == "" {
		errs = append(errs, errors.New("config: version field is required"))
	} else if cfg.Version != "1" {
		errs = append(errs, fmt.Errorf("config: unsupported version %q (supported: \"1\")", cfg.Version))
	}

	switch cfg.History.Backend {
	case "", "memory":
	case "sqlite":
		if cfg.History.Path == "" {
			errs = append(errs, errors.New("config: history.path is required for the sqlite backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("config: unknown history backend %q (supported: memory, sqlite)", cfg.History.Backend))
	}

	if cfg.History.MaxTurns < 0 {
		errs = append(errs, fmt.Errorf("config: history.max_turns must not be negative, got %d", cfg.History.MaxTurns))
	}
	if cfg.History.RecentWindow < 0 {
		errs = append(errs, fmt.Errorf("config: history.recent_window must not be negative, got %d", cfg.History.RecentWindow))
	}
	if cfg.Composer.MaxPromptTokens < 0 {
		errs = append(errs, fmt.Errorf("config: composer.max_prompt_tokens must not be negative, got %d", cfg.Composer.MaxPromptTokens))
	}

	errs = append(errs, validateDuration("dispatch.call_timeout", cfg.Dispatch.CallTimeout)...)
	errs = append(errs, validateDuration("retention.max_idle", cfg.Retention.MaxIdle)...)
	errs = append(errs, validateDuration("search.timeout", cfg.Search.Timeout)...)

	switch cfg.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("config: unknown logging level %q", cfg.Logging.Level))
	}
	switch cfg.Logging.Format {
	case "", "text", "json":
	default:
		errs = append(errs, fmt.Errorf("config: unknown logging format %q", cfg.Logging.Format))
	}

	if cfg.Provider.IsZero() {
		errs = append(errs, errors.New("config: provider section is required"))
	}

	return errors.Join(errs...)
}

func validateDuration(field, value string) []error {
	if value == "" {
		return nil
	}
	if _, err := time.ParseDuration(value); err != nil {
		return []error{fmt.Errorf("config: %s: invalid duration %q: %w", field, value, err)}
	}
	return nil
}
