package config

import "time"

// Duration defaults applied when the corresponding field is empty.
const (
	defaultCallTimeout = 30 * time.Second
	defaultMaxIdle     = 24 * time.Hour
)

// Timeout returns the collaborator call timeout as a duration.
// Assumes the value has been validated.
func (c DispatchConfig) Timeout() time.Duration {
	return parseOr(c.CallTimeout, defaultCallTimeout)
}

// IdleCutoff returns the retention idle cutoff as a duration.
// Assumes the value has been validated.
func (c RetentionConfig) IdleCutoff() time.Duration {
	return parseOr(c.MaxIdle, defaultMaxIdle)
}

func parseOr(value string, fallback time.Duration) time.Duration {
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}
