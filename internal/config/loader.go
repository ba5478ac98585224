package config

import (
	"errors"
	"fmt"
	"os"
	"regexp"

	"gopkg.in/yaml.v3"
)

// varPattern matches ${NAME} and ${NAME:-fallback} placeholders in the
// raw YAML, before decoding. Secrets like the provider api_key are
// expected to arrive this way rather than sit in the file.
var varPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)(?::-((?:[^}\\]|\\.)*))?\}`)

// Load reads the file at path, substitutes environment placeholders,
// and decodes the result into a Config. Structural checks are a
// separate pass; callers follow up with Validate.
func Load(path string) (*Config, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: read %s: %w", path, err)
	}

	substituted, err := substituteEnv(raw)
	if err != nil {
		return nil, fmt.Errorf("config: expand %s: %w", path, err)
	}

	var cfg Config
	if err := yaml.Unmarshal(substituted, &cfg); err != nil {
		return nil, fmt.Errorf("config: parse %s: %w", path, err)
	}
	return &cfg, nil
}

// substituteEnv resolves every placeholder against the environment,
// falling back to the inline default when one is present. Placeholders
// with neither are collected and reported together so a broken file
// surfaces all its missing variables at once.
func substituteEnv(raw []byte) ([]byte, error) {
	var missing []error

	out := varPattern.ReplaceAllFunc(raw, func(match []byte) []byte {
		groups := varPattern.FindSubmatch(match)
		name := string(groups[1])

		if value, ok := os.LookupEnv(name); ok {
			return []byte(value)
		}
		if groups[2] != nil {
			return groups[2]
		}

		missing = append(missing, fmt.Errorf("unresolved variable: %s", name))
		return match
	})

	return out, errors.Join(missing...)
}
