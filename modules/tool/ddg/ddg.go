// Package ddg implements the search tool against the DuckDuckGo
// instant-answer API.
package ddg

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 4 << 20 // 4 MB

// maxTopics bounds how many related topics feed a digest answer.
const maxTopics = 3

// noResultsReply is returned when the API has nothing for the query.
const noResultsReply = "No search results found."

// Config holds the settings for the search tool.
type Config struct {
	BaseURL string `yaml:"base_url"`
	Timeout string `yaml:"timeout"`
}

// defaults fills zero-valued fields with sensible defaults.
func (c *Config) defaults() {
	if c.BaseURL == "" {
		c.BaseURL = "https://api.duckduckgo.com"
	}
	if c.Timeout == "" {
		c.Timeout = "10s"
	}
}

// Tool queries the instant-answer API and digests the response.
type Tool struct {
	config Config
	client *http.Client
}

// New creates a Tool from the given config.
func New(cfg Config) (*Tool, error) {
	cfg.defaults()
	timeout, err := time.ParseDuration(cfg.Timeout)
	if err != nil {
		return nil, fmt.Errorf("tool.ddg: invalid timeout %q: %w", cfg.Timeout, err)
	}
	return &Tool{
		config: cfg,
		client: &http.Client{Timeout: timeout},
	}, nil
}

// answer is the subset of the instant-answer response we digest.
type answer struct {
	AbstractText  string `json:"AbstractText"`
	Heading       string `json:"Heading"`
	RelatedTopics []struct {
		Text string `json:"Text"`
	} `json:"RelatedTopics"`
}

// Search runs the query and returns a short text digest. Signature
// matches tool.Func so it registers directly.
func (t *Tool) Search(ctx context.Context, query string) (string, error) {
	endpoint := strings.TrimRight(t.config.BaseURL, "/") + "/?" + url.Values{
		"q":           {query},
		"format":      {"json"},
		"no_redirect": {"1"},
		"no_html":     {"1"},
	}.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return "", fmt.Errorf("tool.ddg: build request: %w", err)
	}

	resp, err := t.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("tool.ddg: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseSize))
	if err != nil {
		return "", fmt.Errorf("tool.ddg: read response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("tool.ddg: HTTP %d", resp.StatusCode)
	}

	var ans answer
	if err := json.Unmarshal(raw, &ans); err != nil {
		return "", fmt.Errorf("tool.ddg: decode response: %w", err)
	}
	return digest(ans), nil
}

// digest flattens an instant answer to one short text block. The
// abstract wins; otherwise the first few related topics are joined.
func digest(ans answer) string {
	if ans.AbstractText != "" {
		if ans.Heading != "" {
			return ans.Heading + ": " + ans.AbstractText
		}
		return ans.AbstractText
	}

	var lines []string
	for _, topic := range ans.RelatedTopics {
		if topic.Text == "" {
			continue
		}
		lines = append(lines, topic.Text)
		if len(lines) == maxTopics {
			break
		}
	}
	if len(lines) == 0 {
		return noResultsReply
	}
	return strings.Join(lines, "\n")
}
