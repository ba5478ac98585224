package openai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/lenoxlabs/lenox/internal/provider"
)

// maxResponseSize caps how much of a response body is read.
const maxResponseSize = 10 << 20 // 10 MB

// Complete sends a chat-completions request and returns the response.
func (p *Provider) Complete(ctx context.Context, req provider.CompletionRequest) (provider.CompletionResponse, error) {
	body := buildChatRequest(p.config.Model, p.config, req)

	raw, err := p.doPost(ctx, "/chat/completions", body)
	if err != nil {
		return provider.CompletionResponse{}, err
	}

	var resp chatResponse
	if err := json.Unmarshal(raw, &resp); err != nil {
		return provider.CompletionResponse{}, fmt.Errorf("openai: decode response: %w", err)
	}
	return toCompletionResponse(resp), nil
}

// doPost sends a JSON POST to the given API path and returns the
// response body after mapping HTTP and network errors.
func (p *Provider) doPost(ctx context.Context, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("openai: encode request: %w", err)
	}

	url := strings.TrimRight(p.config.BaseURL, "/") + path
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("openai: build request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+p.config.APIKey)

	httpResp, err := p.client.Do(httpReq)
	if err != nil {
		return nil, mapConnectionError(err)
	}
	defer httpResp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(httpResp.Body, maxResponseSize))
	if err != nil {
		return nil, mapConnectionError(err)
	}
	if err := mapHTTPError(httpResp.StatusCode, raw); err != nil {
		return nil, err
	}
	return raw, nil
}
