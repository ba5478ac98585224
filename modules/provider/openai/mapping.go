package openai

import "github.com/lenoxlabs/lenox/internal/provider"

// chatMessage is a single message on the chat-completions wire.
type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

// chatRequest is the request body for POST /chat/completions.
type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	MaxTokens   int           `json:"max_tokens,omitempty"`
	Temperature *float64      `json:"temperature,omitempty"`
	Stop        []string      `json:"stop,omitempty"`
}

// chatResponse is the response body from POST /chat/completions.
type chatResponse struct {
	Choices []struct {
		Message struct {
			Content string `json:"content"`
		} `json:"message"`
		FinishReason string `json:"finish_reason"`
	} `json:"choices"`
	Usage struct {
		PromptTokens     int `json:"prompt_tokens"`
		CompletionTokens int `json:"completion_tokens"`
		TotalTokens      int `json:"total_tokens"`
	} `json:"usage"`
}

// apiError is the error envelope returned by OpenAI-compatible APIs.
type apiError struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
	} `json:"error"`
}

// buildChatRequest converts a provider request to the wire format.
func buildChatRequest(model string, cfg Config, req provider.CompletionRequest) chatRequest {
	out := chatRequest{
		Model:       model,
		Messages:    make([]chatMessage, 0, len(req.Messages)),
		MaxTokens:   req.MaxTokens,
		Temperature: req.Temperature,
		Stop:        req.Stop,
	}
	if out.MaxTokens == 0 {
		out.MaxTokens = cfg.MaxTokens
	}
	if out.Temperature == nil {
		out.Temperature = cfg.Temperature
	}
	for _, m := range req.Messages {
		out.Messages = append(out.Messages, chatMessage{
			Role:    string(m.Role),
			Content: m.Content,
		})
	}
	return out
}

// toCompletionResponse converts a wire response to the provider type.
func toCompletionResponse(resp chatResponse) provider.CompletionResponse {
	out := provider.CompletionResponse{
		FinishReason: provider.FinishReasonStop,
		Usage: provider.TokenUsage{
			PromptTokens:     resp.Usage.PromptTokens,
			CompletionTokens: resp.Usage.CompletionTokens,
			TotalTokens:      resp.Usage.TotalTokens,
		},
	}
	if len(resp.Choices) == 0 {
		return out
	}
	choice := resp.Choices[0]
	out.Content = choice.Message.Content
	switch choice.FinishReason {
	case "length":
		out.FinishReason = provider.FinishReasonLength
	case "content_filter":
		out.FinishReason = provider.FinishReasonFiltering
	}
	return out
}
