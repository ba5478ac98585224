package dispatch

import "github.com/lenoxlabs/lenox/internal/provider"

// completionRequest wraps a composed prompt as a single-message oracle
// request. The composer already folds context and intent voice into the
// prompt text, so the wire request stays minimal.
func completionRequest(prompt string) provider.CompletionRequest {
	return provider.CompletionRequest{
		Messages: []provider.LLMMessage{
			{Role: provider.MessageRoleUser, Content: prompt},
		},
	}
}
