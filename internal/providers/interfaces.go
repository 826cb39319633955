package providers

import "context"

type ProviderInfo struct {
	Name  string `json:"name"`
	Model string `json:"model"`
	Key   string `json:"key"`
}

type CompletionRequest struct {
	Operation string `json:"operation"`
	Prompt    string `json:"prompt"`
}

type CompletionResponse struct {
	Text string `json:"text"`
}

// CompletionProvider is the narrow surface extraction needs: one prompt in,
// one text completion out.
type CompletionProvider interface {
	Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, ProviderInfo, error)
}
