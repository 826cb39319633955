package providers

import (
	"context"
	"strings"
)

// MockProvider returns deterministic completions so pipelines run without
// network access or keys.
type MockProvider struct{}

func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

func (m *MockProvider) Complete(ctx context.Context, req CompletionRequest) (CompletionResponse, ProviderInfo, error) {
	_ = ctx
	text := "Mock response."
	op := strings.ToLower(req.Operation)
	if strings.Contains(op, "demographics") {
		text = `{"name": null, "age": null, "date_of_birth": null, "gender": null}`
	} else if strings.Contains(op, "answer") || strings.Contains(op, "question") {
		text = "Not found in files."
	}
	return CompletionResponse{Text: text}, ProviderInfo{Name: "mock", Model: "mock-llm-v1", Key: "mock"}, nil
}
