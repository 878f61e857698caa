package llm

import (
	"context"
	"fmt"
)

// MockClient is a canned response-generation client for tests and local runs.
type MockClient struct {
	// Err, when set, is returned from every Complete call.
	Err error
	// Reply, when set, overrides the canned response text.
	Reply string
}

// NewMockClient creates a mock client with a supportive canned reply.
func NewMockClient() *MockClient {
	return &MockClient{}
}

// Name returns the provider name.
func (m *MockClient) Name() string {
	return "mock"
}

// Complete echoes the last user message back in a supportive register.
func (m *MockClient) Complete(ctx context.Context, req *CompletionRequest) (*CompletionResponse, error) {
	if m.Err != nil {
		return nil, m.Err
	}

	content := m.Reply
	if content == "" {
		last := ""
		if len(req.Messages) > 0 {
			last = req.Messages[len(req.Messages)-1].Content
		}
		content = fmt.Sprintf("I hear you. You said %q. Tell me a little more about how that feels.", last)
	}

	return &CompletionResponse{
		Content: content,
		Model:   "mock",
	}, nil
}
