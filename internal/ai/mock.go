package ai

import "context"

// MockCompleter is a test double for the gateway client. Responses are
// returned in order; the last one repeats once the queue is drained.
type MockCompleter struct {
	Responses []CompletionResponse
	Err       error
	ErrAt     map[int]error // per-call errors, keyed by 0-based call index
	Calls     []CompletionRequest
}

// NewMockCompleter creates a MockCompleter that returns the given content.
func NewMockCompleter(content string) *MockCompleter {
	return &MockCompleter{
		Responses: []CompletionResponse{{Content: content, Model: "mock"}},
	}
}

func (m *MockCompleter) Complete(_ context.Context, req CompletionRequest) (CompletionResponse, error) {
	call := len(m.Calls)
	m.Calls = append(m.Calls, req)

	if err, ok := m.ErrAt[call]; ok {
		return CompletionResponse{}, err
	}
	if m.Err != nil {
		return CompletionResponse{}, m.Err
	}
	if len(m.Responses) == 0 {
		return CompletionResponse{Model: "mock"}, nil
	}
	if call < len(m.Responses) {
		return m.Responses[call], nil
	}
	return m.Responses[len(m.Responses)-1], nil
}
