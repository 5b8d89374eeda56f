package llm

import (
	"context"
	"encoding/json"
	"sync"
)

// MockResponse is one scripted reply. Err takes precedence over Content;
// Truncated simulates output cut off at the token limit.
type MockResponse struct {
	Content   json.RawMessage
	Usage     Usage
	Truncated bool
	Err       error
}

// MockProvider replays scripted replies in order and records every request.
// It backs the "mock" provider setting, which lets the quiz pipeline run
// without network access.
type MockProvider struct {
	mu      sync.Mutex
	replies []MockResponse
	Calls   []Request
}

func NewMockProvider(replies ...MockResponse) *MockProvider {
	return &MockProvider{replies: replies}
}

// Generate pops the next reply. An empty script answers
// ErrProviderUnavailable, so an LLM synthesizer falls back to templates.
func (m *MockProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.Calls = append(m.Calls, req)
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(m.replies) == 0 {
		return nil, &ErrProviderUnavailable{}
	}

	reply := m.replies[0]
	m.replies = m.replies[1:]
	if reply.Err != nil {
		return nil, reply.Err
	}
	if err := finishContent(req, reply.Content, reply.Truncated); err != nil {
		return nil, err
	}
	return &Response{Content: reply.Content, Usage: reply.Usage, Model: ProviderMock}, nil
}

func (m *MockProvider) ModelID() string {
	return ProviderMock
}

// AddResponse appends a reply to the script.
func (m *MockProvider) AddResponse(reply MockResponse) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.replies = append(m.replies, reply)
}

// CallCount returns the number of Generate calls made.
func (m *MockProvider) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Calls)
}
