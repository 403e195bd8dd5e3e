package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/routerag/ai"
)

// MockGenerator is a test double for ai.Generator.
// It records every request so tests can inspect the assembled messages.
type MockGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, the answer is "answer to " followed by the query.
	GenerateFunc func(ctx context.Context, messages []ai.Message) (string, error)

	mu       sync.Mutex
	requests [][]ai.Message
}

// NewMockGenerator creates a mock generator with default echo behavior.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// Generate records the request and returns the scripted answer.
func (m *MockGenerator) Generate(ctx context.Context, messages []ai.Message) (string, error) {
	m.mu.Lock()
	m.requests = append(m.requests, append([]ai.Message(nil), messages...))
	m.mu.Unlock()

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, messages)
	}

	var query string
	for _, msg := range messages {
		if msg.Role == ai.RoleUser {
			query = msg.Content
			break
		}
	}
	return "answer to " + strings.TrimPrefix(query, "Query: "), nil
}

// CallCount returns the number of times Generate was called.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// LastRequest returns the messages of the most recent call, or nil.
func (m *MockGenerator) LastRequest() []ai.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.requests) == 0 {
		return nil
	}
	return m.requests[len(m.requests)-1]
}

// Reset clears the recorded requests and custom function.
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.requests = nil
	m.GenerateFunc = nil
}
