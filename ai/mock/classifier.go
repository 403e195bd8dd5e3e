package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/poiesic/routerag/core"
)

// MockClassifier is a test double for ai.Classifier.
type MockClassifier struct {
	// ClassifyFunc is called by Classify if set.
	ClassifyFunc func(ctx context.Context, query string) (core.Category, error)

	// Category is returned when ClassifyFunc is nil. Defaults to GeneralQuery.
	Category core.Category

	mu        sync.Mutex
	callCount int
	queries   []string
}

// NewMockClassifier creates a mock classifier that always answers GeneralQuery.
func NewMockClassifier() *MockClassifier {
	return &MockClassifier{Category: core.GeneralQuery}
}

// NewFixedClassifier creates a mock classifier that always answers the given category.
func NewFixedClassifier(category core.Category) *MockClassifier {
	return &MockClassifier{Category: category}
}

// Classify returns the scripted category.
func (m *MockClassifier) Classify(ctx context.Context, query string) (core.Category, error) {
	m.mu.Lock()
	m.callCount++
	m.queries = append(m.queries, query)
	m.mu.Unlock()

	if m.ClassifyFunc != nil {
		return m.ClassifyFunc(ctx, query)
	}
	if strings.TrimSpace(query) == "" {
		return core.GeneralQuery, nil
	}
	return m.Category, nil
}

// CallCount returns the number of times Classify was called.
func (m *MockClassifier) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.callCount
}

// Queries returns the queries passed to Classify, in call order.
func (m *MockClassifier) Queries() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.queries...)
}

// Reset clears the call history and custom function.
func (m *MockClassifier) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callCount = 0
	m.queries = nil
	m.ClassifyFunc = nil
}
