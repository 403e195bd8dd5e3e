package pipeline

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/poiesic/routerag/ai/mock"
	"github.com/poiesic/routerag/contextstore"
	"github.com/poiesic/routerag/core"
	"github.com/poiesic/routerag/retrieval"
	"github.com/poiesic/routerag/storage"
	"github.com/poiesic/routerag/storage/memory"
	"github.com/stretchr/testify/require"
)

type harness struct {
	orch       *Orchestrator
	repo       storage.ContextRepository
	store      *contextstore.Store
	classifier *mock.MockClassifier
	embedder   *mock.MockEmbedder
	generator  *mock.MockGenerator
	monitor    *recordingMonitor

	searches  atomic.Int32
	documents []string
	searchErr error
	searchFn  func(ctx context.Context, query string) ([]string, error)
}

func newHarness(t *testing.T, category core.Category, opts ...Option) *harness {
	t.Helper()

	h := &harness{
		repo:       memory.NewContextRepository(),
		classifier: mock.NewFixedClassifier(category),
		embedder:   mock.NewMockEmbedder(),
		generator:  mock.NewMockGenerator(),
		monitor:    &recordingMonitor{},
	}
	t.Cleanup(func() { h.repo.Close() })

	store, err := contextstore.New(h.repo, h.embedder)
	require.NoError(t, err)
	h.store = store

	gateway := retrieval.Func(func(ctx context.Context, query string) ([]string, error) {
		h.searches.Add(1)
		if h.searchFn != nil {
			return h.searchFn(ctx, query)
		}
		if h.searchErr != nil {
			return nil, h.searchErr
		}
		return h.documents, nil
	})

	opts = append([]Option{WithMonitor(h.monitor)}, opts...)
	orch, err := NewOrchestrator(h.classifier, store, gateway, h.generator, opts...)
	require.NoError(t, err)
	t.Cleanup(orch.Release)
	h.orch = orch

	return h
}

func (h *harness) seed(t *testing.T, userID string, texts ...string) {
	t.Helper()
	for _, text := range texts {
		_, err := h.store.Append(context.Background(), userID, text)
		require.NoError(t, err)
	}
}

func (h *harness) history(t *testing.T, userID string) []string {
	t.Helper()
	entries, err := h.store.History(context.Background(), userID)
	require.NoError(t, err)
	texts := make([]string, len(entries))
	for i, e := range entries {
		texts[i] = e.Contents
	}
	return texts
}

// recordingMonitor records the name of every hook call in order.
type recordingMonitor struct {
	mu     sync.Mutex
	events []string
}

var _ Monitor = (*recordingMonitor)(nil)

func (m *recordingMonitor) record(event string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
}

func (m *recordingMonitor) Events() []string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]string(nil), m.events...)
}

func (m *recordingMonitor) Start(_, _ string)                                 { m.record("start") }
func (m *recordingMonitor) AfterClassification(_ core.Category, _ core.Route) { m.record("classified") }
func (m *recordingMonitor) AfterContextLookup(_ string, _ bool)               { m.record("context") }
func (m *recordingMonitor) AfterRetrieval(_ []string)                         { m.record("retrieval") }
func (m *recordingMonitor) Degraded(d Degradation)                            { m.record("degraded:" + d.Input.String()) }
func (m *recordingMonitor) BeforeGeneration(_ *Request)                       { m.record("generate") }
func (m *recordingMonitor) Finish(_ *Result, err error) {
	if err != nil {
		m.record("finish:error")
		return
	}
	m.record("finish")
}
