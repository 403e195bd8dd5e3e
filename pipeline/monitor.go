package pipeline

import "github.com/poiesic/routerag/core"

// Monitor provides hooks to observe a run.
// Implement this interface to trace intermediate steps. Hooks for steps the
// route skips are not called. Implementations must be safe for concurrent use
// when the orchestrator runs batches.
type Monitor interface {
	Start(userID, query string)
	AfterClassification(category core.Category, route core.Route)
	AfterContextLookup(context string, found bool)
	AfterRetrieval(documents []string)
	Degraded(degradation Degradation)
	BeforeGeneration(request *Request)
	Finish(result *Result, err error)
}

// noopMonitor is a no-op implementation of Monitor
type noopMonitor struct{}

var _ Monitor = (*noopMonitor)(nil)

func (n *noopMonitor) Start(_, _ string)                                 {}
func (n *noopMonitor) AfterClassification(_ core.Category, _ core.Route) {}
func (n *noopMonitor) AfterContextLookup(_ string, _ bool)               {}
func (n *noopMonitor) AfterRetrieval(_ []string)                         {}
func (n *noopMonitor) Degraded(_ Degradation)                            {}
func (n *noopMonitor) BeforeGeneration(_ *Request)                       {}
func (n *noopMonitor) Finish(_ *Result, _ error)                         {}
