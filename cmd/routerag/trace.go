package main

import (
	"io"
	"strings"
	"sync"

	"github.com/fatih/color"
	"github.com/poiesic/routerag/core"
	"github.com/poiesic/routerag/pipeline"
)

// traceMonitor prints every pipeline step.
type traceMonitor struct {
	mu   sync.Mutex
	out  io.Writer
	step *color.Color
	warn *color.Color
	fail *color.Color
}

var _ pipeline.Monitor = (*traceMonitor)(nil)

func newTraceMonitor(out io.Writer) *traceMonitor {
	return &traceMonitor{
		out:  out,
		step: color.New(color.FgCyan),
		warn: color.New(color.FgYellow),
		fail: color.New(color.FgRed),
	}
}

func (m *traceMonitor) printf(c *color.Color, format string, args ...any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	c.Fprintf(m.out, format+"\n", args...)
}

func (m *traceMonitor) Start(userID, query string) {
	m.printf(m.step, "[start] user=%s query=%q", userID, query)
}

func (m *traceMonitor) AfterClassification(category core.Category, route core.Route) {
	m.printf(m.step, "[classify] %s context=%t documents=%t", category, route.Context, route.Documents)
}

func (m *traceMonitor) AfterContextLookup(context string, found bool) {
	if !found {
		m.printf(m.step, "[context] none")
		return
	}
	m.printf(m.step, "[context] %q", context)
}

func (m *traceMonitor) AfterRetrieval(documents []string) {
	m.printf(m.step, "[retrieve] %d documents", len(documents))
}

func (m *traceMonitor) Degraded(d pipeline.Degradation) {
	m.printf(m.warn, "[degraded] %v", d)
}

func (m *traceMonitor) BeforeGeneration(request *pipeline.Request) {
	roles := make([]string, 0, 4)
	for _, msg := range request.Messages() {
		roles = append(roles, string(msg.Role))
	}
	m.printf(m.step, "[generate] messages=%s", strings.Join(roles, ","))
}

func (m *traceMonitor) Finish(result *pipeline.Result, err error) {
	if err != nil {
		m.printf(m.fail, "[finish] %v", err)
		return
	}
	m.printf(m.step, "[finish] run=%s answer=%d chars", result.RunID, len(result.Answer))
}
