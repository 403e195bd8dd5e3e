// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/poiesic/routerag/ai"
	"github.com/poiesic/routerag/core"
	"github.com/poiesic/routerag/retrieval"
)

const releaseTimeout = 5 * time.Second

// ContextStore is the per-user context the orchestrator reads and commits to.
// contextstore.Store implements it.
type ContextStore interface {
	BestMatch(ctx context.Context, userID, query string) (string, bool, error)
	Append(ctx context.Context, userID, text string) (*core.ContextEntry, error)
}

// Orchestrator routes queries through the pipeline.
// Safe for concurrent use by multiple goroutines.
type Orchestrator struct {
	classifier   ai.Classifier
	contexts     ContextStore
	retriever    retrieval.Gateway
	generator    ai.Generator
	monitor      Monitor
	systemPrompt string
	pool         *ants.Pool
	logger       *slog.Logger
}

// Option configures an Orchestrator.
type Option func(*Orchestrator) error

// WithMonitor installs hooks that observe every run.
func WithMonitor(monitor Monitor) Option {
	return func(o *Orchestrator) error {
		if monitor == nil {
			return errors.New("monitor cannot be nil")
		}
		o.monitor = monitor
		return nil
	}
}

// WithSystemPrompt replaces DefaultSystemPrompt.
func WithSystemPrompt(prompt string) Option {
	return func(o *Orchestrator) error {
		if strings.TrimSpace(prompt) == "" {
			return errors.New("system prompt cannot be blank")
		}
		o.systemPrompt = prompt
		return nil
	}
}

// WithPoolSize sets the worker pool size for batch runs.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(o *Orchestrator) error {
		if size < 1 {
			size = 1
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		o.Release()
		o.pool = pool
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(o *Orchestrator) error {
		if logger == nil {
			logger = slog.Default()
		}
		o.logger = logger
		return nil
	}
}

// NewOrchestrator creates an orchestrator over the four collaborators.
func NewOrchestrator(
	classifier ai.Classifier,
	contexts ContextStore,
	retriever retrieval.Gateway,
	generator ai.Generator,
	opts ...Option,
) (*Orchestrator, error) {
	if classifier == nil {
		return nil, ErrClassifierRequired
	}
	if contexts == nil {
		return nil, ErrContextStoreRequired
	}
	if retriever == nil {
		return nil, ErrRetrieverRequired
	}
	if generator == nil {
		return nil, ErrGeneratorRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	o := &Orchestrator{
		classifier:   classifier,
		contexts:     contexts,
		retriever:    retriever,
		generator:    generator,
		monitor:      &noopMonitor{},
		systemPrompt: DefaultSystemPrompt,
		pool:         pool,
		logger:       slog.Default(),
	}

	for _, opt := range opts {
		if optErr := opt(o); optErr != nil {
			o.Release()
			return nil, optErr
		}
	}
	o.logger = o.logger.With("component", "orchestrator")

	return o, nil
}

// Release stops the batch worker pool and waits for its workers to exit.
// Run keeps working afterwards; RunBatch does not.
func (o *Orchestrator) Release() {
	if o.pool == nil || o.pool.IsClosed() {
		return
	}
	if err := o.pool.ReleaseTimeout(releaseTimeout); err != nil && !errors.Is(err, ants.ErrPoolClosed) {
		o.logger.Warn("worker pool did not stop in time", "err", err)
	}
}

// Run answers one query for one user.
//
// Classification and generation failures abort the run and nothing is
// committed. Context lookup and retrieval failures are recorded on the result
// as degradations. A cancelled context aborts the run with the context error.
// When the answer cannot be committed the result is returned together with an
// error wrapping core.ErrContextCommitFailed.
func (o *Orchestrator) Run(ctx context.Context, userID, query string) (*Result, error) {
	if err := core.ValidateUserID(userID); err != nil {
		return nil, err
	}

	runID := uuid.NewString()
	logger := o.logger.With("run", runID, "user", userID)

	o.monitor.Start(userID, query)
	result, err := o.run(ctx, logger, runID, userID, query)
	o.monitor.Finish(result, err)

	if err != nil {
		logger.Debug("run failed", "err", err)
	}
	return result, err
}

func (o *Orchestrator) run(ctx context.Context, logger *slog.Logger, runID, userID, query string) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	category, err := o.classifier.Classify(ctx, query)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", core.ErrClassificationUnavailable, err)
	}
	if !category.Valid() {
		category = core.ComplexQuery
	}
	route := core.RouteFor(category)
	o.monitor.AfterClassification(category, route)
	logger.Debug("query classified", "category", category.Name(), "context", route.Context, "documents", route.Documents)

	result := &Result{
		RunID:    runID,
		UserID:   userID,
		Category: category,
		Route:    route,
		Request:  &Request{System: o.systemPrompt, Query: query},
	}

	if route.Context {
		text, found, err := o.contexts.BestMatch(ctx, userID, query)
		switch {
		case err != nil && ctx.Err() != nil:
			return nil, ctx.Err()
		case err != nil:
			o.degrade(logger, result, InputContext, err)
		default:
			result.Request.Context = text
			result.Request.HasContext = found
			o.monitor.AfterContextLookup(text, found)
		}
	}

	if route.Documents {
		documents, err := o.retriever.Search(ctx, query)
		switch {
		case err != nil && ctx.Err() != nil:
			return nil, ctx.Err()
		case err != nil:
			if !errors.Is(err, core.ErrRetrievalUnavailable) {
				err = fmt.Errorf("%w: %w", core.ErrRetrievalUnavailable, err)
			}
			o.degrade(logger, result, InputDocuments, err)
		default:
			result.Request.Documents = documents
			o.monitor.AfterRetrieval(documents)
		}
	}

	o.monitor.BeforeGeneration(result.Request)
	answer, err := o.generator.Generate(ctx, result.Request.Messages())
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		return nil, fmt.Errorf("%w: %w", core.ErrGenerationUnavailable, err)
	}
	if strings.TrimSpace(answer) == "" {
		return nil, fmt.Errorf("%w: empty answer", core.ErrGenerationUnavailable)
	}
	result.Answer = answer

	if _, err := o.contexts.Append(ctx, userID, answer); err != nil {
		logger.Error("failed to commit answer to context", "err", err)
		return result, fmt.Errorf("%w: %w", core.ErrContextCommitFailed, err)
	}

	if result.Degraded() {
		logger.Warn("answered with degraded input", "err", result.PartialInputError())
	}
	return result, nil
}

func (o *Orchestrator) degrade(logger *slog.Logger, result *Result, input Input, err error) {
	d := Degradation{Input: input, Err: err}
	result.Degradations = append(result.Degradations, d)
	o.monitor.Degraded(d)
	logger.Warn("input unavailable, continuing without it", "input", input.String(), "err", err)
}
