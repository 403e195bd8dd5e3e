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

// Package routerag wires the context store, AI services and document
// retrieval into query orchestrators.
package routerag

import (
	"errors"
	"log/slog"

	"github.com/poiesic/routerag/ai"
	"github.com/poiesic/routerag/ai/openai"
	"github.com/poiesic/routerag/contextstore"
	"github.com/poiesic/routerag/pipeline"
	"github.com/poiesic/routerag/retrieval"
	"github.com/poiesic/routerag/retrieval/elastic"
	"github.com/poiesic/routerag/storage"
	"github.com/poiesic/routerag/storage/badger"
	"github.com/poiesic/routerag/storage/memory"
)

// Engine owns the long-lived collaborators shared by every query.
type Engine struct {
	backend   *badger.Backend
	repo      storage.ContextRepository
	provider  ai.AIProvider
	retriever retrieval.Gateway
	// ownsProvider is false when the provider came from WithProvider.
	ownsProvider bool
	store        *contextstore.Store
	logger       *slog.Logger
}

// EngineOption configures an Engine.
type EngineOption func(*engineOptions)

type engineOptions struct {
	storagePath    string
	aiConfig       *ai.Config
	provider       ai.AIProvider
	elasticConfig  *elastic.Config
	retriever      retrieval.Gateway
	contextOptions []contextstore.Option
}

// WithStoragePath persists context in a Badger database at path.
// Without it context lives in process memory and is lost on exit.
func WithStoragePath(path string) EngineOption {
	return func(o *engineOptions) {
		o.storagePath = path
	}
}

// WithAIConfig configures the OpenAI-compatible services.
func WithAIConfig(config *ai.Config) EngineOption {
	return func(o *engineOptions) {
		o.aiConfig = config
	}
}

// WithProvider supplies ready-made AI services instead of building them from the AI config.
// The caller keeps ownership: Engine.Close does not close it. Name its embedding
// model with contextstore.WithEmbeddingModel to scope the embedding cache.
func WithProvider(provider ai.AIProvider) EngineOption {
	return func(o *engineOptions) {
		o.provider = provider
	}
}

// WithElasticConfig configures the Elasticsearch document gateway.
func WithElasticConfig(config *elastic.Config) EngineOption {
	return func(o *engineOptions) {
		o.elasticConfig = config
	}
}

// WithRetriever supplies a document gateway instead of Elasticsearch.
func WithRetriever(gateway retrieval.Gateway) EngineOption {
	return func(o *engineOptions) {
		o.retriever = gateway
	}
}

// WithContextOptions passes options through to the context store.
func WithContextOptions(opts ...contextstore.Option) EngineOption {
	return func(o *engineOptions) {
		o.contextOptions = append(o.contextOptions, opts...)
	}
}

// NewEngine validates configuration and builds every collaborator.
// No external service is contacted.
func NewEngine(opts ...EngineOption) (*Engine, error) {
	options := &engineOptions{
		aiConfig:      ai.DefaultConfig(),
		elasticConfig: elastic.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	e := &Engine{
		logger: slog.Default().With("component", "engine"),
	}

	if options.storagePath == "" {
		e.repo = memory.NewContextRepository()
	} else {
		backend, err := badger.OpenBackend(options.storagePath, false)
		if err != nil {
			return nil, err
		}
		repo, err := badger.NewContextRepository(backend)
		if err != nil {
			backend.Close()
			return nil, err
		}
		e.backend = backend
		e.repo = repo
	}

	e.provider = options.provider
	if e.provider == nil {
		if options.aiConfig == nil {
			e.Close()
			return nil, errors.New("AI config is required")
		}
		provider, err := openai.NewProvider(options.aiConfig)
		if err != nil {
			e.Close()
			return nil, err
		}
		e.provider = provider
		e.ownsProvider = true
	}

	e.retriever = options.retriever
	if e.retriever == nil {
		gateway, err := elastic.NewGateway(options.elasticConfig)
		if err != nil {
			e.Close()
			return nil, err
		}
		e.retriever = gateway
	}

	contextOpts := options.contextOptions
	if e.ownsProvider {
		contextOpts = append([]contextstore.Option{contextstore.WithEmbeddingModel(options.aiConfig.EmbeddingModel)}, contextOpts...)
	}
	store, err := contextstore.New(e.repo, e.provider.Embedder(), contextOpts...)
	if err != nil {
		e.Close()
		return nil, err
	}
	e.store = store

	return e, nil
}

// Close releases the context storage and the AI provider it built.
func (e *Engine) Close() error {
	if e.provider != nil && e.ownsProvider {
		if err := e.provider.Close(); err != nil {
			e.logger.Error("error closing AI provider", "err", err)
		}
	}

	if e.repo != nil {
		if err := e.repo.Close(); err != nil {
			e.logger.Error("error closing context repository", "err", err)
			return err
		}
	}

	if e.backend != nil {
		if err := e.backend.Close(); err != nil {
			e.logger.Error("error closing backend storage", "err", err)
			return err
		}
	}
	return nil
}

// ContextStore returns the per-user context store.
func (e *Engine) ContextStore() *contextstore.Store {
	return e.store
}

// Provider returns the AI services.
func (e *Engine) Provider() ai.AIProvider {
	return e.provider
}

// NewOrchestrator creates an orchestrator over the engine's collaborators.
// The caller must Release it.
func (e *Engine) NewOrchestrator(opts ...pipeline.Option) (*pipeline.Orchestrator, error) {
	return pipeline.NewOrchestrator(e.provider.Classifier(), e.store, e.retriever, e.provider.Generator(), opts...)
}
