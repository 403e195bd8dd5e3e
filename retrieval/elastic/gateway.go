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

// Package elastic implements retrieval.Gateway on top of Elasticsearch.
package elastic

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/poiesic/routerag/retrieval"
	"github.com/poiesic/routerag/retry"
)

// expansionBoost weights the second match clause of every query.
const expansionBoost = 0.5

// Gateway searches an Elasticsearch index for documents matching a query.
type Gateway struct {
	client *elasticsearch.Client
	config Config
	logger *slog.Logger
}

var _ retrieval.Gateway = (*Gateway)(nil)

// Option configures a Gateway.
type Option func(*Gateway) error

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(g *Gateway) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		g.logger = logger
		return nil
	}
}

// WithTransport replaces the HTTP transport used by the client.
func WithTransport(transport http.RoundTripper) Option {
	return func(g *Gateway) error {
		if transport == nil {
			return errors.New("transport cannot be nil")
		}
		client, err := newClient(g.config, transport)
		if err != nil {
			return err
		}
		g.client = client
		return nil
	}
}

// NewGateway creates a Gateway for the given configuration.
// The configuration is normalized and validated; no request is sent.
func NewGateway(config *Config, opts ...Option) (*Gateway, error) {
	if config == nil {
		config = DefaultConfig()
	}
	cfg := *config
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	client, err := newClient(cfg, nil)
	if err != nil {
		return nil, err
	}

	g := &Gateway{
		client: client,
		config: cfg,
		logger: slog.Default().With("component", "elastic-gateway"),
	}
	for _, opt := range opts {
		if err := opt(g); err != nil {
			return nil, err
		}
	}
	return g, nil
}

func newClient(cfg Config, transport http.RoundTripper) (*elasticsearch.Client, error) {
	client, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: cfg.Addresses,
		Username:  cfg.Username,
		Password:  cfg.Password,
		Transport: transport,
		// Retries are handled by Search so attempts stay bounded by MaxAttempts.
		DisableRetry: true,
	})
	if err != nil {
		return nil, fmt.Errorf("creating elasticsearch client: %w", err)
	}
	return client, nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			Source struct {
				Content string `json:"content"`
			} `json:"_source"`
		} `json:"hits"`
	} `json:"hits"`
}

// Search returns the content of matching documents in hit order.
// Transport failures and server errors are retried; other responses are not.
func (g *Gateway) Search(ctx context.Context, query string) ([]string, error) {
	body, err := buildQuery(query)
	if err != nil {
		return nil, err
	}

	var documents []string
	err = retry.WithBackoff(ctx, func() error {
		docs, err := g.search(ctx, body)
		if err != nil {
			return err
		}
		documents = docs
		return nil
	}, g.config.MaxAttempts, g.config.RetryDelay)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}

	g.logger.Debug("search complete", "index", g.config.Index, "hits", len(documents))
	return documents, nil
}

func (g *Gateway) search(ctx context.Context, body []byte) ([]string, error) {
	es := g.client
	res, err := es.Search(
		es.Search.WithContext(ctx),
		es.Search.WithIndex(g.config.Index),
		es.Search.WithBody(bytes.NewReader(body)),
		es.Search.WithSize(g.config.Size),
	)
	if err != nil {
		return nil, fmt.Errorf("search request: %w", err)
	}
	defer res.Body.Close()

	if res.IsError() {
		msg, _ := io.ReadAll(io.LimitReader(res.Body, 512))
		err := fmt.Errorf("search failed: %s: %s", res.Status(), bytes.TrimSpace(msg))
		if res.StatusCode >= http.StatusInternalServerError {
			return nil, err
		}
		return nil, retry.Permanent(err)
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, retry.Permanent(fmt.Errorf("decoding search response: %w", err))
	}

	documents := make([]string, 0, len(parsed.Hits.Hits))
	for _, hit := range parsed.Hits.Hits {
		if strings.TrimSpace(hit.Source.Content) == "" {
			continue
		}
		documents = append(documents, hit.Source.Content)
	}
	return documents, nil
}

// buildQuery renders the bool query: a plain match on content plus a
// down-weighted expansion clause.
func buildQuery(query string) ([]byte, error) {
	q := map[string]any{
		"query": map[string]any{
			"bool": map[string]any{
				"should": []any{
					map[string]any{"match": map[string]any{"content": query}},
					map[string]any{"match": map[string]any{"content": map[string]any{
						"query": query,
						"boost": expansionBoost,
					}}},
				},
			},
		},
	}
	return json.Marshal(q)
}
