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

// Package retrieval defines the document retrieval contract used by the
// pipeline and a fixed-list implementation for tests and offline runs.
// The Elasticsearch adapter lives in retrieval/elastic.
package retrieval

import (
	"context"
	"slices"
)

// Gateway fetches documents relevant to a query from a search index.
// Implementations must be thread-safe for concurrent use.
type Gateway interface {
	// Search returns document texts in relevance order, most relevant first.
	// Returns an empty slice (not an error) when nothing matches.
	Search(ctx context.Context, query string) ([]string, error)
}

// Func adapts an ordinary function to the Gateway interface.
type Func func(ctx context.Context, query string) ([]string, error)

// Search calls f(ctx, query).
func (f Func) Search(ctx context.Context, query string) ([]string, error) {
	return f(ctx, query)
}

// Static is a Gateway that answers every query with the same documents.
type Static struct {
	documents []string
}

var _ Gateway = (*Static)(nil)

// NewStatic creates a gateway returning documents, in order, for every query.
func NewStatic(documents ...string) *Static {
	return &Static{documents: slices.Clone(documents)}
}

// Search returns a copy of the configured documents.
func (s *Static) Search(ctx context.Context, query string) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(s.documents) == 0 {
		return []string{}, nil
	}
	return slices.Clone(s.documents), nil
}
