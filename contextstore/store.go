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

package contextstore

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"time"

	"github.com/patrickmn/go-cache"
	"github.com/poiesic/routerag/ai"
	"github.com/poiesic/routerag/core"
	"github.com/poiesic/routerag/storage"
)

// Match is the entry selected for a query together with its similarity score.
type Match struct {
	Entry *core.ContextEntry
	Score float64
}

// Store appends context per user and finds the entry closest to a query.
// Safe for concurrent use; ordering guarantees come from the repository.
type Store struct {
	repo     storage.ContextRepository
	embedder ai.Embedder
	cache    *cache.Cache
	cacheTTL time.Duration
	model    string
	window   int
	logger   *slog.Logger
}

// New creates a Store over repo, embedding text with embedder.
func New(repo storage.ContextRepository, embedder ai.Embedder, opts ...Option) (*Store, error) {
	if repo == nil {
		return nil, errors.New("repository cannot be nil")
	}
	if embedder == nil {
		return nil, errors.New("embedder cannot be nil")
	}

	s := &Store{
		repo:     repo,
		embedder: embedder,
		cacheTTL: DefaultCacheTTL,
		logger:   slog.Default().With("component", "context-store"),
	}
	for _, opt := range opts {
		if err := opt(s); err != nil {
			return nil, err
		}
	}

	if s.cacheTTL > 0 {
		s.cache = cache.New(s.cacheTTL, 2*s.cacheTTL)
	}
	return s, nil
}

// Append records text as a new context entry for the user.
// Not idempotent: appending the same text twice stores two entries.
func (s *Store) Append(ctx context.Context, userID, text string) (*core.ContextEntry, error) {
	return s.repo.AppendContext(ctx, &core.ContextEntry{UserID: userID, Contents: text})
}

// EmbeddingModel returns the model name that scopes cached embeddings.
func (s *Store) EmbeddingModel() string {
	return s.model
}

// History returns every entry of the user in insertion order.
func (s *Store) History(ctx context.Context, userID string) ([]*core.ContextEntry, error) {
	if err := core.ValidateUserID(userID); err != nil {
		return nil, err
	}
	return s.repo.GetContexts(ctx, userID)
}

// BestMatch returns the contents of the user's entry most similar to query.
// ok is false when the user has no entries.
func (s *Store) BestMatch(ctx context.Context, userID, query string) (text string, ok bool, err error) {
	match, err := s.Best(ctx, userID, query)
	if err != nil || match == nil {
		return "", false, err
	}
	return match.Entry.Contents, true, nil
}

// Best returns the user's entry most similar to query with its score, or nil
// when the user has no entries. Embedding failures wrap core.ErrEmbeddingUnavailable;
// cancellation is returned as the context error.
func (s *Store) Best(ctx context.Context, userID, query string) (*Match, error) {
	if err := core.ValidateUserID(userID); err != nil {
		return nil, err
	}

	entries, err := s.repo.GetRecentContexts(ctx, userID, s.window)
	if err != nil {
		return nil, err
	}
	if len(entries) == 0 {
		return nil, nil
	}

	texts := make([]string, 0, len(entries)+1)
	texts = append(texts, query)
	for _, entry := range entries {
		texts = append(texts, entry.Contents)
	}

	vectors, err := s.embed(ctx, texts)
	if err != nil {
		return nil, err
	}

	queryVec := vectors[0]
	best := -1
	bestScore := math.Inf(-1)
	for i, entry := range entries {
		score, err := cosineSimilarity(queryVec, vectors[i+1])
		if err != nil {
			return nil, s.embeddingError(ctx, fmt.Errorf("entry %d: %w", entry.Seq, err))
		}
		// Strict comparison keeps the earliest entry on ties.
		if best < 0 || score > bestScore {
			best = i
			bestScore = score
		}
	}

	s.logger.Debug("context match", "user", userID, "candidates", len(entries), "seq", entries[best].Seq, "score", bestScore)
	return &Match{Entry: entries[best], Score: bestScore}, nil
}

// embed returns one vector per text, embedding only texts missing from the cache.
func (s *Store) embed(ctx context.Context, texts []string) ([][]float32, error) {
	vectors := make([][]float32, len(texts))
	missing := make(map[string][]int)
	var pending []string

	for i, text := range texts {
		if v, ok := s.cached(text); ok {
			vectors[i] = v
			continue
		}
		if _, seen := missing[text]; !seen {
			pending = append(pending, text)
		}
		missing[text] = append(missing[text], i)
	}

	if len(pending) > 0 {
		embedded, err := s.embedder.EmbedTexts(ctx, pending)
		if err != nil {
			return nil, s.embeddingError(ctx, err)
		}
		if len(embedded) != len(pending) {
			return nil, s.embeddingError(ctx, fmt.Errorf("expected %d embeddings, got %d", len(pending), len(embedded)))
		}
		for j, text := range pending {
			s.store(text, embedded[j])
			for _, i := range missing[text] {
				vectors[i] = embedded[j]
			}
		}
	}
	return vectors, nil
}

func (s *Store) embeddingError(ctx context.Context, err error) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}
	return fmt.Errorf("%w: %w", core.ErrEmbeddingUnavailable, err)
}

func (s *Store) cacheKey(text string) string {
	return s.model + ":" + strconv.FormatUint(uint64(core.IDFromContent(text)), 16)
}

func (s *Store) cached(text string) ([]float32, bool) {
	if s.cache == nil {
		return nil, false
	}
	v, ok := s.cache.Get(s.cacheKey(text))
	if !ok {
		return nil, false
	}
	return v.([]float32), true
}

func (s *Store) store(text string, vector []float32) {
	if s.cache == nil {
		return
	}
	s.cache.Set(s.cacheKey(text), vector, cache.DefaultExpiration)
}
