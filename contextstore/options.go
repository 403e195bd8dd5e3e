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
	"errors"
	"log/slog"
	"time"
)

// DefaultCacheTTL is how long an embedding stays cached when no TTL is configured.
const DefaultCacheTTL = 30 * time.Minute

// Option configures a Store.
type Option func(*Store) error

// WithWindow limits candidates to the user's k most recent entries.
// k == 0 considers every entry.
func WithWindow(k int) Option {
	return func(s *Store) error {
		if k < 0 {
			return errors.New("window must not be negative")
		}
		s.window = k
		return nil
	}
}

// WithCacheTTL sets how long embeddings stay cached. A non-positive ttl disables the cache.
func WithCacheTTL(ttl time.Duration) Option {
	return func(s *Store) error {
		s.cacheTTL = ttl
		return nil
	}
}

// WithEmbeddingModel names the embedding model. The name scopes cache keys so
// vectors from different models never mix.
func WithEmbeddingModel(model string) Option {
	return func(s *Store) error {
		s.model = model
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Store) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		s.logger = logger
		return nil
	}
}
