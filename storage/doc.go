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

// Package storage provides the storage abstraction layer for routerag.
//
// This package defines the ContextRepository interface that decouples the
// per-user context log from its storage. Two implementations exist:
//
//   - storage/memory: process-local log, the default. Contents are lost on exit.
//   - storage/badger: durable log backed by BadgerDB.
//
// # Constructor Return Type Pattern
//
// Public constructors return the storage.ContextRepository interface:
//
//	repo, err := badger.NewContextRepository(backend)  // returns storage.ContextRepository
//
// # Ordering
//
// Every appended entry receives a store-wide, strictly increasing Seq.
// A user's entries are always returned in ascending Seq (insertion) order.
//
// # Encoding
//
// Durable backends encode entries with MarshalContextEntry, a versioned
// mus-go layout. Embedding vectors are never stored.
//
// # Thread Safety
//
// All repository implementations are thread-safe and support
// concurrent access from multiple goroutines.
package storage
