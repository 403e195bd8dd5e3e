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

package memory

import (
	"context"
	"slices"
	"sync"
	"time"

	"github.com/poiesic/routerag/core"
	"github.com/poiesic/routerag/storage"
)

// userLog is one user's append-only list of entries, guarded by its own lock.
type userLog struct {
	mu      sync.RWMutex
	entries []core.ContextEntry
}

// ContextRepository implements storage.ContextRepository in process memory.
// Appends for one user are serialized by that user's lock; different users
// never contend beyond the brief map lookup.
type ContextRepository struct {
	mu     sync.RWMutex
	logs   map[string]*userLog
	seq    uint64
	seqMu  sync.Mutex
	closed bool
}

var _ storage.ContextRepository = (*ContextRepository)(nil)

// NewContextRepository creates an empty in-memory repository.
//
// Returns storage.ContextRepository interface to enforce abstraction.
func NewContextRepository() storage.ContextRepository {
	return newContextRepository()
}

func newContextRepository() *ContextRepository {
	return &ContextRepository{
		logs: make(map[string]*userLog),
	}
}

// Close marks the repository closed. Subsequent calls fail with storage.ErrStorageClosed.
func (r *ContextRepository) Close() error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.closed = true
	return nil
}

// AppendContext appends an entry to its user's log.
func (r *ContextRepository) AppendContext(ctx context.Context, entry *core.ContextEntry) (*core.ContextEntry, error) {
	if err := core.ValidateContextEntry(entry); err != nil {
		return nil, err
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log, err := r.logFor(entry.UserID, true)
	if err != nil {
		return nil, err
	}

	log.mu.Lock()
	defer log.mu.Unlock()

	stored := core.ContextEntry{
		Id:         core.IDFromContent(entry.Contents),
		UserID:     entry.UserID,
		Contents:   entry.Contents,
		Seq:        r.nextSeq(),
		InsertedAt: time.Now().UTC(),
	}
	log.entries = append(log.entries, stored)

	return &stored, nil
}

// GetContexts returns every entry for a user in insertion order.
func (r *ContextRepository) GetContexts(ctx context.Context, userID string) ([]*core.ContextEntry, error) {
	return r.GetRecentContexts(ctx, userID, 0)
}

// GetRecentContexts returns up to limit of the most recent entries, oldest first.
func (r *ContextRepository) GetRecentContexts(ctx context.Context, userID string, limit int) ([]*core.ContextEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	log, err := r.logFor(userID, false)
	if err != nil {
		return nil, err
	}
	if log == nil {
		return []*core.ContextEntry{}, nil
	}

	log.mu.RLock()
	defer log.mu.RUnlock()

	entries := log.entries
	if limit > 0 && len(entries) > limit {
		entries = entries[len(entries)-limit:]
	}

	result := make([]*core.ContextEntry, len(entries))
	for i := range entries {
		entry := entries[i]
		result[i] = &entry
	}
	return result, nil
}

// CountContexts returns the number of entries stored for a user.
func (r *ContextRepository) CountContexts(ctx context.Context, userID string) (int, error) {
	log, err := r.logFor(userID, false)
	if err != nil || log == nil {
		return 0, err
	}

	log.mu.RLock()
	defer log.mu.RUnlock()
	return len(log.entries), nil
}

// ListUsers returns the identifiers of all users with entries, sorted.
func (r *ContextRepository) ListUsers(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.closed {
		return nil, storage.ErrStorageClosed
	}

	users := make([]string, 0, len(r.logs))
	for userID := range r.logs {
		users = append(users, userID)
	}
	slices.Sort(users)
	return users, nil
}

// logFor returns the user's log, creating it when create is set.
// Returns nil without error for unknown users when create is false.
func (r *ContextRepository) logFor(userID string, create bool) (*userLog, error) {
	r.mu.RLock()
	log, ok := r.logs[userID]
	closed := r.closed
	r.mu.RUnlock()

	if closed {
		return nil, storage.ErrStorageClosed
	}
	if ok || !create {
		return log, nil
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if r.closed {
		return nil, storage.ErrStorageClosed
	}
	if log, ok = r.logs[userID]; !ok {
		log = &userLog{}
		r.logs[userID] = log
	}
	return log, nil
}

func (r *ContextRepository) nextSeq() uint64 {
	r.seqMu.Lock()
	defer r.seqMu.Unlock()
	r.seq++
	return r.seq
}
