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

package badger

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/poiesic/routerag/core"
	"github.com/poiesic/routerag/retry"
	"github.com/poiesic/routerag/storage"
)

const (
	conflictAttempts = 5
	conflictDelay    = 5 * time.Millisecond
)

// ContextRepository implements storage.ContextRepository for BadgerDB.
// Entry keys embed the global sequence number, so a prefix scan yields a
// user's entries in insertion order.
type ContextRepository struct {
	backend *Backend
	seq     *badger.Sequence
	closed  atomic.Bool
}

var _ storage.ContextRepository = (*ContextRepository)(nil)

// NewContextRepository creates a new ContextRepository.
func NewContextRepository(backend *Backend) (*ContextRepository, error) {
	seq, err := backend.GetSequence(contextEntrySeq)
	if err != nil {
		return nil, err
	}

	return &ContextRepository{
		backend: backend,
		seq:     seq,
	}, nil
}

// Close releases the sequence. The backend stays open.
func (r *ContextRepository) Close() error {
	if r.closed.Swap(true) {
		return nil
	}
	return r.seq.Release()
}

func (r *ContextRepository) checkOpen(ctx context.Context) error {
	if r.closed.Load() || r.backend.IsClosed() {
		return storage.ErrStorageClosed
	}
	return ctx.Err()
}

// AppendContext appends an entry to its user's log.
func (r *ContextRepository) AppendContext(ctx context.Context, entry *core.ContextEntry) (*core.ContextEntry, error) {
	if err := core.ValidateContextEntry(entry); err != nil {
		return nil, err
	}
	if err := r.checkOpen(ctx); err != nil {
		return nil, err
	}

	seq, err := r.nextSeq()
	if err != nil {
		return nil, err
	}

	stored := &core.ContextEntry{
		Id:         core.IDFromContent(entry.Contents),
		UserID:     entry.UserID,
		Contents:   entry.Contents,
		Seq:        seq,
		InsertedAt: time.Now().UTC(),
	}

	value := storage.MarshalContextEntry(stored)
	err = retry.WithBackoff(ctx, func() error {
		err := r.backend.WithTx(func(tx *badger.Txn) error {
			if err := tx.Set(makeContextEntryKey(stored.UserID, stored.Seq), value); err != nil {
				return err
			}
			if err := tx.Set(makeUserKey(stored.UserID), nil); err != nil {
				return err
			}
			return tx.Commit()
		}, true)
		if err != nil && !errors.Is(err, badger.ErrConflict) {
			return retry.Permanent(err)
		}
		return err
	}, conflictAttempts, conflictDelay)
	if err != nil {
		return nil, err
	}
	return stored, nil
}

// GetContexts returns every entry for a user in insertion order.
func (r *ContextRepository) GetContexts(ctx context.Context, userID string) ([]*core.ContextEntry, error) {
	return r.GetRecentContexts(ctx, userID, 0)
}

// GetRecentContexts returns up to limit of the most recent entries, oldest first.
func (r *ContextRepository) GetRecentContexts(ctx context.Context, userID string, limit int) ([]*core.ContextEntry, error) {
	if err := r.checkOpen(ctx); err != nil {
		return nil, err
	}

	// Recent windows are read newest first and flipped afterwards.
	reverse := limit > 0
	entries := []*core.ContextEntry{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return scanPrefix(tx, makeUserEntriesPrefix(userID), reverse, limit, func(_, val []byte) error {
			entry, err := storage.UnmarshalContextEntry(val)
			if err != nil {
				return err
			}
			entries = append(entries, entry)
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}

	if reverse {
		for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
			entries[i], entries[j] = entries[j], entries[i]
		}
	}
	return entries, nil
}

// CountContexts returns the number of entries stored for a user.
func (r *ContextRepository) CountContexts(ctx context.Context, userID string) (int, error) {
	if err := r.checkOpen(ctx); err != nil {
		return 0, err
	}

	count := 0
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.PrefetchValues = false
		prefix := makeUserEntriesPrefix(userID)
		opts.Prefix = prefix
		iter := tx.NewIterator(opts)
		defer iter.Close()
		for iter.Seek(prefix); iter.ValidForPrefix(prefix); iter.Next() {
			count++
		}
		return nil
	}, false)
	return count, err
}

// ListUsers returns the identifiers of all users with entries, sorted.
func (r *ContextRepository) ListUsers(ctx context.Context) ([]string, error) {
	if err := r.checkOpen(ctx); err != nil {
		return nil, err
	}

	users := []string{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		return scanPrefix(tx, []byte(contextUserPrefix+":"), false, 0, func(key, _ []byte) error {
			userID, err := userFromKey(key)
			if err != nil {
				return err
			}
			users = append(users, userID)
			return nil
		})
	}, false)
	if err != nil {
		return nil, err
	}
	// Hex encoding preserves byte order, so users arrive sorted.
	return users, nil
}

func (r *ContextRepository) nextSeq() (uint64, error) {
	next, err := r.seq.Next()
	if err != nil {
		return 0, err
	}
	// BadgerDB sequences can return 0 on first call, so we skip it
	if next == 0 {
		return r.seq.Next()
	}
	return next, nil
}
