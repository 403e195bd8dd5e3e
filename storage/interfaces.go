package storage

import (
	"context"

	"github.com/poiesic/routerag/core"
)

// ContextRepository stores the append-only context log of every user.
// Implementations must be thread-safe: concurrent appends for the same user
// never lose entries, and reads observe a consistent snapshot.
type ContextRepository interface {
	// AppendContext validates and appends an entry to its user's log.
	// Assigns Id (content hash), Seq (insertion order) and InsertedAt.
	// Returns the stored entry.
	AppendContext(ctx context.Context, entry *core.ContextEntry) (*core.ContextEntry, error)

	// GetContexts returns every entry for a user in insertion order.
	// Returns an empty slice (not an error) for unknown users.
	GetContexts(ctx context.Context, userID string) ([]*core.ContextEntry, error)

	// GetRecentContexts returns up to limit of the user's most recent entries,
	// still in insertion order (oldest first). limit <= 0 means all entries.
	GetRecentContexts(ctx context.Context, userID string, limit int) ([]*core.ContextEntry, error)

	// CountContexts returns the number of entries stored for a user.
	CountContexts(ctx context.Context, userID string) (int, error)

	// ListUsers returns the identifiers of all users with at least one entry, sorted.
	ListUsers(ctx context.Context) ([]string, error)

	// Close releases resources held by the repository.
	Close() error
}
