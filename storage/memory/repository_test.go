package memory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/poiesic/routerag/core"
	"github.com/poiesic/routerag/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAppendContext(t *testing.T) {
	repo := NewContextRepository()
	defer repo.Close()
	ctx := context.Background()

	stored, err := repo.AppendContext(ctx, &core.ContextEntry{UserID: "u1", Contents: "Google revenue 2022 was $257B"})
	require.NoError(t, err)

	assert.Equal(t, "u1", stored.UserID)
	assert.Equal(t, core.IDFromContent("Google revenue 2022 was $257B"), stored.Id)
	assert.NotZero(t, stored.Seq)
	assert.False(t, stored.InsertedAt.IsZero())
}

func TestAppendContext_Invalid(t *testing.T) {
	repo := NewContextRepository()
	defer repo.Close()
	ctx := context.Background()

	_, err := repo.AppendContext(ctx, &core.ContextEntry{UserID: "", Contents: "text"})
	assert.ErrorIs(t, err, core.ErrEmptyUserID)

	_, err = repo.AppendContext(ctx, &core.ContextEntry{UserID: "u1", Contents: " "})
	assert.ErrorIs(t, err, core.ErrEmptyContent)

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	assert.Empty(t, users, "failed appends must not create users")
}

func TestGetContexts_InsertionOrder(t *testing.T) {
	repo := NewContextRepository()
	defer repo.Close()
	ctx := context.Background()

	const n = 25
	for i := 0; i < n; i++ {
		_, err := repo.AppendContext(ctx, &core.ContextEntry{UserID: "u1", Contents: fmt.Sprintf("entry %d", i)})
		require.NoError(t, err)
	}
	// Duplicates are kept
	_, err := repo.AppendContext(ctx, &core.ContextEntry{UserID: "u1", Contents: "entry 0"})
	require.NoError(t, err)

	entries, err := repo.GetContexts(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, entries, n+1)
	for i := 0; i < n; i++ {
		assert.Equal(t, fmt.Sprintf("entry %d", i), entries[i].Contents)
	}
	assert.Equal(t, "entry 0", entries[n].Contents)
	for i := 1; i < len(entries); i++ {
		assert.Greater(t, entries[i].Seq, entries[i-1].Seq)
	}

	count, err := repo.CountContexts(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, n+1, count)
}

func TestGetContexts_UnknownUser(t *testing.T) {
	repo := NewContextRepository()
	defer repo.Close()
	ctx := context.Background()

	entries, err := repo.GetContexts(ctx, "nobody")
	require.NoError(t, err)
	assert.Empty(t, entries)

	count, err := repo.CountContexts(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGetRecentContexts(t *testing.T) {
	repo := NewContextRepository()
	defer repo.Close()
	ctx := context.Background()

	for i := 0; i < 5; i++ {
		_, err := repo.AppendContext(ctx, &core.ContextEntry{UserID: "u1", Contents: fmt.Sprintf("entry %d", i)})
		require.NoError(t, err)
	}

	recent, err := repo.GetRecentContexts(ctx, "u1", 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "entry 3", recent[0].Contents)
	assert.Equal(t, "entry 4", recent[1].Contents)

	all, err := repo.GetRecentContexts(ctx, "u1", 10)
	require.NoError(t, err)
	assert.Len(t, all, 5)
}

func TestReturnedEntriesAreCopies(t *testing.T) {
	repo := NewContextRepository()
	defer repo.Close()
	ctx := context.Background()

	_, err := repo.AppendContext(ctx, &core.ContextEntry{UserID: "u1", Contents: "original"})
	require.NoError(t, err)

	entries, err := repo.GetContexts(ctx, "u1")
	require.NoError(t, err)
	entries[0].Contents = "mutated"

	entries, err = repo.GetContexts(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "original", entries[0].Contents)
}

func TestUsersAreIsolated(t *testing.T) {
	repo := NewContextRepository()
	defer repo.Close()
	ctx := context.Background()

	_, err := repo.AppendContext(ctx, &core.ContextEntry{UserID: "bob", Contents: "b"})
	require.NoError(t, err)
	_, err = repo.AppendContext(ctx, &core.ContextEntry{UserID: "alice", Contents: "a"})
	require.NoError(t, err)

	entries, err := repo.GetContexts(ctx, "alice")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "a", entries[0].Contents)

	users, err := repo.ListUsers(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"alice", "bob"}, users)
}

func TestConcurrentAppends(t *testing.T) {
	repo := NewContextRepository()
	defer repo.Close()
	ctx := context.Background()

	const (
		writers   = 8
		perWriter = 50
	)
	users := []string{"u1", "u2"}

	var wg sync.WaitGroup
	for w := 0; w < writers; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < perWriter; i++ {
				user := users[(w+i)%len(users)]
				_, err := repo.AppendContext(ctx, &core.ContextEntry{UserID: user, Contents: fmt.Sprintf("w%d-%d", w, i)})
				assert.NoError(t, err)
				_, err = repo.GetContexts(ctx, user)
				assert.NoError(t, err)
			}
		}(w)
	}
	wg.Wait()

	total := 0
	for _, user := range users {
		entries, err := repo.GetContexts(ctx, user)
		require.NoError(t, err)
		total += len(entries)
		for i := 1; i < len(entries); i++ {
			assert.Greater(t, entries[i].Seq, entries[i-1].Seq)
		}
	}
	assert.Equal(t, writers*perWriter, total, "no appends may be lost")
}

func TestClosedRepository(t *testing.T) {
	repo := NewContextRepository()
	require.NoError(t, repo.Close())
	ctx := context.Background()

	_, err := repo.AppendContext(ctx, &core.ContextEntry{UserID: "u1", Contents: "text"})
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	_, err = repo.GetContexts(ctx, "u1")
	assert.ErrorIs(t, err, storage.ErrStorageClosed)

	_, err = repo.ListUsers(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}

func TestCancelledContext(t *testing.T) {
	repo := NewContextRepository()
	defer repo.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := repo.AppendContext(ctx, &core.ContextEntry{UserID: "u1", Contents: "text"})
	assert.ErrorIs(t, err, context.Canceled)

	count, err := repo.CountContexts(context.Background(), "u1")
	require.NoError(t, err)
	assert.Zero(t, count)
}
