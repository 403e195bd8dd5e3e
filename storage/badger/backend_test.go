package badger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dgraph-io/badger/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenBackend_InMemory(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	assert.False(t, backend.IsClosed())
	require.NoError(t, backend.Close())
	assert.True(t, backend.IsClosed())
}

func TestOpenBackend_CreatesDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "db")
	backend, err := OpenBackend(dir, false)
	require.NoError(t, err)
	defer backend.Close()

	info, err := os.Stat(dir)
	require.NoError(t, err)
	assert.True(t, info.IsDir())
}

func TestOpenBackend_PathIsFile(t *testing.T) {
	file := filepath.Join(t.TempDir(), "plain")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	_, err := OpenBackend(file, false)
	assert.Error(t, err)
}

func TestScanPrefix(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	err = backend.WithTx(func(tx *badger.Txn) error {
		for _, k := range []string{"a:1", "a:2", "a:3", "b:1"} {
			if err := tx.Set([]byte(k), []byte(k)); err != nil {
				return err
			}
		}
		return tx.Commit()
	}, true)
	require.NoError(t, err)

	collect := func(reverse bool, limit int) []string {
		var got []string
		err := backend.WithTx(func(tx *badger.Txn) error {
			return scanPrefix(tx, []byte("a:"), reverse, limit, func(key, val []byte) error {
				assert.Equal(t, key, val)
				got = append(got, string(val))
				return nil
			})
		}, false)
		require.NoError(t, err)
		return got
	}

	assert.Equal(t, []string{"a:1", "a:2", "a:3"}, collect(false, 0))
	assert.Equal(t, []string{"a:1", "a:2"}, collect(false, 2))
	assert.Equal(t, []string{"a:3", "a:2", "a:1"}, collect(true, 0))
	assert.Equal(t, []string{"a:3"}, collect(true, 1))
}

func TestKeys(t *testing.T) {
	key := makeUserKey("alice")
	userID, err := userFromKey(key)
	require.NoError(t, err)
	assert.Equal(t, "alice", userID)

	a := makeContextEntryKey("u1", 1)
	b := makeContextEntryKey("u1", 256)
	assert.Less(t, string(a), string(b))
	assert.True(t, len(a) > len(makeUserEntriesPrefix("u1")))
}
