package retrieval

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStatic_PreservesOrder(t *testing.T) {
	gw := NewStatic("doc A", "doc B", "doc C")

	docs, err := gw.Search(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, []string{"doc A", "doc B", "doc C"}, docs)

	// Callers may not mutate the gateway's documents
	docs[0] = "changed"
	again, err := gw.Search(context.Background(), "anything")
	require.NoError(t, err)
	assert.Equal(t, "doc A", again[0])
}

func TestStatic_Empty(t *testing.T) {
	docs, err := NewStatic().Search(context.Background(), "q")
	require.NoError(t, err)
	assert.NotNil(t, docs)
	assert.Empty(t, docs)
}

func TestStatic_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewStatic("doc").Search(ctx, "q")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestFunc(t *testing.T) {
	boom := errors.New("boom")
	var gw Gateway = Func(func(_ context.Context, query string) ([]string, error) {
		if query == "fail" {
			return nil, boom
		}
		return []string{query}, nil
	})

	docs, err := gw.Search(context.Background(), "hello")
	require.NoError(t, err)
	assert.Equal(t, []string{"hello"}, docs)

	_, err = gw.Search(context.Background(), "fail")
	assert.ErrorIs(t, err, boom)
}
