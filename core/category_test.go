package core

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCategoryFromIndex(t *testing.T) {
	tests := []struct {
		index int
		want  Category
	}{
		{0, SimpleRetrieval},
		{1, ContextualRetrieval},
		{2, GeneralQuery},
		{3, HybridQuery},
		{4, ComplexQuery},
		{-1, ComplexQuery},
		{99, ComplexQuery},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, CategoryFromIndex(tt.index), "index %d", tt.index)
	}
}

func TestCategoryString(t *testing.T) {
	assert.Equal(t, "Simple Information Retrieval", SimpleRetrieval.String())
	assert.Equal(t, "Contextual Information Retrieval", ContextualRetrieval.String())
	assert.Equal(t, "General Query", GeneralQuery.String())
	assert.Equal(t, "Hybrid Query", HybridQuery.String())
	assert.Equal(t, "Complex Query", ComplexQuery.String())

	// Out-of-range values never render as something outside the enumeration
	assert.Equal(t, "Complex Query", Category(42).String())
	assert.Equal(t, "ComplexQuery", Category(-3).Name())
	assert.False(t, Category(42).Valid())
}

func TestParseCategory(t *testing.T) {
	t.Run("labels and names round trip", func(t *testing.T) {
		for _, c := range Categories {
			parsed, err := ParseCategory(c.String())
			require.NoError(t, err)
			assert.Equal(t, c, parsed)

			parsed, err = ParseCategory(c.Name())
			require.NoError(t, err)
			assert.Equal(t, c, parsed)
		}
	})

	t.Run("case and whitespace insensitive", func(t *testing.T) {
		parsed, err := ParseCategory("  hybrid query ")
		require.NoError(t, err)
		assert.Equal(t, HybridQuery, parsed)
	})

	t.Run("unknown label", func(t *testing.T) {
		parsed, err := ParseCategory("weather report")
		assert.True(t, errors.Is(err, ErrUnknownCategory))
		assert.Equal(t, ComplexQuery, parsed)
	})
}

func TestRouteFor(t *testing.T) {
	tests := []struct {
		category Category
		want     Route
	}{
		{SimpleRetrieval, Route{Context: false, Documents: true}},
		{ContextualRetrieval, Route{Context: true, Documents: true}},
		{GeneralQuery, Route{Context: false, Documents: false}},
		{HybridQuery, Route{Context: true, Documents: true}},
		{ComplexQuery, Route{Context: false, Documents: false}},
	}

	for _, tt := range tests {
		t.Run(tt.category.Name(), func(t *testing.T) {
			assert.Equal(t, tt.want, RouteFor(tt.category))
		})
	}

	t.Run("every category has a route", func(t *testing.T) {
		assert.Len(t, Categories, len(tests))
	})

	t.Run("unrecognized category falls back to no inputs", func(t *testing.T) {
		assert.Equal(t, Route{}, RouteFor(Category(17)))
		assert.Equal(t, Route{}, RouteFor(Category(-1)))
	})
}
