package core

import (
	"fmt"
	"strings"
)

// Category is the closed set of query categories produced by a classifier.
type Category int

const (
	// SimpleRetrieval queries are answered from retrieved documents alone.
	SimpleRetrieval Category = iota
	// ContextualRetrieval queries need prior context and documents.
	ContextualRetrieval
	// GeneralQuery queries are answered by the model without auxiliary input.
	GeneralQuery
	// HybridQuery queries need prior context and documents.
	HybridQuery
	// ComplexQuery is the fallback for anything the classifier cannot place.
	ComplexQuery
)

// Categories lists every category in index order.
var Categories = []Category{
	SimpleRetrieval,
	ContextualRetrieval,
	GeneralQuery,
	HybridQuery,
	ComplexQuery,
}

var categoryLabels = map[Category]string{
	SimpleRetrieval:     "Simple Information Retrieval",
	ContextualRetrieval: "Contextual Information Retrieval",
	GeneralQuery:        "General Query",
	HybridQuery:         "Hybrid Query",
	ComplexQuery:        "Complex Query",
}

var categoryNames = map[Category]string{
	SimpleRetrieval:     "SimpleRetrieval",
	ContextualRetrieval: "ContextualRetrieval",
	GeneralQuery:        "GeneralQuery",
	HybridQuery:         "HybridQuery",
	ComplexQuery:        "ComplexQuery",
}

// CategoryFromIndex maps a classifier backend label index to a Category.
// Indices 0-3 map to the four concrete categories; anything else is ComplexQuery.
func CategoryFromIndex(index int) Category {
	switch index {
	case 0:
		return SimpleRetrieval
	case 1:
		return ContextualRetrieval
	case 2:
		return GeneralQuery
	case 3:
		return HybridQuery
	default:
		return ComplexQuery
	}
}

// String returns the human readable label for the category.
// Out-of-range values render as the ComplexQuery label.
func (c Category) String() string {
	if label, ok := categoryLabels[c]; ok {
		return label
	}
	return categoryLabels[ComplexQuery]
}

// Name returns the identifier-style name of the category, e.g. "HybridQuery".
func (c Category) Name() string {
	if name, ok := categoryNames[c]; ok {
		return name
	}
	return categoryNames[ComplexQuery]
}

// Valid reports whether c is one of the enumerated categories.
func (c Category) Valid() bool {
	_, ok := categoryLabels[c]
	return ok
}

// ParseCategory parses either the human readable label or the identifier-style name,
// ignoring case and surrounding whitespace.
func ParseCategory(s string) (Category, error) {
	s = strings.TrimSpace(s)
	for _, c := range Categories {
		if strings.EqualFold(s, categoryLabels[c]) || strings.EqualFold(s, categoryNames[c]) {
			return c, nil
		}
	}
	return ComplexQuery, fmt.Errorf("%w: %q", ErrUnknownCategory, s)
}
