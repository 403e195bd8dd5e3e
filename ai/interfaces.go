package ai

import (
	"context"

	"github.com/poiesic/routerag/core"
)

// Embedder generates vector embeddings from text for semantic similarity.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Classifier assigns a query to one of the closed set of query categories.
// Implementations must be thread-safe for concurrent use.
type Classifier interface {
	// Classify labels the query. The returned category is always one of
	// core.Categories; blank queries resolve to a stable default without error.
	// Returns an error only if the classification backend could not be consulted.
	Classify(ctx context.Context, query string) (core.Category, error)
}

// Role tags a message in a generation request.
type Role string

const (
	// RoleSystem carries the instructions for the model.
	RoleSystem Role = "system"
	// RoleUser carries the query and its supporting material.
	RoleUser Role = "user"
)

// Message is a single role-tagged entry of a generation request.
type Message struct {
	Role    Role
	Content string
}

// Generator produces the final answer from an assembled list of messages.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// Generate returns the answer text for the messages, which are sent in order.
	// Returns an error if the backend fails or returns no answer.
	Generate(ctx context.Context, messages []Message) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
type AIProvider interface {
	// Embedder returns the text embedding service.
	Embedder() Embedder

	// Classifier returns the query classification service.
	Classifier() Classifier

	// Generator returns the answer generation service.
	Generator() Generator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
