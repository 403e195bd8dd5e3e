package openai

import "errors"

var (
	// errNoChoices is returned when a chat model answers without any choices.
	errNoChoices = errors.New("model returned no choices")

	// errEmbeddingCount is returned when a batch embedding call returns a different number of vectors than inputs.
	errEmbeddingCount = errors.New("embedding count does not match input count")
)
