package pipeline

import "errors"

var (
	ErrClassifierRequired   = errors.New("classifier is required")
	ErrContextStoreRequired = errors.New("context store is required")
	ErrRetrieverRequired    = errors.New("retrieval gateway is required")
	ErrGeneratorRequired    = errors.New("generator is required")
)
