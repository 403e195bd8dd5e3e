// Package mock provides test double implementations of AI service interfaces.
//
// This package contains mock implementations of ai.Embedder, ai.Classifier,
// ai.Generator and ai.AIProvider for use in unit tests. The mocks let tests run
// without external AI services and make behavior controllable and deterministic.
//
// # Usage in Tests
//
//	// Always classify as a hybrid query
//	classifier := mock.NewFixedClassifier(core.HybridQuery)
//
//	// Fail generation
//	generator := mock.NewMockGenerator()
//	generator.GenerateFunc = func(ctx context.Context, messages []ai.Message) (string, error) {
//	    return "", errors.New("backend down")
//	}
//
//	// Inspect what was sent
//	messages := generator.LastRequest()
//
// # Default Behavior
//
//   - MockEmbedder: Returns unit-length bag-of-words vectors, so texts sharing words are similar
//   - MockClassifier: Returns its Category field (GeneralQuery unless set)
//   - MockGenerator: Answers "answer to <query>"
//   - MockProvider: Aggregates the three mocks
//
// All mocks are safe for concurrent use.
package mock
