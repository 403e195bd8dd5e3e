package openai

import (
	"context"
	"errors"
	"testing"

	"github.com/poiesic/routerag/ai"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/schema"
)

func TestGenerator_Generate(t *testing.T) {
	model := &fakeModel{responses: []string{"Google's 2023 revenue was $307B."}}
	generator := newGeneratorWithModel(model, 0.4)

	messages := []ai.Message{
		{Role: ai.RoleSystem, Content: "be helpful"},
		{Role: ai.RoleUser, Content: "Query: What about 2023?"},
		{Role: ai.RoleUser, Content: "Context: Google revenue 2022 was $257B"},
	}

	answer, err := generator.Generate(context.Background(), messages)
	require.NoError(t, err)
	assert.Equal(t, "Google's 2023 revenue was $307B.", answer)

	require.Len(t, model.lastMessages, 3)
	assert.Equal(t, schema.ChatMessageTypeSystem, model.lastMessages[0].Role)
	assert.Equal(t, schema.ChatMessageTypeHuman, model.lastMessages[1].Role)
	assert.Equal(t, schema.ChatMessageTypeHuman, model.lastMessages[2].Role)
	for i, m := range messages {
		assert.Equal(t, m.Content, messageText(model.lastMessages[i]))
	}
	assert.InDelta(t, 0.4, model.lastOptions.Temperature, 1e-9)
}

func TestGenerator_Errors(t *testing.T) {
	t.Run("backend error", func(t *testing.T) {
		backendErr := errors.New("rate limited")
		generator := newGeneratorWithModel(&fakeModel{errs: []error{backendErr}}, 0)

		_, err := generator.Generate(context.Background(), []ai.Message{{Role: ai.RoleUser, Content: "q"}})
		assert.ErrorIs(t, err, backendErr)
	})

	t.Run("no choices", func(t *testing.T) {
		generator := newGeneratorWithModel(&fakeModel{noChoices: true}, 0)

		_, err := generator.Generate(context.Background(), []ai.Message{{Role: ai.RoleUser, Content: "q"}})
		assert.ErrorIs(t, err, errNoChoices)
	})
}

func TestNewProvider_InvalidConfig(t *testing.T) {
	cfg := ai.NewConfig(ai.WithGenerationModel(""))
	_, err := NewProvider(cfg)
	assert.ErrorContains(t, err, "GenerationModel")
}

func TestNewProvider(t *testing.T) {
	provider, err := NewProvider(ai.NewConfig())
	require.NoError(t, err)
	defer provider.Close()

	assert.NotNil(t, provider.Embedder())
	assert.NotNil(t, provider.Classifier())
	assert.NotNil(t, provider.Generator())
}
