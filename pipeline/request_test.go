package pipeline

import (
	"errors"
	"testing"

	"github.com/poiesic/routerag/ai"
	"github.com/poiesic/routerag/core"
	"github.com/stretchr/testify/assert"
)

func TestRequestMessages(t *testing.T) {
	tests := []struct {
		name    string
		request Request
		want    []ai.Message
	}{
		{
			name:    "query only",
			request: Request{Query: "tell me a joke"},
			want: []ai.Message{
				{Role: ai.RoleSystem, Content: DefaultSystemPrompt},
				{Role: ai.RoleUser, Content: "Query: tell me a joke"},
			},
		},
		{
			name:    "context and documents",
			request: Request{Query: "What about 2023?", Context: "Google revenue 2022 was $257B", HasContext: true, Documents: []string{"doc B", "doc A"}},
			want: []ai.Message{
				{Role: ai.RoleSystem, Content: DefaultSystemPrompt},
				{Role: ai.RoleUser, Content: "Query: What about 2023?"},
				{Role: ai.RoleUser, Content: "Context: Google revenue 2022 was $257B"},
				{Role: ai.RoleUser, Content: "Relevant Documents:\n1. doc B\n2. doc A"},
			},
		},
		{
			name:    "custom system prompt, documents only",
			request: Request{System: "Be brief.", Query: "q", Documents: []string{"only"}},
			want: []ai.Message{
				{Role: ai.RoleSystem, Content: "Be brief."},
				{Role: ai.RoleUser, Content: "Query: q"},
				{Role: ai.RoleUser, Content: "Relevant Documents:\n1. only"},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.request.Messages())
		})
	}
}

func TestResult_PartialInputError(t *testing.T) {
	complete := &Result{}
	assert.False(t, complete.Degraded())
	assert.NoError(t, complete.PartialInputError())

	cause := errors.New("index down")
	degraded := &Result{Degradations: []Degradation{{Input: InputDocuments, Err: cause}}}
	err := degraded.PartialInputError()
	assert.ErrorIs(t, err, core.ErrPartialInputUnavailable)
	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "documents skipped: index down")
}

func TestInputString(t *testing.T) {
	assert.Equal(t, "context", InputContext.String())
	assert.Equal(t, "documents", InputDocuments.String())
	assert.Equal(t, "Input(7)", Input(7).String())
}
