package openai

import (
	"context"

	"github.com/tmc/langchaingo/llms"
)

// fakeModel is a scripted llms.Model. Each call consumes the next response or error.
type fakeModel struct {
	responses []string
	errs      []error
	noChoices bool

	calls        int
	lastMessages []llms.MessageContent
	lastOptions  llms.CallOptions
}

var _ llms.Model = (*fakeModel)(nil)

func (f *fakeModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	i := f.calls
	f.calls++
	f.lastMessages = messages
	f.lastOptions = llms.CallOptions{}
	for _, opt := range options {
		opt(&f.lastOptions)
	}

	if i < len(f.errs) && f.errs[i] != nil {
		return nil, f.errs[i]
	}
	if f.noChoices || len(f.responses) == 0 {
		return &llms.ContentResponse{}, nil
	}
	if i >= len(f.responses) {
		i = len(f.responses) - 1
	}
	return &llms.ContentResponse{
		Choices: []*llms.ContentChoice{{Content: f.responses[i]}},
	}, nil
}

func (f *fakeModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

func messageText(m llms.MessageContent) string {
	var text string
	for _, part := range m.Parts {
		if tc, ok := part.(llms.TextContent); ok {
			text += tc.Text
		}
	}
	return text
}
