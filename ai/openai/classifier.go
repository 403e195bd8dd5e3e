// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/poiesic/routerag/ai"
	"github.com/poiesic/routerag/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
	"github.com/tmc/langchaingo/schema"
)

const classifyAttempts = 3

// Classifier implements ai.Classifier using an OpenAI-compatible chat model.
// The model is asked for a label index which is mapped onto core.Category.
type Classifier struct {
	client llms.Model
	logger *slog.Logger
}

// labelResponse is the JSON document the model is asked to produce.
type labelResponse struct {
	Label *int `json:"label"`
}

// newClassifier is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newClassifier(config *ai.Config) (*Classifier, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.ClassifierHost),
		openai.WithToken(config.APIToken),
		openai.WithModel(config.ClassifierModel),
	)
	if err != nil {
		return nil, err
	}

	return newClassifierWithModel(client), nil
}

func newClassifierWithModel(client llms.Model) *Classifier {
	return &Classifier{
		client: client,
		logger: slog.Default().With("component", "openai-classifier"),
	}
}

// NewClassifier creates a new query classifier using the provided configuration.
//
// Returns ai.Classifier interface to enforce abstraction.
func NewClassifier(config *ai.Config) (ai.Classifier, error) {
	return newClassifier(config)
}

// Classify labels a query. Blank queries are GeneralQuery without consulting the model.
// Labels outside the known range resolve to core.ComplexQuery.
func (c *Classifier) Classify(ctx context.Context, query string) (core.Category, error) {
	query = normalizeQuery(query)
	if query == "" {
		c.logger.Debug("blank query, using default category")
		return core.GeneralQuery, nil
	}

	content := []llms.MessageContent{
		llms.TextParts(schema.ChatMessageTypeSystem, buildClassifierPrompt()),
		llms.TextParts(schema.ChatMessageTypeHuman, query),
	}

	// Malformed JSON is retried; transport errors are not
	var lastErr error
	for attempt := 1; attempt <= classifyAttempts; attempt++ {
		response, err := c.client.GenerateContent(ctx, content, llms.WithTemperature(0.0), llms.WithJSONMode())
		if err != nil {
			c.logger.Error("failed to generate content", "attempt", attempt, "err", err)
			return core.ComplexQuery, err
		}
		if len(response.Choices) < 1 {
			c.logger.Error("no choices returned from model")
			return core.ComplexQuery, errNoChoices
		}

		label, err := parseLabel(response.Choices[0].Content)
		if err != nil {
			lastErr = err
			c.logger.Warn("error parsing classifier response",
				"attempt", attempt,
				"response", response.Choices[0].Content,
				"err", err)
			continue
		}

		category := core.CategoryFromIndex(label)
		c.logger.Debug("classified query", "label", label, "category", category.Name())
		return category, nil
	}

	c.logger.Error("failed to parse classifier response after retries", "err", lastErr)
	return core.ComplexQuery, lastErr
}

// parseLabel extracts the label index from a model response.
func parseLabel(raw string) (int, error) {
	text := repairJSON(stripCodeFence(raw))

	var result labelResponse
	if err := json.Unmarshal([]byte(text), &result); err != nil {
		return 0, err
	}
	if result.Label == nil {
		return 0, fmt.Errorf("response has no label: %q", text)
	}
	return *result.Label, nil
}
