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
	"fmt"
	"strings"

	"github.com/poiesic/routerag/core"
)

// classifierPromptTemplate receives the numbered list of categories.
const classifierPromptTemplate = `Classify the user's query into exactly one category and return the result as JSON.

Output ONLY valid JSON of the form {"label": <number>}. Do not include any preamble, explanation,
or text outside the object.

Categories:
%s

Rules:
- Pick the category whose description best matches how the query must be answered.
- A query that refers back to earlier conversation ("what about", "and last year?", "that company") needs context.
- A query that asks for facts, figures or documents needs retrieval.
- If the query fits none of the categories, use {"label": 4}.

Example:
Input: "What is the revenue of Google in 2023?"
Output: {"label": 0}

Example:
Input: "What about 2023?"
Output: {"label": 1}

Example:
Input: "tell me a joke"
Output: {"label": 2}`

var categoryDescriptions = map[core.Category]string{
	core.SimpleRetrieval:     "a standalone factual question answered from documents",
	core.ContextualRetrieval: "a follow-up question that depends on the earlier conversation and on documents",
	core.GeneralQuery:        "general conversation or knowledge that needs neither documents nor earlier conversation",
	core.HybridQuery:         "a question that combines earlier conversation with new facts from documents",
}

// buildClassifierPrompt creates the system prompt with the category list embedded.
func buildClassifierPrompt() string {
	lines := make([]string, 0, len(categoryDescriptions))
	for i := 0; ; i++ {
		c := core.CategoryFromIndex(i)
		description, ok := categoryDescriptions[c]
		if !ok {
			break
		}
		lines = append(lines, fmt.Sprintf("%d: %s (%s)", i, c.String(), description))
	}
	return fmt.Sprintf(classifierPromptTemplate, strings.Join(lines, "\n"))
}
