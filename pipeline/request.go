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

package pipeline

import (
	"fmt"
	"strings"

	"github.com/poiesic/routerag/ai"
)

// DefaultSystemPrompt instructs the model how to use the supplied material.
const DefaultSystemPrompt = "You are a helpful assistant capable of generating detailed and accurate responses based on the context and retrieved documents."

// Request is the input assembled for one generation call.
type Request struct {
	System     string   // System prompt; DefaultSystemPrompt when empty
	Query      string   // The user's query, always present
	Context    string   // Best matching prior context, valid when HasContext
	HasContext bool     // Whether a context entry was found
	Documents  []string // Retrieved documents in relevance order
}

// Messages renders the request as role-tagged messages: the system prompt,
// the query, then the context and the documents when present.
func (r *Request) Messages() []ai.Message {
	system := r.System
	if system == "" {
		system = DefaultSystemPrompt
	}

	messages := make([]ai.Message, 0, 4)
	messages = append(messages,
		ai.Message{Role: ai.RoleSystem, Content: system},
		ai.Message{Role: ai.RoleUser, Content: "Query: " + r.Query},
	)
	if r.HasContext {
		messages = append(messages, ai.Message{Role: ai.RoleUser, Content: "Context: " + r.Context})
	}
	if len(r.Documents) > 0 {
		messages = append(messages, ai.Message{Role: ai.RoleUser, Content: "Relevant Documents:\n" + numbered(r.Documents)})
	}
	return messages
}

func numbered(documents []string) string {
	var sb strings.Builder
	for i, doc := range documents {
		if i > 0 {
			sb.WriteByte('\n')
		}
		fmt.Fprintf(&sb, "%d. %s", i+1, doc)
	}
	return sb.String()
}
