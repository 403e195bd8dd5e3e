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

import "strings"

// stripCodeFence removes markdown code fences some models wrap JSON in.
func stripCodeFence(s string) string {
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}

// repairJSON fixes the formatting mistakes small models make most often when
// emitting a flat JSON object: text around the object and keys missing their
// opening or both quotes, e.g. `{label": 2}` or `{label: 2}`.
func repairJSON(s string) string {
	if start := strings.IndexByte(s, '{'); start > 0 {
		s = s[start:]
	}
	if end := strings.LastIndexByte(s, '}'); end >= 0 && end < len(s)-1 {
		s = s[:end+1]
	}

	in := []rune(s)
	out := make([]rune, 0, len(in)+8)
	inString := false
	for i := 0; i < len(in); i++ {
		ch := in[i]
		out = append(out, ch)
		if ch == '"' && (i == 0 || in[i-1] != '\\') {
			inString = !inString
			continue
		}
		if inString || (ch != '{' && ch != ',') {
			continue
		}

		// Copy whitespace following the delimiter
		j := i + 1
		for j < len(in) && isSpace(in[j]) {
			out = append(out, in[j])
			j++
		}
		if j >= len(in) || !isLetter(in[j]) {
			i = j - 1
			continue
		}

		// Collect a bare key
		k := j
		for k < len(in) && (isLetter(in[k]) || in[k] == '_') {
			k++
		}
		switch {
		case k < len(in) && in[k] == '"':
			// Closing quote present, opening quote missing
			out = append(out, '"')
			out = append(out, in[j:k]...)
			inString = true
			i = k - 1
		case k < len(in) && in[k] == ':':
			// Both quotes missing
			out = append(out, '"')
			out = append(out, in[j:k]...)
			out = append(out, '"')
			i = k - 1
		default:
			out = append(out, in[j:k]...)
			i = k - 1
		}
	}
	return string(out)
}
