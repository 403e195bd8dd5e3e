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

package core

import "errors"

// Pipeline failure taxonomy.
var (
	// ErrClassificationUnavailable indicates the classifier backend failed.
	ErrClassificationUnavailable = errors.New("classification unavailable")

	// ErrEmbeddingUnavailable indicates the embedding backend failed while evaluating similarity.
	ErrEmbeddingUnavailable = errors.New("embedding unavailable")

	// ErrRetrievalUnavailable indicates the document search backend failed.
	ErrRetrievalUnavailable = errors.New("retrieval unavailable")

	// ErrGenerationUnavailable indicates the answer generation backend failed.
	ErrGenerationUnavailable = errors.New("generation unavailable")

	// ErrPartialInputUnavailable indicates a run completed with one or more auxiliary inputs missing.
	ErrPartialInputUnavailable = errors.New("partial input unavailable")

	// ErrContextCommitFailed indicates the generated answer could not be stored as new context.
	ErrContextCommitFailed = errors.New("context commit failed")
)

// Domain validation errors
var (
	// ErrInvalidContextEntry indicates a ContextEntry failed validation.
	ErrInvalidContextEntry = errors.New("invalid context entry")

	// ErrEmptyUserID indicates the UserID field is empty.
	ErrEmptyUserID = errors.New("user id cannot be empty")

	// ErrEmptyContent indicates the Contents field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrUnknownCategory indicates a category label could not be parsed.
	ErrUnknownCategory = errors.New("unknown category")
)
