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

import (
	"fmt"
	"strings"
)

// ValidateContextEntry validates a ContextEntry according to domain rules.
//
// Validation rules:
//   - UserID must not be blank
//   - Contents must not be blank
//
// NOT validated (populated by repositories):
//   - ID, Seq, InsertedAt
func ValidateContextEntry(entry *ContextEntry) error {
	if entry == nil {
		return fmt.Errorf("%w: entry is nil", ErrInvalidContextEntry)
	}

	if err := ValidateUserID(entry.UserID); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidContextEntry, err)
	}

	if strings.TrimSpace(entry.Contents) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidContextEntry, ErrEmptyContent)
	}

	return nil
}

// ValidateUserID checks that a user identifier is not blank.
func ValidateUserID(userID string) error {
	if strings.TrimSpace(userID) == "" {
		return ErrEmptyUserID
	}
	return nil
}
