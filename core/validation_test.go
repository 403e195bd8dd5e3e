package core

import (
	"errors"
	"testing"
)

func TestValidateContextEntry(t *testing.T) {
	tests := []struct {
		name    string
		entry   *ContextEntry
		wantErr error
	}{
		{
			name:    "valid entry",
			entry:   &ContextEntry{UserID: "u1", Contents: "Google revenue 2022 was $257B"},
			wantErr: nil,
		},
		{
			name:    "valid entry with zero ID and sequence",
			entry:   &ContextEntry{Id: 0, Seq: 0, UserID: "u1", Contents: "text"},
			wantErr: nil,
		},
		{
			name:    "nil entry",
			entry:   nil,
			wantErr: ErrInvalidContextEntry,
		},
		{
			name:    "empty user id",
			entry:   &ContextEntry{UserID: "", Contents: "text"},
			wantErr: ErrEmptyUserID,
		},
		{
			name:    "blank user id",
			entry:   &ContextEntry{UserID: "   ", Contents: "text"},
			wantErr: ErrEmptyUserID,
		},
		{
			name:    "empty contents",
			entry:   &ContextEntry{UserID: "u1", Contents: ""},
			wantErr: ErrEmptyContent,
		},
		{
			name:    "whitespace contents",
			entry:   &ContextEntry{UserID: "u1", Contents: "\n\t "},
			wantErr: ErrEmptyContent,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateContextEntry(tt.entry)
			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("ValidateContextEntry() unexpected error = %v", err)
				}
				return
			}
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("ValidateContextEntry() error = %v, want %v", err, tt.wantErr)
			}
			if !errors.Is(err, ErrInvalidContextEntry) {
				t.Errorf("ValidateContextEntry() error = %v, want wrapped %v", err, ErrInvalidContextEntry)
			}
		})
	}
}

func TestValidateUserID(t *testing.T) {
	if err := ValidateUserID("user123"); err != nil {
		t.Errorf("ValidateUserID() unexpected error = %v", err)
	}
	if err := ValidateUserID(""); !errors.Is(err, ErrEmptyUserID) {
		t.Errorf("ValidateUserID() error = %v, want %v", err, ErrEmptyUserID)
	}
}
