package core

import (
	"testing"
)

func TestIDFromContent(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{name: "short content", content: "Google revenue 2022 was $257B"},
		{name: "empty string", content: ""},
		{name: "unicode content", content: "Umsatz 2023 war höher"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id1 := IDFromContent(tt.content)
			id2 := IDFromContent(tt.content)
			if id1 != id2 {
				t.Errorf("IDFromContent() produced different IDs for same content: %d vs %d", id1, id2)
			}
		})
	}
}

func TestIDFromContent_Different(t *testing.T) {
	id1 := IDFromContent("What about 2023?")
	id2 := IDFromContent("What about 2024?")
	if id1 == id2 {
		t.Errorf("IDFromContent() produced same ID for different content: %d", id1)
	}
}
