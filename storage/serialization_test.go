package storage

import (
	"testing"
	"time"

	"github.com/poiesic/routerag/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalContextEntry(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	entry := &core.ContextEntry{
		Id:         core.IDFromContent("Google revenue 2022 was $257B"),
		UserID:     "user123",
		Contents:   "Google revenue 2022 was $257B\nUmsatz: 257 Mrd. $ 🌍",
		Seq:        18446744073709551615, // max uint64
		InsertedAt: now,
	}

	data := MarshalContextEntry(entry)
	require.NotEmpty(t, data)

	decoded, err := UnmarshalContextEntry(data)
	require.NoError(t, err)

	assert.Equal(t, entry.Id, decoded.Id)
	assert.Equal(t, entry.UserID, decoded.UserID)
	assert.Equal(t, entry.Contents, decoded.Contents)
	assert.Equal(t, entry.Seq, decoded.Seq)
	assert.True(t, entry.InsertedAt.Equal(decoded.InsertedAt))
}

func TestUnmarshalContextEntry_Invalid(t *testing.T) {
	valid := MarshalContextEntry(&core.ContextEntry{
		Id:       1,
		UserID:   "u1",
		Contents: "hello",
		Seq:      1,
	})

	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty data", []byte{}, ErrTruncatedData},
		{"unknown version", []byte{0x7F, 1, 2, 3}, ErrUnsupportedVersion},
		{"invalid data", []byte{entryVersion, 0xFF, 0xFF, 0xFF}, ErrSerializationFailed},
		{"truncated", valid[:len(valid)-2], ErrSerializationFailed},
		{"trailing bytes", append(append([]byte{}, valid...), 0x00), ErrSerializationFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalContextEntry(tt.data)
			assert.ErrorIs(t, err, tt.want)
		})
	}
}
