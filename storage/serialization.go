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

package storage

import (
	"fmt"
	"time"

	"github.com/mus-format/mus-go/ord"
	"github.com/mus-format/mus-go/varint"
	"github.com/poiesic/routerag/core"
)

// entryVersion prefixes every encoded ContextEntry.
const entryVersion byte = 1

// MarshalContextEntry serializes a ContextEntry to bytes.
// Layout: version, Id, Seq, InsertedAt (unix micros), UserID, Contents.
func MarshalContextEntry(entry *core.ContextEntry) []byte {
	micros := entry.InsertedAt.UnixMicro()
	size := 1 +
		varint.Uint64.Size(uint64(entry.Id)) +
		varint.Uint64.Size(entry.Seq) +
		varint.Int64.Size(micros) +
		ord.String.Size(entry.UserID) +
		ord.String.Size(entry.Contents)

	buf := make([]byte, size)
	buf[0] = entryVersion
	n := 1
	n += varint.Uint64.Marshal(uint64(entry.Id), buf[n:])
	n += varint.Uint64.Marshal(entry.Seq, buf[n:])
	n += varint.Int64.Marshal(micros, buf[n:])
	n += ord.String.Marshal(entry.UserID, buf[n:])
	ord.String.Marshal(entry.Contents, buf[n:])
	return buf
}

// UnmarshalContextEntry deserializes a ContextEntry from bytes.
func UnmarshalContextEntry(data []byte) (*core.ContextEntry, error) {
	if len(data) == 0 {
		return nil, ErrTruncatedData
	}
	if data[0] != entryVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, data[0])
	}

	var (
		entry core.ContextEntry
		n     = 1
	)

	id, m, err := varint.Uint64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: id: %w", ErrSerializationFailed, err)
	}
	entry.Id = core.ID(id)
	n += m

	entry.Seq, m, err = varint.Uint64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: seq: %w", ErrSerializationFailed, err)
	}
	n += m

	micros, m, err := varint.Int64.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: inserted at: %w", ErrSerializationFailed, err)
	}
	entry.InsertedAt = time.UnixMicro(micros).UTC()
	n += m

	entry.UserID, m, err = ord.String.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: user id: %w", ErrSerializationFailed, err)
	}
	n += m

	entry.Contents, m, err = ord.String.Unmarshal(data[n:])
	if err != nil {
		return nil, fmt.Errorf("%w: contents: %w", ErrSerializationFailed, err)
	}
	n += m

	if n != len(data) {
		return nil, fmt.Errorf("%w: %d trailing bytes", ErrSerializationFailed, len(data)-n)
	}
	return &entry, nil
}
