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

package badger

import (
	"encoding/binary"
	"encoding/hex"
)

// Key prefixes for different data types
const (
	contextEntryPrefix = "ctxent"
	contextUserPrefix  = "ctxusr"
	contextEntrySeq    = "ctxentseq"
)

// makeUserEntriesPrefix generates the prefix shared by all entry keys of a user.
// The user id is hex encoded so that no user's prefix is a prefix of another's.
// Format: prefix:hex(userID):
func makeUserEntriesPrefix(userID string) []byte {
	return []byte(contextEntryPrefix + ":" + hex.EncodeToString([]byte(userID)) + ":")
}

// makeContextEntryKey generates the key of a single entry.
// Format: prefix:hex(userID):seq (8 bytes big endian so keys sort by insertion)
func makeContextEntryKey(userID string, seq uint64) []byte {
	prefix := makeUserEntriesPrefix(userID)
	buf := make([]byte, len(prefix)+8)
	offset := copy(buf, prefix)
	binary.BigEndian.PutUint64(buf[offset:], seq)
	return buf
}

// makeUserKey generates the key marking a user as having entries.
// Format: prefix:hex(userID)
func makeUserKey(userID string) []byte {
	return []byte(contextUserPrefix + ":" + hex.EncodeToString([]byte(userID)))
}

// userFromKey decodes the user id from a key produced by makeUserKey.
func userFromKey(key []byte) (string, error) {
	encoded := key[len(contextUserPrefix)+1:]
	decoded, err := hex.DecodeString(string(encoded))
	if err != nil {
		return "", err
	}
	return string(decoded), nil
}
