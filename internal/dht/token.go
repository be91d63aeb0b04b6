// Package dht provides the token order used to place and scan partitions.
// Tokens are the low 64 bits of a murmur3 128-bit hash of the serialized
// partition key, matching the store's partitioner.
package dht

import (
	"encoding/binary"

	"github.com/spaolacci/murmur3"
)

// Token is a position on the partitioner's ring.
type Token int64

// MurmurToken computes the token of a serialized partition key.
func MurmurToken(key []byte) Token {
	h1, _ := murmur3.Sum128(key)
	return Token(int64(h1))
}

// Bytes returns the 8-byte big-endian encoding of the token. This is the
// physical encoding the legacy token column stored; the corrected computation
// declares the token as a signed 64-bit integer instead.
func (t Token) Bytes() []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(t))
	return b
}

// TokenFromBytes decodes a token from its 8-byte big-endian encoding.
func TokenFromBytes(b []byte) Token {
	return Token(int64(binary.BigEndian.Uint64(b)))
}

// Less reports whether t sorts before o in ring order.
func (t Token) Less(o Token) bool {
	return t < o
}

// LegacyTokenBytes computes the legacy serialized-bytes encoding of the token
// of a partition key. Kept for indexes created before the token column type
// was corrected to bigint.
func LegacyTokenBytes(key []byte) []byte {
	return MurmurToken(key).Bytes()
}
