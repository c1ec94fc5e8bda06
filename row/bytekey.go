/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package row

import (
	"encoding/hex"
	"strings"

	"github.com/suparena/columnorm/errors"
)

// ByteKey is an immutable, comparable wrapper over a raw byte sequence.
//
// Keys order by unsigned lexicographic byte comparison; a strict prefix sorts
// before any of its extensions. ByteKey is usable as a map key.
type ByteKey struct {
	b string
}

// NewByteKey copies b into a new key. A nil slice is rejected; an empty,
// non-nil slice is a valid key.
func NewByteKey(b []byte) (ByteKey, error) {
	if b == nil {
		return ByteKey{}, errors.NewValidationError("key", "byte key must not be nil")
	}
	return ByteKey{b: string(b)}, nil
}

// MustByteKey is NewByteKey for keys known to be non-nil. It panics otherwise.
func MustByteKey(b []byte) ByteKey {
	k, err := NewByteKey(b)
	if err != nil {
		panic(err)
	}
	return k
}

// keyOf converts lookup arguments; nil is read as the empty key.
func keyOf(b []byte) ByteKey {
	return ByteKey{b: string(b)}
}

// Bytes returns a copy of the key's bytes.
func (k ByteKey) Bytes() []byte {
	return []byte(k.b)
}

// Len returns the number of bytes in the key.
func (k ByteKey) Len() int {
	return len(k.b)
}

// Compare returns -1, 0 or +1 when k sorts before, equal to or after other.
func (k ByteKey) Compare(other ByteKey) int {
	return strings.Compare(k.b, other.b)
}

// Less reports whether k sorts strictly before other.
func (k ByteKey) Less(other ByteKey) bool {
	return k.b < other.b
}

// Equal reports whether both keys hold the same bytes.
func (k ByteKey) Equal(other ByteKey) bool {
	return k.b == other.b
}

// HasPrefix reports whether the key starts with every byte of prefix.
func (k ByteKey) HasPrefix(prefix []byte) bool {
	return strings.HasPrefix(k.b, string(prefix))
}

// String renders the key as hex for logs.
func (k ByteKey) String() string {
	return hex.EncodeToString([]byte(k.b))
}
