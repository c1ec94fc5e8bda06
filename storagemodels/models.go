/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package storagemodels

import (
	"bytes"
)

// Column is one (name, value, timestamp) cell of a wide-column row.
type Column struct {
	// Name is the raw column key; rows order columns by it byte-wise.
	Name []byte
	// Value is the opaque payload.
	Value []byte
	// Timestamp is an optional write time used for conflict resolution.
	Timestamp *int64
}

// Clone returns a Column that shares no memory with c.
func (c Column) Clone() Column {
	out := Column{
		Name:  bytes.Clone(c.Name),
		Value: bytes.Clone(c.Value),
	}
	if c.Timestamp != nil {
		ts := *c.Timestamp
		out.Timestamp = &ts
	}
	return out
}

// KeyValue pairs a raw row key with a value fetched for it.
// A nil Value means the store holds no row for Key.
type KeyValue[T any] struct {
	Key   []byte
	Value T
}

// IndexColumn is one entry of an index row.
type IndexColumn struct {
	// IndexedValue is the value being indexed.
	IndexedValue []byte
	// PrimaryKey is the row key of the indexed entity.
	PrimaryKey []byte
	// Timestamp is optional; when both sides carry one, newer wins.
	Timestamp *int64
	// Value is an optional raw payload stored with the entry.
	Value []byte
	// ColumnName is set for log output only. It never takes part in
	// equality, ordering or key derivation.
	ColumnName string
}

// Copy returns an IndexColumn with the same contents that can be mutated
// without affecting ic.
func (ic *IndexColumn) Copy() *IndexColumn {
	c := &IndexColumn{
		IndexedValue: bytes.Clone(ic.IndexedValue),
		PrimaryKey:   bytes.Clone(ic.PrimaryKey),
		Value:        bytes.Clone(ic.Value),
		ColumnName:   ic.ColumnName,
	}
	if ic.Timestamp != nil {
		ts := *ic.Timestamp
		c.Timestamp = &ts
	}
	return c
}

// Equal compares the persisted fields of two index columns; ColumnName is ignored.
func (ic *IndexColumn) Equal(other *IndexColumn) bool {
	if ic == nil || other == nil {
		return ic == other
	}
	if (ic.Timestamp == nil) != (other.Timestamp == nil) {
		return false
	}
	if ic.Timestamp != nil && *ic.Timestamp != *other.Timestamp {
		return false
	}
	return bytes.Equal(ic.IndexedValue, other.IndexedValue) &&
		bytes.Equal(ic.PrimaryKey, other.PrimaryKey) &&
		bytes.Equal(ic.Value, other.Value)
}
