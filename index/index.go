/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package index

import (
	"bytes"
	"fmt"

	"github.com/suparena/columnorm/errors"
	"github.com/suparena/columnorm/row"
	"github.com/suparena/columnorm/storagemodels"
)

// Column keys are escape(indexedValue) 0x00 0x01 primaryKey, where escape
// turns every 0x00 into 0x00 0xFF. The encoding is prefix free and keeps
// byte order of indexed values, so equality is a prefix scan and ranges are
// slices.
var (
	terminator = []byte{0x00, 0x01}
	upperBound = []byte{0x00, 0x02}
)

func escape(value []byte) []byte {
	out := make([]byte, 0, len(value)+len(terminator))
	for _, b := range value {
		out = append(out, b)
		if b == 0x00 {
			out = append(out, 0xFF)
		}
	}
	return out
}

func encodeKey(value, primaryKey []byte) []byte {
	k := append(escape(value), terminator...)
	return append(k, primaryKey...)
}

func decodeKey(key []byte) (value, primaryKey []byte, err error) {
	value = make([]byte, 0, len(key))
	for i := 0; i < len(key); i++ {
		if key[i] != 0x00 {
			value = append(value, key[i])
			continue
		}
		if i+1 >= len(key) {
			break
		}
		switch key[i+1] {
		case 0xFF:
			value = append(value, 0x00)
			i++
		case 0x01:
			return value, bytes.Clone(key[i+2:]), nil
		default:
			return nil, nil, fmt.Errorf("index key %x: bad escape at offset %d", key, i)
		}
	}
	return nil, nil, fmt.Errorf("index key %x: missing terminator", key)
}

// Row is an index over one field, stored as a single wide-column row whose
// columns are IndexColumns ordered by indexed value then primary key.
type Row struct {
	name string
	row  *row.SortedRow
}

// New creates an empty index row. name is used for ColumnName on results.
func New(name string, key []byte) *Row {
	r := row.New()
	r.SetKey(key)
	return &Row{name: name, row: r}
}

// FromRow wraps an index row read from a store.
func FromRow(name string, r *row.SortedRow) *Row {
	return &Row{name: name, row: r}
}

// SortedRow returns the underlying row for persisting.
func (ix *Row) SortedRow() *row.SortedRow {
	return ix.row
}

// Key returns the index row key.
func (ix *Row) Key() []byte {
	return ix.row.Key()
}

// Len returns the number of entries.
func (ix *Row) Len() int {
	return ix.row.Len()
}

// Add stores ic. When both the stored entry and ic carry timestamps, the
// older write is dropped.
func (ix *Row) Add(ic *storagemodels.IndexColumn) error {
	if ic == nil || ic.IndexedValue == nil {
		return errors.NewValidationError("IndexedValue", "index column needs an indexed value")
	}
	if len(ic.PrimaryKey) == 0 {
		return errors.NewValidationError("PrimaryKey", "index column needs a primary key")
	}

	key := encodeKey(ic.IndexedValue, ic.PrimaryKey)
	if existing, ok := ix.row.Get(key); ok && existing.Timestamp != nil && ic.Timestamp != nil &&
		*existing.Timestamp > *ic.Timestamp {
		return nil
	}
	return ix.row.Put(key, storagemodels.Column{
		Value:     ic.Value,
		Timestamp: ic.Timestamp,
	})
}

// Remove deletes the entry for (indexedValue, primaryKey).
func (ix *Row) Remove(indexedValue, primaryKey []byte) bool {
	return ix.row.Remove(encodeKey(indexedValue, primaryKey))
}

// Equal returns the entries whose indexed value equals value, ordered by primary key.
func (ix *Row) Equal(value []byte) ([]*storagemodels.IndexColumn, error) {
	return ix.decode(ix.row.ByPrefix(append(escape(value), terminator...)))
}

// Between returns the entries with from <= indexed value <= to, ordered by
// indexed value then primary key.
func (ix *Row) Between(from, to []byte) ([]*storagemodels.IndexColumn, error) {
	if bytes.Compare(from, to) > 0 {
		return []*storagemodels.IndexColumn{}, nil
	}
	lower := append(escape(from), terminator...)
	upper := append(escape(to), upperBound...)
	return ix.decode(ix.row.Slice(lower, upper))
}

// Join would combine this index with another partition's. Joins across
// partitions are not supported.
func (ix *Row) Join(other *Row) ([]*storagemodels.IndexColumn, error) {
	return nil, errors.NewUnsupportedError("index join")
}

func (ix *Row) decode(cols []storagemodels.Column) ([]*storagemodels.IndexColumn, error) {
	out := make([]*storagemodels.IndexColumn, 0, len(cols))
	for _, col := range cols {
		value, pk, err := decodeKey(col.Name)
		if err != nil {
			return nil, err
		}
		out = append(out, &storagemodels.IndexColumn{
			IndexedValue: value,
			PrimaryKey:   pk,
			Timestamp:    col.Timestamp,
			Value:        col.Value,
			ColumnName:   ix.name,
		})
	}
	return out, nil
}
