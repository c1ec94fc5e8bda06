/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package row

import (
	"bytes"

	"github.com/google/btree"

	"github.com/suparena/columnorm/errors"
	"github.com/suparena/columnorm/storagemodels"
)

const btreeDegree = 16

type cell struct {
	key ByteKey
	col storagemodels.Column
}

func lessCell(a, b cell) bool {
	return a.key.Less(b.key)
}

// SortedRow holds the columns of one wide-column row ordered by column key.
//
// Point operations are O(log n); Slice and ByPrefix are O(log n + k).
// A SortedRow is not safe for concurrent mutation.
type SortedRow struct {
	key     []byte
	columns *btree.BTreeG[cell]
}

// New creates an empty row.
func New() *SortedRow {
	return &SortedRow{
		columns: btree.NewG(btreeDegree, lessCell),
	}
}

// NewWithColumns creates a row with the given key, populated from cols keyed by Column.Name.
func NewWithColumns(key []byte, cols ...storagemodels.Column) (*SortedRow, error) {
	r := New()
	r.key = key
	for _, col := range cols {
		if err := r.Put(col.Name, col); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// Key returns the row key.
func (r *SortedRow) Key() []byte {
	return r.key
}

// SetKey sets the row key. It is set once by whoever builds the row.
func (r *SortedRow) SetKey(key []byte) {
	r.key = key
}

// Len returns the number of columns.
func (r *SortedRow) Len() int {
	return r.columns.Len()
}

// Get returns the column stored under name.
func (r *SortedRow) Get(name []byte) (storagemodels.Column, bool) {
	c, ok := r.columns.Get(cell{key: keyOf(name)})
	return c.col, ok
}

// Put inserts or replaces the column under name. The column's Name is set to name.
func (r *SortedRow) Put(name []byte, col storagemodels.Column) error {
	key, err := NewByteKey(name)
	if err != nil {
		return err
	}
	col.Name = key.Bytes()
	r.columns.ReplaceOrInsert(cell{key: key, col: col})
	return nil
}

// Remove deletes the column under name and reports whether it existed.
func (r *SortedRow) Remove(name []byte) bool {
	_, ok := r.columns.Delete(cell{key: keyOf(name)})
	return ok
}

// Slice returns the columns with from <= key <= to in ascending key order.
// It is empty when from sorts after to.
func (r *SortedRow) Slice(from, to []byte) []storagemodels.Column {
	var out []storagemodels.Column
	if bytes.Compare(from, to) > 0 {
		return out
	}
	upper := keyOf(to)
	r.columns.AscendGreaterOrEqual(cell{key: keyOf(from)}, func(c cell) bool {
		if upper.Less(c.key) {
			return false
		}
		out = append(out, c.col)
		return true
	})
	return out
}

// ByPrefix returns the columns whose key starts with prefix in ascending key order.
//
// Every key carrying the prefix sorts at or after the prefix itself and the
// matches form one contiguous run, so the scan stops at the first miss.
func (r *SortedRow) ByPrefix(prefix []byte) []storagemodels.Column {
	var out []storagemodels.Column
	r.columns.AscendGreaterOrEqual(cell{key: keyOf(prefix)}, func(c cell) bool {
		if !c.key.HasPrefix(prefix) {
			return false
		}
		out = append(out, c.col)
		return true
	})
	return out
}

// Columns returns a snapshot of every column in ascending key order. It reads
// the in-memory tree only; adapters use it to serialise a row they already hold.
func (r *SortedRow) Columns() []storagemodels.Column {
	out := make([]storagemodels.Column, 0, r.columns.Len())
	r.columns.Ascend(func(c cell) bool {
		out = append(out, c.col)
		return true
	})
	return out
}

// RangeScanAll would stream an unfiltered scan of the row from the store,
// page by page. It is not implemented.
func (r *SortedRow) RangeScanAll() ([]storagemodels.Column, error) {
	return nil, errors.NewUnsupportedError("unfiltered row range scan")
}

// Clone returns a copy of the row. The underlying tree is copied lazily;
// column byte slices are shared and must be treated as immutable.
func (r *SortedRow) Clone() *SortedRow {
	return &SortedRow{
		key:     bytes.Clone(r.key),
		columns: r.columns.Clone(),
	}
}
