/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

// Package mock provides an in-memory implementation of datastore.RowStore for testing
package mock

import (
	"context"
	"sync"

	"github.com/google/btree"

	"github.com/suparena/columnorm/errors"
	"github.com/suparena/columnorm/row"
	"github.com/suparena/columnorm/storagemodels"
)

type storedRow struct {
	key row.ByteKey
	row *row.SortedRow
}

func lessStoredRow(a, b storedRow) bool {
	return a.key.Less(b.key)
}

// Store is an in-memory datastore.RowStore. Each column family is a B-tree of
// rows ordered by row key. Rows are cloned on the way in and out.
type Store struct {
	mu           sync.RWMutex
	families     map[string]*btree.BTreeG[storedRow]
	missing      map[row.ByteKey]bool
	findAllCalls int
	batches      [][][]byte
	findAllError error
	putError     error
	deleteError  error
}

// New creates a new mock Store
func New() *Store {
	return &Store{
		families: make(map[string]*btree.BTreeG[storedRow]),
		missing:  make(map[row.ByteKey]bool),
	}
}

// WithFindAllError makes FindAll return err until it is reset with nil
func (m *Store) WithFindAllError(err error) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.findAllError = err
	return m
}

// WithPutError makes PutRow operations return an error
func (m *Store) WithPutError(err error) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.putError = err
	return m
}

// WithDeleteError makes DeleteRow operations return an error
func (m *Store) WithDeleteError(err error) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteError = err
	return m
}

// WithMissing hides the row under key from FindAll, simulating a dangling reference.
func (m *Store) WithMissing(key []byte) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.missing[row.MustByteKey(key)] = true
	return m
}

// WithoutMissing undoes WithMissing for key.
func (m *Store) WithoutMissing(key []byte) *Store {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.missing, row.MustByteKey(key))
	return m
}

func (m *Store) family(name string) *btree.BTreeG[storedRow] {
	t, ok := m.families[name]
	if !ok {
		t = btree.NewG(16, lessStoredRow)
		m.families[name] = t
	}
	return t
}

// FindAll returns one pair per key; unknown or hidden keys carry a nil row.
func (m *Store) FindAll(ctx context.Context, columnFamily string, keys [][]byte) ([]storagemodels.KeyValue[*row.SortedRow], error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.findAllCalls++
	batch := make([][]byte, len(keys))
	copy(batch, keys)
	m.batches = append(m.batches, batch)

	if m.findAllError != nil {
		return nil, m.findAllError
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	t := m.family(columnFamily)
	results := make([]storagemodels.KeyValue[*row.SortedRow], 0, len(keys))
	for _, k := range keys {
		key, err := row.NewByteKey(k)
		if err != nil {
			return nil, err
		}
		kv := storagemodels.KeyValue[*row.SortedRow]{Key: k}
		if stored, ok := t.Get(storedRow{key: key}); ok && !m.missing[key] {
			kv.Value = stored.row.Clone()
		}
		results = append(results, kv)
	}
	return results, nil
}

// GetRow retrieves a row by key
func (m *Store) GetRow(ctx context.Context, columnFamily string, key []byte) (*row.SortedRow, error) {
	k, err := row.NewByteKey(key)
	if err != nil {
		return nil, err
	}

	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.families[columnFamily]
	if !ok {
		return nil, errors.NewNotFoundError(columnFamily, k.String())
	}
	stored, ok := t.Get(storedRow{key: k})
	if !ok {
		return nil, errors.NewNotFoundError(columnFamily, k.String())
	}
	return stored.row.Clone(), nil
}

// PutRow merges the row's columns into the stored row
func (m *Store) PutRow(ctx context.Context, columnFamily string, r *row.SortedRow) error {
	if r == nil || len(r.Key()) == 0 {
		return errors.NewValidationError("key", "row key must not be empty")
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.putError != nil {
		return m.putError
	}

	key := row.MustByteKey(r.Key())
	t := m.family(columnFamily)
	stored, ok := t.Get(storedRow{key: key})
	if !ok {
		t.ReplaceOrInsert(storedRow{key: key, row: r.Clone()})
		return nil
	}

	merged := stored.row.Clone()
	for _, col := range r.Columns() {
		if err := merged.Put(col.Name, col); err != nil {
			return err
		}
	}
	t.ReplaceOrInsert(storedRow{key: key, row: merged})
	return nil
}

// DeleteRow removes a row by key
func (m *Store) DeleteRow(ctx context.Context, columnFamily string, key []byte) error {
	k, err := row.NewByteKey(key)
	if err != nil {
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.deleteError != nil {
		return m.deleteError
	}

	if _, ok := m.family(columnFamily).Delete(storedRow{key: k}); !ok {
		return errors.NewNotFoundError(columnFamily, k.String())
	}
	return nil
}

// Helper methods for testing

// FindAllCalls returns how many times FindAll has been called
func (m *Store) FindAllCalls() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.findAllCalls
}

// FindAllBatches returns the key batches passed to FindAll, oldest first
func (m *Store) FindAllBatches() [][][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()
	out := make([][][]byte, len(m.batches))
	copy(out, m.batches)
	return out
}

// Keys returns the row keys of a column family in ascending order
func (m *Store) Keys(columnFamily string) [][]byte {
	m.mu.RLock()
	defer m.mu.RUnlock()

	t, ok := m.families[columnFamily]
	if !ok {
		return nil
	}
	keys := make([][]byte, 0, t.Len())
	t.Ascend(func(s storedRow) bool {
		keys = append(keys, s.key.Bytes())
		return true
	})
	return keys
}

// Count returns the number of rows stored in a column family
func (m *Store) Count(columnFamily string) int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.families[columnFamily]; ok {
		return t.Len()
	}
	return 0
}

// Clear removes all data and resets call counters
func (m *Store) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.families = make(map[string]*btree.BTreeG[storedRow])
	m.missing = make(map[row.ByteKey]bool)
	m.findAllCalls = 0
	m.batches = nil
}
