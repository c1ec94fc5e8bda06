/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package columnorm

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/suparena/columnorm/datastore"
	"github.com/suparena/columnorm/errors"
	"github.com/suparena/columnorm/row"
	"github.com/suparena/columnorm/storagemodels"
)

// Router sends row operations to the RowStore registered for their column
// family. A Router is itself a datastore.RowStore, so one fetcher can back
// every lazy collection of a session.
type Router struct {
	mu       sync.RWMutex
	stores   map[string]datastore.RowStore
	fallback datastore.RowStore
}

// NewRouter creates a Router. fallback, when not nil, serves families with
// no registered store.
func NewRouter(fallback datastore.RowStore) *Router {
	return &Router{
		stores:   make(map[string]datastore.RowStore),
		fallback: fallback,
	}
}

// Register adds a store for the given column family
func (r *Router) Register(columnFamily string, store datastore.RowStore) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.stores[columnFamily]; exists {
		return fmt.Errorf("row store for column family %q already registered", columnFamily)
	}
	r.stores[columnFamily] = store
	return nil
}

// Get retrieves the store serving a column family
func (r *Router) Get(columnFamily string) (datastore.RowStore, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if store, exists := r.stores[columnFamily]; exists {
		return store, nil
	}
	if r.fallback != nil {
		return r.fallback, nil
	}
	return nil, errors.NewNotFoundError("row store", columnFamily)
}

// Remove deletes the store registered for a column family
func (r *Router) Remove(columnFamily string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.stores[columnFamily]; !exists {
		return errors.NewNotFoundError("row store", columnFamily)
	}
	delete(r.stores, columnFamily)
	return nil
}

// List returns the column families with a registered store, sorted
func (r *Router) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	families := make([]string, 0, len(r.stores))
	for f := range r.stores {
		families = append(families, f)
	}
	sort.Strings(families)
	return families
}

// FindAll implements datastore.RowFetcher.
func (r *Router) FindAll(ctx context.Context, columnFamily string, keys [][]byte) ([]storagemodels.KeyValue[*row.SortedRow], error) {
	store, err := r.Get(columnFamily)
	if err != nil {
		return nil, err
	}
	return store.FindAll(ctx, columnFamily, keys)
}

// GetRow implements datastore.RowStore.
func (r *Router) GetRow(ctx context.Context, columnFamily string, key []byte) (*row.SortedRow, error) {
	store, err := r.Get(columnFamily)
	if err != nil {
		return nil, err
	}
	return store.GetRow(ctx, columnFamily, key)
}

// PutRow implements datastore.RowStore.
func (r *Router) PutRow(ctx context.Context, columnFamily string, sr *row.SortedRow) error {
	store, err := r.Get(columnFamily)
	if err != nil {
		return err
	}
	return store.PutRow(ctx, columnFamily, sr)
}

// DeleteRow implements datastore.RowStore.
func (r *Router) DeleteRow(ctx context.Context, columnFamily string, key []byte) error {
	store, err := r.Get(columnFamily)
	if err != nil {
		return err
	}
	return store.DeleteRow(ctx, columnFamily, key)
}
