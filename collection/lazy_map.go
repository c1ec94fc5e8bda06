/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package collection

import (
	"context"
	"encoding/hex"
	"fmt"
	"log/slog"
	"reflect"
	"sync"

	"github.com/suparena/columnorm/datastore"
	"github.com/suparena/columnorm/errors"
	"github.com/suparena/columnorm/registry"
	"github.com/suparena/columnorm/row"
)

// EntityHydrator turns fetched rows into live entities.
type EntityHydrator[V any] interface {
	// ColumnFamily names the family the related rows live in.
	ColumnFamily() string
	// ConvertIDToProxy returns a handle bound to rawKey.
	ConvertIDToProxy(r *row.SortedRow, rawKey []byte) (V, error)
	// FillInInstance populates entity from r. It must be idempotent.
	FillInInstance(r *row.SortedRow, entity V) error
}

// KeyExtractor returns the map key of an entity. It must not have side effects.
type KeyExtractor[K, V any] func(entity V) K

// keyFormatter is implemented by hydrators that know how to print their row keys.
type keyFormatter interface {
	KeyString(key []byte) string
}

// Entry is one key/value pair of a LazyMap.
type Entry[K comparable, V comparable] struct {
	Key   K
	Value V
}

// Option configures a LazyMap
type Option func(*options)

type options struct {
	logger *slog.Logger
}

// WithLogger sets the logger used for load diagnostics
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) {
		o.logger = logger
	}
}

// LazyMap is a to-many relation whose members live in the store.
//
// Until it is loaded it only holds the raw keys of the related rows. Len,
// IsEmpty and Clear answer from that state; every other read or write loads
// the rows once with a single FindAll call. After loading, the members seen
// in the store are kept as the originals that ToBeAdded and ToBeRemoved diff
// against.
//
// Before loading, Len reports the number of keys it was built with. Duplicate
// keys and keys whose rows have since been deleted are counted, so the value
// can differ from the size after loading. Clear is the exception: once it
// has run, Len reports the live count (0 until something is put) instead of
// the number of keys, even if the map was never loaded.
//
// Calls are serialised by an internal mutex, but a LazyMap is meant to be
// owned by one session at a time.
type LazyMap[K comparable, V comparable] struct {
	mu       sync.Mutex
	owner    any
	fetcher  datastore.RowFetcher
	hydrator EntityHydrator[V]
	keys     [][]byte
	extract  KeyExtractor[K, V]
	logger   *slog.Logger

	items      map[K]V
	originals  map[V]struct{}
	loaded     bool
	clearedAll bool
}

// New creates a LazyMap for the rows identified by keys. owner is used in
// error messages only.
func New[K comparable, V comparable](
	owner any,
	fetcher datastore.RowFetcher,
	hydrator EntityHydrator[V],
	keys [][]byte,
	extract KeyExtractor[K, V],
	opts ...Option,
) *LazyMap[K, V] {
	o := options{logger: slog.Default()}
	for _, opt := range opts {
		opt(&o)
	}

	held := make([][]byte, len(keys))
	copy(held, keys)

	return &LazyMap[K, V]{
		owner:     owner,
		fetcher:   fetcher,
		hydrator:  hydrator,
		keys:      held,
		extract:   extract,
		logger:    o.logger,
		items:     make(map[K]V),
		originals: make(map[V]struct{}),
	}
}

// NewFromRegistry is New with the hydrator taken from the class registered for V.
func NewFromRegistry[K comparable, V comparable](
	owner any,
	fetcher datastore.RowFetcher,
	keys [][]byte,
	extract KeyExtractor[K, V],
	opts ...Option,
) (*LazyMap[K, V], error) {
	class, ok := registry.GetClass[V]()
	if !ok {
		return nil, errors.NewNotFoundError("class", reflect.TypeOf((*V)(nil)).Elem().String())
	}
	return New[K, V](owner, fetcher, class, keys, extract, opts...), nil
}

// RawKeys returns the row keys the map was built with.
func (m *LazyMap[K, V]) RawKeys() [][]byte {
	out := make([][]byte, len(m.keys))
	copy(out, m.keys)
	return out
}

// Loaded reports whether the rows have been fetched.
func (m *LazyMap[K, V]) Loaded() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.loaded
}

// Cleared reports whether Clear has been called.
func (m *LazyMap[K, V]) Cleared() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.clearedAll
}

// Len returns the number of members without loading.
func (m *LazyMap[K, V]) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.loaded || m.clearedAll {
		return len(m.items)
	}
	return len(m.keys)
}

// IsEmpty reports whether the map has no members without loading.
func (m *LazyMap[K, V]) IsEmpty() bool {
	return m.Len() == 0
}

// EnsureLoaded fetches and hydrates the related rows if that has not happened yet.
func (m *LazyMap[K, V]) EnsureLoaded(ctx context.Context) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.ensureLoaded(ctx)
}

func (m *LazyMap[K, V]) ensureLoaded(ctx context.Context) error {
	if m.loaded {
		return nil
	}
	if m.clearedAll {
		// nothing fetched now could survive the clear
		m.loaded = true
		return nil
	}

	family := m.hydrator.ColumnFamily()
	rows, err := m.fetcher.FindAll(ctx, family, m.keys)
	if err != nil {
		return err
	}
	m.logger.Debug("loading lazy collection",
		"family", family,
		"keys", len(m.keys),
		"rows", len(rows),
	)

	items := make(map[K]V, len(rows))
	originals := make(map[V]struct{}, len(rows))
	for _, kv := range rows {
		if kv.Value == nil {
			return errors.NewDataIntegrityError(fmt.Sprintf("%v", m.owner), family, m.keyString(kv.Key))
		}
		entity, err := m.hydrator.ConvertIDToProxy(kv.Value, kv.Key)
		if err != nil {
			return fmt.Errorf("failed to build %s entity %s: %w", family, m.keyString(kv.Key), err)
		}
		if err := m.hydrator.FillInInstance(kv.Value, entity); err != nil {
			return fmt.Errorf("failed to fill %s entity %s: %w", family, m.keyString(kv.Key), err)
		}

		k := m.extract(entity)
		if _, dup := items[k]; dup {
			m.logger.Warn("duplicate key in lazy collection",
				"family", family,
				"key", m.keyString(kv.Key),
			)
			continue
		}
		items[k] = entity
		originals[entity] = struct{}{}
	}

	m.items = items
	m.originals = originals
	m.loaded = true
	return nil
}

func (m *LazyMap[K, V]) keyString(key []byte) string {
	if f, ok := m.hydrator.(keyFormatter); ok {
		return f.KeyString(key)
	}
	return hex.EncodeToString(key)
}

// Get returns the member stored under key.
func (m *LazyMap[K, V]) Get(ctx context.Context, key K) (V, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	if err := m.ensureLoaded(ctx); err != nil {
		return zero, false, err
	}
	v, ok := m.items[key]
	return v, ok, nil
}

// ContainsKey reports whether key is present.
func (m *LazyMap[K, V]) ContainsKey(ctx context.Context, key K) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(ctx); err != nil {
		return false, err
	}
	_, ok := m.items[key]
	return ok, nil
}

// ContainsValue reports whether value is a member.
func (m *LazyMap[K, V]) ContainsValue(ctx context.Context, value V) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(ctx); err != nil {
		return false, err
	}
	for _, v := range m.items {
		if v == value {
			return true, nil
		}
	}
	return false, nil
}

// Keys returns the member keys in no particular order.
func (m *LazyMap[K, V]) Keys(ctx context.Context) ([]K, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	out := make([]K, 0, len(m.items))
	for k := range m.items {
		out = append(out, k)
	}
	return out, nil
}

// Values returns the members in no particular order.
func (m *LazyMap[K, V]) Values(ctx context.Context) ([]V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	out := make([]V, 0, len(m.items))
	for _, v := range m.items {
		out = append(out, v)
	}
	return out, nil
}

// Entries returns the key/value pairs in no particular order.
func (m *LazyMap[K, V]) Entries(ctx context.Context) ([]Entry[K, V], error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	out := make([]Entry[K, V], 0, len(m.items))
	for k, v := range m.items {
		out = append(out, Entry[K, V]{Key: k, Value: v})
	}
	return out, nil
}

// Clone returns a plain map holding the current members.
func (m *LazyMap[K, V]) Clone(ctx context.Context) (map[K]V, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(ctx); err != nil {
		return nil, err
	}
	out := make(map[K]V, len(m.items))
	for k, v := range m.items {
		out[k] = v
	}
	return out, nil
}

// Put stores value under key and returns the member it replaced, if any.
func (m *LazyMap[K, V]) Put(ctx context.Context, key K, value V) (V, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	if err := m.ensureLoaded(ctx); err != nil {
		return zero, false, err
	}
	prev, ok := m.items[key]
	m.items[key] = value
	return prev, ok, nil
}

// PutAll stores every pair of entries.
func (m *LazyMap[K, V]) PutAll(ctx context.Context, entries map[K]V) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.ensureLoaded(ctx); err != nil {
		return err
	}
	for k, v := range entries {
		m.items[k] = v
	}
	return nil
}

// Remove deletes the member under key and returns it.
func (m *LazyMap[K, V]) Remove(ctx context.Context, key K) (V, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	var zero V
	if err := m.ensureLoaded(ctx); err != nil {
		return zero, false, err
	}
	prev, ok := m.items[key]
	delete(m.items, key)
	return prev, ok, nil
}

// Clear removes every member without loading.
func (m *LazyMap[K, V]) Clear() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clearedAll = true
	m.items = make(map[K]V)
}

// ToBeRemoved returns the originals that are no longer members. It never loads.
func (m *LazyMap[K, V]) ToBeRemoved() []V {
	m.mu.Lock()
	defer m.mu.Unlock()

	removes := make([]V, 0)
	if !m.clearedAll && !m.loaded {
		return removes
	}

	current := m.currentSet()
	for v := range m.originals {
		if _, ok := current[v]; !ok {
			removes = append(removes, v)
		}
	}
	return removes
}

// ToBeAdded returns the members that were not among the originals. It never loads.
func (m *LazyMap[K, V]) ToBeAdded() []V {
	m.mu.Lock()
	defer m.mu.Unlock()

	adds := make([]V, 0)
	if !m.loaded {
		return adds
	}

	seen := make(map[V]struct{}, len(m.items))
	for _, v := range m.items {
		if _, orig := m.originals[v]; orig {
			continue
		}
		if _, dup := seen[v]; dup {
			continue
		}
		seen[v] = struct{}{}
		adds = append(adds, v)
	}
	return adds
}

func (m *LazyMap[K, V]) currentSet() map[V]struct{} {
	set := make(map[V]struct{}, len(m.items))
	for _, v := range m.items {
		set[v] = struct{}{}
	}
	return set
}
