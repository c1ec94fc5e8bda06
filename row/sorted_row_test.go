/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package row

import (
	"bytes"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/columnorm/errors"
	"github.com/suparena/columnorm/storagemodels"
)

func col(v string) storagemodels.Column {
	return storagemodels.Column{Value: []byte(v)}
}

func values(cols []storagemodels.Column) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		out = append(out, string(c.Value))
	}
	return out
}

func TestSortedRowPointOperations(t *testing.T) {
	r := New()
	r.SetKey([]byte("row-1"))
	assert.Equal(t, []byte("row-1"), r.Key())

	require.NoError(t, r.Put([]byte("b"), col("B")))
	require.NoError(t, r.Put([]byte("a"), col("A")))

	got, ok := r.Get([]byte("a"))
	require.True(t, ok)
	assert.Equal(t, "A", string(got.Value))
	assert.Equal(t, []byte("a"), got.Name)

	_, ok = r.Get([]byte("missing"))
	assert.False(t, ok)

	require.NoError(t, r.Put([]byte("a"), col("A2")))
	got, _ = r.Get([]byte("a"))
	assert.Equal(t, "A2", string(got.Value))
	assert.Equal(t, 2, r.Len())

	assert.True(t, r.Remove([]byte("a")))
	assert.False(t, r.Remove([]byte("a")))
	assert.Equal(t, 1, r.Len())

	err := r.Put(nil, col("x"))
	assert.True(t, errors.IsValidationError(err))
}

func TestSortedRowSlice(t *testing.T) {
	r, err := NewWithColumns([]byte("k"),
		storagemodels.Column{Name: []byte("c"), Value: []byte("C")},
		storagemodels.Column{Name: []byte("a"), Value: []byte("A")},
		storagemodels.Column{Name: []byte("e"), Value: []byte("E")},
		storagemodels.Column{Name: []byte("b"), Value: []byte("B")},
	)
	require.NoError(t, err)

	assert.Equal(t, []string{"B", "C"}, values(r.Slice([]byte("b"), []byte("d"))))
	assert.Equal(t, []string{"A", "B", "C", "E"}, values(r.Slice([]byte(""), []byte("z"))))
	assert.Equal(t, []string{"C"}, values(r.Slice([]byte("c"), []byte("c"))))
	assert.Empty(t, r.Slice([]byte("d"), []byte("b")))
	assert.Empty(t, r.Slice([]byte("f"), []byte("z")))
}

func TestSortedRowSliceMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(1))
	r := New()
	stored := map[string]bool{}

	for i := 0; i < 300; i++ {
		k := randomBytes(rng, 4)
		require.NoError(t, r.Put(k, storagemodels.Column{Value: k}))
		stored[string(k)] = true
	}

	for i := 0; i < 200; i++ {
		from, to := randomBytes(rng, 3), randomBytes(rng, 3)

		var want [][]byte
		for k := range stored {
			if bytes.Compare([]byte(k), from) >= 0 && bytes.Compare([]byte(k), to) <= 0 {
				want = append(want, []byte(k))
			}
		}
		sort.Slice(want, func(i, j int) bool { return bytes.Compare(want[i], want[j]) < 0 })

		got := r.Slice(from, to)
		require.Len(t, got, len(want), "from=%x to=%x", from, to)
		for j := range got {
			require.Equal(t, want[j], got[j].Name)
		}
	}
}

func TestSortedRowByPrefix(t *testing.T) {
	r := New()
	for _, k := range []string{"act:2", "name", "act:1", "ac", "act:10", "b", "act"} {
		require.NoError(t, r.Put([]byte(k), col(k)))
	}

	assert.Equal(t, []string{"act:1", "act:10", "act:2"}, values(r.ByPrefix([]byte("act:"))))
	assert.Equal(t, []string{"act", "act:1", "act:10", "act:2"}, values(r.ByPrefix([]byte("act"))))
	assert.Empty(t, r.ByPrefix([]byte("zz")))
	assert.Len(t, r.ByPrefix(nil), 7)
}

func TestSortedRowByPrefixMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(3))
	r := New()
	stored := map[string]bool{}

	for i := 0; i < 300; i++ {
		k := randomBytes(rng, 5)
		require.NoError(t, r.Put(k, storagemodels.Column{Value: k}))
		stored[string(k)] = true
	}

	for i := 0; i < 100; i++ {
		prefix := randomBytes(rng, 2)

		var want [][]byte
		for k := range stored {
			if bytes.HasPrefix([]byte(k), prefix) {
				want = append(want, []byte(k))
			}
		}
		sort.Slice(want, func(i, j int) bool { return bytes.Compare(want[i], want[j]) < 0 })

		got := r.ByPrefix(prefix)
		require.Len(t, got, len(want), "prefix=%x", prefix)
		for j := range got {
			require.Equal(t, want[j], got[j].Name)
		}
	}
}

func TestSortedRowColumnsAndClone(t *testing.T) {
	r := New()
	r.SetKey([]byte("k"))
	require.NoError(t, r.Put([]byte("2"), col("two")))
	require.NoError(t, r.Put([]byte("1"), col("one")))

	assert.Equal(t, []string{"one", "two"}, values(r.Columns()))

	c := r.Clone()
	require.NoError(t, c.Put([]byte("3"), col("three")))
	c.Remove([]byte("1"))

	assert.Equal(t, []string{"one", "two"}, values(r.Columns()))
	assert.Equal(t, []string{"two", "three"}, values(c.Columns()))
	assert.Equal(t, r.Key(), c.Key())
}

func TestSortedRowRangeScanAllUnsupported(t *testing.T) {
	_, err := New().RangeScanAll()
	require.Error(t, err)
	assert.True(t, errors.IsUnsupported(err))
}
