/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package index

import (
	"bytes"
	"math/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/columnorm/errors"
	"github.com/suparena/columnorm/meta"
	"github.com/suparena/columnorm/storagemodels"
)

func primaryKeys(cols []*storagemodels.IndexColumn) []string {
	out := make([]string, 0, len(cols))
	for _, c := range cols {
		out = append(out, string(c.PrimaryKey))
	}
	return out
}

func numTimesIndex(t *testing.T) *Row {
	t.Helper()
	ix := New("numTimes", []byte("Activity:numTimes"))
	for pk, n := range map[string]int64{"act1": 3, "act2": 4, "act3": 5, "act4": 7, "act5": 8, "act6": 4} {
		require.NoError(t, ix.Add(&storagemodels.IndexColumn{
			IndexedValue: meta.EncodeInt64(n),
			PrimaryKey:   []byte(pk),
		}))
	}
	return ix
}

func TestBetween(t *testing.T) {
	ix := numTimesIndex(t)

	got, err := ix.Between(meta.EncodeInt64(4), meta.EncodeInt64(7))
	require.NoError(t, err)
	assert.Equal(t, []string{"act2", "act6", "act3", "act4"}, primaryKeys(got))

	got, err = ix.Between(meta.EncodeInt64(6), meta.EncodeInt64(6))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = ix.Between(meta.EncodeInt64(7), meta.EncodeInt64(4))
	require.NoError(t, err)
	assert.Empty(t, got)

	got, err = ix.Between(meta.EncodeInt64(3), meta.EncodeInt64(3))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "numTimes", got[0].ColumnName)
}

func TestEqual(t *testing.T) {
	ix := numTimesIndex(t)

	got, err := ix.Equal(meta.EncodeInt64(4))
	require.NoError(t, err)
	assert.Equal(t, []string{"act2", "act6"}, primaryKeys(got))
	v, err := meta.DecodeInt64(got[0].IndexedValue)
	require.NoError(t, err)
	assert.Equal(t, int64(4), v)

	assert.True(t, ix.Remove(meta.EncodeInt64(4), []byte("act2")))
	assert.False(t, ix.Remove(meta.EncodeInt64(4), []byte("act2")))
	got, err = ix.Equal(meta.EncodeInt64(4))
	require.NoError(t, err)
	assert.Equal(t, []string{"act6"}, primaryKeys(got))
	assert.Equal(t, 5, ix.Len())
}

func TestValuesThatArePrefixesOfEachOther(t *testing.T) {
	ix := New("name", []byte("Activity:name"))
	for pk, v := range map[string][]byte{
		"p1": []byte("ab"),
		"p2": []byte("abc"),
		"p3": {'a', 'b', 0x00},
		"p4": {'a', 'b', 0x00, 0x01},
		"p5": []byte("a"),
	} {
		require.NoError(t, ix.Add(&storagemodels.IndexColumn{IndexedValue: v, PrimaryKey: []byte(pk)}))
	}

	got, err := ix.Equal([]byte("ab"))
	require.NoError(t, err)
	assert.Equal(t, []string{"p1"}, primaryKeys(got))

	got, err = ix.Equal([]byte{'a', 'b', 0x00})
	require.NoError(t, err)
	assert.Equal(t, []string{"p3"}, primaryKeys(got))
	assert.Equal(t, []byte{'a', 'b', 0x00}, got[0].IndexedValue)

	got, err = ix.Between([]byte("ab"), []byte{'a', 'b', 0x00, 0x01})
	require.NoError(t, err)
	assert.Equal(t, []string{"p1", "p3", "p4"}, primaryKeys(got))
}

func TestBetweenMatchesBruteForce(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	ix := New("v", []byte("k"))
	type entry struct{ value, pk []byte }
	var entries []entry

	alphabet := []byte{0x00, 0x01, 0x02, 0xfe, 0xff}
	randomValue := func() []byte {
		b := make([]byte, rng.Intn(4))
		for i := range b {
			b[i] = alphabet[rng.Intn(len(alphabet))]
		}
		return b
	}

	for i := 0; i < 200; i++ {
		e := entry{value: randomValue(), pk: []byte{byte(i), byte(i >> 8)}}
		entries = append(entries, e)
		require.NoError(t, ix.Add(&storagemodels.IndexColumn{IndexedValue: e.value, PrimaryKey: e.pk}))
	}

	for i := 0; i < 100; i++ {
		from, to := randomValue(), randomValue()
		var want []entry
		for _, e := range entries {
			if bytes.Compare(e.value, from) >= 0 && bytes.Compare(e.value, to) <= 0 {
				want = append(want, e)
			}
		}
		sort.Slice(want, func(i, j int) bool {
			if c := bytes.Compare(want[i].value, want[j].value); c != 0 {
				return c < 0
			}
			return bytes.Compare(want[i].pk, want[j].pk) < 0
		})

		got, err := ix.Between(from, to)
		require.NoError(t, err)
		require.Len(t, got, len(want), "from=%x to=%x", from, to)
		for j := range got {
			require.Equal(t, want[j].value, got[j].IndexedValue)
			require.Equal(t, want[j].pk, got[j].PrimaryKey)
		}
	}
}

func TestAddKeepsNewestTimestamp(t *testing.T) {
	ix := New("v", []byte("k"))
	older, newer := int64(10), int64(20)

	require.NoError(t, ix.Add(&storagemodels.IndexColumn{
		IndexedValue: []byte("x"), PrimaryKey: []byte("p"), Timestamp: &newer, Value: []byte("new"),
	}))
	require.NoError(t, ix.Add(&storagemodels.IndexColumn{
		IndexedValue: []byte("x"), PrimaryKey: []byte("p"), Timestamp: &older, Value: []byte("old"),
	}))

	got, err := ix.Equal([]byte("x"))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, []byte("new"), got[0].Value)
	assert.Equal(t, newer, *got[0].Timestamp)
}

func TestColumnNameDoesNotAffectKeys(t *testing.T) {
	ix := New("v", []byte("k"))
	require.NoError(t, ix.Add(&storagemodels.IndexColumn{IndexedValue: []byte("x"), PrimaryKey: []byte("p"), ColumnName: "a"}))
	require.NoError(t, ix.Add(&storagemodels.IndexColumn{IndexedValue: []byte("x"), PrimaryKey: []byte("p"), ColumnName: "b"}))
	assert.Equal(t, 1, ix.Len())
}

func TestAddValidation(t *testing.T) {
	ix := New("v", []byte("k"))
	assert.True(t, errors.IsValidationError(ix.Add(&storagemodels.IndexColumn{PrimaryKey: []byte("p")})))
	assert.True(t, errors.IsValidationError(ix.Add(&storagemodels.IndexColumn{IndexedValue: []byte("x")})))
	assert.True(t, errors.IsValidationError(ix.Add(nil)))
}

func TestJoinUnsupported(t *testing.T) {
	_, err := New("a", []byte("a")).Join(New("b", []byte("b")))
	assert.True(t, errors.IsUnsupported(err))
}

func TestFromRowRoundTrip(t *testing.T) {
	ix := numTimesIndex(t)
	again := FromRow("numTimes", ix.SortedRow().Clone())

	assert.Equal(t, ix.Key(), again.Key())
	got, err := again.Equal(meta.EncodeInt64(8))
	require.NoError(t, err)
	assert.Equal(t, []string{"act5"}, primaryKeys(got))
}

func TestDecodeKeyErrors(t *testing.T) {
	_, _, err := decodeKey([]byte("novalue"))
	assert.Error(t, err)
	_, _, err = decodeKey([]byte{'a', 0x00, 0x07})
	assert.Error(t, err)

	v, pk, err := decodeKey(encodeKey([]byte{0x00}, []byte{0x00, 0x01}))
	require.NoError(t, err)
	assert.Equal(t, []byte{0x00}, v)
	assert.Equal(t, []byte{0x00, 0x01}, pk)
}
