/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package mock_test

import (
	"context"
	stderrors "errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/columnorm/datastore"
	"github.com/suparena/columnorm/datastore/mock"
	"github.com/suparena/columnorm/errors"
	"github.com/suparena/columnorm/row"
	"github.com/suparena/columnorm/storagemodels"
)

var _ datastore.RowStore = (*mock.Store)(nil)

func newRow(t *testing.T, key string, cols map[string]string) *row.SortedRow {
	t.Helper()
	r := row.New()
	r.SetKey([]byte(key))
	for name, v := range cols {
		require.NoError(t, r.Put([]byte(name), storagemodels.Column{Value: []byte(v)}))
	}
	return r
}

func TestMockStore(t *testing.T) {
	ctx := context.Background()

	t.Run("BasicOperations", func(t *testing.T) {
		store := mock.New()

		require.NoError(t, store.PutRow(ctx, "Account", newRow(t, "a1", map[string]string{"name": "Ann"})))

		got, err := store.GetRow(ctx, "Account", []byte("a1"))
		require.NoError(t, err)
		col, ok := got.Get([]byte("name"))
		require.True(t, ok)
		assert.Equal(t, "Ann", string(col.Value))

		require.NoError(t, store.DeleteRow(ctx, "Account", []byte("a1")))

		_, err = store.GetRow(ctx, "Account", []byte("a1"))
		assert.True(t, errors.IsNotFound(err))
	})

	t.Run("PutMergesColumns", func(t *testing.T) {
		store := mock.New()
		require.NoError(t, store.PutRow(ctx, "Account", newRow(t, "a1", map[string]string{"name": "Ann"})))
		require.NoError(t, store.PutRow(ctx, "Account", newRow(t, "a1", map[string]string{"email": "ann@x"})))

		got, err := store.GetRow(ctx, "Account", []byte("a1"))
		require.NoError(t, err)
		assert.Equal(t, 2, got.Len())
	})

	t.Run("ReturnedRowsAreCopies", func(t *testing.T) {
		store := mock.New()
		require.NoError(t, store.PutRow(ctx, "Account", newRow(t, "a1", map[string]string{"name": "Ann"})))

		got, err := store.GetRow(ctx, "Account", []byte("a1"))
		require.NoError(t, err)
		require.NoError(t, got.Put([]byte("extra"), storagemodels.Column{}))

		again, err := store.GetRow(ctx, "Account", []byte("a1"))
		require.NoError(t, err)
		assert.Equal(t, 1, again.Len())
	})

	t.Run("FindAllReportsMissingRows", func(t *testing.T) {
		store := mock.New()
		require.NoError(t, store.PutRow(ctx, "Activity", newRow(t, "x1", nil)))
		require.NoError(t, store.PutRow(ctx, "Activity", newRow(t, "x2", nil)))
		store.WithMissing([]byte("x2"))

		results, err := store.FindAll(ctx, "Activity", [][]byte{[]byte("x1"), []byte("x2"), []byte("x3")})
		require.NoError(t, err)
		require.Len(t, results, 3)
		assert.NotNil(t, results[0].Value)
		assert.Nil(t, results[1].Value)
		assert.Nil(t, results[2].Value)

		assert.Equal(t, 1, store.FindAllCalls())
		assert.Len(t, store.FindAllBatches()[0], 3)
	})

	t.Run("ErrorSimulation", func(t *testing.T) {
		store := mock.New()
		boom := stderrors.New("connection reset")

		store.WithFindAllError(boom)
		_, err := store.FindAll(ctx, "Activity", [][]byte{[]byte("x")})
		assert.Same(t, boom, err)

		store.WithPutError(boom)
		assert.Same(t, boom, store.PutRow(ctx, "Activity", newRow(t, "x", nil)))

		store.WithDeleteError(boom)
		assert.Same(t, boom, store.DeleteRow(ctx, "Activity", []byte("x")))
	})

	t.Run("KeysAreOrdered", func(t *testing.T) {
		store := mock.New()
		for _, k := range []string{"c", "a", "b"} {
			require.NoError(t, store.PutRow(ctx, "F", newRow(t, k, nil)))
		}
		assert.Equal(t, [][]byte{[]byte("a"), []byte("b"), []byte("c")}, store.Keys("F"))
		assert.Equal(t, 3, store.Count("F"))

		store.Clear()
		assert.Equal(t, 0, store.Count("F"))
	})

	t.Run("EmptyKeyRejected", func(t *testing.T) {
		store := mock.New()
		err := store.PutRow(ctx, "F", row.New())
		assert.True(t, errors.IsValidationError(err))
	})
}
