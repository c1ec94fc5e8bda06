/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package meta

import (
	"bytes"
	"math"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/suparena/columnorm/errors"
	"github.com/suparena/columnorm/row"
)

type widget struct {
	ID   string
	Name string
}

func widgetClass() *Class[*widget] {
	return &Class[*widget]{
		Name:   "Widget",
		Family: "Widget",
		NewProxy: func(id []byte) *widget {
			return &widget{ID: string(id)}
		},
		Fill: func(r *row.SortedRow, w *widget) error {
			w.Name, _ = String(r, "name")
			return nil
		},
	}
}

func TestClass(t *testing.T) {
	c := widgetClass()
	assert.Equal(t, "Widget", c.ColumnFamily())

	r := row.New()
	r.SetKey([]byte("w1"))
	require.NoError(t, PutString(r, "name", "gear"))

	w, err := c.ConvertIDToProxy(r, []byte("w1"))
	require.NoError(t, err)
	assert.Equal(t, "w1", w.ID)
	assert.Empty(t, w.Name)

	require.NoError(t, c.FillInInstance(r, w))
	require.NoError(t, c.FillInInstance(r, w))
	assert.Equal(t, &widget{ID: "w1", Name: "gear"}, w)

	_, err = c.ConvertIDToProxy(r, nil)
	assert.True(t, errors.IsValidationError(err))

	err = c.FillInInstance(nil, w)
	assert.True(t, errors.IsValidationError(err))

	assert.Equal(t, "7731", c.KeyString([]byte("w1")))
	c.FormatKey = func(k []byte) string { return string(k) }
	assert.Equal(t, "w1", c.KeyString([]byte("w1")))
}

func TestInt64EncodingPreservesOrder(t *testing.T) {
	vals := []int64{math.MinInt64, -1000, -1, 0, 1, 3, 255, 256, math.MaxInt64}
	for i := 1; i < len(vals); i++ {
		assert.Equal(t, -1, bytes.Compare(EncodeInt64(vals[i-1]), EncodeInt64(vals[i])),
			"%d should sort before %d", vals[i-1], vals[i])
	}
	for _, v := range vals {
		got, err := DecodeInt64(EncodeInt64(v))
		require.NoError(t, err)
		assert.Equal(t, v, got)
	}

	_, err := DecodeInt64([]byte{1, 2})
	assert.Error(t, err)
}

func TestColumnHelpers(t *testing.T) {
	r := row.New()
	created := strfmt.DateTime(time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC))

	require.NoError(t, PutInt64(r, "numTimes", 7))
	require.NoError(t, PutDateTime(r, "createdAt", created))

	n, ok, err := Int64(r, "numTimes")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(7), n)

	dt, ok, err := DateTime(r, "createdAt")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.True(t, time.Time(created).Equal(time.Time(dt)))

	_, ok, err = Int64(r, "missing")
	assert.False(t, ok)
	assert.NoError(t, err)

	require.NoError(t, PutString(r, "bad", "not a date"))
	_, _, err = DateTime(r, "bad")
	assert.Error(t, err)
}
