/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package meta

import (
	"encoding/binary"
	"fmt"

	"github.com/go-openapi/strfmt"

	"github.com/suparena/columnorm/row"
	"github.com/suparena/columnorm/storagemodels"
)

// EncodeInt64 encodes v so that byte order matches numeric order.
func EncodeInt64(v int64) []byte {
	b := make([]byte, 8)
	binary.BigEndian.PutUint64(b, uint64(v)^(1<<63))
	return b
}

// DecodeInt64 reverses EncodeInt64.
func DecodeInt64(b []byte) (int64, error) {
	if len(b) != 8 {
		return 0, fmt.Errorf("int64 column must be 8 bytes, got %d", len(b))
	}
	return int64(binary.BigEndian.Uint64(b) ^ (1 << 63)), nil
}

// PutString stores a string column.
func PutString(r *row.SortedRow, name, value string) error {
	return r.Put([]byte(name), storagemodels.Column{Value: []byte(value)})
}

// PutInt64 stores an order-preserving int64 column.
func PutInt64(r *row.SortedRow, name string, value int64) error {
	return r.Put([]byte(name), storagemodels.Column{Value: EncodeInt64(value)})
}

// PutDateTime stores a date-time column in RFC3339 form.
func PutDateTime(r *row.SortedRow, name string, value strfmt.DateTime) error {
	return r.Put([]byte(name), storagemodels.Column{Value: []byte(value.String())})
}

// String reads a string column.
func String(r *row.SortedRow, name string) (string, bool) {
	col, ok := r.Get([]byte(name))
	if !ok {
		return "", false
	}
	return string(col.Value), true
}

// Int64 reads an int64 column written by PutInt64.
func Int64(r *row.SortedRow, name string) (int64, bool, error) {
	col, ok := r.Get([]byte(name))
	if !ok {
		return 0, false, nil
	}
	v, err := DecodeInt64(col.Value)
	if err != nil {
		return 0, true, fmt.Errorf("column %q: %w", name, err)
	}
	return v, true, nil
}

// DateTime reads a date-time column written by PutDateTime.
func DateTime(r *row.SortedRow, name string) (strfmt.DateTime, bool, error) {
	col, ok := r.Get([]byte(name))
	if !ok {
		return strfmt.DateTime{}, false, nil
	}
	dt, err := strfmt.ParseDateTime(string(col.Value))
	if err != nil {
		return strfmt.DateTime{}, true, fmt.Errorf("column %q: %w", name, err)
	}
	return dt, true, nil
}
