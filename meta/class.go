/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package meta

import (
	"encoding/hex"

	"github.com/suparena/columnorm/errors"
	"github.com/suparena/columnorm/row"
)

// Class describes how entities of type V are stored in one column family.
//
// It replaces reflective field access: the caller supplies typed functions
// that build a handle for an id and copy row columns into it.
type Class[V any] struct {
	// Name is the entity type name used in error messages.
	Name string
	// Family is the column family holding the entity rows.
	Family string
	// NewProxy returns an unpopulated handle bound to id.
	NewProxy func(id []byte) V
	// Fill copies the row's columns into entity. Calling it twice with the
	// same row must leave entity unchanged the second time.
	Fill func(r *row.SortedRow, entity V) error
	// FormatKey renders a raw row key for messages; hex when nil.
	FormatKey func(key []byte) string
}

// ColumnFamily returns the column family holding the rows.
func (c *Class[V]) ColumnFamily() string {
	return c.Family
}

// ConvertIDToProxy returns a handle for rawKey. The row is not read.
func (c *Class[V]) ConvertIDToProxy(r *row.SortedRow, rawKey []byte) (V, error) {
	var zero V
	if rawKey == nil {
		return zero, errors.NewValidationError("key", "row key must not be nil")
	}
	if c.NewProxy == nil {
		return zero, errors.NewValidationError("NewProxy", "class "+c.Name+" has no proxy constructor")
	}
	return c.NewProxy(rawKey), nil
}

// FillInInstance populates entity from r.
func (c *Class[V]) FillInInstance(r *row.SortedRow, entity V) error {
	if r == nil {
		return errors.NewValidationError("row", "cannot fill "+c.Name+" from a nil row")
	}
	if c.Fill == nil {
		return nil
	}
	return c.Fill(r, entity)
}

// KeyString renders key for log and error output.
func (c *Class[V]) KeyString(key []byte) string {
	if c.FormatKey != nil {
		return c.FormatKey(key)
	}
	return hex.EncodeToString(key)
}
