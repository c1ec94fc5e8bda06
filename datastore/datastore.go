/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"

	"github.com/suparena/columnorm/row"
	"github.com/suparena/columnorm/storagemodels"
)

// RowFetcher looks up many rows of one column family in a single call.
//
// The result holds one pair per requested key, in any order. A key with no
// row is reported with a nil row, never dropped. Implementations own batch
// size limits, retries and timeouts.
type RowFetcher interface {
	FindAll(ctx context.Context, columnFamily string, keys [][]byte) ([]storagemodels.KeyValue[*row.SortedRow], error)
}

// RowStore is a RowFetcher that can also read and write single rows.
type RowStore interface {
	RowFetcher

	// GetRow returns the row stored under key or a NotFoundError.
	GetRow(ctx context.Context, columnFamily string, key []byte) (*row.SortedRow, error)

	// PutRow merges the row's columns into the stored row.
	PutRow(ctx context.Context, columnFamily string, r *row.SortedRow) error

	// DeleteRow removes the row and all of its columns.
	DeleteRow(ctx context.Context, columnFamily string, key []byte) error
}
