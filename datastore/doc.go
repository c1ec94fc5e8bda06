/*
Package datastore defines the storage interfaces consumed by columnorm's row and
collection layers.

RowFetcher is the batch read used by lazy collections:

	type RowFetcher interface {
	    FindAll(ctx context.Context, columnFamily string, keys [][]byte) ([]storagemodels.KeyValue[*row.SortedRow], error)
	}

RowStore adds single row reads and writes:

	type RowStore interface {
	    RowFetcher
	    GetRow(ctx context.Context, columnFamily string, key []byte) (*row.SortedRow, error)
	    PutRow(ctx context.Context, columnFamily string, r *row.SortedRow) error
	    DeleteRow(ctx context.Context, columnFamily string, key []byte) error
	}

Implementations:
  - ddb: DynamoDB implementation storing one item per column
  - mock: In-memory implementation for testing, with call counting and error injection

A fetch result reports missing rows explicitly (nil row) so callers can tell a
dangling reference from a short result.
*/
package datastore
