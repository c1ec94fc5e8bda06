/*
Package ddb stores column families in DynamoDB.

Each column family is a table named TablePrefix+family with a binary
partition key PK (the row key) and a binary sort key SK (the column key).
Every column of a row is one item:

	PK  B  row key
	SK  B  column key
	V   B  column value (omitted when empty)
	TS  N  optional write timestamp

DynamoDB compares binary sort keys as unsigned bytes, the same order
row.SortedRow keeps in memory, so column slices and prefix reads are pushed
to the server:

	store, err := ddb.New(ctx, cfg, logger)
	cols, err := store.ColumnSlice(ctx, "Activity", key, []byte("a"), []byte("m"))
	cols, err = store.ColumnsByPrefix(ctx, "Activity", key, []byte("idx:"))

FindAll issues one paginated query per distinct key with bounded
concurrency. Throttling and transient errors are retried with a linear
backoff. Writes go through BatchWriteItem and re-send unprocessed items.
*/
package ddb
