/*
Package row implements the in-memory form of a wide-column row.

ByteKey wraps a raw byte sequence with a total order: unsigned lexicographic
comparison where a strict prefix sorts first. This is the same order Cassandra
comparators and DynamoDB binary sort keys use, so slices computed in memory
match slices computed by the store.

SortedRow keeps its columns in a B-tree keyed by ByteKey:

	r := row.New()
	r.SetKey(accountID)
	_ = r.Put([]byte("activity:0001"), storagemodels.Column{Value: v1})
	_ = r.Put([]byte("activity:0002"), storagemodels.Column{Value: v2})
	_ = r.Put([]byte("name"), storagemodels.Column{Value: name})

	r.Slice([]byte("activity:0001"), []byte("activity:0002")) // inclusive range
	r.ByPrefix([]byte("activity:"))                            // prefix run

Columns returns an ordered snapshot of the columns already held in memory.
RangeScanAll is the hook for an unfiltered scan streamed from the store; it
returns errors.ErrUnsupported.
*/
package row
