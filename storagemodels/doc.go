/*
Package storagemodels defines the data structures shared by the row, index and
datastore layers.

Key Types:

Column:
One cell of a wide-column row:

	col := Column{
	    Name:      []byte("email"),
	    Value:     []byte("a@example.com"),
	    Timestamp: &ts,
	}

IndexColumn:
One index entry. ColumnName exists for logging only:

	ic := &IndexColumn{
	    IndexedValue: []byte("42"),
	    PrimaryKey:   accountKey,
	}
	clone := ic.Copy() // independent of ic

KeyValue:
A row key paired with what a batch fetch found for it. Missing rows are
reported with a nil Value rather than left out:

	type KeyValue[T any] struct {
	    Key   []byte
	    Value T
	}

FetchOptions:
Configuration for batch fetch behaviour:

	opts := []FetchOption{
	    WithMaxConcurrency(8),
	    WithMaxRetries(3),
	    WithBatchSize(25),
	}
*/
package storagemodels
