/*
Package columnorm maps Go entities onto column-oriented, sort-ordered key-value
stores such as DynamoDB, Cassandra or HBase.

The library is built from small layers:
  - row: byte-ordered keys and the in-memory SortedRow with range and prefix reads
  - storagemodels: columns, index columns and fetch options
  - datastore: RowFetcher and RowStore interfaces, with DynamoDB and in-memory implementations
  - meta and registry: typed entity classes in place of reflection
  - collection: LazyMap, a to-many relation that loads on first use and tracks changes
  - index: secondary indexes stored as sorted rows

Basic Usage:

	// Route column families to stores
	router := columnorm.NewRouter(nil)
	store, _ := ddb.NewStore(ctx, cfg)
	router.Register("Activity", store)

	// Describe the entity once
	registry.RegisterClass(activityClass)

	// Build a relation from the keys stored on the owner
	activities, _ := collection.NewFromRegistry[string, *Activity](
	    account, router, account.ActivityIDs, func(a *Activity) string { return a.ID })

	n := activities.Len()                        // no I/O
	a, ok, err := activities.Get(ctx, "a1")      // loads every member once

	// At flush time
	added, removed := activities.ToBeAdded(), activities.ToBeRemoved()

Joins across partitions are not supported.
*/
package columnorm
