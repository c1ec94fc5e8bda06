/*
Package collection implements lazily loaded to-many relations.

A LazyMap stands in for a related set of entities that live in another column
family. It is built from the raw row keys found on the owning entity and only
contacts the store the first time its contents are needed:

	activities := collection.New[string, *Activity](
	    account, fetcher, activityClass, account.ActivityIDs,
	    func(a *Activity) string { return a.ID },
	)

	activities.Len()                   // no I/O: number of keys
	a, ok, err := activities.Get(ctx, "a1") // one FindAll for all keys

At flush time the session diffs the collection against what was loaded:

	for _, a := range activities.ToBeAdded() { ... }
	for _, a := range activities.ToBeRemoved() { ... }

Clear never loads. A collection cleared before it was loaded treats the clear
as covering everything in the store and does not fetch on later access.

A row key that resolves to no row fails the load with an
errors.DataIntegrityError. Storage errors from the RowFetcher are returned
as is. A failed load leaves the collection unloaded so it can be retried.
*/
package collection
