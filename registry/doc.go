/*
Package registry maps Go entity types to their column family metadata.

Classes are registered once, typically during initialization:

	registry.RegisterClass(&meta.Class[*Activity]{
	    Name:     "Activity",
	    Family:   "Activity",
	    NewProxy: func(id []byte) *Activity { return &Activity{ID: string(id)} },
	    Fill:     fillActivity,
	})

and looked up by type wherever a lazy collection is built:

	class, ok := registry.GetClass[*Activity]()

A column family belongs to at most one Go type. The registry is thread-safe.
*/
package registry
