/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package registry

import (
	"fmt"
	"reflect"
	"sort"
	"sync"

	"github.com/suparena/columnorm/meta"
)

// The class registry maps Go entity types to their meta.Class and keeps
// column family names unique across types.

var (
	classRegistry  = make(map[reflect.Type]any)
	familyRegistry = make(map[string]reflect.Type)
	mu             sync.RWMutex
)

func typeOf[V any]() reflect.Type {
	return reflect.TypeOf((*V)(nil)).Elem()
}

// RegisterClass associates the Go type V with class. Registering V again
// replaces its class; claiming a column family already owned by another
// type is an error.
func RegisterClass[V any](class *meta.Class[V]) error {
	if class == nil || class.Family == "" {
		return fmt.Errorf("class registry: class for %v must name a column family", typeOf[V]())
	}
	t := typeOf[V]()

	mu.Lock()
	defer mu.Unlock()

	if owner, exists := familyRegistry[class.Family]; exists && owner != t {
		return fmt.Errorf("class registry: column family %q already registered by %v", class.Family, owner)
	}
	if prev, ok := classRegistry[t].(*meta.Class[V]); ok && prev.Family != class.Family {
		delete(familyRegistry, prev.Family)
	}
	classRegistry[t] = class
	familyRegistry[class.Family] = t
	return nil
}

// GetClass retrieves the class registered for type V, if any.
func GetClass[V any]() (*meta.Class[V], bool) {
	mu.RLock()
	defer mu.RUnlock()
	c, ok := classRegistry[typeOf[V]()].(*meta.Class[V])
	return c, ok
}

// UnregisterClass removes the class registered for type V.
func UnregisterClass[V any]() {
	t := typeOf[V]()

	mu.Lock()
	defer mu.Unlock()
	if c, ok := classRegistry[t].(*meta.Class[V]); ok {
		delete(familyRegistry, c.Family)
	}
	delete(classRegistry, t)
}

// Families returns the registered column family names in sorted order.
func Families() []string {
	mu.RLock()
	defer mu.RUnlock()
	names := make([]string, 0, len(familyRegistry))
	for name := range familyRegistry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
