// Package state holds the console's in-memory copies of backend resources.
// Lists are fetched once per view and then patched locally after each
// successful mutation instead of refetched.
package state

import "sync"

// Collection is a concurrency-safe ordered list of items addressed by a
// key. All mutations preserve the order items arrived in.
type Collection[T any] struct {
	mu    sync.RWMutex
	items []T
	key   func(T) string
}

// NewCollection creates a collection whose items are identified by key.
func NewCollection[T any](key func(T) string) *Collection[T] {
	return &Collection[T]{key: key}
}

// Replace swaps the entire contents for a freshly fetched list.
func (c *Collection[T]) Replace(items []T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = make([]T, len(items))
	copy(c.items, items)
}

// Items returns a copy of the current contents in order.
func (c *Collection[T]) Items() []T {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make([]T, len(c.items))
	copy(out, c.items)
	return out
}

// Len reports the number of items held.
func (c *Collection[T]) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.items)
}

// Append adds items to the end of the list.
func (c *Collection[T]) Append(items ...T) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.items = append(c.items, items...)
}

// Patch applies fn to the item with the given key, in place. It reports
// whether an item matched; a miss leaves the collection untouched.
func (c *Collection[T]) Patch(id string, fn func(*T)) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.key(c.items[i]) == id {
			fn(&c.items[i])
			return true
		}
	}
	return false
}

// Remove drops the item with the given key, preserving the order of the
// rest. It reports whether an item matched.
func (c *Collection[T]) Remove(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i := range c.items {
		if c.key(c.items[i]) == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			return true
		}
	}
	return false
}

// Find returns the item with the given key and whether it was present.
func (c *Collection[T]) Find(id string) (T, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for i := range c.items {
		if c.key(c.items[i]) == id {
			return c.items[i], true
		}
	}
	var zero T
	return zero, false
}
