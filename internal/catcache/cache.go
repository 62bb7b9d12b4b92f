// Package catcache provides the process-wide categorization cache mapping
// product names to resolved categories.
package catcache

import (
	"sync"

	"wraps/internal/model"
)

// Cache is a thread-safe name-to-category store. Entries never expire and
// are never evicted: once a name is resolved it stays resolved for the life
// of the process, bounded only by distinct-name cardinality. Construct one
// Cache per process and inject it wherever classification happens.
type Cache struct {
	entries map[string]model.Category
	mu      sync.RWMutex
}

// New creates an empty cache.
func New() *Cache {
	return &Cache{entries: make(map[string]model.Category)}
}

// Has reports whether a name has been explicitly resolved.
func (c *Cache) Has(name string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[name]
	return ok
}

// Get retrieves the resolved category for a name.
func (c *Cache) Get(name string) (model.Category, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	category, ok := c.entries[name]
	return category, ok
}

// Set stores a resolved category. Last write wins.
func (c *Cache) Set(name string, category model.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[name] = category
}

// SetMany stores a batch of resolved categories.
func (c *Cache) SetMany(categorizations map[string]model.Category) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for name, category := range categorizations {
		c.entries[name] = category
	}
}

// Size returns the number of resolved names.
func (c *Cache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]model.Category)
}

// All returns a copy of every cached categorization.
func (c *Cache) All() map[string]model.Category {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := make(map[string]model.Category, len(c.entries))
	for name, category := range c.entries {
		out[name] = category
	}
	return out
}
