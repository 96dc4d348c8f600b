// Package cache memoizes resolved service quotes for the lifetime of a process.
package cache

import (
	"sync"

	"github.com/andygrunwald/repair-price-scraper/internal/models"
)

// Key identifies a resolution request.
type Key struct {
	Service string
	ZipCode string
	Year    string
	Make    string
	Model   string
}

// KeyFor builds the cache key of a request.
func KeyFor(req models.QuoteRequest) Key {
	return Key{
		Service: req.Service,
		ZipCode: req.ZipCode,
		Year:    req.Vehicle.Year,
		Make:    req.Vehicle.Make,
		Model:   req.Vehicle.Model,
	}
}

// Cache is an unbounded quote cache. Entries are never evicted.
// It is safe for concurrent use.
type Cache struct {
	mu      sync.RWMutex
	entries map[Key]models.ServiceQuote
}

// New creates an empty Cache.
func New() *Cache {
	return &Cache{
		entries: make(map[Key]models.ServiceQuote),
	}
}

// Get returns a copy of the quote stored under key. Changing the copy
// does not change the cached entry.
func (c *Cache) Get(key Key) (models.ServiceQuote, bool) {
	c.mu.RLock()
	q, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok {
		return models.ServiceQuote{}, false
	}
	return q.Clone(), true
}

// Set stores a copy of quote under key, replacing any previous entry.
func (c *Cache) Set(key Key, quote models.ServiceQuote) {
	quote = quote.Clone()
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries[key] = quote
}

// Len returns the number of cached quotes.
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}
