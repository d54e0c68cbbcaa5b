package fixtures

import (
	"slices"
	"sync"

	"github.com/mmcdole/matchday/internal/domain"
)

// entryKey scopes a Key to one parent
type entryKey struct {
	parentID string
	key      Key
}

// Cache maps (parent, key) to an immutable fixture result set. Fixtures are
// deep-copied on the way in and out, venue and league refs included.
// Entries are never evicted; a cache lives as long as the view that owns it.
type Cache struct {
	mu      sync.RWMutex
	entries map[entryKey][]domain.Fixture
	order   map[string][]Key // insertion order of keys per parent
}

func NewCache() *Cache {
	return &Cache{
		entries: make(map[entryKey][]domain.Fixture),
		order:   make(map[string][]Key),
	}
}

// Seed installs data under key only if no entry exists yet.
// Returns true if the entry was installed.
func (c *Cache) Seed(parentID string, key Key, data []domain.Fixture) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	ek := entryKey{parentID, key}
	if _, ok := c.entries[ek]; ok {
		return false
	}
	c.store(ek, data)
	return true
}

// Get returns the entry for (parentID, key)
func (c *Cache) Get(parentID string, key Key) ([]domain.Fixture, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	data, ok := c.entries[entryKey{parentID, key}]
	if !ok {
		return nil, false
	}
	return cloneFixtures(data), true
}

// Put writes data under (parentID, key), replacing any existing entry
func (c *Cache) Put(parentID string, key Key, data []domain.Fixture) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.store(entryKey{parentID, key}, data)
}

// Keys returns the cached keys for a parent in insertion order
func (c *Cache) Keys(parentID string) []Key {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Clone(c.order[parentID])
}

// Len returns the total number of entries across all parents
func (c *Cache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.entries)
}

// Discard drops every entry belonging to parentID
func (c *Cache) Discard(parentID string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, k := range c.order[parentID] {
		delete(c.entries, entryKey{parentID, k})
	}
	delete(c.order, parentID)
}

// store must be called with mu held
func (c *Cache) store(ek entryKey, data []domain.Fixture) {
	if _, exists := c.entries[ek]; !exists {
		c.order[ek.parentID] = append(c.order[ek.parentID], ek.key)
	}
	c.entries[ek] = cloneFixtures(data)
}

// cloneFixtures copies data and the refs each fixture points at.
// The result is never nil so an empty successful fetch is still a hit.
func cloneFixtures(data []domain.Fixture) []domain.Fixture {
	out := make([]domain.Fixture, len(data))
	for i, f := range data {
		if f.Venue != nil {
			v := *f.Venue
			f.Venue = &v
		}
		if f.League != nil {
			l := *f.League
			f.League = &l
		}
		out[i] = f
	}
	return out
}
