package discovery

import (
	"fmt"
	"os"
	"sync"

	"ptx/internal/domain"
)

// FingerprintFunc derives a content fingerprint for a file. The default uses
// modification time and size; tests inject a deterministic one.
type FingerprintFunc func(path string) (string, error)

// StatFingerprint fingerprints a file by its modification time and size.
func StatFingerprint(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat %s: %w", path, err)
	}
	return fmt.Sprintf("%d-%d", info.ModTime().UnixNano(), info.Size()), nil
}

type cacheKey struct {
	path        string
	fingerprint string
}

// Cache retains the last parsed tree per (path, fingerprint). Entries are
// replaced atomically under the lock; keys are immutable, so a stale entry is
// simply never consulted again once the file changes.
type Cache struct {
	mu      sync.Mutex
	entries map[cacheKey][]*domain.TestEntity
}

// NewCache creates an empty Cache.
func NewCache() *Cache {
	return &Cache{entries: make(map[cacheKey][]*domain.TestEntity)}
}

// Get returns the cached tree for the exact file state, if present.
func (c *Cache) Get(path, fingerprint string) ([]*domain.TestEntity, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	tree, ok := c.entries[cacheKey{path, fingerprint}]
	return tree, ok
}

// Put stores the tree for the file state, dropping any entry for a previous
// fingerprint of the same path.
func (c *Cache) Put(path, fingerprint string, tree []*domain.TestEntity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for k := range c.entries {
		if k.path == path && k.fingerprint != fingerprint {
			delete(c.entries, k)
		}
	}
	c.entries[cacheKey{path, fingerprint}] = tree
}

// Clear removes every entry.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[cacheKey][]*domain.TestEntity)
}
