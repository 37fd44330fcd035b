package discovery

import (
	"context"
	"errors"
	"sync"

	"go.uber.org/zap"

	"ptx/internal/domain"
)

// ErrNoPath is returned when Discover is called without a file path.
var ErrNoPath = errors.New("discovery: empty file path")

// Coordinator orchestrates parse strategies and owns the per-file cache. It
// tries each strategy in order until one succeeds with non-empty output,
// normalizes the flat result into an entity tree, and remembers the last good
// tree per file so a transient failure never blanks out a previously valid one.
type Coordinator struct {
	strategies  []Strategy
	cache       *Cache
	fingerprint FingerprintFunc
	log         *zap.Logger

	mu       sync.Mutex
	lastGood map[string][]*domain.TestEntity
}

// NewCoordinator creates a Coordinator over the given ordered strategies.
// A nil fingerprint function falls back to StatFingerprint.
func NewCoordinator(strategies []Strategy, cache *Cache, fingerprint FingerprintFunc, log *zap.Logger) *Coordinator {
	if cache == nil {
		cache = NewCache()
	}
	if fingerprint == nil {
		fingerprint = StatFingerprint
	}
	return &Coordinator{
		strategies:  strategies,
		cache:       cache,
		fingerprint: fingerprint,
		log:         log,
		lastGood:    make(map[string][]*domain.TestEntity),
	}
}

// Discover returns the test entity tree for the file. Expected failures
// (missing interpreter, unreadable file, malformed output) are recovered
// internally; the returned error is reserved for invalid arguments.
func (c *Coordinator) Discover(ctx context.Context, filePath string) ([]*domain.TestEntity, error) {
	if filePath == "" {
		return nil, ErrNoPath
	}
	if !IsTestFile(filePath) {
		c.log.Debug("not a test file", zap.String("file", filePath))
		return nil, nil
	}

	fingerprint, err := c.fingerprint(filePath)
	if err != nil {
		// File vanished or became unreadable: degrade to the last good tree.
		c.log.Warn("fingerprint failed, returning last known tree",
			zap.String("file", filePath), zap.Error(err))
		return c.lastGoodTree(filePath), nil
	}
	if tree, ok := c.cache.Get(filePath, fingerprint); ok {
		return tree, nil
	}

	var raws []RawTest
	for _, strategy := range c.strategies {
		found, err := strategy.Discover(ctx, filePath)
		if err != nil {
			c.log.Debug("strategy failed, falling through",
				zap.String("strategy", strategy.Name()),
				zap.String("file", filePath),
				zap.Error(err))
			continue
		}
		if len(found) == 0 {
			continue
		}
		raws = found
		break
	}

	tree := buildTree(raws)
	c.cache.Put(filePath, fingerprint, tree)
	c.rememberGood(filePath, tree)
	return tree, nil
}

// ClearCache drops all cached trees, forcing the next Discover to re-parse.
func (c *Coordinator) ClearCache() {
	c.cache.Clear()
}

func (c *Coordinator) rememberGood(path string, tree []*domain.TestEntity) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lastGood[path] = tree
}

func (c *Coordinator) lastGoodTree(path string) []*domain.TestEntity {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.lastGood[path]
}
