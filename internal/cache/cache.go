// internal/cache/cache.go
package cache

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/andresuchdata/retail-ops/internal/config"
)

// ReadModelCache memoizes serialized read-models keyed by snapshot
// version and filter hash. A cache is an optimization only: callers must
// treat every failure or miss as "recompute".
type ReadModelCache interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, payload []byte) error
	InvalidateAll(ctx context.Context) error
}

// New picks the backend from config: redis when configured, otherwise an
// in-process memory cache.
func New(cfg config.CacheConfig) (ReadModelCache, error) {
	switch cfg.Backend {
	case "redis":
		return newRedisCache(cfg)
	case "none":
		return Noop(), nil
	default:
		ttl := time.Duration(cfg.TTLSeconds) * time.Second
		return NewMemoryCache(ttl), nil
	}
}

// Key builds a deterministic cache key from the snapshot version, the
// read-model name and any filter parts. Parts are trimmed and sorted so
// equivalent filters share an entry. Case is preserved: the derivations
// match filters exactly, so "ST001" and "st001" are different filters
// and must not share a slot.
func Key(version, model string, parts ...string) string {
	normalized := make([]string, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		normalized = append(normalized, p)
	}
	sort.Strings(normalized)

	raw := version + "|" + model + "|" + strings.Join(normalized, "|")
	sum := sha1.Sum([]byte(raw))
	return "retailops:" + model + ":" + hex.EncodeToString(sum[:])
}

type memoryEntry struct {
	payload   []byte
	expiresAt time.Time
}

// MemoryCache is the default in-process backend.
type MemoryCache struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	ttl     time.Duration
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	if ttl <= 0 {
		ttl = time.Minute
	}
	return &MemoryCache{
		entries: make(map[string]memoryEntry),
		ttl:     ttl,
	}
}

func (c *MemoryCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || time.Now().After(entry.expiresAt) {
		return nil, false, nil
	}
	return entry.payload, true, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, payload []byte) error {
	c.mu.Lock()
	c.entries[key] = memoryEntry{
		payload:   payload,
		expiresAt: time.Now().Add(c.ttl),
	}
	c.mu.Unlock()
	return nil
}

func (c *MemoryCache) InvalidateAll(ctx context.Context) error {
	c.mu.Lock()
	c.entries = make(map[string]memoryEntry)
	c.mu.Unlock()
	return nil
}

type noopCache struct{}

// Noop returns a cache that stores nothing.
func Noop() ReadModelCache {
	return noopCache{}
}

func (noopCache) Get(ctx context.Context, key string) ([]byte, bool, error) { return nil, false, nil }
func (noopCache) Set(ctx context.Context, key string, payload []byte) error { return nil }
func (noopCache) InvalidateAll(ctx context.Context) error                   { return nil }
