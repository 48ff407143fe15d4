package report

import (
	"crypto/sha256"
	"encoding/hex"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/soundprediction/globescope/pkg/types"
)

// Cache is an in-memory TTL cache for orchestration reports. Repeated
// analyses of the same topic within the TTL reuse the stored report instead
// of re-running every backend query.
type Cache struct {
	mu      sync.RWMutex
	entries map[string]cacheEntry
	ttl     time.Duration
	now     func() time.Time
}

type cacheEntry struct {
	report  types.Report
	expires time.Time
}

func NewCache(ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	return &Cache{
		entries: make(map[string]cacheEntry),
		ttl:     ttl,
		now:     time.Now,
	}
}

// Get returns the cached report for the given search, if one is still fresh.
func (c *Cache) Get(params types.SearchParams, topic string) (types.Report, bool) {
	key := CacheKey(params, topic)

	c.mu.RLock()
	entry, ok := c.entries[key]
	c.mu.RUnlock()
	if !ok || c.now().After(entry.expires) {
		return nil, false
	}
	return entry.report, true
}

// Put stores a report under the search's cache key.
func (c *Cache) Put(params types.SearchParams, topic string, rep types.Report) {
	key := CacheKey(params, topic)

	c.mu.Lock()
	c.entries[key] = cacheEntry{report: rep, expires: c.now().Add(c.ttl)}
	c.mu.Unlock()
}

// Purge drops expired entries. Callers may run it periodically; Get already
// ignores stale entries, so purging only reclaims memory.
func (c *Cache) Purge() {
	now := c.now()
	c.mu.Lock()
	for key, entry := range c.entries {
		if now.After(entry.expires) {
			delete(c.entries, key)
		}
	}
	c.mu.Unlock()
}

// CacheKey hashes the normalized search inputs. Field order inside each
// slice does not matter; two requests asking for the same thing in a
// different order share a key.
func CacheKey(params types.SearchParams, topic string) string {
	var sb strings.Builder
	sb.WriteString(strings.ToLower(strings.TrimSpace(topic)))
	sb.WriteByte('\n')
	for _, group := range [][]string{params.Keywords, params.Entities, params.Locations, params.Themes, params.TargetCountries} {
		normalized := make([]string, 0, len(group))
		for _, v := range group {
			normalized = append(normalized, strings.ToLower(strings.TrimSpace(v)))
		}
		sort.Strings(normalized)
		sb.WriteString(strings.Join(normalized, ","))
		sb.WriteByte('\n')
	}
	if params.EventDate != nil {
		sb.WriteString(params.EventDate.UTC().Format("2006-01-02"))
	}

	sum := sha256.Sum256([]byte(sb.String()))
	return hex.EncodeToString(sum[:])
}
