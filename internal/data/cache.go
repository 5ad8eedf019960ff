package data

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"
	"time"

	"market-fixtures/internal/model"

	"github.com/google/uuid"
)

// RunKind tells which generator produced a run.
type RunKind string

const (
	RunDecisions RunKind = "decisions"
	RunMarket    RunKind = "market"
)

// Run is one generated fixture held for later download.
type Run struct {
	ID        string
	Kind      RunKind
	Key       string
	Seed      uint32
	CreatedAt time.Time

	Decisions []model.Decision
	Market    *model.MarketSeries
}

// CacheEntry represents a cached run
type CacheEntry struct {
	Run       *Run
	ExpiresAt time.Time
}

// RunCache keeps generated runs in memory so their fixture files and charts
// can be fetched after the generating request returns. Identical requests
// (same Key) are served from the existing run while it is live.
type RunCache struct {
	mu         sync.RWMutex
	store      map[string]*CacheEntry
	byKey      map[string]string
	ttl        time.Duration
	maxEntries int
	now        func() time.Time
}

// DefaultMaxEntries bounds the cache when NewRunCache is given no limit.
const DefaultMaxEntries = 64

// NewRunCache creates a cache holding at most maxEntries runs for ttl each.
// When full, Put evicts the run closest to expiry.
func NewRunCache(ttl time.Duration, maxEntries int) *RunCache {
	if ttl <= 0 {
		ttl = time.Hour
	}
	if maxEntries <= 0 {
		maxEntries = DefaultMaxEntries
	}
	return &RunCache{
		store:      make(map[string]*CacheEntry),
		byKey:      make(map[string]string),
		ttl:        ttl,
		maxEntries: maxEntries,
		now:        time.Now,
	}
}

// Put stores run, assigning a fresh ID if it has none, and returns the ID.
func (c *RunCache) Put(run *Run) string {
	if run.ID == "" {
		run.ID = uuid.New().String()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = c.now()
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if _, exists := c.store[run.ID]; !exists {
		for len(c.store) >= c.maxEntries {
			c.evictOldestLocked()
		}
	}
	c.store[run.ID] = &CacheEntry{
		Run:       run,
		ExpiresAt: c.now().Add(c.ttl),
	}
	if run.Key != "" {
		c.byKey[run.Key] = run.ID
	}
	return run.ID
}

// Get retrieves a cached run if available and not expired
func (c *RunCache) Get(id string) (*Run, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, exists := c.store[id]
	if !exists {
		return nil, false
	}
	if c.now().After(entry.ExpiresAt) {
		return nil, false
	}
	return entry.Run, true
}

// Lookup finds a live run by request key.
func (c *RunCache) Lookup(key string) (*Run, bool) {
	c.mu.RLock()
	id, ok := c.byKey[key]
	c.mu.RUnlock()
	if !ok {
		return nil, false
	}
	run, ok := c.Get(id)
	if !ok || run.Key != key {
		return nil, false
	}
	return run, true
}

func (c *RunCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.store)
}

// Clear removes all entries from the cache
func (c *RunCache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.store = make(map[string]*CacheEntry)
	c.byKey = make(map[string]string)
}

// Prune removes expired entries and returns how many were dropped.
func (c *RunCache) Prune() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0
	for id, entry := range c.store {
		if now.After(entry.ExpiresAt) {
			c.deleteLocked(id, entry)
			n++
		}
	}
	return n
}

func (c *RunCache) evictOldestLocked() {
	var (
		oldestID string
		oldest   *CacheEntry
	)
	for id, entry := range c.store {
		if oldest == nil || entry.ExpiresAt.Before(oldest.ExpiresAt) {
			oldestID, oldest = id, entry
		}
	}
	if oldest != nil {
		c.deleteLocked(oldestID, oldest)
	}
}

func (c *RunCache) deleteLocked(id string, entry *CacheEntry) {
	delete(c.store, id)
	if c.byKey[entry.Run.Key] == id {
		delete(c.byKey, entry.Run.Key)
	}
}

// StartCleanup prunes expired entries every interval until stop is closed.
func (c *RunCache) StartCleanup(interval time.Duration, stop <-chan struct{}) {
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()

		for {
			select {
			case <-ticker.C:
				c.Prune()
			case <-stop:
				return
			}
		}
	}()
}

// GenerateCacheKey creates a cache key from the generator kind and its
// parameters (any value with a stable %+v rendering).
func GenerateCacheKey(kind RunKind, seed uint32, params any) string {
	keyStr := fmt.Sprintf("%s:%d:%+v", kind, seed, params)

	// Hash the key to keep it reasonably sized
	hash := sha256.Sum256([]byte(keyStr))
	return hex.EncodeToString(hash[:])
}
