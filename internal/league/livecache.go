// internal/league/livecache.go
package league

import (
	"sync"
	"time"

	"github.com/hafsaahmed614/TamkeenLeague/internal/models"
)

// Clock interface for testing time-dependent behavior.
type Clock interface {
	Now() time.Time
}

// realClock implements Clock using the system time.
type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

type cacheEntry struct {
	score     models.GameScore
	expiresAt time.Time
}

// LiveScoreCache is a small in-process read cache for per-game live scores.
// Entries live at most one TTL; every ledger write for a game evicts its
// entry, so staleness never survives a write. A zero TTL disables caching.
type LiveScoreCache struct {
	mu      sync.Mutex
	entries map[int64]cacheEntry
	ttl     time.Duration
	clock   Clock
}

func NewLiveScoreCache(ttl time.Duration, clock Clock) *LiveScoreCache {
	if clock == nil {
		clock = realClock{}
	}
	return &LiveScoreCache{
		entries: make(map[int64]cacheEntry),
		ttl:     ttl,
		clock:   clock,
	}
}

// Get returns the cached score for a game if present and unexpired.
func (c *LiveScoreCache) Get(gameID int64) (models.GameScore, bool) {
	if c == nil || c.ttl <= 0 {
		return models.GameScore{}, false
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	entry, ok := c.entries[gameID]
	if !ok {
		return models.GameScore{}, false
	}
	if c.clock.Now().After(entry.expiresAt) {
		delete(c.entries, gameID)
		return models.GameScore{}, false
	}
	return entry.score, true
}

// Set stores a freshly computed score for a game.
func (c *LiveScoreCache) Set(gameID int64, score models.GameScore) {
	if c == nil || c.ttl <= 0 {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[gameID] = cacheEntry{
		score:     score,
		expiresAt: c.clock.Now().Add(c.ttl),
	}
}

// Invalidate drops a game's cached score. Called on every append, undo,
// finalize, and game delete.
func (c *LiveScoreCache) Invalidate(gameID int64) {
	if c == nil {
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.entries, gameID)
}

// Sweep evicts all expired entries and returns how many were removed. The
// scheduler calls this periodically so a quiet process does not hold dead
// entries; correctness never depends on it.
func (c *LiveScoreCache) Sweep() int {
	if c == nil {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.clock.Now()
	removed := 0
	for gameID, entry := range c.entries {
		if now.After(entry.expiresAt) {
			delete(c.entries, gameID)
			removed++
		}
	}
	return removed
}

// Len reports the number of cached entries, expired or not.
func (c *LiveScoreCache) Len() int {
	if c == nil {
		return 0
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}
