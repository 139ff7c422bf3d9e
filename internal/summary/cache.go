package summary

import (
	"encoding/json"
	"sync"

	"caselink/internal/platform/storage"
)

// Cache maps case id to the summary generated for it this session. At most
// one entry per case; a new generation overwrites the prior one. State is
// snapshotted to tab-session storage alongside the session record.
type Cache struct {
	mu        sync.RWMutex
	summaries map[int]OverallSummary
	storage   storage.Storage
}

// NewCache builds a Cache over tab-session storage, recovering any snapshot
// a previous load of this session wrote. A corrupt snapshot starts empty.
func NewCache(store storage.Storage) *Cache {
	c := &Cache{summaries: make(map[int]OverallSummary), storage: store}

	raw, err := store.Load(cacheKey)
	if err == nil {
		var snap cacheSnapshot
		if json.Unmarshal(raw, &snap) == nil && snap.Summaries != nil {
			c.summaries = snap.Summaries
		}
	}
	return c
}

// SetSummary overwrites any existing entry for caseID.
func (c *Cache) SetSummary(caseID int, s OverallSummary) {
	c.mu.Lock()
	c.summaries[caseID] = s
	c.persistLocked()
	c.mu.Unlock()
}

// GetSummary returns the entry for caseID, or false. Pure read, no side
// effects.
func (c *Cache) GetSummary(caseID int) (OverallSummary, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	s, ok := c.summaries[caseID]
	return s, ok
}

// ClearSummaries empties the whole map; used on logout or explicit reset.
func (c *Cache) ClearSummaries() {
	c.mu.Lock()
	c.summaries = make(map[int]OverallSummary)
	c.persistLocked()
	c.mu.Unlock()
}

func (c *Cache) persistLocked() {
	raw, err := json.Marshal(cacheSnapshot{Summaries: c.summaries})
	if err != nil {
		return
	}
	_ = c.storage.Save(cacheKey, raw)
}
