package leave

import (
	"sync"
	"time"
)

// SnapshotCache holds one point-in-time copy of every leave record, used by
// the status lookup to avoid a full store scan per request. The slot is
// invalidated by age only: mutations elsewhere (a cancel, a reviewer edit)
// are not reflected until the TTL expires, so a status read may lag a write
// by up to the TTL. That staleness window is part of the contract.
type SnapshotCache struct {
	mu         sync.Mutex
	ttl        time.Duration
	now        func() time.Time
	records    []LeaveRecord
	capturedAt time.Time
	populated  bool
}

// NewSnapshotCache builds a cache with the given TTL. A nil clock defaults
// to time.Now; tests inject a fake clock for deterministic expiry.
func NewSnapshotCache(ttl time.Duration, now func() time.Time) *SnapshotCache {
	if now == nil {
		now = time.Now
	}
	return &SnapshotCache{ttl: ttl, now: now}
}

// Get returns the cached snapshot if it is younger than the TTL.
func (c *SnapshotCache) Get() ([]LeaveRecord, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.populated || c.now().Sub(c.capturedAt) >= c.ttl {
		return nil, false
	}
	return c.records, true
}

// Put replaces the slot with a fresh snapshot and stamps its capture time.
func (c *SnapshotCache) Put(records []LeaveRecord) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.records = records
	c.capturedAt = c.now()
	c.populated = true
}
