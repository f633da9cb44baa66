package sysinfo

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/carverauto/datamodeld/pkg/datamodel"
)

// MemoryCacheTTL bounds how long a memory snapshot is reused before the OS
// is queried again.
const MemoryCacheTTL = 5 * time.Second

// MemorySnapshot holds one memory reading in kilobytes.
type MemorySnapshot struct {
	TotalKB uint64
	FreeKB  uint64
	UsedKB  uint64
}

// MemoryCache memoizes a single process-wide memory snapshot shared by the
// three memory attributes. The snapshot is refreshed lazily when a read
// finds it older than the TTL; within the TTL no OS query happens at all.
type MemoryCache struct {
	mu          sync.Mutex
	src         Source
	ttl         time.Duration
	snapshot    MemorySnapshot
	lastUpdated time.Time
}

// NewMemoryCache creates an empty cache over src. The first read always
// queries the OS.
func NewMemoryCache(src Source, ttl time.Duration) *MemoryCache {
	return &MemoryCache{src: src, ttl: ttl}
}

// Snapshot returns the cached reading, refreshing it first when stale. A
// failed refresh leaves the previous snapshot untouched and returns the
// error for this call only.
func (c *MemoryCache) Snapshot(ctx context.Context) (MemorySnapshot, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.src.Now()
	if !c.lastUpdated.IsZero() && now.Sub(c.lastUpdated) <= c.ttl {
		return c.snapshot, nil
	}

	stats, err := c.src.VirtualMemory(ctx)
	if err != nil {
		return MemorySnapshot{}, fmt.Errorf("%w: memory query: %w", datamodel.ErrAcquisition, err)
	}

	total := stats.Total / 1024
	// Reclaimable page cache and buffers count as free, matching what
	// `free` reports as available rather than strictly unused pages.
	free := (stats.Free + stats.Buffers + stats.Cached + stats.Sreclaimable) / 1024

	c.snapshot = MemorySnapshot{
		TotalKB: total,
		FreeKB:  free,
		UsedKB:  total - free,
	}
	c.lastUpdated = now

	return c.snapshot, nil
}
