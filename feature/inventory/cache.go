package inventory

import (
	"context"
	"strconv"
	"sync"
	"time"

	"stock-manager/core/reconcile"

	"golang.org/x/sync/singleflight"
)

// snapshot is a read-only copy of the catalog and ledger served to listing requests.
type snapshot struct {
	products []*reconcile.Product
	lots     []*reconcile.StockLot
	built    time.Time
	ttl      time.Duration
}

// isExpired returns true if this snapshot has outlived its TTL.
func (s *snapshot) isExpired() bool {
	if s.ttl == 0 {
		return true // No caching
	}
	return time.Since(s.built) > s.ttl
}

// snapshotCache keeps the latest snapshot for listing requests.
// Saves in this process invalidate it; writes from other instances are seen after the TTL.
type snapshotCache struct {
	mu      sync.RWMutex
	current *snapshot
	// gen is bumped by invalidate. A load started under an older gen is not stored.
	gen     uint64
	ttl     time.Duration
	sf      singleflight.Group
	load    func(ctx context.Context) (*reconcile.Inventory, error)
}

func newSnapshotCache(ttl time.Duration, load func(ctx context.Context) (*reconcile.Inventory, error)) *snapshotCache {
	return &snapshotCache{ttl: ttl, load: load}
}

// get returns a fresh snapshot, loading at most once for concurrent callers.
func (c *snapshotCache) get(ctx context.Context) (*snapshot, error) {
	// Fast path
	c.mu.RLock()
	cur, gen := c.current, c.gen
	c.mu.RUnlock()

	if cur != nil && !cur.isExpired() {
		return cur, nil
	}

	// Keyed by generation so callers after an invalidate never join an older load.
	result, err, _ := c.sf.Do("snapshot:"+strconv.FormatUint(gen, 10), func() (any, error) {
		c.mu.RLock()
		cur := c.current
		c.mu.RUnlock()

		if cur != nil && !cur.isExpired() {
			return cur, nil
		}

		inv, err := c.load(ctx)
		if err != nil {
			return nil, err
		}
		snap := &snapshot{
			products: append([]*reconcile.Product{}, inv.Catalog.All()...),
			lots:     append([]*reconcile.StockLot{}, inv.Ledger.All()...),
			built:    time.Now(),
			ttl:      c.ttl,
		}

		c.mu.Lock()
		if c.gen == gen {
			c.current = snap
		}
		c.mu.Unlock()

		return snap, nil
	})
	if err != nil {
		return nil, err
	}

	return result.(*snapshot), nil
}

// invalidate drops the current snapshot.
func (c *snapshotCache) invalidate() {
	c.mu.Lock()
	c.current = nil
	c.gen++
	c.mu.Unlock()
}
