package inventory

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"stock-manager/core/reconcile"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countingLoader(calls *int32, block chan struct{}) func(context.Context) (*reconcile.Inventory, error) {
	return func(context.Context) (*reconcile.Inventory, error) {
		atomic.AddInt32(calls, 1)
		if block != nil {
			<-block
		}
		p := &reconcile.Product{ID: uuid.New(), Name: "Milk", Barcode: "1"}
		return reconcile.NewInventory(reconcile.NewCatalog(p), nil), nil
	}
}

func TestSnapshotCache_ReusesFreshSnapshot(t *testing.T) {
	var calls int32
	cache := newSnapshotCache(time.Minute, countingLoader(&calls, nil))

	first, err := cache.get(context.Background())
	require.NoError(t, err)
	second, err := cache.get(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))

	cache.invalidate()
	_, err = cache.get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestSnapshotCache_ZeroTTLDisablesCaching(t *testing.T) {
	var calls int32
	cache := newSnapshotCache(0, countingLoader(&calls, nil))

	for i := 0; i < 3; i++ {
		_, err := cache.get(context.Background())
		require.NoError(t, err)
	}
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestSnapshotCache_SingleflightPreventsStampede(t *testing.T) {
	var calls int32
	block := make(chan struct{})
	cache := newSnapshotCache(time.Minute, countingLoader(&calls, block))

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			snap, err := cache.get(context.Background())
			assert.NoError(t, err)
			assert.Len(t, snap.products, 1)
		}()
	}

	// Let every goroutine reach the singleflight group before releasing the load.
	time.Sleep(50 * time.Millisecond)
	close(block)
	wg.Wait()

	assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
}

func TestSnapshotCache_LoadError(t *testing.T) {
	cache := newSnapshotCache(time.Minute, func(context.Context) (*reconcile.Inventory, error) {
		return nil, errors.New("db down")
	})

	snap, err := cache.get(context.Background())
	assert.EqualError(t, err, "db down")
	assert.Nil(t, snap)
}

func TestSnapshotCache_InvalidateDuringLoad(t *testing.T) {
	var calls int32
	started := make(chan struct{})
	release := make(chan struct{})
	cache := newSnapshotCache(time.Hour, func(context.Context) (*reconcile.Inventory, error) {
		n := atomic.AddInt32(&calls, 1)
		if n == 1 {
			close(started)
			<-release
		}
		p := &reconcile.Product{ID: uuid.New(), Name: "Milk", Barcode: strconv.Itoa(int(n))}
		return reconcile.NewInventory(reconcile.NewCatalog(p), nil), nil
	})

	done := make(chan *snapshot)
	go func() {
		snap, err := cache.get(context.Background())
		assert.NoError(t, err)
		done <- snap
	}()

	<-started
	cache.invalidate()

	// A reader after the invalidate does not join the running load.
	fresh, err := cache.get(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "2", fresh.products[0].Barcode)

	close(release)
	stale := <-done
	assert.Equal(t, "1", stale.products[0].Barcode)

	// The stale load finished last but was not stored.
	again, err := cache.get(context.Background())
	require.NoError(t, err)
	assert.Same(t, fresh, again)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
