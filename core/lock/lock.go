package lock

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
)

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// ErrNotAcquired is returned when the context ends before the lock is obtained.
var ErrNotAcquired = errors.New("lock not acquired")

// Locker serializes access to a ledger across callers.
type Locker interface {
	// Acquire blocks until the lock for key is held or ctx is done.
	// The returned release function must be called exactly once.
	Acquire(ctx context.Context, key string) (release func(), err error)
}

// New builds the configured Locker.
func New(cfg Config) (Locker, error) {
	switch cfg.Driver {
	case DriverMemory, "":
		return NewMemoryLocker(), nil
	case DriverRedis:
		return NewRedisLocker(cfg)
	default:
		return nil, fmt.Errorf("unknown lock driver: %s", cfg.Driver)
	}
}

// MemoryLocker is a process-local Locker with one channel per key.
type MemoryLocker struct {
	mu    sync.Mutex
	slots map[string]chan struct{}
}

// NewMemoryLocker creates an empty MemoryLocker.
func NewMemoryLocker() *MemoryLocker {
	return &MemoryLocker{slots: make(map[string]chan struct{})}
}

func (m *MemoryLocker) slot(key string) chan struct{} {
	m.mu.Lock()
	defer m.mu.Unlock()
	ch, ok := m.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		m.slots[key] = ch
	}
	return ch
}

// Acquire implements Locker.
func (m *MemoryLocker) Acquire(ctx context.Context, key string) (func(), error) {
	ch := m.slot(key)
	select {
	case ch <- struct{}{}:
		var once sync.Once
		return func() { once.Do(func() { <-ch }) }, nil
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %s: %v", ErrNotAcquired, key, ctx.Err())
	}
}

// retryDelay is the wait between redis acquisition attempts, capped at maxRetryDelay.
func retryDelay(attempt int) time.Duration {
	const (
		baseRetryDelay = 10 * time.Millisecond
		maxRetryDelay  = 250 * time.Millisecond
	)
	d := baseRetryDelay << attempt
	if d <= 0 || d > maxRetryDelay {
		return maxRetryDelay
	}
	return d
}
