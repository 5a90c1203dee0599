package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only if this holder still owns it.
var releaseScript = redis.NewScript(`
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`)

// RedisLocker is a Locker shared by every instance pointing at the same redis.
type RedisLocker struct {
	client    *redis.Client
	keyPrefix string
	ttl       time.Duration
}

// NewRedisLocker connects to redis and verifies the connection.
func NewRedisLocker(cfg Config) (*RedisLocker, error) {
	client := redis.NewClient(&redis.Options{
		Addr:         cfg.RedisAddr,
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     10,
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}

	return newRedisLocker(client, cfg), nil
}

func newRedisLocker(client *redis.Client, cfg Config) *RedisLocker {
	ttl := time.Duration(cfg.TTLSeconds) * time.Second
	if ttl <= 0 {
		ttl = 30 * time.Second
	}
	prefix := cfg.KeyPrefix
	if prefix == "" {
		prefix = "stock-manager:lock"
	}
	return &RedisLocker{client: client, keyPrefix: prefix, ttl: ttl}
}

func (r *RedisLocker) redisKey(key string) string {
	return r.keyPrefix + ":" + key
}

// Acquire implements Locker using SET NX PX with a random token.
func (r *RedisLocker) Acquire(ctx context.Context, key string) (func(), error) {
	rkey := r.redisKey(key)
	token := uuid.NewString()

	for attempt := 0; ; attempt++ {
		ok, err := r.client.SetNX(ctx, rkey, token, r.ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("failed to acquire lock %s: %w", key, err)
		}
		if ok {
			return func() {
				// Release must not depend on the caller's (possibly cancelled) context.
				rctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				_ = releaseScript.Run(rctx, r.client, []string{rkey}, token).Err()
			}, nil
		}

		timer := time.NewTimer(retryDelay(attempt))
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, fmt.Errorf("%w: %s: %v", ErrNotAcquired, key, ctx.Err())
		case <-timer.C:
		}
	}
}

// Close closes the redis client.
func (r *RedisLocker) Close() error {
	return r.client.Close()
}
