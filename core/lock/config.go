package lock

// Config holds configuration for ledger locking.
type Config struct {
	// Driver selects the lock backend (memory, redis).
	Driver string `mapstructure:"driver" default:"memory"`
	// RedisAddr is the redis address used by the redis driver.
	RedisAddr string `mapstructure:"redis_addr" default:"localhost:6379"`
	// RedisPassword is the redis password.
	RedisPassword string `mapstructure:"redis_password" default:""`
	// RedisDB is the redis database index.
	RedisDB int `mapstructure:"redis_db" default:"0"`
	// KeyPrefix namespaces lock keys in redis.
	KeyPrefix string `mapstructure:"key_prefix" default:"stock-manager:lock"`
	// TTLSeconds bounds how long a crashed holder can keep the lock.
	TTLSeconds int `mapstructure:"ttl_seconds" default:"30"`
}
