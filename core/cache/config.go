package cache

import "time"

const (
	DriverMemory = "memory"
	DriverRedis  = "redis"
)

// Config holds configuration for the response cache.
type Config struct {
	// Driver selects the backend (memory, redis).
	Driver string `mapstructure:"driver" default:"memory"`
	// TTL is how long a cached page stays valid.
	TTL time.Duration `mapstructure:"ttl" default:"1h"`
	// MaxEntries bounds the memory driver. 0 means DefaultMaxEntries.
	MaxEntries int `mapstructure:"max_entries" default:"10000"`
	// RedisAddr is the host:port of the redis server.
	RedisAddr string `mapstructure:"redis_addr" default:"localhost:6379"`
	// RedisPassword is the redis password.
	RedisPassword string `mapstructure:"redis_password" default:""`
	// RedisDB is the redis database index.
	RedisDB int `mapstructure:"redis_db" default:"0"`
	// Prefix is prepended to every redis key.
	Prefix string `mapstructure:"prefix" default:"scrapper:"`
}
