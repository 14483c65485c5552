package notify

// Config holds configuration for event delivery.
type Config struct {
	// Sinks lists enabled sinks (log, redis).
	Sinks []string `mapstructure:"sinks" default:"log"`
	// RedisChannel is the pub/sub channel of the redis sink.
	RedisChannel string `mapstructure:"redis_channel" default:"scrapper:events"`
	// QueueSize bounds the number of pending events.
	QueueSize int `mapstructure:"queue_size" default:"256"`
}
