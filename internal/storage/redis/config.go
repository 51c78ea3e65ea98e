package redis

import "time"

// Config holds Redis connection and behavior settings
type Config struct {
	// URL is the Redis connection URL (e.g., redis://localhost:6379)
	URL string

	// Namespace isolates one client's session from others sharing the
	// same Redis instance (e.g., per-device or per-kiosk identifier)
	Namespace string

	// Pool settings
	PoolSize     int
	MinIdleConns int

	// SessionTTL bounds how long a stored credential/profile survives
	// without being rewritten. Zero means no expiry.
	SessionTTL time.Duration
}

// DefaultConfig returns sensible defaults for Redis configuration
func DefaultConfig() Config {
	return Config{
		URL:          "redis://localhost:6379",
		Namespace:    "default",
		PoolSize:     10,
		MinIdleConns: 2,
		SessionTTL:   0,
	}
}
