// Package timeouts holds the timeout values used for database operations.
//
// Handlers pass these to context.WithTimeout so the limits stay consistent
// across the application. Values can be overridden per deployment through
// environment variables; otherwise the defaults apply.
package timeouts

import (
	"os"
	"time"
)

// Default timeout values.
const (
	DefaultPing    = 2 * time.Second
	DefaultConnect = 10 * time.Second
	DefaultBatch   = 60 * time.Second
)

// Ping returns the timeout for health checks.
// Override with TIMEOUT_PING (e.g. "2s", "500ms").
func Ping() time.Duration {
	return fromEnv("TIMEOUT_PING", DefaultPing)
}

// Connect returns the timeout for establishing the database connection
// at startup. Override with TIMEOUT_CONNECT.
func Connect() time.Duration {
	return fromEnv("TIMEOUT_CONNECT", DefaultConnect)
}

// Batch returns the timeout for bulk inserts and deletes.
// Override with TIMEOUT_BATCH.
func Batch() time.Duration {
	return fromEnv("TIMEOUT_BATCH", DefaultBatch)
}

func fromEnv(key string, def time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			return d
		}
	}
	return def
}
