package offlinerepo

import "time"

// WriteMode selects what the repository does with a write when the remote
// cannot commit it.
type WriteMode int

const (
	// WriteRemoteOnly surfaces the failure. Used for critical entities
	// whose integrity must not be silently compromised by offline
	// fallback: orders, payment methods.
	WriteRemoteOnly WriteMode = iota + 1

	// WriteLocalFallback stages the write in the local cache and reports
	// it as pending sync. Used for convenience entities whose loss is a
	// UX annoyance, not a correctness problem: cart, wishlist.
	WriteLocalFallback
)

// Config holds the per-entity policy knobs for a Repository.
type Config struct {
	// WriteMode picks the offline/failure behavior for writes and deletes.
	WriteMode WriteMode

	// MaxStaleness bounds how old a cached entry may be before fallback
	// reads refuse to serve it. Zero means no bound: cached data is served
	// for as long as the remote keeps failing.
	MaxStaleness time.Duration
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	if c.WriteMode != WriteRemoteOnly && c.WriteMode != WriteLocalFallback {
		return &ConfigError{Field: "WriteMode", Message: "must be WriteRemoteOnly or WriteLocalFallback"}
	}
	if c.MaxStaleness < 0 {
		return &ConfigError{Field: "MaxStaleness", Message: "must be non-negative"}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

// Error implements the error interface.
func (e *ConfigError) Error() string {
	return "config error in field " + e.Field + ": " + e.Message
}
