package config

import "time"

// CacheConfig controls the redis response cache applied to the menu
// and table listings. Those endpoints serve reference data that
// changes rarely, so successful GET responses are kept for TTL.
// Reservation endpoints are never cached.
type CacheConfig struct {
	Enabled      bool
	TTL          time.Duration
	Prefix       string
	MaxBodyBytes int
}

// LoadCacheConfig reads CACHE_* variables, with defaults suited to
// reference data: enabled, 30 second lifetime, 1 MiB body cap.
func LoadCacheConfig() CacheConfig {
	return CacheConfig{
		Enabled:      boolOr("CACHE_ENABLED", true),
		TTL:          durOr("CACHE_TTL", 30*time.Second),
		Prefix:       strOr("CACHE_PREFIX", "cache"),
		MaxBodyBytes: intOr("CACHE_MAX_BODY_BYTES", 1<<20),
	}
}
