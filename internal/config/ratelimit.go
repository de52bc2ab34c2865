package config

import "time"

// RateLimitConfig controls the redis token bucket in front of the
// API. Buckets are keyed per client IP, user and route; Capacity is
// the burst size and RefillTokens/RefillInterval the sustained rate.
// TTL bounds how long an idle bucket survives in redis.
type RateLimitConfig struct {
	Enabled        bool
	Capacity       int
	RefillTokens   int
	RefillInterval time.Duration
	TTL            time.Duration
	Prefix         string
}

// LoadRateLimitConfig reads RATE_LIMIT_* variables and clamps them
// to workable values. The defaults allow 60 requests in a burst with
// one token refilled per second.
func LoadRateLimitConfig() RateLimitConfig {
	cfg := RateLimitConfig{
		Enabled:        boolOr("RATE_LIMIT_ENABLED", true),
		Capacity:       intOr("RATE_LIMIT_CAPACITY", 60),
		RefillTokens:   intOr("RATE_LIMIT_REFILL_TOKENS", 1),
		RefillInterval: durOr("RATE_LIMIT_REFILL_INTERVAL", time.Second),
		TTL:            durOr("RATE_LIMIT_TTL", 10*time.Minute),
		Prefix:         strOr("RATE_LIMIT_PREFIX", "rl"),
	}
	if cfg.Capacity < 1 {
		cfg.Capacity = 1
	}
	if cfg.RefillTokens < 1 {
		cfg.RefillTokens = 1
	}
	if cfg.RefillInterval <= 0 {
		cfg.RefillInterval = time.Second
	}
	// An idle bucket must outlive a few refill intervals or clients
	// would never observe a full bucket again.
	if min := 5 * cfg.RefillInterval; cfg.TTL < min {
		cfg.TTL = min
	}
	return cfg
}
