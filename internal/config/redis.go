package config

import (
	"context"
	"crypto/tls"
	"os"
	"time"

	"github.com/redis/go-redis/v9"
)

// NewRedisClient builds a redis client from the environment. Redis
// backs the response cache for the public listings and the request
// rate limiter; neither is required for correctness, so when the
// server cannot be reached the constructor returns nil and both
// features are disabled.
//
// Variables: REDIS_ADDR (host:port) or REDIS_HOST + REDIS_PORT,
// REDIS_PASSWORD, REDIS_DB, REDIS_TLS.
func NewRedisClient() *redis.Client {
	addr := os.Getenv("REDIS_ADDR")
	if host, port := os.Getenv("REDIS_HOST"), os.Getenv("REDIS_PORT"); host != "" && port != "" {
		addr = host + ":" + port
	}
	if addr == "" {
		addr = "localhost:6379"
	}

	var tlsConf *tls.Config
	if boolOr("REDIS_TLS", false) {
		tlsConf = &tls.Config{InsecureSkipVerify: true}
	}

	client := redis.NewClient(&redis.Options{
		Addr:      addr,
		Password:  os.Getenv("REDIS_PASSWORD"),
		DB:        intOr("REDIS_DB", 0),
		TLSConfig: tlsConf,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil
	}
	return client
}
