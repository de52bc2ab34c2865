package middleware

import (
	"bytes"
	"context"
	"crypto/sha1"
	"fmt"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"

	"github.com/iliyamo/restaurant-table-reservation/internal/config"
)

// bodyRecorder duplicates the response body into a buffer while
// streaming it to the client, so a successful listing can be stored
// after the handler has run. Bodies larger than limit are streamed
// but not recorded.
type bodyRecorder struct {
	http.ResponseWriter
	status   int
	buf      bytes.Buffer
	size     int
	limit    int
	overflow bool
}

func (w *bodyRecorder) WriteHeader(code int) {
	w.status = code
	w.ResponseWriter.WriteHeader(code)
}

func (w *bodyRecorder) Write(b []byte) (int, error) {
	w.size += len(b)
	if w.limit > 0 && w.size > w.limit {
		w.overflow = true
	} else {
		w.buf.Write(b)
	}
	return w.ResponseWriter.Write(b)
}

// NewRedisCache caches successful GET responses in redis under a key
// derived from the route and query string. It is applied only to the
// menu and table listings; both render the same JSON for every
// caller, so no identity enters the key. With caching disabled or no
// redis client available the middleware is a no-op.
func NewRedisCache(cfg config.CacheConfig, rdb *redis.Client) echo.MiddlewareFunc {
	if !cfg.Enabled || rdb == nil {
		return func(next echo.HandlerFunc) echo.HandlerFunc {
			return func(c echo.Context) error { return next(c) }
		}
	}
	ttl := cfg.TTL
	if ttl <= 0 {
		ttl = 30 * time.Second
	}

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			if c.Request().Method != http.MethodGet {
				return next(c)
			}

			sum := sha1.Sum([]byte(c.Path() + "?" + c.Request().URL.RawQuery))
			key := fmt.Sprintf("%s:%x", cfg.Prefix, sum)

			if body, err := rdb.Get(c.Request().Context(), key).Bytes(); err == nil {
				c.Response().Header().Set("X-Cache", "HIT")
				return c.JSONBlob(http.StatusOK, body)
			}

			rec := &bodyRecorder{
				ResponseWriter: c.Response().Writer,
				status:         http.StatusOK,
				limit:          cfg.MaxBodyBytes,
			}
			c.Response().Writer = rec
			c.Response().Header().Set("X-Cache", "MISS")

			if err := next(c); err != nil {
				return err
			}

			if rec.status == http.StatusOK && !rec.overflow && rec.buf.Len() > 0 {
				// The request context may already be done; storing the
				// entry is independent of the response.
				_ = rdb.SetEx(context.Background(), key, rec.buf.Bytes(), ttl).Err()
			}
			return nil
		}
	}
}
