package config // package config loads application configuration from environment variables

import (
	"log"
	"os"
	"strconv"
	"time"
)

// Config holds all runtime configuration values. Each field
// corresponds to an environment variable. The types reflect how the
// values are used in the application: strings for identifiers and
// secrets, ints for durations and costs.
type Config struct {
	Env            string // application environment (e.g. "dev", "prod")
	Port           string // HTTP port to listen on
	DBUser         string // database username
	DBPass         string // database password (optional)
	DBHost         string // database host address
	DBPort         string // database port number
	DBName         string // database name
	JWTSecret      string // secret used to sign JWTs
	AccessTTLHours int    // access token time-to-live in hours
	BcryptCost     int    // bcrypt cost for password hashing
}

// Load reads configuration values from environment variables and
// returns a Config. Required variables are enforced by must() and
// missing values cause the program to exit with a fatal log message.
// The token TTL and bcrypt cost have defaults matching the original
// deployment (24 hour sessions, cost 10).
func Load() Config {
	return Config{
		Env:            must("APP_ENV"),
		Port:           must("APP_PORT"),
		DBUser:         must("DB_USER"),
		DBPass:         os.Getenv("DB_PASS"), // empty allowed
		DBHost:         must("DB_HOST"),
		DBPort:         must("DB_PORT"),
		DBName:         must("DB_NAME"),
		JWTSecret:      must("JWT_SECRET"),
		AccessTTLHours: intOr("ACCESS_TOKEN_TTL_HOURS", 24),
		BcryptCost:     intOr("BCRYPT_COST", 10),
	}
}

// must retrieves the value of a required environment variable. If the
// variable is unset or empty, the application logs a fatal error and exits.
func must(key string) string {
	v, ok := os.LookupEnv(key)
	if !ok || v == "" {
		log.Fatalf("missing required env var: %s", key)
	}
	return v
}

// intOr retrieves an integer environment variable, falling back to
// def when unset. A value that fails to parse is fatal rather than
// silently ignored.
func intOr(key string, def int) int {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return def
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		log.Fatalf("invalid int for %s: %q", key, s)
	}
	return n
}

func strOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func boolOr(key string, def bool) bool {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return def
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		log.Fatalf("invalid bool for %s: %q", key, s)
	}
	return b
}

func durOr(key string, def time.Duration) time.Duration {
	s, ok := os.LookupEnv(key)
	if !ok || s == "" {
		return def
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		log.Fatalf("invalid duration for %s: %q", key, s)
	}
	return d
}
