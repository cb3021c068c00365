package testutil

import (
	"fmt"
	"net/url"
	"os"
)

// DatabaseConfig holds configuration for connecting to an existing
// PostgreSQL server.
type DatabaseConfig struct {
	URL string
}

// GetDatabaseConfig reads database configuration from environment variables.
// If DATABASE_URL is set, it is used as is. Otherwise DATABASE_HOST and its
// companions build a URL. An empty config signals to use testcontainers.
func GetDatabaseConfig() DatabaseConfig {
	if u := os.Getenv("DATABASE_URL"); u != "" {
		return DatabaseConfig{URL: u}
	}

	host := os.Getenv("DATABASE_HOST")
	if host != "" {
		return DatabaseConfig{
			URL: buildDatabaseURL(
				getEnv("DATABASE_USER", "postgres"),
				getEnv("DATABASE_PASSWORD", ""),
				host,
				getEnv("DATABASE_PORT", "5432"),
				getEnv("DATABASE_NAME", "postgres"),
				getEnv("DATABASE_SSLMODE", "prefer"),
			),
		}
	}

	return DatabaseConfig{}
}

// buildDatabaseURL constructs a PostgreSQL connection URL.
func buildDatabaseURL(user, password, host, port, dbname, sslmode string) string {
	u := url.URL{
		Scheme:   "postgres",
		Host:     host + ":" + port,
		Path:     "/" + dbname,
		RawQuery: fmt.Sprintf("sslmode=%s", url.QueryEscape(sslmode)),
	}
	if password != "" {
		u.User = url.UserPassword(user, password)
	} else {
		u.User = url.User(user)
	}
	return u.String()
}

// getEnv gets an environment variable with a fallback default value.
func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}
