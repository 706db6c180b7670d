// Package config handles loading application configuration from environment
// variables. All config is centralized here so no other package reads env
// vars directly. Sensible defaults are provided for development. The Config
// struct is built once in main and is read-only afterwards.
package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-sql-driver/mysql"
)

// Config holds all application configuration. Populated from environment
// variables at startup. Passed to other packages via dependency injection.
type Config struct {
	// Env is the runtime environment: "development" or "production".
	Env string

	// Port is the HTTP listen port (default: 8000).
	Port int

	// BaseURL is the public-facing URL used for links and CORS.
	BaseURL string

	// CORSOrigins are the origins allowed to call the API cross-origin
	// (the React frontend in development runs on its own port).
	CORSOrigins []string

	// Database holds MariaDB connection settings.
	Database DatabaseConfig

	// Auth holds token signing and credential settings.
	Auth AuthConfig

	// Page holds pagination limits shared by every list endpoint.
	Page PageConfig
}

// DatabaseConfig holds MariaDB connection parameters. Individual fields
// (Host, User, Password, Name) are read from separate env vars so container
// orchestrators can manage each independently. If DATABASE_URL is set, it
// takes precedence over the individual fields.
type DatabaseConfig struct {
	// Host is the MariaDB address in host:port format (default: "localhost:3306").
	// If no port is specified, 3306 is appended automatically.
	Host string

	// User is the MariaDB username (default: "myblog").
	User string

	// Password is the MariaDB password (default: "myblog").
	Password string

	// Name is the database name (default: "myblog").
	Name string

	// dsnOverride is set when DATABASE_URL is provided, bypassing individual fields.
	dsnOverride string

	// MaxOpenConns is the maximum number of open connections in the pool.
	MaxOpenConns int

	// MaxIdleConns is the maximum number of idle connections in the pool.
	MaxIdleConns int

	// ConnMaxLifetime is how long a connection can be reused.
	ConnMaxLifetime time.Duration
}

// DSN returns the go-sql-driver/mysql connection string. If DATABASE_URL was
// set, it is returned as-is. Otherwise the DSN is built from the individual
// Host/User/Password/Name fields using the driver's Config.FormatDSN()
// to safely handle special characters in passwords.
func (d DatabaseConfig) DSN() string {
	if d.dsnOverride != "" {
		return d.dsnOverride
	}
	cfg := mysql.NewConfig()
	cfg.User = d.User
	cfg.Passwd = d.Password
	cfg.Net = "tcp"
	cfg.Addr = ensurePort(d.Host, "3306")
	cfg.DBName = d.Name
	cfg.ParseTime = true
	return cfg.FormatDSN()
}

// ensurePort appends the default port if the host string doesn't include one.
// Allows users to set DB_HOST=mydb (gets :3306) or DB_HOST=mydb:3307 (as-is).
func ensurePort(host, defaultPort string) string {
	_, _, err := net.SplitHostPort(host)
	if err != nil {
		return net.JoinHostPort(host, defaultPort)
	}
	return host
}

// AuthConfig holds token signing and credential settings.
type AuthConfig struct {
	// SecretKey signs access tokens. Must be set (32+ chars) in production.
	SecretKey string

	// Algorithm is the JWT signing algorithm name (default: "HS256").
	Algorithm string

	// TokenTTL is how long an issued access token stays valid.
	TokenTTL time.Duration
}

// PageConfig holds pagination limits applied across all list endpoints.
type PageConfig struct {
	// DefaultSize is the page size used when the client omits ?size.
	DefaultSize int

	// MaxSize caps the page size regardless of what the client requests.
	MaxSize int
}

// Load reads configuration from environment variables with sensible defaults.
// Returns an error if required variables are missing or invalid.
func Load() (*Config, error) {
	cfg := &Config{
		Env:         getEnv("ENV", "development"),
		Port:        getEnvInt("PORT", 8000),
		BaseURL:     getEnv("BASE_URL", "http://localhost:8000"),
		CORSOrigins: splitAndTrim(getEnv("CORS_ORIGINS", "http://localhost:3000,http://127.0.0.1:3000")),

		Database: DatabaseConfig{
			Host:            getEnv("DB_HOST", "localhost:3306"),
			User:            getEnv("DB_USER", "myblog"),
			Password:        getEnv("DB_PASSWORD", "myblog"),
			Name:            getEnv("DB_NAME", "myblog"),
			dsnOverride:     getEnv("DATABASE_URL", ""),
			MaxOpenConns:    getEnvInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns:    getEnvInt("DB_MAX_IDLE_CONNS", 5),
			ConnMaxLifetime: getEnvDuration("DB_CONN_MAX_LIFETIME", 5*time.Minute),
		},

		Auth: AuthConfig{
			SecretKey: getEnv("SECRET_KEY", ""),
			Algorithm: getEnv("TOKEN_ALGORITHM", "HS256"),
			TokenTTL:  getEnvDuration("TOKEN_TTL", 24*time.Hour),
		},

		Page: PageConfig{
			DefaultSize: getEnvInt("DEFAULT_PAGE_SIZE", 10),
			MaxSize:     getEnvInt("MAX_PAGE_SIZE", 100),
		},
	}

	if cfg.Page.DefaultSize < 1 || cfg.Page.MaxSize < 1 {
		return nil, fmt.Errorf("page sizes must be positive (default=%d, max=%d)",
			cfg.Page.DefaultSize, cfg.Page.MaxSize)
	}
	if cfg.Page.DefaultSize > cfg.Page.MaxSize {
		return nil, fmt.Errorf("DEFAULT_PAGE_SIZE (%d) exceeds MAX_PAGE_SIZE (%d)",
			cfg.Page.DefaultSize, cfg.Page.MaxSize)
	}

	// Validate required fields in production. Case-insensitive check catches
	// common variants like "Production", "prod", etc.
	envLower := strings.ToLower(cfg.Env)
	if envLower == "production" || envLower == "prod" {
		if cfg.Auth.SecretKey == "" {
			return nil, fmt.Errorf("SECRET_KEY is required in production")
		}
		if len(cfg.Auth.SecretKey) < 32 {
			return nil, fmt.Errorf("SECRET_KEY must be at least 32 characters in production")
		}
	}

	// Provide a dev-only default secret so local dev works without .env.
	if cfg.Auth.SecretKey == "" {
		cfg.Auth.SecretKey = "dev-secret-key-do-not-use-in-production!!"
	}

	return cfg, nil
}

// IsDevelopment returns true if running in development mode.
func (c *Config) IsDevelopment() bool {
	env := strings.ToLower(c.Env)
	return env == "development" || env == "dev"
}

// --- Helper functions for reading environment variables ---

// getEnv reads a string env var or returns the default.
func getEnv(key, defaultVal string) string {
	if val, ok := os.LookupEnv(key); ok {
		return val
	}
	return defaultVal
}

// getEnvInt reads an integer env var or returns the default.
func getEnvInt(key string, defaultVal int) int {
	if val, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}

// getEnvDuration reads a duration env var (e.g., "24h") or returns the default.
func getEnvDuration(key string, defaultVal time.Duration) time.Duration {
	if val, ok := os.LookupEnv(key); ok {
		if d, err := time.ParseDuration(val); err == nil {
			return d
		}
	}
	return defaultVal
}

// splitAndTrim splits a comma-separated env value into trimmed entries,
// discarding empties.
func splitAndTrim(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
