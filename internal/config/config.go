package config

import (
	"fmt"
	"log"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultTokenTTL = 8 * time.Hour

// Config holds the application configuration
type Config struct {
	DatabaseURL string
	Port        string

	// Admin identity. Missing values are not fatal at startup; login and
	// token verification report them as a configuration error instead.
	AdminEmail    string
	AdminPassword string
	JWTSecret     string
	TokenTTL      time.Duration

	// RedisURL selects the shared revocation store; empty means in-memory.
	RedisURL string

	// SMTP settings for new-lead emails. Empty SMTPHost disables sending.
	SMTPHost     string
	SMTPPort     int
	SMTPUsername string
	SMTPPassword string
	SMTPFrom     string

	// AMQPURL enables lead event publishing; empty disables it.
	AMQPURL string

	CORSAllowedOrigins []string

	// StrictStatus rejects unrecognized status values instead of coercing them to pending.
	StrictStatus bool
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	cfg := &Config{
		Port:     "8080", // default port
		TokenTTL: defaultTokenTTL,
		SMTPPort: 587,
	}

	// Load DATABASE_URL and log connection details (password masked)
	databaseURL := os.Getenv("DATABASE_URL")
	if databaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL environment variable is required")
	}
	cfg.DatabaseURL = databaseURL

	if u, err := url.Parse(databaseURL); err == nil {
		host := u.Hostname()
		if host == "" {
			host = "localhost"
		}
		port := u.Port()
		if port == "" {
			port = "5432"
		}
		dbName := strings.TrimPrefix(u.Path, "/")
		user := u.User.Username()
		if user == "" {
			user = "(none)"
		}
		log.Printf("DB connect: host=%s port=%s db=%s user=%s", host, port, dbName, user)
	}

	// Load PORT (optional, defaults to 8080)
	if port := os.Getenv("PORT"); port != "" {
		cfg.Port = port
	}

	cfg.AdminEmail = os.Getenv("ADMIN_EMAIL")
	cfg.AdminPassword = os.Getenv("ADMIN_PASSWORD")
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.AdminEmail == "" || cfg.AdminPassword == "" || cfg.JWTSecret == "" {
		log.Printf("WARNING: ADMIN_EMAIL, ADMIN_PASSWORD or JWT_SECRET is not set; admin login will fail")
	}

	if raw := os.Getenv("JWT_EXPIRES_IN"); raw != "" {
		ttl, err := time.ParseDuration(raw)
		if err != nil || ttl <= 0 {
			return nil, fmt.Errorf("JWT_EXPIRES_IN must be a positive duration (e.g. 8h), got %q", raw)
		}
		cfg.TokenTTL = ttl
	}

	cfg.RedisURL = os.Getenv("REDIS_URL")

	cfg.SMTPHost = os.Getenv("SMTP_HOST")
	if raw := os.Getenv("SMTP_PORT"); raw != "" {
		port, err := strconv.Atoi(raw)
		if err != nil || port <= 0 {
			return nil, fmt.Errorf("SMTP_PORT must be a positive integer, got %q", raw)
		}
		cfg.SMTPPort = port
	}
	cfg.SMTPUsername = os.Getenv("SMTP_USERNAME")
	cfg.SMTPPassword = os.Getenv("SMTP_PASSWORD")
	cfg.SMTPFrom = os.Getenv("SMTP_FROM")
	if cfg.SMTPHost != "" && cfg.SMTPFrom == "" {
		return nil, fmt.Errorf("SMTP_FROM is required when SMTP_HOST is set")
	}

	cfg.AMQPURL = os.Getenv("AMQP_URL")

	cfg.CORSAllowedOrigins = splitList(os.Getenv("CORS_ALLOWED_ORIGINS"))
	if len(cfg.CORSAllowedOrigins) == 0 {
		cfg.CORSAllowedOrigins = []string{"*"}
	}

	cfg.StrictStatus = os.Getenv("STRICT_STATUS") == "true"

	return cfg, nil
}

// splitList splits a comma-separated env value, dropping empty items
func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}
