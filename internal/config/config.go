package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config represents the configuration of the application
type Config struct {
	// Database driver: "sqlite3" or "postgres"
	DBDriver string
	// Path of the sqlite file or postgres connection URL
	DBDSN string
	// Port the HTTP server listens on
	ServerPort string
	// HMAC secret for identity tokens
	JWTSecret string
	// Lifetime of an identity token
	TokenTTL time.Duration
	// Origins allowed by CORS
	CORSOrigins []string
	// Maximum number of characters of an entry text
	EntryMaxLength int
	// Punctuation allowed in entry texts besides letters, digits and spaces
	EntryAllowedPunctuation string
	// How long a presented quiz attempt stays open
	AttemptTTL time.Duration
	// Time between sweeps of abandoned quiz attempts
	AttemptSweepInterval time.Duration
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		DBDriver:                "sqlite3",
		DBDSN:                   "data/vocabquiz.db",
		ServerPort:              "8080",
		JWTSecret:               "super-secret-key-change-me",
		TokenTTL:                time.Hour * 24,
		CORSOrigins:             []string{"http://localhost:3000"},
		EntryMaxLength:          250,
		EntryAllowedPunctuation: `.,;:!?'"()-/&`,
		AttemptTTL:              time.Hour * 2,
		AttemptSweepInterval:    time.Minute * 10,
	}
}

// Load builds the configuration from environment variables, falling back to the defaults
func Load() *Config {
	def := DefaultConfig()
	return &Config{
		DBDriver:                getEnv("DB_DRIVER", def.DBDriver),
		DBDSN:                   getEnv("DB_DSN", def.DBDSN),
		ServerPort:              getEnv("SERVER_PORT", def.ServerPort),
		JWTSecret:               getEnv("JWT_SECRET", def.JWTSecret),
		TokenTTL:                getDuration("TOKEN_TTL", def.TokenTTL),
		CORSOrigins:             getList("CORS_ORIGINS", def.CORSOrigins),
		EntryMaxLength:          getInt("ENTRY_MAX_LENGTH", def.EntryMaxLength),
		EntryAllowedPunctuation: getEnv("ENTRY_ALLOWED_PUNCTUATION", def.EntryAllowedPunctuation),
		AttemptTTL:              getDuration("ATTEMPT_TTL", def.AttemptTTL),
		AttemptSweepInterval:    getDuration("ATTEMPT_SWEEP_INTERVAL", def.AttemptSweepInterval),
	}
}

func getEnv(key, fallback string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return fallback
}

func getInt(key string, fallback int) int {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	n, err := strconv.Atoi(val)
	if err != nil || n <= 0 {
		log.Printf("Warning: invalid %s=%q, using %d", key, val, fallback)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	d, err := time.ParseDuration(val)
	if err != nil || d <= 0 {
		log.Printf("Warning: invalid %s=%q, using %s", key, val, fallback)
		return fallback
	}
	return d
}

func getList(key string, fallback []string) []string {
	val := os.Getenv(key)
	if val == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(val, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
