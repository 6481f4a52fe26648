package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// Auth
	ResumatchAPIKey string

	// Persistence: a SQLite path or a postgres:// URL.
	DatabaseURL string

	// Job portal connection. Empty PortalURL disables posting lookups.
	PortalURL    string
	PortalAPIKey string
	// Lookups per posting, and the first retry delay (doubled per retry).
	PortalMaxRetries int
	PortalRetryBase  time.Duration

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// PDF
	PDFFallbackPdftotext bool

	// Parsing
	ProfileStrategy string
	StatsWindow     time.Duration

	// HTTP
	CORSAllowedOrigins []string

	// Matching
	DefaultJobSkills []string
}

// Load reads configuration from the environment. A .env file in the working
// directory is applied first when present; real environment variables win.
func Load() Config {
	_ = godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "8090"),

		ResumatchAPIKey: os.Getenv("RESUMATCH_API_KEY"),

		DatabaseURL: envOr("DATABASE_URL", "resumatch.db"),

		PortalURL:    os.Getenv("PORTAL_URL"),
		PortalAPIKey: os.Getenv("PORTAL_API_KEY"),

		PortalMaxRetries: envInt("PORTAL_MAX_RETRIES", 3),
		PortalRetryBase:  envDuration("PORTAL_RETRY_BASE", 1*time.Second),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 10485760), // 10MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),

		ProfileStrategy: strings.ToLower(envOr("PROFILE_STRATEGY", "regex")),
		StatsWindow:     envDuration("STATS_WINDOW", 1*time.Hour),

		CORSAllowedOrigins: envList("CORS_ALLOWED_ORIGINS", nil),

		DefaultJobSkills: envList("DEFAULT_JOB_SKILLS", nil),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 10485760
	}
	if cfg.PortalMaxRetries <= 0 {
		cfg.PortalMaxRetries = 3
	}
	if cfg.PortalRetryBase <= 0 {
		cfg.PortalRetryBase = 1 * time.Second
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.StatsWindow <= 0 {
		cfg.StatsWindow = 1 * time.Hour
	}

	return cfg
}

func (c Config) Validate() error {
	if c.ResumatchAPIKey == "" {
		return fmt.Errorf("RESUMATCH_API_KEY is required")
	}
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	switch c.ProfileStrategy {
	case "regex", "scored":
	default:
		return fmt.Errorf("PROFILE_STRATEGY must be regex or scored, got %q", c.ProfileStrategy)
	}
	if c.PortalAPIKey != "" && c.PortalURL == "" {
		return fmt.Errorf("PORTAL_API_KEY is set but PORTAL_URL is empty")
	}
	return nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

// envList splits a comma-separated variable, dropping blank items.
func envList(key string, fallback []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	var out []string
	for _, item := range strings.Split(v, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
