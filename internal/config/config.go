package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds the application configuration.
type Config struct {
	ServerPort    int
	DatabasePath  string
	AllowedOrigin string // Dashboard origin for CORS

	UpstreamBaseURL string // Base URL of the platform admin API
	UpstreamToken   string // Bearer token for upstream requests
	UpstreamTimeout time.Duration

	FeedPollInterval time.Duration // Live-tail poll cadence
	FeedWindowMins   int           // Activity feed window requested per poll
	StatsRefresh     time.Duration // Cached stats refresh cadence
	StatsHours       int           // Default stats time range

	ExportDir  string // Where export files are written
	ExportCron string // Schedule for automatic audit exports
}

// Load loads configuration from environment variables or sets defaults.
func Load() (*Config, error) {
	port, err := strconv.Atoi(getEnv("PORT", "8090"))
	if err != nil {
		return nil, err
	}

	pollSecs, err := strconv.Atoi(getEnv("FEED_POLL_SECONDS", "10"))
	if err != nil {
		return nil, err
	}

	windowMins, err := strconv.Atoi(getEnv("FEED_WINDOW_MINUTES", "15"))
	if err != nil {
		return nil, err
	}

	statsSecs, err := strconv.Atoi(getEnv("STATS_REFRESH_SECONDS", "60"))
	if err != nil {
		return nil, err
	}

	statsHours, err := strconv.Atoi(getEnv("STATS_HOURS", "24"))
	if err != nil {
		return nil, err
	}

	timeoutSecs, err := strconv.Atoi(getEnv("UPSTREAM_TIMEOUT_SECONDS", "15"))
	if err != nil {
		return nil, err
	}

	return &Config{
		ServerPort:       port,
		DatabasePath:     getEnv("DATABASE_PATH", "./logwatch.db"),
		AllowedOrigin:    getEnv("ALLOWED_ORIGIN", "http://localhost:3000"),
		UpstreamBaseURL:  getEnv("UPSTREAM_BASE_URL", "http://localhost:8080/admin"),
		UpstreamToken:    getEnv("UPSTREAM_TOKEN", ""),
		UpstreamTimeout:  time.Duration(timeoutSecs) * time.Second,
		FeedPollInterval: time.Duration(pollSecs) * time.Second,
		FeedWindowMins:   windowMins,
		StatsRefresh:     time.Duration(statsSecs) * time.Second,
		StatsHours:       statsHours,
		ExportDir:        getEnv("EXPORT_DIR", "./exports"),
		ExportCron:       getEnv("EXPORT_CRON", "0 3 * * *"),
	}, nil
}

// Helper to get an environment variable with a default value.
func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}
