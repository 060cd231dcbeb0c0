package config

import (
	"os"
	"strconv"
)

// Config holds the defaults for a watch invocation, overridable by flags
type Config struct {
	DebounceMs  int
	JournalPath string
	SSEPort     int
}

// LoadConfig loads configuration from environment variables with defaults
func LoadConfig() *Config {
	debounceMs := 1000
	if dbStr := os.Getenv("WATCHDO_DEBOUNCE_MS"); dbStr != "" {
		if db, err := strconv.Atoi(dbStr); err == nil {
			debounceMs = db
		}
	}

	journalPath := os.Getenv("WATCHDO_JOURNAL")

	ssePort := 0
	if portStr := os.Getenv("WATCHDO_SSE_PORT"); portStr != "" {
		if p, err := strconv.Atoi(portStr); err == nil {
			ssePort = p
		}
	}

	return &Config{
		DebounceMs:  debounceMs,
		JournalPath: journalPath,
		SSEPort:     ssePort,
	}
}
