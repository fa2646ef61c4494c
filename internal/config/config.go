package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"weathertui/internal/quota"
)

type AppConfig struct {
	RapidAPIKey string

	// Engine persistence.
	CacheDir  string
	QuotaFile string

	// Ceiling of counted requests per billing period.
	QuotaCeiling int

	// Hard wall-clock budget for one network fetch.
	FetchTimeout time.Duration

	// Outbound HTTP client timeout; kept above FetchTimeout so the
	// fetch deadline fires first.
	HTTPTimeout time.Duration

	// Cache warming. Empty locations disable the scheduler.
	PrefetchLocations []string
	PrefetchInterval  time.Duration

	Port string
}

// Load reads configuration from environment with sensible defaults.
func Load() (*AppConfig, error) {
	if err := godotenv.Load(); err != nil {
		log.Printf("INFO: No .env file found or error loading it: %v", err)
	}
	cfg := &AppConfig{}

	cfg.RapidAPIKey = os.Getenv("RAPIDAPI_KEY")

	cfg.CacheDir = getenvDefault("CACHE_DIR", "cache")
	cfg.QuotaFile = getenvDefault("QUOTA_FILE", "quota.yaml")
	cfg.QuotaCeiling = getenvInt("QUOTA_CEILING", quota.DefaultCeiling)

	timeoutStr := getenvDefault("FETCH_TIMEOUT", "60s")
	timeout, err := time.ParseDuration(timeoutStr)
	if err != nil {
		return nil, fmt.Errorf("invalid FETCH_TIMEOUT: %w", err)
	}
	cfg.FetchTimeout = timeout
	cfg.HTTPTimeout = cfg.FetchTimeout + 5*time.Second

	intervalStr := getenvDefault("PREFETCH_INTERVAL", "30m")
	interval, err := time.ParseDuration(intervalStr)
	if err != nil {
		return nil, fmt.Errorf("invalid PREFETCH_INTERVAL: %w", err)
	}
	cfg.PrefetchInterval = interval

	if v := os.Getenv("PREFETCH_LOCATIONS"); v != "" {
		for _, loc := range strings.Split(v, ",") {
			if loc = strings.TrimSpace(loc); loc != "" {
				cfg.PrefetchLocations = append(cfg.PrefetchLocations, loc)
			}
		}
	}

	cfg.Port = getenvDefault("PORT", "8080")

	return cfg, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getenvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err == nil {
			return n
		}
	}
	return def
}
