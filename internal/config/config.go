package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/tatianab/just-do-now/internal/storage"
)

const (
	DefaultModel        = "gemini-2.5-flash"
	DefaultCoachTimeout = 30 * time.Second
	DefaultCoachRPM     = 6
	CoachBurst          = 2
)

// Config holds the application configuration.
type Config struct {
	// GeminiAPIKey may be empty; the coach then answers with its offline message.
	GeminiAPIKey string
	GeminiModel  string
	DataDir      string
	Store        storage.Kind
	CoachTimeout time.Duration
	CoachRPM     int
}

// LoadConfig loads the configuration from environment variables, after
// merging a .env file from the working directory if there is one.
func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		GeminiAPIKey: os.Getenv("GEMINI_API_KEY"),
		GeminiModel:  getenv("JDN_GEMINI_MODEL", DefaultModel),
		Store:        storage.Kind(getenv("JDN_STORE", string(storage.KindYAML))),
		CoachTimeout: DefaultCoachTimeout,
		CoachRPM:     DefaultCoachRPM,
	}

	switch cfg.Store {
	case storage.KindYAML, storage.KindSQLite, storage.KindMemory:
	default:
		return nil, fmt.Errorf("JDN_STORE must be yaml, sqlite or memory, got %q", cfg.Store)
	}

	cfg.DataDir = os.Getenv("JDN_DATA_DIR")
	if cfg.DataDir == "" {
		dir, err := storage.DefaultDataDir()
		if err != nil {
			return nil, err
		}
		cfg.DataDir = dir
	}

	if v := os.Getenv("JDN_COACH_TIMEOUT"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("JDN_COACH_TIMEOUT must be a positive duration, got %q", v)
		}
		cfg.CoachTimeout = d
	}

	if v := os.Getenv("JDN_COACH_RPM"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("JDN_COACH_RPM must be a positive integer, got %q", v)
		}
		cfg.CoachRPM = n
	}

	return cfg, nil
}

func getenv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
