package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerAddress   string
	ShutdownTimeout time.Duration
	CORSOrigins     []string

	DBPath   string
	LogLevel string
	LogFile  string // empty logs to stdout only

	OfficialsFile string // empty uses the built-in officeholders
	TrialDays     int
	PromoCodes    []string

	// RevenueCat; purchases are unavailable without an API key
	RevenueCatAPIKey      string
	RevenueCatAppUserID   string
	RevenueCatEntitlement string
	RevenueCatPlatform    string

	// Text-to-speech program and its leading arguments, e.g. "espeak -s 150"
	SpeechCommand []string
}

// Load reads the environment, and a .env file when present. Malformed
// values are fatal.
func Load() *Config {
	_ = godotenv.Load()
	cfg, err := FromEnv(os.Getenv)
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	return cfg
}

// FromEnv builds a Config from getenv, applying defaults for unset keys.
func FromEnv(getenv func(string) string) (*Config, error) {
	get := func(k, fallback string) string {
		if v := strings.TrimSpace(getenv(k)); v != "" {
			return v
		}
		return fallback
	}

	timeout, err := time.ParseDuration(get("SHUTDOWN_TIMEOUT", "10s"))
	if err != nil {
		return nil, fmt.Errorf("SHUTDOWN_TIMEOUT=%q is not a valid duration: %w", getenv("SHUTDOWN_TIMEOUT"), err)
	}
	trialDays, err := strconv.Atoi(get("TRIAL_DAYS", "7"))
	if err != nil || trialDays < 0 {
		return nil, fmt.Errorf("TRIAL_DAYS=%q is not a non-negative integer", getenv("TRIAL_DAYS"))
	}

	return &Config{
		ServerAddress:         get("SERVER_ADDRESS", "127.0.0.1:8080"),
		ShutdownTimeout:       timeout,
		CORSOrigins:           splitList(get("CORS_ORIGINS", "*")),
		DBPath:                get("DB_PATH", "civics.db"),
		LogLevel:              get("LOG_LEVEL", "info"),
		LogFile:               get("LOG_FILE", ""),
		OfficialsFile:         get("OFFICIALS_FILE", ""),
		TrialDays:             trialDays,
		PromoCodes:            splitList(get("PROMO_CODES", "FREEUSCIS")),
		RevenueCatAPIKey:      get("REVENUECAT_API_KEY", ""),
		RevenueCatAppUserID:   get("REVENUECAT_APP_USER_ID", ""),
		RevenueCatEntitlement: get("REVENUECAT_ENTITLEMENT", "premium"),
		RevenueCatPlatform:    get("REVENUECAT_PLATFORM", "android"),
		SpeechCommand:         strings.Fields(get("SPEECH_COMMAND", "")),
	}, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
