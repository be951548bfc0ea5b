package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

type Config struct {
	Port           string
	DatabaseURL    string
	EmailRulesFile string
	BreachAPIURL   string
	BreachTimeout  time.Duration
	LogLevel       string
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	return LoadFrom(nil)
}

// LoadFrom reads configuration from the provided map, falling back to os.Getenv
// for missing keys. If env is nil, all values come from os.Getenv.
func LoadFrom(env map[string]string) (*Config, error) {
	get := func(key string) string {
		if env != nil {
			return env[key]
		}
		return os.Getenv(key)
	}

	cfg := &Config{}

	cfg.Port = getOrDefault(get, "PORT", "5000")
	cfg.LogLevel = getOrDefault(get, "LOG_LEVEL", "info")
	cfg.BreachAPIURL = getOrDefault(get, "BREACH_API_URL", "https://api.pwnedpasswords.com")

	// Optional sources for the email rule set
	cfg.DatabaseURL = get("DATABASE_URL")
	cfg.EmailRulesFile = get("EMAIL_RULES_FILE")

	timeoutS, err := getIntOrDefault(get, "BREACH_TIMEOUT", 10)
	if err != nil {
		return nil, err
	}
	if timeoutS <= 0 {
		return nil, fmt.Errorf("BREACH_TIMEOUT must be positive (got %d)", timeoutS)
	}
	cfg.BreachTimeout = time.Duration(timeoutS) * time.Second

	return cfg, nil
}

func getOrDefault(get func(string) string, key, defaultVal string) string {
	if v := get(key); v != "" {
		return v
	}
	return defaultVal
}

func getIntOrDefault(get func(string) string, key string, defaultVal int) (int, error) {
	v := get(key)
	if v == "" {
		return defaultVal, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid value for %s: %w", key, err)
	}
	return n, nil
}
