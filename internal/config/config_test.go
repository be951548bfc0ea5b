package config

import (
	"testing"
	"time"
)

func TestLoadFromDefaults(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{})
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Port != "5000" {
		t.Errorf("Port = %q, want %q", cfg.Port, "5000")
	}
	if cfg.BreachAPIURL != "https://api.pwnedpasswords.com" {
		t.Errorf("BreachAPIURL = %q, want pwnedpasswords default", cfg.BreachAPIURL)
	}
	if cfg.BreachTimeout != 10*time.Second {
		t.Errorf("BreachTimeout = %v, want 10s", cfg.BreachTimeout)
	}
	if cfg.DatabaseURL != "" {
		t.Errorf("DatabaseURL = %q, want empty", cfg.DatabaseURL)
	}
	if cfg.EmailRulesFile != "" {
		t.Errorf("EmailRulesFile = %q, want empty", cfg.EmailRulesFile)
	}
	if cfg.LogLevel != "info" {
		t.Errorf("LogLevel = %q, want info", cfg.LogLevel)
	}
}

func TestLoadFromOverrides(t *testing.T) {
	cfg, err := LoadFrom(map[string]string{
		"PORT":             "8080",
		"DATABASE_URL":     "postgres://localhost/securascan",
		"EMAIL_RULES_FILE": "/etc/securascan/rules.json",
		"BREACH_API_URL":   "http://127.0.0.1:9999",
		"BREACH_TIMEOUT":   "3",
		"LOG_LEVEL":        "debug",
	})
	if err != nil {
		t.Fatalf("LoadFrom() error = %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.DatabaseURL != "postgres://localhost/securascan" {
		t.Errorf("DatabaseURL = %q", cfg.DatabaseURL)
	}
	if cfg.EmailRulesFile != "/etc/securascan/rules.json" {
		t.Errorf("EmailRulesFile = %q", cfg.EmailRulesFile)
	}
	if cfg.BreachAPIURL != "http://127.0.0.1:9999" {
		t.Errorf("BreachAPIURL = %q", cfg.BreachAPIURL)
	}
	if cfg.BreachTimeout != 3*time.Second {
		t.Errorf("BreachTimeout = %v, want 3s", cfg.BreachTimeout)
	}
	if cfg.LogLevel != "debug" {
		t.Errorf("LogLevel = %q, want debug", cfg.LogLevel)
	}
}

func TestLoadFromInvalidTimeout(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{name: "not a number", value: "ten"},
		{name: "zero", value: "0"},
		{name: "negative", value: "-5"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := LoadFrom(map[string]string{"BREACH_TIMEOUT": tc.value}); err == nil {
				t.Errorf("LoadFrom() with BREACH_TIMEOUT=%q expected error, got nil", tc.value)
			}
		})
	}
}
