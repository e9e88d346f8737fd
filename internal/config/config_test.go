package config

import (
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig(t *testing.T) Config {
	t.Helper()
	return Config{
		Port:            "8082",
		SQLiteDBPath:    filepath.Join(t.TempDir(), "ritmo.db"),
		CacheTTL:        5 * time.Minute,
		CacheMaxEntries: 50,
		DefaultRange:    "30",
	}
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name        string
		mutate      func(*Config)
		wantErr     bool
		errorString string
	}{
		{
			name:   "valid config",
			mutate: func(*Config) {},
		},
		{
			name:        "invalid port - non-numeric",
			mutate:      func(c *Config) { c.Port = "abc" },
			wantErr:     true,
			errorString: "invalid port 'abc': must be a number",
		},
		{
			name:        "invalid port - out of range",
			mutate:      func(c *Config) { c.Port = "70000" },
			wantErr:     true,
			errorString: "invalid port 70000: must be between 1 and 65535",
		},
		{
			name:        "empty db path",
			mutate:      func(c *Config) { c.SQLiteDBPath = "" },
			wantErr:     true,
			errorString: "SQLite database path cannot be empty",
		},
		{
			name:        "cache TTL too small",
			mutate:      func(c *Config) { c.CacheTTL = 100 * time.Millisecond },
			wantErr:     true,
			errorString: "must be at least 1 second",
		},
		{
			name:        "cache TTL too large",
			mutate:      func(c *Config) { c.CacheTTL = 48 * time.Hour },
			wantErr:     true,
			errorString: "must be at most 24 hours",
		},
		{
			name:        "cache max entries too small",
			mutate:      func(c *Config) { c.CacheMaxEntries = 0 },
			wantErr:     true,
			errorString: "must be at least 1",
		},
		{
			name:        "invalid default range",
			mutate:      func(c *Config) { c.DefaultRange = "fortnight" },
			wantErr:     true,
			errorString: "invalid default range 'fortnight'",
		},
		{
			name:   "all is a valid default range",
			mutate: func(c *Config) { c.DefaultRange = "all" },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig(t)
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected validation error")
				}
				if !strings.Contains(err.Error(), tt.errorString) {
					t.Fatalf("error %q does not contain %q", err, tt.errorString)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestLoadDefaults(t *testing.T) {
	cfg := Load()
	if cfg.Port != "8082" {
		t.Fatalf("default port = %q", cfg.Port)
	}
	if cfg.SQLiteDBPath != "./data/ritmo.db" {
		t.Fatalf("default db path = %q", cfg.SQLiteDBPath)
	}
	if cfg.CacheTTL != 5*time.Minute {
		t.Fatalf("default cache TTL = %v", cfg.CacheTTL)
	}
	if cfg.DefaultRange != "30" {
		t.Fatalf("default range = %q", cfg.DefaultRange)
	}
}

func TestLoadReadsEnvironment(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("SQLITE_DB_PATH", "/tmp/other.db")
	t.Setenv("CACHE_TTL", "90s")
	t.Setenv("CACHE_MAX_ENTRIES", "10")
	t.Setenv("DEFAULT_RANGE", "all")

	cfg := Load()
	if cfg.Port != "9000" || cfg.SQLiteDBPath != "/tmp/other.db" {
		t.Fatalf("env not honored: %+v", cfg)
	}
	if cfg.CacheTTL != 90*time.Second || cfg.CacheMaxEntries != 10 {
		t.Fatalf("cache env not honored: %+v", cfg)
	}
	if cfg.DefaultRange != "all" {
		t.Fatalf("range env not honored: %+v", cfg)
	}
}
