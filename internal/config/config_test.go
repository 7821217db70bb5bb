package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func validConfig() Config {
	var cfg Config
	cfg.SetDefaults()
	return cfg
}

func TestSetDefaults(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()

	if cfg.API.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.API.BaseURL, DefaultBaseURL)
	}
	if cfg.API.Timeout != DefaultTimeout {
		t.Errorf("Timeout = %v, want %v", cfg.API.Timeout, DefaultTimeout)
	}
	if cfg.DataDir == "" {
		t.Error("DataDir should be defaulted")
	}
	if cfg.LogLevel != DefaultLogLevel {
		t.Errorf("LogLevel = %q, want %q", cfg.LogLevel, DefaultLogLevel)
	}
	if cfg.Catalog.PageLimit != DefaultPageLimit {
		t.Errorf("PageLimit = %d, want %d", cfg.Catalog.PageLimit, DefaultPageLimit)
	}
}

func TestSetDefaultsKeepsExplicitValues(t *testing.T) {
	cfg := Config{
		API:      APIConfig{BaseURL: "https://api.example.com", Timeout: 3 * time.Second},
		Catalog:  CatalogConfig{PageLimit: 25},
		DataDir:  "/var/lib/unideck",
		LogLevel: "debug",
	}
	cfg.SetDefaults()

	if cfg.API.BaseURL != "https://api.example.com" {
		t.Errorf("BaseURL overwritten: %q", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 3*time.Second {
		t.Errorf("Timeout overwritten: %v", cfg.API.Timeout)
	}
	if cfg.Catalog.PageLimit != 25 {
		t.Errorf("PageLimit overwritten: %d", cfg.Catalog.PageLimit)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{name: "defaults are valid", mutate: func(*Config) {}},
		{
			name:    "missing base url",
			mutate:  func(c *Config) { c.API.BaseURL = "" },
			wantErr: "required",
		},
		{
			name:    "non-http base url",
			mutate:  func(c *Config) { c.API.BaseURL = "ftp://example.com" },
			wantErr: "http(s) URL",
		},
		{
			name:    "bad log level",
			mutate:  func(c *Config) { c.LogLevel = "verbose" },
			wantErr: "one of",
		},
		{
			name:    "zero page limit",
			mutate:  func(c *Config) { c.Catalog.PageLimit = 0 },
			wantErr: "at least",
		},
		{
			name:    "excessive page limit",
			mutate:  func(c *Config) { c.Catalog.PageLimit = 1000 },
			wantErr: "at most",
		},
		{
			name:    "negative timeout",
			mutate:  func(c *Config) { c.API.Timeout = -time.Second },
			wantErr: "positive duration",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(&cfg)
			err := cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("Validate() error = %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("Validate() error = %v, want substring %q", err, tt.wantErr)
			}
		})
	}
}

func TestSlogLevel(t *testing.T) {
	tests := []struct {
		level string
		want  string
	}{
		{"debug", "DEBUG"},
		{"info", "INFO"},
		{"warn", "WARN"},
		{"error", "ERROR"},
		{"bogus", "INFO"},
	}
	for _, tt := range tests {
		cfg := Config{LogLevel: tt.level}
		if got := cfg.SlogLevel().String(); got != tt.want {
			t.Errorf("SlogLevel(%q) = %s, want %s", tt.level, got, tt.want)
		}
	}
}

func TestWriteDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "unideck.yaml")

	if err := WriteDefault(path); err != nil {
		t.Fatalf("WriteDefault() error = %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error = %v", err)
	}
	for _, key := range []string{"base_url", "timeout", "page_limit", "data_dir", "log_level"} {
		if !strings.Contains(string(data), key) {
			t.Errorf("written config missing %q", key)
		}
	}

	if err := WriteDefault(path); err == nil {
		t.Fatal("WriteDefault() should refuse to overwrite an existing file")
	}
}

func TestFindConfigFileInPaths(t *testing.T) {
	dir := t.TempDir()
	if got := findConfigFileInPaths([]string{dir}); got != "" {
		t.Fatalf("found %q in empty dir", got)
	}

	path := filepath.Join(dir, "unideck.yml")
	if err := os.WriteFile(path, []byte("log_level: debug\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	if got := findConfigFileInPaths([]string{dir}); got != path {
		t.Fatalf("findConfigFileInPaths() = %q, want %q", got, path)
	}
}
