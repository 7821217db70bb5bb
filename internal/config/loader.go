package config

import (
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/viper"
)

// InitViper initializes Viper with the configuration file and environment
// variables. If configFile is empty, it searches for unideck.yaml/.yml in
// standard locations. The search requires an explicit YAML extension so the
// binary itself (same base name, no extension) is never matched.
func InitViper(configFile string) {
	if configFile != "" {
		viper.SetConfigFile(configFile)
	} else if found := findConfigFile(); found != "" {
		viper.SetConfigFile(found)
	} else {
		// No config file in any standard location. Set name/type without
		// search paths so ReadInConfig returns ConfigFileNotFoundError,
		// which callers treat as env-only mode.
		viper.SetConfigName("unideck")
		viper.SetConfigType("yaml")
	}

	// Environment variable support: UNIDECK_API_BASE_URL
	viper.SetEnvPrefix("UNIDECK")
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	viper.AutomaticEnv()

	bindNestedEnvKeys()
}

// findConfigFile searches standard locations for a unideck config file with
// an explicit YAML extension (.yaml or .yml).
func findConfigFile() string {
	home, _ := os.UserHomeDir()
	paths := []string{
		".",
		filepath.Join(home, ".unideck"),
	}
	if runtime.GOOS == "windows" {
		if pd := os.Getenv("ProgramData"); pd != "" {
			paths = append(paths, filepath.Join(pd, "unideck"))
		}
	} else {
		paths = append(paths, "/etc/unideck")
	}
	return findConfigFileInPaths(paths)
}

// findConfigFileInPaths returns the first unideck.yaml or unideck.yml found
// in the given directories, or empty string.
func findConfigFileInPaths(paths []string) string {
	for _, dir := range paths {
		for _, ext := range []string{".yaml", ".yml"} {
			path := filepath.Join(dir, "unideck"+ext)
			if _, err := os.Stat(path); err == nil {
				return path
			}
		}
	}
	return ""
}

// bindNestedEnvKeys binds all config keys for environment variable support.
// Example: UNIDECK_CATALOG_PAGE_LIMIT overrides catalog.page_limit.
func bindNestedEnvKeys() {
	_ = viper.BindEnv("api.base_url")
	_ = viper.BindEnv("api.timeout")
	_ = viper.BindEnv("catalog.page_limit")
	_ = viper.BindEnv("data_dir")
	_ = viper.BindEnv("log_level")
}

// LoadConfig reads the configuration file, applies environment overrides,
// sets defaults, validates, and returns the Config. A missing config file
// is not an error; defaults and environment variables still apply.
func LoadConfig() (*Config, error) {
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.SetDefaults()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}
	return &cfg, nil
}

// ConfigFileUsed returns the path to the configuration file that was
// loaded, or empty string when running on environment variables only.
func ConfigFileUsed() string {
	return viper.ConfigFileUsed()
}
