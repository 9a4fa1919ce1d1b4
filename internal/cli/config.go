package cli

import (
	"os"
	"path/filepath"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/magland/mip/pkg/errors"
)

const (
	// defaultRegistryURL is the public mip package repository.
	defaultRegistryURL = "https://magland.github.io/mip"

	// defaultManifestTTL is how long manifest fetches are cached.
	defaultManifestTTL = time.Hour
)

// Config holds user-tunable settings, loaded from ~/.config/mip/config.toml
// when present. Every path the tool touches derives from Home so tests and
// scripts can redirect all state with a single value.
type Config struct {
	RegistryURL  string `toml:"registry_url"`  // Package repository base URL
	Home         string `toml:"home"`          // Data directory (packages, matlab integration)
	CacheBackend string `toml:"cache_backend"` // "file", "redis", or "none"
	CacheTTL     string `toml:"cache_ttl"`     // Manifest cache TTL (Go duration, e.g. "1h")
	RedisAddr    string `toml:"redis_addr"`    // Redis address for cache_backend = "redis"
	HTTPAttempts int    `toml:"http_attempts"` // Transport attempts per request
}

// PackagesDir returns the installed-package directory under Home.
func (c *Config) PackagesDir() string {
	return filepath.Join(c.Home, "packages")
}

// ManifestTTL parses CacheTTL, falling back to the default on empty input.
func (c *Config) ManifestTTL() (time.Duration, error) {
	if c.CacheTTL == "" {
		return defaultManifestTTL, nil
	}
	ttl, err := time.ParseDuration(c.CacheTTL)
	if err != nil {
		return 0, errors.Wrap(errors.ErrCodeInvalidConfig, err, "invalid cache_ttl %q", c.CacheTTL)
	}
	return ttl, nil
}

// loadConfig reads the config file (if any) and applies environment
// overrides (MIP_REGISTRY_URL, MIP_HOME) and defaults.
func loadConfig() (*Config, error) {
	cfg := &Config{
		RegistryURL:  defaultRegistryURL,
		CacheBackend: "file",
		HTTPAttempts: 1,
	}

	if path, err := configPath(); err == nil {
		if _, err := os.Stat(path); err == nil {
			if _, err := toml.DecodeFile(path, cfg); err != nil {
				return nil, errors.Wrap(errors.ErrCodeInvalidConfig, err, "cannot parse %s", path)
			}
		}
	}

	if url := os.Getenv("MIP_REGISTRY_URL"); url != "" {
		cfg.RegistryURL = url
	}
	if home := os.Getenv("MIP_HOME"); home != "" {
		cfg.Home = home
	}
	if cfg.Home == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, err
		}
		cfg.Home = filepath.Join(home, ".mip")
	}
	if cfg.HTTPAttempts < 1 {
		cfg.HTTPAttempts = 1
	}
	return cfg, nil
}

// configPath returns the config file location using the XDG convention.
func configPath() (string, error) {
	if configHome := os.Getenv("XDG_CONFIG_HOME"); configHome != "" {
		return filepath.Join(configHome, appName, "config.toml"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", appName, "config.toml"), nil
}

// cacheDir returns the cache directory using the XDG convention.
func cacheDir() (string, error) {
	if cacheHome := os.Getenv("XDG_CACHE_HOME"); cacheHome != "" {
		return filepath.Join(cacheHome, appName), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".cache", appName), nil
}
