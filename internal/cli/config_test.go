package cli

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/magland/mip/pkg/errors"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir()) // no config file
	t.Setenv("MIP_REGISTRY_URL", "")
	t.Setenv("MIP_HOME", "")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	if cfg.RegistryURL != defaultRegistryURL {
		t.Errorf("RegistryURL = %q, want default", cfg.RegistryURL)
	}
	if cfg.CacheBackend != "file" {
		t.Errorf("CacheBackend = %q, want file", cfg.CacheBackend)
	}
	if cfg.HTTPAttempts != 1 {
		t.Errorf("HTTPAttempts = %d, want 1", cfg.HTTPAttempts)
	}
	if filepath.Base(cfg.Home) != ".mip" {
		t.Errorf("Home = %q, want ~/.mip", cfg.Home)
	}
}

func TestLoadConfigFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("MIP_REGISTRY_URL", "")
	t.Setenv("MIP_HOME", "")

	dir := filepath.Join(configHome, appName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := `registry_url = "https://repo.example.org"
home = "/srv/mip"
cache_backend = "none"
cache_ttl = "30m"
http_attempts = 3
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	if cfg.RegistryURL != "https://repo.example.org" {
		t.Errorf("RegistryURL = %q", cfg.RegistryURL)
	}
	if cfg.Home != "/srv/mip" {
		t.Errorf("Home = %q", cfg.Home)
	}
	if cfg.CacheBackend != "none" {
		t.Errorf("CacheBackend = %q", cfg.CacheBackend)
	}
	if cfg.HTTPAttempts != 3 {
		t.Errorf("HTTPAttempts = %d", cfg.HTTPAttempts)
	}
	ttl, err := cfg.ManifestTTL()
	if err != nil {
		t.Fatalf("ManifestTTL returned error: %v", err)
	}
	if ttl != 30*time.Minute {
		t.Errorf("ManifestTTL = %v, want 30m", ttl)
	}
}

func TestLoadConfigEnvOverrides(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, appName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	content := `registry_url = "https://from-file.example.org"
home = "/from/file"
`
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte(content), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	t.Setenv("MIP_REGISTRY_URL", "https://from-env.example.org")
	t.Setenv("MIP_HOME", "/from/env")

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	if cfg.RegistryURL != "https://from-env.example.org" {
		t.Errorf("RegistryURL = %q, env should win over file", cfg.RegistryURL)
	}
	if cfg.Home != "/from/env" {
		t.Errorf("Home = %q, env should win over file", cfg.Home)
	}
}

func TestLoadConfigInvalidFile(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)

	dir := filepath.Join(configHome, appName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("registry_url = [broken"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	_, err := loadConfig()
	if !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("loadConfig error = %v, want INVALID_CONFIG", err)
	}
}

func TestLoadConfigClampsAttempts(t *testing.T) {
	configHome := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", configHome)
	t.Setenv("MIP_REGISTRY_URL", "")
	t.Setenv("MIP_HOME", "")

	dir := filepath.Join(configHome, appName)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(filepath.Join(dir, "config.toml"), []byte("http_attempts = 0"), 0644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		t.Fatalf("loadConfig returned error: %v", err)
	}
	if cfg.HTTPAttempts != 1 {
		t.Errorf("HTTPAttempts = %d, want clamp to 1", cfg.HTTPAttempts)
	}
}

func TestManifestTTL(t *testing.T) {
	cfg := &Config{}
	ttl, err := cfg.ManifestTTL()
	if err != nil || ttl != defaultManifestTTL {
		t.Errorf("ManifestTTL() = %v, %v, want default", ttl, err)
	}

	cfg.CacheTTL = "not a duration"
	if _, err := cfg.ManifestTTL(); !errors.Is(err, errors.ErrCodeInvalidConfig) {
		t.Errorf("ManifestTTL error = %v, want INVALID_CONFIG", err)
	}
}

func TestPackagesDir(t *testing.T) {
	cfg := &Config{Home: "/data/mip"}
	if got := cfg.PackagesDir(); got != filepath.Join("/data/mip", "packages") {
		t.Errorf("PackagesDir() = %q", got)
	}
}
