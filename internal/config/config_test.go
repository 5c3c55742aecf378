package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
	if cfg.PosterTTL() <= cfg.MetadataTTL() || cfg.MetadataTTL() <= cfg.LinkTTL() {
		t.Fatalf("expected poster > metadata > link TTLs, got %v %v %v",
			cfg.PosterTTL(), cfg.MetadataTTL(), cfg.LinkTTL())
	}
}

func TestLoadAppliesDefaultsAndOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[paths]
data_dir = "` + dir + `"

[kinopoisk]
api_key = "secret"
timeout_seconds = 5

[cache]
link_ttl_minutes = 45
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Kinopoisk.APIKey != "secret" {
		t.Fatalf("api key not loaded: %q", cfg.Kinopoisk.APIKey)
	}
	if cfg.KinopoiskTimeout() != 5*time.Second {
		t.Fatalf("timeout override lost: %v", cfg.KinopoiskTimeout())
	}
	if cfg.LinkTTL() != 45*time.Minute {
		t.Fatalf("link ttl override lost: %v", cfg.LinkTTL())
	}
	if cfg.Rutube.MaxLinks != 3 {
		t.Fatalf("default max_links lost: %d", cfg.Rutube.MaxLinks)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	if err == nil || !strings.Contains(err.Error(), "config file not found") {
		t.Fatalf("expected not-found error, got %v", err)
	}
}

func TestValidateRejectsBadValues(t *testing.T) {
	cfg := Default()
	cfg.Cache.LinkTTLMinutes = 0
	cfg.Logging.Format = "yaml"
	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected validation error")
	}
	if !strings.Contains(err.Error(), "link_ttl_minutes") || !strings.Contains(err.Error(), "logging.format") {
		t.Fatalf("expected both problems reported, got %v", err)
	}
}

func TestCachePathDisabledPersistence(t *testing.T) {
	cfg := Default()
	cfg.Cache.PersistenceEnabled = false
	if cfg.CachePath() != "" {
		t.Fatalf("expected empty cache path, got %q", cfg.CachePath())
	}
}

func TestWriteSample(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sub", "config.toml")
	if err := WriteSample(path); err != nil {
		t.Fatalf("WriteSample: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read sample: %v", err)
	}
	if !strings.Contains(string(data), "[kinopoisk]") {
		t.Fatal("sample config missing kinopoisk section")
	}
}
