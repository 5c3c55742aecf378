package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"

	"github.com/pelletier/go-toml/v2"
)

//go:embed sample_config.toml
var sampleConfig string

// Paths contains directory configuration.
type Paths struct {
	DataDir string `toml:"data_dir"`
	LogDir  string `toml:"log_dir"`
}

// Kinopoisk contains configuration for the movie metadata provider.
type Kinopoisk struct {
	APIKey         string `toml:"api_key"`
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
}

// Rutube contains configuration for the streaming link provider.
type Rutube struct {
	BaseURL        string `toml:"base_url"`
	TimeoutSeconds int    `toml:"timeout_seconds"`
	MaxLinks       int    `toml:"max_links"`
	SearchSuffix   string `toml:"search_suffix"`
}

// Cache contains per-namespace lifetimes and persistence settings.
type Cache struct {
	PosterTTLDays      int  `toml:"poster_ttl_days"`
	MetadataTTLHours   int  `toml:"metadata_ttl_hours"`
	LinkTTLMinutes     int  `toml:"link_ttl_minutes"`
	PersistenceEnabled bool `toml:"persistence_enabled"`
}

// Search contains limits applied when reporting per-user records.
type Search struct {
	HistoryLimit int `toml:"history_limit"`
	StatsLimit   int `toml:"stats_limit"`
}

// Logging contains configuration for log output.
type Logging struct {
	Format string `toml:"format"`
	Level  string `toml:"level"`
}

// Config is the root configuration for the service.
type Config struct {
	Paths     Paths     `toml:"paths"`
	Kinopoisk Kinopoisk `toml:"kinopoisk"`
	Rutube    Rutube    `toml:"rutube"`
	Cache     Cache     `toml:"cache"`
	Search    Search    `toml:"search"`
	Logging   Logging   `toml:"logging"`
}

// ErrConfigNotFound indicates the requested config file does not exist.
var ErrConfigNotFound = errors.New("config file not found")

// DefaultConfigPath returns the conventional config location.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "cinebot.toml"
	}
	return filepath.Join(home, ".config", "cinebot", "config.toml")
}

// Load reads a TOML config from path, applying defaults for absent fields.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return nil, fmt.Errorf("read config: %w", err)
	}

	cfg := Default()
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	cfg.normalize()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// WriteSample writes the embedded sample config to path.
func WriteSample(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(sampleConfig), 0o644); err != nil {
		return fmt.Errorf("write sample config: %w", err)
	}
	return nil
}

// EnsureDirectories creates the data and log directories if missing.
func (c *Config) EnsureDirectories() error {
	for _, dir := range []string{c.Paths.DataDir, c.Paths.LogDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory %s: %w", dir, err)
		}
	}
	return nil
}

// DatabasePath returns the location of the per-user SQLite database.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.Paths.DataDir, "cinebot.db")
}

// CachePath returns the cache database location, or empty when persistence
// is disabled (the cache then lives in memory only).
func (c *Config) CachePath() string {
	if !c.Cache.PersistenceEnabled {
		return ""
	}
	return filepath.Join(c.Paths.DataDir, "cache.db")
}

// LockPath returns the daemon lock file location.
func (c *Config) LockPath() string {
	return filepath.Join(c.Paths.DataDir, "cinebotd.lock")
}

// PosterTTL returns the poster namespace lifetime.
func (c *Config) PosterTTL() time.Duration {
	return time.Duration(c.Cache.PosterTTLDays) * 24 * time.Hour
}

// MetadataTTL returns the metadata namespace lifetime.
func (c *Config) MetadataTTL() time.Duration {
	return time.Duration(c.Cache.MetadataTTLHours) * time.Hour
}

// LinkTTL returns the stream link namespace lifetime.
func (c *Config) LinkTTL() time.Duration {
	return time.Duration(c.Cache.LinkTTLMinutes) * time.Minute
}

// KinopoiskTimeout returns the metadata provider request deadline.
func (c *Config) KinopoiskTimeout() time.Duration {
	return time.Duration(c.Kinopoisk.TimeoutSeconds) * time.Second
}

// RutubeTimeout returns the link provider request deadline.
func (c *Config) RutubeTimeout() time.Duration {
	return time.Duration(c.Rutube.TimeoutSeconds) * time.Second
}
