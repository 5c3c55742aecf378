package config

import (
	"errors"
	"fmt"
	"strings"
)

// Validate checks configuration invariants before components are wired up.
func (c *Config) Validate() error {
	var problems []string

	if strings.TrimSpace(c.Paths.DataDir) == "" {
		problems = append(problems, "paths.data_dir is required")
	}
	if strings.TrimSpace(c.Kinopoisk.BaseURL) == "" {
		problems = append(problems, "kinopoisk.base_url is required")
	}
	if strings.TrimSpace(c.Rutube.BaseURL) == "" {
		problems = append(problems, "rutube.base_url is required")
	}
	if c.Kinopoisk.TimeoutSeconds <= 0 {
		problems = append(problems, "kinopoisk.timeout_seconds must be positive")
	}
	if c.Rutube.TimeoutSeconds <= 0 {
		problems = append(problems, "rutube.timeout_seconds must be positive")
	}
	if c.Rutube.MaxLinks <= 0 {
		problems = append(problems, "rutube.max_links must be positive")
	}
	if c.Cache.PosterTTLDays <= 0 {
		problems = append(problems, "cache.poster_ttl_days must be positive")
	}
	if c.Cache.MetadataTTLHours <= 0 {
		problems = append(problems, "cache.metadata_ttl_hours must be positive")
	}
	if c.Cache.LinkTTLMinutes <= 0 {
		problems = append(problems, "cache.link_ttl_minutes must be positive")
	}
	if c.Search.HistoryLimit <= 0 {
		problems = append(problems, "search.history_limit must be positive")
	}
	if c.Search.StatsLimit <= 0 {
		problems = append(problems, "search.stats_limit must be positive")
	}
	switch strings.ToLower(strings.TrimSpace(c.Logging.Format)) {
	case "", "console", "json":
	default:
		problems = append(problems, fmt.Sprintf("logging.format %q is not supported", c.Logging.Format))
	}

	if len(problems) > 0 {
		return errors.New("invalid configuration: " + strings.Join(problems, "; "))
	}
	return nil
}

func (c *Config) normalize() {
	c.Paths.DataDir = strings.TrimSpace(c.Paths.DataDir)
	c.Paths.LogDir = strings.TrimSpace(c.Paths.LogDir)
	c.Kinopoisk.APIKey = strings.TrimSpace(c.Kinopoisk.APIKey)
	c.Kinopoisk.BaseURL = strings.TrimRight(strings.TrimSpace(c.Kinopoisk.BaseURL), "/")
	c.Rutube.BaseURL = strings.TrimRight(strings.TrimSpace(c.Rutube.BaseURL), "/")
	c.Rutube.SearchSuffix = strings.TrimSpace(c.Rutube.SearchSuffix)
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
}
