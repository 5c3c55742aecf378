package config

import (
	"os"
	"path/filepath"
)

const (
	defaultKinopoiskBaseURL = "https://kinopoiskapiunofficial.tech/api/v2.2"
	defaultRutubeBaseURL    = "https://rutube.ru"
	defaultRutubeSuffix     = "фильм"
)

// Default returns a configuration populated with defaults. Posters barely
// ever change, metadata drifts slowly, stream links rot fast; the TTLs
// reflect that ordering.
func Default() Config {
	dataDir := "data"
	logDir := "logs"
	if home, err := os.UserHomeDir(); err == nil {
		dataDir = filepath.Join(home, ".local", "share", "cinebot")
		logDir = filepath.Join(home, ".local", "share", "cinebot", "logs")
	}

	return Config{
		Paths: Paths{
			DataDir: dataDir,
			LogDir:  logDir,
		},
		Kinopoisk: Kinopoisk{
			BaseURL:        defaultKinopoiskBaseURL,
			TimeoutSeconds: 30,
		},
		Rutube: Rutube{
			BaseURL:        defaultRutubeBaseURL,
			TimeoutSeconds: 30,
			MaxLinks:       3,
			SearchSuffix:   defaultRutubeSuffix,
		},
		Cache: Cache{
			PosterTTLDays:      21,
			MetadataTTLHours:   12,
			LinkTTLMinutes:     30,
			PersistenceEnabled: true,
		},
		Search: Search{
			HistoryLimit: 10,
			StatsLimit:   10,
		},
		Logging: Logging{
			Format: "console",
			Level:  "info",
		},
	}
}
