package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"cinebot/internal/cache"
	"cinebot/internal/config"
	"cinebot/internal/logging"
	"cinebot/internal/search"
	"cinebot/internal/store"
)

// ErrInvalidPreferenceField indicates an unrecognized preference name.
var ErrInvalidPreferenceField = errors.New("invalid preference field")

// ErrEmptyQuery indicates a search request with no usable query text.
var ErrEmptyQuery = errors.New("query cannot be empty")

// Service is the single entry point callers use. It wires the user store,
// the cache, and the orchestrator behind per-user operations.
type Service struct {
	store        *store.Store
	cache        *cache.Cache
	orchestrator *search.Orchestrator
	logger       *slog.Logger
	historyLimit int
	statsLimit   int
}

// NewService assembles the facade from already-opened components.
func NewService(cfg *config.Config, st *store.Store, c *cache.Cache, o *search.Orchestrator, logger *slog.Logger) *Service {
	return &Service{
		store:        st,
		cache:        c,
		orchestrator: o,
		logger:       logging.NewComponentLogger(logger, "api"),
		historyLimit: cfg.Search.HistoryLimit,
		statsLimit:   cfg.Search.StatsLimit,
	}
}

// Search runs one lookup for the user. The user's toggles are read once at
// the start so a concurrent settings change cannot split the request. The
// query is recorded in history before providers are consulted; if the
// lookup resolves to a title, its view counter is incremented.
//
// Provider failures are already absorbed by the orchestrator. An error here
// means the storage layer failed, which is fatal for the request.
func (s *Service) Search(ctx context.Context, userID int64, query string) (search.Result, error) {
	if strings.TrimSpace(query) == "" {
		return search.Result{}, ErrEmptyQuery
	}

	prefs, err := s.store.Preferences(ctx, userID)
	if err != nil {
		return search.Result{}, fmt.Errorf("load preferences: %w", err)
	}

	if err := s.store.RecordSearch(ctx, userID, query); err != nil {
		return search.Result{}, err
	}

	res := s.orchestrator.Search(ctx, query, search.Toggles{
		Metadata: prefs.UseMetadata,
		Links:    prefs.UseLinks,
	})

	if res.Metadata != nil {
		if err := s.store.RecordView(ctx, userID, *res.Metadata); err != nil {
			return search.Result{}, err
		}
	}

	s.logger.Info("search handled",
		logging.Int64(logging.FieldUserID, userID),
		logging.String(logging.FieldQuery, res.Key),
		logging.Bool("metadata_found", res.Metadata != nil),
		logging.Int("links", len(res.Links)))
	return res, nil
}

// History returns the user's most recent searches, newest first.
func (s *Service) History(ctx context.Context, userID int64) ([]store.HistoryEntry, error) {
	return s.store.History(ctx, userID, s.historyLimit)
}

// Stats returns the user's most viewed titles.
func (s *Service) Stats(ctx context.Context, userID int64) ([]store.ViewStat, error) {
	return s.store.Stats(ctx, userID, s.statsLimit)
}

// Preferences returns the user's current toggles, creating defaults on
// first access.
func (s *Service) Preferences(ctx context.Context, userID int64) (store.Preferences, error) {
	return s.store.Preferences(ctx, userID)
}

// SetPreference writes one toggle by its user-facing name.
func (s *Service) SetPreference(ctx context.Context, userID int64, name string, value bool) error {
	field, err := ParsePreferenceField(name)
	if err != nil {
		return err
	}
	return s.store.SetPreference(ctx, userID, field, value)
}

// TogglePreference flips one toggle by its user-facing name and returns the
// new value.
func (s *Service) TogglePreference(ctx context.Context, userID int64, name string) (bool, error) {
	field, err := ParsePreferenceField(name)
	if err != nil {
		return false, err
	}
	return s.store.TogglePreference(ctx, userID, field)
}

// ClearCache clears one cache namespace by name, or every namespace for
// "all". It returns the number of entries removed.
func (s *Service) ClearCache(name string) (int, error) {
	if strings.EqualFold(strings.TrimSpace(name), "all") {
		return s.cache.ClearAll(), nil
	}
	ns, err := cache.ParseNamespace(name)
	if err != nil {
		return 0, err
	}
	return s.cache.Clear(ns), nil
}

// CacheSizes reports the number of live entries per namespace.
func (s *Service) CacheSizes() map[string]int {
	sizes := make(map[string]int, len(cache.Namespaces()))
	for _, ns := range cache.Namespaces() {
		sizes[ns.String()] = s.cache.Len(ns)
	}
	return sizes
}

// ParsePreferenceField resolves a user-facing toggle name, accepting the
// provider names as aliases.
func ParsePreferenceField(name string) (store.PreferenceField, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "metadata", "kp", "kinopoisk", "use_metadata":
		return store.PreferenceMetadata, nil
	case "links", "rutube", "use_links":
		return store.PreferenceLinks, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidPreferenceField, name)
	}
}
