package search

import (
	"context"
	"encoding/json"
	"log/slog"

	"golang.org/x/sync/singleflight"

	"cinebot/internal/cache"
	"cinebot/internal/logging"
	"cinebot/internal/media"
	"cinebot/internal/services"
)

// MetadataProvider looks up movie metadata for a query, best match first.
type MetadataProvider interface {
	Search(ctx context.Context, query string) ([]media.Movie, error)
}

// LinkProvider looks up streaming links for a title. An empty list is a
// valid answer and never an error.
type LinkProvider interface {
	Search(ctx context.Context, title string) ([]media.StreamLink, error)
}

// PosterFetcher downloads poster images.
type PosterFetcher interface {
	FetchPoster(ctx context.Context, url string) ([]byte, error)
}

// Toggles is the per-user source configuration, read once per request so a
// mid-request settings change never splits one search across two states.
type Toggles struct {
	Metadata bool
	Links    bool
}

// FromCache records which parts of a result were served from cache.
type FromCache struct {
	Metadata bool
	Links    bool
}

// Result is the merged outcome of one search. It exists only for the
// duration of a request; persistence of history and stats is the caller's
// concern.
type Result struct {
	Query     string
	Key       string
	Metadata  *media.Movie
	Links     []media.StreamLink
	FromCache FromCache
}

// Orchestrator decides which providers to consult for a query, merges their
// answers with the cache, and degrades provider failures to absent fields.
// It never writes user history or statistics.
type Orchestrator struct {
	cache    *cache.Cache
	metadata MetadataProvider
	links    LinkProvider
	posters  PosterFetcher
	logger   *slog.Logger
	flight   singleflight.Group
}

// New creates an Orchestrator. posters may be nil; the poster URL itself is
// then cached in place of image bytes.
func New(c *cache.Cache, metadata MetadataProvider, links LinkProvider, posters PosterFetcher, logger *slog.Logger) *Orchestrator {
	return &Orchestrator{
		cache:    c,
		metadata: metadata,
		links:    links,
		posters:  posters,
		logger:   logging.NewComponentLogger(logger, "search"),
	}
}

// Search runs one lookup. Provider failures are absorbed: the corresponding
// field is simply absent from the result. With both toggles off the result
// is empty and valid.
func (o *Orchestrator) Search(ctx context.Context, raw string, toggles Toggles) Result {
	key := Normalize(raw)
	res := Result{Query: raw, Key: key}
	if key == "" || (!toggles.Metadata && !toggles.Links) {
		return res
	}

	if toggles.Metadata {
		res.Metadata, res.FromCache.Metadata = o.lookupMetadata(ctx, key)
	}

	if toggles.Links {
		linkKey := key
		if res.Metadata != nil && res.Metadata.Title != "" {
			// Many raw queries alias to one canonical title; keying links
			// by it raises the hit rate.
			linkKey = Normalize(res.Metadata.Title)
		}
		res.Links, res.FromCache.Links = o.lookupLinks(ctx, linkKey)
	}

	o.logger.Info("search completed",
		logging.String(logging.FieldQuery, key),
		logging.Bool("metadata_found", res.Metadata != nil),
		logging.Int("links", len(res.Links)),
		logging.Bool("metadata_cached", res.FromCache.Metadata),
		logging.Bool("links_cached", res.FromCache.Links))
	return res
}

func (o *Orchestrator) lookupMetadata(ctx context.Context, key string) (*media.Movie, bool) {
	if payload, ok := o.cache.Get(cache.Metadata, key); ok {
		var movie media.Movie
		if err := json.Unmarshal(payload, &movie); err == nil {
			return &movie, true
		}
		// Corrupt entry: fall through to a fresh fetch that overwrites it.
		o.logger.Warn("discarding unreadable metadata cache entry",
			logging.String(logging.FieldQuery, key))
	}

	v, err, _ := o.flight.Do("metadata:"+key, func() (any, error) {
		movies, err := o.metadata.Search(ctx, key)
		if err != nil {
			return nil, err
		}
		if len(movies) == 0 {
			return nil, services.ErrNotFound
		}
		// First provider-ranked candidate wins; no re-ranking here.
		movie := movies[0]
		if payload, err := json.Marshal(movie); err == nil {
			o.cache.Put(cache.Metadata, key, payload)
		}
		o.cachePoster(ctx, movie)
		return &movie, nil
	})
	if err != nil {
		// NotFound and provider failures alike degrade to absent; failures
		// are never cached.
		o.logger.Debug("metadata unavailable",
			logging.String(logging.FieldQuery, key),
			logging.String(logging.FieldProvider, "metadata"),
			logging.Error(err))
		return nil, false
	}
	return v.(*media.Movie), false
}

func (o *Orchestrator) lookupLinks(ctx context.Context, key string) ([]media.StreamLink, bool) {
	if payload, ok := o.cache.Get(cache.Links, key); ok {
		var links []media.StreamLink
		if err := json.Unmarshal(payload, &links); err == nil {
			return links, true
		}
		o.logger.Warn("discarding unreadable links cache entry",
			logging.String(logging.FieldQuery, key))
	}

	v, err, _ := o.flight.Do("links:"+key, func() (any, error) {
		links, err := o.links.Search(ctx, key)
		if err != nil {
			return nil, err
		}
		if links == nil {
			links = []media.StreamLink{}
		}
		// An empty list is a cacheable fact: the provider had nothing.
		if payload, err := json.Marshal(links); err == nil {
			o.cache.Put(cache.Links, key, payload)
		}
		return links, nil
	})
	if err != nil {
		o.logger.Debug("links unavailable",
			logging.String(logging.FieldQuery, key),
			logging.String(logging.FieldProvider, "links"),
			logging.Error(err))
		return nil, false
	}
	return v.([]media.StreamLink), false
}

// cachePoster stores the poster under its URL so its lifetime is decoupled
// from the metadata entry that referenced it.
func (o *Orchestrator) cachePoster(ctx context.Context, movie media.Movie) {
	if movie.PosterURL == "" {
		return
	}
	if _, ok := o.cache.Get(cache.Poster, movie.PosterURL); ok {
		return
	}
	if o.posters == nil {
		o.cache.Put(cache.Poster, movie.PosterURL, []byte(movie.PosterURL))
		return
	}
	data, err := o.posters.FetchPoster(ctx, movie.PosterURL)
	if err != nil {
		o.logger.Debug("poster fetch failed",
			logging.String("poster_url", movie.PosterURL),
			logging.Error(err))
		return
	}
	o.cache.Put(cache.Poster, movie.PosterURL, data)
}
