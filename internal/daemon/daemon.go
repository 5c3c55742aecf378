package daemon

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync/atomic"

	"github.com/gofrs/flock"
	"github.com/google/uuid"

	"cinebot/internal/api"
	"cinebot/internal/cache"
	"cinebot/internal/config"
	"cinebot/internal/logging"
	"cinebot/internal/search"
	"cinebot/internal/services/kinopoisk"
	"cinebot/internal/services/rutube"
	"cinebot/internal/store"
)

// Daemon owns the long-lived components and enforces single-instance
// execution through a lock file.
type Daemon struct {
	cfg       *config.Config
	logger    *slog.Logger
	store     *store.Store
	cache     *cache.Cache
	service   *api.Service
	sessionID string

	lockPath string
	lock     *flock.Flock

	running atomic.Bool
	cancel  context.CancelFunc
}

// Status reports daemon runtime information.
type Status struct {
	Running      bool
	SessionID    string
	DatabasePath string
	CachePath    string
	LockFilePath string
}

// New assembles a daemon: store, cache, provider clients, orchestrator and
// facade, all from the given config.
func New(cfg *config.Config, logger *slog.Logger) (*Daemon, error) {
	if cfg == nil {
		return nil, errors.New("daemon requires a config")
	}
	if logger == nil {
		logger = logging.NewNop()
	}

	st, err := store.Open(cfg)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	c, err := cache.Open(cfg.CachePath(), cache.TTLs{
		Poster:   cfg.PosterTTL(),
		Metadata: cfg.MetadataTTL(),
		Links:    cfg.LinkTTL(),
	}, logger)
	if err != nil {
		_ = st.Close()
		return nil, fmt.Errorf("open cache: %w", err)
	}

	kp, err := kinopoisk.New(kinopoisk.Config{
		APIKey:     cfg.Kinopoisk.APIKey,
		BaseURL:    cfg.Kinopoisk.BaseURL,
		HTTPClient: &http.Client{Timeout: cfg.KinopoiskTimeout()},
	})
	if err != nil {
		_ = c.Close()
		_ = st.Close()
		return nil, fmt.Errorf("create kinopoisk client: %w", err)
	}

	rt, err := rutube.New(rutube.Config{
		BaseURL:      cfg.Rutube.BaseURL,
		SearchSuffix: cfg.Rutube.SearchSuffix,
		MaxLinks:     cfg.Rutube.MaxLinks,
		HTTPClient:   &http.Client{Timeout: cfg.RutubeTimeout()},
	})
	if err != nil {
		_ = c.Close()
		_ = st.Close()
		return nil, fmt.Errorf("create rutube client: %w", err)
	}

	orchestrator := search.New(c, kp, rt, kp, logger)
	service := api.NewService(cfg, st, c, orchestrator, logger)

	lockPath := cfg.LockPath()
	return &Daemon{
		cfg:       cfg,
		logger:    logging.NewComponentLogger(logger, "daemon"),
		store:     st,
		cache:     c,
		service:   service,
		sessionID: uuid.NewString(),
		lockPath:  lockPath,
		lock:      flock.New(lockPath),
	}, nil
}

// Service returns the facade callers use for all operations.
func (d *Daemon) Service() *api.Service {
	return d.service
}

// Start acquires the daemon lock. It fails when another instance holds it.
func (d *Daemon) Start(ctx context.Context) error {
	if d.running.Load() {
		return errors.New("daemon already running")
	}

	ok, err := d.lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return errors.New("another cinebot daemon instance is already running")
	}

	_, d.cancel = context.WithCancel(ctx)
	d.running.Store(true)
	d.logger.Info("daemon started",
		logging.String("session_id", d.sessionID),
		logging.String("lock", d.lockPath))
	return nil
}

// Stop releases the daemon lock.
func (d *Daemon) Stop() {
	if !d.running.Load() {
		return
	}
	if d.cancel != nil {
		d.cancel()
		d.cancel = nil
	}
	if err := d.lock.Unlock(); err != nil {
		d.logger.Warn("failed to release daemon lock", logging.Error(err))
	}
	d.running.Store(false)
	d.logger.Info("daemon stopped",
		logging.String("session_id", d.sessionID))
}

// Run starts the daemon and blocks until ctx is cancelled.
func (d *Daemon) Run(ctx context.Context) error {
	if err := d.Start(ctx); err != nil {
		return err
	}
	<-ctx.Done()
	d.Stop()
	return nil
}

// Close stops the daemon and releases the store and cache.
func (d *Daemon) Close() error {
	d.Stop()
	var errs []error
	if err := d.cache.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close cache: %w", err))
	}
	if err := d.store.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close store: %w", err))
	}
	return errors.Join(errs...)
}

// Status reports the current runtime state.
func (d *Daemon) Status() Status {
	return Status{
		Running:      d.running.Load(),
		SessionID:    d.sessionID,
		DatabasePath: d.store.Path(),
		CachePath:    d.cfg.CachePath(),
		LockFilePath: d.lockPath,
	}
}
