package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/five82/popcorn/internal/config"
	"github.com/five82/popcorn/internal/logging"
	"github.com/five82/popcorn/internal/omdb"
	"github.com/five82/popcorn/internal/prefs"
	"github.com/five82/popcorn/internal/storage"
	"github.com/five82/popcorn/internal/ui"
	"github.com/five82/popcorn/internal/watchlist"
)

// Options configure the popcorn application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/popcorn/prefs.toml
	LogLevel   string // overrides log_level from the config file when set
}

// Env holds the resources shared by the TUI and the CLI commands.
type Env struct {
	Config  config.Config
	Logger  *slog.Logger
	API     *omdb.Client
	Store   storage.KV
	Watched *watchlist.Collection

	logs io.Closer
}

// Open loads configuration and opens logging, storage, the watched list and
// the OMDb client. Callers must Close the returned Env.
func Open(ctx context.Context, opts Options, target logging.Target) (*Env, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if level := strings.TrimSpace(opts.LogLevel); level != "" {
		cfg.LogLevel = strings.ToLower(level)
	}

	logger, logs, err := logging.NewFromConfig(&cfg, target)
	if err != nil {
		return nil, fmt.Errorf("init logging: %w", err)
	}

	client, err := omdb.NewClient(cfg.APIBaseURL, cfg.APIKey)
	if err != nil {
		_ = logs.Close()
		return nil, fmt.Errorf("init omdb client: %w", err)
	}

	store, err := storage.Open(ctx, cfg.Storage)
	if err != nil {
		_ = logs.Close()
		return nil, fmt.Errorf("open storage: %w", err)
	}

	watched, err := watchlist.Open(ctx, store, cfg.Storage.Key, nil, logger)
	if err != nil {
		_ = store.Close()
		_ = logs.Close()
		return nil, fmt.Errorf("open watched list: %w", err)
	}

	logger.Debug("popcorn environment ready",
		slog.String("component", "app"),
		slog.String("storage_driver", cfg.Storage.Driver),
		slog.String("api_base_url", cfg.APIBaseURL),
	)
	return &Env{Config: cfg, Logger: logger, API: client, Store: store, Watched: watched, logs: logs}, nil
}

// Close releases the storage connection and the log file.
func (e *Env) Close() error {
	if e == nil {
		return nil
	}
	var errs []error
	if e.Store != nil {
		errs = append(errs, e.Store.Close())
	}
	if e.logs != nil {
		errs = append(errs, e.logs.Close())
	}
	return errors.Join(errs...)
}

// Run boots the popcorn TUI until the user quits or the context is cancelled.
func Run(ctx context.Context, opts Options) (err error) {
	env, err := Open(ctx, opts, logging.TargetFile)
	if err != nil {
		return err
	}
	defer func() {
		err = errors.Join(err, env.Close())
	}()

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	env.Logger.Info("starting tui", slog.String("component", "app"), slog.Int("watched", env.Watched.Len()))
	return ui.Run(ui.Options{
		Context:   ctx,
		API:       env.API,
		Watched:   env.Watched,
		Logger:    env.Logger,
		Prefs:     prefs.Load(prefsPath),
		PrefsPath: prefsPath,
	})
}
