package cmd

import (
	"fmt"
	"os"

	"github.com/hottake/hottake/internal/config"
	"github.com/hottake/hottake/internal/directory"
	"github.com/hottake/hottake/internal/event"
	"github.com/hottake/hottake/internal/logging"
	"github.com/hottake/hottake/internal/profile"
	"github.com/hottake/hottake/internal/session"
	"github.com/hottake/hottake/internal/state"
	"github.com/hottake/hottake/internal/tui"
)

// env bundles the wired-up application for a command invocation.
type env struct {
	cfg    *config.Config
	logger *logging.Logger
	bus    *event.Bus
	store  *profile.Store
	app    *state.App
	client *directory.Client
	ctrl   *session.Controller
}

// buildEnv loads config and connects the storage, directory client, shared
// state, and session controller to one event bus.
func buildEnv() (*env, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	logger := logging.NopLogger()
	if cfg.Logging.Enabled {
		logDir := cfg.Logging.Dir
		if logDir == "" {
			logDir = cfg.Storage.ResolveDir()
		}
		logger, err = logging.NewLogger(logDir, cfg.Logging.Level)
		if err != nil {
			// Logging must never keep the app from starting.
			logger = logging.NopLogger()
		}
	}

	storageDir := cfg.Storage.ResolveDir()
	if err := os.MkdirAll(storageDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	bus := event.NewBus()
	store := profile.NewStore(storageDir, bus, logger)

	user, fresh := store.GetOrCreate()
	if fresh {
		logger.Info("no stored profile, starting fresh")
	}

	app := state.NewApp(bus, user)
	client := directory.NewClient(cfg.API.BaseURL,
		directory.WithTimeout(cfg.API.Timeout()),
		directory.WithLogger(logger))
	ctrl := session.NewController(client, bus, logger)

	return &env{
		cfg:    cfg,
		logger: logger,
		bus:    bus,
		store:  store,
		app:    app,
		client: client,
		ctrl:   ctrl,
	}, nil
}

func (e *env) close() {
	e.app.Close()
	_ = e.logger.Close()
}

// runTUI opens the TUI with the environment's wiring.
func (e *env) runTUI(opts ...tui.Option) error {
	opts = append(opts,
		tui.WithTheme(e.cfg.TUI.Theme),
		tui.WithShowParticipantAges(e.cfg.TUI.ShowParticipantAges))
	return tui.Run(tui.NewModel(e.app, e.store, e.client, e.ctrl, opts...))
}
