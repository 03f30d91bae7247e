package app

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/sst/widgetlink/internal/config"
	"github.com/sst/widgetlink/internal/link"
	"github.com/sst/widgetlink/internal/logging"
	"github.com/sst/widgetlink/internal/status"
	"github.com/sst/widgetlink/internal/tui/theme"
)

// App owns the long-lived services shared by the TUI and the commands.
type App struct {
	Registry *link.Registry
	Logs     *logging.Service
	Status   *status.Service
	Config   *config.Config

	watcherCancelFuncs []context.CancelFunc
	cancelFuncsMutex   sync.Mutex
	watcherWG          sync.WaitGroup
}

// New builds the application around cfg. logs may be nil, in which case a
// fresh log service is created.
func New(cfg *config.Config, logs *logging.Service) *App {
	if cfg == nil {
		cfg = &config.Config{}
	}
	if logs == nil {
		logs = logging.NewService(logging.DefaultCapacity)
	}

	app := &App{
		Registry: link.New(
			link.WithDedup(cfg.Registry.Dedup),
			link.WithLogger(slog.Default()),
		),
		Logs:   logs,
		Status: status.NewService(),
		Config: cfg,
	}
	app.initTheme()
	return app
}

// initTheme applies the configured theme, registering the custom one first
// when it is configured.
func (app *App) initTheme() {
	tuiCfg := app.Config.TUI
	if len(tuiCfg.CustomTheme) > 0 {
		custom, err := theme.LoadCustomTheme(tuiCfg.CustomTheme)
		if err != nil {
			slog.Warn("Failed to load custom theme", "error", err)
		} else {
			theme.RegisterTheme(custom.Name(), custom)
		}
	}
	if tuiCfg.Theme == "" {
		return
	}

	if err := theme.SetTheme(tuiCfg.Theme); err != nil {
		slog.Warn("Failed to set theme from config, using default theme", "theme", tuiCfg.Theme, "error", err)
	} else {
		slog.Debug("Set theme from config", "theme", tuiCfg.Theme)
	}
}

// WatchLinks follows the configured link file in the background and calls
// fn with every valid revision. It is a no-op when no file is configured.
func (app *App) WatchLinks(ctx context.Context, fn func(config.LinkFile)) {
	path := app.Config.Links.File
	if path == "" {
		return
	}

	ctx, cancel := context.WithCancel(ctx)
	app.cancelFuncsMutex.Lock()
	app.watcherCancelFuncs = append(app.watcherCancelFuncs, cancel)
	app.cancelFuncsMutex.Unlock()

	app.watcherWG.Add(1)
	go func() {
		defer app.watcherWG.Done()
		defer logging.RecoverPanic("link-watcher", cancel)

		err := config.WatchLinks(ctx, path, fn)
		if err != nil && !errors.Is(err, context.Canceled) {
			slog.Error("Link file watcher stopped", "path", path, "error", err)
			app.Status.Error("link file watcher stopped: " + err.Error())
		}
	}()
}

// Shutdown stops the watchers and closes the service brokers.
func (app *App) Shutdown() {
	app.cancelFuncsMutex.Lock()
	for _, cancel := range app.watcherCancelFuncs {
		cancel()
	}
	app.watcherCancelFuncs = nil
	app.cancelFuncsMutex.Unlock()
	app.watcherWG.Wait()

	app.Status.Shutdown()
	app.Logs.Shutdown()
}
