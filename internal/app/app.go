// Package app wires the parameter store, the screen registry and the event
// broker together for the terminal front end.
package app

import (
	"bytes"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/billie-coop/rsvp/internal/binder"
	"github.com/billie-coop/rsvp/internal/config"
	"github.com/billie-coop/rsvp/internal/events"
	"github.com/billie-coop/rsvp/internal/params"
	"github.com/billie-coop/rsvp/internal/watcher"
)

// watchDebounce is how long the parameters file must be quiet before an
// outside change is reported.
const watchDebounce = 500 * time.Millisecond

// App holds all the core services
type App struct {
	Config   config.Config
	Store    *params.Store
	Registry *binder.Registry

	// Event system
	EventBroker *events.Broker

	Logger *slog.Logger

	// watcher is nil when watching is disabled.
	watcher *watcher.FileWatcher
	changes chan string
}

// LoadStore prepares and loads the parameters document named by cfg.
func LoadStore(cfg config.Config, logger *slog.Logger) (*params.Store, error) {
	created, err := config.NewManager(cfg).EnsureParameters()
	if err != nil {
		return nil, err
	}
	if created {
		logger.Info("created parameters file from defaults", "path", cfg.Parameters)
	}

	opts := []params.Option{params.WithLogger(logger)}
	if cfg.RepairInvalid {
		opts = append(opts, params.WithDefaultFallback())
	}
	store, err := params.LoadFile(cfg.Parameters, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to load parameters: %w", err)
	}
	return store, nil
}

// New creates an app over store whose screens are built by tk, and
// registers the standard screens.
func New(cfg config.Config, store *params.Store, tk binder.Toolkit, broker *events.Broker, logger *slog.Logger) (*App, error) {
	a := &App{
		Config:      cfg,
		Store:       store,
		EventBroker: broker,
		Logger:      logger,
	}
	a.Registry = binder.NewRegistry(store, tk,
		binder.WithBroker(broker),
		binder.WithLogger(logger),
	)

	for _, s := range Screens(store) {
		if err := a.Registry.RegisterScreen(s.ID, s.Bindings...); err != nil {
			return nil, fmt.Errorf("failed to register screen: %w", err)
		}
	}

	if cfg.WatchInterval > 0 {
		a.changes = make(chan string, 1)
		a.watcher = watcher.NewWatcher(cfg.Parameters, watchDebounce, func(path string) {
			select {
			case a.changes <- path:
			default:
			}
		})
	}
	return a, nil
}

// Save writes the parameters to the configured file.
func (a *App) Save() error {
	if err := a.Registry.Save(a.Config.Parameters); err != nil {
		return err
	}
	if a.watcher != nil {
		a.watcher.Acknowledge()
	}
	return nil
}

// Changes delivers the path of the parameters file each time another
// program changes it. It is nil when watching is disabled.
func (a *App) Changes() <-chan string {
	if a.changes == nil {
		return nil
	}
	return a.changes
}

// Reload loads the values of the parameters file into the form after it was
// changed on disk. It reports false when the file holds what the store
// would write, as after our own save.
func (a *App) Reload() (bool, error) {
	data, err := os.ReadFile(a.Config.Parameters)
	if err != nil {
		return false, fmt.Errorf("failed to read parameters file: %w", err)
	}
	current, err := a.Store.Serialize()
	if err != nil {
		return false, err
	}
	if bytes.Equal(data, current) {
		return false, nil
	}
	if err := a.Import(a.Config.Parameters); err != nil {
		return false, err
	}
	a.Logger.Info("parameters reloaded after outside change", "path", a.Config.Parameters)
	return true, nil
}

// Import loads values from another parameters file into the form.
func (a *App) Import(path string) error {
	return a.Registry.Import(path)
}

// Render builds the widgets of every registered screen and starts watching
// the parameters file.
func (a *App) Render() error {
	for _, id := range a.Registry.Screens() {
		if err := a.Registry.RenderScreen(id); err != nil {
			return err
		}
	}
	if a.watcher != nil {
		a.watcher.Start(a.Config.WatchInterval)
	}
	return nil
}

// Close stops the watcher and tears down every screen.
func (a *App) Close() {
	if a.watcher != nil {
		a.watcher.Stop()
	}
	for _, id := range a.Registry.Screens() {
		if err := a.Registry.TeardownScreen(id); err != nil {
			a.Logger.Warn("failed to tear down screen", "screen", id, "error", err)
		}
	}
}
