package cli

import (
	"fmt"
	"io"
	"log"

	"github.com/harrisonrobin/taskpad/pkg/config"
	"github.com/harrisonrobin/taskpad/pkg/kv"
	"github.com/harrisonrobin/taskpad/pkg/notify"
	"github.com/harrisonrobin/taskpad/pkg/session"
	"github.com/harrisonrobin/taskpad/pkg/store"
)

// App wires the config, the key-value backend and the task store for one
// command invocation.
type App struct {
	configPath string
	overrides  config.Config
	ephemeral  bool

	cfg      *config.Config
	backend  kv.Store
	store    *store.Store
	notifier *notify.Notifier
	session  *session.Session
	logger   *log.Logger
}

type Option func(*App)

// WithBackend makes the app use backend instead of opening the configured one.
func WithBackend(backend kv.Store) Option {
	return func(app *App) { app.backend = backend }
}

// WithLogOutput redirects store warnings.
func WithLogOutput(w io.Writer) Option {
	return func(app *App) { app.logger = log.New(w, "", 0) }
}

func newApp(opts ...Option) *App {
	app := &App{logger: log.Default()}
	for _, opt := range opts {
		opt(app)
	}
	return app
}

func (app *App) setup() error {
	var cfg *config.Config
	var err error
	if app.configPath != "" {
		cfg, err = config.LoadFrom(app.configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return err
	}

	if app.overrides.Backend != "" {
		cfg.Backend = app.overrides.Backend
	}
	if app.overrides.Path != "" {
		cfg.Path = app.overrides.Path
	}
	if app.overrides.Key != "" {
		cfg.Key = app.overrides.Key
	}
	if app.ephemeral {
		cfg.Backend = kv.MEMORY
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	app.cfg = cfg

	if app.backend == nil {
		path, err := cfg.DataPath()
		if err != nil {
			return err
		}
		backend, err := kv.Open(cfg.Backend, path)
		if err != nil {
			return fmt.Errorf("could not open %s storage at %s: %w", cfg.Backend, path, err)
		}
		app.backend = backend
	}

	app.notifier = notify.New(notify.WithDelay(cfg.Delay()))
	app.store = store.New(app.backend, store.WithKey(cfg.Key), store.WithLogger(app.logger))
	app.session = session.New(app.store, app.notifier)
	return nil
}

func (app *App) close() error {
	if app.backend == nil {
		return nil
	}
	return app.backend.Close()
}
