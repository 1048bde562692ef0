// Package candidateform wires the candidate details form: state management,
// declarative validation, autosave to a local key/value store, and the
// submission artifact writer, fronted by an interactive terminal session.
// The Component constructor applies sensible defaults (embedded catalog,
// file-backed store under the user config dir, artifacts in the working
// directory) while remaining open to dependency injection.
package candidateform

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/goliatone/go-candidateform/pkg/autosave"
	"github.com/goliatone/go-candidateform/pkg/catalog"
	"github.com/goliatone/go-candidateform/pkg/form"
	"github.com/goliatone/go-candidateform/pkg/localstore"
	"github.com/goliatone/go-candidateform/pkg/renderers/tui"
	"github.com/goliatone/go-candidateform/pkg/submit"
	"github.com/goliatone/go-candidateform/pkg/validation"
)

// Values re-exports the form snapshot type for callers that only import the
// root package.
type Values = form.Values

// Summary re-exports the submission artifact type.
type Summary = submit.Summary

type config struct {
	storage        autosave.Storage
	storageKey     string
	saver          submit.Saver
	outputDir      string
	delay          time.Duration
	delaySet       bool
	catalog        *catalog.Catalog
	logger         *log.Logger
	notifier       submit.Notifier
	sessionOptions []tui.Option
}

// Option customises the component configuration.
type Option func(*config)

// WithStorage injects the persistence port backing autosave. Defaults to a
// file-backed store under the user config directory.
func WithStorage(storage autosave.Storage) Option {
	return func(c *config) {
		c.storage = storage
	}
}

// WithStorageKey overrides the versioned autosave key.
func WithStorageKey(key string) Option {
	return func(c *config) {
		c.storageKey = key
	}
}

// WithSaver injects the artifact output port, replacing the default
// directory saver.
func WithSaver(saver submit.Saver) Option {
	return func(c *config) {
		c.saver = saver
	}
}

// WithOutputDir points the default directory saver somewhere other than the
// working directory. Ignored when WithSaver is supplied.
func WithOutputDir(dir string) Option {
	return func(c *config) {
		c.outputDir = dir
	}
}

// WithSubmitDelay overrides the artificial submission latency.
func WithSubmitDelay(d time.Duration) Option {
	return func(c *config) {
		c.delay = d
		c.delaySet = true
	}
}

// WithCatalog overrides the enumerated option sets for nationality and
// preferred language.
func WithCatalog(cat *catalog.Catalog) Option {
	return func(c *config) {
		c.catalog = cat
	}
}

// WithLogger routes swallowed autosave errors and status notices to the
// given logger.
func WithLogger(logger *log.Logger) Option {
	return func(c *config) {
		c.logger = logger
	}
}

// WithNotifier registers a sink for transient submission notices, replacing
// the default logger-backed one.
func WithNotifier(notify submit.Notifier) Option {
	return func(c *config) {
		c.notifier = notify
	}
}

// WithSessionOptions forwards options to the terminal session, e.g. a custom
// prompt driver or clipboard.
func WithSessionOptions(options ...tui.Option) Option {
	return func(c *config) {
		c.sessionOptions = append(c.sessionOptions, options...)
	}
}

// Component ties the form manager, autosave bridge, and submission handler
// together behind one constructor.
type Component struct {
	manager        *form.Manager
	bridge         *autosave.Bridge
	handler        *submit.Handler
	catalog        *catalog.Catalog
	sessionOptions []tui.Option
}

// New constructs a fully wired component.
func New(options ...Option) (*Component, error) {
	cfg := &config{logger: log.Default()}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if cfg.catalog == nil {
		c, err := catalog.Default()
		if err != nil {
			return nil, err
		}
		cfg.catalog = c
	}

	validator, err := validation.New(validation.WithCatalog(cfg.catalog))
	if err != nil {
		return nil, err
	}
	manager, err := form.NewManager(validator)
	if err != nil {
		return nil, err
	}

	if cfg.storage == nil {
		path, err := localstore.DefaultPath()
		if err != nil {
			return nil, err
		}
		store, err := localstore.New(path)
		if err != nil {
			return nil, err
		}
		cfg.storage = store
	}

	bridgeOptions := []autosave.Option{autosave.WithLogger(cfg.logger)}
	if cfg.storageKey != "" {
		bridgeOptions = append(bridgeOptions, autosave.WithKey(cfg.storageKey))
	}
	bridge, err := autosave.NewBridge(cfg.storage, bridgeOptions...)
	if err != nil {
		return nil, err
	}

	if cfg.saver == nil {
		dir := cfg.outputDir
		if dir == "" {
			dir = "."
		}
		saver, err := submit.NewDirSaver(dir)
		if err != nil {
			return nil, err
		}
		cfg.saver = saver
	}

	notifier := cfg.notifier
	if notifier == nil {
		logger := cfg.logger
		notifier = func(n submit.Notice) {
			logger.Printf("submit: %s: %s", n.Kind, n.Message)
		}
	}

	handlerOptions := []submit.Option{submit.WithNotifier(notifier)}
	if cfg.delaySet {
		handlerOptions = append(handlerOptions, submit.WithDelay(cfg.delay))
	}
	handler, err := submit.New(cfg.saver, handlerOptions...)
	if err != nil {
		return nil, err
	}

	return &Component{
		manager:        manager,
		bridge:         bridge,
		handler:        handler,
		catalog:        cfg.catalog,
		sessionOptions: cfg.sessionOptions,
	}, nil
}

// Manager exposes the form state manager.
func (c *Component) Manager() *form.Manager {
	return c.manager
}

// Bridge exposes the autosave bridge.
func (c *Component) Bridge() *autosave.Bridge {
	return c.bridge
}

// Handler exposes the submission handler.
func (c *Component) Handler() *submit.Handler {
	return c.handler
}

// Run starts an interactive terminal session over the component.
func (c *Component) Run(ctx context.Context) error {
	options := append([]tui.Option{
		tui.WithBridge(c.bridge),
		tui.WithCatalog(c.catalog),
	}, c.sessionOptions...)

	session, err := tui.New(c.manager, c.handler, options...)
	if err != nil {
		return fmt.Errorf("candidateform: session: %w", err)
	}
	return session.Run(ctx)
}
