package runtime

import (
	"context"
	"errors"
	"time"

	cfgpkg "github.com/rzbill/rolo/internal/config"
	pebblestore "github.com/rzbill/rolo/internal/storage/pebble"
	"github.com/rzbill/rolo/internal/store"
	logpkg "github.com/rzbill/rolo/pkg/log"
)

// Options for building the Runtime.
type Options struct {
	DataDir       string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	Config        cfgpkg.Config
	// Metrics is an optional storage instrumentation hook.
	Metrics pebblestore.MetricsHook
	// Logger receives store diagnostics; nil means silent.
	Logger logpkg.Logger
}

// Runtime wires storage and config for a single-node instance.
type Runtime struct {
	db     *pebblestore.DB
	store  *store.Store
	config cfgpkg.Config
}

// Open initializes the underlying storage and returns a Runtime.
func Open(opts Options) (*Runtime, error) {
	db, err := pebblestore.Open(pebblestore.Options{
		DataDir:       opts.DataDir,
		Fsync:         opts.Fsync,
		FsyncInterval: opts.FsyncInterval,
		Metrics:       opts.Metrics,
	})
	if err != nil {
		return nil, err
	}
	st, err := store.Open(db, store.Options{
		CacheSize: opts.Config.Cache.Size,
		Logger:    opts.Logger,
	})
	if err != nil {
		_ = db.Close()
		return nil, err
	}
	rt := &Runtime{db: db, store: st, config: opts.Config}
	return rt, nil
}

// Close closes underlying resources.
func (r *Runtime) Close() error {
	if r.db == nil {
		return nil
	}
	return r.db.Close()
}

// CheckHealth performs a simple health check.
func (r *Runtime) CheckHealth(ctx context.Context) error {
	if r.db == nil {
		return errors.New("db not open")
	}
	it, err := r.db.NewIter(nil)
	if err != nil {
		return err
	}
	it.Close()
	return nil
}

// Store returns the user record store.
func (r *Runtime) Store() *store.Store { return r.store }

// DB exposes the underlying DB for advanced operations (internal use only).
func (r *Runtime) DB() *pebblestore.DB { return r.db }

// Config returns the runtime configuration.
func (r *Runtime) Config() cfgpkg.Config { return r.config }
