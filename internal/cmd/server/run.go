package serverrun

import (
	"context"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"sync"
	"syscall"
	"time"

	cfgpkg "github.com/rzbill/rolo/internal/config"
	"github.com/rzbill/rolo/internal/metrics"
	"github.com/rzbill/rolo/internal/runtime"
	httpserver "github.com/rzbill/rolo/internal/server/http"
	usersvc "github.com/rzbill/rolo/internal/services/users"
	pebblestore "github.com/rzbill/rolo/internal/storage/pebble"
	"github.com/rzbill/rolo/internal/upstream"
	logpkg "github.com/rzbill/rolo/pkg/log"
)

func getenvDefault(key, def string) string {
	if v := getenv(key); v != "" {
		return v
	}
	return def
}

// small wrapper to allow testing; replaced by os.Getenv at build time
var getenv = func(key string) string { return os.Getenv(key) }

type Options struct {
	DataDir       string
	HTTPAddr      string
	Fsync         pebblestore.FsyncMode
	FsyncInterval time.Duration
	Config        cfgpkg.Config
}

// Run starts the resolver worker and HTTP server and blocks until ctx is
// cancelled.
func Run(ctx context.Context, opts Options) error {
	// Be robust to callers that don't pass a signal-aware context
	// or if signal delivery needs to be observed here. We layer a
	// local signal context over the provided one.
	sctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()
	if opts.DataDir == "" {
		opts.DataDir = cfgpkg.DefaultDataDir()
	}

	// Build process-wide logger using env/ApplyConfig; defaults: level=info, format=text
	cfg := &logpkg.Config{
		Level:  getenvDefault("ROLO_LOG_LEVEL", "info"),
		Format: getenvDefault("ROLO_LOG_FORMAT", "text"),
	}
	procLogger, err := logpkg.ApplyConfig(cfg)
	if err != nil {
		// Fallback to a sane default
		lvl := logpkg.InfoLevel
		if l, e := logpkg.ParseLevel(cfg.Level); e == nil {
			lvl = l
		}
		procLogger = logpkg.NewLogger(logpkg.WithLevel(lvl), logpkg.WithFormatter(&logpkg.TextFormatter{}))
	}

	// Redirect stdlib logs (e.g., Pebble) to our logger
	logpkg.RedirectStdLog(procLogger)

	storeDir := filepath.Join(opts.DataDir, "store")
	rt, err := runtime.Open(runtime.Options{
		DataDir:       storeDir,
		Fsync:         opts.Fsync,
		FsyncInterval: opts.FsyncInterval,
		Config:        opts.Config,
		Metrics:       metrics.NewStorageMetrics(),
		Logger:        procLogger,
	})
	if err != nil {
		return err
	}
	defer rt.Close()

	fetcher, err := upstream.NewClient(upstream.Options{
		BaseURL:   opts.Config.Upstream.BaseURL,
		UserAgent: opts.Config.Upstream.UserAgent,
		Timeout:   opts.Config.Upstream.Timeout(),
	})
	if err != nil {
		return err
	}

	procLogger.Info("Starting rolo server",
		logpkg.Str("http", opts.HTTPAddr),
		logpkg.Str("data_dir", opts.DataDir),
		logpkg.Str("level", cfg.Level),
		logpkg.Str("format", cfg.Format),
		logpkg.Str("upstream", opts.Config.Upstream.BaseURL),
	)

	usersSvc := usersvc.NewWithLogger(rt, fetcher, procLogger)
	if err := usersSvc.Start(sctx); err != nil {
		return err
	}
	hsrv := httpserver.NewWithLogger(rt, usersSvc, procLogger)

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		if err := hsrv.ListenAndServe(sctx, opts.HTTPAddr); err != nil && sctx.Err() == nil {
			log.Printf("http error: %v", err)
		}
	}()

	<-sctx.Done()
	// Drain the HTTP server before stopping the worker, and stop the
	// worker before closing the runtime/DB to avoid races.
	hsrv.Close()
	wg.Wait()
	usersSvc.Stop()
	return nil
}
