package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strconv"
	"syscall"
	"time"

	clientcmd "github.com/rzbill/rolo/internal/cmd/client"
	serverrun "github.com/rzbill/rolo/internal/cmd/server"
	cfgpkg "github.com/rzbill/rolo/internal/config"
	pebblestore "github.com/rzbill/rolo/internal/storage/pebble"
	logpkg "github.com/rzbill/rolo/pkg/log"
	"github.com/spf13/cobra"
)

func main() {
	// initialize logger for CLI
	// Respect ROLO_LOG_LEVEL for both CLI and server start output
	level := os.Getenv("ROLO_LOG_LEVEL")
	parsed, err := logpkg.ParseLevel(level)
	if err != nil || level == "" {
		parsed = logpkg.InfoLevel
	}
	logger := logpkg.NewLogger(
		logpkg.WithLevel(parsed),
		logpkg.WithFormatter(&logpkg.TextFormatter{}),
		logpkg.WithOutput(logpkg.NewConsoleOutput()),
	)

	// Redirect standard library logs (used by Pebble) to our logger
	logpkg.RedirectStdLog(logger)

	rootCmd := &cobra.Command{
		Use:   "rolo",
		Short: "Rolo user cache CLI",
		Long:  "Rolo is a single-binary read-through cache for user records. This CLI manages the server and talks to its HTTP API.",
	}

	// server start
	serverCmd := &cobra.Command{Use: "server", Short: "Server commands"}
	serverStartCmd := &cobra.Command{
		Use:     "start",
		Short:   "Start rolo server (HTTP API and UI)",
		Aliases: []string{"run"},
		RunE: func(cmd *cobra.Command, args []string) error {
			dataDir, _ := cmd.Flags().GetString("data")
			httpAddr, _ := cmd.Flags().GetString("http")
			fsyncMode, _ := cmd.Flags().GetString("fsync")
			fsyncIntervalMs, _ := cmd.Flags().GetInt("fsync-interval-ms")
			logLevel, _ := cmd.Flags().GetString("log-level")
			logFormat, _ := cmd.Flags().GetString("log-format")
			upstreamURL, _ := cmd.Flags().GetString("upstream")

			mode := pebblestore.FsyncModeAlways
			switch fsyncMode {
			case "never":
				mode = pebblestore.FsyncModeNever
			case "interval":
				mode = pebblestore.FsyncModeInterval
			case "always":
				mode = pebblestore.FsyncModeAlways
			default:
				return fmt.Errorf("invalid --fsync; use always|interval|never")
			}

			ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer cancel()

			if logLevel != "" {
				_ = os.Setenv("ROLO_LOG_LEVEL", logLevel)
			}
			if logFormat != "" {
				_ = os.Setenv("ROLO_LOG_FORMAT", logFormat)
			}
			cfg := cfgpkg.Default()
			cfgpkg.FromEnv(&cfg)
			if upstreamURL != "" {
				cfg.Upstream.BaseURL = upstreamURL
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			if err := serverrun.Run(ctx, serverrun.Options{
				DataDir:       dataDir,
				HTTPAddr:      httpAddr,
				Fsync:         mode,
				FsyncInterval: time.Duration(fsyncIntervalMs) * time.Millisecond,
				Config:        cfg,
			}); err != nil {
				return fmt.Errorf("server error: %w", err)
			}
			// brief delay to allow logs flush
			time.Sleep(100 * time.Millisecond)
			return nil
		},
	}
	serverStartCmd.Flags().String("data", os.Getenv("ROLO_DATA_DIR"), "Data directory (if not specified, uses OS-specific application data directory)")
	serverStartCmd.Flags().String("http", func() string {
		if v := os.Getenv("ROLO_HTTP_ADDR"); v != "" {
			return v
		}
		return ":8080"
	}(), "HTTP listen address (API + UI)")
	serverStartCmd.Flags().String("fsync", func() string {
		if v := os.Getenv("ROLO_FSYNC"); v != "" {
			return v
		}
		return "interval"
	}(), "Fsync mode: always|interval|never")
	serverStartCmd.Flags().Int("fsync-interval-ms", func() int {
		v, _ := strconv.Atoi(os.Getenv("ROLO_FSYNC_INTERVAL_MS"))
		if v == 0 {
			return 200
		}
		return v
	}(), "When --fsync=interval, group-commit window in ms (default 200)")
	serverStartCmd.Flags().String("log-level", os.Getenv("ROLO_LOG_LEVEL"), "Log level: debug|info|warn|error")
	serverStartCmd.Flags().String("log-format", os.Getenv("ROLO_LOG_FORMAT"), "Log format: text|json (default text)")
	serverStartCmd.Flags().String("upstream", "", "Upstream user directory base URL (overrides ROLO_UPSTREAM_URL)")
	serverCmd.AddCommand(serverStartCmd)
	rootCmd.AddCommand(serverCmd)

	// client commands (migrated into internal/cmd/client)
	rootCmd.AddCommand(clientcmd.NewGetCommand(apiURL))
	rootCmd.AddCommand(clientcmd.NewResolveCommand(apiURL))
	rootCmd.AddCommand(clientcmd.NewListCommand(apiURL))
	rootCmd.AddCommand(clientcmd.NewStatsCommand(apiURL))
	rootCmd.AddCommand(clientcmd.NewQueueCommand(apiURL))
	rootCmd.AddCommand(clientcmd.NewHealthCommand(apiURL))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func apiURL() string {
	if v := os.Getenv("ROLO_HTTP"); v != "" {
		return v
	}
	return "http://127.0.0.1:8080"
}
