package config

import (
	"os"
	"strconv"
)

// FromEnv overlays ROLO_* environment variables onto cfg.
func FromEnv(cfg *Config) {
	if v := os.Getenv("ROLO_HTTP_ADDR"); v != "" {
		cfg.Server.HTTPAddr = v
	}
	if v := os.Getenv("ROLO_LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("ROLO_LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("ROLO_DATA_DIR"); v != "" {
		cfg.Storage.DataDir = v
	}
	if v := os.Getenv("ROLO_FSYNC"); v != "" {
		cfg.Storage.Fsync = v
	}
	if v := os.Getenv("ROLO_FSYNC_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Storage.FsyncIntervalMs = n
		}
	}
	if v := os.Getenv("ROLO_QUEUE_CAPACITY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Resolver.QueueCapacity = n
		}
	}
	if v := os.Getenv("ROLO_POLL_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Resolver.PollAttempts = n
		}
	}
	if v := os.Getenv("ROLO_POLL_INTERVAL_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Resolver.PollIntervalMs = n
		}
	}
	if v := os.Getenv("ROLO_REQUEUE_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Resolver.RequeueDelayMs = n
		}
	}
	if v := os.Getenv("ROLO_PERSIST_ATTEMPTS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Resolver.PersistAttempts = n
		}
	}
	if v := os.Getenv("ROLO_PERSIST_DELAY_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Resolver.PersistDelayMs = n
		}
	}
	if v := os.Getenv("ROLO_MAX_BATCH"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Resolver.MaxBatch = n
		}
	}
	if v := os.Getenv("ROLO_UPSTREAM_URL"); v != "" {
		cfg.Upstream.BaseURL = v
	}
	if v := os.Getenv("ROLO_UPSTREAM_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Upstream.TimeoutMs = n
		}
	}
	if v := os.Getenv("ROLO_USER_AGENT"); v != "" {
		cfg.Upstream.UserAgent = v
	}
	if v := os.Getenv("ROLO_CACHE_SIZE"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			cfg.Cache.Size = n
		}
	}
}
