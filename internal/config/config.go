package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Config is the top-level configuration loaded from file/env.
type Config struct {
	Server   ServerConfig   `json:"server"`
	Log      LogConfig      `json:"log"`
	Storage  StorageConfig  `json:"storage"`
	Resolver ResolverConfig `json:"resolver"`
	Upstream UpstreamConfig `json:"upstream"`
	Cache    CacheConfig    `json:"cache"`
}

// ServerConfig configures the serving surface.
type ServerConfig struct {
	HTTPAddr string `json:"httpAddr"`
}

// LogConfig configures process logging.
type LogConfig struct {
	Level  string `json:"level"`
	Format string `json:"format"`
}

// StorageConfig configures the record store.
type StorageConfig struct {
	DataDir         string `json:"dataDir"`
	Fsync           string `json:"fsync"`
	FsyncIntervalMs int    `json:"fsyncIntervalMs"`
}

// ResolverConfig captures the resolution pipeline tunables.
type ResolverConfig struct {
	QueueCapacity   int `json:"queueCapacity"`
	PollAttempts    int `json:"pollAttempts"`
	PollIntervalMs  int `json:"pollIntervalMs"`
	RequeueDelayMs  int `json:"requeueDelayMs"`
	PersistAttempts int `json:"persistAttempts"`
	PersistDelayMs  int `json:"persistDelayMs"`
	MaxBatch        int `json:"maxBatch"`
}

// PollInterval returns the delay between store polls.
func (r ResolverConfig) PollInterval() time.Duration {
	return time.Duration(r.PollIntervalMs) * time.Millisecond
}

// RequeueDelay returns the backoff before a failed fetch is requeued.
func (r ResolverConfig) RequeueDelay() time.Duration {
	return time.Duration(r.RequeueDelayMs) * time.Millisecond
}

// PersistDelay returns the backoff between persist attempts.
func (r ResolverConfig) PersistDelay() time.Duration {
	return time.Duration(r.PersistDelayMs) * time.Millisecond
}

// UpstreamConfig configures the user directory client.
type UpstreamConfig struct {
	BaseURL   string `json:"baseUrl"`
	TimeoutMs int    `json:"timeoutMs"`
	UserAgent string `json:"userAgent"`
}

// Timeout returns the per-request upstream timeout.
func (u UpstreamConfig) Timeout() time.Duration {
	return time.Duration(u.TimeoutMs) * time.Millisecond
}

// CacheConfig configures the in-memory hot-record cache.
type CacheConfig struct {
	Size int `json:"size"`
}

// Default returns built-in defaults.
func Default() Config {
	return Config{
		Server: ServerConfig{
			HTTPAddr: ":8080",
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
		Storage: StorageConfig{
			Fsync:           "interval",
			FsyncIntervalMs: 200,
		},
		Resolver: ResolverConfig{
			QueueCapacity:   1000,
			PollAttempts:    10,
			PollIntervalMs:  1000,
			RequeueDelayMs:  5000,
			PersistAttempts: 3,
			PersistDelayMs:  1000,
			MaxBatch:        100,
		},
		Upstream: UpstreamConfig{
			BaseURL:   "https://www.freelancer.com/api/users/0.1/users",
			TimeoutMs: 30000,
			UserAgent: "rolo/0.1",
		},
		Cache: CacheConfig{
			Size: 4096,
		},
	}
}

// Validate rejects settings the resolution pipeline cannot run with.
func (c Config) Validate() error {
	if c.Resolver.QueueCapacity <= 0 {
		return fmt.Errorf("resolver.queueCapacity must be positive, got %d", c.Resolver.QueueCapacity)
	}
	if c.Resolver.PollAttempts <= 0 {
		return fmt.Errorf("resolver.pollAttempts must be positive, got %d", c.Resolver.PollAttempts)
	}
	if c.Resolver.PersistAttempts <= 0 {
		return fmt.Errorf("resolver.persistAttempts must be positive, got %d", c.Resolver.PersistAttempts)
	}
	if c.Resolver.MaxBatch <= 0 {
		return fmt.Errorf("resolver.maxBatch must be positive, got %d", c.Resolver.MaxBatch)
	}
	if c.Upstream.BaseURL == "" {
		return errors.New("upstream.baseUrl is required")
	}
	return nil
}

// Load reads configuration from a JSON file. If path is empty, returns defaults.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, err
	}
	cfg := Default()
	ext := filepath.Ext(path)
	switch ext {
	case ".yaml", ".yml":
		return Config{}, errors.New("yaml config not supported yet; use JSON for now")
	default:
		if err := json.Unmarshal(b, &cfg); err != nil {
			return Config{}, err
		}
	}
	return cfg, nil
}
