package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.Resolver.QueueCapacity != 1000 {
		t.Fatalf("queue capacity default")
	}
	if cfg.Resolver.PollAttempts != 10 {
		t.Fatalf("poll attempts default")
	}
	if cfg.Resolver.PersistAttempts != 3 {
		t.Fatalf("persist attempts default")
	}
	if cfg.Resolver.MaxBatch != 100 {
		t.Fatalf("max batch default")
	}
	if cfg.Server.HTTPAddr != ":8080" {
		t.Fatalf("http addr default")
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("defaults should validate: %v", err)
	}
}

func TestLoadJSON(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "rolo.json")
	data := []byte(`{"server":{"httpAddr":":9090"},"resolver":{"queueCapacity":50,"pollIntervalMs":250},"upstream":{"userAgent":"rolo-test"}}`)
	if err := os.WriteFile(file, data, 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	cfg, err := Load(file)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.HTTPAddr != ":9090" {
		t.Fatalf("expected :9090, got %s", cfg.Server.HTTPAddr)
	}
	if cfg.Resolver.QueueCapacity != 50 {
		t.Fatalf("expected 50, got %d", cfg.Resolver.QueueCapacity)
	}
	// Fields absent from the file keep their defaults.
	if cfg.Resolver.PollAttempts != 10 {
		t.Fatalf("expected default poll attempts, got %d", cfg.Resolver.PollAttempts)
	}
	if cfg.Upstream.UserAgent != "rolo-test" {
		t.Fatalf("expected rolo-test, got %s", cfg.Upstream.UserAgent)
	}
}

func TestLoadRejectsYAML(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "rolo.yaml")
	if err := os.WriteFile(file, []byte("server:\n  httpAddr: :9090\n"), 0644); err != nil {
		t.Fatalf("write: %v", err)
	}
	if _, err := Load(file); err == nil {
		t.Fatalf("expected yaml rejection")
	}
}

func TestFromEnv(t *testing.T) {
	cfg := Default()
	os.Setenv("ROLO_HTTP_ADDR", ":7070")
	os.Setenv("ROLO_QUEUE_CAPACITY", "25")
	os.Setenv("ROLO_POLL_INTERVAL_MS", "100")
	os.Setenv("ROLO_UPSTREAM_URL", "http://localhost:9999/users")
	t.Cleanup(func() {
		os.Unsetenv("ROLO_HTTP_ADDR")
		os.Unsetenv("ROLO_QUEUE_CAPACITY")
		os.Unsetenv("ROLO_POLL_INTERVAL_MS")
		os.Unsetenv("ROLO_UPSTREAM_URL")
	})
	FromEnv(&cfg)
	if cfg.Server.HTTPAddr != ":7070" {
		t.Fatalf("env override addr")
	}
	if cfg.Resolver.QueueCapacity != 25 {
		t.Fatalf("env override capacity")
	}
	if cfg.Resolver.PollIntervalMs != 100 {
		t.Fatalf("env override poll interval")
	}
	if cfg.Upstream.BaseURL != "http://localhost:9999/users" {
		t.Fatalf("env override upstream url")
	}
}

func TestFromEnvIgnoresMalformedNumbers(t *testing.T) {
	cfg := Default()
	os.Setenv("ROLO_QUEUE_CAPACITY", "not-a-number")
	t.Cleanup(func() { os.Unsetenv("ROLO_QUEUE_CAPACITY") })
	FromEnv(&cfg)
	if cfg.Resolver.QueueCapacity != 1000 {
		t.Fatalf("malformed value should keep default, got %d", cfg.Resolver.QueueCapacity)
	}
}

func TestValidateRejectsBadResolver(t *testing.T) {
	cfg := Default()
	cfg.Resolver.QueueCapacity = 0
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for zero capacity")
	}

	cfg = Default()
	cfg.Resolver.MaxBatch = -1
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for negative max batch")
	}

	cfg = Default()
	cfg.Upstream.BaseURL = ""
	if err := cfg.Validate(); err == nil {
		t.Fatalf("expected validation error for empty upstream url")
	}
}

func TestResolverDurations(t *testing.T) {
	cfg := Default()
	if cfg.Resolver.PollInterval().Milliseconds() != 1000 {
		t.Fatalf("poll interval")
	}
	if cfg.Resolver.RequeueDelay().Milliseconds() != 5000 {
		t.Fatalf("requeue delay")
	}
	if cfg.Resolver.PersistDelay().Milliseconds() != 1000 {
		t.Fatalf("persist delay")
	}
	if cfg.Upstream.Timeout().Milliseconds() != 30000 {
		t.Fatalf("upstream timeout")
	}
}
