package config

import (
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Addr != ":8000" {
		t.Fatalf("unexpected addr: %q", cfg.Addr)
	}
	if cfg.ReadHeaderTimeout != 5*time.Second || cfg.ShutdownTimeout != 5*time.Second {
		t.Fatalf("unexpected timeouts: %+v", cfg)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("unexpected log level: %q", cfg.LogLevel)
	}
	// Static serving is opt-in; the default must not point inside the repo.
	if cfg.StaticDir != "" {
		t.Fatalf("expected static serving disabled by default, got %q", cfg.StaticDir)
	}
	if cfg.DatabasePath != "" {
		t.Fatalf("expected activity log disabled by default, got %q", cfg.DatabasePath)
	}
	if cfg.MessageRateLimit <= 0 {
		t.Fatalf("expected a positive default rate limit, got %d", cfg.MessageRateLimit)
	}
}
