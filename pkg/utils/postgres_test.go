package utils

import (
	"testing"
	"time"
)

func TestPostgresPoolConfigDefaults(t *testing.T) {
	cfg := PostgresPoolConfig{}.withDefaults()
	if cfg.MaxOpenConns <= 0 || cfg.MaxIdleConns <= 0 {
		t.Fatalf("expected positive pool sizes, got %+v", cfg)
	}
	if cfg.PingTimeout <= 0 {
		t.Fatalf("expected positive ping timeout")
	}

	// Explicit values survive.
	cfg = PostgresPoolConfig{MaxOpenConns: 3, PingTimeout: time.Second}.withDefaults()
	if cfg.MaxOpenConns != 3 || cfg.PingTimeout != time.Second {
		t.Fatalf("expected explicit values kept, got %+v", cfg)
	}
}
