package db

import (
	"testing"

	"github.com/rs/zerolog"

	"tippy-tappy/internal/config"
	"tippy-tappy/internal/tipping"
)

func TestOpenBackendFile(t *testing.T) {
	cfg := config.Default()
	backend, err := OpenBackend(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("open backend: %v", err)
	}
	if backend != nil {
		t.Fatalf("expected nil backend without a path, got %T", backend)
	}

	cfg.StorePath = t.TempDir() + "/store.json"
	backend, err = OpenBackend(cfg, zerolog.Nop())
	if err != nil {
		t.Fatalf("open backend: %v", err)
	}
	if _, ok := backend.(*tipping.FileBackend); !ok {
		t.Fatalf("expected file backend, got %T", backend)
	}
}

func TestOpenBackendErrors(t *testing.T) {
	cfg := config.Default()
	cfg.StoreDriver = "redis"
	if _, err := OpenBackend(cfg, zerolog.Nop()); err == nil {
		t.Fatalf("expected unknown driver error")
	}

	cfg.StoreDriver = config.DriverPostgres
	cfg.DatabaseURL = ""
	if _, err := OpenBackend(cfg, zerolog.Nop()); err == nil {
		t.Fatalf("expected missing database url error")
	}
}
