package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/dantte-lp/antcolonyd/internal/config"
)

func TestDefaultConfigPassesValidation(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()

	if cfg.IP != "0.0.0.0" || cfg.Port != 8080 {
		t.Fatalf("defaults = %+v, want ip=0.0.0.0 port=8080", cfg)
	}
	if cfg.Generator.ColumnMin != 5 || cfg.Generator.LineMin != 4 {
		t.Fatalf("generator defaults = %+v, want columnMin=5 lineMin=4", cfg.Generator)
	}
	if err := config.Validate(cfg); err != nil {
		t.Fatalf("DefaultConfig() failed validation: %v", err)
	}
}

func TestLoadRegeneratesMissingFile(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 8080 {
		t.Fatalf("Port = %d, want 8080", cfg.Port)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("expected config file to be regenerated: %v", err)
	}
}

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := filepath.Join(dir, "config.json")
	if err := os.WriteFile(path, []byte(`{"port": 9090, "lobby": {"recordGames": true}}`), 0o644); err != nil {
		t.Fatalf("WriteFile() error = %v", err)
	}

	cfg, err := config.Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.Port != 9090 {
		t.Fatalf("Port = %d, want 9090", cfg.Port)
	}
	if !cfg.Lobby.RecordGames {
		t.Fatalf("Lobby.RecordGames = false, want true")
	}
	if cfg.Generator.ColumnMin != 5 {
		t.Fatalf("Generator.ColumnMin = %d, want default 5", cfg.Generator.ColumnMin)
	}
}

func TestValidateRejectsZeroPort(t *testing.T) {
	t.Parallel()

	cfg := config.DefaultConfig()
	cfg.Port = 0
	if err := config.Validate(cfg); err == nil {
		t.Fatalf("expected validation error for zero port")
	}
}
