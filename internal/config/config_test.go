package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadReturnsDefaultsWhenMissing(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load with no file: %v", err)
	}
	if cfg.Appearance.Theme != "flexoki-dark" {
		t.Fatalf("default theme = %q", cfg.Appearance.Theme)
	}
	if cfg.General.PageSize != 20 {
		t.Fatalf("default page size = %d", cfg.General.PageSize)
	}
	if cfg.TUI.RefreshIntervalSec != 60 {
		t.Fatalf("default refresh interval = %d", cfg.TUI.RefreshIntervalSec)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg := DefaultConfig()
	cfg.Server.URL = "http://localhost:8080"
	cfg.Appearance.Theme = "terminal"
	cfg.TUI.AutoRefresh = true

	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if !Exists() {
		t.Fatal("Exists = false after Save")
	}

	loaded, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Server.URL != "http://localhost:8080" {
		t.Fatalf("server url = %q", loaded.Server.URL)
	}
	if loaded.Appearance.Theme != "terminal" || !loaded.TUI.AutoRefresh {
		t.Fatalf("round trip lost fields: %+v", loaded)
	}
}

func TestLoadKeepsDefaultsForUnsetKeys(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", dir)

	path := filepath.Join(dir, "horaboard", "config.toml")
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatalf("mkdir: %v", err)
	}
	if err := os.WriteFile(path, []byte("[server]\nurl = \"http://api.local\"\n"), 0o600); err != nil {
		t.Fatalf("write partial config: %v", err)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.URL != "http://api.local" {
		t.Fatalf("server url = %q", cfg.Server.URL)
	}
	if cfg.General.PageSize != 20 {
		t.Fatalf("partial config clobbered defaults: page size = %d", cfg.General.PageSize)
	}
}

func TestServerURLPrefersEnv(t *testing.T) {
	t.Setenv("HORABOARD_SERVER", "http://from-env:9999")
	cfg := DefaultConfig()
	cfg.Server.URL = "http://from-file:8080"
	if got := ServerURL(cfg); got != "http://from-env:9999" {
		t.Fatalf("ServerURL = %q, want env value", got)
	}

	t.Setenv("HORABOARD_SERVER", "")
	if got := ServerURL(cfg); got != "http://from-file:8080" {
		t.Fatalf("ServerURL = %q, want config value", got)
	}
}
