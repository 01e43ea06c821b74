package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Backend.BaseURL == "" {
		t.Error("default backend URL missing")
	}
	if cfg.Backend.APIPrefix != "/api" {
		t.Errorf("unexpected API prefix %q", cfg.Backend.APIPrefix)
	}
	if cfg.Storage.ExportFile != "shopping-assistant-data.json" {
		t.Errorf("unexpected export filename %q", cfg.Storage.ExportFile)
	}
	if cfg.UI.Theme != "auto" {
		t.Errorf("unexpected theme %q", cfg.UI.Theme)
	}
	if cfg.Logging.Debug {
		t.Error("debug logging must default off")
	}
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.APIPrefix != "/api" {
		t.Errorf("defaults not applied: %q", cfg.Backend.APIPrefix)
	}
}

func TestSaveAndLoadRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")

	cfg := DefaultConfig()
	cfg.Backend.BaseURL = "http://localhost:5000"
	cfg.Backend.Timeout = "5s"
	cfg.UI.Theme = "light"
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if loaded.Backend.BaseURL != "http://localhost:5000" {
		t.Errorf("base URL not round-tripped: %q", loaded.Backend.BaseURL)
	}
	if loaded.UI.Theme != "light" {
		t.Errorf("theme not round-tripped: %q", loaded.UI.Theme)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("EVY_BACKEND_URL", "http://localhost:9999")
	t.Setenv("EVY_HOME", "/tmp/evy-test-home")
	t.Setenv("EVY_DEBUG", "true")

	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Backend.BaseURL != "http://localhost:9999" {
		t.Errorf("env URL override missed: %q", cfg.Backend.BaseURL)
	}
	if cfg.Storage.Home != "/tmp/evy-test-home" {
		t.Errorf("env home override missed: %q", cfg.Storage.Home)
	}
	if cfg.Storage.SessionFile != filepath.Join("/tmp/evy-test-home", "session") {
		t.Errorf("session file must follow home: %q", cfg.Storage.SessionFile)
	}
	if !cfg.Logging.Debug {
		t.Error("env debug override missed")
	}
}

func TestLoad_MalformedYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("backend: [not a map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected parse error")
	}
}

func TestRequestTimeout(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend.Timeout = "5s"
	if got := cfg.RequestTimeout(); got != 5*time.Second {
		t.Errorf("RequestTimeout() = %v", got)
	}

	cfg.Backend.Timeout = "garbage"
	if got := cfg.RequestTimeout(); got != 60*time.Second {
		t.Errorf("expected 60s fallback, got %v", got)
	}
}
