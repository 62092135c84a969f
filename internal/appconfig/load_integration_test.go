// internal/appconfig/load_integration_test.go
package appconfig

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func chdir(t *testing.T, dir string) {
	t.Helper()
	oldCwd, err := os.Getwd()
	if err != nil {
		t.Fatalf("getwd: %v", err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatalf("chdir: %v", err)
	}
	t.Cleanup(func() { _ = os.Chdir(oldCwd) })
}

func TestLoadDefaultPath(t *testing.T) {
	tempDir := t.TempDir()
	configDir := filepath.Join(tempDir, "config")
	if err := os.MkdirAll(configDir, 0o755); err != nil {
		t.Fatalf("mkdir config: %v", err)
	}
	payload := `{ "style": "mono", "listenAddr": "127.0.0.1:9000" }`
	if err := os.WriteFile(filepath.Join(configDir, "config.json"), []byte(payload), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	chdir(t, tempDir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.StyleName() != "mono" || cfg.Addr() != "127.0.0.1:9000" {
		t.Fatalf("unexpected config %+v", cfg)
	}
	if cfg.ConfigPath != DefaultConfigPath {
		t.Fatalf("expected config path %q, got %q", DefaultConfigPath, cfg.ConfigPath)
	}
}

func TestLoadLegacyFallback(t *testing.T) {
	tempDir := t.TempDir()
	if err := os.WriteFile(filepath.Join(tempDir, "config.json"), []byte(`{ "dataset": "legacy.csv" }`), 0o644); err != nil {
		t.Fatalf("write legacy config: %v", err)
	}
	chdir(t, tempDir)

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load error: %v", err)
	}
	if cfg.DatasetPath() != "legacy.csv" || cfg.ConfigPath != legacyConfigPath {
		t.Fatalf("unexpected legacy config %+v", cfg)
	}
}

func TestLoadMissingFileError(t *testing.T) {
	chdir(t, t.TempDir())

	_, err := Load("")
	if err == nil {
		t.Fatal("expected error for missing config")
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Fatalf("expected os.ErrNotExist in chain, got %v", err)
	}
}
