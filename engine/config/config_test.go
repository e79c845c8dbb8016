package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Application.Width == 0 || cfg.Application.Height == 0 {
		t.Error("default window size should be non-zero")
	}
	if cfg.Model.GlobalScale != 1.0 {
		t.Errorf("default global scale = %f, want 1.0", cfg.Model.GlobalScale)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("default log level = %q, want %q", cfg.Logging.Level, "info")
	}
}

func TestLoadEmptyPathReturnsDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") returned error: %v", err)
	}
	if *cfg != *Default() {
		t.Errorf("Load(\"\") = %+v, want defaults", cfg)
	}
}

func TestLoadMergesFileOverDefaults(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := `
[application]
name = "viewer"
width = 800

[model]
path = "assets/models/morph.gltf"
global_scale = 0.5
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.Application.Name != "viewer" {
		t.Errorf("name = %q, want %q", cfg.Application.Name, "viewer")
	}
	if cfg.Application.Width != 800 {
		t.Errorf("width = %d, want 800", cfg.Application.Width)
	}
	if cfg.Model.GlobalScale != 0.5 {
		t.Errorf("global scale = %f, want 0.5", cfg.Model.GlobalScale)
	}
	// Values absent from the file keep their defaults.
	if cfg.Application.Height != Default().Application.Height {
		t.Errorf("height = %d, want default %d", cfg.Application.Height, Default().Application.Height)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("level = %q, want default %q", cfg.Logging.Level, "info")
	}
}

func TestLoadMissingFileErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.toml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestLoadInvalidTOMLErrors(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bad.toml")
	if err := os.WriteFile(path, []byte("[application\nname="), 0o644); err != nil {
		t.Fatalf("writing config file: %v", err)
	}
	if _, err := Load(path); err == nil {
		t.Error("expected error for invalid TOML")
	}
}
