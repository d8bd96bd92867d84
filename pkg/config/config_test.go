package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"
)

func TestConfigLoadSave(t *testing.T) {
	// Create a temporary directory to act as the user's home directory
	tempDir, err := os.MkdirTemp("", "orarctl-config-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}
	defer os.RemoveAll(tempDir)

	t.Setenv("HOME", tempDir)
	t.Setenv("USERPROFILE", tempDir)

	// 1. Load with no existing file
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("expected no error when loading missing config, got: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("expected defaults for a missing file.\nGot: %+v\nExpected: %+v", cfg, Default())
	}

	// 2. Modify and save
	cfg.Source.HTTPTimeout = 15 * time.Second
	cfg.Cache.Size = 50
	cfg.Server.AllowedOrigins = []string{"https://orar.example.com"}
	cfg.Preferences.SavedGroups = []string{"Grupa 211", "Grupa 212"}
	cfg.Preferences.AccentColor = "42"
	cfg.Export.SemesterStart = "2026-02-23"

	if err := Save(cfg, ""); err != nil {
		t.Fatalf("failed to save config: %v", err)
	}

	configPath := filepath.Join(tempDir, ".orarctl.yaml")
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		t.Errorf("expected config file to be created at %s", configPath)
	}

	// 3. Load the saved file
	loaded, err := Load("")
	if err != nil {
		t.Fatalf("failed to load existing config: %v", err)
	}
	if !reflect.DeepEqual(cfg, loaded) {
		t.Errorf("loaded config does not match saved config.\nGot: %+v\nExpected: %+v", loaded, cfg)
	}
}

func TestConfigExplicitPath(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	err := os.WriteFile(path, []byte("server:\n  port: \"9000\"\ncache:\n  size: 7\n"), 0644)
	if err != nil {
		t.Fatalf("failed to write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Server.Port != "9000" || cfg.Cache.Size != 7 {
		t.Errorf("file values not applied: %+v", cfg)
	}
	// untouched keys keep their defaults
	if cfg.Log.Level != "info" || cfg.Export.Weeks != 14 {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestConfigEnvOverride(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	t.Setenv("ORAR_SERVER_PORT", "9090")
	t.Setenv("ORAR_CACHE_SIZE", "5")
	t.Setenv("ORAR_SOURCE_HTTP_TIMEOUT", "3s")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Server.Port != "9090" {
		t.Errorf("expected port 9090, got %s", cfg.Server.Port)
	}
	if cfg.Cache.Size != 5 {
		t.Errorf("expected cache size 5, got %d", cfg.Cache.Size)
	}
	if cfg.Source.HTTPTimeout != 3*time.Second {
		t.Errorf("expected 3s timeout, got %s", cfg.Source.HTTPTimeout)
	}
}

func TestConfigUpdateSkipsEnvOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orarctl.yaml")
	if err := os.WriteFile(path, []byte("log:\n  level: debug\n"), 0644); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	t.Setenv("ORAR_SERVER_PORT", "9999")

	err := Update(path, func(cfg *Config) {
		cfg.Preferences.SavedGroups = append(cfg.Preferences.SavedGroups, "Grupa 211")
	})
	if err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	// still overridden at runtime
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Server.Port != "9999" {
		t.Errorf("expected env port 9999, got %s", cfg.Server.Port)
	}

	os.Unsetenv("ORAR_SERVER_PORT")
	cfg, err = Load(path)
	if err != nil {
		t.Fatalf("failed to load config: %v", err)
	}
	if cfg.Server.Port != "8080" {
		t.Errorf("expected env override not to be persisted, got port %s", cfg.Server.Port)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("expected file value to survive, got %s", cfg.Log.Level)
	}
	if !reflect.DeepEqual(cfg.Preferences.SavedGroups, []string{"Grupa 211"}) {
		t.Errorf("expected saved group to be persisted, got %v", cfg.Preferences.SavedGroups)
	}
}

func TestConfigParseError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	err := os.WriteFile(path, []byte("source:\n  base_url: [unclosed\n"), 0644)
	if err != nil {
		t.Fatalf("failed to write invalid yaml: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Errorf("expected error when loading invalid yaml, got nil")
	}
}

func TestIsProduction(t *testing.T) {
	cfg := Default()
	if cfg.IsProduction() {
		t.Errorf("default env must not be production")
	}
	cfg.Server.Env = "production"
	if !cfg.IsProduction() {
		t.Errorf("expected production env to be detected")
	}
}
