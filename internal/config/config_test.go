package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaultsAndSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("BLACKJACK_CONFIG", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Saves.PreferredFormat != "JSON" {
		t.Fatalf("default preferred format = %q, want JSON", cfg.Saves.PreferredFormat)
	}
	if cfg.Saves.Dir == "" || cfg.Database.Path == "" {
		t.Fatalf("defaults missing: %+v", cfg)
	}

	cfg.Saves.PreferredFormat = "XML"
	if err := Save(cfg); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("config file not written: %v", err)
	}

	again, err := Load()
	if err != nil {
		t.Fatalf("Load after Save: %v", err)
	}
	if again.Saves.PreferredFormat != "XML" {
		t.Fatalf("preferred format after round trip = %q, want XML", again.Saves.PreferredFormat)
	}
}

func TestEnvOverride(t *testing.T) {
	t.Setenv("BLACKJACK_CONFIG", filepath.Join(t.TempDir(), "config.toml"))
	t.Setenv("BLACKJACK_SAVES_PREFERRED_FORMAT", "TXT")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Saves.PreferredFormat != "TXT" {
		t.Fatalf("env override ignored, got %q", cfg.Saves.PreferredFormat)
	}
}
