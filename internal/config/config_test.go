package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "config.toml"), "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "" {
		t.Fatalf("BaseURL = %q, want empty (dev default applies downstream)", cfg.BaseURL)
	}
	if cfg.PollSeconds != defaultPollSeconds {
		t.Fatalf("PollSeconds = %d", cfg.PollSeconds)
	}
	if cfg.DefaultLimit != defaultListLimit {
		t.Fatalf("DefaultLimit = %d", cfg.DefaultLimit)
	}
	if cfg.LogPath == "" {
		t.Fatal("LogPath empty")
	}
}

func TestLoad_ParsesFileAndAppliesOverrides(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	content := "base_url = \"https://music.example.com/api\"\npoll_seconds = 5\nlist_limit = 50\n"
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path, "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "https://music.example.com/api" {
		t.Fatalf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.PollSeconds != 5 || cfg.DefaultLimit != 50 {
		t.Fatalf("cfg = %#v", cfg)
	}

	t.Setenv(baseURLEnv, "https://env.example.com")
	cfg, err = Load(path, "")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "https://env.example.com" {
		t.Fatalf("env BaseURL = %q", cfg.BaseURL)
	}

	cfg, err = Load(path, "https://flag.example.com")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.BaseURL != "https://flag.example.com" {
		t.Fatalf("override BaseURL = %q", cfg.BaseURL)
	}
}

func TestLoad_RejectsMalformedFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("base_url = [broken"), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := Load(path, ""); err == nil {
		t.Fatal("Load accepted malformed config")
	}
}
