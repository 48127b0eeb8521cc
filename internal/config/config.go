// Package config loads the Canto client configuration.
// Settings live in ~/.config/canto/config.toml; the API base URL can also
// be supplied via the CANTO_API_BASE_URL environment variable or a flag.
package config

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Config captures the fields the client needs.
type Config struct {
	BaseURL      string // API base URL; empty falls through to the dev default
	StatePath    string // local cache file; empty uses the localstore default
	LogPath      string // client log file
	PollSeconds  int    // task poll interval
	DefaultLimit int    // default list page size
}

const (
	defaultConfigPath  = "~/.config/canto/config.toml"
	defaultLogPath     = "~/.local/share/canto/canto.log"
	defaultPollSeconds = 2
	defaultListLimit   = 20

	baseURLEnv = "CANTO_API_BASE_URL"
)

// Load locates and parses the config, falling back to defaults when the
// file is missing. Base URL resolution order: explicit override argument,
// CANTO_API_BASE_URL, config file; an empty result means the API client's
// development default applies.
func Load(path, baseURLOverride string) (Config, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Config{
		LogPath:      mustExpand(defaultLogPath),
		PollSeconds:  defaultPollSeconds,
		DefaultLimit: defaultListLimit,
	}

	file, err := os.Open(resolved)
	switch {
	case errors.Is(err, os.ErrNotExist):
		// defaults only
	case err != nil:
		return Config{}, fmt.Errorf("open config: %w", err)
	default:
		defer func() { _ = file.Close() }()
		raw, err := io.ReadAll(file)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		var parsed struct {
			BaseURL     string `toml:"base_url"`
			StatePath   string `toml:"state_path"`
			LogPath     string `toml:"log_path"`
			PollSeconds int    `toml:"poll_seconds"`
			ListLimit   int    `toml:"list_limit"`
		}
		if err := toml.Unmarshal(raw, &parsed); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
		cfg.BaseURL = strings.TrimSpace(parsed.BaseURL)
		if p := strings.TrimSpace(parsed.StatePath); p != "" {
			cfg.StatePath = mustExpand(p)
		}
		if p := strings.TrimSpace(parsed.LogPath); p != "" {
			cfg.LogPath = mustExpand(p)
		}
		if parsed.PollSeconds > 0 {
			cfg.PollSeconds = parsed.PollSeconds
		}
		if parsed.ListLimit > 0 {
			cfg.DefaultLimit = parsed.ListLimit
		}
	}

	if env := strings.TrimSpace(os.Getenv(baseURLEnv)); env != "" {
		cfg.BaseURL = env
	}
	if override := strings.TrimSpace(baseURLOverride); override != "" {
		cfg.BaseURL = override
	}
	return cfg, nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
