// Package localstore is the persisted key-value cache shared by the session
// and player containers. Values live in ~/.config/canto/state.toml.
package localstore

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"sync"

	toml "github.com/pelletier/go-toml/v2"
)

// Data is the full set of persisted values. Zero values mean "unset"; the
// consumers supply their own defaults.
type Data struct {
	AuthToken    string
	AuthUser     string // profile JSON, mirrors the web client's cache
	PlayerVolume float64
	PlayerMuted  bool
	PlayerRepeat string

	hasVolume bool
}

// HasVolume reports whether a volume value was ever saved, letting the
// player distinguish "saved 0" from "never saved".
func (d Data) HasVolume() bool { return d.hasVolume }

// fileData is the on-disk shape. The volume is a pointer so the key is
// absent from the file until the player actually saves its prefs; auth
// writes alone never create it.
type fileData struct {
	AuthToken    string   `toml:"auth_token"`
	AuthUser     string   `toml:"auth_user"`
	PlayerVolume *float64 `toml:"player_volume,omitempty"`
	PlayerMuted  bool     `toml:"player_muted"`
	PlayerRepeat string   `toml:"player_repeat"`
}

const defaultStatePath = "~/.config/canto/state.toml"

// DefaultPath returns the default cache file path.
func DefaultPath() string { return defaultStatePath }

// Store loads, mutates, and saves the cache. Writes are serialized; the
// file itself has no cross-process guarantees, matching the browser
// localStorage it replaces.
type Store struct {
	mu   sync.Mutex
	path string
	data Data
}

// Open reads the cache at path (default when empty). A missing or corrupt
// file degrades to an empty cache rather than failing startup.
func Open(path string) *Store {
	resolved, err := resolvePath(path)
	if err != nil {
		return &Store{path: path}
	}
	s := &Store{path: resolved}

	file, err := os.Open(resolved)
	if err != nil {
		return s
	}
	defer func() { _ = file.Close() }()

	raw, err := io.ReadAll(file)
	if err != nil {
		return s
	}
	var data fileData
	if err := toml.Unmarshal(raw, &data); err != nil {
		return s
	}
	s.data = Data{
		AuthToken:    data.AuthToken,
		AuthUser:     data.AuthUser,
		PlayerMuted:  data.PlayerMuted,
		PlayerRepeat: data.PlayerRepeat,
	}
	if data.PlayerVolume != nil {
		s.data.PlayerVolume = *data.PlayerVolume
		s.data.hasVolume = true
	}
	return s
}

// Snapshot returns a copy of the cached values.
func (s *Store) Snapshot() Data {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.data
}

// Update applies fn to the cached values and persists the result. Save
// failures are returned but leave the in-memory state updated, so a
// read-only filesystem degrades to session-only persistence.
func (s *Store) Update(fn func(*Data)) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	fn(&s.data)
	return s.save()
}

// SetPlayerPrefs persists the player preferences. This is the only write
// path that records a volume, so unrelated saves keep a never-touched
// volume unset.
func (s *Store) SetPlayerPrefs(volume float64, muted bool, repeat string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data.PlayerVolume = volume
	s.data.PlayerMuted = muted
	s.data.PlayerRepeat = repeat
	s.data.hasVolume = true
	return s.save()
}

// SetAuth stores the token and serialized user together.
func (s *Store) SetAuth(token, userJSON string) error {
	return s.Update(func(d *Data) {
		d.AuthToken = token
		d.AuthUser = userJSON
	})
}

// ClearAuth removes the persisted session. Idempotent.
func (s *Store) ClearAuth() error {
	return s.Update(func(d *Data) {
		d.AuthToken = ""
		d.AuthUser = ""
	})
}

func (s *Store) save() error {
	if strings.TrimSpace(s.path) == "" {
		return nil
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create state dir: %w", err)
	}
	out := fileData{
		AuthToken:    s.data.AuthToken,
		AuthUser:     s.data.AuthUser,
		PlayerMuted:  s.data.PlayerMuted,
		PlayerRepeat: s.data.PlayerRepeat,
	}
	if s.data.hasVolume {
		volume := s.data.PlayerVolume
		out.PlayerVolume = &volume
	}
	raw, err := toml.Marshal(out)
	if err != nil {
		return fmt.Errorf("marshal state: %w", err)
	}
	if err := os.WriteFile(s.path, raw, 0o600); err != nil {
		return fmt.Errorf("write state: %w", err)
	}
	return nil
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultStatePath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", errors.New("path is empty")
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
