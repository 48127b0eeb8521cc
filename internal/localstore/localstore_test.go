package localstore

import (
	"os"
	"path/filepath"
	"testing"
)

func TestOpen_MissingFileDegradesToEmpty(t *testing.T) {
	s := Open(filepath.Join(t.TempDir(), "nope", "state.toml"))
	if got := s.Snapshot(); got != (Data{}) {
		t.Fatalf("snapshot = %#v, want zero", got)
	}
}

func TestOpen_CorruptFileDegradesToEmpty(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")
	if err := os.WriteFile(path, []byte("not = [valid"), 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	s := Open(path)
	if got := s.Snapshot(); got != (Data{}) {
		t.Fatalf("snapshot = %#v, want zero", got)
	}
}

func TestStore_RoundTripAndClear(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")

	s := Open(path)
	if err := s.SetAuth("tok", `{"id":1}`); err != nil {
		t.Fatalf("SetAuth: %v", err)
	}
	if err := s.SetPlayerPrefs(0.5, true, "one"); err != nil {
		t.Fatalf("SetPlayerPrefs: %v", err)
	}

	reopened := Open(path)
	got := reopened.Snapshot()
	if got.AuthToken != "tok" || got.AuthUser != `{"id":1}` {
		t.Fatalf("auth = %q/%q", got.AuthToken, got.AuthUser)
	}
	if got.PlayerVolume != 0.5 || !got.PlayerMuted || got.PlayerRepeat != "one" {
		t.Fatalf("player prefs = %#v", got)
	}
	if !got.HasVolume() {
		t.Fatal("HasVolume = false after save")
	}

	if err := reopened.ClearAuth(); err != nil {
		t.Fatalf("ClearAuth: %v", err)
	}
	if err := reopened.ClearAuth(); err != nil {
		t.Fatalf("second ClearAuth: %v", err)
	}
	got = Open(path).Snapshot()
	if got.AuthToken != "" || got.AuthUser != "" {
		t.Fatalf("auth after clear = %q/%q", got.AuthToken, got.AuthUser)
	}
	if got.PlayerVolume != 0.5 {
		t.Fatal("ClearAuth dropped unrelated keys")
	}
}

func TestStore_VolumeZeroIsDistinguishable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")
	if !func() bool {
		s := Open(path)
		return !s.Snapshot().HasVolume()
	}() {
		t.Fatal("fresh store claims a saved volume")
	}

	s := Open(path)
	if err := s.SetPlayerPrefs(0, true, "all"); err != nil {
		t.Fatalf("SetPlayerPrefs: %v", err)
	}
	if !Open(path).Snapshot().HasVolume() {
		t.Fatal("saved zero volume not detected")
	}
}

func TestStore_AuthWritesLeaveVolumeUnset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")

	s := Open(path)
	if err := s.SetAuth("tok", `{"id":1}`); err != nil {
		t.Fatalf("SetAuth: %v", err)
	}
	if err := s.ClearAuth(); err != nil {
		t.Fatalf("ClearAuth: %v", err)
	}

	got := Open(path).Snapshot()
	if got.HasVolume() {
		t.Fatal("auth-only writes recorded a volume")
	}
	if got.PlayerVolume != 0 || got.PlayerMuted || got.PlayerRepeat != "" {
		t.Fatalf("player prefs = %#v, want untouched", got)
	}
}
