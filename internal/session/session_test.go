package session

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cantoapp/canto/internal/api"
	"github.com/cantoapp/canto/internal/localstore"
)

type fakeAPI struct {
	loginResult   *api.LoginResult
	loginErr      error
	profile       api.Profile
	profileErr    error
	updateResult  api.Profile
	updateErr     error
	deleteErr     error
	registerCalls int
}

func (f *fakeAPI) Login(ctx context.Context, creds api.Credentials) (*api.LoginResult, error) {
	return f.loginResult, f.loginErr
}

func (f *fakeAPI) Register(ctx context.Context, req api.RegisterRequest) (api.Profile, error) {
	f.registerCalls++
	return api.Profile{"id": float64(1)}, nil
}

func (f *fakeAPI) FetchProfile(ctx context.Context) (api.Profile, error) {
	return f.profile, f.profileErr
}

func (f *fakeAPI) UpdateProfile(ctx context.Context, fields map[string]any) (api.Profile, error) {
	return f.updateResult, f.updateErr
}

func (f *fakeAPI) DeleteAccount(ctx context.Context) error { return f.deleteErr }

func newSession(t *testing.T, fake *fakeAPI) (*Session, *localstore.Store) {
	t.Helper()
	store := localstore.Open(filepath.Join(t.TempDir(), "state.toml"))
	s := New(store, zerolog.Nop())
	s.SetAPI(fake)
	return s, store
}

func TestLogin_SuccessPersistsAndTransitions(t *testing.T) {
	fake := &fakeAPI{loginResult: &api.LoginResult{
		Token: "tok-1",
		User:  api.Profile{"id": float64(7), "username": "ada"},
	}}
	s, store := newSession(t, fake)

	if s.IsLoggedIn() {
		t.Fatal("fresh session claims logged in")
	}
	if s.ScopeKey() != GuestScope {
		t.Fatalf("scope = %q, want guest", s.ScopeKey())
	}

	if err := s.Login(context.Background(), api.Credentials{Email: "a@b.c", Password: "x"}); err != nil {
		t.Fatalf("Login returned error: %v", err)
	}
	if !s.IsLoggedIn() || s.Token() != "tok-1" {
		t.Fatalf("token = %q", s.Token())
	}
	if s.ScopeKey() != "user:7" {
		t.Fatalf("scope = %q, want user:7", s.ScopeKey())
	}
	if s.Loading() {
		t.Fatal("loading flag not cleared")
	}

	data := store.Snapshot()
	if data.AuthToken != "tok-1" || data.AuthUser == "" {
		t.Fatalf("persisted = %#v", data)
	}
}

func TestLogin_FailureStaysLoggedOutWithMessage(t *testing.T) {
	fake := &fakeAPI{loginErr: &api.Error{Status: 401, Message: "账号或密码错误"}}
	s, _ := newSession(t, fake)

	if err := s.Login(context.Background(), api.Credentials{}); err == nil {
		t.Fatal("Login succeeded unexpectedly")
	}
	if s.IsLoggedIn() {
		t.Fatal("session logged in after failure")
	}
	if s.Err() != "账号或密码错误" {
		t.Fatalf("Err = %q", s.Err())
	}
	if s.Loading() {
		t.Fatal("loading flag not cleared")
	}
}

func TestRefreshProfile_MergesShallowly(t *testing.T) {
	fake := &fakeAPI{
		loginResult: &api.LoginResult{Token: "tok", User: api.Profile{"id": float64(7), "email": "old@b.c"}},
		profile:     api.Profile{"email": "new@b.c", "bio": "hello"},
	}
	s, store := newSession(t, fake)
	if err := s.Login(context.Background(), api.Credentials{}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	s.RefreshProfile(context.Background())

	user := s.User()
	if user.ID() != "7" {
		t.Fatalf("id lost in merge: %#v", user)
	}
	if user.Email() != "new@b.c" || user["bio"] != "hello" {
		t.Fatalf("merge wrong: %#v", user)
	}
	if store.Snapshot().AuthUser == "" {
		t.Fatal("merged profile not persisted")
	}
}

func TestRefreshProfile_FailureLogsOut(t *testing.T) {
	fake := &fakeAPI{
		loginResult: &api.LoginResult{Token: "tok", User: api.Profile{"id": float64(7)}},
		profileErr:  errors.New("boom"),
	}
	s, store := newSession(t, fake)
	if err := s.Login(context.Background(), api.Credentials{}); err != nil {
		t.Fatalf("Login: %v", err)
	}

	s.RefreshProfile(context.Background())

	if s.IsLoggedIn() {
		t.Fatal("session still logged in after refresh failure")
	}
	if data := store.Snapshot(); data.AuthToken != "" || data.AuthUser != "" {
		t.Fatalf("cache not cleared: %#v", data)
	}
}

func TestRefreshProfile_NoopWhenLoggedOut(t *testing.T) {
	fake := &fakeAPI{profileErr: errors.New("must not be called")}
	s, _ := newSession(t, fake)
	s.RefreshProfile(context.Background())
	if s.Err() != "" {
		t.Fatalf("Err = %q", s.Err())
	}
}

func TestLogout_Idempotent(t *testing.T) {
	fake := &fakeAPI{loginResult: &api.LoginResult{Token: "tok", User: api.Profile{"id": float64(1)}}}
	s, _ := newSession(t, fake)
	if err := s.Login(context.Background(), api.Credentials{}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	s.Logout()
	s.Logout()
	if s.IsLoggedIn() || s.User() != nil {
		t.Fatal("logout incomplete")
	}
}

func TestNew_RestoresFromCache(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")
	store := localstore.Open(path)
	if err := store.SetAuth("tok", `{"id":3,"username":"kai"}`); err != nil {
		t.Fatalf("SetAuth: %v", err)
	}

	s := New(localstore.Open(path), zerolog.Nop())
	if !s.IsLoggedIn() {
		t.Fatal("restored session not logged in")
	}
	if s.ScopeKey() != "user:3" {
		t.Fatalf("scope = %q", s.ScopeKey())
	}
}

func TestTokenExpiry_NonJWTTokensHaveNone(t *testing.T) {
	fake := &fakeAPI{loginResult: &api.LoginResult{Token: "opaque", User: api.Profile{"id": float64(1)}}}
	s, _ := newSession(t, fake)
	if err := s.Login(context.Background(), api.Credentials{}); err != nil {
		t.Fatalf("Login: %v", err)
	}
	if _, ok := s.TokenExpiry(); ok {
		t.Fatal("opaque token produced an expiry")
	}
}
