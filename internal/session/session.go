// Package session owns the authenticated session: the bearer token, the
// cached user profile, and the guest/user scope key that the list
// containers use to invalidate per-identity data.
package session

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog"

	"github.com/cantoapp/canto/internal/api"
	"github.com/cantoapp/canto/internal/localstore"
)

// API is the slice of the platform client the session needs. *api.Client
// implements it; tests substitute a fake.
type API interface {
	Login(ctx context.Context, creds api.Credentials) (*api.LoginResult, error)
	Register(ctx context.Context, req api.RegisterRequest) (api.Profile, error)
	FetchProfile(ctx context.Context) (api.Profile, error)
	UpdateProfile(ctx context.Context, fields map[string]any) (api.Profile, error)
	DeleteAccount(ctx context.Context) error
}

var _ API = (*api.Client)(nil)

// Session is the auth state container. Two states: logged out (empty
// token) and logged in. It implements api.TokenSource so the HTTP client
// reads the token straight from here.
type Session struct {
	mu    sync.RWMutex
	api   API
	store *localstore.Store
	log   zerolog.Logger

	token   string
	user    api.Profile
	loading bool
	errMsg  string
}

// GuestScope is the scope key used while logged out.
const GuestScope = "guest"

// New restores the session from the local cache. A corrupt cached user is
// dropped silently; the token alone still counts as logged in until the
// next profile refresh decides otherwise.
func New(store *localstore.Store, log zerolog.Logger) *Session {
	s := &Session{store: store, log: log}
	data := store.Snapshot()
	s.token = data.AuthToken
	if data.AuthUser != "" {
		var user api.Profile
		if err := json.Unmarshal([]byte(data.AuthUser), &user); err == nil {
			s.user = user
		}
	}
	return s
}

// SetAPI wires the platform client in after construction. The client needs
// the session as its TokenSource, so the two cannot be built in one step.
func (s *Session) SetAPI(a API) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.api = a
}

// Token implements api.TokenSource.
func (s *Session) Token() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.token
}

// IsLoggedIn reports whether a token is present.
func (s *Session) IsLoggedIn() bool { return s.Token() != "" }

// User returns a copy of the cached profile, or nil when logged out.
func (s *Session) User() api.Profile {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	dup := make(api.Profile, len(s.user))
	for k, v := range s.user {
		dup[k] = v
	}
	return dup
}

// Err returns the last user-visible failure message.
func (s *Session) Err() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errMsg
}

// Loading reports whether an auth operation is in flight.
func (s *Session) Loading() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.loading
}

// ScopeKey derives the identity key the list containers scope their data
// by: "guest" while logged out, "user:<id>" otherwise.
func (s *Session) ScopeKey() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.token == "" || s.user == nil {
		return GuestScope
	}
	id := s.user.ID()
	if id == "" {
		return GuestScope
	}
	return "user:" + id
}

// TokenExpiry peeks at the JWT exp claim without verifying the signature.
// Display-only; the backend remains the authority on validity.
func (s *Session) TokenExpiry() (time.Time, bool) {
	token := s.Token()
	if token == "" {
		return time.Time{}, false
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return time.Time{}, false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return time.Time{}, false
	}
	return exp.Time, true
}

func (s *Session) setLoading(v bool) {
	s.mu.Lock()
	s.loading = v
	if v {
		s.errMsg = ""
	}
	s.mu.Unlock()
}

func (s *Session) fail(err error, fallback string) {
	message := fallback
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	s.mu.Lock()
	s.errMsg = message
	s.mu.Unlock()
}

// Login exchanges credentials for a session and persists it. On failure the
// session stays logged out and Err carries the message.
func (s *Session) Login(ctx context.Context, creds api.Credentials) error {
	s.setLoading(true)
	defer s.setLoading(false)

	result, err := s.api.Login(ctx, creds)
	if err != nil {
		s.fail(err, "登录失败")
		return err
	}

	userJSON, _ := json.Marshal(result.User)
	s.mu.Lock()
	s.token = result.Token
	s.user = result.User
	s.mu.Unlock()
	if err := s.store.SetAuth(result.Token, string(userJSON)); err != nil {
		s.log.Warn().Err(err).Msg("persist session")
	}
	return nil
}

// Register creates an account; it does not log in.
func (s *Session) Register(ctx context.Context, req api.RegisterRequest) (api.Profile, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	profile, err := s.api.Register(ctx, req)
	if err != nil {
		s.fail(err, "注册失败")
		return nil, err
	}
	return profile, nil
}

// RefreshProfile merges the fetched profile over the cached one. A no-op
// while logged out. Any fetch failure is treated as token invalidation and
// logs the session out.
func (s *Session) RefreshProfile(ctx context.Context) {
	if !s.IsLoggedIn() {
		return
	}
	profile, err := s.api.FetchProfile(ctx)
	if err != nil {
		s.log.Debug().Err(err).Msg("profile refresh failed, dropping session")
		s.Logout()
		return
	}
	s.mergeAndPersist(profile)
}

// UpdateProfile applies a partial update and merges the result.
func (s *Session) UpdateProfile(ctx context.Context, fields map[string]any) (api.Profile, error) {
	s.setLoading(true)
	defer s.setLoading(false)

	profile, err := s.api.UpdateProfile(ctx, fields)
	if err != nil {
		s.fail(err, "更新失败")
		return nil, err
	}
	return s.mergeAndPersist(profile), nil
}

// DeleteAccount removes the account and clears the session.
func (s *Session) DeleteAccount(ctx context.Context) error {
	s.setLoading(true)
	defer s.setLoading(false)

	if err := s.api.DeleteAccount(ctx); err != nil {
		s.fail(err, "删除失败")
		return err
	}
	s.Logout()
	return nil
}

// Logout clears the token, user, and cache entries. Idempotent.
func (s *Session) Logout() {
	s.mu.Lock()
	s.token = ""
	s.user = nil
	s.errMsg = ""
	s.mu.Unlock()
	if err := s.store.ClearAuth(); err != nil {
		s.log.Warn().Err(err).Msg("clear persisted session")
	}
}

// mergeAndPersist applies the shallow union: fetched fields win, cached
// fields the backend omitted survive (older deployments drop id).
func (s *Session) mergeAndPersist(profile api.Profile) api.Profile {
	s.mu.Lock()
	cached := s.user
	if cached == nil {
		cached = api.Profile{}
	}
	merged := cached.Merge(profile)
	s.user = merged
	token := s.token
	s.mu.Unlock()

	userJSON, _ := json.Marshal(merged)
	if err := s.store.SetAuth(token, string(userJSON)); err != nil {
		s.log.Warn().Err(err).Msg("persist merged profile")
	}
	return merged
}
