package state

import (
	"context"
	"strings"
	"sync"

	"github.com/rs/zerolog"

	"github.com/cantoapp/canto/internal/api"
	"github.com/cantoapp/canto/internal/format"
	"github.com/cantoapp/canto/internal/session"
)

// Identity is the slice of the session the containers need.
type Identity interface {
	ScopeKey() string
	IsLoggedIn() bool
}

// WorksAPI is the slice of the platform client the works container needs.
type WorksAPI interface {
	FetchWorks(ctx context.Context, query api.WorksQuery) ([]api.Work, error)
	CreateWork(ctx context.Context, draft api.WorkDraft) (*api.Work, error)
	UpdateWork(ctx context.Context, id int64, fields map[string]any) (*api.Work, error)
	DeleteWork(ctx context.Context, id int64) error
	Origin() string
}

var _ WorksAPI = (*api.Client)(nil)

// LoginPromptMessage is recorded when a logged-out user opens the works view.
const LoginPromptMessage = "请先进行注册/登录"

// Works caches the logged-in user's works list.
type Works struct {
	mu       sync.RWMutex
	api      WorksAPI
	identity Identity
	log      zerolog.Logger

	scopeKey string
	list     []api.Work
	loading  bool
	errMsg   string
}

// WorksSnapshot is a defensive copy of the container state.
type WorksSnapshot struct {
	ScopeKey string
	List     []api.Work
	Loading  bool
	Err      string
}

// NewWorks builds an empty container scoped to guest.
func NewWorks(a WorksAPI, identity Identity, log zerolog.Logger) *Works {
	return &Works{api: a, identity: identity, log: log, scopeKey: session.GuestScope}
}

// Snapshot returns a copy of the current state.
func (w *Works) Snapshot() WorksSnapshot {
	w.mu.RLock()
	defer w.mu.RUnlock()
	return WorksSnapshot{
		ScopeKey: w.scopeKey,
		List:     cloneWorks(w.list),
		Loading:  w.loading,
		Err:      w.errMsg,
	}
}

// Reset drops all cached state back to guest scope.
func (w *Works) Reset() {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.scopeKey = session.GuestScope
	w.list = nil
	w.loading = false
	w.errMsg = ""
}

// syncScope clears cached data when the logged-in identity changed since
// the last load.
func (w *Works) syncScope() {
	next := w.identity.ScopeKey()
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.scopeKey != next {
		w.scopeKey = next
		w.list = nil
		w.loading = false
		w.errMsg = ""
	}
}

// Load refreshes the list. Logged-out access never reaches the network: it
// clears the list and records a please-log-in message. A 401 clears the
// list and records the message without returning an error; other failures
// are returned to the caller as well as recorded.
func (w *Works) Load(ctx context.Context) ([]api.Work, error) {
	w.syncScope()

	if !w.identity.IsLoggedIn() {
		w.mu.Lock()
		w.list = nil
		w.errMsg = LoginPromptMessage
		w.mu.Unlock()
		return nil, nil
	}

	w.mu.Lock()
	w.loading = true
	w.errMsg = ""
	userID := ""
	if strings.HasPrefix(w.scopeKey, "user:") {
		userID = strings.TrimPrefix(w.scopeKey, "user:")
	}
	w.mu.Unlock()
	defer w.setLoading(false)

	works, err := w.api.FetchWorks(ctx, api.WorksQuery{UserID: userID})
	if err != nil {
		if api.IsUnauthorized(err) {
			// stale token: drop cached data, stay quiet beyond the message
			w.mu.Lock()
			w.list = nil
			w.errMsg = err.Error()
			w.mu.Unlock()
			return nil, nil
		}
		w.fail(err)
		return nil, err
	}

	origin := w.api.Origin()
	normalized := make([]api.Work, len(works))
	for i, item := range works {
		normalized[i] = NormalizeWork(origin, item)
	}
	w.mu.Lock()
	w.list = normalized
	w.mu.Unlock()
	return cloneWorks(normalized), nil
}

// Add quick-saves a generated file as a work and prepends it to the list.
func (w *Works) Add(ctx context.Context, draft api.WorkDraft) (*api.Work, error) {
	w.syncScope()
	created, err := w.api.CreateWork(ctx, draft)
	if err != nil {
		return nil, err
	}
	item := NormalizeWork(w.api.Origin(), *created)
	w.mu.Lock()
	w.list = append([]api.Work{item}, w.list...)
	w.mu.Unlock()
	return &item, nil
}

// Edit updates a work and replaces it in the cached list.
func (w *Works) Edit(ctx context.Context, id int64, fields map[string]any) (*api.Work, error) {
	w.syncScope()
	updated, err := w.api.UpdateWork(ctx, id, fields)
	if err != nil {
		return nil, err
	}
	item := NormalizeWork(w.api.Origin(), *updated)
	w.mu.Lock()
	for i := range w.list {
		if w.list[i].ID == id {
			w.list[i] = item
		}
	}
	w.mu.Unlock()
	return &item, nil
}

// Remove deletes a work and drops it from the cached list.
func (w *Works) Remove(ctx context.Context, id int64) error {
	w.syncScope()
	if err := w.api.DeleteWork(ctx, id); err != nil {
		return err
	}
	w.mu.Lock()
	kept := w.list[:0]
	for _, item := range w.list {
		if item.ID != id {
			kept = append(kept, item)
		}
	}
	w.list = kept
	w.mu.Unlock()
	return nil
}

func (w *Works) setLoading(v bool) {
	w.mu.Lock()
	w.loading = v
	w.mu.Unlock()
}

func (w *Works) fail(err error) {
	message := "加载失败"
	if err != nil && err.Error() != "" {
		message = err.Error()
	}
	w.mu.Lock()
	w.errMsg = message
	w.mu.Unlock()
}

// NormalizeWork backfills the display title and resolves relative media
// paths against the API origin. The backend populates title/name and
// cover/cover_url inconsistently across endpoints, so both spellings are
// filled on the way in.
func NormalizeWork(origin string, work api.Work) api.Work {
	title := work.Title
	if title == "" {
		title = work.Name
	}
	if title == "" {
		title = "未命名作品"
	}
	work.Title = title
	work.Name = title

	cover := work.CoverURL
	if cover == "" {
		cover = work.Cover
	}
	work.CoverURL = cover
	if resolved := format.AbsoluteURL(origin, cover); resolved != "" {
		work.Cover = resolved
	} else {
		work.Cover = cover
	}

	audio := work.AudioURL
	if audio == "" {
		audio = work.URL
	}
	work.AudioURL = audio
	work.URL = format.AbsoluteURL(origin, audio)
	return work
}

func cloneWorks(items []api.Work) []api.Work {
	if len(items) == 0 {
		return nil
	}
	dup := make([]api.Work, len(items))
	copy(dup, items)
	return dup
}
