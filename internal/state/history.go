package state

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/cantoapp/canto/internal/api"
	"github.com/cantoapp/canto/internal/session"
)

// HistoryAPI is the slice of the platform client the history container needs.
type HistoryAPI interface {
	FetchHistory(ctx context.Context, query api.HistoryQuery) (api.HistoryPage, error)
}

var _ HistoryAPI = (*api.Client)(nil)

// History caches the generation and analysis history list.
type History struct {
	mu       sync.RWMutex
	api      HistoryAPI
	identity Identity
	log      zerolog.Logger

	scopeKey string
	items    []api.HistoryItem
	loading  bool
	errMsg   string
}

// HistorySnapshot is a defensive copy of the container state.
type HistorySnapshot struct {
	ScopeKey string
	Items    []api.HistoryItem
	Loading  bool
	Err      string
}

// NewHistory builds an empty container scoped to guest.
func NewHistory(a HistoryAPI, identity Identity, log zerolog.Logger) *History {
	return &History{api: a, identity: identity, log: log, scopeKey: session.GuestScope}
}

// Snapshot returns a copy of the current state.
func (h *History) Snapshot() HistorySnapshot {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return HistorySnapshot{
		ScopeKey: h.scopeKey,
		Items:    cloneItems(h.items),
		Loading:  h.loading,
		Err:      h.errMsg,
	}
}

// Reset drops all cached state back to guest scope.
func (h *History) Reset() {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.scopeKey = session.GuestScope
	h.items = nil
	h.loading = false
	h.errMsg = ""
}

func (h *History) syncScope() {
	next := h.identity.ScopeKey()
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.scopeKey != next {
		h.scopeKey = next
		h.items = nil
		h.loading = false
		h.errMsg = ""
	}
}

// Load refreshes the history list. Logged-out access clears the list and
// returns empty without recording an error; 404 already arrives folded as
// an empty page; 401 clears without raising.
func (h *History) Load(ctx context.Context, query api.HistoryQuery) ([]api.HistoryItem, error) {
	h.syncScope()

	if !h.identity.IsLoggedIn() {
		h.mu.Lock()
		h.items = nil
		h.errMsg = ""
		h.mu.Unlock()
		return nil, nil
	}

	h.mu.Lock()
	h.loading = true
	h.errMsg = ""
	h.mu.Unlock()
	defer h.setLoading(false)

	page, err := h.api.FetchHistory(ctx, query)
	if err != nil {
		if api.IsUnauthorized(err) {
			h.mu.Lock()
			h.items = nil
			h.mu.Unlock()
			return nil, nil
		}
		message := "加载失败"
		if err.Error() != "" {
			message = err.Error()
		}
		h.mu.Lock()
		h.errMsg = message
		h.mu.Unlock()
		return nil, err
	}

	h.mu.Lock()
	h.items = page.Items
	h.mu.Unlock()
	return cloneItems(page.Items), nil
}

func (h *History) setLoading(v bool) {
	h.mu.Lock()
	h.loading = v
	h.mu.Unlock()
}

func cloneItems(items []api.HistoryItem) []api.HistoryItem {
	if len(items) == 0 {
		return nil
	}
	dup := make([]api.HistoryItem, len(items))
	copy(dup, items)
	return dup
}
