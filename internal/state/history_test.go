package state

import (
	"context"
	"testing"

	"github.com/rs/zerolog"

	"github.com/cantoapp/canto/internal/api"
)

type fakeHistoryAPI struct {
	page       api.HistoryPage
	err        error
	fetchCalls int
}

func (f *fakeHistoryAPI) FetchHistory(ctx context.Context, query api.HistoryQuery) (api.HistoryPage, error) {
	f.fetchCalls++
	return f.page, f.err
}

func TestHistoryLoad_LoggedOutClearsWithoutError(t *testing.T) {
	fake := &fakeHistoryAPI{}
	identity := &fakeIdentity{scope: "guest"}
	h := NewHistory(fake, identity, zerolog.Nop())

	items, err := h.Load(context.Background(), api.HistoryQuery{})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if items != nil {
		t.Fatalf("items = %#v", items)
	}
	if fake.fetchCalls != 0 {
		t.Fatalf("fetch calls = %d, want 0", fake.fetchCalls)
	}
	if snap := h.Snapshot(); snap.Err != "" {
		t.Fatalf("Err = %q, want none for logged-out history", snap.Err)
	}
}

func TestHistoryLoad_PopulatesItems(t *testing.T) {
	fake := &fakeHistoryAPI{page: api.HistoryPage{
		Total: 2,
		Items: []api.HistoryItem{{"id": float64(1)}, {"id": float64(2)}},
	}}
	identity := &fakeIdentity{scope: "user:1", loggedIn: true}
	h := NewHistory(fake, identity, zerolog.Nop())

	items, err := h.Load(context.Background(), api.HistoryQuery{})
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("items = %#v", items)
	}
	snap := h.Snapshot()
	if len(snap.Items) != 2 || snap.Loading || snap.Err != "" {
		t.Fatalf("snapshot = %#v", snap)
	}
}

func TestHistoryLoad_ScopeChangeClears(t *testing.T) {
	fake := &fakeHistoryAPI{page: api.HistoryPage{Items: []api.HistoryItem{{"id": float64(1)}}}}
	identity := &fakeIdentity{scope: "user:1", loggedIn: true}
	h := NewHistory(fake, identity, zerolog.Nop())
	if _, err := h.Load(context.Background(), api.HistoryQuery{}); err != nil {
		t.Fatalf("Load: %v", err)
	}

	identity.scope = "guest"
	identity.loggedIn = false
	if _, err := h.Load(context.Background(), api.HistoryQuery{}); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if snap := h.Snapshot(); len(snap.Items) != 0 || snap.ScopeKey != "guest" {
		t.Fatalf("snapshot = %#v, want cleared guest scope", snap)
	}
}

func TestHistoryLoad_UnauthorizedClearsQuietly(t *testing.T) {
	fake := &fakeHistoryAPI{err: &api.Error{Status: 401, Message: "请先进行登录"}}
	identity := &fakeIdentity{scope: "user:1", loggedIn: true}
	h := NewHistory(fake, identity, zerolog.Nop())

	items, err := h.Load(context.Background(), api.HistoryQuery{})
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if items != nil {
		t.Fatalf("items = %#v", items)
	}
	if snap := h.Snapshot(); snap.Loading {
		t.Fatal("loading flag set")
	}
}

func TestHistoryLoad_OtherErrorsSurface(t *testing.T) {
	fake := &fakeHistoryAPI{err: &api.Error{Status: 500, Message: "服务器内部错误"}}
	identity := &fakeIdentity{scope: "user:1", loggedIn: true}
	h := NewHistory(fake, identity, zerolog.Nop())

	if _, err := h.Load(context.Background(), api.HistoryQuery{}); err == nil {
		t.Fatal("Load succeeded unexpectedly")
	}
	if snap := h.Snapshot(); snap.Err != "服务器内部错误" {
		t.Fatalf("Err = %q", snap.Err)
	}
}
