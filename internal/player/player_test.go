package player

import (
	"context"
	"errors"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/cantoapp/canto/internal/localstore"
)

type fakeMedia struct {
	mu        sync.Mutex
	source    string
	position  time.Duration
	duration  time.Duration
	playErr   error
	playCalls int
	setCalls  int
}

func (m *fakeMedia) SetSource(url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.source = url
	m.position = 0
	m.setCalls++
}

func (m *fakeMedia) Source() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.source
}

func (m *fakeMedia) Play() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.playCalls++
	return m.playErr
}

func (m *fakeMedia) Pause() {}

func (m *fakeMedia) Seek(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = pos
}

func (m *fakeMedia) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *fakeMedia) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *fakeMedia) SetVolume(volume float64) {}
func (m *fakeMedia) SetMuted(muted bool)      {}

type fakeReporter struct {
	mu    sync.Mutex
	ids   []int64
	err   error
	calls int
}

func (r *fakeReporter) RecordWorkPlay(ctx context.Context, id int64, source string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls++
	r.ids = append(r.ids, id)
	return r.err
}

func (r *fakeReporter) callCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.calls
}

func waitForReports(t *testing.T, r *fakeReporter, want int) {
	t.Helper()
	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if r.callCount() >= want {
			return
		}
		time.Sleep(5 * time.Millisecond)
	}
	t.Fatalf("reports = %d, want %d", r.callCount(), want)
}

func newTestPlayer(t *testing.T, media Media, reporter Reporter) *Player {
	t.Helper()
	store := localstore.Open(filepath.Join(t.TempDir(), "state.toml"))
	return New(media, store, reporter, zerolog.Nop())
}

func publishedTracks() []Track {
	return []Track{
		{ID: 1, Title: "one", URL: "https://m.example.com/1.mp3", Status: "published", Visibility: "public"},
		{ID: 2, Title: "two", URL: "https://m.example.com/2.mp3", Status: "published", Visibility: "public"},
		{ID: 3, Title: "three", URL: "https://m.example.com/3.mp3", Status: "published", Visibility: "public"},
	}
}

func TestPlayTrack_WrapsIndexBothDirections(t *testing.T) {
	media := &fakeMedia{}
	p := newTestPlayer(t, media, nil)
	p.SetPlaylist(publishedTracks(), 0)

	p.PlayTrack(3)
	if got := p.Snapshot().Index; got != 0 {
		t.Fatalf("index after wrap forward = %d", got)
	}
	p.PlayTrack(-1)
	if got := p.Snapshot().Index; got != 2 {
		t.Fatalf("index after wrap backward = %d", got)
	}
}

func TestPlayTrack_SameTrackKeepsPosition(t *testing.T) {
	media := &fakeMedia{}
	p := newTestPlayer(t, media, nil)
	p.SetPlaylist(publishedTracks(), 0)

	p.PlayTrack(0)
	media.Seek(42 * time.Second)
	setCallsBefore := media.setCalls

	p.PlayTrack(0)
	if media.setCalls != setCallsBefore {
		t.Fatalf("source swapped for already-current track (%d -> %d)", setCallsBefore, media.setCalls)
	}
	if media.Position() != 42*time.Second {
		t.Fatalf("position reset to %v", media.Position())
	}
	if p.Snapshot().State != Playing {
		t.Fatal("state not playing")
	}
}

func TestPlayTrack_FailureLeavesPausedWithoutPropagating(t *testing.T) {
	media := &fakeMedia{playErr: errors.New("no device")}
	reporter := &fakeReporter{}
	p := newTestPlayer(t, media, reporter)
	p.SetPlaylist(publishedTracks(), 0)

	p.PlayTrack(0)
	if got := p.Snapshot().State; got != Paused {
		t.Fatalf("state = %v, want Paused after play failure", got)
	}
	time.Sleep(20 * time.Millisecond)
	if reporter.callCount() != 0 {
		t.Fatal("failed playback still reported")
	}
}

func TestPrev_RewindsAfterThreeSeconds(t *testing.T) {
	media := &fakeMedia{}
	p := newTestPlayer(t, media, nil)
	p.SetPlaylist(publishedTracks(), 0)
	p.PlayTrack(1)

	media.Seek(10 * time.Second)
	p.Prev()
	snap := p.Snapshot()
	if snap.Index != 1 {
		t.Fatalf("index = %d, want unchanged", snap.Index)
	}
	if media.Position() != 0 {
		t.Fatalf("position = %v, want rewound", media.Position())
	}

	p.Prev()
	if got := p.Snapshot().Index; got != 0 {
		t.Fatalf("index = %d, want previous track", got)
	}
}

func TestHandleEnded_RepeatModes(t *testing.T) {
	media := &fakeMedia{}
	p := newTestPlayer(t, media, nil)
	p.SetPlaylist(publishedTracks(), 0)
	p.PlayTrack(0)

	// Default "all": advance.
	p.HandleEnded()
	if got := p.Snapshot().Index; got != 1 {
		t.Fatalf("repeat all advanced to %d", got)
	}

	p.CycleRepeat() // one
	media.Seek(30 * time.Second)
	p.HandleEnded()
	snap := p.Snapshot()
	if snap.Index != 1 || media.Position() != 0 {
		t.Fatalf("repeat one: index=%d position=%v", snap.Index, media.Position())
	}

	p.CycleRepeat() // off
	p.HandleEnded()
	if got := p.Snapshot().State; got != Paused {
		t.Fatalf("repeat off state = %v, want Paused", got)
	}
}

func TestShuffle_PicksDifferentTrack(t *testing.T) {
	media := &fakeMedia{}
	p := newTestPlayer(t, media, nil)
	p.SetPlaylist(publishedTracks(), 0)
	p.PlayTrack(0)
	p.ToggleShuffle()

	for i := 0; i < 20; i++ {
		before := p.Snapshot().Index
		p.Next()
		if after := p.Snapshot().Index; after == before {
			t.Fatalf("shuffle repeated index %d", after)
		}
	}
}

func TestVolumePrefs_PersistAndRestore(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")
	p := New(&fakeMedia{}, localstore.Open(path), nil, zerolog.Nop())
	if got := p.Snapshot().Volume; got != defaultVolume {
		t.Fatalf("default volume = %v", got)
	}

	p.SetVolume(0)
	snap := p.Snapshot()
	if snap.Volume != 0 || !snap.Muted {
		t.Fatalf("zero volume should mute: %#v", snap)
	}
	p.CycleRepeat()

	p2 := New(&fakeMedia{}, localstore.Open(path), nil, zerolog.Nop())
	snap = p2.Snapshot()
	if snap.Volume != 0 {
		t.Fatalf("restored volume = %v, want persisted zero", snap.Volume)
	}
	if !snap.Muted {
		t.Fatal("mute not restored")
	}
	if snap.Repeat != RepeatOne {
		t.Fatalf("repeat = %q, want %q", snap.Repeat, RepeatOne)
	}
}

func TestNew_AuthOnlyWritesKeepDefaultVolume(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.toml")
	store := localstore.Open(path)
	if err := store.SetAuth("tok", `{"id":1}`); err != nil {
		t.Fatalf("SetAuth: %v", err)
	}

	p := New(&fakeMedia{}, localstore.Open(path), nil, zerolog.Nop())
	snap := p.Snapshot()
	if snap.Volume != defaultVolume {
		t.Fatalf("volume after login-only write = %v, want default %v", snap.Volume, defaultVolume)
	}
	if snap.Muted {
		t.Fatal("login-only write muted the player")
	}
}

func TestReportPlay_OncePerWindow(t *testing.T) {
	media := &fakeMedia{}
	reporter := &fakeReporter{}
	p := newTestPlayer(t, media, reporter)
	p.SetPlaylist(publishedTracks(), 0)

	clock := time.Now()
	p.now = func() time.Time { return clock }

	p.PlayTrack(0)
	waitForReports(t, reporter, 1)

	// Replay within the window: no second report.
	p.TogglePlay() // pause
	clock = clock.Add(10 * time.Second)
	p.TogglePlay() // resume
	time.Sleep(20 * time.Millisecond)
	if reporter.callCount() != 1 {
		t.Fatalf("reports = %d, want 1 inside window", reporter.callCount())
	}

	clock = clock.Add(reportWindow)
	p.TogglePlay()
	p.TogglePlay()
	waitForReports(t, reporter, 2)
}

func TestReportPlay_PrunesExpiredWindowEntries(t *testing.T) {
	media := &fakeMedia{}
	reporter := &fakeReporter{}
	p := newTestPlayer(t, media, reporter)
	p.SetPlaylist(publishedTracks(), 0)

	clock := time.Now()
	p.now = func() time.Time { return clock }

	p.PlayTrack(0)
	p.PlayTrack(1)
	waitForReports(t, reporter, 2)

	clock = clock.Add(reportWindow)
	p.PlayTrack(2)
	waitForReports(t, reporter, 3)

	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.lastReport) != 1 {
		t.Fatalf("window entries = %d, want expired ones pruned", len(p.lastReport))
	}
	if _, ok := p.lastReport[3]; !ok {
		t.Fatal("fresh entry missing after prune")
	}
}

func TestReportPlay_SkipsUnpublishedAndPrivate(t *testing.T) {
	media := &fakeMedia{}
	reporter := &fakeReporter{}
	p := newTestPlayer(t, media, reporter)
	p.SetPlaylist([]Track{
		{ID: 1, URL: "https://m.example.com/1.mp3", Status: "draft", Visibility: "public"},
		{ID: 2, URL: "https://m.example.com/2.mp3", Status: "published", Visibility: "private"},
		{ID: 3, Status: "published", Visibility: "public"}, // no URL
		{ID: 4, URL: "https://m.example.com/4.mp3", Status: "published", Visibility: ""},
	}, 0)

	for i := 0; i < 4; i++ {
		p.PlayTrack(i)
	}
	waitForReports(t, reporter, 1)
	time.Sleep(20 * time.Millisecond)
	reporter.mu.Lock()
	defer reporter.mu.Unlock()
	if len(reporter.ids) != 1 || reporter.ids[0] != 4 {
		t.Fatalf("reported ids = %v, want only the public published track", reporter.ids)
	}
}

func TestReportPlay_FailureSwallowed(t *testing.T) {
	media := &fakeMedia{}
	reporter := &fakeReporter{err: errors.New("backend down")}
	p := newTestPlayer(t, media, reporter)
	p.SetPlaylist(publishedTracks(), 0)

	p.PlayTrack(0)
	waitForReports(t, reporter, 1)
	if got := p.Snapshot().State; got != Playing {
		t.Fatalf("state = %v, report failure must not affect playback", got)
	}
}
