// Package player is the audio playback container: an ordered playlist, a
// current-track pointer, shuffle and repeat modes, and best-effort play
// reporting. It drives a single injected Media backend; all operations
// assume exclusive access to it.
package player

import (
	"context"
	"math/rand"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/cantoapp/canto/internal/api"
	"github.com/cantoapp/canto/internal/format"
	"github.com/cantoapp/canto/internal/localstore"
)

// Track is one playlist entry.
type Track struct {
	ID         int64
	Title      string
	Artist     string
	Album      string
	Cover      string
	URL        string
	Duration   time.Duration
	Status     string
	Visibility string
}

// TrackFromWork converts a normalized work into a playlist entry.
func TrackFromWork(work api.Work, origin string) Track {
	artist := ""
	if work.Author != nil {
		artist = work.Author.Username
	}
	return Track{
		ID:         work.ID,
		Title:      work.Title,
		Artist:     artist,
		Cover:      format.AbsoluteURL(origin, work.CoverURL),
		URL:        format.AbsoluteURL(origin, work.AudioURL),
		Status:     work.Status,
		Visibility: work.Visibility,
	}
}

// State is the playback state.
type State int

const (
	Idle State = iota
	Playing
	Paused
)

// RepeatMode controls what happens when a track ends.
type RepeatMode string

const (
	RepeatAll RepeatMode = "all"
	RepeatOne RepeatMode = "one"
	RepeatOff RepeatMode = "off"
)

const (
	defaultVolume = 0.8
	rewindAfter   = 3 * time.Second
)

// Reporter receives best-effort play events. *api.Client implements it.
type Reporter interface {
	RecordWorkPlay(ctx context.Context, id int64, source string) error
}

// Player coordinates the playlist, the media backend, and persisted
// preferences. Methods are safe for concurrent use, though in practice a
// single UI goroutine drives it.
type Player struct {
	mu       sync.Mutex
	media    Media
	store    *localstore.Store
	reporter Reporter
	log      zerolog.Logger

	playlist []Track
	current  int
	state    State
	shuffle  bool
	repeat   RepeatMode
	volume   float64
	muted    bool

	lastReport map[int64]time.Time
	now        func() time.Time
	randIndex  func(n, exclude int) int
}

// Snapshot is a defensive copy of the player state for rendering.
type Snapshot struct {
	State    State
	Track    *Track
	Index    int
	Playlist []Track
	Shuffle  bool
	Repeat   RepeatMode
	Volume   float64
	Muted    bool
	Position time.Duration
	Duration time.Duration
}

// New builds a player over the given media backend, restoring volume,
// mute, and repeat mode from the local cache.
func New(media Media, store *localstore.Store, reporter Reporter, log zerolog.Logger) *Player {
	p := &Player{
		media:      media,
		store:      store,
		reporter:   reporter,
		log:        log,
		repeat:     RepeatAll,
		volume:     defaultVolume,
		lastReport: make(map[int64]time.Time),
		now:        time.Now,
		randIndex:  randomOther,
	}

	data := store.Snapshot()
	if data.HasVolume() {
		p.volume = clamp01(data.PlayerVolume)
	}
	p.muted = data.PlayerMuted
	switch RepeatMode(data.PlayerRepeat) {
	case RepeatAll, RepeatOne, RepeatOff:
		p.repeat = RepeatMode(data.PlayerRepeat)
	}

	media.SetVolume(p.volume)
	media.SetMuted(p.muted)
	return p
}

// Snapshot returns a copy of the current state.
func (p *Player) Snapshot() Snapshot {
	p.mu.Lock()
	defer p.mu.Unlock()
	snap := Snapshot{
		State:    p.state,
		Index:    p.current,
		Shuffle:  p.shuffle,
		Repeat:   p.repeat,
		Volume:   p.volume,
		Muted:    p.muted,
		Position: p.media.Position(),
		Duration: p.media.Duration(),
	}
	if len(p.playlist) > 0 {
		snap.Playlist = make([]Track, len(p.playlist))
		copy(snap.Playlist, p.playlist)
		if p.current >= 0 && p.current < len(p.playlist) {
			track := p.playlist[p.current]
			snap.Track = &track
		}
	}
	return snap
}

// SetPlaylist replaces the queue. An empty list unloads the media source
// and returns the player to Idle.
func (p *Player) SetPlaylist(list []Track, startIndex int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playlist = make([]Track, len(list))
	copy(p.playlist, list)

	if len(p.playlist) == 0 {
		p.current = 0
		p.state = Idle
		p.media.Pause()
		p.media.SetSource("")
		return
	}
	if startIndex < 0 {
		startIndex = 0
	}
	if startIndex > len(p.playlist)-1 {
		startIndex = len(p.playlist) - 1
	}
	p.current = startIndex
	p.media.SetSource(p.playlist[p.current].URL)
}

// PlayTrack starts playback of the track at index, wrapping out-of-range
// indexes. The media source is swapped only when the target differs from
// what is already loaded, so repeated calls for the current track never
// reset the position. Playback failures leave the player Paused and are
// not propagated.
func (p *Player) PlayTrack(index int) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.playTrack(index)
}

func (p *Player) playTrack(index int) {
	n := len(p.playlist)
	if n == 0 {
		return
	}
	normalized := ((index % n) + n) % n
	track := p.playlist[normalized]
	if normalized != p.current || p.media.Source() != track.URL {
		p.current = normalized
		p.media.SetSource(track.URL)
	}
	if err := p.media.Play(); err != nil {
		p.state = Paused
		p.log.Warn().Err(err).Str("track", track.Title).Msg("playback failed")
		return
	}
	p.state = Playing
	p.maybeReportPlay(track)
}

// TogglePlay pauses when playing, otherwise resumes the current track.
func (p *Player) TogglePlay() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.state == Playing {
		p.media.Pause()
		p.state = Paused
		return
	}
	p.playTrack(p.current)
}

// Next advances to the following track, or a different random one when
// shuffle is on.
func (p *Player) Next() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.next()
}

func (p *Player) next() {
	n := len(p.playlist)
	if n == 0 {
		return
	}
	if p.shuffle {
		p.playTrack(p.randIndex(n, p.current))
		return
	}
	p.playTrack(p.current + 1)
}

// Prev rewinds to the track start when more than three seconds have
// played, mirroring common player behavior; otherwise it retreats by one
// (or jumps randomly under shuffle).
func (p *Player) Prev() {
	p.mu.Lock()
	defer p.mu.Unlock()
	n := len(p.playlist)
	if n == 0 {
		return
	}
	if p.media.Position() > rewindAfter {
		p.media.Seek(0)
		return
	}
	if p.shuffle {
		p.playTrack(p.randIndex(n, p.current))
		return
	}
	p.playTrack(p.current - 1)
}

// HandleEnded dispatches on the repeat mode when the current track ends.
func (p *Player) HandleEnded() {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.repeat {
	case RepeatOne:
		p.media.Seek(0)
		p.playTrack(p.current)
	case RepeatOff:
		p.state = Paused
	default:
		p.next()
	}
}

// SeekTo jumps to a fraction of the track, clamped to [0, 1].
func (p *Player) SeekTo(fraction float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	duration := p.media.Duration()
	if duration <= 0 {
		return
	}
	p.media.Seek(time.Duration(float64(duration) * clamp01(fraction)))
}

// SetVolume clamps and applies the volume. Zero also mutes. Persisted
// immediately.
func (p *Player) SetVolume(volume float64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.volume = clamp01(volume)
	p.muted = p.volume == 0
	p.media.SetVolume(p.volume)
	p.media.SetMuted(p.muted)
	p.persistPrefs()
}

// ToggleMute flips the mute flag. Persisted immediately.
func (p *Player) ToggleMute() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.muted = !p.muted
	p.media.SetMuted(p.muted)
	p.persistPrefs()
}

// ToggleShuffle flips shuffle. Not persisted, matching the web client.
func (p *Player) ToggleShuffle() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.shuffle = !p.shuffle
}

// CycleRepeat rotates all → one → off → all. Persisted immediately.
func (p *Player) CycleRepeat() RepeatMode {
	p.mu.Lock()
	defer p.mu.Unlock()
	switch p.repeat {
	case RepeatAll:
		p.repeat = RepeatOne
	case RepeatOne:
		p.repeat = RepeatOff
	default:
		p.repeat = RepeatAll
	}
	p.persistPrefs()
	return p.repeat
}

func (p *Player) persistPrefs() {
	if err := p.store.SetPlayerPrefs(p.volume, p.muted, string(p.repeat)); err != nil {
		p.log.Warn().Err(err).Msg("persist player prefs")
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// randomOther picks a random index different from exclude when n > 1.
func randomOther(n, exclude int) int {
	if n <= 1 {
		return exclude
	}
	next := exclude
	for next == exclude {
		next = rand.Intn(n)
	}
	return next
}
