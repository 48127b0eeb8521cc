package player

import (
	"sync"
	"time"
)

// Media abstracts the single audio output the player drives. The host UI
// injects a platform backend; tests use fakes; NullMedia keeps the state
// machine coherent when no audio device is available.
type Media interface {
	// SetSource swaps the loaded stream and resets position and duration.
	SetSource(url string)
	Source() string
	Play() error
	Pause()
	Seek(pos time.Duration)
	Position() time.Duration
	Duration() time.Duration
	SetVolume(volume float64)
	SetMuted(muted bool)
}

// NullMedia is a Media that produces no sound but tracks state, so the
// player remains fully usable for browsing and testing.
type NullMedia struct {
	mu       sync.Mutex
	source   string
	position time.Duration
	duration time.Duration
}

var _ Media = (*NullMedia)(nil)

func (m *NullMedia) SetSource(url string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.source = url
	m.position = 0
	m.duration = 0
}

func (m *NullMedia) Source() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.source
}

func (m *NullMedia) Play() error { return nil }

func (m *NullMedia) Pause() {}

func (m *NullMedia) Seek(pos time.Duration) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.position = pos
}

func (m *NullMedia) Position() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.position
}

func (m *NullMedia) Duration() time.Duration {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.duration
}

func (m *NullMedia) SetVolume(volume float64) {}

func (m *NullMedia) SetMuted(muted bool) {}
