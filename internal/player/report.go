package player

import (
	"context"
	"time"

	"github.com/cantoapp/canto/internal/api"
)

const (
	reportWindow  = 30 * time.Second
	reportSource  = "player"
	reportTimeout = 10 * time.Second
)

// maybeReportPlay sends a best-effort play event for the track. Only
// published tracks with public (or unset) visibility and a playable URL
// are reported, at most once per id within the report window. Failures
// are logged and swallowed. Caller holds p.mu.
func (p *Player) maybeReportPlay(track Track) {
	if p.reporter == nil {
		return
	}
	if track.ID == 0 || track.URL == "" {
		return
	}
	if track.Status != api.WorkStatusPublished {
		return
	}
	switch track.Visibility {
	case "", api.VisibilityPublic:
	default:
		return
	}

	now := p.now()
	// Expired entries carry no de-dup information; dropping them here keeps
	// the map bounded by the tracks played within one window.
	for id, at := range p.lastReport {
		if now.Sub(at) >= reportWindow {
			delete(p.lastReport, id)
		}
	}
	if _, ok := p.lastReport[track.ID]; ok {
		return
	}
	p.lastReport[track.ID] = now

	go func(id int64) {
		ctx, cancel := context.WithTimeout(context.Background(), reportTimeout)
		defer cancel()
		if err := p.reporter.RecordWorkPlay(ctx, id, reportSource); err != nil {
			p.log.Debug().Err(err).Int64("work", id).Msg("play report failed")
		}
	}(track.ID)
}
