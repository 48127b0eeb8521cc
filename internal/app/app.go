// Package app wires configuration, the local cache, the session, the API
// client, the state containers, and the player into a running TUI.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/cantoapp/canto/internal/api"
	"github.com/cantoapp/canto/internal/config"
	"github.com/cantoapp/canto/internal/localstore"
	"github.com/cantoapp/canto/internal/logging"
	"github.com/cantoapp/canto/internal/player"
	"github.com/cantoapp/canto/internal/session"
	"github.com/cantoapp/canto/internal/state"
	"github.com/cantoapp/canto/internal/ui"
)

// Options configure the application.
type Options struct {
	ConfigPath string
	BaseURL    string // overrides config and environment when set
	ThemeName  string
}

// Run boots the TUI until the context is cancelled or the user quits.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath, opts.BaseURL)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	log, closeLog := logging.Open(cfg.LogPath)
	defer closeLog()

	store := localstore.Open(cfg.StatePath)
	sess := session.New(store, log)

	client, err := api.NewClient(cfg.BaseURL, sess, log)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}
	sess.SetAPI(client)

	// Validate any restored token before the first view renders.
	sess.RefreshProfile(ctx)

	works := state.NewWorks(client, sess, log)
	history := state.NewHistory(client, sess, log)
	p := player.New(&player.NullMedia{}, store, client, log)

	return ui.Run(ui.Options{
		Context:   ctx,
		Client:    client,
		Session:   sess,
		Works:     works,
		History:   history,
		Player:    p,
		ThemeName: opts.ThemeName,
		PollTick:  time.Duration(cfg.PollSeconds) * time.Second,
	})
}
