package cli

import (
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/cantoapp/canto/internal/api"
	"github.com/cantoapp/canto/internal/config"
	"github.com/cantoapp/canto/internal/localstore"
	"github.com/cantoapp/canto/internal/logging"
	"github.com/cantoapp/canto/internal/session"
)

// env bundles the shared runtime for non-interactive subcommands.
type env struct {
	cfg     config.Config
	log     zerolog.Logger
	store   *localstore.Store
	session *session.Session
	client  *api.Client
}

func newEnv(cmd *cobra.Command) (*env, error) {
	cfg, err := config.Load(configPath, apiBaseURL)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	log := zerolog.Nop()
	if verbose {
		log = logging.Console(os.Stderr)
	}

	store := localstore.Open(cfg.StatePath)
	sess := session.New(store, log)
	client, err := api.NewClient(cfg.BaseURL, sess, log)
	if err != nil {
		return nil, fmt.Errorf("init api client: %w", err)
	}
	sess.SetAPI(client)

	return &env{cfg: cfg, log: log, store: store, session: sess, client: client}, nil
}

// requireLogin fails fast with the platform's standard prompt when no
// session is cached.
func (e *env) requireLogin() error {
	if !e.session.IsLoggedIn() {
		return fmt.Errorf("%s", api.LoginRequiredMessage)
	}
	return nil
}
