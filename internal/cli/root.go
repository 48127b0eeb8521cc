// Package cli implements the canto command line. The bare command starts
// the TUI; subcommands cover the same API surface non-interactively for
// scripting.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/cantoapp/canto/internal/app"
)

var (
	configPath string
	apiBaseURL string
	themeName  string
	verbose    bool

	version = "dev"
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "canto",
	Short: "Terminal client for the AI music platform",
	Long: `canto is a terminal client for the AI music generation platform.

Run it without arguments for the interactive TUI: browse hot songs,
manage your works, review generation history, search, and play music
without leaving the terminal.

Subcommands expose the same API for scripting:
  canto login -u alice            # authenticate and cache the session
  canto works list                # list your works
  canto generate "轻快的钢琴曲"     # generate music and wait for it
  canto emotion song.mp3          # run emotion analysis on a file`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), app.Options{
			ConfigPath: configPath,
			BaseURL:    apiBaseURL,
			ThemeName:  themeName,
		})
	},
}

// ExecuteContext runs the root command under the given context.
func ExecuteContext(ctx context.Context) {
	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "错误: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file path (default ~/.config/canto/config.toml)")
	rootCmd.PersistentFlags().StringVar(&apiBaseURL, "api", "", "API base URL (overrides config and CANTO_API_BASE_URL)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose logging to stderr")
	rootCmd.Flags().StringVar(&themeName, "theme", "", "UI theme name")

	rootCmd.SetVersionTemplate(`{{printf "%s\n" .Version}}`)
}
