package cli

import (
	"fmt"
	"os"

	"github.com/sharespace/backend/internal/cli/api"
	"github.com/sharespace/backend/internal/cli/cliconfig"
	"github.com/spf13/cobra"
)

var (
	flagJSON      bool
	flagServerURL string

	cfg       *cliconfig.Config
	apiClient *api.Client
)

var rootCmd = &cobra.Command{
	Use:   "sharespace",
	Short: "Manage event photo spaces from the terminal",
	Long: `ShareSpace CLI lets you create spaces, upload photos, and moderate
guest submissions without leaving the terminal.

Get started:
  sharespace login -e you@example.com   Authenticate
  sharespace spaces                     List your spaces
  sharespace upload my-wedding *.jpg    Upload photos to a space`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = cliconfig.Load()
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		if flagServerURL != "" {
			cfg.ServerURL = flagServerURL
		}
		apiClient = api.NewClient(cfg.ServerURL, cfg.Token)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&flagJSON, "json", false, "Output as JSON")
	rootCmd.PersistentFlags().StringVar(&flagServerURL, "server", "", "Override server URL (default: from config or http://localhost:8080)")
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}

// requireAuth is a helper that returns an error if no token is configured.
func requireAuth() error {
	if cfg == nil || !cfg.HasToken() {
		return fmt.Errorf("not authenticated, run \"sharespace login\" first")
	}
	return nil
}
