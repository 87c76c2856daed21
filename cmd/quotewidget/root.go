package main

import (
	"os"

	"github.com/spf13/cobra"
)

const defaultProfile = "local"

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	profile   string
	configDir string
	envFile   string
}

// newRootCmd builds the command tree. Running the root command without a
// subcommand starts the terminal widget.
func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:   "quotewidget",
		Short: "A quote widget that refreshes itself periodically",
		Long: `quotewidget shows a random quotation fetched from a remote quote API,
refreshes it on a fixed interval, and offers a manual refresh control.

It runs in the terminal (tui, the default) or as a small web host (serve).`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().StringVarP(&opts.profile, "profile", "p", profileFromEnv(),
		"configuration profile (configs/<profile>.yaml)")
	root.PersistentFlags().StringVar(&opts.configDir, "config-dir", "configs",
		"directory holding base.yaml and profile files")
	root.PersistentFlags().StringVar(&opts.envFile, "env-file", ".env",
		"dotenv file with APP_ overrides; ignored when missing")

	tuiCmd := newTUICmd(opts)
	root.AddCommand(tuiCmd, newServeCmd(opts), newVersionCmd())
	root.RunE = tuiCmd.RunE

	return root
}

// profileFromEnv returns APP_ENVIRONMENT or the local profile.
func profileFromEnv() string {
	if profile := os.Getenv("APP_ENVIRONMENT"); profile != "" {
		return profile
	}

	return defaultProfile
}
