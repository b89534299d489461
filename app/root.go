// Package app implements the main application commands.
package app

import (
	"github.com/spf13/cobra"

	"github.com/briefboard/briefboard/internal/config"
)

var configPath string // directory holding main.toml

var rootCmd = &cobra.Command{
	Use:   "briefboard",
	Short: "briefboard decides when the daily briefing prompt is shown",
	Long: `briefboard serves the briefing prompt policy of a dashboard: per user
settings, last-seen tracking, the visibility decision and a small calendar
whose days can drive the prompt.`,
	Args:          cobra.OnlyValidArgs,
	SilenceUsage:  true,
	SilenceErrors: false,
}

func init() { //nolint: gochecknoinits
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "./etc/", "directory containing main.toml")
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func loadConfig() (config.Config, error) {
	if configPath != "" && configPath[len(configPath)-1] != '/' {
		configPath += "/"
	}

	return config.ReadConfig(configPath) //nolint:wrapcheck
}
