package cmd

import (
	"fmt"
	"os"

	"notesapp/config"
	"notesapp/internal/client"
	"notesapp/pkg/logger"

	"github.com/spf13/cobra"
)

var (
	cfg      config.Config
	apiURL   string
	logLevel string
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:           "notes",
	Short:         "A small note-taking service and its clients",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var envLoaded bool
		cfg, envLoaded = config.Load()
		if logLevel != "" {
			cfg.LogLevel = logLevel
		}
		if apiURL != "" {
			cfg.APIURL = apiURL
		}
		if err := logger.Init(cfg.LogLevel); err != nil {
			return fmt.Errorf("invalid log level %q: %w", cfg.LogLevel, err)
		}
		if !envLoaded {
			logger.Sugar.Debug("No .env file found, using environment variables from OS")
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		logger.Sync()
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&apiURL, "api", "", "notes API base URL (default $NOTES_API_URL or "+config.DefaultAPIURL+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
}

func newAPIClient() *client.Client {
	return client.New(cfg.APIURL)
}
