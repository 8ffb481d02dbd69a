package main

import (
	"os"

	"devfactory/internal/logging"

	"github.com/spf13/cobra"
)

var (
	configPath string
	debug      bool
)

var rootCmd = &cobra.Command{
	Use:           "devfactory-mcp",
	Short:         "dev-factory MCP servers",
	Long:          `Stdio MCP servers for the dev-factory theme docs, UI kit docs and image utilities.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logging.Error("Command failed", "error", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Path to dev-factory.config.json (default: search next to the binary, the working directory, then the user config dir)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "Write debug logs to "+logging.LogFileName+" in the working directory")

	rootCmd.AddCommand(newDocsCmd(themeServer))
	rootCmd.AddCommand(newDocsCmd(kitServer))
	rootCmd.AddCommand(newImageUtilsCmd())
	rootCmd.AddCommand(versionCmd)
}

// newLogger honours --debug as well as the DEBUG environment variable. The
// logger also becomes the package default, so Execute reports failures
// through it.
func newLogger(prefix string) *logging.AppLogger {
	logger, err := logging.NewAppLoggerWithOptions(logging.Options{
		Debug:  debug || os.Getenv("DEBUG") != "",
		Prefix: prefix,
	})
	if err != nil {
		logger, _ = logging.NewAppLoggerWithOptions(logging.Options{Prefix: prefix})
		logger.Warn("Debug logging unavailable, using stderr", "error", err)
	}
	logging.SetDefault(logger)
	return logger
}
