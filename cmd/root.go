// Package cmd contains all the CLI commands for the application,
// built using the Cobra library.
package cmd

import (
	"io"
	"os"

	"github.com/naka-gawa/github-profile/internal/config"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "github-profile",
	Short: "A CLI tool to chart a GitHub user's public profile.",
	Long: `github-profile fetches a GitHub user's public profile, repositories and
authored pull requests from the GitHub REST API and renders them as a page of
charts: stars per repository, contribution totals, languages used and open
source contributions.`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func init() {
	// Add a persistent flag for verbose output, available to all commands.
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose/debug logging")
}

// newLogger builds the logger for a command. Quiet commands discard logs unless
// --verbose is set; verbose always means debug level on standard error.
func newLogger(cmd *cobra.Command, cfg config.Config, quiet bool) *logrus.Logger {
	verbose, _ := cmd.InheritedFlags().GetBool("verbose")

	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetLevel(logrus.InfoLevel)
	if cfg.LogFormat == "json" {
		logger.SetFormatter(&logrus.JSONFormatter{})
	}
	switch {
	case verbose:
		logger.SetLevel(logrus.DebugLevel)
	case quiet:
		logger.SetOutput(io.Discard)
	}
	return logger
}
