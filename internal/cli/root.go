package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var (
	// configPath is the --config flag shared by every subcommand.
	configPath string

	// Version is set via ldflags at build time.
	Version = "dev"
	// GitCommit is set via ldflags at build time.
	GitCommit = "unknown"
	// BuildDate is set via ldflags at build time.
	BuildDate = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "engine",
	Short: "Drive the desktop automation engine from the command line",
	Long: `engine is a reference command-line consumer of the automation engine:
it runs workflow documents, starts and stops recording sessions, and reports
accessibility backend health and metrics.`,
	Version: Version,
}

// Execute runs the CLI, exiting the process with status 1 on error.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.SetVersionTemplate(
		fmt.Sprintf("engine version %s\nGit commit: %s\nBuild date: %s\n", Version, GitCommit, BuildDate),
	)

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")
}
