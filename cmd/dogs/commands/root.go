package commands

import (
	"context"

	"github.com/spf13/cobra"
)

var (
	// Global flags
	configPath string
	jsonOutput bool
	verbose    bool
)

// Execute runs the root command.
func Execute(ctx context.Context, version string) error {
	return newRootCommand(version).ExecuteContext(ctx)
}

func newRootCommand(version string) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "dogs",
		Short: "Dog registry backed by a single relational table",
		Long: `dogs manages the dogs table (id, name, breed) in a SQLite file or a
PostgreSQL database.

Configuration comes from DOGS_* environment variables and an optional
YAML file passed with --config.`,
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	rootCmd.AddCommand(newCreateTableCommand())
	rootCmd.AddCommand(newDropTableCommand())
	rootCmd.AddCommand(newCreateCommand())
	rootCmd.AddCommand(newListCommand())
	rootCmd.AddCommand(newFindCommand())
	rootCmd.AddCommand(newFindOrCreateCommand())
	rootCmd.AddCommand(newUpdateCommand())
	rootCmd.AddCommand(newWatchCommand())

	return rootCmd
}
