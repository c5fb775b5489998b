// Package main provides the entry point for the shapematch CLI tool.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Sumatoshi-tech/shapematch/cmd/shapematch/commands"
	"github.com/Sumatoshi-tech/shapematch/internal/config"
	"github.com/Sumatoshi-tech/shapematch/internal/observability"
	"github.com/Sumatoshi-tech/shapematch/pkg/version"
)

const serviceName = "shapematch"

func main() {
	var (
		configPath string
		verbose    bool
	)

	opts := &commands.Options{}

	rootCmd := &cobra.Command{
		Use:   "shapematch",
		Short: "Structural pattern matching over source trees",
		Long: `Shapematch parses JavaScript and TypeScript sources into labeled
trees and matches structural patterns against them.

Commands:
  parse     Parse source files and dump the lowered tree
  find      Search files for nodes matching a pattern`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}

			if verbose {
				cfg.Log.Level = "debug"
			}

			opts.Config = cfg
			opts.Logger = observability.NewLogger(observability.Config{
				ServiceName: serviceName,
				Environment: cfg.Log.Environment,
				Level:       cfg.Log.Level,
				JSON:        cfg.Log.JSON,
			})

			return nil
		},
	}

	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")

	rootCmd.AddCommand(commands.NewParseCommand(opts))
	rootCmd.AddCommand(commands.NewFindCommand(opts))
	rootCmd.AddCommand(versionCmd())

	err := rootCmd.Execute()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Fprintf(os.Stdout, "shapematch %s (commit: %s, built: %s)\n", version.Version, version.Commit, version.Date)
		},
	}
}
