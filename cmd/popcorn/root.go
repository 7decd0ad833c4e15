package main

import (
	"github.com/spf13/cobra"

	"github.com/five82/popcorn/internal/app"
)

func newRootCommand() *cobra.Command {
	var configFlag string
	var logLevelFlag string
	var prefsFlag string

	ctx := newCommandContext(&configFlag, &logLevelFlag, &prefsFlag)

	rootCmd := &cobra.Command{
		Use:           "popcorn",
		Short:         "Search movies and keep a list of what you watched",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, ctx)
		},
	}

	rootCmd.PersistentFlags().StringVarP(&configFlag, "config", "c", "", "Configuration file path")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "", "Override the configured log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&prefsFlag, "prefs", "", "UI preferences file path")

	rootCmd.AddCommand(newTUICommand(ctx))
	rootCmd.AddCommand(newSearchCommand(ctx))
	rootCmd.AddCommand(newShowCommand(ctx))
	rootCmd.AddCommand(newWatchedCommand(ctx))
	rootCmd.AddCommand(newLogsCommand(ctx))

	return rootCmd
}

func newTUICommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "tui",
		Short: "Start the interactive terminal UI",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runTUI(cmd, ctx)
		},
	}
}

func runTUI(cmd *cobra.Command, ctx *commandContext) error {
	return app.Run(cmd.Context(), ctx.options())
}
