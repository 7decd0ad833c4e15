package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/five82/popcorn/internal/logtail"
)

func newLogsCommand(ctx *commandContext) *cobra.Command {
	var lines int
	var level string

	cmd := &cobra.Command{
		Use:   "logs",
		Short: "Print the tail of the popcorn log file",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			path := cfg.LogPath()
			tail, err := logtail.Read(path, lines)
			if err != nil {
				return err
			}
			tail = logtail.FilterLevel(tail, level)

			out := cmd.OutOrStdout()
			if len(tail) == 0 {
				fmt.Fprintf(out, "No log entries in %s\n", path)
				return nil
			}
			if shouldColorize(out) {
				tail = logtail.ColorizeLines(tail)
			}
			for _, line := range tail {
				fmt.Fprintln(out, line)
			}
			return nil
		},
	}

	cmd.Flags().IntVarP(&lines, "lines", "n", 50, "Number of lines to show (0 for all)")
	cmd.Flags().StringVar(&level, "level", "", "Minimum level to show (debug, info, warn, error)")
	return cmd
}
