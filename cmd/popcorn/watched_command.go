package main

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/popcorn/internal/app"
	"github.com/five82/popcorn/internal/detail"
	"github.com/five82/popcorn/internal/watchlist"
)

func newWatchedCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "watched",
		Short: "Inspect and edit the watched list",
	}

	cmd.AddCommand(newWatchedListCommand(ctx))
	cmd.AddCommand(newWatchedSummaryCommand(ctx))
	cmd.AddCommand(newWatchedAddCommand(ctx))
	cmd.AddCommand(newWatchedRemoveCommand(ctx))
	return cmd
}

func newWatchedListCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List watched movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEnv(cmd, func(_ context.Context, env *app.Env) error {
				entries := env.Watched.Entries()
				out := cmd.OutOrStdout()
				if jsonOutput {
					return writeJSON(out, entries)
				}
				if len(entries) == 0 {
					fmt.Fprintln(out, "Nothing watched yet")
					return nil
				}
				rows := make([][]string, 0, len(entries))
				for _, e := range entries {
					rows = append(rows, []string{
						e.ID,
						e.Title,
						e.Year,
						strconv.FormatFloat(e.IMDbRating, 'f', 1, 64),
						strconv.Itoa(e.UserRating),
						fmt.Sprintf("%d min", e.Runtime),
					})
				}
				headers := []string{"ID", "Title", "Year", "IMDb", "Rating", "Runtime"}
				aligns := []columnAlignment{alignLeft, alignLeft, alignRight, alignRight, alignRight, alignRight}
				fmt.Fprintln(out, renderTable(headers, rows, aligns))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print entries as JSON")
	return cmd
}

func newWatchedSummaryCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Show watched list averages",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return ctx.withEnv(cmd, func(_ context.Context, env *app.Env) error {
				summary := watchlist.Summarize(env.Watched.Entries())
				rows := [][]string{
					{"Movies", strconv.Itoa(summary.Count)},
					{"Avg IMDb rating", watchlist.FormatAverage(summary.AvgIMDbRating, 2)},
					{"Avg your rating", watchlist.FormatAverage(summary.AvgUserRating, 2)},
					{"Avg runtime", watchlist.FormatAverage(summary.AvgRuntime, 0) + " min"},
				}
				fmt.Fprintln(cmd.OutOrStdout(), renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight}))
				return nil
			})
		},
	}
}

func newWatchedAddCommand(ctx *commandContext) *cobra.Command {
	var rating int

	cmd := &cobra.Command{
		Use:   "add <imdbID>",
		Short: "Fetch a movie and add it to the watched list with your rating",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if rating < 1 || rating > watchlist.MaxRating {
				return fmt.Errorf("%w: --rating must be between 1 and %d", watchlist.ErrInvalidRating, watchlist.MaxRating)
			}
			id := strings.TrimSpace(args[0])
			return ctx.withEnv(cmd, func(runCtx context.Context, env *app.Env) error {
				if _, ok := env.Watched.Find(id); ok {
					return fmt.Errorf("%w: %s", watchlist.ErrDuplicate, id)
				}
				movie, err := loadDetail(runCtx, env, id)
				if err != nil {
					return err
				}
				entry := detail.EntryFrom(movie, rating)
				if err := env.Watched.Append(runCtx, entry); err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderStatusLine(out, toneSuccess, fmt.Sprintf("Added %s (%s) rated %d", entry.Title, entry.ID, entry.UserRating)))
				return nil
			})
		},
	}

	cmd.Flags().IntVarP(&rating, "rating", "r", 0, "Your rating from 1 to 10")
	_ = cmd.MarkFlagRequired("rating")
	return cmd
}

func newWatchedRemoveCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <imdbID>",
		Aliases: []string{"rm"},
		Short:   "Remove a movie from the watched list",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return ctx.withEnv(cmd, func(runCtx context.Context, env *app.Env) error {
				out := cmd.OutOrStdout()
				if _, ok := env.Watched.Find(id); !ok {
					fmt.Fprintln(out, renderStatusLine(out, toneWarn, fmt.Sprintf("%s is not on the watched list", id)))
					return nil
				}
				if err := env.Watched.RemoveWhere(runCtx, id); err != nil {
					return err
				}
				fmt.Fprintln(out, renderStatusLine(out, toneSuccess, fmt.Sprintf("Removed %s", id)))
				return nil
			})
		},
	}
}
