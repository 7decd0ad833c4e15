package main

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/spf13/cobra"

	"github.com/five82/popcorn/internal/app"
	"github.com/five82/popcorn/internal/search"
)

func newSearchCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "search <query>",
		Short: "Search OMDb for movies by title",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			query := strings.Join(args, " ")
			if utf8.RuneCountInString(query) < search.MinQueryLength {
				out := cmd.OutOrStdout()
				fmt.Fprintln(out, renderStatusLine(out, toneInfo, fmt.Sprintf("Type at least %d characters to search", search.MinQueryLength)))
				return nil
			}
			return ctx.withEnv(cmd, func(runCtx context.Context, env *app.Env) error {
				source := search.New(env.API, env.Logger)
				defer source.Close()

				state := source.Search(runCtx, query)
				out := cmd.OutOrStdout()
				switch state.Err {
				case "":
				case search.NotFoundMessage:
					fmt.Fprintln(out, renderStatusLine(out, toneWarn, state.Err))
					return nil
				default:
					return errors.New(state.Err)
				}

				if jsonOutput {
					return writeJSON(out, state.Results)
				}

				rows := make([][]string, 0, len(state.Results))
				for _, movie := range state.Results {
					rows = append(rows, []string{movie.ID, movie.Title, movie.Year})
				}
				fmt.Fprintln(out, renderTable([]string{"ID", "Title", "Year"}, rows, []columnAlignment{alignLeft, alignLeft, alignRight}))
				fmt.Fprintln(out, renderStatusLine(out, toneInfo, fmt.Sprintf("Found %d results", len(state.Results))))
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print results as JSON")
	return cmd
}
