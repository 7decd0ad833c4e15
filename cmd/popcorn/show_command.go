package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/five82/popcorn/internal/app"
	"github.com/five82/popcorn/internal/detail"
	"github.com/five82/popcorn/internal/omdb"
	"github.com/five82/popcorn/internal/watchlist"
)

func newShowCommand(ctx *commandContext) *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "show <imdbID>",
		Short: "Show details for one movie",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id := strings.TrimSpace(args[0])
			return ctx.withEnv(cmd, func(runCtx context.Context, env *app.Env) error {
				movie, err := loadDetail(runCtx, env, id)
				if err != nil {
					return err
				}
				out := cmd.OutOrStdout()
				if jsonOutput {
					return writeJSON(out, movie)
				}
				watched, ok := env.Watched.Find(movie.ID)
				printDetail(out, movie, watched, ok)
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the movie as JSON")
	return cmd
}

// loadDetail fetches one movie through a detail.Loader so the CLI and the
// TUI report failures with the same messages.
func loadDetail(ctx context.Context, env *app.Env, id string) (omdb.MovieDetail, error) {
	if id == "" {
		return omdb.MovieDetail{}, errors.New("imdb id is required")
	}
	loader := detail.New(env.API, env.Logger, nil)
	state := loader.Load(ctx, id)
	if !state.HasDetail {
		if state.Err == "" {
			return omdb.MovieDetail{}, detail.ErrNoDetail
		}
		return omdb.MovieDetail{}, errors.New(state.Err)
	}
	return state.Detail, nil
}

func printDetail(out io.Writer, movie omdb.MovieDetail, watched watchlist.Entry, isWatched bool) {
	fmt.Fprintln(out, renderStatusLine(out, toneInfo, fmt.Sprintf("%s (%s)", movie.Title, movie.Year)))
	fmt.Fprintf(out, "%s • %s\n", movie.Released, movie.Runtime)
	fmt.Fprintln(out, movie.Genre)
	fmt.Fprintf(out, "⭐ %s IMDb rating\n", movie.IMDbRating)
	if isWatched {
		fmt.Fprintln(out, renderStatusLine(out, toneSuccess, fmt.Sprintf("You rated this movie %d ⭐", watched.UserRating)))
	}
	fmt.Fprintln(out)
	fmt.Fprintln(out, movie.Plot)
	fmt.Fprintf(out, "Starring %s\n", movie.Actors)
	fmt.Fprintf(out, "Directed by %s\n", movie.Director)
}
