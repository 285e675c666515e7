package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/abcinema/pkg/commands/options"
	"tableflip.dev/abcinema/pkg/runner/movie"
)

func addMovie(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	id := 0

	cmd := &cobra.Command{
		Use:   "movie <movie-id>",
		Short: "show a movie's details, credits, trailer and ratings",
		Example: `
abcinema movie 603
`,
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 1 {
				return fmt.Errorf("expected one movie id, got %d", len(args))
			}
			var err error
			if id, err = strconv.Atoi(args[0]); err != nil || id <= 0 {
				return fmt.Errorf("invalid movie id %q", args[0])
			}
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			m := movie.Movie{Service: svc, ID: id, Output: oo}
			return oo.HandleError(m.Do(context.Background()))
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
