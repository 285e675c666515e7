package commands

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/abcinema/pkg/commands/options"
	"tableflip.dev/abcinema/pkg/lists"
	"tableflip.dev/abcinema/pkg/movie"
	runner "tableflip.dev/abcinema/pkg/runner/lists"
)

func listTypeNames() []string {
	names := make([]string, 0, 3)
	for _, t := range movie.AllListTypes() {
		names = append(names, string(t))
	}
	return names
}

func addLists(topLevel *cobra.Command) {
	lo := &options.ListOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "lists [favorites|watchlist|watched]",
		Short: "show your movie lists",
		Example: `
abcinema lists
abcinema lists watchlist --sort title
abcinema lists favorites --sort vote_average --asc --filter matrix
abcinema lists watched --since 1mo
`,
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: listTypeNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			var t movie.ListType
			if len(args) == 1 {
				var err error
				if t, err = movie.ParseListType(args[0]); err != nil {
					return err
				}
			}
			field, dir, err := lo.Order()
			if err != nil {
				return err
			}
			since, err := lo.Window()
			if err != nil {
				return err
			}
			svc, err := loadService()
			if err != nil {
				return err
			}
			s := runner.Show{
				Service: svc,
				Type:    t,
				Field:   field,
				Dir:     dir,
				Filter:  lo.Filter,
				Since:   since,
				Output:  oo,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddListArgs(cmd, lo)
	options.AddOutputArg(cmd, oo)
	_ = cmd.RegisterFlagCompletionFunc("sort", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		fields := make([]string, 0, 4)
		for _, f := range lists.SortFields() {
			fields = append(fields, string(f))
		}
		return fields, cobra.ShellCompDirectiveNoFileComp
	})

	addListsCounts(cmd)
	for _, a := range []runner.Action{runner.ActionAdd, runner.ActionRemove, runner.ActionToggle} {
		addListsChange(cmd, a)
	}
	addListsExport(cmd)
	addListsImport(cmd)

	topLevel.AddCommand(cmd)
}

func addListsCounts(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "counts",
		Short: "show how many movies are in each list",
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			c := runner.Counts{Service: svc, Output: oo}
			return oo.HandleError(c.Do(context.Background()))
		},
	}

	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addListsChange(topLevel *cobra.Command, action runner.Action) {
	oo := &options.OutputOptions{}
	offline := movie.Movie{}
	var poster string

	cmd := &cobra.Command{
		Use:   string(action) + " <list> <movie-id>",
		Short: string(action) + " a movie in one of your lists",
		Example: fmt.Sprintf(`
abcinema lists %[1]s watchlist 603
abcinema lists %[1]s favorites 603 --title "The Matrix" --release 1999-03-30
`, action),
		Args: func(cmd *cobra.Command, args []string) error {
			if len(args) != 2 {
				return errors.New("expected a list and a movie id")
			}
			if _, err := movie.ParseListType(args[0]); err != nil {
				return err
			}
			if id, err := strconv.Atoi(args[1]); err != nil || id <= 0 {
				return fmt.Errorf("invalid movie id %q", args[1])
			}
			return nil
		},
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			if len(args) == 0 {
				return listTypeNames(), cobra.ShellCompDirectiveNoFileComp
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			t, _ := movie.ParseListType(args[0])
			id, _ := strconv.Atoi(args[1])
			svc, err := loadService()
			if err != nil {
				return err
			}
			c := runner.Change{
				Service: svc,
				Action:  action,
				Type:    t,
				ID:      id,
				Output:  oo,
			}
			if strings.TrimSpace(offline.Title) != "" {
				if poster != "" {
					offline.PosterPath = &poster
				}
				c.Offline = &offline
			}
			return oo.HandleError(c.Do(context.Background()))
		},
	}

	if action != runner.ActionRemove {
		cmd.Flags().StringVar(&offline.Title, "title", "", "Add without contacting the catalog, using this title.")
		cmd.Flags().StringVar(&offline.ReleaseDate, "release", "", "Release date (YYYY-MM-DD) for --title.")
		cmd.Flags().Float64Var(&offline.VoteAverage, "vote", 0, "Vote average for --title.")
		cmd.Flags().StringVar(&poster, "poster", "", "Poster path for --title.")
	}
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addListsExport(topLevel *cobra.Command) {
	to := &options.TransferOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "export <file>",
		Short: "write every list to a json, yaml or toml file",
		Example: `
abcinema lists export lists.yaml
abcinema lists export - --format toml
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := to.FormatFor(args[0])
			if err != nil {
				return err
			}
			svc, err := loadService()
			if err != nil {
				return err
			}
			e := runner.Export{Service: svc, Path: args[0], Format: f, Output: oo}
			return e.Do(context.Background())
		},
	}

	options.AddExportArgs(cmd, to)
	topLevel.AddCommand(cmd)
}

func addListsImport(topLevel *cobra.Command) {
	to := &options.TransferOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "import <file>",
		Short: "load lists from a json, yaml or toml file",
		Example: `
abcinema lists import lists.yaml
abcinema lists import backup.json --merge
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := to.FormatFor(args[0])
			if err != nil {
				return err
			}
			svc, err := loadService()
			if err != nil {
				return err
			}
			i := runner.Import{Service: svc, Path: args[0], Format: f, Merge: to.Merge, Output: oo}
			return oo.HandleError(i.Do(context.Background()))
		},
	}

	options.AddImportArgs(cmd, to)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
