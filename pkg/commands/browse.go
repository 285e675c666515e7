package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/abcinema/pkg/commands/options"
	"tableflip.dev/abcinema/pkg/movie"
	"tableflip.dev/abcinema/pkg/runner/browse"
	"tableflip.dev/abcinema/pkg/tmdb"
)

func addBrowse(topLevel *cobra.Command) {
	po := &options.PageOptions{}
	do := &options.DiscoverOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "browse the catalog by genre, year and ordering",
		Example: `
abcinema browse --genre Horror
abcinema browse --genre "Science Fiction" --year 1982 --sort vote_average.desc
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := po.Validate(); err != nil {
				return err
			}
			params, err := do.Resolve(*po)
			if err != nil {
				return err
			}
			svc, err := loadService()
			if err != nil {
				return err
			}
			b := browse.Browse{Service: svc, Params: params, Output: oo}
			return oo.HandleError(b.Do(context.Background()))
		},
	}

	options.AddPageArgs(cmd, po)
	options.AddDiscoverArgs(cmd, do)
	options.AddOutputArg(cmd, oo)
	_ = cmd.RegisterFlagCompletionFunc("genre", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		names := make([]string, 0, len(movie.Genres))
		for _, g := range movie.Genres {
			names = append(names, g.Name)
		}
		return names, cobra.ShellCompDirectiveNoFileComp
	})
	_ = cmd.RegisterFlagCompletionFunc("sort", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		values := make([]string, 0, len(tmdb.SortOptions))
		for _, o := range tmdb.SortOptions {
			values = append(values, o.Value+"\t"+o.Label)
		}
		return values, cobra.ShellCompDirectiveNoFileComp
	})

	topLevel.AddCommand(cmd)
}

func addCharts(topLevel *cobra.Command) {
	for _, c := range browse.Charts() {
		addChart(topLevel, c)
	}
}

func addChart(topLevel *cobra.Command, chart browse.Chart) {
	po := &options.PageOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   string(chart),
		Short: "show " + string(chart) + " movies",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := po.Validate(); err != nil {
				return err
			}
			svc, err := loadService()
			if err != nil {
				return err
			}
			c := browse.ChartRunner{Service: svc, Chart: chart, Page: po.Page, Output: oo}
			return oo.HandleError(c.Do(context.Background()))
		},
	}

	if chart != browse.Trending {
		cmd.Flags().IntVarP(&po.Page, "page", "p", 1, "Results page.")
	}
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
