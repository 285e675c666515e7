package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/abcinema/pkg/commands/options"
	"tableflip.dev/abcinema/pkg/runner/recent"
	"tableflip.dev/abcinema/pkg/runner/search"
)

func addSearch(topLevel *cobra.Command) {
	po := &options.PageOptions{}
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "search <query...>",
		Short: "search the movie catalog",
		Example: `
abcinema search blade runner
abcinema search dune --year 1984
`,
		Args: cobra.MinimumNArgs(1),
		PreRunE: func(cmd *cobra.Command, args []string) error {
			return po.Validate()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			s := search.Search{
				Service: svc,
				Query:   strings.Join(args, " "),
				Page:    po.Page,
				Year:    po.Year,
				Output:  oo,
			}
			return oo.HandleError(s.Do(context.Background()))
		},
	}

	options.AddPageArgs(cmd, po)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}

func addRecent(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	clearAll := false

	cmd := &cobra.Command{
		Use:   "recent",
		Short: "show recent searches",
		Example: `
abcinema recent
abcinema recent --clear
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := loadService()
			if err != nil {
				return err
			}
			r := recent.Recent{Service: svc, Clear: clearAll, Output: oo}
			return oo.HandleError(r.Do(context.Background()))
		},
	}

	cmd.Flags().BoolVar(&clearAll, "clear", false, "Forget all recent searches.")
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
