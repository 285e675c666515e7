package commands

import (
	"github.com/spf13/cobra"

	base "github.com/n3wscott/cli-base/pkg/commands/options"

	"tableflip.dev/abcinema/pkg/app"
	"tableflip.dev/abcinema/pkg/config"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "abcinema",
		Short: base.Wrap80("Track favorite, watchlist and watched movies from the command line."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addKey(topLevel)
	addLists(topLevel)
	addSearch(topLevel)
	addRecent(topLevel)
	addMovie(topLevel)
	addPerson(topLevel)
	addBrowse(topLevel)
	addCharts(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// loadService reads configuration and opens the local store.
func loadService() (*app.Service, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	return app.New(cfg)
}
