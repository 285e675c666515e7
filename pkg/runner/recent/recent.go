package recent

import (
	"context"

	"tableflip.dev/abcinema/pkg/app"
	"tableflip.dev/abcinema/pkg/commands/options"
	"tableflip.dev/abcinema/pkg/printers"
)

// Recent prints or clears the recent-search log.
type Recent struct {
	Service *app.Service
	Clear   bool
	Output  *options.OutputOptions
}

func (r *Recent) Do(ctx context.Context) error {
	if r.Clear {
		r.Service.Recent.Clear()
	}
	queries := r.Service.Recent.All()
	if queries == nil {
		queries = []string{}
	}
	if r.Output.JSON {
		return r.Output.Print(queries)
	}
	pp := printers.PrettyPrint{Out: r.Output.Writer()}
	pp.Recent(queries)
	return nil
}
