package movie

import (
	"context"

	"tableflip.dev/abcinema/pkg/app"
	"tableflip.dev/abcinema/pkg/commands/options"
	"tableflip.dev/abcinema/pkg/printers"
)

// Movie prints a movie's detail page.
type Movie struct {
	Service *app.Service
	ID      int
	Output  *options.OutputOptions
}

func (m *Movie) Do(ctx context.Context) error {
	if _, err := m.Service.Catalog(); err != nil {
		return err
	}
	page, err := m.Service.Details.Load(ctx, m.ID)
	if err != nil {
		return err
	}
	if m.Output.JSON {
		return m.Output.Print(page)
	}
	pp := printers.PrettyPrint{Out: m.Output.Writer()}
	pp.Detail(page, m.Service.Lists)
	return nil
}
