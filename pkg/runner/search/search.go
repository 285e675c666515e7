package search

import (
	"context"
	"errors"
	"strings"

	"tableflip.dev/abcinema/pkg/app"
	"tableflip.dev/abcinema/pkg/commands/options"
	"tableflip.dev/abcinema/pkg/printers"
)

// Search runs a catalog search and records it in the recent log.
type Search struct {
	Service *app.Service
	Query   string
	Page    int
	Year    string
	Output  *options.OutputOptions
}

func (s *Search) Do(ctx context.Context) error {
	q := strings.TrimSpace(s.Query)
	if q == "" {
		return errors.New("search: empty query")
	}
	catalog, err := s.Service.Catalog()
	if err != nil {
		return err
	}
	s.Service.Recent.Record(q)

	page, err := catalog.SearchMoviesYear(ctx, q, s.Page, s.Year)
	if err != nil {
		return err
	}
	if s.Output.JSON {
		return s.Output.Print(page)
	}
	pp := printers.PrettyPrint{Out: s.Output.Writer()}
	pp.TitleWithCount(`Results for "`+q+`"`, page.TotalResults)
	pp.Movies(s.Service.Lists, page.Results...)
	return nil
}
