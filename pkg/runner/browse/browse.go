package browse

import (
	"context"

	"tableflip.dev/abcinema/pkg/app"
	"tableflip.dev/abcinema/pkg/commands/options"
	"tableflip.dev/abcinema/pkg/movie"
	"tableflip.dev/abcinema/pkg/printers"
	"tableflip.dev/abcinema/pkg/tmdb"
)

// Browse lists catalog movies by genre, year and ordering.
type Browse struct {
	Service *app.Service
	Params  tmdb.DiscoverParams
	Output  *options.OutputOptions
}

func (b *Browse) Do(ctx context.Context) error {
	catalog, err := b.Service.Catalog()
	if err != nil {
		return err
	}
	page, err := catalog.Discover(ctx, b.Params)
	if err != nil {
		return err
	}
	if b.Output.JSON {
		return b.Output.Print(page)
	}
	title := "Browse"
	if b.Params.GenreID != 0 {
		title = movie.GenreName(b.Params.GenreID)
	}
	pp := printers.PrettyPrint{Out: b.Output.Writer()}
	pp.TitleWithCount(title, page.TotalResults)
	pp.Movies(b.Service.Lists, page.Results...)
	return nil
}

// Chart is one of the fixed catalog charts.
type Chart string

const (
	Trending   Chart = "trending"
	Popular    Chart = "popular"
	TopRated   Chart = "top-rated"
	Upcoming   Chart = "upcoming"
	NowPlaying Chart = "now-playing"
)

// Charts lists the supported charts.
func Charts() []Chart {
	return []Chart{Trending, Popular, TopRated, Upcoming, NowPlaying}
}

// ChartRunner prints a fixed chart.
type ChartRunner struct {
	Service *app.Service
	Chart   Chart
	Page    int
	Output  *options.OutputOptions
}

func (c *ChartRunner) Do(ctx context.Context) error {
	catalog, err := c.Service.Catalog()
	if err != nil {
		return err
	}
	var results []movie.Movie
	switch c.Chart {
	case Trending:
		results, err = catalog.Trending(ctx)
	default:
		var page *tmdb.MoviePage
		switch c.Chart {
		case TopRated:
			page, err = catalog.TopRated(ctx, c.Page)
		case Upcoming:
			page, err = catalog.Upcoming(ctx, c.Page)
		case NowPlaying:
			page, err = catalog.NowPlaying(ctx, c.Page)
		default:
			page, err = catalog.Popular(ctx, c.Page)
		}
		if page != nil {
			results = page.Results
		}
	}
	if err != nil {
		return err
	}
	if c.Output.JSON {
		return c.Output.Print(results)
	}
	pp := printers.PrettyPrint{Out: c.Output.Writer()}
	pp.Title(string(c.Chart))
	pp.Movies(c.Service.Lists, results...)
	return nil
}
