package options

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tableflip.dev/abcinema/pkg/movie"
	"tableflip.dev/abcinema/pkg/tmdb"
)

// PageOptions selects a results page and optional release year.
type PageOptions struct {
	Page int
	Year string
}

func AddPageArgs(cmd *cobra.Command, o *PageOptions) {
	cmd.Flags().IntVarP(&o.Page, "page", "p", 1, "Results page.")
	cmd.Flags().StringVarP(&o.Year, "year", "y", "", "Restrict to a release year.")
}

// Validate checks the year is a plausible four digit number.
func (o *PageOptions) Validate() error {
	if o.Page < 1 {
		o.Page = 1
	}
	if o.Year == "" {
		return nil
	}
	if y, err := strconv.Atoi(o.Year); err != nil || len(o.Year) != 4 || y < 1870 {
		return fmt.Errorf("options: invalid year %q", o.Year)
	}
	return nil
}

// DiscoverOptions narrows catalog browsing.
type DiscoverOptions struct {
	Genre string
	Sort  string
}

func AddDiscoverArgs(cmd *cobra.Command, o *DiscoverOptions) {
	cmd.Flags().StringVarP(&o.Genre, "genre", "g", "", "Genre name, e.g. \"Science Fiction\".")
	cmd.Flags().StringVar(&o.Sort, "sort", tmdb.DefaultSort, "Catalog ordering, e.g. vote_average.desc.")
}

// Resolve validates the flags into request parameters.
func (o *DiscoverOptions) Resolve(p PageOptions) (tmdb.DiscoverParams, error) {
	params := tmdb.DiscoverParams{SortBy: o.Sort, Page: p.Page, Year: p.Year}
	if err := tmdb.ValidSort(o.Sort); err != nil {
		return params, err
	}
	if o.Genre != "" {
		g, err := movie.GenreByName(o.Genre)
		if err != nil {
			return params, err
		}
		params.GenreID = g.ID
	}
	return params, nil
}
