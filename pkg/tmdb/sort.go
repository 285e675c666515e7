package tmdb

import "fmt"

// DefaultSort is the Discover ordering used when none is given.
const DefaultSort = "popularity.desc"

// SortOption is a Discover ordering.
type SortOption struct {
	Value string
	Label string
}

// SortOptions lists the supported Discover orderings.
var SortOptions = []SortOption{
	{Value: "popularity.desc", Label: "Most Popular"},
	{Value: "popularity.asc", Label: "Least Popular"},
	{Value: "vote_average.desc", Label: "Highest Rated"},
	{Value: "vote_average.asc", Label: "Lowest Rated"},
	{Value: "vote_count.desc", Label: "Most Voted"},
	{Value: "primary_release_date.desc", Label: "Newest First"},
	{Value: "primary_release_date.asc", Label: "Oldest First"},
	{Value: "revenue.desc", Label: "Highest Revenue"},
	{Value: "revenue.asc", Label: "Lowest Revenue"},
	{Value: "original_title.asc", Label: "Title A-Z"},
	{Value: "original_title.desc", Label: "Title Z-A"},
}

// ValidSort checks that value is one of SortOptions.
func ValidSort(value string) error {
	for _, o := range SortOptions {
		if o.Value == value {
			return nil
		}
	}
	return fmt.Errorf("tmdb: unknown sort %q", value)
}
