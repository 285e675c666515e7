package tmdb

import (
	"context"
	"fmt"
	"net/url"
	"strconv"

	"tableflip.dev/abcinema/pkg/movie"
)

// MoviePage is one page of movie summaries.
type MoviePage = movie.Page[movie.Movie]

func pageParams(page int) url.Values {
	if page < 1 {
		page = 1
	}
	return url.Values{"page": {strconv.Itoa(page)}}
}

func (c *Client) moviePage(ctx context.Context, endpoint string, params url.Values) (*MoviePage, error) {
	var p MoviePage
	if err := c.get(ctx, endpoint, params, true, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// Trending returns this week's trending movies.
func (c *Client) Trending(ctx context.Context) ([]movie.Movie, error) {
	p, err := c.moviePage(ctx, "/trending/movie/week", nil)
	if err != nil {
		return nil, err
	}
	return p.Results, nil
}

func (c *Client) Popular(ctx context.Context, page int) (*MoviePage, error) {
	return c.moviePage(ctx, "/movie/popular", pageParams(page))
}

func (c *Client) TopRated(ctx context.Context, page int) (*MoviePage, error) {
	return c.moviePage(ctx, "/movie/top_rated", pageParams(page))
}

func (c *Client) Upcoming(ctx context.Context, page int) (*MoviePage, error) {
	return c.moviePage(ctx, "/movie/upcoming", pageParams(page))
}

func (c *Client) NowPlaying(ctx context.Context, page int) (*MoviePage, error) {
	return c.moviePage(ctx, "/movie/now_playing", pageParams(page))
}

// SearchMovies runs a free-text search. It makes a single attempt so a
// failing lookup resolves quickly.
func (c *Client) SearchMovies(ctx context.Context, query string, page int) (*MoviePage, error) {
	return c.SearchMoviesYear(ctx, query, page, "")
}

// SearchMoviesYear is SearchMovies restricted to a release year.
func (c *Client) SearchMoviesYear(ctx context.Context, query string, page int, year string) (*MoviePage, error) {
	params := pageParams(page)
	params.Set("query", query)
	params.Set("include_adult", "false")
	if year != "" {
		params.Set("year", year)
	}
	var p MoviePage
	if err := c.get(ctx, "/search/movie", params, false, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DiscoverParams filters Discover.
type DiscoverParams struct {
	GenreID int
	SortBy  string
	Page    int
	Year    string
}

// Discover browses the catalog by genre, year and ordering. Only titles with
// at least 50 votes are included.
func (c *Client) Discover(ctx context.Context, p DiscoverParams) (*MoviePage, error) {
	params := pageParams(p.Page)
	sortBy := p.SortBy
	if sortBy == "" {
		sortBy = DefaultSort
	}
	params.Set("sort_by", sortBy)
	params.Set("include_adult", "false")
	params.Set("vote_count.gte", "50")
	if p.GenreID != 0 {
		params.Set("with_genres", strconv.Itoa(p.GenreID))
	}
	if p.Year != "" {
		params.Set("primary_release_year", p.Year)
	}
	return c.moviePage(ctx, "/discover/movie", params)
}

func (c *Client) MovieDetails(ctx context.Context, id int) (*Details, error) {
	var d Details
	if err := c.get(ctx, fmt.Sprintf("/movie/%d", id), nil, true, &d); err != nil {
		return nil, err
	}
	return &d, nil
}

func (c *Client) Credits(ctx context.Context, id int) (*Credits, error) {
	var cr Credits
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/credits", id), nil, true, &cr); err != nil {
		return nil, err
	}
	return &cr, nil
}

func (c *Client) Videos(ctx context.Context, id int) ([]Video, error) {
	var r resultList[Video]
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/videos", id), nil, true, &r); err != nil {
		return nil, err
	}
	return r.Results, nil
}

func (c *Client) Reviews(ctx context.Context, id, page int) (*movie.Page[Review], error) {
	var p movie.Page[Review]
	if err := c.get(ctx, fmt.Sprintf("/movie/%d/reviews", id), pageParams(page), true, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) Similar(ctx context.Context, id int) ([]movie.Movie, error) {
	p, err := c.moviePage(ctx, fmt.Sprintf("/movie/%d/similar", id), nil)
	if err != nil {
		return nil, err
	}
	return p.Results, nil
}

func (c *Client) Recommendations(ctx context.Context, id int) ([]movie.Movie, error) {
	p, err := c.moviePage(ctx, fmt.Sprintf("/movie/%d/recommendations", id), nil)
	if err != nil {
		return nil, err
	}
	return p.Results, nil
}

func (c *Client) Person(ctx context.Context, id int) (*Person, error) {
	var p Person
	if err := c.get(ctx, fmt.Sprintf("/person/%d", id), nil, true, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (c *Client) PersonCredits(ctx context.Context, id int) (*PersonCredits, error) {
	var pc PersonCredits
	if err := c.get(ctx, fmt.Sprintf("/person/%d/movie_credits", id), nil, true, &pc); err != nil {
		return nil, err
	}
	return &pc, nil
}
