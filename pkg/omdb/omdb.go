// Package omdb fetches supplementary ratings from the Open Movie Database.
package omdb

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

const (
	DefaultBaseURL    = "https://www.omdbapi.com"
	DefaultAPIKey     = "42b62f24"
	DefaultRevalidate = 24 * time.Hour
	DefaultTimeout    = 10 * time.Second
)

// Rating is one third-party score.
type Rating struct {
	Source string `json:"Source"`
	Value  string `json:"Value"`
}

// Movie is an OMDb record.
type Movie struct {
	Title      string   `json:"Title"`
	Year       string   `json:"Year"`
	Rated      string   `json:"Rated"`
	Released   string   `json:"Released"`
	Runtime    string   `json:"Runtime"`
	Genre      string   `json:"Genre"`
	Director   string   `json:"Director"`
	Writer     string   `json:"Writer"`
	Actors     string   `json:"Actors"`
	Plot       string   `json:"Plot"`
	Language   string   `json:"Language"`
	Country    string   `json:"Country"`
	Awards     string   `json:"Awards"`
	Poster     string   `json:"Poster"`
	Ratings    []Rating `json:"Ratings"`
	Metascore  string   `json:"Metascore"`
	IMDbRating string   `json:"imdbRating"`
	IMDbVotes  string   `json:"imdbVotes"`
	IMDbID     string   `json:"imdbID"`
	Type       string   `json:"Type"`
	BoxOffice  string   `json:"BoxOffice"`
	Response   string   `json:"Response"`
}

// Ratings holds the scores shown on a detail page. Empty means unknown.
type Ratings struct {
	IMDb           string
	RottenTomatoes string
	Metacritic     string
}

// Empty reports whether no score is known.
func (r Ratings) Empty() bool {
	return r.IMDb == "" && r.RottenTomatoes == "" && r.Metacritic == ""
}

// ParseRatings picks the IMDb, Rotten Tomatoes and Metacritic scores.
func ParseRatings(ratings []Rating) Ratings {
	var out Ratings
	for _, r := range ratings {
		switch r.Source {
		case "Internet Movie Database":
			if out.IMDb == "" {
				out.IMDb = r.Value
			}
		case "Rotten Tomatoes":
			if out.RottenTomatoes == "" {
				out.RottenTomatoes = r.Value
			}
		case "Metacritic":
			if out.Metacritic == "" {
				out.Metacritic = r.Value
			}
		}
	}
	return out
}

// Options configures a Client.
type Options struct {
	APIKey     string
	BaseURL    string
	Revalidate time.Duration
	Timeout    time.Duration
	HTTPClient *http.Client
}

// Client looks up OMDb records by IMDb id.
type Client struct {
	http  *http.Client
	key   string
	base  string
	cache *expirable.LRU[string, *Movie]
}

func New(opts Options) *Client {
	if opts.APIKey == "" {
		opts.APIKey = DefaultAPIKey
	}
	if opts.BaseURL == "" {
		opts.BaseURL = DefaultBaseURL
	}
	if opts.Revalidate <= 0 {
		opts.Revalidate = DefaultRevalidate
	}
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	hc := opts.HTTPClient
	if hc == nil {
		hc = &http.Client{Timeout: opts.Timeout}
	}
	return &Client{
		http:  hc,
		key:   opts.APIKey,
		base:  strings.TrimRight(opts.BaseURL, "/"),
		cache: expirable.NewLRU[string, *Movie](128, nil, opts.Revalidate),
	}
}

// ByIMDbID returns the record for id, or nil when OMDb has no record or
// answers with a non-2xx status. Only transport and decode problems are
// errors.
func (c *Client) ByIMDbID(ctx context.Context, id string) (*Movie, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return nil, nil
	}
	if m, ok := c.cache.Get(id); ok {
		return m, nil
	}

	params := url.Values{"i": {id}, "apikey": {c.key}, "plot": {"full"}}
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.base+"/?"+params.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("omdb: %w", err)
	}
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("omdb: %s: %w", id, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		_, _ = io.Copy(io.Discard, resp.Body)
		slog.Debug("omdb.status", "id", id, "status", resp.StatusCode)
		return nil, nil
	}
	var m Movie
	if err := json.NewDecoder(resp.Body).Decode(&m); err != nil {
		return nil, fmt.Errorf("omdb: %s: decode: %w", id, err)
	}
	if m.Response == "False" {
		c.cache.Add(id, nil)
		return nil, nil
	}
	c.cache.Add(id, &m)
	return &m, nil
}
