package movie

import (
	"fmt"
	"strings"
)

// Genre is a catalog genre.
type Genre struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// Genres is the catalog's movie genre table.
var Genres = []Genre{
	{ID: 28, Name: "Action"},
	{ID: 12, Name: "Adventure"},
	{ID: 16, Name: "Animation"},
	{ID: 35, Name: "Comedy"},
	{ID: 80, Name: "Crime"},
	{ID: 99, Name: "Documentary"},
	{ID: 18, Name: "Drama"},
	{ID: 10751, Name: "Family"},
	{ID: 14, Name: "Fantasy"},
	{ID: 36, Name: "History"},
	{ID: 27, Name: "Horror"},
	{ID: 10402, Name: "Music"},
	{ID: 9648, Name: "Mystery"},
	{ID: 10749, Name: "Romance"},
	{ID: 878, Name: "Science Fiction"},
	{ID: 10770, Name: "TV Movie"},
	{ID: 53, Name: "Thriller"},
	{ID: 10752, Name: "War"},
	{ID: 37, Name: "Western"},
}

// GenreName returns the genre name for id, or "Unknown".
func GenreName(id int) string {
	for _, g := range Genres {
		if g.ID == id {
			return g.Name
		}
	}
	return "Unknown"
}

// GenreByName does a case-insensitive lookup by name.
func GenreByName(name string) (Genre, error) {
	for _, g := range Genres {
		if strings.EqualFold(g.Name, strings.TrimSpace(name)) {
			return g, nil
		}
	}
	return Genre{}, fmt.Errorf("movie: unknown genre %q", name)
}

// NoPoster is the placeholder used when an item has no poster.
const NoPoster = "/no-poster.svg"

// ImageURL builds an image URL for path at the requested size (w92, w185,
// w342, w500, w780, original).
func ImageURL(base, path, size string) string {
	if path == "" {
		return NoPoster
	}
	if size == "" {
		size = "w500"
	}
	return base + "/" + size + path
}
