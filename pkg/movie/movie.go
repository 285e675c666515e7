package movie

import (
	"strings"
	"time"
)

// Movie is a catalog summary as returned by list and search endpoints.
type Movie struct {
	ID               int     `json:"id"`
	Title            string  `json:"title"`
	Overview         string  `json:"overview,omitempty"`
	PosterPath       *string `json:"poster_path"`
	BackdropPath     *string `json:"backdrop_path,omitempty"`
	ReleaseDate      string  `json:"release_date"`
	VoteAverage      float64 `json:"vote_average"`
	VoteCount        int     `json:"vote_count,omitempty"`
	GenreIDs         []int   `json:"genre_ids,omitempty"`
	Popularity       float64 `json:"popularity,omitempty"`
	Adult            bool    `json:"adult,omitempty"`
	OriginalLanguage string  `json:"original_language,omitempty"`
	OriginalTitle    string  `json:"original_title,omitempty"`
	MediaType        string  `json:"media_type,omitempty"`
}

// Page is one page of a paginated catalog result set.
type Page[T any] struct {
	Page         int `json:"page"`
	Results      []T `json:"results"`
	TotalPages   int `json:"total_pages"`
	TotalResults int `json:"total_results"`
}

// Item is anything that can be snapshotted into a personal list: a live
// catalog Movie or an existing ListEntry.
type Item interface {
	MovieID() int
	ListFields() ListEntry
}

// MovieID implements Item.
func (m Movie) MovieID() int { return m.ID }

// ListFields implements Item.
func (m Movie) ListFields() ListEntry {
	return ListEntry{
		ID:          m.ID,
		Title:       m.Title,
		PosterPath:  clonePath(m.PosterPath),
		VoteAverage: m.VoteAverage,
		ReleaseDate: m.ReleaseDate,
	}
}

// Year returns the release year or "N/A".
func (m Movie) Year() string {
	return yearOf(m.ReleaseDate)
}

// ListEntry is the lightweight snapshot persisted in a personal collection.
// It is independent of the live catalog so membership renders even if the
// remote record later changes.
type ListEntry struct {
	ID          int       `json:"id" toml:"id"`
	Title       string    `json:"title" toml:"title"`
	PosterPath  *string   `json:"poster_path" toml:"poster_path,omitempty"`
	VoteAverage float64   `json:"vote_average" toml:"vote_average"`
	ReleaseDate string    `json:"release_date" toml:"release_date"`
	AddedAt     Timestamp `json:"addedAt" toml:"addedAt"`
}

// MovieID implements Item.
func (e ListEntry) MovieID() int { return e.ID }

// ListFields implements Item. The insertion time is not carried over.
func (e ListEntry) ListFields() ListEntry {
	cp := e.Clone()
	cp.AddedAt = Timestamp{}
	return cp
}

// Clone returns a deep copy.
func (e ListEntry) Clone() ListEntry {
	e.PosterPath = clonePath(e.PosterPath)
	return e
}

// Year returns the release year or "N/A".
func (e ListEntry) Year() string {
	return yearOf(e.ReleaseDate)
}

// Poster returns the poster path or "".
func (e ListEntry) Poster() string {
	if e.PosterPath == nil {
		return ""
	}
	return *e.PosterPath
}

// EntryFromItem snapshots item and stamps the insertion time.
func EntryFromItem(item Item, now time.Time) ListEntry {
	e := item.ListFields()
	e.ID = item.MovieID()
	e.AddedAt = NewTimestamp(now)
	return e
}

func yearOf(date string) string {
	if y, _, ok := strings.Cut(strings.TrimSpace(date), "-"); ok && y != "" {
		return y
	}
	if len(date) == 4 {
		return date
	}
	return "N/A"
}

func clonePath(p *string) *string {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
