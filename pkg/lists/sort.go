package lists

import (
	"fmt"
	"sort"
	"strings"

	"github.com/mozillazg/go-unidecode"
	"github.com/sahilm/fuzzy"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"tableflip.dev/abcinema/pkg/movie"
)

// SortField selects the ordering used by Sorted.
type SortField string

const (
	SortAddedAt     SortField = "addedAt"
	SortTitle       SortField = "title"
	SortVoteAverage SortField = "vote_average"
	SortReleaseDate SortField = "release_date"
)

// SortDir is the ordering direction.
type SortDir string

const (
	Asc  SortDir = "asc"
	Desc SortDir = "desc"
)

// SortFields returns the supported fields with their labels, in display order.
func SortFields() []SortField {
	return []SortField{SortAddedAt, SortTitle, SortVoteAverage, SortReleaseDate}
}

// Label is the human-friendly field name.
func (f SortField) Label() string {
	switch f {
	case SortAddedAt:
		return "Date Added"
	case SortTitle:
		return "Title"
	case SortVoteAverage:
		return "Rating"
	case SortReleaseDate:
		return "Year"
	default:
		return string(f)
	}
}

// ParseSortField accepts a field name or a few friendly aliases.
func ParseSortField(raw string) (SortField, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "", "added", "addedat", "date":
		return SortAddedAt, nil
	case "title", "name":
		return SortTitle, nil
	case "vote_average", "rating", "vote":
		return SortVoteAverage, nil
	case "release_date", "release", "year":
		return SortReleaseDate, nil
	}
	return "", fmt.Errorf("lists: unknown sort field %q", raw)
}

// DefaultDir is the direction a field sorts in when first selected.
func DefaultDir(f SortField) SortDir {
	if f == SortTitle {
		return Asc
	}
	return Desc
}

// Toggle flips the direction.
func (d SortDir) Toggle() SortDir {
	if d == Asc {
		return Desc
	}
	return Asc
}

// Sorted returns t ordered by field and dir. Ties keep insertion order.
func (s *Store) Sorted(t movie.ListType, field SortField, dir SortDir) []movie.ListEntry {
	return SortEntries(s.List(t), field, dir)
}

// SortEntries orders entries in place and returns them.
func SortEntries(entries []movie.ListEntry, field SortField, dir SortDir) []movie.ListEntry {
	col := collate.New(language.English, collate.IgnoreCase)
	cmp := func(a, b movie.ListEntry) int {
		switch field {
		case SortTitle:
			return col.CompareString(a.Title, b.Title)
		case SortVoteAverage:
			switch {
			case a.VoteAverage < b.VoteAverage:
				return -1
			case a.VoteAverage > b.VoteAverage:
				return 1
			}
			return 0
		case SortReleaseDate:
			return strings.Compare(a.ReleaseDate, b.ReleaseDate)
		default:
			return a.AddedAt.Compare(b.AddedAt.Time)
		}
	}
	sort.SliceStable(entries, func(i, j int) bool {
		c := cmp(entries[i], entries[j])
		if dir == Desc {
			return c > 0
		}
		return c < 0
	})
	return entries
}

type titleSource []string

func (t titleSource) String(i int) string { return t[i] }
func (t titleSource) Len() int            { return len(t) }

// Filter keeps entries whose title fuzzily matches query, best match first.
// Accents are folded so "amelie" finds "Amélie". An empty query returns
// entries unchanged.
func Filter(entries []movie.ListEntry, query string) []movie.ListEntry {
	query = strings.TrimSpace(query)
	if query == "" {
		return entries
	}
	titles := make(titleSource, len(entries))
	for i, e := range entries {
		titles[i] = fold(e.Title)
	}
	matches := fuzzy.FindFrom(fold(query), titles)
	out := make([]movie.ListEntry, 0, len(matches))
	for _, m := range matches {
		out = append(out, entries[m.Index])
	}
	return out
}

func fold(s string) string {
	return strings.ToLower(unidecode.Unidecode(s))
}
