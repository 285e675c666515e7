package details

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"time"

	"tableflip.dev/abcinema/pkg/tmdb"
)

// SectionFilmography is the person page's credit list.
const SectionFilmography Section = "filmography"

// PersonCatalog is the source of cast and crew pages.
type PersonCatalog interface {
	Person(ctx context.Context, id int) (*tmdb.Person, error)
	PersonCredits(ctx context.Context, id int) (*tmdb.PersonCredits, error)
}

// PersonPage is a loaded person page.
type PersonPage struct {
	Person tmdb.Person
	// Acting holds cast credits with a poster, most voted first.
	Acting []tmdb.ActingCredit
	// Directing holds Director credits with a poster, most voted first.
	Directing []tmdb.CrewCredit
	Degraded  []Section
}

// PersonLoader fetches person pages.
type PersonLoader struct {
	catalog PersonCatalog
}

func NewPersonLoader(catalog PersonCatalog) *PersonLoader {
	return &PersonLoader{catalog: catalog}
}

// Load fetches person id. A failed filmography degrades to empty credits;
// only a failure to load the person is an error.
func (l *PersonLoader) Load(ctx context.Context, id int) (*PersonPage, error) {
	person, err := l.catalog.Person(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("details: person %d: %w", id, err)
	}
	p := &PersonPage{
		Person:    *person,
		Acting:    []tmdb.ActingCredit{},
		Directing: []tmdb.CrewCredit{},
	}

	credits, err := l.catalog.PersonCredits(ctx, id)
	if err != nil {
		slog.Warn("details.section_failed", "person", id, "section", SectionFilmography, "err", err)
		p.Degraded = []Section{SectionFilmography}
		return p, nil
	}
	for _, c := range credits.Cast {
		if c.PosterPath != nil {
			p.Acting = append(p.Acting, c)
		}
	}
	for _, c := range credits.Crew {
		if c.Job == "Director" && c.PosterPath != nil {
			p.Directing = append(p.Directing, c)
		}
	}
	sort.SliceStable(p.Acting, func(i, j int) bool { return p.Acting[i].VoteCount > p.Acting[j].VoteCount })
	sort.SliceStable(p.Directing, func(i, j int) bool { return p.Directing[i].VoteCount > p.Directing[j].VoteCount })
	return p, nil
}

// KnownFor returns up to n acting credits.
func (p *PersonPage) KnownFor(n int) []tmdb.ActingCredit {
	if n < 0 || n > len(p.Acting) {
		n = len(p.Acting)
	}
	return p.Acting[:n]
}

// Age is the person's age in whole years at now, or at death. ok is false
// when the birthday is unknown or malformed.
func (p *PersonPage) Age(now time.Time) (age int, ok bool) {
	birth, ok := parseDay(p.Person.Birthday)
	if !ok {
		return 0, false
	}
	end := now
	if death, dead := parseDay(p.Person.Deathday); dead {
		end = death
	}
	age = end.Year() - birth.Year()
	if end.Month() < birth.Month() || (end.Month() == birth.Month() && end.Day() < birth.Day()) {
		age--
	}
	return age, true
}

func parseDay(s *string) (time.Time, bool) {
	if s == nil || *s == "" {
		return time.Time{}, false
	}
	t, err := time.Parse(time.DateOnly, *s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}
