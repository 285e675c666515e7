// Package details assembles everything shown on a movie or person page.
// Supporting sections each degrade to an empty default on their own.
package details

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"

	"github.com/sourcegraph/conc"

	"tableflip.dev/abcinema/pkg/movie"
	"tableflip.dev/abcinema/pkg/omdb"
	"tableflip.dev/abcinema/pkg/tmdb"
)

// Section names a part of the page that can degrade.
type Section string

const (
	SectionCredits         Section = "credits"
	SectionVideos          Section = "videos"
	SectionReviews         Section = "reviews"
	SectionSimilar         Section = "similar"
	SectionRecommendations Section = "recommendations"
	SectionRatings         Section = "ratings"
)

// Catalog is the primary movie source.
type Catalog interface {
	MovieDetails(ctx context.Context, id int) (*tmdb.Details, error)
	Credits(ctx context.Context, id int) (*tmdb.Credits, error)
	Videos(ctx context.Context, id int) ([]tmdb.Video, error)
	Reviews(ctx context.Context, id, page int) (*movie.Page[tmdb.Review], error)
	Similar(ctx context.Context, id int) ([]movie.Movie, error)
	Recommendations(ctx context.Context, id int) ([]movie.Movie, error)
}

// RatingSource supplies third-party scores.
type RatingSource interface {
	ByIMDbID(ctx context.Context, id string) (*omdb.Movie, error)
}

// Page is a fully loaded movie page.
type Page struct {
	Details         tmdb.Details
	Credits         tmdb.Credits
	Videos          []tmdb.Video
	Reviews         []tmdb.Review
	TotalReviews    int
	Similar         []movie.Movie
	Recommendations []movie.Movie
	OMDb            *omdb.Movie
	Ratings         omdb.Ratings
	// Degraded lists the sections that failed and were replaced by defaults.
	Degraded []Section
}

// Loader fetches pages.
type Loader struct {
	catalog Catalog
	ratings RatingSource
}

// NewLoader creates a Loader. ratings may be nil.
func NewLoader(catalog Catalog, ratings RatingSource) *Loader {
	return &Loader{catalog: catalog, ratings: ratings}
}

// Load fetches movie id. Only a failure to load the movie record itself is
// returned as an error.
func (l *Loader) Load(ctx context.Context, id int) (*Page, error) {
	d, err := l.catalog.MovieDetails(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("details: movie %d: %w", id, err)
	}
	p := &Page{Details: *d}

	var mu sync.Mutex
	pending := map[Section]bool{
		SectionCredits:         true,
		SectionVideos:          true,
		SectionReviews:         true,
		SectionSimilar:         true,
		SectionRecommendations: true,
	}
	done := func(s Section, err error) bool {
		if err != nil {
			slog.Warn("details.section_failed", "movie", id, "section", s, "err", err)
			return false
		}
		mu.Lock()
		delete(pending, s)
		mu.Unlock()
		return true
	}

	var wg conc.WaitGroup
	wg.Go(func() {
		cr, err := l.catalog.Credits(ctx, id)
		if done(SectionCredits, err) && cr != nil {
			p.Credits = *cr
		}
	})
	wg.Go(func() {
		v, err := l.catalog.Videos(ctx, id)
		if done(SectionVideos, err) {
			p.Videos = v
		}
	})
	wg.Go(func() {
		r, err := l.catalog.Reviews(ctx, id, 1)
		if done(SectionReviews, err) && r != nil {
			p.Reviews = r.Results
			p.TotalReviews = r.TotalResults
		}
	})
	wg.Go(func() {
		s, err := l.catalog.Similar(ctx, id)
		if done(SectionSimilar, err) {
			p.Similar = s
		}
	})
	wg.Go(func() {
		r, err := l.catalog.Recommendations(ctx, id)
		if done(SectionRecommendations, err) {
			p.Recommendations = r
		}
	})
	if l.ratings != nil && d.IMDbID != "" {
		mu.Lock()
		pending[SectionRatings] = true
		mu.Unlock()
		wg.Go(func() {
			m, err := l.ratings.ByIMDbID(ctx, d.IMDbID)
			if done(SectionRatings, err) && m != nil {
				p.OMDb = m
				p.Ratings = omdb.ParseRatings(m.Ratings)
			}
		})
	}
	if r := wg.WaitAndRecover(); r != nil {
		slog.Error("details.section_panic", "movie", id, "panic", r.Value)
	}

	if p.Credits.Cast == nil {
		p.Credits.Cast = []tmdb.CastMember{}
	}
	if p.Credits.Crew == nil {
		p.Credits.Crew = []tmdb.CrewMember{}
	}
	for s := range pending {
		p.Degraded = append(p.Degraded, s)
	}
	sort.Slice(p.Degraded, func(i, j int) bool { return p.Degraded[i] < p.Degraded[j] })
	return p, nil
}

// IsDegraded reports whether s fell back to its default.
func (p *Page) IsDegraded(s Section) bool {
	for _, d := range p.Degraded {
		if d == s {
			return true
		}
	}
	return false
}
