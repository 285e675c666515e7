package details

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/abcinema/pkg/movie"
	"tableflip.dev/abcinema/pkg/omdb"
	"tableflip.dev/abcinema/pkg/tmdb"
)

var errBoom = errors.New("boom")

type fakeCatalog struct {
	details    *tmdb.Details
	detailsErr error
	creditsErr error
	videosErr  error
	reviewsErr error
	similarErr error
	recsErr    error
	panicOn    string
	// slow delays similar until released.
	slow chan struct{}
}

func (f *fakeCatalog) MovieDetails(context.Context, int) (*tmdb.Details, error) {
	if f.detailsErr != nil {
		return nil, f.detailsErr
	}
	return f.details, nil
}

func (f *fakeCatalog) Credits(context.Context, int) (*tmdb.Credits, error) {
	if f.creditsErr != nil {
		return nil, f.creditsErr
	}
	return &tmdb.Credits{
		Cast: []tmdb.CastMember{{Name: "A"}, {Name: "B"}, {Name: "C"}},
		Crew: []tmdb.CrewMember{
			{Name: "Nolan", Job: "Director", Department: "Directing"},
			{Name: "W1", Job: "Screenplay", Department: "Writing"},
		},
	}, nil
}

func (f *fakeCatalog) Videos(context.Context, int) ([]tmdb.Video, error) {
	if f.panicOn == "videos" {
		panic("videos exploded")
	}
	if f.videosErr != nil {
		return nil, f.videosErr
	}
	return []tmdb.Video{
		{Key: "clip", Site: "YouTube", Type: "Clip"},
		{Key: "teaser", Site: "Vimeo", Type: "Trailer", Official: true},
		{Key: "fan", Site: "YouTube", Type: "Trailer"},
		{Key: "official", Site: "YouTube", Type: "Trailer", Official: true},
	}, nil
}

func (f *fakeCatalog) Reviews(context.Context, int, int) (*movie.Page[tmdb.Review], error) {
	if f.reviewsErr != nil {
		return nil, f.reviewsErr
	}
	return &movie.Page[tmdb.Review]{Results: []tmdb.Review{{Author: "r"}}, TotalResults: 12}, nil
}

func (f *fakeCatalog) Similar(ctx context.Context, _ int) ([]movie.Movie, error) {
	if f.slow != nil {
		select {
		case <-f.slow:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if f.similarErr != nil {
		return nil, f.similarErr
	}
	return []movie.Movie{{ID: 2}}, nil
}

func (f *fakeCatalog) Recommendations(context.Context, int) ([]movie.Movie, error) {
	if f.recsErr != nil {
		return nil, f.recsErr
	}
	return []movie.Movie{{ID: 3}, {ID: 4}}, nil
}

type fakeRatings struct {
	err   error
	calls int
}

func (f *fakeRatings) ByIMDbID(_ context.Context, id string) (*omdb.Movie, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &omdb.Movie{IMDbID: id, Ratings: []omdb.Rating{{Source: "Rotten Tomatoes", Value: "87%"}}}, nil
}

func inception() *tmdb.Details {
	return &tmdb.Details{ID: 27205, Title: "Inception", IMDbID: "tt1375666", Runtime: 148}
}

func TestLoadFullPage(t *testing.T) {
	ratings := &fakeRatings{}
	l := NewLoader(&fakeCatalog{details: inception()}, ratings)

	p, err := l.Load(context.Background(), 27205)
	require.NoError(t, err)
	assert.Empty(t, p.Degraded)
	assert.Len(t, p.Credits.Cast, 3)
	assert.Equal(t, 12, p.TotalReviews)
	assert.Equal(t, "87%", p.Ratings.RottenTomatoes)
	assert.Len(t, p.Similar, 1)
	assert.Len(t, p.Recommendations, 2)

	v, ok := p.Trailer()
	require.True(t, ok)
	assert.Equal(t, "official", v.Key)
	assert.Equal(t, "https://www.youtube.com/watch?v=official", p.TrailerURL())
	require.Len(t, p.Directors(), 1)
	assert.Equal(t, "Nolan", p.Directors()[0].Name)
	assert.Len(t, p.Writers(), 1)
	assert.Len(t, p.TopCast(2), 2)
	assert.Len(t, p.TopCast(10), 3)
}

func TestMissingMovieIsAnError(t *testing.T) {
	l := NewLoader(&fakeCatalog{detailsErr: &tmdb.APIError{Status: 404}}, nil)
	_, err := l.Load(context.Background(), 1)
	var apiErr *tmdb.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.True(t, apiErr.NotFound())
}

func TestSectionsDegradeIndependently(t *testing.T) {
	cases := []struct {
		name    string
		catalog *fakeCatalog
		ratings *fakeRatings
		want    []Section
	}{
		{"credits", &fakeCatalog{details: inception(), creditsErr: errBoom}, &fakeRatings{}, []Section{SectionCredits}},
		{"videos and reviews", &fakeCatalog{details: inception(), videosErr: errBoom, reviewsErr: errBoom}, &fakeRatings{}, []Section{SectionReviews, SectionVideos}},
		{"ratings", &fakeCatalog{details: inception()}, &fakeRatings{err: errBoom}, []Section{SectionRatings}},
		{"recommendations", &fakeCatalog{details: inception(), recsErr: errBoom}, &fakeRatings{}, []Section{SectionRecommendations}},
		{"panic", &fakeCatalog{details: inception(), panicOn: "videos"}, &fakeRatings{}, []Section{SectionVideos}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			p, err := NewLoader(tc.catalog, tc.ratings).Load(context.Background(), 27205)
			require.NoError(t, err)
			assert.Equal(t, tc.want, p.Degraded)
			for _, s := range tc.want {
				assert.True(t, p.IsDegraded(s))
			}
			assert.NotNil(t, p.Credits.Cast)
			if !p.IsDegraded(SectionSimilar) {
				assert.Len(t, p.Similar, 1)
			}
		})
	}
}

func TestSlowSectionDoesNotBlockOthersBeyondContext(t *testing.T) {
	c := &fakeCatalog{details: inception(), slow: make(chan struct{})}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	p, err := NewLoader(c, &fakeRatings{}).Load(ctx, 27205)
	require.NoError(t, err)
	assert.Equal(t, []Section{SectionSimilar}, p.Degraded)
	assert.Len(t, p.Credits.Cast, 3)
	assert.Equal(t, "87%", p.Ratings.RottenTomatoes)
}

func TestRatingsSkippedWithoutIMDbID(t *testing.T) {
	d := inception()
	d.IMDbID = ""
	ratings := &fakeRatings{}
	p, err := NewLoader(&fakeCatalog{details: d}, ratings).Load(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, 0, ratings.calls)
	assert.True(t, p.Ratings.Empty())
	assert.Empty(t, p.Degraded)
}

func TestFormatting(t *testing.T) {
	assert.Equal(t, "2h 28m", FormatRuntime(148))
	assert.Equal(t, "45m", FormatRuntime(45))
	assert.Equal(t, "N/A", FormatRuntime(0))
	assert.Equal(t, "$160.0M", FormatMoney(160_000_000))
	assert.Equal(t, "N/A", FormatMoney(0))
}

func TestTrailerFallbacks(t *testing.T) {
	p := &Page{Videos: []tmdb.Video{{Key: "v", Site: "Vimeo"}, {Key: "y", Site: "YouTube", Type: "Featurette"}}}
	v, ok := p.Trailer()
	require.True(t, ok)
	assert.Equal(t, "y", v.Key)

	p = &Page{}
	_, ok = p.Trailer()
	assert.False(t, ok)
	assert.Empty(t, p.TrailerURL())
}
