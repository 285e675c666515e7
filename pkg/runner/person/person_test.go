package person

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableflip.dev/abcinema/pkg/app"
	"tableflip.dev/abcinema/pkg/commands/options"
	"tableflip.dev/abcinema/pkg/config"
	"tableflip.dev/abcinema/pkg/details"
	"tableflip.dev/abcinema/pkg/movie"
	"tableflip.dev/abcinema/pkg/store"
)

const nolan = `{"id":525,"name":"Christopher Nolan","known_for_department":"Directing",
	"birthday":"1970-07-30","place_of_birth":"London, England, UK",
	"biography":"British-American filmmaker known for Memento and Inception."}`

const nolanCredits = `{
	"cast":[{"id":11660,"title":"Doodlebug","poster_path":"/d.jpg","vote_count":300,"release_date":"1997-01-01"}],
	"crew":[
		{"id":27205,"title":"Inception","poster_path":"/i.jpg","vote_count":36000,"release_date":"2010-07-15","job":"Director"},
		{"id":272,"title":"Batman Begins","poster_path":"/b.jpg","vote_count":20000,"job":"Screenplay"}
	]}`

func catalog(t *testing.T, creditsStatus int) *app.Service {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/person/525", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(nolan))
	})
	mux.HandleFunc("/person/525/movie_credits", func(w http.ResponseWriter, r *http.Request) {
		if creditsStatus != http.StatusOK {
			w.WriteHeader(creditsStatus)
			return
		}
		_, _ = w.Write([]byte(nolanCredits))
	})
	mux.HandleFunc("/", http.NotFound)
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	svc := app.NewWithKV(config.FromMap(map[string]any{"tmdb.key": "k", "tmdb.base": srv.URL}), store.NewMemory())
	t.Cleanup(svc.Close)
	return svc
}

func fixedNow() time.Time { return time.Date(2026, 10, 15, 0, 0, 0, 0, time.UTC) }

func TestPersonPrintsBiographyAndCredits(t *testing.T) {
	color.NoColor = true
	svc := catalog(t, http.StatusOK)
	svc.Add(movie.Watched, movie.Movie{ID: 27205, Title: "Inception"})

	buf := &bytes.Buffer{}
	p := Person{Service: svc, ID: 525, Now: fixedNow, Output: &options.OutputOptions{Out: buf}}
	require.NoError(t, p.Do(context.Background()))

	out := buf.String()
	for _, want := range []string{
		"Christopher Nolan",
		"1970-07-30 (56 years old)",
		"London, England, UK",
		"Memento and Inception",
		"Known For",
		"Doodlebug",
		"Directed",
		"Inception",
		"◉",
	} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Batman Begins")
	assert.NotContains(t, out, "unavailable")
}

func TestPersonDegradesWithoutCredits(t *testing.T) {
	color.NoColor = true
	svc := catalog(t, http.StatusNotFound)

	buf := &bytes.Buffer{}
	p := Person{Service: svc, ID: 525, Now: fixedNow, Output: &options.OutputOptions{Out: buf}}
	require.NoError(t, p.Do(context.Background()))

	out := buf.String()
	assert.Contains(t, out, "Christopher Nolan")
	assert.Contains(t, out, "(filmography unavailable)")
	assert.NotContains(t, out, "Known For")
}

func TestPersonJSON(t *testing.T) {
	svc := catalog(t, http.StatusOK)

	buf := &bytes.Buffer{}
	p := Person{Service: svc, ID: 525, Output: &options.OutputOptions{Out: buf, JSON: true}}
	require.NoError(t, p.Do(context.Background()))

	var page details.PersonPage
	require.NoError(t, json.Unmarshal(buf.Bytes(), &page))
	assert.Equal(t, "Christopher Nolan", page.Person.Name)
	require.Len(t, page.Directing, 1)
	assert.Equal(t, 27205, page.Directing[0].ID)
}

func TestPersonMissing(t *testing.T) {
	svc := catalog(t, http.StatusOK)
	p := Person{Service: svc, ID: 1, Output: &options.OutputOptions{}}
	assert.Error(t, p.Do(context.Background()))
}

func TestPersonWithoutKey(t *testing.T) {
	svc := app.NewWithKV(config.FromMap(nil), store.NewMemory())
	defer svc.Close()
	p := Person{Service: svc, ID: 525, Output: &options.OutputOptions{}}
	assert.ErrorIs(t, p.Do(context.Background()), app.ErrNoCatalog)
}
