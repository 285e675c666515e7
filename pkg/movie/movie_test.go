package movie

import (
	"encoding/json"
	"strings"
	"testing"
	"time"
)

func TestParseListType(t *testing.T) {
	cases := map[string]ListType{
		"favorites": Favorites,
		"Fav":       Favorites,
		" watch ":   Watchlist,
		"watchlist": Watchlist,
		"seen":      Watched,
		"WATCHED":   Watched,
	}
	for raw, want := range cases {
		got, err := ParseListType(raw)
		if err != nil {
			t.Fatalf("ParseListType(%q) error = %v", raw, err)
		}
		if got != want {
			t.Fatalf("ParseListType(%q) = %q, want %q", raw, got, want)
		}
	}
	if _, err := ParseListType("queue"); err == nil {
		t.Fatalf("expected error for unknown list")
	}
}

func TestStorageKeys(t *testing.T) {
	want := []string{"ab_favorites", "ab_watchlist", "ab_watched"}
	for i, lt := range AllListTypes() {
		if lt.StorageKey() != want[i] {
			t.Fatalf("StorageKey() = %q, want %q", lt.StorageKey(), want[i])
		}
	}
}

func TestEntryFromItemSnapshotsMovie(t *testing.T) {
	poster := "/p.jpg"
	m := Movie{ID: 550, Title: "Fight Club", PosterPath: &poster, VoteAverage: 8.4, ReleaseDate: "1999-10-15", Overview: "dropped"}
	now := time.Date(2024, 3, 1, 12, 30, 0, 123456789, time.FixedZone("X", 3600))

	e := EntryFromItem(m, now)
	if e.ID != 550 || e.Title != "Fight Club" || e.VoteAverage != 8.4 || e.ReleaseDate != "1999-10-15" {
		t.Fatalf("unexpected entry %+v", e)
	}
	if e.Poster() != "/p.jpg" {
		t.Fatalf("Poster() = %q", e.Poster())
	}
	poster = "/changed.jpg"
	if e.Poster() != "/p.jpg" {
		t.Fatalf("entry shares poster pointer with movie")
	}
	if got := e.AddedAt.String(); got != "2024-03-01T11:30:00.123Z" {
		t.Fatalf("AddedAt = %q", got)
	}
}

func TestEntryFromExistingEntryRestamps(t *testing.T) {
	old := ListEntry{ID: 1, Title: "A", AddedAt: NewTimestamp(time.Unix(0, 0))}
	now := time.Unix(100, 0)
	e := EntryFromItem(old, now)
	if !e.AddedAt.Equal(now) {
		t.Fatalf("AddedAt = %v, want %v", e.AddedAt, now)
	}
}

func TestListEntryJSONLayout(t *testing.T) {
	e := ListEntry{ID: 7, Title: "Heat", VoteAverage: 7.9, ReleaseDate: "1995-12-15", AddedAt: NewTimestamp(time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC))}
	b, err := json.Marshal(e)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}
	got := string(b)
	want := `{"id":7,"title":"Heat","poster_path":null,"vote_average":7.9,"release_date":"1995-12-15","addedAt":"2024-01-02T03:04:05.000Z"}`
	if got != want {
		t.Fatalf("json = %s\nwant  %s", got, want)
	}

	var back ListEntry
	if err := json.Unmarshal(b, &back); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}
	if !back.AddedAt.Equal(e.AddedAt.Time) || back.PosterPath != nil {
		t.Fatalf("round trip mismatch %+v", back)
	}
}

func TestTimestampTolerance(t *testing.T) {
	var ts Timestamp
	if err := json.Unmarshal([]byte(`""`), &ts); err != nil || !ts.IsZero() {
		t.Fatalf("empty timestamp: %v %v", ts, err)
	}
	if err := json.Unmarshal([]byte(`"2023-05-06T07:08:09Z"`), &ts); err != nil {
		t.Fatalf("second precision: %v", err)
	}
	if err := json.Unmarshal([]byte(`"yesterday"`), &ts); err == nil {
		t.Fatalf("expected error for garbage timestamp")
	}
}

func TestYear(t *testing.T) {
	if got := (Movie{ReleaseDate: "2010-07-16"}).Year(); got != "2010" {
		t.Fatalf("Year() = %q", got)
	}
	if got := (ListEntry{}).Year(); got != "N/A" {
		t.Fatalf("Year() = %q", got)
	}
}

func TestGenresAndImages(t *testing.T) {
	if GenreName(878) != "Science Fiction" {
		t.Fatalf("GenreName(878) = %q", GenreName(878))
	}
	if GenreName(-1) != "Unknown" {
		t.Fatalf("GenreName(-1) = %q", GenreName(-1))
	}
	if got := ImageURL("https://image.tmdb.org/t/p", "", ""); got != NoPoster {
		t.Fatalf("ImageURL(empty) = %q", got)
	}
	if got := ImageURL("https://image.tmdb.org/t/p", "/x.jpg", ""); !strings.HasSuffix(got, "/w500/x.jpg") {
		t.Fatalf("ImageURL() = %q", got)
	}
}
