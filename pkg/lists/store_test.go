package lists

import (
	"encoding/json"
	"math/rand"
	"testing"
	"time"

	"tableflip.dev/abcinema/pkg/movie"
	"tableflip.dev/abcinema/pkg/store"
)

type tick struct {
	now time.Time
}

func (c *tick) Now() time.Time {
	c.now = c.now.Add(time.Second)
	return c.now
}

func newTestStore(kv store.KV) *Store {
	c := &tick{now: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)}
	return New(kv, WithClock(c.Now))
}

func film(id int, title string) movie.Movie {
	return movie.Movie{ID: id, Title: title, ReleaseDate: "2001-01-01", VoteAverage: float64(id % 10)}
}

func ids(entries []movie.ListEntry) []int {
	out := make([]int, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.ID)
	}
	return out
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestAddThenToggleWatchlist(t *testing.T) {
	s := newTestStore(store.NewMemory())

	s.Add(movie.Watchlist, film(550, "Fight Club"))
	if !s.IsMember(movie.Watchlist, 550) {
		t.Fatalf("expected 550 in watchlist")
	}
	if got := s.Counts()[movie.Watchlist]; got != 1 {
		t.Fatalf("watchlist count = %d, want 1", got)
	}

	if s.Toggle(movie.Watchlist, film(550, "Fight Club")) {
		t.Fatalf("Toggle() = true, want false")
	}
	if s.IsMember(movie.Watchlist, 550) {
		t.Fatalf("expected 550 removed")
	}
	if got := s.Counts()[movie.Watchlist]; got != 0 {
		t.Fatalf("watchlist count = %d, want 0", got)
	}
}

func TestAddPrependsAndIgnoresDuplicates(t *testing.T) {
	kv := store.NewMemory()
	s := newTestStore(kv)

	s.Add(movie.Favorites, film(1, "One"))
	s.Add(movie.Favorites, film(2, "Two"))
	s.Add(movie.Favorites, film(3, "Three"))
	writes := kv.Writes()
	s.Add(movie.Favorites, film(1, "One again"))

	if got := ids(s.List(movie.Favorites)); !equalInts(got, []int{3, 2, 1}) {
		t.Fatalf("List() ids = %v, want [3 2 1]", got)
	}
	if s.List(movie.Favorites)[2].Title != "One" {
		t.Fatalf("re-add overwrote the snapshot")
	}
	if kv.Writes() != writes {
		t.Fatalf("duplicate add wrote to storage")
	}
}

func TestToggleTwiceRestores(t *testing.T) {
	s := newTestStore(store.NewMemory())
	s.Add(movie.Watched, film(9, "Nine"))

	for _, id := range []int{9, 10} {
		before := s.IsMember(movie.Watched, id)
		first := s.Toggle(movie.Watched, film(id, "x"))
		second := s.Toggle(movie.Watched, film(id, "x"))
		if first == second {
			t.Fatalf("id %d: toggles returned %v twice", id, first)
		}
		if first != !before {
			t.Fatalf("id %d: first toggle = %v with prior membership %v", id, first, before)
		}
		if s.IsMember(movie.Watched, id) != before {
			t.Fatalf("id %d: membership not restored", id)
		}
	}
}

// Mirrors the store against a reference model over random operation sequences.
func TestRandomSequencesMatchSetModel(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for round := 0; round < 50; round++ {
		s := newTestStore(store.NewMemory())
		var model []int

		for step := 0; step < 40; step++ {
			id := r.Intn(6)
			pos := -1
			for i, v := range model {
				if v == id {
					pos = i
				}
			}
			switch r.Intn(3) {
			case 0:
				s.Add(movie.Favorites, film(id, "m"))
				if pos < 0 {
					model = append([]int{id}, model...)
				}
			case 1:
				s.Remove(movie.Favorites, id)
				if pos >= 0 {
					model = append(model[:pos], model[pos+1:]...)
				}
			default:
				added := s.Toggle(movie.Favorites, film(id, "m"))
				if added != (pos < 0) {
					t.Fatalf("round %d step %d: Toggle(%d) = %v", round, step, id, added)
				}
				if pos < 0 {
					model = append([]int{id}, model...)
				} else {
					model = append(model[:pos], model[pos+1:]...)
				}
			}
			if got := ids(s.List(movie.Favorites)); !equalInts(got, model) {
				t.Fatalf("round %d step %d: got %v want %v", round, step, got, model)
			}
		}
	}
}

func TestListsAreIndependent(t *testing.T) {
	s := newTestStore(store.NewMemory())
	s.Add(movie.Favorites, film(1, "One"))
	if s.IsMember(movie.Watchlist, 1) || s.IsMember(movie.Watched, 1) {
		t.Fatalf("membership leaked across lists")
	}
	counts := s.Counts()
	if counts[movie.Favorites] != 1 || counts[movie.Watchlist] != 0 || counts[movie.Watched] != 0 {
		t.Fatalf("Counts() = %v", counts)
	}
}

func TestCorruptStorageReadsEmpty(t *testing.T) {
	kv := store.NewMemory()
	kv.Raw("ab_favorites", "{not json")
	s := newTestStore(kv)

	if got := s.List(movie.Favorites); len(got) != 0 {
		t.Fatalf("List() = %v, want empty", got)
	}
	s.Add(movie.Favorites, film(4, "Four"))
	if got := ids(s.List(movie.Favorites)); !equalInts(got, []int{4}) {
		t.Fatalf("after add over corrupt data ids = %v", got)
	}
}

func TestStorageFailuresAreSwallowed(t *testing.T) {
	kv := store.NewMemory()
	s := newTestStore(kv)
	s.Add(movie.Watchlist, film(1, "One"))

	kv.FailWrites = true
	s.Add(movie.Watchlist, film(2, "Two"))
	if s.IsMember(movie.Watchlist, 2) {
		t.Fatalf("failed write should not be visible")
	}

	kv.FailReads = true
	if s.IsMember(movie.Watchlist, 1) {
		t.Fatalf("unreadable storage should read as empty")
	}
	if got := s.Counts()[movie.Watchlist]; got != 0 {
		t.Fatalf("Counts() with failing reads = %d", got)
	}
}

func TestPersistedLayout(t *testing.T) {
	kv := store.NewMemory()
	s := newTestStore(kv)
	s.Add(movie.Watched, film(7, "Seven"))

	raw, err := kv.Get("ab_watched")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	var decoded []map[string]any
	if err := json.Unmarshal(raw, &decoded); err != nil {
		t.Fatalf("stored value is not a JSON array: %v", err)
	}
	if len(decoded) != 1 {
		t.Fatalf("decoded = %v", decoded)
	}
	for _, k := range []string{"id", "title", "poster_path", "vote_average", "release_date", "addedAt"} {
		if _, ok := decoded[0][k]; !ok {
			t.Fatalf("missing field %q in %s", k, raw)
		}
	}
	if decoded[0]["addedAt"] != "2024-01-01T00:00:01.000Z" {
		t.Fatalf("addedAt = %v", decoded[0]["addedAt"])
	}
}

func TestListReturnsCopy(t *testing.T) {
	s := newTestStore(store.NewMemory())
	s.Add(movie.Favorites, film(1, "One"))
	got := s.List(movie.Favorites)
	got[0].Title = "mutated"
	if s.List(movie.Favorites)[0].Title != "One" {
		t.Fatalf("List() exposed internal state")
	}
}

func TestClear(t *testing.T) {
	s := newTestStore(store.NewMemory())
	s.Add(movie.Favorites, film(1, "One"))
	s.Add(movie.Watched, film(1, "One"))
	s.Clear(movie.Favorites)
	if s.Counts()[movie.Favorites] != 0 || s.Counts()[movie.Watched] != 1 {
		t.Fatalf("Counts() after Clear = %v", s.Counts())
	}
}

func TestDiskBackedStoreSharesState(t *testing.T) {
	base := t.TempDir()
	d1, err := store.Load(store.Path(base))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	d2, err := store.Load(store.Path(base))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	a := newTestStore(d1)
	b := newTestStore(d2)

	a.Add(movie.Watchlist, film(550, "Fight Club"))
	if !b.IsMember(movie.Watchlist, 550) {
		t.Fatalf("second store did not observe write")
	}
}
