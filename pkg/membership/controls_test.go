package membership

import (
	"testing"
	"time"

	"tableflip.dev/abcinema/pkg/lists"
	"tableflip.dev/abcinema/pkg/movie"
	"tableflip.dev/abcinema/pkg/notify"
	"tableflip.dev/abcinema/pkg/store"
)

type recordingToaster struct {
	shown []string
}

func (r *recordingToaster) Show(text string) string {
	r.shown = append(r.shown, text)
	return text
}

func newStore() *lists.Store {
	return lists.New(store.NewMemory(), lists.WithClock(func() time.Time { return time.Unix(0, 0) }))
}

func TestActivateTogglesAndAnnounces(t *testing.T) {
	s := newStore()
	bus := notify.New()
	emits := 0
	bus.Subscribe(func() { emits++ })
	toasts := &recordingToaster{}

	c := New(movie.Movie{ID: 27205, Title: "Inception"}, s, bus, toasts)
	if c.Active(movie.Favorites) {
		t.Fatalf("fresh item should not be a favorite")
	}

	if !c.Activate(movie.Favorites) {
		t.Fatalf("Activate() = false, want true when adding")
	}
	if !c.Active(movie.Favorites) || !s.IsMember(movie.Favorites, 27205) {
		t.Fatalf("favorite not recorded")
	}
	if c.Activate(movie.Favorites) {
		t.Fatalf("Activate() = true, want false when removing")
	}
	if c.Active(movie.Favorites) {
		t.Fatalf("favorite still cached after removal")
	}
	c.Activate(movie.Watched)

	want := []string{"Added to Favorites", "Removed from Favorites", "Marked as Watched"}
	if len(toasts.shown) != len(want) {
		t.Fatalf("toasts = %v", toasts.shown)
	}
	for i := range want {
		if toasts.shown[i] != want[i] {
			t.Fatalf("toasts = %v, want %v", toasts.shown, want)
		}
	}
	if emits != 3 {
		t.Fatalf("emits = %d, want 3", emits)
	}
}

func TestRefreshPicksUpExternalChanges(t *testing.T) {
	s := newStore()
	item := movie.Movie{ID: 1, Title: "One"}
	c := New(item, s, nil, nil)

	s.Add(movie.Watchlist, item)
	if c.Active(movie.Watchlist) {
		t.Fatalf("cache should not change before Refresh")
	}
	c.Refresh()
	if !c.Active(movie.Watchlist) {
		t.Fatalf("Refresh() missed watchlist change")
	}
	if got := c.Compact(); got != "♡ ⚑ ○" {
		t.Fatalf("Compact() = %q", got)
	}
}

func TestWorksWithListEntries(t *testing.T) {
	s := newStore()
	entry := movie.ListEntry{ID: 5, Title: "Five"}
	c := New(entry, s, nil, nil)
	c.Activate(movie.Watchlist)
	got := s.List(movie.Watchlist)
	if len(got) != 1 || got[0].Title != "Five" {
		t.Fatalf("List() = %+v", got)
	}
}

func TestKeyList(t *testing.T) {
	for key, want := range map[string]movie.ListType{"f": movie.Favorites, "w": movie.Watchlist, "v": movie.Watched} {
		got, ok := KeyList(key)
		if !ok || got != want {
			t.Fatalf("KeyList(%q) = %q, %v", key, got, ok)
		}
	}
	if _, ok := KeyList("x"); ok {
		t.Fatalf("KeyList(x) should not match")
	}
}
