package searchbar

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/abcinema/pkg/movie"
	"tableflip.dev/abcinema/pkg/recent"
	"tableflip.dev/abcinema/pkg/store"
	"tableflip.dev/abcinema/pkg/suggest"
	"tableflip.dev/abcinema/pkg/tui/theme"
)

type manualTimer struct {
	fn      func()
	stopped bool
}

func (t *manualTimer) Stop() bool {
	was := !t.stopped
	t.stopped = true
	return was
}

type manualScheduler struct {
	mu     sync.Mutex
	timers []*manualTimer
}

func (s *manualScheduler) AfterFunc(_ time.Duration, f func()) suggest.Timer {
	s.mu.Lock()
	defer s.mu.Unlock()
	t := &manualTimer{fn: f}
	s.timers = append(s.timers, t)
	return t
}

func (s *manualScheduler) fire() {
	s.mu.Lock()
	timers := s.timers
	s.timers = nil
	s.mu.Unlock()
	for _, t := range timers {
		if !t.stopped {
			t.stopped = true
			t.fn()
		}
	}
}

type catalog []movie.Movie

func (c catalog) SearchMovies(_ context.Context, query string, _ int) (*movie.Page[movie.Movie], error) {
	var out []movie.Movie
	for _, m := range c {
		if strings.Contains(strings.ToLower(m.Title), strings.ToLower(query)) {
			out = append(out, m)
		}
	}
	return &movie.Page[movie.Movie]{Page: 1, Results: out, TotalResults: len(out), TotalPages: 1}, nil
}

func newModel(t *testing.T) (*Model, *manualScheduler, *recent.Log) {
	t.Helper()
	sched := &manualScheduler{}
	log := recent.New(store.NewMemory(), 0)
	engine := suggest.New(catalog{
		{ID: 603, Title: "The Matrix", ReleaseDate: "1999-03-30", VoteAverage: 8.2},
		{ID: 604, Title: "The Matrix Reloaded", ReleaseDate: "2003-05-15", VoteAverage: 7},
	}, log, suggest.Options{Scheduler: sched})
	t.Cleanup(engine.Shutdown)
	m := New(engine, theme.Default())
	m.SetWidth(60)
	return m, sched, log
}

func typeText(m *Model, text string) {
	for _, r := range text {
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func TestTypingShowsSuggestions(t *testing.T) {
	m, sched, _ := newModel(t)
	m.Focus()
	typeText(m, "matrix")

	if got := m.Dropdown(); !strings.Contains(got, "Searching...") {
		t.Fatalf("expected loading state, got:\n%s", got)
	}
	sched.fire()
	m.sync()

	got := m.Dropdown()
	if !strings.Contains(got, "The Matrix (1999)") || !strings.Contains(got, "The Matrix Reloaded (2003)") {
		t.Fatalf("suggestions missing:\n%s", got)
	}
}

func TestNoMatches(t *testing.T) {
	m, sched, _ := newModel(t)
	m.Focus()
	typeText(m, "zzz")
	sched.fire()
	m.sync()
	if got := m.Dropdown(); !strings.Contains(got, "No movies found") {
		t.Fatalf("expected empty state, got:\n%s", got)
	}
}

func TestHighlightAndSubmitOpensDetail(t *testing.T) {
	m, sched, log := newModel(t)
	m.Focus()
	typeText(m, "matrix")
	sched.fire()
	m.sync()

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	nav, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if nav.Kind != suggest.NavDetail || nav.MovieID != 604 {
		t.Fatalf("unexpected navigation %+v", nav)
	}
	if m.Focused() {
		t.Fatal("search bar kept focus after navigation")
	}
	if got := log.All(); len(got) != 0 {
		t.Fatalf("detail navigation recorded %v", got)
	}
}

func TestSubmitQueryOpensResults(t *testing.T) {
	m, _, log := newModel(t)
	m.Focus()
	typeText(m, "blade runner")
	nav, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})

	if nav.Kind != suggest.NavResults || nav.Query != "blade runner" {
		t.Fatalf("unexpected navigation %+v", nav)
	}
	if got := log.All(); len(got) != 1 || got[0] != "blade runner" {
		t.Fatalf("recent = %v", got)
	}
	if m.View() == "" || m.Dropdown() != "" {
		t.Fatalf("dropdown should close after submit:\n%s", m.Dropdown())
	}
}

func TestRecentSelection(t *testing.T) {
	m, _, log := newModel(t)
	log.Record("alien")
	log.Record("dune")
	m.Focus()

	got := m.Dropdown()
	if !strings.Contains(got, "Recent searches") || !strings.Contains(got, "dune") {
		t.Fatalf("recent dropdown missing:\n%s", got)
	}

	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	m.Update(tea.KeyMsg{Type: tea.KeyDown})
	nav, _ := m.Update(tea.KeyMsg{Type: tea.KeyEnter})
	if nav.Kind != suggest.NavResults || nav.Query != "alien" {
		t.Fatalf("unexpected navigation %+v", nav)
	}
	if got := log.All(); got[0] != "alien" {
		t.Fatalf("selected recent should move to front, got %v", got)
	}
}

func TestClearRecent(t *testing.T) {
	m, _, log := newModel(t)
	log.Record("alien")
	m.Focus()
	m.Update(tea.KeyMsg{Type: tea.KeyCtrlD})
	if got := log.All(); len(got) != 0 {
		t.Fatalf("recent not cleared: %v", got)
	}
	if got := m.Dropdown(); got != "" {
		t.Fatalf("expected closed dropdown, got:\n%s", got)
	}
}

func TestEscapeClears(t *testing.T) {
	m, _, _ := newModel(t)
	m.Focus()
	typeText(m, "matrix")
	m.Update(tea.KeyMsg{Type: tea.KeyEsc})
	if m.Focused() || m.State().Query != "" || m.State().Open {
		t.Fatalf("escape left state %+v", m.State())
	}
}
