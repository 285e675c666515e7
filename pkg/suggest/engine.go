// Package suggest implements the debounced search-as-you-type dropdown: query
// echo, remote suggestion lookup, recent searches and keyboard selection.
package suggest

import (
	"context"
	"log/slog"
	"strings"
	"sync"
	"time"
	"unicode/utf8"

	"tableflip.dev/abcinema/pkg/movie"
	"tableflip.dev/abcinema/pkg/recent"
)

const (
	DefaultDebounce = 300 * time.Millisecond
	DefaultMinChars = 2
	DefaultLimit    = 6
)

// Searcher is the remote catalog search endpoint.
type Searcher interface {
	SearchMovies(ctx context.Context, query string, page int) (*movie.Page[movie.Movie], error)
}

// Mode is what the dropdown is showing.
type Mode int

const (
	ModeNone Mode = iota
	ModeRecent
	ModeSuggestions
)

func (m Mode) String() string {
	switch m {
	case ModeRecent:
		return "recent"
	case ModeSuggestions:
		return "suggestions"
	default:
		return "none"
	}
}

// State is a snapshot of the engine.
type State struct {
	Query       string
	Suggestions []movie.Movie
	// Selected is the highlighted suggestion, or -1.
	Selected int
	Loading  bool
	Open     bool
	Recent   []string
	Mode     Mode
}

// Highlighted returns the selected suggestion, if any.
func (s State) Highlighted() (movie.Movie, bool) {
	if s.Selected < 0 || s.Selected >= len(s.Suggestions) {
		return movie.Movie{}, false
	}
	return s.Suggestions[s.Selected], true
}

// NavKind is where a submission leads.
type NavKind int

const (
	NavNone NavKind = iota
	NavDetail
	NavResults
)

// Navigation is the outcome of a submission.
type Navigation struct {
	Kind    NavKind
	MovieID int
	Query   string
}

// Options tunes an Engine. Zero values use the defaults.
type Options struct {
	Debounce  time.Duration
	MinChars  int
	Limit     int
	Scheduler Scheduler
}

// Engine owns the suggestion dropdown state. All methods are safe to call
// from any goroutine; timer callbacks and lookups share the same lock.
type Engine struct {
	searcher Searcher
	recent   *recent.Log
	sched    Scheduler
	debounce time.Duration
	minChars int
	limit    int

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	state    State
	pending  Timer
	gen      uint64
	onChange func(State)
}

// New creates an engine. recent may be nil, in which case nothing is recorded.
func New(searcher Searcher, log *recent.Log, opts Options) *Engine {
	if opts.Debounce <= 0 {
		opts.Debounce = DefaultDebounce
	}
	if opts.MinChars <= 0 {
		opts.MinChars = DefaultMinChars
	}
	if opts.Limit <= 0 {
		opts.Limit = DefaultLimit
	}
	if opts.Scheduler == nil {
		opts.Scheduler = RealScheduler{}
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &Engine{
		searcher: searcher,
		recent:   log,
		sched:    opts.Scheduler,
		debounce: opts.Debounce,
		minChars: opts.MinChars,
		limit:    opts.Limit,
		ctx:      ctx,
		cancel:   cancel,
		state:    State{Selected: -1},
	}
}

// OnChange registers fn to receive a snapshot after every state change,
// including ones made by background lookups. fn runs without the engine lock
// held, so it may call back into the engine.
func (e *Engine) OnChange(fn func(State)) {
	e.mu.Lock()
	e.onChange = fn
	e.mu.Unlock()
}

// State returns a snapshot.
func (e *Engine) State() State {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.snapshot()
}

// SetQuery handles a text change.
func (e *Engine) SetQuery(text string) {
	e.mu.Lock()
	e.state.Query = text
	e.state.Selected = -1
	e.state.Open = true
	e.stopPending()
	e.gen++

	if utf8.RuneCountInString(text) < e.minChars {
		e.state.Suggestions = nil
		e.state.Loading = false
		e.refreshRecent()
	} else {
		e.state.Loading = true
		gen := e.gen
		e.pending = e.sched.AfterFunc(e.debounce, func() {
			e.lookup(gen, text)
		})
	}
	e.commit()
}

// Focus opens the dropdown and reloads the recent-search log.
func (e *Engine) Focus() {
	e.mu.Lock()
	e.state.Open = true
	e.refreshRecent()
	e.commit()
}

// Close hides the dropdown and keeps the query.
func (e *Engine) Close() {
	e.mu.Lock()
	e.state.Open = false
	e.state.Selected = -1
	e.commit()
}

// Next highlights the following suggestion, wrapping to the first.
func (e *Engine) Next() {
	e.mu.Lock()
	n := len(e.state.Suggestions)
	if n == 0 {
		e.mu.Unlock()
		return
	}
	if e.state.Selected < n-1 {
		e.state.Selected++
	} else {
		e.state.Selected = 0
	}
	e.commit()
}

// Previous highlights the preceding suggestion, wrapping to the last.
func (e *Engine) Previous() {
	e.mu.Lock()
	n := len(e.state.Suggestions)
	if n == 0 {
		e.mu.Unlock()
		return
	}
	if e.state.Selected > 0 {
		e.state.Selected--
	} else {
		e.state.Selected = n - 1
	}
	e.commit()
}

// Escape closes the dropdown, clears the query and drops any pending or
// in-flight lookup.
func (e *Engine) Escape() {
	e.mu.Lock()
	e.reset()
	e.commit()
}

// Submit resolves the current input to a navigation. A highlighted
// suggestion opens its detail page; otherwise a non-blank query is recorded
// and opens the results list.
func (e *Engine) Submit() Navigation {
	e.mu.Lock()
	if m, ok := e.state.Highlighted(); ok {
		e.reset()
		e.commit()
		return Navigation{Kind: NavDetail, MovieID: m.ID}
	}
	q := strings.TrimSpace(e.state.Query)
	if q == "" {
		e.mu.Unlock()
		return Navigation{Kind: NavNone}
	}
	return e.submitQuery(q)
}

// SelectRecent re-submits a recent search as if it had just been typed.
func (e *Engine) SelectRecent(q string) Navigation {
	e.mu.Lock()
	q = strings.TrimSpace(q)
	if q == "" {
		e.mu.Unlock()
		return Navigation{Kind: NavNone}
	}
	return e.submitQuery(q)
}

// ClearRecent empties the recent-search log.
func (e *Engine) ClearRecent() {
	e.mu.Lock()
	if e.recent != nil {
		e.recent.Clear()
	}
	e.refreshRecent()
	e.commit()
}

// Shutdown cancels pending work. The engine must not be used afterwards.
func (e *Engine) Shutdown() {
	e.mu.Lock()
	e.stopPending()
	e.gen++
	e.onChange = nil
	e.mu.Unlock()
	e.cancel()
}

// submitQuery must be called with e.mu held; it releases it.
func (e *Engine) submitQuery(q string) Navigation {
	if e.recent != nil {
		e.recent.Record(q)
	}
	e.reset()
	e.commit()
	return Navigation{Kind: NavResults, Query: q}
}

func (e *Engine) lookup(gen uint64, query string) {
	e.mu.Lock()
	if gen != e.gen {
		e.mu.Unlock()
		return
	}
	e.pending = nil
	e.mu.Unlock()

	var results []movie.Movie
	page, err := e.searcher.SearchMovies(e.ctx, query, 1)
	if err != nil {
		slog.Warn("suggest.lookup_failed", "query", query, "err", err)
	} else if page != nil {
		results = page.Results
	}
	if len(results) > e.limit {
		results = results[:e.limit]
	}

	e.mu.Lock()
	if gen != e.gen {
		e.mu.Unlock()
		return
	}
	e.state.Suggestions = append([]movie.Movie(nil), results...)
	e.state.Loading = false
	e.commit()
}

func (e *Engine) reset() {
	e.stopPending()
	e.gen++
	e.state.Query = ""
	e.state.Suggestions = nil
	e.state.Selected = -1
	e.state.Loading = false
	e.state.Open = false
}

func (e *Engine) stopPending() {
	if e.pending != nil {
		e.pending.Stop()
		e.pending = nil
	}
}

func (e *Engine) refreshRecent() {
	if e.recent == nil {
		e.state.Recent = nil
		return
	}
	e.state.Recent = e.recent.All()
}

func (e *Engine) snapshot() State {
	s := e.state
	s.Suggestions = append([]movie.Movie(nil), e.state.Suggestions...)
	s.Recent = append([]string(nil), e.state.Recent...)
	switch {
	case !s.Open:
		s.Mode = ModeNone
	case utf8.RuneCountInString(s.Query) >= e.minChars:
		s.Mode = ModeSuggestions
	case len(s.Recent) > 0:
		s.Mode = ModeRecent
	default:
		s.Mode = ModeNone
	}
	return s
}

// commit snapshots the state, releases e.mu and notifies the listener.
func (e *Engine) commit() {
	s := e.snapshot()
	fn := e.onChange
	e.mu.Unlock()
	if fn != nil {
		fn(s)
	}
}
