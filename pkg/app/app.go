package app

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"tableflip.dev/abcinema/pkg/config"
	"tableflip.dev/abcinema/pkg/details"
	"tableflip.dev/abcinema/pkg/lists"
	"tableflip.dev/abcinema/pkg/movie"
	"tableflip.dev/abcinema/pkg/notify"
	"tableflip.dev/abcinema/pkg/omdb"
	"tableflip.dev/abcinema/pkg/recent"
	"tableflip.dev/abcinema/pkg/store"
	"tableflip.dev/abcinema/pkg/suggest"
	"tableflip.dev/abcinema/pkg/tmdb"
	"tableflip.dev/abcinema/pkg/toast"
)

// Service wires the local store, the catalog clients and the in-process
// signals so the CLI and the UI share one set of operations.
type Service struct {
	Config  *config.Config
	KV      store.KV
	Lists   *lists.Store
	Bus     *notify.Bus
	Recent  *recent.Log
	Toasts  *toast.Channel
	TMDB    *tmdb.Client
	OMDb    *omdb.Client
	Details *details.Loader
	People  *details.PersonLoader

	mu      sync.Mutex
	engines []*suggest.Engine
}

var ErrNoCatalog = errors.New("app: no TMDB API key configured (set ABCINEMA_TMDB_KEY)")

// Watcher is implemented by stores that can report writes from other
// processes.
type Watcher interface {
	Watch(ctx context.Context) (<-chan store.Event, error)
}

// New opens the disk store named by cfg and builds a Service around it.
func New(cfg *config.Config) (*Service, error) {
	disk, err := store.Load(cfg)
	if err != nil {
		return nil, fmt.Errorf("app: open store: %w", err)
	}
	return NewWithKV(cfg, disk), nil
}

// NewWithKV builds a Service over an existing key/value store.
func NewWithKV(cfg *config.Config, kv store.KV) *Service {
	if cfg == nil {
		cfg = config.FromMap(nil)
	}
	tc := tmdb.New(tmdb.Options{
		APIKey:     cfg.TMDBKey(),
		BaseURL:    cfg.TMDBBase(),
		RPS:        cfg.TMDBRPS(),
		Retries:    cfg.TMDBRetries(),
		Timeout:    cfg.TMDBTimeout(),
		Revalidate: cfg.TMDBRevalidate(),
		CacheSize:  cfg.TMDBCacheSize(),
	})
	oc := omdb.New(omdb.Options{
		APIKey:     cfg.OMDbKey(),
		BaseURL:    cfg.OMDbBase(),
		Revalidate: cfg.OMDbRevalidate(),
		Timeout:    cfg.TMDBTimeout(),
	})
	return &Service{
		Config:  cfg,
		KV:      kv,
		Lists:   lists.New(kv),
		Bus:     notify.New(),
		Recent:  recent.New(kv, cfg.RecentMax()),
		Toasts:  toast.New(toast.WithTimings(cfg.ToastVisible(), cfg.ToastExit()), toast.WithMax(cfg.ToastMax())),
		TMDB:    tc,
		OMDb:    oc,
		Details: details.NewLoader(tc, oc),
		People:  details.NewPersonLoader(tc),
	}
}

// Suggestions builds a search engine backed by the catalog and the recent
// log. sched may be nil. Close shuts the engine down.
func (s *Service) Suggestions(sched suggest.Scheduler) *suggest.Engine {
	e := suggest.New(s.TMDB, s.Recent, suggest.Options{
		Debounce:  s.Config.SearchDebounce(),
		MinChars:  s.Config.SearchMinChars(),
		Limit:     s.Config.SearchLimit(),
		Scheduler: sched,
	})
	s.mu.Lock()
	s.engines = append(s.engines, e)
	s.mu.Unlock()
	return e
}

// Catalog returns the TMDB client or ErrNoCatalog.
func (s *Service) Catalog() (*tmdb.Client, error) {
	if s.TMDB == nil || !s.TMDB.Configured() {
		return nil, ErrNoCatalog
	}
	return s.TMDB, nil
}

// Watch forwards list writes made by other processes to the bus until ctx
// ends. Stores that cannot watch are ignored.
func (s *Service) Watch(ctx context.Context) error {
	w, ok := s.KV.(Watcher)
	if !ok {
		return nil
	}
	events, err := w.Watch(ctx)
	if err != nil {
		return fmt.Errorf("app: watch: %w", err)
	}
	go notify.Bridge(ctx, events, s.Bus)
	return nil
}

// Toggle flips membership, announces it and signals listeners.
func (s *Service) Toggle(t movie.ListType, item movie.Item) bool {
	added := s.Lists.Toggle(t, item)
	if added {
		s.Toasts.Show(t.AddedMessage())
	} else {
		s.Toasts.Show(t.RemovedMessage())
	}
	s.Bus.Emit()
	return added
}

// Add inserts item and signals listeners. It reports false if it was
// already present.
func (s *Service) Add(t movie.ListType, item movie.Item) bool {
	if s.Lists.IsMember(t, item.MovieID()) {
		return false
	}
	s.Lists.Add(t, item)
	s.Toasts.Show(t.AddedMessage())
	s.Bus.Emit()
	return true
}

// Remove deletes id from t and signals listeners. It reports false if id
// was not present.
func (s *Service) Remove(t movie.ListType, id int) bool {
	var title string
	found := false
	for _, e := range s.Lists.List(t) {
		if e.ID == id {
			title, found = e.Title, true
			break
		}
	}
	if !found {
		return false
	}
	s.Lists.Remove(t, id)
	s.Toasts.Show(fmt.Sprintf("Removed %q from list", title))
	s.Bus.Emit()
	return true
}

// Close stops toast timers and shuts down every engine from Suggestions.
func (s *Service) Close() {
	if s.Toasts != nil {
		s.Toasts.Close()
	}
	s.mu.Lock()
	engines := s.engines
	s.engines = nil
	s.mu.Unlock()
	for _, e := range engines {
		e.Shutdown()
	}
}
