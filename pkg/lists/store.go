// Package lists keeps the favorites, watchlist and watched collections in
// durable key/value storage.
package lists

import (
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"tableflip.dev/abcinema/pkg/movie"
	"tableflip.dev/abcinema/pkg/store"
)

// Store is the personal list store. Reads never fail: unavailable or corrupt
// storage reads as an empty collection. Writes are best effort and failures
// are logged, not returned.
type Store struct {
	kv  store.KV
	now func() time.Time
}

// Option configures a Store.
type Option func(*Store)

// WithClock overrides the clock used to stamp addedAt.
func WithClock(now func() time.Time) Option {
	return func(s *Store) {
		if now != nil {
			s.now = now
		}
	}
}

// New creates a Store over kv.
func New(kv store.KV, opts ...Option) *Store {
	s := &Store{kv: kv, now: time.Now}
	for _, o := range opts {
		o(s)
	}
	return s
}

// IsMember reports whether id is in the t collection.
func (s *Store) IsMember(t movie.ListType, id int) bool {
	return indexOf(s.read(t), id) >= 0
}

// Add prepends a snapshot of item to t. Adding an id that is already present
// is a no-op and does not reorder the collection.
func (s *Store) Add(t movie.ListType, item movie.Item) {
	if item == nil {
		return
	}
	entries := s.read(t)
	if indexOf(entries, item.MovieID()) >= 0 {
		return
	}
	e := movie.EntryFromItem(item, s.now())
	entries = append([]movie.ListEntry{e}, entries...)
	s.write(t, entries)
}

// Remove deletes id from t if present.
func (s *Store) Remove(t movie.ListType, id int) {
	entries := s.read(t)
	idx := indexOf(entries, id)
	if idx < 0 {
		return
	}
	entries = append(entries[:idx], entries[idx+1:]...)
	s.write(t, entries)
}

// Toggle flips membership of item in t and returns the new state: true if it
// was added, false if it was removed.
func (s *Store) Toggle(t movie.ListType, item movie.Item) bool {
	if item == nil {
		return false
	}
	if s.IsMember(t, item.MovieID()) {
		s.Remove(t, item.MovieID())
		return false
	}
	s.Add(t, item)
	return true
}

// List returns a copy of the t collection, most recently added first.
func (s *Store) List(t movie.ListType) []movie.ListEntry {
	entries := s.read(t)
	out := make([]movie.ListEntry, len(entries))
	for i, e := range entries {
		out[i] = e.Clone()
	}
	return out
}

// Counts returns the size of every collection.
func (s *Store) Counts() map[movie.ListType]int {
	counts := make(map[movie.ListType]int, len(movie.AllListTypes()))
	for _, t := range movie.AllListTypes() {
		counts[t] = len(s.read(t))
	}
	return counts
}

// Clear empties t.
func (s *Store) Clear(t movie.ListType) {
	s.write(t, []movie.ListEntry{})
}

func (s *Store) read(t movie.ListType) []movie.ListEntry {
	if s.kv == nil {
		return nil
	}
	raw, err := s.kv.Get(t.StorageKey())
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Warn("lists.read_failed", "list", t, "err", err)
		}
		return nil
	}
	if len(raw) == 0 {
		return nil
	}
	var entries []movie.ListEntry
	if err := json.Unmarshal(raw, &entries); err != nil {
		slog.Warn("lists.corrupt", "list", t, "err", err)
		return nil
	}
	return entries
}

func (s *Store) write(t movie.ListType, entries []movie.ListEntry) {
	if s.kv == nil {
		return
	}
	if entries == nil {
		entries = []movie.ListEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		slog.Warn("lists.encode_failed", "list", t, "err", err)
		return
	}
	if err := s.kv.Set(t.StorageKey(), data); err != nil {
		slog.Warn("lists.write_failed", "list", t, "err", err)
	}
}

func indexOf(entries []movie.ListEntry, id int) int {
	for i, e := range entries {
		if e.ID == id {
			return i
		}
	}
	return -1
}
