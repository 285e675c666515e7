// Package recent keeps the most recently submitted search queries.
package recent

import (
	"encoding/json"
	"errors"
	"log/slog"
	"strings"

	"tableflip.dev/abcinema/pkg/store"
)

// Key is the storage key of the log.
const Key = "ab_recent_searches"

// DefaultMax is the number of queries kept.
const DefaultMax = 6

// Log is a bounded, case-insensitively deduplicated list of queries, newest
// first. Like the list store it never reports storage failures.
type Log struct {
	kv  store.KV
	max int
}

// New creates a Log over kv holding at most limit entries. A limit below 1
// uses DefaultMax.
func New(kv store.KV, limit int) *Log {
	if limit < 1 {
		limit = DefaultMax
	}
	return &Log{kv: kv, max: limit}
}

// All returns the stored queries, newest first.
func (l *Log) All() []string {
	if l == nil || l.kv == nil {
		return nil
	}
	raw, err := l.kv.Get(Key)
	if err != nil {
		if !errors.Is(err, store.ErrNotFound) {
			slog.Warn("recent.read_failed", "err", err)
		}
		return nil
	}
	var queries []string
	if err := json.Unmarshal(raw, &queries); err != nil {
		slog.Warn("recent.corrupt", "err", err)
		return nil
	}
	if len(queries) > l.max {
		queries = queries[:l.max]
	}
	return queries
}

// Record moves q to the front, dropping any case-insensitive duplicate and
// evicting the oldest entry beyond the cap. Blank queries are ignored.
func (l *Log) Record(q string) {
	q = strings.TrimSpace(q)
	if l == nil || l.kv == nil || q == "" {
		return
	}
	next := []string{q}
	for _, existing := range l.All() {
		if strings.EqualFold(existing, q) {
			continue
		}
		next = append(next, existing)
	}
	if len(next) > l.max {
		next = next[:l.max]
	}
	data, err := json.Marshal(next)
	if err != nil {
		slog.Warn("recent.encode_failed", "err", err)
		return
	}
	if err := l.kv.Set(Key, data); err != nil {
		slog.Warn("recent.write_failed", "err", err)
	}
}

// Clear removes the log entirely.
func (l *Log) Clear() {
	if l == nil || l.kv == nil {
		return
	}
	if err := l.kv.Delete(Key); err != nil {
		slog.Warn("recent.clear_failed", "err", err)
	}
}
