// Package membership backs the favorite/watchlist/watched toggles shown next
// to a movie.
package membership

import (
	"strings"

	"tableflip.dev/abcinema/pkg/movie"
)

// Lists is the part of the list store the controls need.
type Lists interface {
	IsMember(t movie.ListType, id int) bool
	Toggle(t movie.ListType, item movie.Item) bool
}

// Toaster shows a transient message.
type Toaster interface {
	Show(text string) string
}

// Emitter broadcasts that a list changed.
type Emitter interface {
	Emit()
}

// Controls caches the membership of one item in every list.
type Controls struct {
	item   movie.Item
	lists  Lists
	bus    Emitter
	toasts Toaster
	active map[movie.ListType]bool
}

// New reads the current membership of item. bus and toasts may be nil.
func New(item movie.Item, lists Lists, bus Emitter, toasts Toaster) *Controls {
	c := &Controls{
		item:   item,
		lists:  lists,
		bus:    bus,
		toasts: toasts,
		active: make(map[movie.ListType]bool, 3),
	}
	c.Refresh()
	return c
}

// Item is the movie the controls belong to.
func (c *Controls) Item() movie.Item { return c.item }

// Active reports the cached membership for t.
func (c *Controls) Active(t movie.ListType) bool {
	return c.active[t]
}

// Refresh re-reads membership from the store.
func (c *Controls) Refresh() {
	for _, t := range movie.AllListTypes() {
		c.active[t] = c.lists.IsMember(t, c.item.MovieID())
	}
}

// Activate toggles t, shows the matching message and signals listeners. It
// reports the new membership.
func (c *Controls) Activate(t movie.ListType) bool {
	added := c.lists.Toggle(t, c.item)
	c.active[t] = added
	if c.toasts != nil {
		if added {
			c.toasts.Show(t.AddedMessage())
		} else {
			c.toasts.Show(t.RemovedMessage())
		}
	}
	if c.bus != nil {
		c.bus.Emit()
	}
	return added
}

// Glyph is the compact indicator for t.
func Glyph(t movie.ListType, on bool) string {
	switch t {
	case movie.Favorites:
		if on {
			return "♥"
		}
		return "♡"
	case movie.Watchlist:
		if on {
			return "⚑"
		}
		return "⚐"
	case movie.Watched:
		if on {
			return "◉"
		}
		return "○"
	}
	return "?"
}

// Compact renders all three indicators, e.g. "♥ ⚐ ○".
func (c *Controls) Compact() string {
	parts := make([]string, 0, 3)
	for _, t := range movie.AllListTypes() {
		parts = append(parts, Glyph(t, c.active[t]))
	}
	return strings.Join(parts, " ")
}

// KeyList maps the row shortcut keys to lists.
func KeyList(key string) (movie.ListType, bool) {
	switch key {
	case "f":
		return movie.Favorites, true
	case "w":
		return movie.Watchlist, true
	case "v":
		return movie.Watched, true
	}
	return "", false
}
