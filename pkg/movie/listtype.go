// Package movie defines the catalog and personal-list types shared across abcinema.
package movie

import (
	"fmt"
	"strings"
)

// ListType identifies one of the personal collections.
type ListType string

const (
	// Favorites holds movies the user loves.
	Favorites ListType = "favorites"
	// Watchlist holds movies the user wants to watch later.
	Watchlist ListType = "watchlist"
	// Watched holds movies the user has already seen.
	Watched ListType = "watched"
)

// AllListTypes returns the supported collections in display order.
func AllListTypes() []ListType {
	return []ListType{
		Favorites,
		Watchlist,
		Watched,
	}
}

// ParseListType converts a string to a ListType or returns an error for unknown values.
func ParseListType(raw string) (ListType, error) {
	t := ListType(strings.ToLower(strings.TrimSpace(raw)))
	switch t {
	case "favorite", "fav", "favs":
		return Favorites, nil
	case "watch", "later":
		return Watchlist, nil
	case "seen":
		return Watched, nil
	}
	for _, candidate := range AllListTypes() {
		if candidate == t {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("movie: unknown list %q", raw)
}

// StorageKey is the key/value key the collection is persisted under.
func (t ListType) StorageKey() string {
	return "ab_" + string(t)
}

// Label is the human-friendly collection name.
func (t ListType) Label() string {
	switch t {
	case Favorites:
		return "Favorites"
	case Watchlist:
		return "Watchlist"
	case Watched:
		return "Watched"
	default:
		return string(t)
	}
}

// AddedMessage is the toast shown after an item joins the collection.
func (t ListType) AddedMessage() string {
	switch t {
	case Favorites:
		return "Added to Favorites"
	case Watchlist:
		return "Added to Watchlist"
	case Watched:
		return "Marked as Watched"
	default:
		return "Added to " + t.Label()
	}
}

// RemovedMessage is the toast shown after an item leaves the collection.
func (t ListType) RemovedMessage() string {
	switch t {
	case Favorites:
		return "Removed from Favorites"
	case Watchlist:
		return "Removed from Watchlist"
	case Watched:
		return "Unmarked as Watched"
	default:
		return "Removed from " + t.Label()
	}
}

// EmptyText describes an empty collection.
func (t ListType) EmptyText() string {
	switch t {
	case Favorites:
		return "Movies you love will appear here. Press f on any movie to add it."
	case Watchlist:
		return "Save movies you want to watch later. Press w on any movie."
	case Watched:
		return "Track movies you've already seen. Press v on any movie."
	default:
		return "Nothing here yet."
	}
}
