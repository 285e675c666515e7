// Package events defines the messages exchanged between UI components and
// the signals forwarded into the program from background work.
package events

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/abcinema/pkg/details"
	"tableflip.dev/abcinema/pkg/movie"
	"tableflip.dev/abcinema/pkg/suggest"
	"tableflip.dev/abcinema/pkg/tmdb"
	"tableflip.dev/abcinema/pkg/toast"
)

// SearchChangedMsg carries the latest suggestion engine snapshot.
type SearchChangedMsg struct {
	State suggest.State
}

// ToastsChangedMsg carries the visible notifications.
type ToastsChangedMsg struct {
	Messages []toast.Message
}

// ListsChangedMsg reports that a personal list was written.
type ListsChangedMsg struct{}

// ResultsMsg delivers a search or chart page.
type ResultsMsg struct {
	Seq   int
	Title string
	Query string
	Page  *tmdb.MoviePage
	Err   error
}

// DetailMsg delivers a loaded detail page.
type DetailMsg struct {
	ID   int
	Page *details.Page
	Err  error
}

// OpenDetailMsg asks the root model to load a movie's detail page.
type OpenDetailMsg struct {
	ID int
}

// RemoveMsg asks the root model to remove an entry from a list.
type RemoveMsg struct {
	List movie.ListType
	ID   int
}

// Pump coalesces change signals from other goroutines into program messages.
// Poke never blocks, so it is safe to call while the program is inside Update.
type Pump struct {
	ch  chan struct{}
	msg func() tea.Msg
}

// NewPump returns a pump that sends msg() each time it drains a signal.
func NewPump(msg func() tea.Msg) *Pump {
	return &Pump{ch: make(chan struct{}, 1), msg: msg}
}

// Poke records that something changed.
func (p *Pump) Poke() {
	select {
	case p.ch <- struct{}{}:
	default:
	}
}

// Run forwards signals to send until ctx ends.
func (p *Pump) Run(ctx context.Context, send func(tea.Msg)) {
	for {
		select {
		case <-ctx.Done():
			return
		case <-p.ch:
			send(p.msg())
		}
	}
}
