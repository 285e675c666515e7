package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/abcinema/pkg/membership"
	"tableflip.dev/abcinema/pkg/movie"
)

// Binding is one interface shortcut.
type Binding struct {
	Keys    string
	Where   string
	Meaning string
}

// Bindings lists the interface shortcuts in display order.
var Bindings = []Binding{
	{"/ or ctrl+f", "anywhere", "focus the search bar"},
	{"↑ ↓", "search", "highlight a suggestion or recent search"},
	{"enter", "search", "open the highlighted movie or all results"},
	{"esc", "search", "clear and close the dropdown"},
	{"ctrl+d", "search", "forget recent searches"},
	{"f w v", "any movie", "toggle favorites, watchlist, watched"},
	{"enter", "lists", "open the movie"},
	{"n p", "results", "next or previous page"},
	{"t", "results", "trending this week"},
	{"ctrl+l", "anywhere", "switch between results and my lists"},
	{"1 2 3", "my lists", "switch tab"},
	{"s r", "my lists", "cycle sort field, reverse direction"},
	{"x", "my lists", "remove the movie"},
	{"esc", "detail", "go back"},
	{"q", "anywhere", "quit"},
}

// Key prints the list glyph legend and the interface shortcuts.
type Key struct {
	// Out defaults to color.Output.
	Out io.Writer
}

func (k *Key) Do(ctx context.Context) error {
	out := k.Out
	if out == nil {
		out = color.Output
	}
	bold := color.New(color.Bold).SprintFunc()
	underline := color.New(color.Bold, color.Underline).SprintFunc()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Key"), bold("In"), bold("Out"), bold("List"))
	for _, t := range movie.AllListTypes() {
		shortcut, _ := keyFor(t)
		tbl.AddRow(shortcut, membership.Glyph(t, true), membership.Glyph(t, false), t.Label())
	}
	_, _ = fmt.Fprintln(out, underline("Lists"))
	_, _ = fmt.Fprintln(out, tbl)

	tbl = uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Key"), bold("Where"), bold("Meaning"))
	for _, b := range Bindings {
		tbl.AddRow(b.Keys, b.Where, b.Meaning)
	}
	_, _ = fmt.Fprintln(out, underline("\nInterface"))
	_, _ = fmt.Fprintln(out, tbl)
	return nil
}

func keyFor(t movie.ListType) (string, bool) {
	for _, k := range []string{"f", "w", "v"} {
		if lt, ok := membership.KeyList(k); ok && lt == t {
			return k, true
		}
	}
	return "", false
}
