package lists

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/afero"

	"tableflip.dev/abcinema/pkg/app"
	"tableflip.dev/abcinema/pkg/commands/options"
	storelists "tableflip.dev/abcinema/pkg/lists"
	"tableflip.dev/abcinema/pkg/movie"
	"tableflip.dev/abcinema/pkg/printers"
	"tableflip.dev/abcinema/pkg/transfer"
)

// Show prints one list, or every list when Type is empty.
type Show struct {
	Service *app.Service
	Type    movie.ListType
	Field   storelists.SortField
	Dir     storelists.SortDir
	Filter  string
	// Since limits output to entries added within the window when positive.
	Since  time.Duration
	Now    func() time.Time
	Output *options.OutputOptions
}

func (s *Show) Do(ctx context.Context) error {
	if s.Service == nil {
		return errors.New("lists: no service configured")
	}
	types := movie.AllListTypes()
	if s.Type != "" {
		types = []movie.ListType{s.Type}
	}

	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	result := make(map[movie.ListType][]movie.ListEntry, len(types))
	for _, t := range types {
		entries := storelists.Filter(s.Service.Lists.Sorted(t, s.Field, s.Dir), s.Filter)
		if s.Since > 0 {
			entries = storelists.AddedSince(entries, now().Add(-s.Since))
		}
		result[t] = entries
	}

	if s.Output.JSON {
		if s.Type != "" {
			return s.Output.Print(result[s.Type])
		}
		return s.Output.Print(result)
	}

	pp := printers.PrettyPrint{Out: s.Output.Writer()}
	for _, t := range types {
		pp.TitleWithCount(t.Label(), len(result[t]))
		pp.Entries(t, result[t]...)
	}
	return nil
}

// Counts prints the size of each list.
type Counts struct {
	Service *app.Service
	Output  *options.OutputOptions
}

func (c *Counts) Do(ctx context.Context) error {
	counts := c.Service.Lists.Counts()
	if c.Output.JSON {
		return c.Output.Print(counts)
	}
	pp := printers.PrettyPrint{Out: c.Output.Writer()}
	pp.Counts(counts)
	return nil
}

// Action is a membership change.
type Action string

const (
	ActionAdd    Action = "add"
	ActionRemove Action = "remove"
	ActionToggle Action = "toggle"
)

// Change adds, removes or toggles a movie. For add and toggle the summary
// is fetched from the catalog unless Offline supplies it.
type Change struct {
	Service *app.Service
	Action  Action
	Type    movie.ListType
	ID      int
	Offline *movie.Movie
	Output  *options.OutputOptions
}

func (c *Change) Do(ctx context.Context) error {
	var msg string
	switch c.Action {
	case ActionRemove:
		if c.Service.Remove(c.Type, c.ID) {
			msg = c.Type.RemovedMessage()
		} else {
			msg = fmt.Sprintf("%d is not in %s", c.ID, c.Type.Label())
		}
	case ActionAdd, ActionToggle:
		item, err := c.item(ctx)
		if err != nil {
			return err
		}
		if c.Action == ActionAdd {
			if c.Service.Add(c.Type, item) {
				msg = c.Type.AddedMessage()
			} else {
				msg = fmt.Sprintf("%d is already in %s", c.ID, c.Type.Label())
			}
		} else if c.Service.Toggle(c.Type, item) {
			msg = c.Type.AddedMessage()
		} else {
			msg = c.Type.RemovedMessage()
		}
	default:
		return fmt.Errorf("lists: unknown action %q", c.Action)
	}

	if c.Output.JSON {
		return c.Output.Print(map[string]any{
			"list":    c.Type,
			"id":      c.ID,
			"member":  c.Service.Lists.IsMember(c.Type, c.ID),
			"message": msg,
		})
	}
	_, err := fmt.Fprintln(c.Output.Writer(), msg)
	return err
}

func (c *Change) item(ctx context.Context) (movie.Item, error) {
	if c.Offline != nil {
		m := *c.Offline
		m.ID = c.ID
		return m, nil
	}
	// Toggling an existing entry does not need the catalog.
	for _, e := range c.Service.Lists.List(c.Type) {
		if e.ID == c.ID {
			return e, nil
		}
	}
	catalog, err := c.Service.Catalog()
	if err != nil {
		return nil, fmt.Errorf("%w; or pass --title to add offline", err)
	}
	d, err := catalog.MovieDetails(ctx, c.ID)
	if err != nil {
		return nil, err
	}
	return d.Summary(), nil
}

// Export writes every list to Path.
type Export struct {
	Service *app.Service
	Fs      afero.Fs
	Path    string
	Format  transfer.Format
	Output  *options.OutputOptions
}

func (e *Export) Do(ctx context.Context) error {
	if e.Path == "-" {
		return transfer.Export(e.Output.Writer(), e.Service.Lists, e.Format)
	}
	if err := transfer.ExportFile(e.fs(), e.Path, e.Service.Lists, e.Format); err != nil {
		return err
	}
	_, err := fmt.Fprintf(e.Output.Writer(), "Exported lists to %s\n", e.Path)
	return err
}

func (e *Export) fs() afero.Fs {
	if e.Fs == nil {
		return afero.NewOsFs()
	}
	return e.Fs
}

// Import loads lists from Path.
type Import struct {
	Service *app.Service
	Fs      afero.Fs
	Path    string
	Format  transfer.Format
	Merge   bool
	Output  *options.OutputOptions
}

func (i *Import) Do(ctx context.Context) error {
	fs := i.Fs
	if fs == nil {
		fs = afero.NewOsFs()
	}
	res, err := transfer.ImportFile(fs, i.Path, i.Service.Lists, i.Format, i.Merge)
	if err != nil {
		return err
	}
	i.Service.Bus.Emit()
	if i.Output.JSON {
		return i.Output.Print(res)
	}
	w := i.Output.Writer()
	for _, t := range movie.AllListTypes() {
		_, _ = fmt.Fprintf(w, "%s: %d added, %d skipped\n", t.Label(), res.Added[t], res.Skipped[t])
	}
	return nil
}
