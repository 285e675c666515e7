// Package mylists is the personal lists pane: one tab per list with sorting,
// fuzzy filtering and removal.
package mylists

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/abcinema/pkg/lists"
	"tableflip.dev/abcinema/pkg/movie"
	"tableflip.dev/abcinema/pkg/tui/components/movielist"
	"tableflip.dev/abcinema/pkg/tui/events"
	"tableflip.dev/abcinema/pkg/tui/theme"
)

// Model renders the active list under a tab strip.
type Model struct {
	store *lists.Store
	list  *movielist.Model
	theme theme.Theme

	tab    int
	field  lists.SortField
	dir    lists.SortDir
	counts map[movie.ListType]int

	filter    textinput.Model
	filtering bool

	width  int
	height int
}

// New constructs the pane and loads the first tab.
func New(store *lists.Store, deps movielist.Deps, th theme.Theme) *Model {
	filter := textinput.New()
	filter.Prompt = "/"
	filter.Placeholder = "filter titles"
	m := &Model{
		store:  store,
		list:   movielist.New(deps, th),
		theme:  th,
		field:  lists.SortAddedAt,
		dir:    lists.DefaultDir(lists.SortAddedAt),
		filter: filter,
	}
	m.Reload()
	return m
}

// Active is the list shown in the current tab.
func (m *Model) Active() movie.ListType {
	return movie.AllListTypes()[m.tab]
}

// Filtering reports whether keystrokes are going to the filter input.
func (m *Model) Filtering() bool { return m.filtering }

// Order returns the current sort.
func (m *Model) Order() (lists.SortField, lists.SortDir) { return m.field, m.dir }

// Reload re-reads the store.
func (m *Model) Reload() {
	t := m.Active()
	m.counts = m.store.Counts()
	entries := lists.Filter(m.store.Sorted(t, m.field, m.dir), m.filter.Value())
	m.list.SetEntries(entries)
	if q := strings.TrimSpace(m.filter.Value()); q != "" {
		m.list.SetEmptyText(fmt.Sprintf("No titles match %q.", q))
	} else {
		m.list.SetEmptyText(t.EmptyText())
	}
}

// SetSize sizes the pane; two lines go to the tab strip and status.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.list.SetSize(width, max(height-2, 1))
}

// SelectTab switches to t.
func (m *Model) SelectTab(t movie.ListType) {
	for i, lt := range movie.AllListTypes() {
		if lt == t {
			m.tab = i
		}
	}
	m.Reload()
}

// SetSort applies a field. Choosing the current field flips the direction.
func (m *Model) SetSort(f lists.SortField) {
	if f == m.field {
		m.dir = m.dir.Toggle()
	} else {
		m.field = f
		m.dir = lists.DefaultDir(f)
	}
	m.Reload()
}

func (m *Model) nextSort() lists.SortField {
	fields := lists.SortFields()
	for i, f := range fields {
		if f == m.field {
			return fields[(i+1)%len(fields)]
		}
	}
	return fields[0]
}

// Update handles tab, sort, filter and remove keys and forwards the rest to
// the list.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if m.filtering {
		switch key.String() {
		case "enter":
			m.filtering = false
			m.filter.Blur()
			return nil
		case "esc":
			m.filtering = false
			m.filter.Blur()
			m.filter.SetValue("")
			m.Reload()
			return nil
		}
		var cmd tea.Cmd
		m.filter, cmd = m.filter.Update(msg)
		m.Reload()
		return cmd
	}

	n := len(movie.AllListTypes())
	switch key.String() {
	case "tab", "right", "l":
		m.tab = (m.tab + 1) % n
		m.Reload()
	case "shift+tab", "left", "h":
		m.tab = (m.tab + n - 1) % n
		m.Reload()
	case "1", "2", "3":
		m.tab = int(key.String()[0] - '1')
		m.Reload()
	case "s":
		m.SetSort(m.nextSort())
	case "r":
		m.SetSort(m.field)
	case "/":
		m.filtering = true
		return m.filter.Focus()
	case "x", "delete":
		if r, ok := m.list.Selected(); ok {
			t, id := m.Active(), r.ID
			return func() tea.Msg { return events.RemoveMsg{List: t, ID: id} }
		}
	default:
		return m.list.Update(msg)
	}
	return nil
}

// Refresh re-reads the store after a change signal.
func (m *Model) Refresh() {
	m.Reload()
	m.list.Refresh()
}

// View renders tabs, the sort line and the list.
func (m *Model) View() string {
	tabs := make([]string, 0, 3)
	for i, t := range movie.AllListTypes() {
		label := fmt.Sprintf("%d %s (%d)", i+1, t.Label(), m.counts[t])
		if i == m.tab {
			tabs = append(tabs, m.theme.Tabs.Active.Render(label))
		} else {
			tabs = append(tabs, m.theme.Tabs.Inactive.Render(label))
		}
	}

	arrow := "↓"
	if m.dir == lists.Asc {
		arrow = "↑"
	}
	status := fmt.Sprintf("Sort: %s %s", m.field.Label(), arrow)
	switch {
	case m.filtering:
		status += "  " + m.filter.View()
	case m.filter.Value() != "":
		status += fmt.Sprintf("  filter: %s", m.filter.Value())
	}

	return strings.Join([]string{
		strings.Join(tabs, "  "),
		m.theme.Footer.Status.Render(status),
		m.list.View(),
	}, "\n")
}
