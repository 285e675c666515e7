// Package movielist renders a scrollable list of movies with per-row
// membership toggles.
package movielist

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/truncate"

	"tableflip.dev/abcinema/pkg/membership"
	"tableflip.dev/abcinema/pkg/movie"
	"tableflip.dev/abcinema/pkg/tui/events"
	"tableflip.dev/abcinema/pkg/tui/theme"
)

// Deps are the collaborators each row's membership controls use.
type Deps struct {
	Lists  membership.Lists
	Bus    membership.Emitter
	Toasts membership.Toaster
}

// Row is one rendered movie.
type Row struct {
	ID       int
	Title    string
	Year     string
	Vote     float64
	Controls *membership.Controls
}

// Model is a cursor over rows.
type Model struct {
	deps  Deps
	theme theme.Theme
	rows  []Row
	empty string

	cursor int
	offset int
	width  int
	height int
}

// New constructs an empty list.
func New(deps Deps, th theme.Theme) *Model {
	return &Model{deps: deps, theme: th, empty: "Nothing here yet."}
}

// SetEmptyText sets the text shown when there are no rows.
func (m *Model) SetEmptyText(text string) { m.empty = text }

// SetMovies replaces the rows with catalog results.
func (m *Model) SetMovies(movies []movie.Movie) {
	rows := make([]Row, 0, len(movies))
	for _, mv := range movies {
		rows = append(rows, m.row(mv, mv.Title, mv.Year(), mv.VoteAverage))
	}
	m.setRows(rows)
}

// SetEntries replaces the rows with list entries.
func (m *Model) SetEntries(entries []movie.ListEntry) {
	rows := make([]Row, 0, len(entries))
	for _, e := range entries {
		rows = append(rows, m.row(e, e.Title, e.Year(), e.VoteAverage))
	}
	m.setRows(rows)
}

func (m *Model) row(item movie.Item, title, year string, vote float64) Row {
	return Row{
		ID:       item.MovieID(),
		Title:    title,
		Year:     year,
		Vote:     vote,
		Controls: membership.New(item, m.deps.Lists, m.deps.Bus, m.deps.Toasts),
	}
}

// setRows keeps the cursor on the same movie when it is still present.
func (m *Model) setRows(rows []Row) {
	var current int
	if r, ok := m.Selected(); ok {
		current = r.ID
	}
	m.rows = rows
	m.cursor = 0
	for i, r := range rows {
		if r.ID == current {
			m.cursor = i
			break
		}
	}
	m.clamp()
}

// Refresh re-reads membership for every row.
func (m *Model) Refresh() {
	for _, r := range m.rows {
		r.Controls.Refresh()
	}
}

// Len is the number of rows.
func (m *Model) Len() int { return len(m.rows) }

// Selected returns the row under the cursor.
func (m *Model) Selected() (Row, bool) {
	if m.cursor < 0 || m.cursor >= len(m.rows) {
		return Row{}, false
	}
	return m.rows[m.cursor], true
}

// SetSize sets the rendered dimensions.
func (m *Model) SetSize(width, height int) {
	m.width = width
	m.height = height
	m.clamp()
}

// Update handles navigation, open and membership keys.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return nil
	}
	if t, ok := membership.KeyList(key.String()); ok {
		if r, ok := m.Selected(); ok {
			r.Controls.Activate(t)
		}
		return nil
	}
	switch key.String() {
	case "up", "k":
		m.move(-1)
	case "down", "j":
		m.move(1)
	case "pgup":
		m.move(-m.page())
	case "pgdown":
		m.move(m.page())
	case "home", "g":
		m.cursor = 0
		m.clamp()
	case "end", "G":
		m.cursor = len(m.rows) - 1
		m.clamp()
	case "enter":
		if r, ok := m.Selected(); ok {
			id := r.ID
			return func() tea.Msg { return events.OpenDetailMsg{ID: id} }
		}
	}
	return nil
}

func (m *Model) page() int {
	return max(m.height-1, 1)
}

func (m *Model) move(delta int) {
	m.cursor += delta
	m.clamp()
}

func (m *Model) clamp() {
	if m.cursor >= len(m.rows) {
		m.cursor = len(m.rows) - 1
	}
	if m.cursor < 0 {
		m.cursor = 0
	}
	if m.height <= 0 {
		m.offset = 0
		return
	}
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+m.height {
		m.offset = m.cursor - m.height + 1
	}
}

// View renders the visible rows.
func (m *Model) View() string {
	if len(m.rows) == 0 {
		return m.theme.Search.Muted.Render(m.empty)
	}
	end := len(m.rows)
	if m.height > 0 {
		end = min(m.offset+m.height, len(m.rows))
	}
	lines := make([]string, 0, end-m.offset)
	for i := m.offset; i < end; i++ {
		lines = append(lines, m.renderRow(m.rows[i], i == m.cursor))
	}
	return strings.Join(lines, "\n")
}

func (m *Model) renderRow(r Row, selected bool) string {
	rs := m.theme.Row
	glyphs := make([]string, 0, 3)
	for _, t := range movie.AllListTypes() {
		on := r.Controls.Active(t)
		style := rs.GlyphOff
		if on {
			style = rs.GlyphOn
		}
		glyphs = append(glyphs, style.Render(membership.Glyph(t, on)))
	}

	title := r.Title
	if m.width > 0 {
		// marker, glyphs, year and vote take about 22 cells
		title = truncate.StringWithTail(title, uint(max(m.width-22, 8)), "…")
	}
	marker := "  "
	titleStyle := rs.Title
	if selected {
		marker = "› "
		titleStyle = rs.Selected
	}
	year := r.Year
	if year == "N/A" {
		year = "----"
	}
	return fmt.Sprintf("%s%s %s %s %s",
		marker,
		strings.Join(glyphs, " "),
		titleStyle.Render(title),
		rs.Year.Render(year),
		theme.Vote(r.Vote),
	)
}
