// Package detail renders a movie page in a scrollable viewport.
package detail

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/abcinema/pkg/details"
	"tableflip.dev/abcinema/pkg/membership"
	"tableflip.dev/abcinema/pkg/movie"
	"tableflip.dev/abcinema/pkg/tui/components/movielist"
	"tableflip.dev/abcinema/pkg/tui/theme"
)

// Model shows one movie.
type Model struct {
	deps     movielist.Deps
	theme    theme.Theme
	viewport viewport.Model

	id       int
	loading  bool
	err      error
	page     *details.Page
	controls *membership.Controls
}

// New constructs an empty detail view.
func New(deps movielist.Deps, th theme.Theme) *Model {
	return &Model{deps: deps, theme: th, viewport: viewport.New(0, 0)}
}

// ID is the movie being shown or loaded, 0 when empty.
func (m *Model) ID() int { return m.id }

// Loading reports whether a page is pending.
func (m *Model) Loading() bool { return m.loading }

// SetLoading shows a placeholder for id.
func (m *Model) SetLoading(id int) {
	m.id = id
	m.loading = true
	m.err = nil
	m.page = nil
	m.controls = nil
	m.render()
}

// SetPage shows a loaded page. Results for a movie other than the one last
// requested are ignored.
func (m *Model) SetPage(id int, p *details.Page, err error) {
	if id != m.id {
		return
	}
	m.loading = false
	m.err = err
	m.page = p
	if p != nil {
		m.controls = membership.New(p.Details, m.deps.Lists, m.deps.Bus, m.deps.Toasts)
	}
	m.render()
	m.viewport.GotoTop()
}

// Refresh re-reads membership after a change signal.
func (m *Model) Refresh() {
	if m.controls != nil {
		m.controls.Refresh()
		m.render()
	}
}

// SetSize sizes the viewport.
func (m *Model) SetSize(width, height int) {
	m.viewport.Width = width
	m.viewport.Height = height
	m.render()
}

// Update toggles membership on f/w/v and scrolls otherwise.
func (m *Model) Update(msg tea.Msg) tea.Cmd {
	if key, ok := msg.(tea.KeyMsg); ok && m.controls != nil {
		if t, ok := membership.KeyList(key.String()); ok {
			m.controls.Activate(t)
			m.render()
			return nil
		}
	}
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return cmd
}

// View renders the viewport.
func (m *Model) View() string {
	return m.viewport.View()
}

func (m *Model) render() {
	m.viewport.SetContent(m.content())
}

func (m *Model) content() string {
	muted := m.theme.Search.Muted
	switch {
	case m.id == 0:
		return muted.Render("Select a movie to see its details.")
	case m.loading:
		return muted.Render("Loading...")
	case m.err != nil:
		return muted.Render("Could not load this movie: " + m.err.Error())
	case m.page == nil:
		return ""
	}

	p := m.page
	d := p.Details
	width := max(m.viewport.Width, 20)
	title := m.theme.Panel.Title
	var b strings.Builder
	line := func(format string, args ...any) {
		fmt.Fprintf(&b, format+"\n", args...)
	}

	heading := d.Title
	if y := d.Summary().Year(); y != "N/A" {
		heading += " (" + y + ")"
	}
	line("%s", title.Render(heading))
	if d.Tagline != "" {
		line("%s", muted.Render(d.Tagline))
	}
	line("%s", m.glyphs())
	line("")

	facts := []string{theme.Vote(d.VoteAverage), details.FormatRuntime(d.Runtime)}
	if names := genreNames(d.Genres); names != "" {
		facts = append(facts, names)
	}
	line("%s", strings.Join(facts, " · "))
	if !p.Ratings.Empty() {
		var parts []string
		for _, r := range []struct{ label, value string }{
			{"IMDb", p.Ratings.IMDb},
			{"RT", p.Ratings.RottenTomatoes},
			{"MC", p.Ratings.Metacritic},
		} {
			if r.value != "" {
				parts = append(parts, r.label+" "+r.value)
			}
		}
		line("%s", strings.Join(parts, "  "))
	}
	if dirs := p.Directors(); len(dirs) > 0 {
		names := make([]string, 0, len(dirs))
		for _, c := range dirs {
			names = append(names, c.Name)
		}
		line("Directed by %s", strings.Join(names, ", "))
	}
	if u := p.TrailerURL(); u != "" {
		line("Trailer %s", u)
	}
	line("")

	if d.Overview != "" {
		line("%s", wordwrap.String(d.Overview, width))
		line("")
	}
	if cast := p.TopCast(6); len(cast) > 0 {
		line("%s", title.Render("Cast"))
		for _, c := range cast {
			line("  %s %s", c.Name, muted.Render(c.Character))
		}
		line("")
	}
	if len(p.Reviews) > 0 {
		line("%s", title.Render(fmt.Sprintf("Reviews (%d)", p.TotalReviews)))
		r := p.Reviews[0]
		line("  %s", r.Author)
		line("%s", wordwrap.String(truncate(r.Content, 300), width))
		line("")
	}
	if len(p.Similar) > 0 {
		line("%s", title.Render("Similar"))
		for _, s := range p.Similar[:min(5, len(p.Similar))] {
			line("  %s %s", s.Title, muted.Render(s.Year()))
		}
		line("")
	}
	if len(p.Recommendations) > 0 {
		line("%s", title.Render("Recommended"))
		for _, r := range p.Recommendations[:min(5, len(p.Recommendations))] {
			line("  %s %s", r.Title, muted.Render(r.Year()))
		}
		line("")
	}
	for _, s := range p.Degraded {
		line("%s", muted.Render(fmt.Sprintf("(%s unavailable)", s)))
	}
	return strings.TrimRight(b.String(), "\n")
}

func (m *Model) glyphs() string {
	if m.controls == nil {
		return ""
	}
	parts := make([]string, 0, 3)
	for _, t := range movie.AllListTypes() {
		on := m.controls.Active(t)
		style := m.theme.Row.GlyphOff
		if on {
			style = m.theme.Row.GlyphOn
		}
		parts = append(parts, style.Render(membership.Glyph(t, on)+" "+t.Label()))
	}
	return strings.Join(parts, "  ")
}

func genreNames(genres []movie.Genre) string {
	names := make([]string, 0, len(genres))
	for _, g := range genres {
		names = append(names, g.Name)
	}
	return strings.Join(names, ", ")
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n]) + "…"
}
