// Package searchbar renders the search input and its suggestion dropdown on
// top of a suggest.Engine.
package searchbar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"tableflip.dev/abcinema/pkg/suggest"
	"tableflip.dev/abcinema/pkg/tui/theme"
)

// Model owns the text input; the engine owns everything else.
type Model struct {
	engine *suggest.Engine
	input  textinput.Model
	state  suggest.State
	theme  theme.Theme
	width  int

	// recentIndex highlights a recent search, or -1.
	recentIndex int
}

// New constructs a search bar driving engine.
func New(engine *suggest.Engine, th theme.Theme) *Model {
	input := textinput.New()
	input.Placeholder = "Search movies..."
	input.Prompt = "⌕ "
	input.PromptStyle = th.Search.Prompt
	return &Model{
		engine:      engine,
		input:       input,
		state:       engine.State(),
		theme:       th,
		recentIndex: -1,
	}
}

// Focus opens the dropdown with recent searches.
func (m *Model) Focus() tea.Cmd {
	m.engine.Focus()
	m.sync()
	return m.input.Focus()
}

// Blur hides the dropdown and keeps the query.
func (m *Model) Blur() {
	m.input.Blur()
	m.engine.Close()
	m.sync()
}

// Focused reports whether keys go to the search bar.
func (m *Model) Focused() bool { return m.input.Focused() }

// SetWidth sizes the input and dropdown.
func (m *Model) SetWidth(width int) {
	m.width = width
	m.input.Width = max(width-4, 10)
}

// SetState applies a snapshot delivered from the engine.
func (m *Model) SetState(st suggest.State) {
	m.state = st
	if st.Mode != suggest.ModeRecent || m.recentIndex >= len(st.Recent) {
		m.recentIndex = -1
	}
}

// State returns the last applied snapshot.
func (m *Model) State() suggest.State { return m.state }

// Update handles a key while focused. A non-empty navigation means the user
// submitted and the search bar has released focus.
func (m *Model) Update(msg tea.Msg) (suggest.Navigation, tea.Cmd) {
	nav := suggest.Navigation{Kind: suggest.NavNone}
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return nav, cmd
	}

	recentMode := m.state.Mode == suggest.ModeRecent
	switch key.String() {
	case "down":
		if recentMode {
			m.recentIndex = (m.recentIndex + 1) % len(m.state.Recent)
			return nav, nil
		}
		m.engine.Next()
	case "up":
		if recentMode {
			if m.recentIndex <= 0 {
				m.recentIndex = len(m.state.Recent) - 1
			} else {
				m.recentIndex--
			}
			return nav, nil
		}
		m.engine.Previous()
	case "ctrl+d":
		if recentMode {
			m.engine.ClearRecent()
		}
	case "enter":
		if recentMode && m.recentIndex >= 0 {
			nav = m.engine.SelectRecent(m.state.Recent[m.recentIndex])
		} else {
			nav = m.engine.Submit()
		}
		m.input.SetValue(m.engine.State().Query)
		if nav.Kind != suggest.NavNone {
			m.input.Blur()
		}
	case "esc":
		m.engine.Escape()
		m.input.SetValue("")
		m.input.Blur()
	default:
		before := m.input.Value()
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		if m.input.Value() != before {
			m.engine.SetQuery(m.input.Value())
		}
		m.sync()
		return nav, cmd
	}
	m.sync()
	return nav, nil
}

func (m *Model) sync() {
	m.SetState(m.engine.State())
}

// View renders the input line.
func (m *Model) View() string {
	return m.input.View()
}

// Dropdown renders the open dropdown, or "" when closed.
func (m *Model) Dropdown() string {
	st := m.state
	s := m.theme.Search
	var lines []string

	switch st.Mode {
	case suggest.ModeRecent:
		lines = append(lines, s.Heading.Render("Recent searches"))
		for i, q := range st.Recent {
			line := "  " + q
			if i == m.recentIndex {
				line = s.Selected.Render("› " + q)
			}
			lines = append(lines, line)
		}
		lines = append(lines, s.Muted.Render("ctrl+d clear"))
	case suggest.ModeSuggestions:
		switch {
		case st.Loading && len(st.Suggestions) == 0:
			lines = append(lines, s.Muted.Render("Searching..."))
		case len(st.Suggestions) == 0:
			lines = append(lines, s.Muted.Render("No movies found"))
		default:
			for i, mv := range st.Suggestions {
				label := mv.Title
				if y := mv.Year(); y != "N/A" {
					label = fmt.Sprintf("%s (%s)", label, y)
				}
				if i == st.Selected {
					lines = append(lines, s.Selected.Render("› "+label)+" "+theme.Vote(mv.VoteAverage))
					continue
				}
				lines = append(lines, "  "+s.Item.Render(label)+" "+theme.Vote(mv.VoteAverage))
			}
			lines = append(lines, s.Muted.Render(fmt.Sprintf("enter: all results for %q", st.Query)))
		}
	default:
		return ""
	}

	style := s.Dropdown
	if m.width > 0 {
		style = style.Width(max(m.width-style.GetHorizontalFrameSize(), 10))
	}
	return style.Render(strings.Join(lines, "\n"))
}
