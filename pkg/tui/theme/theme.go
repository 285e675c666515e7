package theme

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Theme centralizes Lip Gloss styles for the Bubble Tea UI.
type Theme struct {
	Search SearchTheme
	Panel  PanelTheme
	Tabs   TabTheme
	Row    RowTheme
	Toast  ToastTheme
	Footer FooterTheme
}

// SearchTheme styles the search bar and its dropdown.
type SearchTheme struct {
	Prompt   lipgloss.Style
	Dropdown lipgloss.Style
	Heading  lipgloss.Style
	Item     lipgloss.Style
	Selected lipgloss.Style
	Muted    lipgloss.Style
}

// PanelTheme styles framed panels and headings.
type PanelTheme struct {
	Frame   lipgloss.Style
	Focused lipgloss.Style
	Title   lipgloss.Style
	Body    lipgloss.Style
}

// TabTheme styles the list tabs.
type TabTheme struct {
	Active   lipgloss.Style
	Inactive lipgloss.Style
}

// RowTheme styles movie rows.
type RowTheme struct {
	Title    lipgloss.Style
	Selected lipgloss.Style
	Year     lipgloss.Style
	GlyphOn  lipgloss.Style
	GlyphOff lipgloss.Style
}

// ToastTheme styles transient notifications.
type ToastTheme struct {
	Frame   lipgloss.Style
	Exiting lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Help   lipgloss.Style
	Status lipgloss.Style
}

// Default returns the built-in theme used across the UI.
func Default() Theme {
	selected := lipgloss.NewStyle().
		Foreground(lipgloss.Color("212")).
		Bold(true)
	muted := lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	frame := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("241")).
		Padding(0, 1)

	return Theme{
		Search: SearchTheme{
			Prompt:   lipgloss.NewStyle().Foreground(lipgloss.Color("212")),
			Dropdown: frame,
			Heading:  muted.Bold(true),
			Item:     lipgloss.NewStyle(),
			Selected: selected.Reverse(true),
			Muted:    muted,
		},
		Panel: PanelTheme{
			Frame:   frame,
			Focused: frame.BorderForeground(lipgloss.Color("212")),
			Title:   lipgloss.NewStyle().Bold(true),
			Body:    lipgloss.NewStyle(),
		},
		Tabs: TabTheme{
			Active:   selected.Underline(true),
			Inactive: muted,
		},
		Row: RowTheme{
			Title:    lipgloss.NewStyle(),
			Selected: selected,
			Year:     muted,
			GlyphOn:  lipgloss.NewStyle().Foreground(lipgloss.Color("204")),
			GlyphOff: lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		},
		Toast: ToastTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("42")).
				Padding(0, 1),
			Exiting: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(lipgloss.Color("238")).
				Foreground(lipgloss.Color("244")).
				Padding(0, 1),
		},
		Footer: FooterTheme{
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		},
	}
}

var (
	voteLow  = colorful.Color{R: 0.86, G: 0.24, B: 0.24}
	voteMid  = colorful.Color{R: 0.93, G: 0.75, B: 0.2}
	voteHigh = colorful.Color{R: 0.25, G: 0.78, B: 0.4}
)

// VoteColor blends red through amber to green across a 0-10 vote average.
func VoteColor(v float64) lipgloss.Color {
	switch {
	case v < 0:
		v = 0
	case v > 10:
		v = 10
	}
	var c colorful.Color
	if v < 5 {
		c = voteLow.BlendLab(voteMid, v/5)
	} else {
		c = voteMid.BlendLab(voteHigh, (v-5)/5)
	}
	return lipgloss.Color(c.Clamped().Hex())
}

// Vote renders a coloured vote badge.
func Vote(v float64) string {
	if v <= 0 {
		return "  - "
	}
	return lipgloss.NewStyle().Foreground(VoteColor(v)).Render(fmt.Sprintf("★%.1f", v))
}
