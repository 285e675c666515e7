// Package app is the root Bubble Tea model: search bar, results, personal
// lists, detail view and the toast stack.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/reflow/truncate"

	appsvc "tableflip.dev/abcinema/pkg/app"
	"tableflip.dev/abcinema/pkg/movie"
	"tableflip.dev/abcinema/pkg/suggest"
	"tableflip.dev/abcinema/pkg/tui/components/detail"
	"tableflip.dev/abcinema/pkg/tui/components/movielist"
	"tableflip.dev/abcinema/pkg/tui/components/mylists"
	"tableflip.dev/abcinema/pkg/tui/components/searchbar"
	"tableflip.dev/abcinema/pkg/tui/components/toasts"
	"tableflip.dev/abcinema/pkg/tui/events"
	"tableflip.dev/abcinema/pkg/tui/theme"
)

type pane int

const (
	paneResults pane = iota
	paneLists
	paneDetail
)

// Model is the root model.
type Model struct {
	ctx   context.Context
	svc   *appsvc.Service
	theme theme.Theme

	search  *searchbar.Model
	results *movielist.Model
	lists   *mylists.Model
	detail  *detail.Model
	toasts  *toasts.Model

	pane pane
	back pane

	resultsTitle string
	resultsQuery string
	resultsPage  int
	resultsTotal int
	resultsErr   error
	resultsSeq   int
	loading      bool

	width  int
	height int
}

// New builds the root model over svc. engine drives the search bar.
func New(ctx context.Context, svc *appsvc.Service, engine *suggest.Engine) *Model {
	th := theme.Default()
	deps := movielist.Deps{Lists: svc.Lists, Bus: svc.Bus, Toasts: svc.Toasts}
	results := movielist.New(deps, th)
	results.SetEmptyText("No movies found")
	return &Model{
		ctx:     ctx,
		svc:     svc,
		theme:   th,
		search:  searchbar.New(engine, th),
		results: results,
		lists:   mylists.New(svc.Lists, deps, th),
		detail:  detail.New(deps, th),
		toasts:  toasts.New(th),
	}
}

// Init loads the trending chart.
func (m *Model) Init() tea.Cmd {
	return m.loadTrending()
}

// Update routes messages to the focused component.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.layout()
		return m, nil

	case events.SearchChangedMsg:
		m.search.SetState(msg.State)
		return m, nil

	case events.ToastsChangedMsg:
		m.toasts.SetMessages(msg.Messages)
		return m, nil

	case events.ListsChangedMsg:
		m.lists.Refresh()
		m.results.Refresh()
		m.detail.Refresh()
		return m, nil

	case events.ResultsMsg:
		if msg.Seq != m.resultsSeq {
			return m, nil
		}
		m.loading = false
		m.resultsTitle = msg.Title
		m.resultsQuery = msg.Query
		m.resultsErr = msg.Err
		if msg.Page != nil {
			m.resultsPage = msg.Page.Page
			m.resultsTotal = msg.Page.TotalPages
			m.results.SetMovies(msg.Page.Results)
		} else {
			m.results.SetMovies(nil)
		}
		return m, nil

	case events.DetailMsg:
		m.detail.SetPage(msg.ID, msg.Page, msg.Err)
		return m, nil

	case events.OpenDetailMsg:
		return m, m.openDetail(msg.ID)

	case events.RemoveMsg:
		m.svc.Remove(msg.List, msg.ID)
		return m, nil

	case tea.KeyMsg:
		return m, m.handleKey(msg)
	}

	if m.search.Focused() {
		_, cmd := m.search.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	key := msg.String()
	if key == "ctrl+c" {
		return tea.Quit
	}

	if m.search.Focused() {
		nav, cmd := m.search.Update(msg)
		switch nav.Kind {
		case suggest.NavDetail:
			return tea.Batch(cmd, m.openDetail(nav.MovieID))
		case suggest.NavResults:
			m.pane = paneResults
			return tea.Batch(cmd, m.loadSearch(nav.Query, 1))
		}
		return cmd
	}
	if m.pane == paneLists && m.lists.Filtering() {
		return m.lists.Update(msg)
	}

	switch key {
	case "q":
		return tea.Quit
	case "ctrl+f":
		return m.search.Focus()
	case "/":
		if m.pane != paneLists {
			return m.search.Focus()
		}
	case "ctrl+l":
		if m.pane == paneLists {
			m.pane = paneResults
		} else {
			m.pane = paneLists
			m.lists.Reload()
		}
		return nil
	case "esc":
		if m.pane == paneDetail {
			m.pane = m.back
			return nil
		}
	}

	switch m.pane {
	case paneResults:
		switch key {
		case "n":
			if m.resultsQuery != "" && m.resultsPage < m.resultsTotal {
				return m.loadSearch(m.resultsQuery, m.resultsPage+1)
			}
			return nil
		case "p":
			if m.resultsQuery != "" && m.resultsPage > 1 {
				return m.loadSearch(m.resultsQuery, m.resultsPage-1)
			}
			return nil
		case "t":
			return m.loadTrending()
		}
		return m.results.Update(msg)
	case paneLists:
		return m.lists.Update(msg)
	case paneDetail:
		return m.detail.Update(msg)
	}
	return nil
}

func (m *Model) openDetail(id int) tea.Cmd {
	if m.pane != paneDetail {
		m.back = m.pane
	}
	m.pane = paneDetail
	m.detail.SetLoading(id)

	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		if _, err := svc.Catalog(); err != nil {
			return events.DetailMsg{ID: id, Err: err}
		}
		page, err := svc.Details.Load(ctx, id)
		if err != nil {
			slog.Warn("tui.detail_failed", "movie.id", id, "err", err)
		}
		return events.DetailMsg{ID: id, Page: page, Err: err}
	}
}

func (m *Model) loadSearch(query string, page int) tea.Cmd {
	m.resultsSeq++
	m.loading = true
	seq, svc, ctx := m.resultsSeq, m.svc, m.ctx
	title := fmt.Sprintf("Results for %q", query)
	return func() tea.Msg {
		catalog, err := svc.Catalog()
		if err != nil {
			return events.ResultsMsg{Seq: seq, Title: title, Query: query, Err: err}
		}
		p, err := catalog.SearchMovies(ctx, query, page)
		return events.ResultsMsg{Seq: seq, Title: title, Query: query, Page: p, Err: err}
	}
}

func (m *Model) loadTrending() tea.Cmd {
	m.resultsSeq++
	m.loading = true
	seq, svc, ctx := m.resultsSeq, m.svc, m.ctx
	return func() tea.Msg {
		catalog, err := svc.Catalog()
		if err != nil {
			return events.ResultsMsg{Seq: seq, Title: "Trending this week", Err: err}
		}
		results, err := catalog.Trending(ctx)
		page := &movie.Page[movie.Movie]{Page: 1, Results: results, TotalPages: 1, TotalResults: len(results)}
		return events.ResultsMsg{Seq: seq, Title: "Trending this week", Page: page, Err: err}
	}
}

func (m *Model) bodyHeight() int {
	return max(m.height-2, 1)
}

func (m *Model) layout() {
	h := m.bodyHeight()
	m.search.SetWidth(m.width)
	m.results.SetSize(m.width, max(h-1, 1))
	m.lists.SetSize(m.width, h)
	m.detail.SetSize(m.width, h)
}

// View renders the header, the active pane and the footer, with the dropdown
// and toasts drawn over the pane.
func (m *Model) View() string {
	if m.width == 0 {
		return ""
	}
	body := strings.Split(m.paneView(), "\n")
	h := m.bodyHeight()
	for len(body) < h {
		body = append(body, "")
	}
	body = body[:h]

	if dd := m.search.Dropdown(); dd != "" {
		body = overlayTop(body, strings.Split(dd, "\n"))
	}
	if t := m.toasts.View(); t != "" {
		body = overlayBottomRight(body, strings.Split(t, "\n"), m.width)
	}

	return strings.Join([]string{
		m.header(),
		strings.Join(body, "\n"),
		m.footer(),
	}, "\n")
}

func (m *Model) header() string {
	counts := m.svc.Lists.Counts()
	summary := fmt.Sprintf("♥ %d  ⚑ %d  ◉ %d",
		counts[movie.Favorites], counts[movie.Watchlist], counts[movie.Watched])
	summary = m.theme.Footer.Status.Render(summary)
	input := m.search.View()
	gap := m.width - lipgloss.Width(input) - lipgloss.Width(summary)
	if gap < 1 {
		return input
	}
	return input + strings.Repeat(" ", gap) + summary
}

func (m *Model) paneView() string {
	switch m.pane {
	case paneLists:
		return m.lists.View()
	case paneDetail:
		return m.detail.View()
	}
	title := m.theme.Panel.Title.Render(m.resultsTitle)
	switch {
	case m.loading:
		title += m.theme.Search.Muted.Render("  Searching...")
	case m.resultsErr != nil:
		title += m.theme.Search.Muted.Render("  " + m.resultsErr.Error())
	case m.resultsTotal > 1:
		title += m.theme.Search.Muted.Render(fmt.Sprintf("  page %d of %d", m.resultsPage, m.resultsTotal))
	}
	return title + "\n" + m.results.View()
}

func (m *Model) footer() string {
	var help string
	switch {
	case m.search.Focused():
		help = "↑/↓ select · enter open · esc clear"
	case m.pane == paneLists:
		help = "1-3 tabs · s sort · r reverse · / filter · x remove · f/w/v toggle · enter open · ctrl+l results · q quit"
	case m.pane == paneDetail:
		help = "f/w/v toggle · ↑/↓ scroll · esc back · q quit"
	default:
		help = "/ search · enter open · f/w/v toggle · n/p page · t trending · ctrl+l my lists · q quit"
	}
	return m.theme.Footer.Help.Render(truncate.StringWithTail(help, uint(max(m.width, 1)), "…"))
}

func overlayTop(base, top []string) []string {
	for i := 0; i < len(top) && i < len(base); i++ {
		base[i] = top[i]
	}
	return base
}

func overlayBottomRight(base, block []string, width int) []string {
	start := len(base) - len(block)
	for i, line := range block {
		row := start + i
		if row < 0 {
			continue
		}
		w := lipgloss.Width(line)
		keep := max(width-w, 0)
		left := truncate.String(base[row], uint(keep))
		pad := keep - lipgloss.Width(left)
		base[row] = left + strings.Repeat(" ", pad) + line
	}
	return base
}
