package printers

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/abcinema/pkg/details"
	"tableflip.dev/abcinema/pkg/membership"
	"tableflip.dev/abcinema/pkg/movie"
)

// PrettyPrint renders lists and catalog results for the terminal.
type PrettyPrint struct {
	// Out defaults to color.Output.
	Out io.Writer
	// Width wraps long text; 0 means 80.
	Width int
}

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

func (pp *PrettyPrint) width() int {
	if pp.Width <= 0 {
		return 80
	}
	return pp.Width
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out())
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintln(pp.out(), " movie")
	default:
		_, _ = c.Fprintln(pp.out(), " movies")
	}
}

func (pp *PrettyPrint) none(text string) {
	f := color.New(color.Faint, color.Italic)
	_, _ = f.Fprintf(pp.out(), " %s\n\n", text)
}

// Entries prints a personal list as a table.
func (pp *PrettyPrint) Entries(t movie.ListType, entries ...movie.ListEntry) {
	if len(entries) == 0 {
		pp.none(t.EmptyText())
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	tbl.AddRow(bold("ID"), bold("Title"), bold("Year"), bold("Rating"), bold("Added"))
	for _, e := range entries {
		added := ""
		if !e.AddedAt.IsZero() {
			added = e.AddedAt.Local().Format("2006-01-02")
		}
		tbl.AddRow(e.ID, e.Title, e.Year(), Vote(e.VoteAverage), added)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Movies prints catalog results with their list membership.
func (pp *PrettyPrint) Movies(lists membership.Lists, movies ...movie.Movie) {
	if len(movies) == 0 {
		pp.none("No movies found")
		return
	}
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 48
	tbl.AddRow(bold("ID"), bold("Title"), bold("Year"), bold("Rating"), bold("Lists"))
	for _, m := range movies {
		marks := ""
		if lists != nil {
			marks = membership.New(m, lists, nil, nil).Compact()
		}
		tbl.AddRow(m.ID, m.Title, m.Year(), Vote(m.VoteAverage), marks)
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
	pp.NewLine()
}

// Counts prints the size of each list.
func (pp *PrettyPrint) Counts(counts map[movie.ListType]int) {
	tbl := uitable.New()
	tbl.Separator = "  "
	for _, t := range movie.AllListTypes() {
		tbl.AddRow(bold(t.Label()), counts[t])
	}
	_, _ = fmt.Fprintln(pp.out(), tbl)
}

// Recent prints the recent-search log.
func (pp *PrettyPrint) Recent(queries []string) {
	pp.Title("Recent Searches")
	if len(queries) == 0 {
		pp.none("none")
		return
	}
	for _, q := range queries {
		_, _ = fmt.Fprintf(pp.out(), "  %s\n", q)
	}
	pp.NewLine()
}

// Detail prints a movie page. Degraded sections are called out.
func (pp *PrettyPrint) Detail(p *details.Page, lists membership.Lists) {
	d := p.Details
	w := pp.out()

	heading := d.Title
	if y := d.Summary().Year(); y != "N/A" {
		heading = fmt.Sprintf("%s (%s)", d.Title, y)
	}
	pp.Title(heading)
	if d.Tagline != "" {
		_, _ = color.New(color.Italic, color.Faint).Fprintln(w, d.Tagline)
	}
	if lists != nil {
		_, _ = fmt.Fprintln(w, membership.New(d, lists, nil, nil).Compact())
	}
	pp.NewLine()

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold("Rating"), fmt.Sprintf("%s (%d votes)", Vote(d.VoteAverage), d.VoteCount))
	if !p.Ratings.Empty() {
		tbl.AddRow(bold("IMDb"), orNA(p.Ratings.IMDb))
		tbl.AddRow(bold("Rotten Tomatoes"), orNA(p.Ratings.RottenTomatoes))
		tbl.AddRow(bold("Metacritic"), orNA(p.Ratings.Metacritic))
	}
	tbl.AddRow(bold("Runtime"), details.FormatRuntime(d.Runtime))
	tbl.AddRow(bold("Released"), orNA(d.ReleaseDate))
	tbl.AddRow(bold("Genres"), genreNames(d.Genres))
	if dirs := p.Directors(); len(dirs) > 0 {
		names := make([]string, 0, len(dirs))
		for _, c := range dirs {
			names = append(names, c.Name)
		}
		tbl.AddRow(bold("Director"), strings.Join(names, ", "))
	}
	tbl.AddRow(bold("Budget"), details.FormatMoney(d.Budget))
	tbl.AddRow(bold("Revenue"), details.FormatMoney(d.Revenue))
	if u := p.TrailerURL(); u != "" {
		tbl.AddRow(bold("Trailer"), u)
	}
	_, _ = fmt.Fprintln(w, tbl)
	pp.NewLine()

	if d.Overview != "" {
		_, _ = fmt.Fprintln(w, wordwrap.String(d.Overview, pp.width()))
		pp.NewLine()
	}

	if cast := p.TopCast(8); len(cast) > 0 {
		pp.Title("Cast")
		ct := uitable.New()
		ct.Separator = "  "
		for _, c := range cast {
			ct.AddRow(c.Name, color.New(color.Faint).Sprint(c.Character))
		}
		_, _ = fmt.Fprintln(w, ct)
		pp.NewLine()
	}
	if len(p.Reviews) > 0 {
		pp.TitleWithCount("Reviews", p.TotalReviews)
		for _, r := range p.Reviews[:min(2, len(p.Reviews))] {
			_, _ = color.New(color.Bold).Fprintln(w, r.Author)
			_, _ = fmt.Fprintln(w, wordwrap.String(truncate(r.Content, 400), pp.width()))
			pp.NewLine()
		}
	}
	if len(p.Similar) > 0 {
		pp.Title("Similar")
		pp.Movies(lists, p.Similar[:min(6, len(p.Similar))]...)
	}
	if len(p.Recommendations) > 0 {
		pp.Title("Recommended")
		pp.Movies(lists, p.Recommendations[:min(6, len(p.Recommendations))]...)
	}
	for _, s := range p.Degraded {
		_, _ = color.New(color.FgYellow, color.Faint).Fprintf(w, "(%s unavailable)\n", s)
	}
}

// Person prints a cast or crew page: biography, then known-for and directed
// credits.
func (pp *PrettyPrint) Person(p *details.PersonPage, lists membership.Lists, now time.Time) {
	w := pp.out()
	pp.Title(p.Person.Name)
	if p.Person.KnownForDepartment != "" {
		_, _ = color.New(color.Faint).Fprintln(w, p.Person.KnownForDepartment)
	}
	pp.NewLine()

	tbl := uitable.New()
	tbl.Separator = "  "
	if p.Person.Birthday != nil && *p.Person.Birthday != "" {
		born := *p.Person.Birthday
		if age, ok := p.Age(now); ok {
			suffix := "old"
			if p.Person.Deathday != nil && *p.Person.Deathday != "" {
				suffix = "at death"
			}
			born = fmt.Sprintf("%s (%d years %s)", born, age, suffix)
		}
		tbl.AddRow(bold("Born"), born)
	}
	if p.Person.PlaceOfBirth != nil && *p.Person.PlaceOfBirth != "" {
		tbl.AddRow(bold("Birthplace"), *p.Person.PlaceOfBirth)
	}
	tbl.AddRow(bold("Acting credits"), len(p.Acting))
	if len(p.Directing) > 0 {
		tbl.AddRow(bold("Directing credits"), len(p.Directing))
	}
	_, _ = fmt.Fprintln(w, tbl)
	pp.NewLine()

	if p.Person.Biography != "" {
		pp.Title("Biography")
		_, _ = fmt.Fprintln(w, wordwrap.String(p.Person.Biography, pp.width()))
		pp.NewLine()
	}
	if known := p.KnownFor(20); len(known) > 0 {
		pp.Title("Known For")
		movies := make([]movie.Movie, 0, len(known))
		for _, c := range known {
			movies = append(movies, c.Movie)
		}
		pp.Movies(lists, movies...)
	}
	if len(p.Directing) > 0 {
		pp.Title("Directed")
		movies := make([]movie.Movie, 0, min(20, len(p.Directing)))
		for _, c := range p.Directing[:min(20, len(p.Directing))] {
			movies = append(movies, c.Movie)
		}
		pp.Movies(lists, movies...)
	}
	for _, s := range p.Degraded {
		_, _ = color.New(color.FgYellow, color.Faint).Fprintf(w, "(%s unavailable)\n", s)
	}
}

// Vote renders a 0-10 score with one decimal, coloured by value.
func Vote(v float64) string {
	if v <= 0 {
		return color.New(color.Faint).Sprint("N/A")
	}
	c := color.New(color.FgRed)
	switch {
	case v >= 7:
		c = color.New(color.FgGreen)
	case v >= 5:
		c = color.New(color.FgYellow)
	}
	return c.Sprintf("%.1f", v)
}

func bold(s string) string {
	return color.New(color.Bold).Sprint(s)
}

func orNA(s string) string {
	if s == "" {
		return "N/A"
	}
	return s
}

func genreNames(genres []movie.Genre) string {
	if len(genres) == 0 {
		return "N/A"
	}
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
	return string(r[:n]) + "..."
}
