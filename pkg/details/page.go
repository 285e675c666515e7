package details

import (
	"fmt"

	"tableflip.dev/abcinema/pkg/tmdb"
)

// Trailer picks the official YouTube trailer, then any YouTube trailer, then
// any YouTube video.
func (p *Page) Trailer() (tmdb.Video, bool) {
	match := func(ok func(v tmdb.Video) bool) (tmdb.Video, bool) {
		for _, v := range p.Videos {
			if v.Site == "YouTube" && ok(v) {
				return v, true
			}
		}
		return tmdb.Video{}, false
	}
	if v, ok := match(func(v tmdb.Video) bool { return v.Type == "Trailer" && v.Official }); ok {
		return v, true
	}
	if v, ok := match(func(v tmdb.Video) bool { return v.Type == "Trailer" }); ok {
		return v, true
	}
	return match(func(tmdb.Video) bool { return true })
}

// TrailerURL is the watch link of Trailer, or "".
func (p *Page) TrailerURL() string {
	v, ok := p.Trailer()
	if !ok {
		return ""
	}
	return "https://www.youtube.com/watch?v=" + v.Key
}

// Directors returns everyone credited with the Director job.
func (p *Page) Directors() []tmdb.CrewMember {
	var out []tmdb.CrewMember
	for _, c := range p.Credits.Crew {
		if c.Job == "Director" {
			out = append(out, c)
		}
	}
	return out
}

// Writers returns up to three members of the writing department.
func (p *Page) Writers() []tmdb.CrewMember {
	var out []tmdb.CrewMember
	for _, c := range p.Credits.Crew {
		if c.Department == "Writing" {
			out = append(out, c)
			if len(out) == 3 {
				break
			}
		}
	}
	return out
}

// TopCast returns the first n billed cast members.
func (p *Page) TopCast(n int) []tmdb.CastMember {
	if n < 0 || n > len(p.Credits.Cast) {
		n = len(p.Credits.Cast)
	}
	return p.Credits.Cast[:n]
}

// FormatRuntime renders minutes as "2h 28m".
func FormatRuntime(min int) string {
	if min <= 0 {
		return "N/A"
	}
	h, m := min/60, min%60
	if h > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dm", m)
}

// FormatMoney renders dollars in millions, e.g. "$160.0M".
func FormatMoney(v int64) string {
	if v <= 0 {
		return "N/A"
	}
	return fmt.Sprintf("$%.1fM", float64(v)/1_000_000)
}
