package lists

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"tableflip.dev/abcinema/pkg/movie"
)

const day = 24 * time.Hour

var (
	windowSegment = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	windowUnits   = map[string]time.Duration{
		"h":      time.Hour,
		"hr":     time.Hour,
		"hrs":    time.Hour,
		"hour":   time.Hour,
		"hours":  time.Hour,
		"d":      day,
		"day":    day,
		"days":   day,
		"w":      7 * day,
		"wk":     7 * day,
		"week":   7 * day,
		"weeks":  7 * day,
		"mo":     30 * day,
		"month":  30 * day,
		"months": 30 * day,
		"y":      365 * day,
		"yr":     365 * day,
		"year":   365 * day,
		"years":  365 * day,
	}
	windowLabels = []struct {
		label string
		value time.Duration
	}{
		{"y", 365 * day},
		{"mo", 30 * day},
		{"w", 7 * day},
		{"d", day},
		{"h", time.Hour},
	}
)

// ParseWindow reads a look-back window such as "2w", "3mo" or "1y2mo" and
// returns it with a compact canonical label. Months are 30 days and years
// 365.
func ParseWindow(input string) (time.Duration, string, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		return 0, "", fmt.Errorf("lists: empty window")
	}
	var total time.Duration
	for remaining != "" {
		m := windowSegment.FindStringSubmatch(remaining)
		if len(m) != 3 {
			return 0, "", fmt.Errorf("lists: invalid window segment %q", strings.TrimSpace(remaining))
		}
		n, err := strconv.ParseInt(m[1], 10, 64)
		if err != nil {
			return 0, "", fmt.Errorf("lists: invalid window value %q: %w", m[1], err)
		}
		unit, ok := windowUnits[m[2]]
		if !ok {
			return 0, "", fmt.Errorf("lists: unsupported window unit %q", m[2])
		}
		total += time.Duration(n) * unit
		remaining = remaining[len(m[0]):]
	}
	if total <= 0 {
		return 0, "", fmt.Errorf("lists: window must be greater than zero")
	}
	return total, FormatWindow(total), nil
}

// FormatWindow renders d with year, month, week, day and hour tokens.
func FormatWindow(d time.Duration) string {
	var b strings.Builder
	for _, u := range windowLabels {
		if d < u.value {
			continue
		}
		n := d / u.value
		d -= n * u.value
		fmt.Fprintf(&b, "%d%s", n, u.label)
	}
	if b.Len() == 0 {
		return "0h"
	}
	return b.String()
}

// AddedSince keeps the entries added at or after cutoff, preserving order.
func AddedSince(entries []movie.ListEntry, cutoff time.Time) []movie.ListEntry {
	out := make([]movie.ListEntry, 0, len(entries))
	for _, e := range entries {
		if !e.AddedAt.Before(cutoff) {
			out = append(out, e)
		}
	}
	return out
}
