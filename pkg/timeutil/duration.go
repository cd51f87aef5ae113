package timeutil

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// DefaultWindow is the report window used when none is given.
const DefaultWindow = "1w"

var (
	windowPattern = regexp.MustCompile(`^\s*(\d+)\s*([a-z]+)`)
	windowUnits   = map[string]string{
		"d": "d", "day": "d", "days": "d",
		"w": "w", "wk": "w", "wks": "w", "week": "w", "weeks": "w",
		"m": "m", "mo": "m", "month": "m", "months": "m",
	}
)

// ErrEmptyWindow is returned for windows that add up to nothing, like "0d".
var ErrEmptyWindow = errors.New("window must cover at least one day")

// Window is a span of calendar time counted back from now. Months step on
// the calendar, so one month back from March 31st is February 29th in 2024.
type Window struct {
	Months int `json:"months,omitempty"`
	Weeks  int `json:"weeks,omitempty"`
	Days   int `json:"days,omitempty"`
}

// ParseWindow reads windows such as "3d", "2w" or "1m1w". Empty input means
// DefaultWindow.
func ParseWindow(input string) (Window, error) {
	remaining := strings.ToLower(strings.TrimSpace(input))
	if remaining == "" {
		remaining = DefaultWindow
	}

	var w Window
	for strings.TrimSpace(remaining) != "" {
		matches := windowPattern.FindStringSubmatch(remaining)
		if len(matches) != 3 {
			return Window{}, fmt.Errorf("invalid window segment %q", strings.TrimSpace(remaining))
		}
		n, err := strconv.Atoi(matches[1])
		if err != nil {
			return Window{}, fmt.Errorf("invalid window value %q: %w", matches[1], err)
		}
		switch windowUnits[matches[2]] {
		case "m":
			w.Months += n
		case "w":
			w.Weeks += n
		case "d":
			w.Days += n
		default:
			return Window{}, fmt.Errorf("unsupported window unit %q, use d, w or m", matches[2])
		}
		remaining = remaining[len(matches[0]):]
	}
	if w.Months == 0 && w.Weeks == 0 && w.Days == 0 {
		return Window{}, ErrEmptyWindow
	}
	return w, nil
}

// Since returns the start of the window that ends at until.
func (w Window) Since(until time.Time) time.Time {
	y, m, d := until.Date()
	h, mi, sec := until.Clock()
	back := time.Date(y, m-time.Month(w.Months), 1, 0, 0, 0, 0, until.Location())
	if last := DaysIn(back.Year(), back.Month()); d > last {
		d = last
	}
	start := time.Date(back.Year(), back.Month(), d, h, mi, sec, until.Nanosecond(), until.Location())
	return start.AddDate(0, 0, -(7*w.Weeks + w.Days))
}

// String renders the window compactly, e.g. "1m2w3d".
func (w Window) String() string {
	var b strings.Builder
	for _, part := range []struct {
		n    int
		unit string
	}{{w.Months, "m"}, {w.Weeks, "w"}, {w.Days, "d"}} {
		if part.n > 0 {
			fmt.Fprintf(&b, "%d%s", part.n, part.unit)
		}
	}
	if b.Len() == 0 {
		return "0d"
	}
	return b.String()
}
