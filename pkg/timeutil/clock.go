package timeutil

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

const layoutClock = "15:04"

// Clock is a wall-clock time of day with minute precision, stored as minutes
// after midnight.
type Clock int

// ParseClock parses an HH:MM string.
func ParseClock(s string) (Clock, error) {
	t, err := time.Parse(layoutClock, strings.TrimSpace(s))
	if err != nil {
		return 0, fmt.Errorf("timeutil: invalid clock %q: %w", s, err)
	}
	return NewClock(t.Hour(), t.Minute()), nil
}

// MustClock parses s and panics on error. Intended for tests and fixtures.
func MustClock(s string) Clock {
	c, err := ParseClock(s)
	if err != nil {
		panic(err)
	}
	return c
}

// EndOfDay is the last minute of the day, 23:59.
const EndOfDay = Clock(24*60 - 1)

// Plus returns c moved on by n minutes, held at EndOfDay.
func (c Clock) Plus(n int) Clock {
	if end := c + Clock(n); end < EndOfDay {
		return end
	}
	return EndOfDay
}

// NewClock builds a Clock from an hour and minute.
func NewClock(hour, minute int) Clock {
	return Clock(hour*60 + minute)
}

// Valid reports whether c falls inside a single day.
func (c Clock) Valid() bool {
	return c >= 0 && c < 24*60
}

// Hour returns the hour component.
func (c Clock) Hour() int { return int(c) / 60 }

// Minute returns the minute component.
func (c Clock) Minute() int { return int(c) % 60 }

// On returns the instant of c on date d in loc.
func (c Clock) On(d Date, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	return time.Date(d.Year, d.Month, d.Day, c.Hour(), c.Minute(), 0, 0, loc)
}

// Duration returns the span from c to end.
func (c Clock) Duration(end Clock) time.Duration {
	return time.Duration(end-c) * time.Minute
}

func (c Clock) String() string {
	return fmt.Sprintf("%02d:%02d", c.Hour(), c.Minute())
}

func (c Clock) MarshalJSON() ([]byte, error) {
	return json.Marshal(c.String())
}

func (c *Clock) UnmarshalJSON(b []byte) error {
	var s string
	if err := json.Unmarshal(b, &s); err != nil {
		return err
	}
	parsed, err := ParseClock(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
