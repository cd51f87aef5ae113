package timeutil

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"
)

// WeekdaySet is a set of days of the week. Duplicates cannot be represented.
type WeekdaySet uint8

var weekdayNames = [7]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// ParseWeekday resolves a weekday name ("monday") or its three letter prefix ("mon").
func ParseWeekday(s string) (time.Weekday, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, candidate := range weekdayNames {
		if name == candidate || (len(name) == 3 && strings.HasPrefix(candidate, name)) {
			return time.Weekday(i), nil
		}
	}
	return time.Sunday, fmt.Errorf("timeutil: unknown weekday %q", s)
}

// WeekdayName returns the lower-case name used on the wire.
func WeekdayName(d time.Weekday) string {
	return weekdayNames[d]
}

// NewWeekdaySet builds a set from the given days.
func NewWeekdaySet(days ...time.Weekday) WeekdaySet {
	var s WeekdaySet
	for _, d := range days {
		s = s.With(d)
	}
	return s
}

// ParseWeekdays parses weekday names into a set, rejecting repeated days.
func ParseWeekdays(names []string) (WeekdaySet, error) {
	var s WeekdaySet
	for _, n := range names {
		d, err := ParseWeekday(n)
		if err != nil {
			return 0, err
		}
		if s.Has(d) {
			return 0, fmt.Errorf("timeutil: duplicate weekday %q", n)
		}
		s = s.With(d)
	}
	return s, nil
}

// With returns s plus d.
func (s WeekdaySet) With(d time.Weekday) WeekdaySet {
	return s | 1<<uint(d)
}

// Has reports whether d is in s.
func (s WeekdaySet) Has(d time.Weekday) bool {
	return s&(1<<uint(d)) != 0
}

// Empty reports whether no day is set.
func (s WeekdaySet) Empty() bool {
	return s&0x7f == 0
}

// Len returns the number of days in s.
func (s WeekdaySet) Len() int {
	n := 0
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Has(d) {
			n++
		}
	}
	return n
}

// Days lists the days in s starting from Sunday.
func (s WeekdaySet) Days() []time.Weekday {
	days := make([]time.Weekday, 0, 7)
	for d := time.Sunday; d <= time.Saturday; d++ {
		if s.Has(d) {
			days = append(days, d)
		}
	}
	return days
}

// Names lists the wire names of the days in s.
func (s WeekdaySet) Names() []string {
	days := s.Days()
	names := make([]string, len(days))
	for i, d := range days {
		names[i] = weekdayNames[d]
	}
	return names
}

func (s WeekdaySet) String() string {
	return strings.Join(s.Names(), ",")
}

func (s WeekdaySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.Names())
}

func (s *WeekdaySet) UnmarshalJSON(b []byte) error {
	var names []string
	if err := json.Unmarshal(b, &names); err != nil {
		return err
	}
	parsed, err := ParseWeekdays(names)
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}
