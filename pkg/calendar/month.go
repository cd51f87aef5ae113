// Package calendar builds month grids, tracks day selection and derives the
// per-day agenda from a collection of events.
package calendar

import (
	"fmt"
	"strings"
	"time"

	"tableflip.dev/pilot/pkg/timeutil"
)

const (
	layoutMonth     = "2006-01"
	layoutMonthName = "January 2006"
)

// Month identifies a calendar month.
type Month struct {
	Year  int
	Month time.Month
}

// MonthOf returns the month containing d.
func MonthOf(d timeutil.Date) Month {
	return Month{Year: d.Year, Month: d.Month}
}

// ParseMonth accepts "2006-01" or "January 2006".
func ParseMonth(s string) (Month, error) {
	s = strings.TrimSpace(s)
	for _, layout := range []string{layoutMonth, layoutMonthName} {
		if t, err := time.Parse(layout, s); err == nil {
			return Month{Year: t.Year(), Month: t.Month()}, nil
		}
	}
	return Month{}, fmt.Errorf("calendar: invalid month %q", s)
}

// Add shifts m by n months, rolling over year boundaries.
func (m Month) Add(n int) Month {
	idx := m.Year*12 + int(m.Month-1) + n
	year := idx / 12
	month := idx % 12
	if month < 0 {
		month += 12
		year--
	}
	return Month{Year: year, Month: time.Month(month + 1)}
}

// Next returns the following month.
func (m Month) Next() Month { return m.Add(1) }

// Prev returns the preceding month.
func (m Month) Prev() Month { return m.Add(-1) }

// First returns the first day of m.
func (m Month) First() timeutil.Date {
	return timeutil.Date{Year: m.Year, Month: m.Month, Day: 1}
}

// Days returns the number of days in m.
func (m Month) Days() int {
	return timeutil.DaysIn(m.Year, m.Month)
}

// Offset returns how many days of the previous month lead the grid, which is
// the weekday of the 1st with Sunday as zero.
func (m Month) Offset() int {
	return int(m.First().Weekday())
}

// Contains reports whether d falls in m.
func (m Month) Contains(d timeutil.Date) bool {
	return d.Year == m.Year && d.Month == m.Month
}

// Title renders "January 2024".
func (m Month) Title() string {
	return fmt.Sprintf("%s %d", m.Month, m.Year)
}

func (m Month) String() string {
	return fmt.Sprintf("%04d-%02d", m.Year, int(m.Month))
}
