package calendar

import (
	"strings"
	"testing"
	"time"

	"tableflip.dev/pilot/pkg/event"
	"tableflip.dev/pilot/pkg/timeutil"
)

func fixedClock(date string) func() time.Time {
	d := timeutil.MustDate(date)
	return func() time.Time {
		return time.Date(d.Year, d.Month, d.Day, 10, 30, 0, 0, time.Local)
	}
}

func mustEvent(t *testing.T, title, date, start, end string) *event.Event {
	t.Helper()
	e, err := event.New(title, timeutil.MustDate(date), timeutil.MustClock(start), timeutil.MustClock(end), event.CategoryWork)
	if err != nil {
		t.Fatalf("new event: %v", err)
	}
	return e
}

func TestGridAlwaysHasFortyTwoCells(t *testing.T) {
	start := Month{Year: 2023, Month: time.January}
	for i := 0; i < 36; i++ {
		m := start.Add(i)
		cells := Grid(m, nil)
		if len(cells) != GridCells {
			t.Fatalf("%s: got %d cells", m, len(cells))
		}
		if cells[0].Date.Weekday() != time.Sunday {
			t.Fatalf("%s: grid starts on %s", m, cells[0].Date.Weekday())
		}
		for j := 1; j < len(cells); j++ {
			if cells[j-1].Date.AddDays(1) != cells[j].Date {
				t.Fatalf("%s: cells %d and %d are not consecutive", m, j-1, j)
			}
		}
	}
}

func TestGridJanuary2024(t *testing.T) {
	cells := Grid(Month{Year: 2024, Month: time.January}, nil)

	if got := cells[0].Date; got != timeutil.MustDate("2023-12-31") || cells[0].InMonth {
		t.Fatalf("first cell = %s (in month %v)", got, cells[0].InMonth)
	}
	if got := cells[1].Date; got != timeutil.MustDate("2024-01-01") || !cells[1].InMonth {
		t.Fatalf("second cell = %s", got)
	}
	if got := cells[31].Date; got != timeutil.MustDate("2024-01-31") {
		t.Fatalf("cell 31 = %s", got)
	}
	if got := cells[41].Date; got != timeutil.MustDate("2024-02-10") || cells[41].InMonth {
		t.Fatalf("last cell = %s", got)
	}
}

func TestGridLeapFebruary(t *testing.T) {
	count := func(m Month) int {
		n := 0
		for _, c := range Grid(m, nil) {
			if c.InMonth {
				n++
			}
		}
		return n
	}
	if got := count(Month{Year: 2024, Month: time.February}); got != 29 {
		t.Fatalf("2024-02 has %d in-month cells, want 29", got)
	}
	if got := count(Month{Year: 2023, Month: time.February}); got != 28 {
		t.Fatalf("2023-02 has %d in-month cells, want 28", got)
	}
}

func TestGridAttachesEventsByDate(t *testing.T) {
	a := mustEvent(t, "standup", "2024-01-15", "09:00", "09:30")
	b := mustEvent(t, "spillover", "2024-02-02", "12:00", "13:00")
	cells := Grid(Month{Year: 2024, Month: time.January}, []*event.Event{a, b})

	for _, c := range cells {
		switch c.Date {
		case a.Date:
			if len(c.Events) != 1 || c.Events[0] != a {
				t.Fatalf("expected standup on %s, got %v", c.Date, c.Events)
			}
		case b.Date:
			if len(c.Events) != 1 || c.Events[0] != b {
				t.Fatalf("expected spillover on %s, got %v", c.Date, c.Events)
			}
		default:
			if len(c.Events) != 0 {
				t.Fatalf("unexpected events on %s: %v", c.Date, c.Events)
			}
		}
	}
}

func TestMonthNavigationIsReversible(t *testing.T) {
	dec := Month{Year: 2024, Month: time.December}
	if got := dec.Next(); got != (Month{Year: 2025, Month: time.January}) {
		t.Fatalf("next of %s = %s", dec, got)
	}
	if got := dec.Next().Prev(); got != dec {
		t.Fatalf("next then prev = %s", got)
	}
	jan := Month{Year: 2024, Month: time.January}
	if got := jan.Prev(); got != (Month{Year: 2023, Month: time.December}) {
		t.Fatalf("prev of %s = %s", jan, got)
	}
	if got := jan.Add(-25); got != (Month{Year: 2021, Month: time.December}) {
		t.Fatalf("add -25 = %s", got)
	}
}

func TestParseMonth(t *testing.T) {
	for _, in := range []string{"2024-03", "March 2024"} {
		m, err := ParseMonth(in)
		if err != nil {
			t.Fatalf("%q: %v", in, err)
		}
		if m != (Month{Year: 2024, Month: time.March}) {
			t.Fatalf("%q parsed to %s", in, m)
		}
	}
	if _, err := ParseMonth("2024-13"); err == nil {
		t.Fatalf("expected error")
	}
}

func TestViewSelectionAndAgenda(t *testing.T) {
	v := NewView(fixedClock("2024-01-15"))
	if v.Month() != (Month{Year: 2024, Month: time.January}) {
		t.Fatalf("initial month = %s", v.Month())
	}
	if !v.IsSelected(timeutil.MustDate("2024-01-15")) || !v.IsToday(timeutil.MustDate("2024-01-15")) {
		t.Fatalf("today should start selected")
	}

	afternoon := mustEvent(t, "review", "2024-01-15", "14:00", "15:00")
	morning := mustEvent(t, "standup", "2024-01-15", "09:00", "09:30")
	other := mustEvent(t, "planning", "2024-01-16", "10:00", "11:00")
	events := []*event.Event{afternoon, morning, other}

	agenda := v.Agenda(events)
	if len(agenda) != 2 || agenda[0] != afternoon || agenda[1] != morning {
		t.Fatalf("agenda should keep collection order, got %v", agenda)
	}
	sorted := v.AgendaByStart(events)
	if sorted[0] != morning || sorted[1] != afternoon {
		t.Fatalf("agenda by start = %v", sorted)
	}

	v.Select(timeutil.MustDate("2024-01-16"))
	v.Select(timeutil.MustDate("2024-01-16"))
	if got := v.Agenda(events); len(got) != 1 || got[0] != other {
		t.Fatalf("agenda for 16th = %v", got)
	}
	v.Select(timeutil.MustDate("2024-01-20"))
	if got := v.Agenda(events); got == nil || len(got) != 0 {
		t.Fatalf("expected empty non-nil agenda, got %v", got)
	}
}

func TestViewNavigationKeepsSelection(t *testing.T) {
	v := NewView(fixedClock("2024-12-20"))
	v.NextMonth()
	if v.Month() != (Month{Year: 2025, Month: time.January}) {
		t.Fatalf("month after next = %s", v.Month())
	}
	if !v.IsSelected(timeutil.MustDate("2024-12-20")) {
		t.Fatalf("selection moved with navigation")
	}
	v.PrevMonth()
	if v.Month() != (Month{Year: 2024, Month: time.December}) {
		t.Fatalf("month after prev = %s", v.Month())
	}
	v.SetMonth(Month{Year: 2020, Month: time.May})
	v.GoToday()
	if v.Month() != (Month{Year: 2024, Month: time.December}) || v.Selected() != timeutil.MustDate("2024-12-20") {
		t.Fatalf("go today = %s / %s", v.Month(), v.Selected())
	}
}

func TestIsTodayComparesCalendarDay(t *testing.T) {
	v := NewView(fixedClock("2024-01-15"))
	if v.IsToday(timeutil.MustDate("2023-01-15")) {
		t.Fatalf("a different year is not today")
	}
	if v.IsToday(timeutil.MustDate("2024-02-15")) {
		t.Fatalf("a different month is not today")
	}
}

func TestRenderPlain(t *testing.T) {
	v := NewView(fixedClock("2024-01-15"))
	out := Render(v, nil, PlainOptions())
	lines := strings.Split(out, "\n")
	if len(lines) != 2+GridRows {
		t.Fatalf("expected %d lines, got %d:\n%s", 2+GridRows, len(lines), out)
	}
	if !strings.Contains(lines[0], "January 2024") {
		t.Fatalf("missing title: %q", lines[0])
	}
	if lines[1] != weekHeader {
		t.Fatalf("header = %q", lines[1])
	}
	if lines[2] != "31  1  2  3  4  5  6" {
		t.Fatalf("first week = %q", lines[2])
	}
}
