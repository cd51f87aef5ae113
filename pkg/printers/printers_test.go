package printers

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/pilot/pkg/admin"
	"tableflip.dev/pilot/pkg/calendar"
	"tableflip.dev/pilot/pkg/event"
	"tableflip.dev/pilot/pkg/goal"
	"tableflip.dev/pilot/pkg/timeutil"
)

func init() {
	color.NoColor = true
}

func mustEvent(t *testing.T, title, date, start, end string) *event.Event {
	t.Helper()
	e, err := event.New(title, timeutil.MustDate(date), timeutil.MustClock(start), timeutil.MustClock(end), event.CategoryWork)
	if err != nil {
		t.Fatalf("event: %v", err)
	}
	return e
}

func TestCalendarPrintsSixWeeks(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	v := calendar.NewView(func() time.Time { return time.Date(2024, time.January, 15, 9, 0, 0, 0, time.Local) })
	pp.Calendar(v, nil)

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(lines) != 8 {
		t.Fatalf("lines = %d, want 8:\n%s", len(lines), buf.String())
	}
	if strings.TrimSpace(lines[0]) != "January 2024" {
		t.Fatalf("title = %q", lines[0])
	}
	if lines[2] != "31  1  2  3  4  5  6" {
		t.Fatalf("first week = %q", lines[2])
	}
	if lines[7] != " 4  5  6  7  8  9 10" {
		t.Fatalf("last week = %q", lines[7])
	}
}

func TestAgenda(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	e := mustEvent(t, "standup", "2024-01-15", "09:00", "09:30")
	e.SetProgress(50)
	pp.Agenda(timeutil.MustDate("2024-01-15"), []*event.Event{e})
	out := buf.String()
	for _, want := range []string{"Monday, January 15 2024", "1 event", "09:00-09:30 standup", "(50%)"} {
		if !strings.Contains(out, want) {
			t.Errorf("agenda missing %q:\n%s", want, out)
		}
	}

	buf.Reset()
	pp.Agenda(timeutil.MustDate("2024-01-16"), nil)
	if !strings.Contains(buf.String(), "none") {
		t.Fatalf("empty agenda = %q", buf.String())
	}
}

func TestProgressBar(t *testing.T) {
	tests := []struct {
		p    int
		want string
	}{
		{0, "░░░░░░░░░░   0%"},
		{50, "█████░░░░░  50%"},
		{140, "██████████ 100%"},
	}
	for _, tt := range tests {
		if got := ProgressBar(tt.p, 10); got != tt.want {
			t.Errorf("ProgressBar(%d) = %q, want %q", tt.p, got, tt.want)
		}
	}
}

func TestAIGoal(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	s, _ := goal.FindSuggestion("1")
	g, err := goal.FromSuggestion(s, timeutil.MustDate("2024-01-01"),
		goal.Schedule{Days: timeutil.NewWeekdaySet(time.Monday), Time: timeutil.MustClock("07:00")},
		time.Date(2024, time.January, 1, 6, 0, 0, 0, time.UTC))
	if err != nil {
		t.Fatalf("goal: %v", err)
	}
	pp.AIGoal(g)
	out := buf.String()
	for _, want := range []string{g.Title, "week 1 of 4", "Week 1", "Coach"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestUsers(t *testing.T) {
	var buf bytes.Buffer
	pp := &PrettyPrint{Out: &buf}
	pp.Users([]admin.User{
		{ID: "1", Email: "ana@pilot.com", FullName: "Ana", Suspended: true},
		{ID: "2", Email: "bruno@pilot.com"},
	})
	out := buf.String()
	for _, want := range []string{"2 users", "ana@pilot.com", "suspended", "active", "never"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}
