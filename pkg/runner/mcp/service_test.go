package mcp

import (
	"context"
	"strings"
	"testing"
	"time"

	"tableflip.dev/pilot/pkg/app"
	"tableflip.dev/pilot/pkg/goal"
	"tableflip.dev/pilot/pkg/store"
	"tableflip.dev/pilot/pkg/timeutil"
)

var fixedNow = time.Date(2024, time.January, 15, 10, 0, 0, 0, time.Local)

func newTestService(t *testing.T) *Service {
	t.Helper()
	clock := func() time.Time { return fixedNow }
	return NewService(&app.Service{
		Persistence: store.NewMemory(),
		Session:     app.NewSession(clock),
		Now:         clock,
	})
}

func TestAddEventAndAgenda(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)

	for _, opts := range []AddEventOptions{
		{Title: "review", Start: "14:00", End: "15:00", Category: "work"},
		{Title: "lunch", Start: "12:00", End: "13:00", Category: "meals"},
	} {
		if _, err := svc.AddEvent(ctx, opts); err != nil {
			t.Fatalf("add %s: %v", opts.Title, err)
		}
	}
	if _, err := svc.AddEvent(ctx, AddEventOptions{Title: "bad", Start: "10:00", End: "09:00"}); err == nil {
		t.Fatalf("expected error for end before start")
	}
	if _, err := svc.AddEvent(ctx, AddEventOptions{Title: "bad", Start: "10:00", End: "11:00", Category: "chores"}); err == nil {
		t.Fatalf("expected error for unknown category")
	}

	agenda, err := svc.Agenda("", false)
	if err != nil {
		t.Fatalf("agenda: %v", err)
	}
	if agenda.Date != "2024-01-15" || agenda.Count != 2 || agenda.Events[0].Title != "review" {
		t.Fatalf("agenda = %+v", agenda)
	}
	sorted, err := svc.Agenda("2024-01-15", true)
	if err != nil {
		t.Fatalf("agenda: %v", err)
	}
	if sorted.Events[0].Title != "lunch" {
		t.Fatalf("sorted agenda = %+v", sorted.Events)
	}
	if _, err := svc.Agenda("15/01/2024", false); err == nil {
		t.Fatalf("expected error for malformed date")
	}
}

func TestCalendarMonth(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	if _, err := svc.AddEvent(ctx, AddEventOptions{Title: "new year", Date: "2024-01-01", Start: "00:00", End: "01:00"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	month, err := svc.CalendarMonth("")
	if err != nil {
		t.Fatalf("month: %v", err)
	}
	if month.Month != "2024-01" || len(month.Weeks) != 6 {
		t.Fatalf("month = %s with %d weeks", month.Month, len(month.Weeks))
	}
	first := month.Weeks[0]
	if first[0].Date != "2023-12-31" || first[0].InMonth {
		t.Fatalf("first cell = %+v", first[0])
	}
	if len(first[1].Events) != 1 || first[1].Events[0].Title != "new year" {
		t.Fatalf("jan 1 = %+v", first[1])
	}
	found := false
	for _, week := range month.Weeks {
		for _, d := range week {
			if d.Date == "2024-01-15" {
				found = d.Today && d.Selected
			}
		}
	}
	if !found {
		t.Fatalf("today not flagged")
	}

	feb, err := svc.CalendarMonth("February 2024")
	if err != nil || feb.Month != "2024-02" {
		t.Fatalf("feb = %+v, %v", feb, err)
	}
}

func TestMilestoneTools(t *testing.T) {
	ctx := context.Background()
	svc := newTestService(t)
	g, err := svc.App.StartSuggestion(ctx, "1", goal.Schedule{Days: timeutil.NewWeekdaySet(time.Monday), Time: timeutil.MustClock("07:00")})
	if err != nil {
		t.Fatalf("start: %v", err)
	}

	if _, err := svc.CompleteMilestone(ctx, g.ID, g.Milestones[1].ID); err == nil || !strings.Contains(err.Error(), "not unlocked") {
		t.Fatalf("locked milestone err = %v", err)
	}
	if _, err := svc.AdvanceWeek(ctx, g.ID); err != nil {
		t.Fatalf("advance: %v", err)
	}
	got, err := svc.CompleteMilestone(ctx, g.ID, g.Milestones[1].ID)
	if err != nil {
		t.Fatalf("complete: %v", err)
	}
	if got.Progress != 25 || got.CurrentWeek != 2 {
		t.Fatalf("goal = progress %d week %d", got.Progress, got.CurrentWeek)
	}

	collections, err := svc.ListCollections(ctx)
	if err != nil {
		t.Fatalf("collections: %v", err)
	}
	var aiGoals int
	for _, c := range collections {
		if c.Name == "ai-goals" {
			aiGoals = c.Count
		}
	}
	if aiGoals != 1 {
		t.Fatalf("collections = %+v", collections)
	}
}

func TestNoApp(t *testing.T) {
	svc := &Service{}
	if _, err := svc.Agenda("", false); err != ErrNoApp {
		t.Fatalf("err = %v, want ErrNoApp", err)
	}
}
