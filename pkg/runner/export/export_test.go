package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/emersion/go-ical"

	"tableflip.dev/pilot/pkg/app"
	"tableflip.dev/pilot/pkg/goal"
	"tableflip.dev/pilot/pkg/store"
	"tableflip.dev/pilot/pkg/timeutil"
)

func newApp(t *testing.T) *app.Service {
	t.Helper()
	now := func() time.Time { return time.Date(2024, time.July, 1, 8, 0, 0, 0, time.UTC) }
	svc := &app.Service{Persistence: store.NewMemory(), Session: app.NewSession(now), Now: now}
	r, err := goal.NewRecurringTask("Swim", timeutil.NewWeekdaySet(time.Tuesday), timeutil.MustClock("07:00"), timeutil.MustClock("08:00"), goal.TaskSport)
	if err != nil {
		t.Fatalf("new recurring: %v", err)
	}
	if _, err := svc.AddRecurring(context.Background(), r); err != nil {
		t.Fatalf("add recurring: %v", err)
	}
	return svc
}

func TestExportDisplayedMonth(t *testing.T) {
	var buf bytes.Buffer
	n := &Export{App: newApp(t), Location: time.UTC, Out: &buf}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	cal, err := ical.NewDecoder(&buf).Decode()
	if err != nil {
		t.Fatalf("decode: %v", err)
	}
	// July 2024 has five Tuesdays.
	if got := len(cal.Events()); got != 5 {
		t.Fatalf("expected 5 swims, got %d", got)
	}
}

func TestExportToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "week.ics")
	var buf bytes.Buffer
	n := &Export{
		App:  newApp(t),
		From: timeutil.MustDate("2024-07-01"),
		To:   timeutil.MustDate("2024-07-07"),
		Path: path,
		Out:  &buf,
	}
	if err := n.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read: %v", err)
	}
	if !strings.Contains(string(data), "SUMMARY:Swim") {
		t.Fatalf("expected the swim in the file:\n%s", data)
	}
	if !strings.Contains(buf.String(), "Wrote 1 event(s)") {
		t.Fatalf("unexpected output %q", buf.String())
	}
}

func TestExportRejectsReversedRange(t *testing.T) {
	n := &Export{App: newApp(t), From: timeutil.MustDate("2024-07-07"), To: timeutil.MustDate("2024-07-01")}
	if err := n.Do(context.Background()); err == nil {
		t.Fatalf("expected an error")
	}
}
