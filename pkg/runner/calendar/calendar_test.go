package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/pilot/pkg/app"
	"tableflip.dev/pilot/pkg/event"
	"tableflip.dev/pilot/pkg/store"
	"tableflip.dev/pilot/pkg/timeutil"
)

func newApp(t *testing.T) *app.Service {
	t.Helper()
	now := func() time.Time { return time.Date(2024, time.January, 10, 8, 0, 0, 0, time.Local) }
	svc := &app.Service{Persistence: store.NewMemory(), Session: app.NewSession(now), Now: now}
	e, err := event.New("Dentist", timeutil.MustDate("2024-02-14"), timeutil.MustClock("10:00"), timeutil.MustClock("11:00"), event.CategoryLeisure)
	if err != nil {
		t.Fatalf("new event: %v", err)
	}
	if _, err := svc.AddEvent(context.Background(), e); err != nil {
		t.Fatalf("add event: %v", err)
	}
	return svc
}

func TestCalendarSelectMovesMonth(t *testing.T) {
	color.NoColor = true
	var buf bytes.Buffer
	c := &Calendar{App: newApp(t), Select: "2024-02-14", Out: &buf}
	if err := c.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "February 2024") {
		t.Fatalf("expected February title:\n%s", out)
	}
	if !strings.Contains(out, "Dentist") {
		t.Fatalf("expected the agenda of the selected day:\n%s", out)
	}
}

func TestCalendarJSON(t *testing.T) {
	var buf bytes.Buffer
	c := &Calendar{App: newApp(t), Month: "2024-02", JSON: true, Out: &buf}
	if err := c.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	var got monthJSON
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v\n%s", err, buf.String())
	}
	if len(got.Cells) != 42 {
		t.Fatalf("expected 42 cells, got %d", len(got.Cells))
	}
	if got.Month != "2024-02" || got.Selected != timeutil.MustDate("2024-01-10") {
		t.Fatalf("unexpected month %q selected %s", got.Month, got.Selected)
	}
}

func TestCalendarRejectsBadMonth(t *testing.T) {
	c := &Calendar{App: newApp(t), Month: "2024-13", Out: &bytes.Buffer{}}
	if err := c.Do(context.Background()); err == nil {
		t.Fatalf("expected an error for month 13")
	}
}
