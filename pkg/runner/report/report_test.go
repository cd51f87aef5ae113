package report

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"tableflip.dev/pilot/pkg/app"
	"tableflip.dev/pilot/pkg/goal"
	"tableflip.dev/pilot/pkg/store"
	"tableflip.dev/pilot/pkg/timeutil"
)

func TestReportWindow(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2024, time.September, 10, 12, 0, 0, 0, time.UTC)
	clock := func() time.Time { return now }
	svc := &app.Service{Persistence: store.NewMemory(), Session: app.NewSession(clock), Now: clock}
	g, err := svc.StartSuggestion(ctx, "1", goal.Schedule{Days: timeutil.NewWeekdaySet(time.Monday), Time: timeutil.MustClock("07:00")})
	if err != nil {
		t.Fatalf("start: %v", err)
	}
	if _, err := svc.CompleteMilestone(ctx, g.ID, g.Milestones[0].ID); err != nil {
		t.Fatalf("complete: %v", err)
	}

	tests := []struct {
		window string
		want   int
	}{
		{window: "1d", want: 1},
		{window: "", want: 1},
		{window: "1m", want: 1},
	}
	for _, tt := range tests {
		var buf bytes.Buffer
		if err := (&Report{App: svc, Window: tt.window, JSON: true, Out: &buf}).Do(ctx); err != nil {
			t.Fatalf("report %q: %v", tt.window, err)
		}
		var got app.ReportResult
		if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if got.Total != tt.want {
			t.Fatalf("window %q: expected %d, got %d", tt.window, tt.want, got.Total)
		}
	}

	for _, bad := range []string{"soon", "12h"} {
		if err := (&Report{App: svc, Window: bad}).Do(ctx); err == nil {
			t.Fatalf("expected an error for window %q", bad)
		}
	}
}
