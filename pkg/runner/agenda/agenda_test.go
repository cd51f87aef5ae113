package agenda

import (
	"bytes"
	"context"
	"encoding/json"
	"testing"
	"time"

	"tableflip.dev/pilot/pkg/app"
	"tableflip.dev/pilot/pkg/event"
	"tableflip.dev/pilot/pkg/store"
	"tableflip.dev/pilot/pkg/timeutil"
)

func TestAgendaOrder(t *testing.T) {
	ctx := context.Background()
	now := func() time.Time { return time.Date(2024, time.May, 1, 8, 0, 0, 0, time.Local) }
	svc := &app.Service{Persistence: store.NewMemory(), Session: app.NewSession(now), Now: now}
	for _, tc := range []struct{ title, start, end string }{
		{"lunch", "12:00", "13:00"},
		{"gym", "07:00", "08:00"},
	} {
		e, err := event.New(tc.title, timeutil.MustDate("2024-05-02"), timeutil.MustClock(tc.start), timeutil.MustClock(tc.end), event.CategoryLeisure)
		if err != nil {
			t.Fatalf("new event: %v", err)
		}
		if _, err := svc.AddEvent(ctx, e); err != nil {
			t.Fatalf("add event: %v", err)
		}
	}

	tests := []struct {
		name    string
		byStart bool
		want    []string
	}{
		{name: "insertion", want: []string{"lunch", "gym"}},
		{name: "by start", byStart: true, want: []string{"gym", "lunch"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			a := &Agenda{App: svc, On: "2024-05-02", ByStart: tt.byStart, JSON: true, Out: &buf}
			if err := a.Do(ctx); err != nil {
				t.Fatalf("do: %v", err)
			}
			var got []event.Event
			if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
				t.Fatalf("decode: %v", err)
			}
			if len(got) != len(tt.want) {
				t.Fatalf("expected %d events, got %d", len(tt.want), len(got))
			}
			for i, title := range tt.want {
				if got[i].Title != title {
					t.Fatalf("position %d: expected %s, got %s", i, title, got[i].Title)
				}
			}
		})
	}
}

func TestAgendaEmptyDayIsEmptyList(t *testing.T) {
	var buf bytes.Buffer
	svc := &app.Service{Persistence: store.NewMemory(), Session: app.NewSession(nil)}
	a := &Agenda{App: svc, On: "2024-05-03", JSON: true, Out: &buf}
	if err := a.Do(context.Background()); err != nil {
		t.Fatalf("do: %v", err)
	}
	if got := bytes.TrimSpace(buf.Bytes()); string(got) != "[]" {
		t.Fatalf("expected [], got %s", got)
	}
}
