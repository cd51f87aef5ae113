package timeutil

import (
	"errors"
	"testing"
	"time"
)

func TestParseWindow(t *testing.T) {
	tests := []struct {
		in   string
		want Window
		text string
	}{
		{in: "", want: Window{Weeks: 1}, text: "1w"},
		{in: "3d", want: Window{Days: 3}, text: "3d"},
		{in: "2 weeks", want: Window{Weeks: 2}, text: "2w"},
		{in: "1M1w2days", want: Window{Months: 1, Weeks: 1, Days: 2}, text: "1m1w2d"},
		{in: "10d", want: Window{Days: 10}, text: "10d"},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseWindow(tt.in)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got != tt.want || got.String() != tt.text {
				t.Fatalf("got %+v (%s), want %+v (%s)", got, got, tt.want, tt.text)
			}
		})
	}
}

func TestParseWindowRejects(t *testing.T) {
	for _, in := range []string{"soon", "6h", "30m30s", "1w tomorrow"} {
		if _, err := ParseWindow(in); err == nil {
			t.Fatalf("expected an error for %q", in)
		}
	}
	if _, err := ParseWindow("0d"); !errors.Is(err, ErrEmptyWindow) {
		t.Fatalf("expected ErrEmptyWindow, got %v", err)
	}
}

func TestWindowSince(t *testing.T) {
	until := time.Date(2024, time.March, 31, 18, 30, 0, 0, time.UTC)
	tests := []struct {
		w    Window
		want time.Time
	}{
		{w: Window{Days: 1}, want: time.Date(2024, time.March, 30, 18, 30, 0, 0, time.UTC)},
		{w: Window{Weeks: 1}, want: time.Date(2024, time.March, 24, 18, 30, 0, 0, time.UTC)},
		{w: Window{Months: 1}, want: time.Date(2024, time.February, 29, 18, 30, 0, 0, time.UTC)},
		{w: Window{Months: 3, Days: 1}, want: time.Date(2023, time.December, 30, 18, 30, 0, 0, time.UTC)},
	}
	for _, tt := range tests {
		if got := tt.w.Since(until); !got.Equal(tt.want) {
			t.Fatalf("%s back from %s: got %s, want %s", tt.w, until, got, tt.want)
		}
	}
}
