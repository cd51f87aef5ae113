package options

import (
	"strings"
	"testing"
	"time"

	"tableflip.dev/pilot/pkg/timeutil"
)

func TestParseDay(t *testing.T) {
	now := time.Date(2024, time.June, 15, 10, 0, 0, 0, time.Local)
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "", want: ""},
		{in: "2024-2-28", want: "2024-02-28"},
		{in: "2025-12-01", want: "2025-12-01"},
		{in: "7/4", want: "2024-07-04"},
		{in: "6/15", want: "2024-06-15"},
		{in: "1/3", want: "2025-01-03"},
		{in: "tomorrow", wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDay(tt.in, now)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.String() != tt.want {
				t.Fatalf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestSpanClocks(t *testing.T) {
	o := SpanOptions{Start: "07:30", End: "08:15"}
	start, end, err := o.Clocks()
	if err != nil {
		t.Fatalf("clocks: %v", err)
	}
	if start != timeutil.MustClock("07:30") || end != timeutil.MustClock("08:15") {
		t.Fatalf("got %s-%s", start, end)
	}
	if _, _, err := (&SpanOptions{Start: "7", End: "8"}).Clocks(); err == nil {
		t.Fatalf("expected an error for malformed clocks")
	}
}

func TestWrap80(t *testing.T) {
	long := "word "
	for i := 0; i < 5; i++ {
		long += long
	}
	for _, line := range strings.Split(Wrap80(long), "\n") {
		if len(line) > 80 {
			t.Fatalf("line longer than 80 columns: %q", line)
		}
	}
}
