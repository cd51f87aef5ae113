package validate

import (
	"errors"
	"strings"
	"testing"
	"time"

	"tableflip.dev/pilot/pkg/timeutil"
)

type sample struct {
	Name string              `json:"name" validate:"required"`
	Kind string              `json:"kind" validate:"oneof=a b"`
	On   timeutil.Date       `json:"on" validate:"isodate"`
	At   timeutil.Clock      `json:"at" validate:"clock"`
	Days timeutil.WeekdaySet `json:"days" validate:"min=1"`
}

func TestStructAcceptsValid(t *testing.T) {
	s := sample{
		Name: "x",
		Kind: "a",
		On:   timeutil.MustDate("2024-01-15"),
		At:   timeutil.MustClock("09:00"),
		Days: timeutil.NewWeekdaySet(time.Monday),
	}
	if err := Struct(s); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestStructReportsFieldsByJSONName(t *testing.T) {
	s := sample{
		Kind: "c",
		On:   timeutil.Date{Year: 2023, Month: time.February, Day: 30},
		At:   timeutil.Clock(-5),
	}
	err := Struct(s)
	if err == nil {
		t.Fatalf("expected validation error")
	}
	for _, want := range []string{"name is required", "kind must be one of", "on must be a valid", "at must be a valid", "days must be at least"} {
		if !strings.Contains(err.Error(), want) {
			t.Fatalf("expected %q in %q", want, err.Error())
		}
	}
}

func TestStructWrapsErrInvalid(t *testing.T) {
	type named struct {
		Name string `json:"name" validate:"required"`
	}
	err := Struct(named{})
	if !errors.Is(err, ErrInvalid) {
		t.Fatalf("err = %v, want ErrInvalid", err)
	}
	if !strings.Contains(err.Error(), "name") {
		t.Fatalf("err = %v, want field name", err)
	}
}
