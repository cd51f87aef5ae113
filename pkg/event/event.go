// Package event defines calendar events and the category catalog.
package event

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/google/uuid"

	"tableflip.dev/pilot/pkg/timeutil"
	"tableflip.dev/pilot/pkg/validate"
)

// Category groups events for colouring and filtering.
type Category string

const (
	CategoryWork      Category = "work"
	CategoryLeisure   Category = "leisure"
	CategorySleep     Category = "sleep"
	CategoryMeals     Category = "meals"
	CategoryGaming    Category = "gaming"
	CategorySocial    Category = "social"
	CategoryRecurring Category = "recurring"
	CategoryGoal      Category = "goal"
	CategoryAIGoal    Category = "ai-goal"
)

// AllCategories returns the supported categories in display order.
func AllCategories() []Category {
	return []Category{
		CategoryWork,
		CategoryLeisure,
		CategorySleep,
		CategoryMeals,
		CategoryGaming,
		CategorySocial,
		CategoryRecurring,
		CategoryGoal,
		CategoryAIGoal,
	}
}

// ParseCategory converts a string to a Category or returns an error for unknown values.
func ParseCategory(raw string) (Category, error) {
	c := Category(strings.ToLower(strings.TrimSpace(raw)))
	for _, candidate := range AllCategories() {
		if candidate == c {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("event: unknown category %q", raw)
}

// ErrTimeOrder is returned when an event does not start before it ends.
var ErrTimeOrder = errors.New("event: start time must be before end time")

// Event is a single same-day block on the calendar.
type Event struct {
	ID          string         `json:"id" validate:"required"`
	Title       string         `json:"title" validate:"required"`
	Start       timeutil.Clock `json:"startTime" validate:"clock"`
	End         timeutil.Clock `json:"endTime" validate:"clock"`
	Category    Category       `json:"category" validate:"oneof=work leisure sleep meals gaming social recurring goal ai-goal"`
	Description string         `json:"description,omitempty"`
	Date        timeutil.Date  `json:"date" validate:"isodate"`
	Recurring   bool           `json:"isRecurring,omitempty"`
	Goal        bool           `json:"isGoal,omitempty"`
	AIGoal      bool           `json:"isAIGoal,omitempty"`
	Progress    *int           `json:"progress,omitempty" validate:"omitempty,min=0,max=100"`
}

// New creates a validated event with a fresh identifier. The recurring, goal and
// ai-goal flags follow the category.
func New(title string, date timeutil.Date, start, end timeutil.Clock, category Category) (*Event, error) {
	e := &Event{
		ID:       uuid.NewString(),
		Title:    strings.TrimSpace(title),
		Start:    start,
		End:      end,
		Category: category,
		Date:     date,
	}
	switch category {
	case CategoryRecurring:
		e.Recurring = true
	case CategoryGoal:
		e.Goal = true
	case CategoryAIGoal:
		e.AIGoal = true
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Validate checks field constraints and that the event starts before it ends.
func (e *Event) Validate() error {
	if e == nil {
		return errors.New("event: nil event")
	}
	if err := validate.Struct(e); err != nil {
		return err
	}
	if e.Start >= e.End {
		return ErrTimeOrder
	}
	return nil
}

// SetProgress stores p clamped to [0,100].
func (e *Event) SetProgress(p int) {
	c := Clamp(p)
	e.Progress = &c
}

// ClearProgress removes the progress value.
func (e *Event) ClearProgress() {
	e.Progress = nil
}

// Clamp bounds a percentage to [0,100].
func Clamp(p int) int {
	switch {
	case p < 0:
		return 0
	case p > 100:
		return 100
	default:
		return p
	}
}

func (e *Event) String() string {
	return fmt.Sprintf("%s %s-%s %s", e.Date, e.Start, e.End, e.Title)
}

// Clone returns a deep copy of e.
func (e *Event) Clone() *Event {
	if e == nil {
		return nil
	}
	cp := *e
	if e.Progress != nil {
		p := *e.Progress
		cp.Progress = &p
	}
	return &cp
}

// OnDate returns the events whose date equals d, in collection order.
func OnDate(events []*Event, d timeutil.Date) []*Event {
	out := make([]*Event, 0)
	for _, e := range events {
		if e != nil && e.Date == d {
			out = append(out, e)
		}
	}
	return out
}

// SortByStart orders events by start time, then end time, keeping collection
// order for ties.
func SortByStart(events []*Event) {
	sort.SliceStable(events, func(i, j int) bool {
		if events[i].Start != events[j].Start {
			return events[i].Start < events[j].Start
		}
		return events[i].End < events[j].End
	})
}
