package goal

import (
	"errors"
	"strings"

	"github.com/google/uuid"

	"tableflip.dev/pilot/pkg/event"
	"tableflip.dev/pilot/pkg/timeutil"
	"tableflip.dev/pilot/pkg/validate"
)

// TaskKind groups recurring tasks.
type TaskKind string

const (
	TaskWork   TaskKind = "work"
	TaskSport  TaskKind = "sport"
	TaskStudy  TaskKind = "study"
	TaskHealth TaskKind = "health"
	TaskOther  TaskKind = "other"
)

// ErrNoDays is returned when a recurring task repeats on no weekday.
var ErrNoDays = errors.New("goal: recurring task needs at least one weekday")

// RecurringTask repeats on a set of weekdays between two clock times.
type RecurringTask struct {
	ID          string              `json:"id" validate:"required"`
	Title       string              `json:"title" validate:"required"`
	Description string              `json:"description,omitempty"`
	Start       timeutil.Clock      `json:"startTime" validate:"clock"`
	End         timeutil.Clock      `json:"endTime" validate:"clock"`
	Days        timeutil.WeekdaySet `json:"days"`
	Category    TaskKind            `json:"category" validate:"oneof=work sport study health other"`
	Active      bool                `json:"isActive"`
}

// NewRecurringTask returns an active, validated task.
func NewRecurringTask(title string, days timeutil.WeekdaySet, start, end timeutil.Clock, kind TaskKind) (*RecurringTask, error) {
	r := &RecurringTask{
		ID:       uuid.NewString(),
		Title:    strings.TrimSpace(title),
		Start:    start,
		End:      end,
		Days:     days,
		Category: kind,
		Active:   true,
	}
	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}

// Validate checks field constraints, the weekday set and the time order.
func (r *RecurringTask) Validate() error {
	if r == nil {
		return errors.New("goal: nil recurring task")
	}
	if err := validate.Struct(r); err != nil {
		return err
	}
	if r.Days.Empty() {
		return ErrNoDays
	}
	if r.Start >= r.End {
		return event.ErrTimeOrder
	}
	return nil
}

// Occurrences expands the task into recurring events on every matching day
// from first through last inclusive. Inactive tasks produce nothing. Event ids
// are derived from the task id and the date so repeated expansion is stable.
func (r *RecurringTask) Occurrences(first, last timeutil.Date) []*event.Event {
	out := make([]*event.Event, 0)
	if !r.Active || r.Days.Empty() {
		return out
	}
	for d := first; !d.After(last); d = d.AddDays(1) {
		if !r.Days.Has(d.Weekday()) {
			continue
		}
		out = append(out, &event.Event{
			ID:          r.ID + "@" + d.String(),
			Title:       r.Title,
			Description: r.Description,
			Start:       r.Start,
			End:         r.End,
			Category:    event.CategoryRecurring,
			Date:        d,
			Recurring:   true,
		})
	}
	return out
}
