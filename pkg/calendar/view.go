package calendar

import (
	"time"

	"tableflip.dev/pilot/pkg/event"
	"tableflip.dev/pilot/pkg/timeutil"
)

// View tracks the displayed month and the selected day. It never owns or
// mutates events; they are passed in when a derived view is needed.
type View struct {
	month    Month
	selected timeutil.Date
	now      func() time.Time
}

// NewView starts on today's month with today selected. A nil clock uses time.Now.
func NewView(now func() time.Time) *View {
	if now == nil {
		now = time.Now
	}
	today := timeutil.Today(now)
	return &View{
		month:    MonthOf(today),
		selected: today,
		now:      now,
	}
}

// Month returns the displayed month.
func (v *View) Month() Month { return v.month }

// SetMonth displays m without touching the selection.
func (v *View) SetMonth(m Month) { v.month = m }

// Selected returns the selected day.
func (v *View) Selected() timeutil.Date { return v.selected }

// Today returns the current local date according to the view's clock.
func (v *View) Today() timeutil.Date { return timeutil.Today(v.now) }

// Select replaces the selected day. Selecting the same day twice is a no-op.
func (v *View) Select(d timeutil.Date) { v.selected = d }

// NextMonth advances the displayed month by one.
func (v *View) NextMonth() { v.month = v.month.Next() }

// PrevMonth moves the displayed month back by one.
func (v *View) PrevMonth() { v.month = v.month.Prev() }

// GoToday selects today and displays its month.
func (v *View) GoToday() {
	today := v.Today()
	v.selected = today
	v.month = MonthOf(today)
}

// IsToday compares d with the current date by year, month and day.
func (v *View) IsToday(d timeutil.Date) bool { return d == v.Today() }

// IsSelected compares d with the selected date by year, month and day.
func (v *View) IsSelected(d timeutil.Date) bool { return d == v.selected }

// Grid returns the 42 cell grid of the displayed month.
func (v *View) Grid(events []*event.Event) []Cell {
	return Grid(v.month, events)
}

// Agenda returns the events on the selected day in collection order.
func (v *View) Agenda(events []*event.Event) []*event.Event {
	return event.OnDate(events, v.selected)
}

// AgendaByStart returns the selected day's events ordered by start time.
func (v *View) AgendaByStart(events []*event.Event) []*event.Event {
	out := v.Agenda(events)
	event.SortByStart(out)
	return out
}
