// Package calendar prints a month grid and the agenda of the selected day.
package calendar

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/pilot/pkg/app"
	cal "tableflip.dev/pilot/pkg/calendar"
	"tableflip.dev/pilot/pkg/printers"
	"tableflip.dev/pilot/pkg/timeutil"
)

// Calendar shows one month.
type Calendar struct {
	App *app.Service
	// Month is YYYY-MM; empty keeps the month of the selection.
	Month string
	// Select is YYYY-MM-DD; empty keeps today.
	Select string
	Long   bool
	ShowID bool
	JSON   bool
	Out    io.Writer
}

type monthJSON struct {
	Month    string         `json:"month"`
	Title    string         `json:"title"`
	Selected timeutil.Date  `json:"selected"`
	Cells    []cal.Cell     `json:"cells"`
	Agenda   []eventSummary `json:"agenda"`
}

type eventSummary struct {
	ID    string         `json:"id"`
	Title string         `json:"title"`
	Start timeutil.Clock `json:"startTime"`
	End   timeutil.Clock `json:"endTime"`
}

// Do applies the month and selection, then prints.
func (c *Calendar) Do(ctx context.Context) error {
	if c.App == nil {
		return errors.New("calendar: no planner service")
	}
	sess := c.App.Session
	if c.Select != "" {
		d, err := timeutil.ParseDate(c.Select)
		if err != nil {
			return err
		}
		sess.Select(d)
		sess.SetMonth(cal.MonthOf(d))
	}
	if c.Month != "" {
		m, err := cal.ParseMonth(c.Month)
		if err != nil {
			return err
		}
		sess.SetMonth(m)
	}

	view := sess.View()
	timeline := c.App.MonthTimeline(view.Month())
	if c.JSON {
		out := monthJSON{
			Month:    view.Month().String(),
			Title:    view.Month().Title(),
			Selected: view.Selected(),
			Cells:    c.App.MonthGrid(view.Month()),
			Agenda:   []eventSummary{},
		}
		for _, e := range c.App.Agenda() {
			out.Agenda = append(out.Agenda, eventSummary{ID: e.ID, Title: e.Title, Start: e.Start, End: e.End})
		}
		return printers.JSON(c.Out, out)
	}

	pp := printers.PrettyPrint{ShowID: c.ShowID, Out: c.Out}
	pp.NewLine()
	if c.Long {
		pp.MonthLong(view, timeline)
		return nil
	}
	pp.Calendar(view, timeline)
	pp.NewLine()
	pp.Agenda(view.Selected(), c.App.Agenda())
	return nil
}
