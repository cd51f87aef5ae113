// Package agenda prints the events planned on one day.
package agenda

import (
	"context"
	"errors"
	"io"

	"tableflip.dev/pilot/pkg/app"
	"tableflip.dev/pilot/pkg/event"
	"tableflip.dev/pilot/pkg/printers"
	"tableflip.dev/pilot/pkg/timeutil"
)

// Agenda lists the day's events. Collection order is kept unless ByStart is set.
type Agenda struct {
	App     *app.Service
	On      string
	ByStart bool
	ShowID  bool
	JSON    bool
	Out     io.Writer
}

func (a *Agenda) Do(ctx context.Context) error {
	if a.App == nil {
		return errors.New("agenda: no planner service")
	}
	day := a.App.Session.Selected()
	if a.On != "" {
		d, err := timeutil.ParseDate(a.On)
		if err != nil {
			return err
		}
		day = d
	}

	events := a.App.AgendaOn(day)
	if a.ByStart {
		event.SortByStart(events)
	}
	if a.JSON {
		if events == nil {
			events = []*event.Event{}
		}
		return printers.JSON(a.Out, events)
	}

	pp := printers.PrettyPrint{ShowID: a.ShowID, Out: a.Out}
	pp.NewLine()
	pp.Agenda(day, events)
	return nil
}
