// Package export writes the calendar timeline as iCalendar.
package export

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/pilot/pkg/app"
	"tableflip.dev/pilot/pkg/calendar"
	"tableflip.dev/pilot/pkg/ics"
	"tableflip.dev/pilot/pkg/timeutil"
)

// Export writes every timeline item between From and To. Zero bounds default
// to the displayed month.
type Export struct {
	App      *app.Service
	From     timeutil.Date
	To       timeutil.Date
	Path     string
	Location *time.Location
	Out      io.Writer
}

func (n *Export) Do(_ context.Context) error {
	if n.App == nil {
		return errors.New("export: no planner service")
	}
	from, to := n.From, n.To
	if from.IsZero() {
		from = n.App.Session.Month().First()
	}
	if to.IsZero() {
		m := calendar.MonthOf(from)
		to = m.First().AddDays(m.Days() - 1)
	}
	if to.Before(from) {
		return fmt.Errorf("export: %s is before %s", to, from)
	}

	stamp := time.Now()
	if n.App.Now != nil {
		stamp = n.App.Now()
	}
	events := n.App.Timeline(from, to)
	if len(events) == 0 {
		return fmt.Errorf("export: nothing planned from %s to %s", from, to)
	}

	if n.Path == "" {
		out := n.Out
		if out == nil {
			out = color.Output
		}
		return ics.Write(out, events, n.Location, stamp)
	}

	f, err := os.Create(n.Path)
	if err != nil {
		return err
	}
	if err := ics.Write(f, events, n.Location, stamp); err != nil {
		_ = f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	if n.Out != nil {
		_, _ = fmt.Fprintf(n.Out, "Wrote %d event(s) to %s\n", len(events), n.Path)
	}
	return nil
}
