// Package report summarises what got done over a recent window.
package report

import (
	"context"
	"errors"
	"io"
	"time"

	"tableflip.dev/pilot/pkg/app"
	"tableflip.dev/pilot/pkg/printers"
	"tableflip.dev/pilot/pkg/timeutil"
)

// Report prints completed milestones and party answers within Window, such
// as "3d", "1w" or "1m".
type Report struct {
	App    *app.Service
	Window string
	JSON   bool
	Out    io.Writer
}

func (n *Report) Do(_ context.Context) error {
	if n.App == nil {
		return errors.New("report: no planner service")
	}
	window, err := timeutil.ParseWindow(n.Window)
	if err != nil {
		return err
	}
	until := time.Now()
	if n.App.Now != nil {
		until = n.App.Now()
	}
	result := n.App.Report(window.Since(until), until)
	if n.JSON {
		return printers.JSON(n.Out, result)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.NewLine()
	pp.Report(result)
	return nil
}
