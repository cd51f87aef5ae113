// Package ui starts the interactive planner.
package ui

import (
	"context"
	"errors"

	"tableflip.dev/pilot/pkg/app"
	"tableflip.dev/pilot/pkg/logging"
	"tableflip.dev/pilot/pkg/tui"
)

type UI struct {
	App *app.Service
	// Watch reloads the screens when another process changes the data.
	Watch  bool
	Colour bool
}

func (n *UI) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("ui: no planner service")
	}
	opts := []tui.Option{tui.WithColour(n.Colour)}
	if !n.Colour {
		opts = append(opts, tui.WithTheme(tui.PlainTheme()))
	}
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	if n.Watch {
		changes, err := n.App.Watch(ctx)
		if err != nil {
			logging.OrDiscard(n.App.Log).Warn("watch disabled", "err", err)
		} else {
			opts = append(opts, tui.WithChanges(changes))
		}
	}
	return tui.Run(ctx, n.App, opts...)
}
