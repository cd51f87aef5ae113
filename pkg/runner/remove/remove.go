// Package remove deletes planner items.
package remove

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/fatih/color"

	"tableflip.dev/pilot/pkg/app"
	"tableflip.dev/pilot/pkg/collection"
)

// Remove deletes one item of a kind by id.
type Remove struct {
	App  *app.Service
	Kind string
	ID   string
	Out  io.Writer
}

func (n *Remove) Do(ctx context.Context) error {
	if n.App == nil {
		return errors.New("remove: no planner service")
	}
	c, err := collection.ParseType(n.Kind)
	if err != nil {
		return err
	}
	if err := n.App.Delete(ctx, c, n.ID); err != nil {
		return err
	}
	out := n.Out
	if out == nil {
		out = color.Output
	}
	_, _ = fmt.Fprintf(out, "Deleted %s %s\n", c, n.ID)
	return nil
}
