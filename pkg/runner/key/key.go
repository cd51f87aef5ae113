// Package key provides CLI helpers to display the calendar legend.
package key

import (
	"context"
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/pilot/pkg/event"
	"tableflip.dev/pilot/pkg/glyph"
)

// Key prints the symbols used for event categories, coach messages and
// invite states.
type Key struct {
	Out io.Writer
}

// Do renders the legend tables.
func (k *Key) Do(ctx context.Context) error {
	out := k.out()
	_, _ = fmt.Fprintln(out, "")

	categories := make([]glyph.Glyph, 0, len(event.AllCategories()))
	for _, c := range event.AllCategories() {
		categories = append(categories, glyph.Category(string(c)))
	}
	k.Key(ctx, "Categories", categories)

	var coach []glyph.Glyph
	for _, kind := range []string{"motivation", "tip", "adjustment", "celebration"} {
		coach = append(coach, glyph.Coach(kind))
	}
	k.Key(ctx, "Coach", coach)

	var states []glyph.Glyph
	for _, s := range []string{"accepted", "declined", "pending", "online", "offline"} {
		states = append(states, glyph.Status(s))
	}
	k.Key(ctx, "Status", states)
	return nil
}

// Key renders one glyph table under a bold heading.
func (k *Key) Key(_ context.Context, heading string, glyfs []glyph.Glyph) {
	bold := color.New(color.Bold)

	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.AddRow(bold.Sprintf("%10s", heading), bold.Sprint("Meaning"))
	for _, v := range glyfs {
		tbl.AddRow(v.Symbol, v.Meaning)
	}
	tbl.RightAlign(0)

	_, _ = fmt.Fprintln(k.out(), tbl)
	_, _ = fmt.Fprintln(k.out(), "")
}

func (k *Key) out() io.Writer {
	if k.Out == nil {
		return color.Output
	}
	return k.Out
}
