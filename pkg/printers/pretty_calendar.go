package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/pilot/pkg/calendar"
	"tableflip.dev/pilot/pkg/event"
)

const width = len("11 12 13 14 15 16 17") // an example week

// Calendar prints the displayed month of v: six week rows, days with events
// in bold, days of the neighbouring months faint, the selection inverted and
// today underlined.
func (pp *PrettyPrint) Calendar(v *calendar.View, events []*event.Event) {
	tf := color.New(color.FgWhite, color.Italic)
	m := v.Month().Title()
	mid := (width - len(m)) / 2
	if mid < 0 {
		mid = 0
	}
	_, _ = tf.Fprintf(pp.out(), "%s%s\n", strings.Repeat(" ", mid), m)

	h := color.New(color.Faint)
	_, _ = h.Fprintln(pp.out(), "Su Mo Tu We Th Fr Sa")

	outside := []color.Attribute{color.Faint, color.FgWhite}
	empty := []color.Attribute{color.FgWhite}
	busy := []color.Attribute{color.Bold, color.FgHiWhite}

	for _, week := range calendar.Weeks(v.Grid(events)) {
		for i, c := range week {
			a := empty
			switch {
			case !c.InMonth:
				a = outside
			case len(c.Events) > 0:
				a = busy
			}
			p := color.New(a...)
			if v.IsToday(c.Date) {
				p.Add(color.Underline)
			}
			if v.IsSelected(c.Date) {
				p.Add(color.ReverseVideo)
			}
			_, _ = p.Fprintf(pp.out(), "%2d", c.Date.Day)
			if i < len(week)-1 {
				_, _ = fmt.Fprint(pp.out(), " ")
			}
		}
		_, _ = fmt.Fprint(pp.out(), "\n")
	}
	_, _ = fmt.Fprint(pp.out(), "\n")
}

// MonthLong prints every day of the displayed month with the titles of its
// events beside it.
func (pp *PrettyPrint) MonthLong(v *calendar.View, events []*event.Event) {
	p := color.New()
	b := color.New(color.Bold)
	s := color.New(color.Underline)
	bs := color.New(color.Underline, color.Bold)

	pp.Title(v.Month().Title())
	for _, c := range v.Grid(events) {
		if !c.InMonth {
			continue
		}
		printer := p
		if v.IsToday(c.Date) {
			printer = b
		}
		if c.Date.Weekday() == time.Sunday {
			printer = s
			if v.IsToday(c.Date) {
				printer = bs
			}
		}
		_, _ = printer.Fprintf(pp.out(), "%2d %s", c.Date.Day, c.Date.Weekday().String()[0:1])
		if len(c.Events) == 0 {
			_, _ = p.Fprintln(pp.out(), "")
			continue
		}
		sorted := append([]*event.Event(nil), c.Events...)
		event.SortByStart(sorted)
		for i, e := range sorted {
			if i == 0 {
				_, _ = p.Fprint(pp.out(), "  ")
			} else {
				_, _ = p.Fprint(pp.out(), "      ")
			}
			_, _ = p.Fprintf(pp.out(), "%s %s %s\n", e.Start, e.Category, e.Title)
		}
	}
	pp.NewLine()
}
