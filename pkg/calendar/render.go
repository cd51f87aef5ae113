package calendar

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/pilot/pkg/event"
)

const weekHeader = "Su Mo Tu We Th Fr Sa"

// Options controls grid styling.
type Options struct {
	HeaderStyle   lipgloss.Style
	OutsideStyle  lipgloss.Style
	EmptyStyle    lipgloss.Style
	EntryStyle    lipgloss.Style
	TodayStyle    lipgloss.Style
	SelectedStyle lipgloss.Style
	ShowTitle     bool
	ShowHeader    bool
}

// DefaultOptions returns the styling used for terminal rendering.
func DefaultOptions() Options {
	return Options{
		HeaderStyle:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")).Bold(true),
		OutsideStyle:  lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		EmptyStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
		EntryStyle:    lipgloss.NewStyle().Foreground(lipgloss.Color("15")).Bold(true),
		TodayStyle:    lipgloss.NewStyle().Underline(true),
		SelectedStyle: lipgloss.NewStyle().Background(lipgloss.Color("63")).Foreground(lipgloss.Color("0")),
		ShowTitle:     true,
		ShowHeader:    true,
	}
}

// PlainOptions renders without any styling, which keeps output stable for
// pipes and tests.
func PlainOptions() Options {
	plain := lipgloss.NewStyle()
	return Options{
		HeaderStyle:   plain,
		OutsideStyle:  plain,
		EmptyStyle:    plain,
		EntryStyle:    plain,
		TodayStyle:    plain,
		SelectedStyle: plain,
		ShowTitle:     true,
		ShowHeader:    true,
	}
}

// Render draws the displayed month of v as six week rows.
func Render(v *View, events []*event.Event, opts Options) string {
	var lines []string
	if opts.ShowTitle {
		lines = append(lines, opts.HeaderStyle.Render(centre(v.Month().Title(), len(weekHeader))))
	}
	if opts.ShowHeader {
		lines = append(lines, opts.HeaderStyle.Render(weekHeader))
	}
	for _, week := range Weeks(v.Grid(events)) {
		cells := make([]string, 0, len(week))
		for _, c := range week {
			cells = append(cells, renderCell(v, c, opts))
		}
		lines = append(lines, strings.Join(cells, " "))
	}
	return strings.Join(lines, "\n")
}

func renderCell(v *View, c Cell, opts Options) string {
	text := fmt.Sprintf("%2d", c.Date.Day)

	style := opts.EmptyStyle
	switch {
	case !c.InMonth:
		style = opts.OutsideStyle
	case len(c.Events) > 0:
		style = opts.EntryStyle
	}
	if v.IsToday(c.Date) {
		style = style.Inherit(opts.TodayStyle)
	}
	if v.IsSelected(c.Date) {
		style = style.Inherit(opts.SelectedStyle)
	}
	return style.Render(text)
}

func centre(s string, width int) string {
	if len(s) >= width {
		return s
	}
	pad := (width - len(s)) / 2
	return strings.Repeat(" ", pad) + s
}
