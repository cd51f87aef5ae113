package tui

import (
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/pilot/pkg/calendar"
)

// Theme centralizes Lip Gloss styles for the planner UI.
type Theme struct {
	Tabs     TabTheme
	Panel    PanelTheme
	Footer   FooterTheme
	Calendar calendar.Options
}

// TabTheme styles the tab bar.
type TabTheme struct {
	Active   lipgloss.Style
	Inactive lipgloss.Style
	Gap      lipgloss.Style
}

// PanelTheme styles framed panes and headings.
type PanelTheme struct {
	Frame    lipgloss.Style
	Title    lipgloss.Style
	Body     lipgloss.Style
	Muted    lipgloss.Style
	Selected lipgloss.Style
}

// FooterTheme groups styles used by the bottom status bar.
type FooterTheme struct {
	Mode   lipgloss.Style
	Status lipgloss.Style
	Error  lipgloss.Style
	Help   lipgloss.Style
}

// DefaultTheme returns the built-in theme.
func DefaultTheme() Theme {
	return Theme{
		Tabs: TabTheme{
			Active:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("212")).Underline(true),
			Inactive: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Gap:      lipgloss.NewStyle().Foreground(lipgloss.Color("238")),
		},
		Panel: PanelTheme{
			Frame: lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				Padding(0, 1),
			Title:    lipgloss.NewStyle().Bold(true),
			Body:     lipgloss.NewStyle(),
			Muted:    lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Selected: lipgloss.NewStyle().Reverse(true),
		},
		Footer: FooterTheme{
			Mode:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("0")).Background(lipgloss.Color("63")).Padding(0, 1),
			Status: lipgloss.NewStyle().Foreground(lipgloss.Color("244")),
			Error:  lipgloss.NewStyle().Foreground(lipgloss.Color("203")),
			Help:   lipgloss.NewStyle().Foreground(lipgloss.Color("245")).Italic(true),
		},
		Calendar: calendar.DefaultOptions(),
	}
}

// PlainTheme renders without colours or borders.
func PlainTheme() Theme {
	plain := lipgloss.NewStyle()
	return Theme{
		Tabs:     TabTheme{Active: plain, Inactive: plain, Gap: plain},
		Panel:    PanelTheme{Frame: plain, Title: plain, Body: plain, Muted: plain, Selected: plain},
		Footer:   FooterTheme{Mode: plain, Status: plain, Error: plain, Help: plain},
		Calendar: calendar.PlainOptions(),
	}
}
