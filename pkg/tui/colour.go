package tui

import (
	"image/color"
	"os"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/lucasb-eyer/go-colorful"
	"github.com/mattn/go-isatty"
	"github.com/muesli/termenv"

	"tableflip.dev/pilot/pkg/event"
	"tableflip.dev/pilot/pkg/printers"
)

var (
	progressLow, _  = colorful.Hex("#ff5f87")
	progressHigh, _ = colorful.Hex("#5fd787")
)

// ColourEnabled reports whether f is a terminal that can show colour.
func ColourEnabled(f *os.File) bool {
	if f == nil {
		return false
	}
	if !isatty.IsTerminal(f.Fd()) && !isatty.IsCygwinTerminal(f.Fd()) {
		return false
	}
	return termenv.NewOutput(f).ColorProfile() != termenv.Ascii
}

func progressColour(p int) color.Color {
	t := float64(event.Clamp(p)) / 100
	return progressLow.BlendLuv(progressHigh, t).Clamped()
}

func (m Model) progressBar(p, width int) string {
	bar := printers.ProgressBar(p, width)
	if !m.colour {
		return bar
	}
	return lipgloss.NewStyle().Foreground(progressColour(p)).Render(bar)
}
