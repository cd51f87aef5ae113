package tui

import (
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/pilot/pkg/event"
	"tableflip.dev/pilot/pkg/timeutil"
)

var errEventInput = errors.New("expected HH:MM-HH:MM title [@category]")

// parseEventInput reads the quick-add line, e.g. "09:00-10:30 Standup @work".
func parseEventInput(raw string, on timeutil.Date) (*event.Event, error) {
	fields := strings.Fields(raw)
	if len(fields) < 2 {
		return nil, errEventInput
	}
	from, to, ok := strings.Cut(fields[0], "-")
	if !ok {
		return nil, errEventInput
	}
	start, err := timeutil.ParseClock(from)
	if err != nil {
		return nil, fmt.Errorf("start: %w", err)
	}
	end, err := timeutil.ParseClock(to)
	if err != nil {
		return nil, fmt.Errorf("end: %w", err)
	}

	category := event.CategoryWork
	words := fields[1:]
	if last := words[len(words)-1]; strings.HasPrefix(last, "@") && len(words) > 1 {
		if category, err = event.ParseCategory(strings.TrimPrefix(last, "@")); err != nil {
			return nil, err
		}
		words = words[:len(words)-1]
	}
	return event.New(strings.Join(words, " "), on, start, end, category)
}
