package calendar

import (
	"tableflip.dev/pilot/pkg/event"
	"tableflip.dev/pilot/pkg/timeutil"
)

const (
	// WeekLength is the number of columns in the grid.
	WeekLength = 7
	// GridRows keeps the grid height constant regardless of the month.
	GridRows = 6
	// GridCells is the fixed number of cells in a month grid.
	GridCells = WeekLength * GridRows
)

// Cell is one day of a month grid.
type Cell struct {
	Date    timeutil.Date  `json:"date"`
	InMonth bool           `json:"inMonth"`
	Events  []*event.Event `json:"events"`
}

// Grid lays m out as exactly GridCells days starting on a Sunday: the tail of
// the previous month, every day of m, then the head of the next month. Each
// cell carries the events dated on that day in collection order.
func Grid(m Month, events []*event.Event) []Cell {
	byDate := make(map[timeutil.Date][]*event.Event, len(events))
	for _, e := range events {
		if e == nil {
			continue
		}
		byDate[e.Date] = append(byDate[e.Date], e)
	}

	first := m.First()
	leading := m.Offset()
	days := m.Days()

	cells := make([]Cell, 0, GridCells)
	for i := leading; i > 0; i-- {
		d := first.AddDays(-i)
		cells = append(cells, Cell{Date: d, Events: eventsOn(byDate, d)})
	}
	for day := 1; day <= days; day++ {
		d := timeutil.Date{Year: m.Year, Month: m.Month, Day: day}
		cells = append(cells, Cell{Date: d, InMonth: true, Events: eventsOn(byDate, d)})
	}
	next := m.Next().First()
	for i := 0; len(cells) < GridCells; i++ {
		d := next.AddDays(i)
		cells = append(cells, Cell{Date: d, Events: eventsOn(byDate, d)})
	}
	return cells
}

// Weeks splits a grid into rows of WeekLength cells.
func Weeks(cells []Cell) [][]Cell {
	rows := make([][]Cell, 0, (len(cells)+WeekLength-1)/WeekLength)
	for start := 0; start < len(cells); start += WeekLength {
		end := start + WeekLength
		if end > len(cells) {
			end = len(cells)
		}
		rows = append(rows, cells[start:end])
	}
	return rows
}

func eventsOn(byDate map[timeutil.Date][]*event.Event, d timeutil.Date) []*event.Event {
	found := byDate[d]
	out := make([]*event.Event, len(found))
	copy(out, found)
	return out
}
