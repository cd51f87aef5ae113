// Package list prints every item of one kind.
package list

import (
	"context"
	"errors"
	"io"
	"sort"

	"tableflip.dev/pilot/pkg/app"
	"tableflip.dev/pilot/pkg/collection"
	"tableflip.dev/pilot/pkg/event"
	"tableflip.dev/pilot/pkg/printers"
	"tableflip.dev/pilot/pkg/social"
	"tableflip.dev/pilot/pkg/timeutil"
)

// List prints one collection.
type List struct {
	App    *app.Service
	Kind   string
	ShowID bool
	JSON   bool
	Out    io.Writer
}

func (n *List) Do(_ context.Context) error {
	if n.App == nil {
		return errors.New("list: no planner service")
	}
	c, err := collection.ParseType(n.Kind)
	if err != nil {
		return err
	}
	sess := n.App.Session
	pp := &printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}

	var (
		items interface{}
		show  func()
	)
	switch c {
	case collection.TypeEvents:
		events := sess.Events()
		items, show = events, func() { printByDay(pp, events) }
	case collection.TypeGoals:
		goals := sess.Goals()
		items, show = goals, func() { pp.Goals(goals) }
	case collection.TypeRecurring:
		tasks := sess.RecurringTasks()
		items, show = tasks, func() { pp.RecurringTasks(tasks) }
	case collection.TypeAIGoals:
		goals := sess.AIGoals()
		items, show = goals, func() { pp.AIGoals(goals) }
	case collection.TypeParties:
		parties := sess.Parties()
		items, show = parties, func() { pp.Parties(parties) }
	case collection.TypeFriends:
		friends := sess.Friends()
		social.SortByPresence(friends)
		items, show = friends, func() { pp.Friends(friends) }
	}

	if n.JSON {
		return printers.JSON(n.Out, items)
	}
	pp.NewLine()
	show()
	return nil
}

// printByDay groups stored events under one agenda per date, oldest first.
func printByDay(pp *printers.PrettyPrint, events []*event.Event) {
	if len(events) == 0 {
		pp.TitleWithCount("Events", 0, "event")
		return
	}
	var days []timeutil.Date
	byDay := make(map[timeutil.Date][]*event.Event)
	for _, e := range events {
		if _, ok := byDay[e.Date]; !ok {
			days = append(days, e.Date)
		}
		byDay[e.Date] = append(byDay[e.Date], e)
	}
	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })
	for _, d := range days {
		pp.Agenda(d, byDay[d])
	}
}
