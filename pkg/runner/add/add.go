// Package add provides runners that create planner items.
package add

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"tableflip.dev/pilot/pkg/app"
	"tableflip.dev/pilot/pkg/event"
	"tableflip.dev/pilot/pkg/goal"
	"tableflip.dev/pilot/pkg/printers"
	"tableflip.dev/pilot/pkg/social"
	"tableflip.dev/pilot/pkg/timeutil"
)

var errNoApp = errors.New("add: no planner service")

// Target is where new items go and how they are echoed back.
type Target struct {
	App    *app.Service
	ShowID bool
	JSON   bool
	Out    io.Writer
}

func (t Target) printer() *printers.PrettyPrint {
	return &printers.PrettyPrint{ShowID: t.ShowID, Out: t.Out}
}

// Event adds one calendar event.
type Event struct {
	Target
	Title       string
	On          timeutil.Date
	Start       timeutil.Clock
	End         timeutil.Clock
	Category    string
	Description string
}

func (n *Event) Do(ctx context.Context) error {
	if n.App == nil {
		return errNoApp
	}
	category, err := event.ParseCategory(n.Category)
	if err != nil {
		return err
	}
	e, err := event.New(n.Title, n.On, n.Start, n.End, category)
	if err != nil {
		return err
	}
	e.Description = n.Description
	saved, err := n.App.AddEvent(ctx, e)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, saved)
	}
	pp := n.printer()
	pp.NewLine()
	pp.Agenda(saved.Date, n.App.AgendaOn(saved.Date))
	return nil
}

// Goal adds a dated personal goal.
type Goal struct {
	Target
	Title       string
	Due         timeutil.Date
	At          timeutil.Clock
	Priority    string
	Kind        string
	Description string
}

func (n *Goal) Do(ctx context.Context) error {
	if n.App == nil {
		return errNoApp
	}
	g, err := goal.NewGoal(n.Title, n.Due, n.At, goal.Priority(n.Priority), goal.Kind(n.Kind))
	if err != nil {
		return err
	}
	g.Description = n.Description
	saved, err := n.App.AddGoal(ctx, g)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, saved)
	}
	pp := n.printer()
	pp.NewLine()
	pp.Goals(n.App.Session.Goals())
	return nil
}

// Recurring adds a weekly repeating task.
type Recurring struct {
	Target
	Title       string
	Days        timeutil.WeekdaySet
	Start       timeutil.Clock
	End         timeutil.Clock
	Kind        string
	Description string
}

func (n *Recurring) Do(ctx context.Context) error {
	if n.App == nil {
		return errNoApp
	}
	r, err := goal.NewRecurringTask(n.Title, n.Days, n.Start, n.End, goal.TaskKind(n.Kind))
	if err != nil {
		return err
	}
	r.Description = n.Description
	saved, err := n.App.AddRecurring(ctx, r)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, saved)
	}
	pp := n.printer()
	pp.NewLine()
	pp.RecurringTasks(n.App.Session.RecurringTasks())
	return nil
}

// AIGoal starts a coached plan, either from a catalog suggestion or from
// scratch with one milestone per week.
type AIGoal struct {
	Target
	Suggestion   string
	Title        string
	Description  string
	Area         string
	Difficulty   string
	Weeks        int
	DailyMinutes int
	Schedule     goal.Schedule
	Start        timeutil.Date
}

func (n *AIGoal) Do(ctx context.Context) error {
	if n.App == nil {
		return errNoApp
	}
	if !n.Start.IsZero() {
		n.App.Session.Select(n.Start)
	}

	var (
		saved *goal.AIGoal
		err   error
	)
	if n.Suggestion != "" {
		saved, err = n.App.StartSuggestion(ctx, n.Suggestion, n.Schedule)
	} else {
		saved, err = n.custom(ctx)
	}
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, saved)
	}
	pp := n.printer()
	pp.NewLine()
	pp.AIGoal(saved)
	return nil
}

func (n *AIGoal) custom(ctx context.Context) (*goal.AIGoal, error) {
	g, err := goal.NewAIGoal(n.Title, n.Description, goal.Area(n.Area), goal.Difficulty(n.Difficulty),
		n.Weeks, n.DailyMinutes, n.Schedule, n.App.Session.Selected())
	if err != nil {
		return nil, err
	}
	for week := 1; week <= n.Weeks; week++ {
		if _, err := g.AddMilestone(weekTitle(week), "", week); err != nil {
			return nil, err
		}
	}
	return n.App.AddAIGoal(ctx, g)
}

func weekTitle(week int) string {
	return fmt.Sprintf("Week %d", week)
}

// Party plans a party and invites friends by id.
type Party struct {
	Target
	Title       string
	On          timeutil.Date
	At          timeutil.Clock
	Friends     []string
	Cost        string
	Description string
}

func (n *Party) Do(ctx context.Context) error {
	if n.App == nil {
		return errNoApp
	}
	creator, creatorID := n.App.Session.User(), n.App.Session.UserID()
	if creator == "" {
		creator, creatorID = "me", "local"
	}
	p, err := social.NewParty(n.Title, n.On, n.At, creator, creatorID, n.Friends...)
	if err != nil {
		return err
	}
	p.Cost = n.Cost
	p.Description = n.Description
	saved, err := n.App.AddParty(ctx, p)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, saved)
	}
	pp := n.printer()
	pp.NewLine()
	pp.Parties(n.App.Session.Parties())
	return nil
}

// Friend adds someone to the friend list.
type Friend struct {
	Target
	Name   string
	Avatar string
}

func (n *Friend) Do(ctx context.Context) error {
	if n.App == nil {
		return errNoApp
	}
	now := time.Now()
	if n.App.Now != nil {
		now = n.App.Now()
	}
	f, err := social.NewFriend(n.Name, n.Avatar, now)
	if err != nil {
		return err
	}
	saved, err := n.App.AddFriend(ctx, f)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, saved)
	}
	pp := n.printer()
	pp.NewLine()
	pp.Friends(n.App.Session.Friends())
	return nil
}
