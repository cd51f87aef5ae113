// Package aigoal provides runners that progress coached AI goals.
package aigoal

import (
	"context"
	"errors"
	"fmt"
	"io"

	"tableflip.dev/pilot/pkg/app"
	"tableflip.dev/pilot/pkg/goal"
	"tableflip.dev/pilot/pkg/printers"
)

var errNoApp = errors.New("aigoal: no planner service")

// ErrNothingUnlocked is returned when every unlocked milestone is complete.
var ErrNothingUnlocked = errors.New("aigoal: no open milestone is unlocked")

// Output controls how results are shown.
type Output struct {
	ShowID bool
	JSON   bool
	Out    io.Writer
}

func (o Output) show(g *goal.AIGoal) error {
	if o.JSON {
		return printers.JSON(o.Out, g)
	}
	pp := printers.PrettyPrint{ShowID: o.ShowID, Out: o.Out}
	pp.NewLine()
	pp.AIGoal(g)
	return nil
}

// Complete finishes a milestone. Without a milestone id the earliest open,
// unlocked milestone is used.
type Complete struct {
	Output
	App         *app.Service
	GoalID      string
	MilestoneID string
}

func (n *Complete) Do(ctx context.Context) error {
	if n.App == nil {
		return errNoApp
	}
	id := n.MilestoneID
	if id == "" {
		g, err := n.App.AIGoal(n.GoalID)
		if err != nil {
			return err
		}
		next, ok := NextMilestone(g)
		if !ok {
			return ErrNothingUnlocked
		}
		id = next.ID
	}
	g, err := n.App.CompleteMilestone(ctx, n.GoalID, id)
	if err != nil {
		return err
	}
	return n.show(g)
}

// NextMilestone returns the earliest unlocked milestone still open.
func NextMilestone(g *goal.AIGoal) (goal.Milestone, bool) {
	for _, m := range g.Unlocked() {
		if !m.Completed {
			return m, true
		}
	}
	return goal.Milestone{}, false
}

// Advance moves a goal to its next week.
type Advance struct {
	Output
	App    *app.Service
	GoalID string
}

func (n *Advance) Do(ctx context.Context) error {
	if n.App == nil {
		return errNoApp
	}
	g, err := n.App.AdvanceWeek(ctx, n.GoalID)
	if err != nil {
		return err
	}
	return n.show(g)
}

// Message appends a coach message.
type Message struct {
	Output
	App    *app.Service
	GoalID string
	Kind   string
	Text   string
}

func (n *Message) Do(ctx context.Context) error {
	if n.App == nil {
		return errNoApp
	}
	g, err := n.App.AddCoachMessage(ctx, n.GoalID, goal.MessageType(n.Kind), n.Text)
	if err != nil {
		return err
	}
	return n.show(g)
}

// Read marks coach messages read. An empty MessageID marks every unread one.
type Read struct {
	Output
	App       *app.Service
	GoalID    string
	MessageID string
}

func (n *Read) Do(ctx context.Context) error {
	if n.App == nil {
		return errNoApp
	}
	g, err := n.App.AIGoal(n.GoalID)
	if err != nil {
		return err
	}
	ids := []string{n.MessageID}
	if n.MessageID == "" {
		ids = ids[:0]
		for _, m := range g.Unread() {
			ids = append(ids, m.ID)
		}
	}
	for _, id := range ids {
		if g, err = n.App.MarkRead(ctx, n.GoalID, id); err != nil {
			return err
		}
	}
	return n.show(g)
}

// List prints every AI goal, or one in detail.
type List struct {
	Output
	App    *app.Service
	GoalID string
}

func (n *List) Do(_ context.Context) error {
	if n.App == nil {
		return errNoApp
	}
	if n.GoalID != "" {
		g, err := n.App.AIGoal(n.GoalID)
		if err != nil {
			return err
		}
		return n.show(g)
	}
	goals := n.App.Session.AIGoals()
	if n.JSON {
		if goals == nil {
			goals = []*goal.AIGoal{}
		}
		return printers.JSON(n.Out, goals)
	}
	pp := printers.PrettyPrint{ShowID: n.ShowID, Out: n.Out}
	pp.NewLine()
	pp.AIGoals(goals)
	return nil
}

// Suggestions prints the catalog of ready-made plans.
type Suggestions struct {
	Output
}

func (n *Suggestions) Do(_ context.Context) error {
	list := goal.Suggestions()
	if n.JSON {
		return printers.JSON(n.Out, list)
	}
	pp := printers.PrettyPrint{Out: n.Out}
	pp.NewLine()
	pp.Suggestions(list)
	if len(list) > 0 {
		_, _ = fmt.Fprintf(pp.Writer(), "\nStart one with: pilot add aigoal --suggestion %s\n", list[0].ID)
	}
	return nil
}
