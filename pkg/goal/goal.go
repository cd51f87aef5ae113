// Package goal holds personal goals, recurring tasks and coached AI goals.
package goal

import (
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"tableflip.dev/pilot/pkg/timeutil"
	"tableflip.dev/pilot/pkg/validate"
)

// Priority ranks a goal.
type Priority string

const (
	PriorityLow    Priority = "low"
	PriorityMedium Priority = "medium"
	PriorityHigh   Priority = "high"
)

// Kind groups personal goals.
type Kind string

const (
	KindPersonal     Kind = "personal"
	KindProfessional Kind = "professional"
	KindHealth       Kind = "health"
	KindLearning     Kind = "learning"
	KindOther        Kind = "other"
)

// ErrNotFound is returned when a milestone or message id is unknown.
var ErrNotFound = errors.New("goal: not found")

// Goal is a dated personal target.
type Goal struct {
	ID          string         `json:"id" validate:"required"`
	Title       string         `json:"title" validate:"required"`
	Description string         `json:"description,omitempty"`
	TargetDate  timeutil.Date  `json:"targetDate" validate:"isodate"`
	TargetTime  timeutil.Clock `json:"targetTime" validate:"clock"`
	Priority    Priority       `json:"priority" validate:"oneof=low medium high"`
	Completed   bool           `json:"isCompleted"`
	Category    Kind           `json:"category" validate:"oneof=personal professional health learning other"`
}

// NewGoal returns a validated goal with a fresh identifier.
func NewGoal(title string, target timeutil.Date, at timeutil.Clock, priority Priority, kind Kind) (*Goal, error) {
	g := &Goal{
		ID:         uuid.NewString(),
		Title:      strings.TrimSpace(title),
		TargetDate: target,
		TargetTime: at,
		Priority:   priority,
		Category:   kind,
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate checks field constraints.
func (g *Goal) Validate() error {
	if g == nil {
		return errors.New("goal: nil goal")
	}
	return validate.Struct(g)
}

// Overdue reports whether the goal is still open after its target date.
func (g *Goal) Overdue(today timeutil.Date) bool {
	return !g.Completed && g.TargetDate.Before(today)
}

func (g *Goal) String() string {
	return fmt.Sprintf("%s %s [%s] %s", g.TargetDate, g.TargetTime, g.Priority, g.Title)
}
