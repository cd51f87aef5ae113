package goal

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/pilot/pkg/event"
	"tableflip.dev/pilot/pkg/timeutil"
	"tableflip.dev/pilot/pkg/validate"
)

// Area groups AI goals.
type Area string

const (
	AreaFitness      Area = "fitness"
	AreaLearning     Area = "learning"
	AreaProductivity Area = "productivity"
	AreaWellness     Area = "wellness"
	AreaCreativity   Area = "creativity"
	AreaSocial       Area = "social"
)

// Difficulty of an AI goal plan.
type Difficulty string

const (
	Beginner     Difficulty = "beginner"
	Intermediate Difficulty = "intermediate"
	Advanced     Difficulty = "advanced"
)

// MessageType classifies coach messages.
type MessageType string

const (
	MessageMotivation  MessageType = "motivation"
	MessageTip         MessageType = "tip"
	MessageAdjustment  MessageType = "adjustment"
	MessageCelebration MessageType = "celebration"
)

var (
	// ErrInactive is returned when advancing a goal that already finished.
	ErrInactive = errors.New("goal: ai goal is not active")
	// ErrLocked is returned when completing a milestone from a future week.
	ErrLocked = errors.New("goal: milestone is not unlocked yet")
	// ErrWeekRange is returned for weeks outside [1, duration].
	ErrWeekRange = errors.New("goal: week out of range")
	// ErrLateSchedule is returned for daily sessions set at 23:59.
	ErrLateSchedule = errors.New("goal: daily session must start before 23:59")
)

// Schedule is when the daily practice happens.
type Schedule struct {
	Days timeutil.WeekdaySet `json:"days" validate:"min=1"`
	Time timeutil.Clock      `json:"time" validate:"clock"`
}

// Milestone is a weekly checkpoint of an AI goal.
type Milestone struct {
	ID            string     `json:"id" validate:"required"`
	Title         string     `json:"title" validate:"required"`
	Description   string     `json:"description,omitempty"`
	Week          int        `json:"week" validate:"min=1"`
	Completed     bool       `json:"isCompleted"`
	CompletedDate *time.Time `json:"completedDate,omitempty"`
}

// CoachMessage is a note from the coach. Messages are append only.
type CoachMessage struct {
	ID        string      `json:"id"`
	Message   string      `json:"message" validate:"required"`
	Type      MessageType `json:"type" validate:"oneof=motivation tip adjustment celebration"`
	Timestamp time.Time   `json:"timestamp"`
	Read      bool        `json:"isRead"`
}

// AIGoal is a coached multi-week plan made of weekly milestones.
type AIGoal struct {
	ID            string         `json:"id" validate:"required"`
	Title         string         `json:"title" validate:"required"`
	Description   string         `json:"description,omitempty"`
	Category      Area           `json:"category" validate:"oneof=fitness learning productivity wellness creativity social"`
	Difficulty    Difficulty     `json:"difficulty" validate:"oneof=beginner intermediate advanced"`
	Duration      int            `json:"duration" validate:"min=1"`
	DailyMinutes  int            `json:"dailyTimeMinutes" validate:"min=0"`
	Schedule      Schedule       `json:"schedule"`
	Milestones    []Milestone    `json:"milestones" validate:"dive"`
	Progress      int            `json:"progress" validate:"min=0,max=100"`
	Active        bool           `json:"isActive"`
	StartDate     timeutil.Date  `json:"startDate" validate:"isodate"`
	CoachMessages []CoachMessage `json:"aiCoachMessages" validate:"dive"`
	CurrentWeek   int            `json:"currentWeek" validate:"min=1"`
}

// NewAIGoal returns an active goal in its first week with no milestones.
func NewAIGoal(title, description string, area Area, difficulty Difficulty, weeks, dailyMinutes int, schedule Schedule, start timeutil.Date) (*AIGoal, error) {
	g := &AIGoal{
		ID:            uuid.NewString(),
		Title:         strings.TrimSpace(title),
		Description:   description,
		Category:      area,
		Difficulty:    difficulty,
		Duration:      weeks,
		DailyMinutes:  dailyMinutes,
		Schedule:      schedule,
		Milestones:    []Milestone{},
		Active:        true,
		StartDate:     start,
		CoachMessages: []CoachMessage{},
		CurrentWeek:   1,
	}
	if err := g.Validate(); err != nil {
		return nil, err
	}
	return g, nil
}

// Validate checks field constraints and the week invariants.
func (g *AIGoal) Validate() error {
	if g == nil {
		return errors.New("goal: nil ai goal")
	}
	if err := validate.Struct(g); err != nil {
		return err
	}
	if g.Schedule.Time >= timeutil.EndOfDay {
		return fmt.Errorf("%w, got %s", ErrLateSchedule, g.Schedule.Time)
	}
	if g.CurrentWeek > g.Duration {
		return fmt.Errorf("%w: current week %d of %d", ErrWeekRange, g.CurrentWeek, g.Duration)
	}
	for _, m := range g.Milestones {
		if m.Week > g.Duration {
			return fmt.Errorf("%w: milestone %q in week %d of %d", ErrWeekRange, m.Title, m.Week, g.Duration)
		}
		if m.CompletedDate != nil && !m.Completed {
			return fmt.Errorf("goal: milestone %q has a completion date but is open", m.Title)
		}
	}
	return nil
}

// AddMilestone appends a milestone for the given week.
func (g *AIGoal) AddMilestone(title, description string, week int) (Milestone, error) {
	if week < 1 || week > g.Duration {
		return Milestone{}, fmt.Errorf("%w: week %d of %d", ErrWeekRange, week, g.Duration)
	}
	m := Milestone{
		ID:          uuid.NewString(),
		Title:       strings.TrimSpace(title),
		Description: description,
		Week:        week,
	}
	if err := validate.Struct(m); err != nil {
		return Milestone{}, err
	}
	g.Milestones = append(g.Milestones, m)
	return m, nil
}

// Unlocked returns the milestones scheduled for the current week.
func (g *AIGoal) Unlocked() []Milestone {
	out := make([]Milestone, 0)
	for _, m := range g.Milestones {
		if m.Week == g.CurrentWeek {
			out = append(out, m)
		}
	}
	return out
}

// CompleteMilestone marks a milestone done at the given time and recomputes
// progress. Completing an already completed milestone keeps its first date.
func (g *AIGoal) CompleteMilestone(id string, at time.Time) error {
	for i := range g.Milestones {
		m := &g.Milestones[i]
		if m.ID != id {
			continue
		}
		if m.Week > g.CurrentWeek {
			return fmt.Errorf("%w: %q is scheduled for week %d", ErrLocked, m.Title, m.Week)
		}
		if !m.Completed {
			done := at
			m.Completed = true
			m.CompletedDate = &done
		}
		g.recompute()
		return nil
	}
	return fmt.Errorf("%w: milestone %q", ErrNotFound, id)
}

// Completed returns how many milestones are done.
func (g *AIGoal) Completed() int {
	n := 0
	for _, m := range g.Milestones {
		if m.Completed {
			n++
		}
	}
	return n
}

// DerivedProgress is floor(100 * completed / total), zero without milestones.
func (g *AIGoal) DerivedProgress() int {
	if len(g.Milestones) == 0 {
		return 0
	}
	return event.Clamp(100 * g.Completed() / len(g.Milestones))
}

func (g *AIGoal) recompute() {
	derived := g.DerivedProgress()
	if derived > g.Progress {
		g.Progress = derived
	}
	g.Progress = event.Clamp(g.Progress)
}

// AdvanceWeek moves to the next week. Advancing past the last week finishes
// the goal and leaves the current week on the last one.
func (g *AIGoal) AdvanceWeek() error {
	if !g.Active {
		return ErrInactive
	}
	if g.CurrentWeek >= g.Duration {
		g.CurrentWeek = g.Duration
		g.Active = false
		return nil
	}
	g.CurrentWeek++
	return nil
}

// AddCoachMessage appends a new unread message.
func (g *AIGoal) AddCoachMessage(kind MessageType, text string, at time.Time) (CoachMessage, error) {
	msg := CoachMessage{
		ID:        uuid.NewString(),
		Message:   strings.TrimSpace(text),
		Type:      kind,
		Timestamp: at,
	}
	if err := validate.Struct(msg); err != nil {
		return CoachMessage{}, err
	}
	g.CoachMessages = append(g.CoachMessages, msg)
	return msg, nil
}

// MarkRead flags a coach message as read.
func (g *AIGoal) MarkRead(id string) error {
	for i := range g.CoachMessages {
		if g.CoachMessages[i].ID == id {
			g.CoachMessages[i].Read = true
			return nil
		}
	}
	return fmt.Errorf("%w: message %q", ErrNotFound, id)
}

// Unread lists unread coach messages oldest first.
func (g *AIGoal) Unread() []CoachMessage {
	out := make([]CoachMessage, 0)
	for _, m := range g.CoachMessages {
		if !m.Read {
			out = append(out, m)
		}
	}
	return out
}

// Clone returns a deep copy of g.
func (g *AIGoal) Clone() *AIGoal {
	if g == nil {
		return nil
	}
	cp := *g
	cp.Milestones = make([]Milestone, len(g.Milestones))
	for i, m := range g.Milestones {
		if m.CompletedDate != nil {
			d := *m.CompletedDate
			m.CompletedDate = &d
		}
		cp.Milestones[i] = m
	}
	cp.CoachMessages = append([]CoachMessage(nil), g.CoachMessages...)
	return &cp
}

// Sessions expands the practice schedule into ai-goal events from the start
// date through the end of the plan, each carrying the goal's progress.
func (g *AIGoal) Sessions() []*event.Event {
	out := make([]*event.Event, 0)
	if g.Schedule.Days.Empty() {
		return out
	}
	if g.DailyMinutes <= 0 || g.Schedule.Time >= timeutil.EndOfDay {
		return out
	}
	end := g.Schedule.Time.Plus(g.DailyMinutes)
	last := g.StartDate.AddDays(g.Duration*7 - 1)
	for d := g.StartDate; !d.After(last); d = d.AddDays(1) {
		if !g.Schedule.Days.Has(d.Weekday()) {
			continue
		}
		e := &event.Event{
			ID:          g.ID + "@" + d.String(),
			Title:       g.Title,
			Description: g.Description,
			Start:       g.Schedule.Time,
			End:         end,
			Category:    event.CategoryAIGoal,
			Date:        d,
			AIGoal:      true,
		}
		e.SetProgress(g.Progress)
		out = append(out, e)
	}
	return out
}
