package app

import (
	"sync"
	"time"

	"tableflip.dev/pilot/pkg/calendar"
	"tableflip.dev/pilot/pkg/collection"
	"tableflip.dev/pilot/pkg/event"
	"tableflip.dev/pilot/pkg/goal"
	"tableflip.dev/pilot/pkg/social"
	"tableflip.dev/pilot/pkg/timeutil"
)

// Session is the signed-in user's working state: the planner data, the
// calendar view and the active tab. It is safe for concurrent use.
type Session struct {
	mu sync.RWMutex

	userID string
	user   string
	tab    Tab
	view   *calendar.View

	events    []*event.Event
	goals     []*goal.Goal
	recurring []*goal.RecurringTask
	aiGoals   []*goal.AIGoal
	parties   []*social.Party
	friends   []*social.Friend
	created   map[string]time.Time
}

// NewSession starts on the calendar tab with today selected.
func NewSession(now func() time.Time) *Session {
	return &Session{
		view:    calendar.NewView(now),
		created: make(map[string]time.Time),
	}
}

// User is the email of the signed-in user, if known.
func (s *Session) User() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.user
}

// UserID is the id of the signed-in user, if known.
func (s *Session) UserID() string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.userID
}

// SetUser records the signed-in user.
func (s *Session) SetUser(id, email string) {
	s.mu.Lock()
	s.userID = id
	s.user = email
	s.mu.Unlock()
}

// Tab returns the active tab.
func (s *Session) Tab() Tab {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.tab
}

// SetTab switches the active tab.
func (s *Session) SetTab(t Tab) {
	s.mu.Lock()
	s.tab = t
	s.mu.Unlock()
}

// Month returns the displayed month.
func (s *Session) Month() calendar.Month {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view.Month()
}

// SetMonth displays m.
func (s *Session) SetMonth(m calendar.Month) {
	s.mu.Lock()
	s.view.SetMonth(m)
	s.mu.Unlock()
}

// Selected returns the selected day.
func (s *Session) Selected() timeutil.Date {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view.Selected()
}

// Select changes the selected day.
func (s *Session) Select(d timeutil.Date) {
	s.mu.Lock()
	s.view.Select(d)
	s.mu.Unlock()
}

// NextMonth advances the displayed month.
func (s *Session) NextMonth() {
	s.mu.Lock()
	s.view.NextMonth()
	s.mu.Unlock()
}

// PrevMonth moves the displayed month back.
func (s *Session) PrevMonth() {
	s.mu.Lock()
	s.view.PrevMonth()
	s.mu.Unlock()
}

// GoToday selects today and shows its month.
func (s *Session) GoToday() {
	s.mu.Lock()
	s.view.GoToday()
	s.mu.Unlock()
}

// MoveSelection shifts the selected day by n days and shows the month of the
// new selection when it leaves the displayed month.
func (s *Session) MoveSelection(n int) timeutil.Date {
	s.mu.Lock()
	defer s.mu.Unlock()
	d := s.view.Selected().AddDays(n)
	s.view.Select(d)
	if !s.view.Month().Contains(d) {
		s.view.SetMonth(calendar.MonthOf(d))
	}
	return d
}

// View returns a copy of the calendar view for rendering.
func (s *Session) View() *calendar.View {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cp := *s.view
	return &cp
}

// IsToday reports whether d is the current date.
func (s *Session) IsToday(d timeutil.Date) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.view.IsToday(d)
}

// Events returns copies of the stored one-off events in insertion order.
func (s *Session) Events() []*event.Event {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*event.Event, len(s.events))
	for i, e := range s.events {
		out[i] = e.Clone()
	}
	return out
}

// Goals returns copies of the goals.
func (s *Session) Goals() []*goal.Goal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*goal.Goal, len(s.goals))
	for i, g := range s.goals {
		cp := *g
		out[i] = &cp
	}
	return out
}

// RecurringTasks returns copies of the recurring tasks.
func (s *Session) RecurringTasks() []*goal.RecurringTask {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*goal.RecurringTask, len(s.recurring))
	for i, r := range s.recurring {
		cp := *r
		out[i] = &cp
	}
	return out
}

// AIGoals returns copies of the AI goals.
func (s *Session) AIGoals() []*goal.AIGoal {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*goal.AIGoal, len(s.aiGoals))
	for i, g := range s.aiGoals {
		out[i] = g.Clone()
	}
	return out
}

// Parties returns copies of the parties.
func (s *Session) Parties() []*social.Party {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*social.Party, len(s.parties))
	for i, p := range s.parties {
		out[i] = p.Clone()
	}
	return out
}

// Friends returns copies of the friends.
func (s *Session) Friends() []*social.Friend {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*social.Friend, len(s.friends))
	for i, f := range s.friends {
		cp := *f
		out[i] = &cp
	}
	return out
}

func createdKey(c collection.Type, id string) string {
	return string(c) + "/" + id
}
