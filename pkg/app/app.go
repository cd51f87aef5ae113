// Package app is the planner service shared by the CLI, the terminal UI, the
// REST API and the MCP server.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tableflip.dev/pilot/pkg/calendar"
	"tableflip.dev/pilot/pkg/collection"
	"tableflip.dev/pilot/pkg/event"
	"tableflip.dev/pilot/pkg/goal"
	"tableflip.dev/pilot/pkg/logging"
	"tableflip.dev/pilot/pkg/social"
	"tableflip.dev/pilot/pkg/store"
	"tableflip.dev/pilot/pkg/timeutil"
)

var (
	// ErrNotFound is returned when no item has the requested id.
	ErrNotFound = errors.New("app: not found")
	// ErrNoPersistence is returned when the service has nowhere to save.
	ErrNoPersistence = errors.New("app: no persistence configured")
)

// Activity kinds recorded for the admin dashboard.
const (
	ActivityEventCreated  = "event_created"
	ActivityAIInteraction = "ai_interaction"
)

// ActivitySink receives usage records for the signed-in user.
type ActivitySink interface {
	RecordActivity(ctx context.Context, userID, kind string, at time.Time) error
}

// Service provides high-level planner operations over a session and its
// persistence. Mutations run one at a time and only reach the session once
// they were saved.
type Service struct {
	Persistence store.Persistence
	Session     *Session
	Activity    ActivitySink
	Now         func() time.Time
	Log         *slog.Logger
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Service) log() *slog.Logger {
	return logging.OrDiscard(s.Log)
}

func (s *Service) session() *Session {
	if s.Session == nil {
		s.Session = NewSession(s.Now)
	}
	return s.Session
}

// track records usage when a user is signed in. Failures are logged only.
func (s *Service) track(ctx context.Context, kind string) {
	if s.Activity == nil {
		return
	}
	userID := s.session().userID
	if userID == "" {
		return
	}
	if err := s.Activity.RecordActivity(ctx, userID, kind, s.now()); err != nil {
		s.log().Warn("record activity", "kind", kind, "err", err)
	}
}

// Load replaces the session data with what persistence holds.
func (s *Service) Load(ctx context.Context) error {
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	sess := s.session()

	var (
		events    []*event.Event
		goals     []*goal.Goal
		recurring []*goal.RecurringTask
		aiGoals   []*goal.AIGoal
		parties   []*social.Party
		friends   []*social.Friend
	)
	created := make(map[string]time.Time)
	for _, c := range collection.AllTypes() {
		for _, r := range s.Persistence.List(ctx, c) {
			var err error
			switch c {
			case collection.TypeEvents:
				events, err = decodeInto(r, events)
			case collection.TypeGoals:
				goals, err = decodeInto(r, goals)
			case collection.TypeRecurring:
				recurring, err = decodeInto(r, recurring)
			case collection.TypeAIGoals:
				aiGoals, err = decodeInto(r, aiGoals)
			case collection.TypeParties:
				parties, err = decodeInto(r, parties)
			case collection.TypeFriends:
				friends, err = decodeInto(r, friends)
			}
			if err != nil {
				s.log().Warn("skipping record", "collection", c, "id", r.ID, "err", err)
				continue
			}
			created[createdKey(c, r.ID)] = r.Created
		}
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	sess.mu.Lock()
	sess.events = events
	sess.goals = goals
	sess.recurring = recurring
	sess.aiGoals = aiGoals
	sess.parties = parties
	sess.friends = friends
	sess.created = created
	sess.mu.Unlock()
	s.log().Debug("session loaded", "events", len(events), "goals", len(goals), "aiGoals", len(aiGoals))
	return nil
}

func decodeInto[T any](r *store.Record, list []*T) ([]*T, error) {
	item := new(T)
	if err := r.Decode(item); err != nil {
		return list, err
	}
	return append(list, item), nil
}

// Watch subscribes to persistence change events.
func (s *Service) Watch(ctx context.Context) (<-chan store.Event, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.Watch(ctx)
}

// Collections lists stored collections with their record counts.
func (s *Service) Collections(ctx context.Context) ([]collection.Meta, error) {
	if s.Persistence == nil {
		return nil, ErrNoPersistence
	}
	return s.Persistence.CollectionsMeta(ctx), nil
}

// save persists body under c/id. The caller holds the session lock.
func (s *Service) save(ctx context.Context, c collection.Type, id string, body interface{}) error {
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	sess := s.session()
	key := createdKey(c, id)
	created, ok := sess.created[key]
	if !ok {
		created = s.now()
	}
	r, err := store.NewRecord(c, id, created, body)
	if err != nil {
		return err
	}
	if err := s.Persistence.Store(ctx, r); err != nil {
		return fmt.Errorf("app: save %s/%s: %w", c, id, err)
	}
	sess.created[key] = created
	return nil
}

// remove deletes c/id from persistence. The caller holds the session lock.
func (s *Service) remove(ctx context.Context, c collection.Type, id string) error {
	if s.Persistence == nil {
		return ErrNoPersistence
	}
	if err := s.Persistence.Delete(ctx, c, id); err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("app: delete %s/%s: %w", c, id, err)
	}
	delete(s.session().created, createdKey(c, id))
	return nil
}

// Delete removes any planner item by collection and id.
func (s *Service) Delete(ctx context.Context, c collection.Type, id string) error {
	sess := s.session()
	sess.mu.Lock()
	defer sess.mu.Unlock()

	var idx int
	switch c {
	case collection.TypeEvents:
		idx = indexOf(sess.events, id, func(e *event.Event) string { return e.ID })
	case collection.TypeGoals:
		idx = indexOf(sess.goals, id, func(g *goal.Goal) string { return g.ID })
	case collection.TypeRecurring:
		idx = indexOf(sess.recurring, id, func(r *goal.RecurringTask) string { return r.ID })
	case collection.TypeAIGoals:
		idx = indexOf(sess.aiGoals, id, func(g *goal.AIGoal) string { return g.ID })
	case collection.TypeParties:
		idx = indexOf(sess.parties, id, func(p *social.Party) string { return p.ID })
	case collection.TypeFriends:
		idx = indexOf(sess.friends, id, func(f *social.Friend) string { return f.ID })
	default:
		return fmt.Errorf("app: unknown collection %q", c)
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s %s", ErrNotFound, c, id)
	}
	if err := s.remove(ctx, c, id); err != nil {
		return err
	}
	switch c {
	case collection.TypeEvents:
		sess.events = removeAt(sess.events, idx)
	case collection.TypeGoals:
		sess.goals = removeAt(sess.goals, idx)
	case collection.TypeRecurring:
		sess.recurring = removeAt(sess.recurring, idx)
	case collection.TypeAIGoals:
		sess.aiGoals = removeAt(sess.aiGoals, idx)
	case collection.TypeParties:
		sess.parties = removeAt(sess.parties, idx)
	case collection.TypeFriends:
		sess.friends = removeAt(sess.friends, idx)
	}
	s.log().Info("deleted", "collection", c, "id", id)
	return nil
}

// Timeline returns everything on the calendar from first through last: stored
// events, recurring task occurrences, AI goal practice sessions and parties.
func (s *Service) Timeline(first, last timeutil.Date) []*event.Event {
	sess := s.session()
	sess.mu.RLock()
	defer sess.mu.RUnlock()

	out := make([]*event.Event, 0)
	inRange := func(d timeutil.Date) bool { return !d.Before(first) && !d.After(last) }
	for _, e := range sess.events {
		if inRange(e.Date) {
			out = append(out, e.Clone())
		}
	}
	for _, r := range sess.recurring {
		out = append(out, r.Occurrences(first, last)...)
	}
	for _, g := range sess.aiGoals {
		if !g.Active {
			continue
		}
		for _, e := range g.Sessions() {
			if inRange(e.Date) {
				out = append(out, e)
			}
		}
	}
	for _, p := range sess.parties {
		if p.Status == social.Declined || !inRange(p.Date) {
			continue
		}
		e, err := p.AsEvent()
		if err != nil {
			s.log().Warn("party left off the calendar", "id", p.ID, "err", err)
			continue
		}
		out = append(out, e)
	}
	return out
}

// Grid returns the displayed month's 42 cells with the timeline attached.
func (s *Service) Grid() []calendar.Cell {
	return s.MonthGrid(s.session().Month())
}

// MonthGrid returns the 42 cells of any month without moving the session.
func (s *Service) MonthGrid(m calendar.Month) []calendar.Cell {
	return calendar.Grid(m, s.MonthTimeline(m))
}

// MonthTimeline returns the timeline across the six weeks shown for m.
func (s *Service) MonthTimeline(m calendar.Month) []*event.Event {
	first := m.First().AddDays(-m.Offset())
	last := first.AddDays(calendar.GridCells - 1)
	return s.Timeline(first, last)
}

// AgendaOn returns the timeline of any day in collection order.
func (s *Service) AgendaOn(d timeutil.Date) []*event.Event {
	return event.OnDate(s.Timeline(d, d), d)
}

// Agenda returns the selected day's timeline in collection order.
func (s *Service) Agenda() []*event.Event {
	return s.AgendaOn(s.session().Selected())
}

// AgendaByStart returns the selected day's timeline ordered by start time.
func (s *Service) AgendaByStart() []*event.Event {
	out := s.Agenda()
	event.SortByStart(out)
	return out
}

func indexOf[T any](items []T, id string, key func(T) string) int {
	for i, item := range items {
		if key(item) == id {
			return i
		}
	}
	return -1
}

func removeAt[T any](items []T, i int) []T {
	out := make([]T, 0, len(items)-1)
	out = append(out, items[:i]...)
	return append(out, items[i+1:]...)
}
