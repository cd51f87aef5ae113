package app

import (
	"context"
	"fmt"

	"tableflip.dev/pilot/pkg/collection"
	"tableflip.dev/pilot/pkg/event"
	"tableflip.dev/pilot/pkg/goal"
)

// AddEvent validates and stores a new event.
func (s *Service) AddEvent(ctx context.Context, e *event.Event) (*event.Event, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	sess := s.session()
	sess.mu.Lock()
	defer sess.mu.Unlock()
	if indexOf(sess.events, e.ID, func(x *event.Event) string { return x.ID }) >= 0 {
		return nil, fmt.Errorf("app: event %s already exists", e.ID)
	}
	cp := e.Clone()
	if err := s.save(ctx, collection.TypeEvents, cp.ID, cp); err != nil {
		return nil, err
	}
	sess.events = append(sess.events, cp)
	s.track(ctx, ActivityEventCreated)
	s.log().Info("event added", "id", cp.ID, "date", cp.Date, "title", cp.Title)
	return cp.Clone(), nil
}

// UpdateEvent replaces a stored event.
func (s *Service) UpdateEvent(ctx context.Context, e *event.Event) (*event.Event, error) {
	if err := e.Validate(); err != nil {
		return nil, err
	}
	sess := s.session()
	sess.mu.Lock()
	defer sess.mu.Unlock()
	i := indexOf(sess.events, e.ID, func(x *event.Event) string { return x.ID })
	if i < 0 {
		return nil, fmt.Errorf("%w: event %s", ErrNotFound, e.ID)
	}
	cp := e.Clone()
	if err := s.save(ctx, collection.TypeEvents, cp.ID, cp); err != nil {
		return nil, err
	}
	sess.events[i] = cp
	return cp.Clone(), nil
}

// SetEventProgress stores a clamped progress value on an event.
func (s *Service) SetEventProgress(ctx context.Context, id string, progress int) (*event.Event, error) {
	sess := s.session()
	sess.mu.RLock()
	i := indexOf(sess.events, id, func(x *event.Event) string { return x.ID })
	var cp *event.Event
	if i >= 0 {
		cp = sess.events[i].Clone()
	}
	sess.mu.RUnlock()
	if cp == nil {
		return nil, fmt.Errorf("%w: event %s", ErrNotFound, id)
	}
	cp.SetProgress(progress)
	return s.UpdateEvent(ctx, cp)
}

// AddGoal validates and stores a goal.
func (s *Service) AddGoal(ctx context.Context, g *goal.Goal) (*goal.Goal, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	sess := s.session()
	sess.mu.Lock()
	defer sess.mu.Unlock()
	cp := *g
	if err := s.save(ctx, collection.TypeGoals, cp.ID, &cp); err != nil {
		return nil, err
	}
	sess.goals = append(sess.goals, &cp)
	s.log().Info("goal added", "id", cp.ID, "title", cp.Title)
	out := cp
	return &out, nil
}

// SetGoalCompleted flips a goal's completion flag.
func (s *Service) SetGoalCompleted(ctx context.Context, id string, done bool) (*goal.Goal, error) {
	sess := s.session()
	sess.mu.Lock()
	defer sess.mu.Unlock()
	i := indexOf(sess.goals, id, func(g *goal.Goal) string { return g.ID })
	if i < 0 {
		return nil, fmt.Errorf("%w: goal %s", ErrNotFound, id)
	}
	cp := *sess.goals[i]
	cp.Completed = done
	if err := s.save(ctx, collection.TypeGoals, cp.ID, &cp); err != nil {
		return nil, err
	}
	sess.goals[i] = &cp
	out := cp
	return &out, nil
}

// AddRecurring validates and stores a recurring task.
func (s *Service) AddRecurring(ctx context.Context, r *goal.RecurringTask) (*goal.RecurringTask, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}
	sess := s.session()
	sess.mu.Lock()
	defer sess.mu.Unlock()
	cp := *r
	if err := s.save(ctx, collection.TypeRecurring, cp.ID, &cp); err != nil {
		return nil, err
	}
	sess.recurring = append(sess.recurring, &cp)
	s.log().Info("recurring task added", "id", cp.ID, "days", cp.Days.String())
	out := cp
	return &out, nil
}

// SetRecurringActive pauses or resumes a recurring task.
func (s *Service) SetRecurringActive(ctx context.Context, id string, active bool) (*goal.RecurringTask, error) {
	sess := s.session()
	sess.mu.Lock()
	defer sess.mu.Unlock()
	i := indexOf(sess.recurring, id, func(r *goal.RecurringTask) string { return r.ID })
	if i < 0 {
		return nil, fmt.Errorf("%w: recurring task %s", ErrNotFound, id)
	}
	cp := *sess.recurring[i]
	cp.Active = active
	if err := s.save(ctx, collection.TypeRecurring, cp.ID, &cp); err != nil {
		return nil, err
	}
	sess.recurring[i] = &cp
	out := cp
	return &out, nil
}
