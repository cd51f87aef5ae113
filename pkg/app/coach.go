package app

import (
	"context"
	"fmt"

	"tableflip.dev/pilot/pkg/collection"
	"tableflip.dev/pilot/pkg/goal"
	"tableflip.dev/pilot/pkg/timeutil"
)

// AddAIGoal validates and stores an AI goal.
func (s *Service) AddAIGoal(ctx context.Context, g *goal.AIGoal) (*goal.AIGoal, error) {
	if err := g.Validate(); err != nil {
		return nil, err
	}
	sess := s.session()
	sess.mu.Lock()
	defer sess.mu.Unlock()
	cp := g.Clone()
	if err := s.save(ctx, collection.TypeAIGoals, cp.ID, cp); err != nil {
		return nil, err
	}
	sess.aiGoals = append(sess.aiGoals, cp)
	s.track(ctx, ActivityAIInteraction)
	s.log().Info("ai goal added", "id", cp.ID, "title", cp.Title, "weeks", cp.Duration)
	return cp.Clone(), nil
}

// StartSuggestion creates an AI goal from a catalog suggestion, starting on
// the selected day.
func (s *Service) StartSuggestion(ctx context.Context, suggestionID string, schedule goal.Schedule) (*goal.AIGoal, error) {
	sug, ok := goal.FindSuggestion(suggestionID)
	if !ok {
		return nil, fmt.Errorf("%w: suggestion %s", ErrNotFound, suggestionID)
	}
	g, err := goal.FromSuggestion(sug, s.session().Selected(), schedule, s.now())
	if err != nil {
		return nil, err
	}
	return s.AddAIGoal(ctx, g)
}

// AIGoal returns a copy of one AI goal.
func (s *Service) AIGoal(id string) (*goal.AIGoal, error) {
	sess := s.session()
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	i := indexOf(sess.aiGoals, id, func(g *goal.AIGoal) string { return g.ID })
	if i < 0 {
		return nil, fmt.Errorf("%w: ai goal %s", ErrNotFound, id)
	}
	return sess.aiGoals[i].Clone(), nil
}

// CompleteMilestone completes a milestone now and saves the goal.
func (s *Service) CompleteMilestone(ctx context.Context, goalID, milestoneID string) (*goal.AIGoal, error) {
	return s.mutateAIGoal(ctx, goalID, func(g *goal.AIGoal) error {
		before := g.Progress
		if err := g.CompleteMilestone(milestoneID, s.now()); err != nil {
			return err
		}
		if before < 100 && g.Progress == 100 {
			_, err := g.AddCoachMessage(goal.MessageCelebration, "Every milestone done. Outstanding work!", s.now())
			return err
		}
		return nil
	})
}

// AdvanceWeek moves an AI goal to its next week.
func (s *Service) AdvanceWeek(ctx context.Context, goalID string) (*goal.AIGoal, error) {
	return s.mutateAIGoal(ctx, goalID, func(g *goal.AIGoal) error {
		return g.AdvanceWeek()
	})
}

// AddCoachMessage appends a coach message to an AI goal.
func (s *Service) AddCoachMessage(ctx context.Context, goalID string, kind goal.MessageType, text string) (*goal.AIGoal, error) {
	return s.mutateAIGoal(ctx, goalID, func(g *goal.AIGoal) error {
		_, err := g.AddCoachMessage(kind, text, s.now())
		return err
	})
}

// MarkRead marks a coach message read.
func (s *Service) MarkRead(ctx context.Context, goalID, messageID string) (*goal.AIGoal, error) {
	return s.mutateAIGoal(ctx, goalID, func(g *goal.AIGoal) error {
		return g.MarkRead(messageID)
	})
}

// mutateAIGoal applies fn to a copy of the goal and keeps the result only
// once it was saved.
func (s *Service) mutateAIGoal(ctx context.Context, id string, fn func(*goal.AIGoal) error) (*goal.AIGoal, error) {
	sess := s.session()
	sess.mu.Lock()
	defer sess.mu.Unlock()
	i := indexOf(sess.aiGoals, id, func(g *goal.AIGoal) string { return g.ID })
	if i < 0 {
		return nil, fmt.Errorf("%w: ai goal %s", ErrNotFound, id)
	}
	cp := sess.aiGoals[i].Clone()
	if err := fn(cp); err != nil {
		return nil, err
	}
	if err := s.save(ctx, collection.TypeAIGoals, cp.ID, cp); err != nil {
		return nil, err
	}
	sess.aiGoals[i] = cp
	s.track(ctx, ActivityAIInteraction)
	return cp.Clone(), nil
}

// DueMilestones lists open milestones of active goals unlocked this week.
func (s *Service) DueMilestones() map[string][]goal.Milestone {
	sess := s.session()
	sess.mu.RLock()
	defer sess.mu.RUnlock()
	out := make(map[string][]goal.Milestone)
	for _, g := range sess.aiGoals {
		if !g.Active {
			continue
		}
		for _, m := range g.Unlocked() {
			if !m.Completed {
				out[g.ID] = append(out[g.ID], m)
			}
		}
	}
	return out
}

// OverdueGoals lists open goals whose target date has passed.
func (s *Service) OverdueGoals() []*goal.Goal {
	today := timeutil.Today(s.Now)
	out := make([]*goal.Goal, 0)
	for _, g := range s.session().Goals() {
		if g.Overdue(today) {
			out = append(out, g)
		}
	}
	return out
}
