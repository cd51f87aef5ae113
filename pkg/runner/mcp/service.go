// Package mcp provides the Model Context Protocol server integration for pilot.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"tableflip.dev/pilot/pkg/app"
	"tableflip.dev/pilot/pkg/calendar"
	"tableflip.dev/pilot/pkg/event"
	"tableflip.dev/pilot/pkg/glyph"
	"tableflip.dev/pilot/pkg/goal"
	"tableflip.dev/pilot/pkg/timeutil"
)

// Service adapts the planner service to MCP tools and resources.
type Service struct {
	App *app.Service
}

// ErrNoApp is returned when the service is not wired to a planner.
var ErrNoApp = errors.New("mcp: planner is not configured")

// AddEventOptions captures the parameters used to create an event.
type AddEventOptions struct {
	Title       string
	Date        string
	Start       string
	End         string
	Category    string
	Description string
}

// CollectionSummary describes a collection and its size.
type CollectionSummary struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// EventDTO is a transport-friendly projection of an event.
type EventDTO struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Date        string `json:"date"`
	Start       string `json:"startTime"`
	End         string `json:"endTime"`
	Category    string `json:"category"`
	Icon        string `json:"icon"`
	Description string `json:"description,omitempty"`
	Progress    *int   `json:"progress,omitempty"`
}

// DayDTO is one cell of a month grid.
type DayDTO struct {
	Date     string     `json:"date"`
	InMonth  bool       `json:"inMonth"`
	Today    bool       `json:"today,omitempty"`
	Selected bool       `json:"selected,omitempty"`
	Events   []EventDTO `json:"events"`
}

// MonthDTO is a six week calendar page.
type MonthDTO struct {
	Month string     `json:"month"`
	Title string     `json:"title"`
	Weeks [][]DayDTO `json:"weeks"`
}

// AgendaDTO lists one day's events.
type AgendaDTO struct {
	Date   string     `json:"date"`
	Count  int        `json:"count"`
	Events []EventDTO `json:"events"`
}

// NewService builds a service around the planner.
func NewService(a *app.Service) *Service {
	return &Service{App: a}
}

func toEventDTO(e *event.Event) EventDTO {
	return EventDTO{
		ID:          e.ID,
		Title:       e.Title,
		Date:        e.Date.String(),
		Start:       e.Start.String(),
		End:         e.End.String(),
		Category:    string(e.Category),
		Icon:        glyph.Category(string(e.Category)).Symbol,
		Description: e.Description,
		Progress:    e.Progress,
	}
}

func toEventDTOs(events []*event.Event) []EventDTO {
	out := make([]EventDTO, 0, len(events))
	for _, e := range events {
		out = append(out, toEventDTO(e))
	}
	return out
}

// ListCollections returns every planner collection with its item count.
func (s *Service) ListCollections(ctx context.Context) ([]CollectionSummary, error) {
	if s.App == nil {
		return nil, ErrNoApp
	}
	metas, err := s.App.Collections(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]CollectionSummary, 0, len(metas))
	for _, m := range metas {
		out = append(out, CollectionSummary{Name: m.Name.String(), Count: m.Count})
	}
	return out, nil
}

// CalendarMonth lays out a month, "2006-01" or "January 2006"; blank means
// the displayed month.
func (s *Service) CalendarMonth(raw string) (*MonthDTO, error) {
	if s.App == nil {
		return nil, ErrNoApp
	}
	m := s.App.Session.Month()
	if strings.TrimSpace(raw) != "" {
		parsed, err := calendar.ParseMonth(raw)
		if err != nil {
			return nil, err
		}
		m = parsed
	}
	today := timeutil.Today(s.App.Now)
	selected := s.App.Session.Selected()
	out := &MonthDTO{Month: m.String(), Title: m.Title()}
	for _, week := range calendar.Weeks(s.App.MonthGrid(m)) {
		days := make([]DayDTO, 0, len(week))
		for _, c := range week {
			days = append(days, DayDTO{
				Date:     c.Date.String(),
				InMonth:  c.InMonth,
				Today:    c.Date == today,
				Selected: c.Date == selected,
				Events:   toEventDTOs(c.Events),
			})
		}
		out.Weeks = append(out.Weeks, days)
	}
	return out, nil
}

// Agenda lists the events of a day; blank means the selected day.
func (s *Service) Agenda(raw string, byStart bool) (*AgendaDTO, error) {
	if s.App == nil {
		return nil, ErrNoApp
	}
	d := s.App.Session.Selected()
	if strings.TrimSpace(raw) != "" {
		parsed, err := timeutil.ParseDate(raw)
		if err != nil {
			return nil, err
		}
		d = parsed
	}
	events := s.App.AgendaOn(d)
	if byStart {
		event.SortByStart(events)
	}
	return &AgendaDTO{Date: d.String(), Count: len(events), Events: toEventDTOs(events)}, nil
}

// AddEvent creates an event. A blank date means the selected day.
func (s *Service) AddEvent(ctx context.Context, opts AddEventOptions) (*EventDTO, error) {
	if s.App == nil {
		return nil, ErrNoApp
	}
	d := s.App.Session.Selected()
	if strings.TrimSpace(opts.Date) != "" {
		parsed, err := timeutil.ParseDate(opts.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid date: %w", err)
		}
		d = parsed
	}
	start, err := timeutil.ParseClock(opts.Start)
	if err != nil {
		return nil, fmt.Errorf("invalid start: %w", err)
	}
	end, err := timeutil.ParseClock(opts.End)
	if err != nil {
		return nil, fmt.Errorf("invalid end: %w", err)
	}
	cat := event.CategoryWork
	if strings.TrimSpace(opts.Category) != "" {
		if cat, err = event.ParseCategory(opts.Category); err != nil {
			return nil, err
		}
	}
	e, err := event.New(opts.Title, d, start, end, cat)
	if err != nil {
		return nil, err
	}
	e.Description = strings.TrimSpace(opts.Description)
	saved, err := s.App.AddEvent(ctx, e)
	if err != nil {
		return nil, err
	}
	dto := toEventDTO(saved)
	return &dto, nil
}

// AIGoals returns every AI goal.
func (s *Service) AIGoals() ([]*goal.AIGoal, error) {
	if s.App == nil {
		return nil, ErrNoApp
	}
	return s.App.Session.AIGoals(), nil
}

// AIGoal returns one AI goal.
func (s *Service) AIGoal(id string) (*goal.AIGoal, error) {
	if s.App == nil {
		return nil, ErrNoApp
	}
	return s.App.AIGoal(id)
}

// CompleteMilestone completes an unlocked milestone.
func (s *Service) CompleteMilestone(ctx context.Context, goalID, milestoneID string) (*goal.AIGoal, error) {
	if s.App == nil {
		return nil, ErrNoApp
	}
	return s.App.CompleteMilestone(ctx, goalID, milestoneID)
}

// AdvanceWeek moves an AI goal to its next week.
func (s *Service) AdvanceWeek(ctx context.Context, goalID string) (*goal.AIGoal, error) {
	if s.App == nil {
		return nil, ErrNoApp
	}
	return s.App.AdvanceWeek(ctx, goalID)
}
