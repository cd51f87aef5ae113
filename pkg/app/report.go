package app

import (
	"sort"
	"time"

	"tableflip.dev/pilot/pkg/goal"
	"tableflip.dev/pilot/pkg/social"
)

// ReportItem is a milestone completed inside the report window.
type ReportItem struct {
	Milestone   goal.Milestone
	CompletedAt time.Time
}

// ReportSection groups completed milestones by AI goal.
type ReportSection struct {
	GoalID   string
	Goal     string
	Progress int
	Items    []ReportItem
}

// ReportResult summarises activity between two instants.
type ReportResult struct {
	Since     time.Time
	Until     time.Time
	Sections  []ReportSection
	Total     int
	Responses int
}

// Report returns milestones completed and party answers received between the
// provided bounds.
func (s *Service) Report(since, until time.Time) ReportResult {
	if since.After(until) {
		since, until = until, since
	}
	inWindow := func(t time.Time) bool {
		return !t.Before(since) && !t.After(until)
	}

	result := ReportResult{Since: since, Until: until}
	for _, g := range s.session().AIGoals() {
		section := ReportSection{GoalID: g.ID, Goal: g.Title, Progress: g.Progress}
		for _, m := range g.Milestones {
			if !m.Completed || m.CompletedDate == nil || !inWindow(*m.CompletedDate) {
				continue
			}
			section.Items = append(section.Items, ReportItem{Milestone: m, CompletedAt: *m.CompletedDate})
		}
		if len(section.Items) == 0 {
			continue
		}
		sort.SliceStable(section.Items, func(i, j int) bool {
			return section.Items[i].CompletedAt.Before(section.Items[j].CompletedAt)
		})
		result.Total += len(section.Items)
		result.Sections = append(result.Sections, section)
	}
	sort.SliceStable(result.Sections, func(i, j int) bool {
		return result.Sections[i].Goal < result.Sections[j].Goal
	})

	for _, p := range s.session().Parties() {
		for _, inv := range p.Invites {
			if inv.Status != social.Pending && inv.RespondedAt != nil && inWindow(*inv.RespondedAt) {
				result.Responses++
			}
		}
	}
	return result
}
