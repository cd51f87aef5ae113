package printers

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/gosuri/uitable"

	"tableflip.dev/pilot/pkg/app"
	"tableflip.dev/pilot/pkg/event"
	"tableflip.dev/pilot/pkg/glyph"
	"tableflip.dev/pilot/pkg/goal"
	"tableflip.dev/pilot/pkg/social"
	"tableflip.dev/pilot/pkg/timeutil"
)

type PrettyPrint struct {
	ShowID bool
	Out    io.Writer
}

var (
	spacing = strings.Repeat(" ", len("171dff69-f8b9-4dca  "))
)

func (pp *PrettyPrint) out() io.Writer {
	if pp.Out == nil {
		return color.Output
	}
	return pp.Out
}

// Writer is the destination of every print.
func (pp *PrettyPrint) Writer() io.Writer {
	return pp.out()
}

func (pp *PrettyPrint) NewLine() {
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) Title(title string) {
	t := color.New(color.Bold, color.Underline)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprintln(pp.out(), title)
}

func (pp *PrettyPrint) TitleWithCount(title string, count int, noun string) {
	t := color.New(color.Bold, color.Underline)
	c := color.New(color.Faint)

	if pp.ShowID {
		_, _ = t.Fprint(pp.out(), spacing)
	}
	_, _ = t.Fprint(pp.out(), title)
	_, _ = c.Fprintf(pp.out(), " - %d", count)

	switch count {
	case 1:
		_, _ = c.Fprintf(pp.out(), " %s\n", noun)
	default:
		_, _ = c.Fprintf(pp.out(), " %ss\n", noun)
	}
}

func (pp *PrettyPrint) none() {
	f := color.New(color.Faint, color.Italic)
	if pp.ShowID {
		_, _ = f.Fprint(pp.out(), spacing)
	}
	_, _ = f.Fprint(pp.out(), " none\n\n")
}

func (pp *PrettyPrint) id(id string) {
	if !pp.ShowID {
		return
	}
	y := color.New(color.FgHiYellow, color.Italic, color.Faint)
	_, _ = y.Fprint(pp.out(), id)
	if pad := len(spacing) - len(id); pad > 0 {
		_, _ = y.Fprint(pp.out(), strings.Repeat(" ", pad))
	} else {
		_, _ = y.Fprint(pp.out(), " ")
	}
}

// Agenda prints the events of one day in the order given.
func (pp *PrettyPrint) Agenda(on timeutil.Date, events []*event.Event) {
	pp.TitleWithCount(on.In(nil).Format("Monday, January 2 2006"), len(events), "event")
	if len(events) == 0 {
		pp.none()
		return
	}
	t := color.New()
	f := color.New(color.Faint)
	for _, e := range events {
		pp.id(e.ID)
		_, _ = t.Fprintf(pp.out(), "%s %s-%s %s", glyph.Category(string(e.Category)), e.Start, e.End, e.Title)
		if e.Progress != nil {
			_, _ = f.Fprintf(pp.out(), " (%d%%)", *e.Progress)
		}
		_, _ = t.Fprintln(pp.out(), "")
		if e.Description != "" {
			if pp.ShowID {
				_, _ = f.Fprint(pp.out(), spacing)
			}
			_, _ = f.Fprintf(pp.out(), "      %s\n", e.Description)
		}
	}
	_, _ = t.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) table() *uitable.Table {
	tbl := uitable.New()
	tbl.Separator = "  "
	tbl.MaxColWidth = 60
	return tbl
}

func (pp *PrettyPrint) flush(tbl *uitable.Table) {
	_, _ = fmt.Fprintln(pp.out(), tbl)
	_, _ = fmt.Fprintln(pp.out(), "")
}

func (pp *PrettyPrint) header(tbl *uitable.Table, cols ...interface{}) {
	if pp.ShowID {
		cols = append([]interface{}{"ID"}, cols...)
	}
	for i, c := range cols {
		cols[i] = glyph.Bold(fmt.Sprint(c))
	}
	tbl.AddRow(cols...)
}

func (pp *PrettyPrint) row(tbl *uitable.Table, id string, cols ...interface{}) {
	if pp.ShowID {
		cols = append([]interface{}{id}, cols...)
	}
	tbl.AddRow(cols...)
}

func done(b bool) string {
	if b {
		return glyph.Status("done").String()
	}
	return glyph.Status("open").String()
}

// Goals prints plain goals with their due date and priority.
func (pp *PrettyPrint) Goals(goals []*goal.Goal) {
	pp.TitleWithCount("Goals", len(goals), "goal")
	if len(goals) == 0 {
		pp.none()
		return
	}
	tbl := pp.table()
	pp.header(tbl, "", "Title", "Due", "Priority", "Category")
	for _, g := range goals {
		title := g.Title
		if g.Completed {
			title = glyph.Strike(title)
		}
		pp.row(tbl, g.ID, done(g.Completed), title, fmt.Sprintf("%s %s", g.TargetDate, g.TargetTime), g.Priority, g.Category)
	}
	pp.flush(tbl)
}

// RecurringTasks prints recurring tasks with their weekly schedule.
func (pp *PrettyPrint) RecurringTasks(tasks []*goal.RecurringTask) {
	pp.TitleWithCount("Recurring", len(tasks), "task")
	if len(tasks) == 0 {
		pp.none()
		return
	}
	tbl := pp.table()
	pp.header(tbl, "Title", "Days", "Time", "Category", "Active")
	for _, r := range tasks {
		pp.row(tbl, r.ID, r.Title, r.Days, fmt.Sprintf("%s-%s", r.Start, r.End), r.Category, r.Active)
	}
	pp.flush(tbl)
}

// AIGoals prints a summary line per AI goal.
func (pp *PrettyPrint) AIGoals(goals []*goal.AIGoal) {
	pp.TitleWithCount("AI goals", len(goals), "goal")
	if len(goals) == 0 {
		pp.none()
		return
	}
	tbl := pp.table()
	pp.header(tbl, "Title", "Area", "Week", "Progress", "Unread", "Active")
	for _, g := range goals {
		pp.row(tbl, g.ID, g.Title, g.Category,
			fmt.Sprintf("%d/%d", g.CurrentWeek, g.Duration),
			ProgressBar(g.Progress, 10),
			len(g.Unread()), g.Active)
	}
	pp.flush(tbl)
}

// AIGoal prints one AI goal with its milestones and coach messages.
func (pp *PrettyPrint) AIGoal(g *goal.AIGoal) {
	pp.Title(g.Title)
	f := color.New(color.Faint)
	_, _ = f.Fprintf(pp.out(), "%s · %s · week %d of %d · %d min on %s at %s\n",
		g.Category, g.Difficulty, g.CurrentWeek, g.Duration, g.DailyMinutes, g.Schedule.Days, g.Schedule.Time)
	_, _ = fmt.Fprintf(pp.out(), "%s\n\n", ProgressBar(g.Progress, 20))

	tbl := pp.table()
	pp.header(tbl, "", "Week", "Milestone")
	for _, m := range g.Milestones {
		title := m.Title
		if m.Week > g.CurrentWeek {
			title = color.New(color.Faint).Sprint(title)
		}
		if m.Completed {
			title = glyph.Strike(title)
		}
		pp.row(tbl, m.ID, done(m.Completed), m.Week, title)
	}
	pp.flush(tbl)

	if len(g.CoachMessages) == 0 {
		return
	}
	pp.Title("Coach")
	for _, m := range g.CoachMessages {
		pp.id(m.ID)
		text := glyph.Italic(m.Message)
		if !m.Read {
			text = glyph.Bold(m.Message)
		}
		_, _ = fmt.Fprintf(pp.out(), "%s %s\n", glyph.Coach(string(m.Type)), text)
	}
	pp.NewLine()
}

// ProgressBar draws p percent as a bar of width cells.
func ProgressBar(p, width int) string {
	p = event.Clamp(p)
	full := p * width / 100
	return fmt.Sprintf("%s%s %3d%%", strings.Repeat("█", full), strings.Repeat("░", width-full), p)
}

// Suggestions prints the AI goal catalog.
func (pp *PrettyPrint) Suggestions(list []goal.Suggestion) {
	pp.TitleWithCount("Suggestions", len(list), "suggestion")
	tbl := pp.table()
	tbl.Separator = "  "
	tbl.AddRow(glyph.Bold("ID"), "", glyph.Bold("Title"), glyph.Bold("Area"), glyph.Bold("Level"), glyph.Bold("Weeks"), glyph.Bold("Daily"))
	for _, s := range list {
		tbl.AddRow(s.ID, s.Icon, s.Title, s.Category, s.Difficulty, s.Weeks, fmt.Sprintf("%d min", s.DailyMinutes))
	}
	pp.flush(tbl)
}

// Parties prints parties with their invite tallies.
func (pp *PrettyPrint) Parties(parties []*social.Party) {
	pp.TitleWithCount("Parties", len(parties), "party")
	if len(parties) == 0 {
		pp.none()
		return
	}
	tbl := pp.table()
	pp.header(tbl, "", "Title", "When", "Host", "Accepted", "Declined", "Pending")
	for _, p := range parties {
		pp.row(tbl, p.ID, glyph.Status(string(p.Status)), p.Title, fmt.Sprintf("%s %s", p.Date, p.Time), p.Creator,
			p.Count(social.Accepted), p.Count(social.Declined), p.Count(social.Pending))
	}
	pp.flush(tbl)
}

// Friends prints friends with their presence.
func (pp *PrettyPrint) Friends(friends []*social.Friend) {
	pp.TitleWithCount("Friends", len(friends), "friend")
	if len(friends) == 0 {
		pp.none()
		return
	}
	tbl := pp.table()
	pp.header(tbl, "", "Name", "Last seen")
	for _, f := range friends {
		seen := "never"
		if !f.LastActivity.IsZero() {
			seen = f.LastActivity.Local().Format("Jan 2 15:04")
		}
		pp.row(tbl, f.ID, glyph.Status(string(f.Status)), f.Name, seen)
	}
	pp.flush(tbl)
}

// Report prints completed milestones and party answers inside a window.
func (pp *PrettyPrint) Report(r app.ReportResult) {
	pp.Title(fmt.Sprintf("Report %s to %s", r.Since.Local().Format("Jan 2 15:04"), r.Until.Local().Format("Jan 2 15:04")))
	if len(r.Sections) == 0 {
		pp.none()
	}
	for _, s := range r.Sections {
		pp.TitleWithCount(s.Goal, len(s.Items), "milestone")
		for _, it := range s.Items {
			pp.id(it.Milestone.ID)
			_, _ = fmt.Fprintf(pp.out(), "%s week %d %s\n", glyph.Status("done"), it.Milestone.Week, it.Milestone.Title)
		}
		pp.NewLine()
	}
	f := color.New(color.Faint)
	_, _ = f.Fprintf(pp.out(), "%d milestones completed, %d party responses\n", r.Total, r.Responses)
}
