package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss/v2"
	"github.com/muesli/reflow/wordwrap"

	"tableflip.dev/pilot/pkg/app"
	"tableflip.dev/pilot/pkg/calendar"
	"tableflip.dev/pilot/pkg/event"
	"tableflip.dev/pilot/pkg/glyph"
	"tableflip.dev/pilot/pkg/social"
)

const (
	listWidth = 34
	barWidth  = 20
)

var tabLabels = map[app.Tab]string{
	app.TabCalendar: "Calendar",
	app.TabGoals:    "Goals",
	app.TabAIGoals:  "AI Goals",
	app.TabParties:  "Parties",
	app.TabFriends:  "Friends",
	app.TabProfile:  "Profile",
}

// View renders the tab bar, the active screen and the status line.
func (m Model) View() string {
	var body string
	switch m.svc.Session.Tab() {
	case app.TabCalendar:
		body = m.viewCalendar()
	case app.TabProfile:
		body = m.viewProfile()
	default:
		body = m.viewList()
	}

	parts := []string{m.viewTabs(), body}
	switch m.mode {
	case modeInsert:
		parts = append(parts, "Add: "+m.input.View())
	case modeHelp:
		parts = append(parts, m.theme.Footer.Help.Render(helpText))
	}
	parts = append(parts, m.viewStatus())
	return strings.Join(parts, "\n\n")
}

const helpText = `tab/shift+tab or 1-6   switch screens
h/l  j/k               previous/next day, previous/next week
[ ]                    previous/next month
t                      jump to today
a                      add an event on the selected day
j/k                    move in lists
x                      toggle goal completion
c n r                  AI goals: complete milestone, next week, read messages
q                      quit`

func (m Model) viewTabs() string {
	current := m.svc.Session.Tab()
	labels := make([]string, 0, len(tabLabels))
	for i, tab := range app.AllTabs() {
		label := fmt.Sprintf("%d %s", i+1, tabLabels[tab])
		if tab == current {
			labels = append(labels, m.theme.Tabs.Active.Render(label))
		} else {
			labels = append(labels, m.theme.Tabs.Inactive.Render(label))
		}
	}
	return strings.Join(labels, m.theme.Tabs.Gap.Render(" │ "))
}

func (m Model) viewStatus() string {
	mode := map[mode]string{modeNormal: "NORMAL", modeInsert: "INSERT", modeHelp: "HELP"}[m.mode]
	line := m.theme.Footer.Mode.Render(mode) + " "
	if m.err != nil {
		return line + m.theme.Footer.Error.Render("ERR: "+m.err.Error())
	}
	return line + m.theme.Footer.Status.Render(m.status)
}

func (m Model) viewCalendar() string {
	sess := m.svc.Session
	view := sess.View()
	grid := calendar.Render(view, m.svc.MonthTimeline(view.Month()), m.theme.Calendar)
	left := m.theme.Panel.Frame.Render(grid)

	right := m.theme.Panel.Frame.Render(m.agendaText(view.Selected().String()))
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (m Model) agendaText(title string) string {
	events := m.svc.AgendaByStart()
	lines := []string{m.theme.Panel.Title.Render("Agenda " + title)}
	if len(events) == 0 {
		return strings.Join(append(lines, m.theme.Panel.Muted.Render("Nothing planned")), "\n")
	}
	for _, e := range events {
		lines = append(lines, m.agendaLine(e))
	}
	return strings.Join(lines, "\n")
}

func (m Model) agendaLine(e *event.Event) string {
	line := fmt.Sprintf("%s-%s %s %s", e.Start, e.End, glyph.Category(string(e.Category)), e.Title)
	if e.Progress != nil {
		line += "  " + m.progressBar(*e.Progress, 10)
	}
	return line
}

func (m Model) viewList() string {
	lines := m.listLines()
	if len(lines) == 0 {
		lines = []string{m.theme.Panel.Muted.Render("Nothing here yet")}
	}
	sel := m.cursor[m.svc.Session.Tab()]
	for i := range lines {
		text := truncate(lines[i], listWidth-4)
		if i == sel {
			text = m.theme.Panel.Selected.Render(text)
		}
		lines[i] = text
	}
	left := m.theme.Panel.Frame.Width(listWidth).Render(strings.Join(lines, "\n"))
	right := m.theme.Panel.Frame.Render(m.detail.View())
	return lipgloss.JoinHorizontal(lipgloss.Top, left, " ", right)
}

func (m Model) listLines() []string {
	sess := m.svc.Session
	var lines []string
	switch sess.Tab() {
	case app.TabGoals:
		for _, g := range sess.Goals() {
			mark := "[ ]"
			if g.Completed {
				mark = "[x]"
			}
			lines = append(lines, fmt.Sprintf("%s %s", mark, g.Title))
		}
	case app.TabAIGoals:
		for _, g := range sess.AIGoals() {
			lines = append(lines, fmt.Sprintf("%3d%% %s", g.Progress, g.Title))
		}
	case app.TabParties:
		for _, p := range sess.Parties() {
			lines = append(lines, fmt.Sprintf("%s %s", p.Date, p.Title))
		}
	case app.TabFriends:
		friends := sess.Friends()
		social.SortByPresence(friends)
		for _, f := range friends {
			lines = append(lines, fmt.Sprintf("%s %s", glyph.Status(string(f.Status)), f.Name))
		}
	}
	return lines
}

// refreshDetail renders the selected item into the detail viewport.
func (m *Model) refreshDetail() {
	width := m.detail.Width()
	if width <= 0 {
		width = 40
	}
	m.detail.SetContent(wordwrap.String(m.detailText(), width))
}

func (m Model) detailText() string {
	sess := m.svc.Session
	i := m.cursor[sess.Tab()]
	switch sess.Tab() {
	case app.TabGoals:
		goals := sess.Goals()
		if i >= len(goals) {
			return m.recurringText()
		}
		g := goals[i]
		lines := []string{
			m.theme.Panel.Title.Render(g.Title),
			fmt.Sprintf("Due %s %s, %s priority, %s", g.TargetDate, g.TargetTime, g.Priority, g.Category),
		}
		if g.Overdue(sess.View().Today()) {
			lines = append(lines, "Overdue")
		}
		if g.Description != "" {
			lines = append(lines, "", g.Description)
		}
		return strings.Join(lines, "\n") + "\n\n" + m.recurringText()
	case app.TabAIGoals:
		goals := sess.AIGoals()
		if i >= len(goals) {
			return "Start a plan with `pilot add aigoal`."
		}
		return m.aiGoalText(i)
	case app.TabParties:
		parties := sess.Parties()
		if i >= len(parties) {
			return ""
		}
		p := parties[i]
		lines := []string{
			m.theme.Panel.Title.Render(p.Title),
			fmt.Sprintf("%s at %s, hosted by %s", p.Date, p.Time, p.Creator),
			fmt.Sprintf("Status %s: %d accepted, %d declined, %d pending",
				p.Resolve(), p.Count(social.Accepted), p.Count(social.Declined), p.Count(social.Pending)),
		}
		if p.Cost != "" {
			lines = append(lines, "Cost "+p.Cost)
		}
		if p.Description != "" {
			lines = append(lines, "", p.Description)
		}
		return strings.Join(lines, "\n")
	case app.TabFriends:
		friends := sess.Friends()
		social.SortByPresence(friends)
		if i >= len(friends) {
			return ""
		}
		f := friends[i]
		return fmt.Sprintf("%s\n%s, last active %s", m.theme.Panel.Title.Render(f.Name), f.Status, f.LastActivity.Local().Format(time.RFC822))
	}
	return ""
}

func (m Model) recurringText() string {
	tasks := m.svc.Session.RecurringTasks()
	if len(tasks) == 0 {
		return ""
	}
	lines := []string{m.theme.Panel.Title.Render("Recurring")}
	for _, r := range tasks {
		state := ""
		if !r.Active {
			state = " (paused)"
		}
		lines = append(lines, fmt.Sprintf("%s %s-%s %s%s", r.Days, r.Start, r.End, r.Title, state))
	}
	return strings.Join(lines, "\n")
}

func (m Model) aiGoalText(i int) string {
	g := m.svc.Session.AIGoals()[i]
	lines := []string{
		m.theme.Panel.Title.Render(g.Title),
		fmt.Sprintf("%s, %s, week %d of %d, %d min/day", g.Category, g.Difficulty, g.CurrentWeek, g.Duration, g.DailyMinutes),
		m.progressBar(g.Progress, barWidth),
	}
	if !g.Active {
		lines = append(lines, "Finished")
	}
	if g.Description != "" {
		lines = append(lines, "", g.Description)
	}
	lines = append(lines, "", m.theme.Panel.Title.Render("Milestones"))
	for _, ms := range g.Milestones {
		mark := "[ ]"
		switch {
		case ms.Completed:
			mark = "[x]"
		case ms.Week > g.CurrentWeek:
			mark = "[-]"
		}
		lines = append(lines, fmt.Sprintf("%s w%d %s", mark, ms.Week, ms.Title))
	}
	if unread := g.Unread(); len(unread) > 0 {
		lines = append(lines, "", m.theme.Panel.Title.Render(fmt.Sprintf("Coach (%d unread)", len(unread))))
		for _, msg := range unread {
			lines = append(lines, fmt.Sprintf("%s %s", glyph.Coach(string(msg.Type)), msg.Message))
		}
	}
	return strings.Join(lines, "\n")
}

func (m Model) viewProfile() string {
	sess := m.svc.Session
	user := sess.User()
	if user == "" {
		user = "not signed in"
	}
	lines := []string{
		m.theme.Panel.Title.Render("Profile"),
		"User     " + user,
		fmt.Sprintf("Events   %d", len(sess.Events())),
		fmt.Sprintf("Goals    %d", len(sess.Goals())),
		fmt.Sprintf("AI goals %d", len(sess.AIGoals())),
		fmt.Sprintf("Parties  %d", len(sess.Parties())),
		fmt.Sprintf("Friends  %d", len(sess.Friends())),
	}

	until := time.Now()
	if m.svc.Now != nil {
		until = m.svc.Now()
	}
	report := m.svc.Report(until.AddDate(0, 0, -7), until)
	lines = append(lines, "", fmt.Sprintf("Last 7 days: %d milestone(s), %d party answer(s)", report.Total, report.Responses))
	for _, section := range report.Sections {
		lines = append(lines, fmt.Sprintf("  %s %s", section.Goal, m.progressBar(section.Progress, 10)))
	}
	return m.theme.Panel.Frame.Render(strings.Join(lines, "\n"))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "…"
}
