// Package tui is the Bubble Tea front end of the planner.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/v2/textinput"
	"github.com/charmbracelet/bubbles/v2/viewport"
	tea "github.com/charmbracelet/bubbletea/v2"
	"github.com/charmbracelet/lipgloss/v2"

	"tableflip.dev/pilot/pkg/app"
	"tableflip.dev/pilot/pkg/goal"
	"tableflip.dev/pilot/pkg/store"
)

type mode int

const (
	modeNormal mode = iota
	modeInsert
	modeHelp
)

const normalStatus = "tab switch screens, h/j/k/l move, [ ] month, t today, a add, ? help, q quit"

// Model is the root Bubble Tea model.
type Model struct {
	svc   *app.Service
	ctx   context.Context
	theme Theme

	mode   mode
	status string
	err    error

	cursor map[app.Tab]int
	input  textinput.Model
	detail viewport.Model

	changes <-chan store.Event
	colour  bool

	width  int
	height int
}

// Option customises a Model.
type Option func(*Model)

// WithTheme replaces the default theme.
func WithTheme(t Theme) Option {
	return func(m *Model) { m.theme = t }
}

// WithColour toggles the coloured progress gradient.
func WithColour(on bool) Option {
	return func(m *Model) { m.colour = on }
}

// WithChanges reloads the session whenever persistence reports a change.
func WithChanges(ch <-chan store.Event) Option {
	return func(m *Model) { m.changes = ch }
}

// WithContext sets the context used for service calls.
func WithContext(ctx context.Context) Option {
	return func(m *Model) { m.ctx = ctx }
}

// New creates a UI model backed by the service.
func New(svc *app.Service, opts ...Option) Model {
	if svc.Session == nil {
		svc.Session = app.NewSession(svc.Now)
	}

	ti := textinput.New()
	ti.Placeholder = "09:00-10:00 Title @work"
	ti.CharLimit = 256
	ti.Prompt = ""
	ti.Styles.Cursor.Color = lipgloss.Color("218")

	m := Model{
		svc:    svc,
		ctx:    context.Background(),
		theme:  DefaultTheme(),
		status: normalStatus,
		cursor: make(map[app.Tab]int),
		input:  ti,
		detail: viewport.New(viewport.WithWidth(40), viewport.WithHeight(12)),
		width:  100,
		height: 30,
	}
	for _, opt := range opts {
		opt(&m)
	}
	m.refreshDetail()
	return m
}

type errMsg struct{ err error }
type changedMsg struct{ event store.Event }
type reloadedMsg struct{}

// Init starts listening for storage changes.
func (m Model) Init() tea.Cmd {
	return m.waitForChange()
}

func (m Model) waitForChange() tea.Cmd {
	if m.changes == nil {
		return nil
	}
	ch := m.changes
	return func() tea.Msg {
		ev, ok := <-ch
		if !ok {
			return nil
		}
		return changedMsg{event: ev}
	}
}

func (m Model) reload() tea.Cmd {
	svc, ctx := m.svc, m.ctx
	return func() tea.Msg {
		if err := svc.Load(ctx); err != nil {
			return errMsg{err}
		}
		return reloadedMsg{}
	}
}

// Update handles messages and keybindings.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.applySizes()
	case errMsg:
		m.err = msg.err
	case changedMsg:
		cmds = append(cmds, m.reload(), m.waitForChange())
	case reloadedMsg:
		m.clampCursors()
		m.refreshDetail()
	case tea.KeyPressMsg:
		switch m.mode {
		case modeHelp:
			switch msg.String() {
			case "q", "esc", "?":
				m.mode = modeNormal
			}
		case modeInsert:
			cmds = append(cmds, m.updateInsert(msg))
		case modeNormal:
			cmds = append(cmds, m.updateNormal(msg))
		}
	default:
		if m.mode == modeInsert {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) updateInsert(msg tea.KeyPressMsg) tea.Cmd {
	switch msg.String() {
	case "enter":
		raw := strings.TrimSpace(m.input.Value())
		m.leaveInsert()
		if raw == "" {
			m.status = "Add cancelled"
			return nil
		}
		e, err := parseEventInput(raw, m.svc.Session.Selected())
		if err != nil {
			m.err = err
			return nil
		}
		if _, err := m.svc.AddEvent(m.ctx, e); err != nil {
			m.err = err
			return nil
		}
		m.err = nil
		m.status = fmt.Sprintf("Added %q on %s", e.Title, e.Date)
	case "esc":
		m.leaveInsert()
		m.status = "Add cancelled"
	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		return cmd
	}
	return nil
}

func (m *Model) leaveInsert() {
	m.mode = modeNormal
	m.input.Reset()
	m.input.Blur()
}

func (m *Model) updateNormal(msg tea.KeyPressMsg) tea.Cmd {
	sess := m.svc.Session
	key := msg.String()

	switch key {
	case "q", "ctrl+c":
		return tea.Quit
	case "?":
		m.mode = modeHelp
		return nil
	case "tab":
		sess.SetTab(sess.Tab().Next())
		m.refreshDetail()
		return nil
	case "shift+tab":
		sess.SetTab(sess.Tab().Prev())
		m.refreshDetail()
		return nil
	case "1", "2", "3", "4", "5", "6":
		tabs := app.AllTabs()
		sess.SetTab(tabs[int(key[0]-'1')])
		m.refreshDetail()
		return nil
	}

	m.err = nil
	if sess.Tab() == app.TabCalendar {
		return m.updateCalendar(key)
	}

	switch key {
	case "j", "down":
		m.moveCursor(1)
	case "k", "up":
		m.moveCursor(-1)
	case "pgdown", "pgup":
		var cmd tea.Cmd
		m.detail, cmd = m.detail.Update(msg)
		return cmd
	}

	switch sess.Tab() {
	case app.TabGoals:
		m.updateGoals(key)
	case app.TabAIGoals:
		m.updateAIGoals(key)
	}
	m.refreshDetail()
	return nil
}

func (m *Model) updateCalendar(key string) tea.Cmd {
	sess := m.svc.Session
	switch key {
	case "h", "left":
		sess.MoveSelection(-1)
	case "l", "right":
		sess.MoveSelection(1)
	case "k", "up":
		sess.MoveSelection(-7)
	case "j", "down":
		sess.MoveSelection(7)
	case "[":
		sess.PrevMonth()
	case "]":
		sess.NextMonth()
	case "t":
		sess.GoToday()
	case "a", "o":
		m.mode = modeInsert
		m.input.SetValue("")
		m.status = "Add event on " + sess.Selected().String()
		return tea.Batch(m.input.Focus(), textinput.Blink)
	}
	return nil
}

func (m *Model) updateGoals(key string) {
	if key != "x" && key != "enter" {
		return
	}
	goals := m.svc.Session.Goals()
	i := m.cursor[app.TabGoals]
	if i >= len(goals) {
		return
	}
	g := goals[i]
	if _, err := m.svc.SetGoalCompleted(m.ctx, g.ID, !g.Completed); err != nil {
		m.err = err
		return
	}
	if g.Completed {
		m.status = fmt.Sprintf("Reopened %q", g.Title)
	} else {
		m.status = fmt.Sprintf("Completed %q", g.Title)
	}
}

func (m *Model) updateAIGoals(key string) {
	g := m.selectedAIGoal()
	if g == nil {
		return
	}
	switch key {
	case "c":
		next := nextMilestone(g)
		if next == nil {
			m.status = "No unlocked milestone left this week"
			return
		}
		updated, err := m.svc.CompleteMilestone(m.ctx, g.ID, next.ID)
		if err != nil {
			m.err = err
			return
		}
		m.status = fmt.Sprintf("Completed %q, progress %d%%", next.Title, updated.Progress)
	case "n":
		updated, err := m.svc.AdvanceWeek(m.ctx, g.ID)
		if err != nil {
			m.err = err
			return
		}
		if updated.Active {
			m.status = fmt.Sprintf("Week %d of %d", updated.CurrentWeek, updated.Duration)
		} else {
			m.status = fmt.Sprintf("%q finished", updated.Title)
		}
	case "r":
		unread := g.Unread()
		for _, msg := range unread {
			if _, err := m.svc.MarkRead(m.ctx, g.ID, msg.ID); err != nil {
				m.err = err
				return
			}
		}
		m.status = fmt.Sprintf("Marked %d message(s) read", len(unread))
	}
}

func nextMilestone(g *goal.AIGoal) *goal.Milestone {
	for _, ms := range g.Unlocked() {
		if !ms.Completed {
			return &ms
		}
	}
	return nil
}

func (m *Model) selectedAIGoal() *goal.AIGoal {
	goals := m.svc.Session.AIGoals()
	i := m.cursor[app.TabAIGoals]
	if i >= len(goals) {
		return nil
	}
	return goals[i]
}

func (m *Model) listLen(tab app.Tab) int {
	sess := m.svc.Session
	switch tab {
	case app.TabGoals:
		return len(sess.Goals())
	case app.TabAIGoals:
		return len(sess.AIGoals())
	case app.TabParties:
		return len(sess.Parties())
	case app.TabFriends:
		return len(sess.Friends())
	}
	return 0
}

func (m *Model) moveCursor(delta int) {
	tab := m.svc.Session.Tab()
	n := m.listLen(tab)
	if n == 0 {
		m.cursor[tab] = 0
		return
	}
	i := m.cursor[tab] + delta
	if i < 0 {
		i = 0
	}
	if i >= n {
		i = n - 1
	}
	m.cursor[tab] = i
	m.detail.GotoTop()
}

func (m *Model) clampCursors() {
	for tab, i := range m.cursor {
		if n := m.listLen(tab); i >= n {
			m.cursor[tab] = max(n-1, 0)
		}
	}
}

// applySizes recalculates the detail pane for the terminal size.
func (m *Model) applySizes() {
	w := m.width - listWidth - 6
	if w < 20 {
		w = 20
	}
	h := m.height - 8
	if h < 5 {
		h = 5
	}
	m.detail.SetWidth(w)
	m.detail.SetHeight(h)
	m.refreshDetail()
}

// Run launches the planner UI and blocks until it exits.
func Run(ctx context.Context, svc *app.Service, opts ...Option) error {
	opts = append([]Option{WithContext(ctx)}, opts...)
	p := tea.NewProgram(New(svc, opts...), tea.WithAltScreen(), tea.WithContext(ctx))
	_, err := p.Run()
	return err
}
