package printers

import (
	"fmt"

	"github.com/fatih/color"

	"tableflip.dev/pilot/pkg/admin"
	"tableflip.dev/pilot/pkg/glyph"
)

// Users prints the admin user table.
func (pp *PrettyPrint) Users(users []admin.User) {
	pp.TitleWithCount("Users", len(users), "user")
	if len(users) == 0 {
		pp.none()
		return
	}
	tbl := pp.table()
	tbl.AddRow(glyph.Bold("ID"), glyph.Bold("Email"), glyph.Bold("Name"), glyph.Bold("Joined"), glyph.Bold("Last sign in"), glyph.Bold("Status"))
	red := color.New(color.FgRed)
	green := color.New(color.FgGreen)
	for _, u := range users {
		status := green.Sprint("active")
		if u.Suspended {
			status = red.Sprint("suspended")
		}
		last := "never"
		if !u.LastSignIn.IsZero() {
			last = u.LastSignIn.Local().Format("2006-01-02 15:04")
		}
		tbl.AddRow(u.ID, u.Email, u.FullName, u.CreatedAt.Local().Format("2006-01-02"), last, status)
	}
	pp.flush(tbl)
}

// Stats prints the dashboard figures.
func (pp *PrettyPrint) Stats(s admin.Stats) {
	pp.Title("Dashboard")
	tbl := pp.table()
	tbl.AddRow("Total users", s.TotalUsers)
	tbl.AddRow("Active in 24h", s.ActiveUsers24h)
	tbl.AddRow("Active in 7 days", s.ActiveUsers7d)
	tbl.AddRow("Active in 30 days", s.ActiveUsers30d)
	tbl.AddRow("Daily active", s.DailyActiveUsers)
	tbl.AddRow("Monthly active", s.MonthlyActiveUsers)
	tbl.AddRow("Events created (30 days)", s.EventsCreated30d)
	tbl.AddRow("AI interactions (30 days)", s.AIInteractions)
	pp.flush(tbl)
}

// Notification confirms a sent notification.
func (pp *PrettyPrint) Notification(n admin.Notification) {
	pp.Title(n.Title)
	_, _ = fmt.Fprintln(pp.out(), n.Message)
	_, _ = color.New(color.Faint).Fprintf(pp.out(), "sent %s\n", n.CreatedAt.Local().Format("2006-01-02 15:04"))
}
