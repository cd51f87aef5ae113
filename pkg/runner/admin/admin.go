// Package admin runs the administrator commands against the user directory.
package admin

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"

	"tableflip.dev/pilot/pkg/admin"
	"tableflip.dev/pilot/pkg/printers"
)

var errNoService = errors.New("admin: no admin service")

// Output controls how results are printed.
type Output struct {
	JSON bool
	Out  io.Writer
}

func (o Output) pretty() *printers.PrettyPrint {
	return &printers.PrettyPrint{Out: o.Out}
}

// Alerts prints operator alerts to w, in yellow when w is a terminal.
func Alerts(w io.Writer) admin.NotifierFunc {
	yellow := color.New(color.FgYellow)
	return func(msg string) {
		_, _ = yellow.Fprintln(w, msg)
	}
}

// Prompt asks yes or no questions on out and reads the answer from in.
// Anything other than y or yes is a no.
func Prompt(in io.Reader, out io.Writer) admin.ConfirmerFunc {
	r := bufio.NewReader(in)
	return func(prompt string) bool {
		_, _ = fmt.Fprintf(out, "%s [y/N] ", prompt)
		line, err := r.ReadString('\n')
		if err != nil && line == "" {
			return false
		}
		switch strings.ToLower(strings.TrimSpace(line)) {
		case "y", "yes":
			return true
		}
		return false
	}
}

// Yes confirms everything.
var Yes = admin.ConfirmerFunc(func(string) bool { return true })

// Users lists the directory, optionally filtered by email or name.
type Users struct {
	Admin *admin.Service
	Query string
	Output
}

func (n *Users) Do(ctx context.Context) error {
	if n.Admin == nil {
		return errNoService
	}
	if err := n.Admin.Refresh(ctx); err != nil {
		return err
	}
	users := n.Admin.Search(n.Query)
	if n.JSON {
		return printers.JSON(n.Out, users)
	}
	pp := n.pretty()
	pp.NewLine()
	pp.Users(users)
	return nil
}

// Suspend blocks or, with Reinstate set, unblocks a user.
type Suspend struct {
	Admin     *admin.Service
	ID        string
	Reinstate bool
	Output
}

func (n *Suspend) Do(ctx context.Context) error {
	if n.Admin == nil {
		return errNoService
	}
	if n.Reinstate {
		return n.Admin.Reinstate(ctx, n.ID)
	}
	return n.Admin.Suspend(ctx, n.ID)
}

// Delete removes a user after the service's Confirmer agrees.
type Delete struct {
	Admin *admin.Service
	ID    string
	Output
}

func (n *Delete) Do(ctx context.Context) error {
	if n.Admin == nil {
		return errNoService
	}
	err := n.Admin.Delete(ctx, n.ID)
	if errors.Is(err, admin.ErrCancelled) {
		_, _ = fmt.Fprintln(n.pretty().Writer(), "Nothing deleted")
		return nil
	}
	return err
}

// Notify broadcasts a notification to every user.
type Notify struct {
	Admin   *admin.Service
	Title   string
	Message string
	Output
}

func (n *Notify) Do(ctx context.Context) error {
	if n.Admin == nil {
		return errNoService
	}
	sent, err := n.Admin.Notify(ctx, n.Title, n.Message)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, sent)
	}
	pp := n.pretty()
	pp.NewLine()
	pp.Notification(sent)
	return nil
}

// Stats prints the dashboard.
type Stats struct {
	Admin *admin.Service
	Output
}

func (n *Stats) Do(ctx context.Context) error {
	if n.Admin == nil {
		return errNoService
	}
	stats, err := n.Admin.Dashboard(ctx)
	if err != nil {
		return err
	}
	if n.JSON {
		return printers.JSON(n.Out, stats)
	}
	pp := n.pretty()
	pp.NewLine()
	pp.Stats(stats)
	return nil
}

// Seed creates the sample users with a shared password.
type Seed struct {
	Admin    *admin.Service
	Password string
	Output
}

func (n *Seed) Do(ctx context.Context) error {
	if n.Admin == nil {
		return errNoService
	}
	if n.Password == "" {
		return errors.New("admin: seed needs a password")
	}
	created, err := n.Admin.Seed(ctx, n.Password)
	if err != nil {
		return err
	}
	_, _ = fmt.Fprintf(n.pretty().Writer(), "Created %d sample user(s)\n", created)
	return nil
}
