// Package signin signs the command line user in and out.
package signin

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/pilot/pkg/admin"
	"tableflip.dev/pilot/pkg/auth"
	"tableflip.dev/pilot/pkg/printers"
)

// Register creates an account in the user directory. When no password is
// given it is read as one line from In.
type Register struct {
	Users    admin.Seeder
	Email    string
	Name     string
	Password string
	Now      func() time.Time
	In       io.Reader
	Out      io.Writer
}

func (n *Register) Do(ctx context.Context) error {
	if n.Users == nil {
		return errors.New("register: no user directory")
	}
	password, err := readPassword(n.Password, n.In, n.Out)
	if err != nil {
		return err
	}
	if len(password) < minPassword {
		return fmt.Errorf("register: password needs at least %d characters", minPassword)
	}
	now := time.Now
	if n.Now != nil {
		now = n.Now
	}
	u := admin.User{Email: strings.TrimSpace(n.Email), FullName: strings.TrimSpace(n.Name), CreatedAt: now()}
	if err := n.Users.CreateUser(ctx, u, password); err != nil {
		return err
	}
	_, _ = fmt.Fprintf(writer(n.Out), "Registered %s, sign in with: pilot login %s\n", u.Email, u.Email)
	return nil
}

const minPassword = 6

func readPassword(password string, in io.Reader, out io.Writer) (string, error) {
	if password != "" || in == nil {
		return password, nil
	}
	_, _ = fmt.Fprint(writer(out), "Password: ")
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}

// Login verifies credentials and keeps the session token on disk. When no
// password is given it is read as one line from In.
type Login struct {
	Sessions *auth.FileSessions
	Allow    auth.AllowList
	Email    string
	Password string
	In       io.Reader
	Out      io.Writer
}

func (n *Login) Do(ctx context.Context) error {
	if n.Sessions == nil {
		return errors.New("login: no session store")
	}
	password, err := readPassword(n.Password, n.In, n.Out)
	if err != nil {
		return err
	}
	s, err := n.Sessions.SignIn(ctx, n.Email, password)
	if err != nil {
		return err
	}
	gate := auth.Gate{Auth: n.Sessions, Allow: n.Allow}
	route, _ := gate.Resolve(ctx)
	_, _ = fmt.Fprintf(writer(n.Out), "Signed in as %s (%s)\n", s.Email, route)
	return nil
}

// Logout forgets the stored session.
type Logout struct {
	Sessions *auth.FileSessions
	Out      io.Writer
}

func (n *Logout) Do(ctx context.Context) error {
	if n.Sessions == nil {
		return errors.New("logout: no session store")
	}
	if err := n.Sessions.SignOut(ctx); err != nil {
		return err
	}
	_, _ = fmt.Fprintln(writer(n.Out), "Signed out")
	return nil
}

// WhoAmI prints the current session and where it may go.
type WhoAmI struct {
	Sessions *auth.FileSessions
	Allow    auth.AllowList
	JSON     bool
	Out      io.Writer
}

type whoami struct {
	Email     string     `json:"email,omitempty"`
	UserID    string     `json:"userId,omitempty"`
	ExpiresAt *time.Time `json:"expiresAt,omitempty"`
	Route     auth.Route `json:"route"`
}

func (n *WhoAmI) Do(ctx context.Context) error {
	if n.Sessions == nil {
		return errors.New("whoami: no session store")
	}
	gate := auth.Gate{Auth: n.Sessions, Allow: n.Allow}
	route, s := gate.Resolve(ctx)
	out := whoami{Route: route}
	if s != nil {
		out.Email, out.UserID, out.ExpiresAt = s.Email, s.UserID, &s.ExpiresAt
	}
	if n.JSON {
		return printers.JSON(n.Out, out)
	}
	w := writer(n.Out)
	if s == nil {
		_, _ = fmt.Fprintln(w, "Not signed in")
		return nil
	}
	_, _ = fmt.Fprintf(w, "%s, session valid until %s", s.Email, s.ExpiresAt.Local().Format(time.RFC1123))
	if route == auth.RouteAdmin {
		_, _ = color.New(color.Bold).Fprint(w, " [admin]")
	}
	_, _ = fmt.Fprintln(w, "")
	return nil
}

func writer(w io.Writer) io.Writer {
	if w == nil {
		return color.Output
	}
	return w
}
