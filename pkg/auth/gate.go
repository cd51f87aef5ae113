package auth

import (
	"context"
	"errors"
	"sort"
	"strings"
)

// AllowList holds the emails allowed into the admin surface. It is a
// convenience filter, not a security boundary.
type AllowList struct {
	emails map[string]struct{}
}

// NewAllowList normalises emails to lower case.
func NewAllowList(emails ...string) AllowList {
	a := AllowList{emails: make(map[string]struct{}, len(emails))}
	for _, e := range emails {
		if e = normaliseEmail(e); e != "" {
			a.emails[e] = struct{}{}
		}
	}
	return a
}

// Allows reports whether email is on the list.
func (a AllowList) Allows(email string) bool {
	_, ok := a.emails[normaliseEmail(email)]
	return ok
}

// Emails returns the sorted list.
func (a AllowList) Emails() []string {
	out := make([]string, 0, len(a.emails))
	for e := range a.emails {
		out = append(out, e)
	}
	sort.Strings(out)
	return out
}

func normaliseEmail(e string) string {
	return strings.ToLower(strings.TrimSpace(e))
}

// Route is where a user should land.
type Route string

const (
	RouteLogin Route = "login"
	RouteMain  Route = "main"
	RouteAdmin Route = "admin"
)

// RouteFor maps an auth error to the route the user should be sent to.
func RouteFor(err error) Route {
	switch {
	case err == nil:
		return RouteMain
	case errors.Is(err, ErrForbidden):
		return RouteMain
	default:
		return RouteLogin
	}
}

// Gate combines the session source and the allow-list.
type Gate struct {
	Auth  Authenticator
	Allow AllowList
}

// Resolve is the sign-in callback: no session goes to login, allow-listed
// users may open admin, everyone else lands on main.
func (g *Gate) Resolve(ctx context.Context) (Route, *Session) {
	s, err := g.Auth.Session(ctx)
	if err != nil {
		return RouteLogin, nil
	}
	if g.Allow.Allows(s.Email) {
		return RouteAdmin, s
	}
	return RouteMain, s
}

// RequireAdmin returns the session of an allow-listed user, ErrUnauthenticated
// without a session and ErrForbidden for everyone else.
func (g *Gate) RequireAdmin(ctx context.Context) (*Session, error) {
	s, err := g.Auth.Session(ctx)
	if err != nil {
		if errors.Is(err, ErrUnauthenticated) {
			return nil, err
		}
		return nil, errors.Join(ErrUnauthenticated, err)
	}
	if !g.Allow.Allows(s.Email) {
		return s, ErrForbidden
	}
	return s, nil
}

// IsAdmin reports whether the session belongs to an allow-listed user.
func (g *Gate) IsAdmin(s *Session) bool {
	return s != nil && g.Allow.Allows(s.Email)
}
