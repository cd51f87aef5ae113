package auth

import (
	"context"
	"strings"
)

// Bearer authenticates a single request from its Authorization header.
type Bearer struct {
	Tokens *Tokens
	Header string
}

// Session parses the bearer token.
func (b Bearer) Session(context.Context) (*Session, error) {
	raw, ok := strings.CutPrefix(b.Header, "Bearer ")
	if !ok || strings.TrimSpace(raw) == "" {
		return nil, ErrUnauthenticated
	}
	return b.Tokens.Parse(strings.TrimSpace(raw))
}

// SignOut is a no-op; bearer tokens simply expire.
func (Bearer) SignOut(context.Context) error { return nil }
