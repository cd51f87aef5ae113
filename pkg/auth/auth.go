// Package auth signs users in with signed tokens, keeps the current session on
// disk and decides where a user may go.
package auth

import (
	"context"
	"errors"
	"time"
)

var (
	// ErrUnauthenticated means there is no valid session; send the user to login.
	ErrUnauthenticated = errors.New("auth: not signed in")
	// ErrForbidden means the user is signed in but not allowed; send them to main.
	ErrForbidden = errors.New("auth: not allowed")
	// ErrInvalidCredentials is returned for an unknown email or a wrong password.
	ErrInvalidCredentials = errors.New("auth: invalid email or password")
	// ErrSuspended is returned when a suspended user tries to sign in.
	ErrSuspended = errors.New("auth: account suspended")
)

// Session identifies the signed-in user.
type Session struct {
	UserID    string    `json:"userId"`
	Email     string    `json:"email"`
	IssuedAt  time.Time `json:"issuedAt"`
	ExpiresAt time.Time `json:"expiresAt"`
}

// Authenticator provides the current session.
type Authenticator interface {
	Session(ctx context.Context) (*Session, error)
	SignOut(ctx context.Context) error
}

// Credentials checks an email and password and returns the user id.
type Credentials interface {
	Verify(ctx context.Context, email, password string) (string, error)
}
