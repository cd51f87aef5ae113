package auth

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// FileSessions keeps the signed-in token in a file, like a CLI credential.
// Session re-reads and re-verifies the file on every call.
type FileSessions struct {
	Path        string
	Tokens      *Tokens
	Credentials Credentials
}

var _ Authenticator = (*FileSessions)(nil)

// SignIn verifies the credentials and stores a fresh token.
func (f *FileSessions) SignIn(ctx context.Context, email, password string) (*Session, error) {
	if f.Credentials == nil {
		return nil, errors.New("auth: no credential store configured")
	}
	email = strings.TrimSpace(email)
	userID, err := f.Credentials.Verify(ctx, email, password)
	if err != nil {
		return nil, err
	}
	token, err := f.Tokens.Issue(userID, email)
	if err != nil {
		return nil, err
	}
	if err := os.MkdirAll(filepath.Dir(f.Path), 0o700); err != nil {
		return nil, fmt.Errorf("auth: ensure session directory: %w", err)
	}
	if err := os.WriteFile(f.Path, []byte(token+"\n"), 0o600); err != nil {
		return nil, fmt.Errorf("auth: write session: %w", err)
	}
	return f.Tokens.Parse(token)
}

// Session returns the stored session or ErrUnauthenticated.
func (f *FileSessions) Session(ctx context.Context) (*Session, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrUnauthenticated
		}
		return nil, fmt.Errorf("auth: read session: %w", err)
	}
	token := strings.TrimSpace(string(data))
	if token == "" {
		return nil, ErrUnauthenticated
	}
	return f.Tokens.Parse(token)
}

// SignOut forgets the stored token. Signing out twice is fine.
func (f *FileSessions) SignOut(_ context.Context) error {
	if err := os.Remove(f.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("auth: remove session: %w", err)
	}
	return nil
}

// Token returns the raw stored token, for handing to the REST API.
func (f *FileSessions) Token() (string, error) {
	data, err := os.ReadFile(f.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", ErrUnauthenticated
		}
		return "", err
	}
	return strings.TrimSpace(string(data)), nil
}
