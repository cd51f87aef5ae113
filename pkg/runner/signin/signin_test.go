package signin

import (
	"bytes"
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"

	"tableflip.dev/pilot/pkg/admin"
	"tableflip.dev/pilot/pkg/auth"
)

type credentials map[string]string

func (c credentials) Verify(_ context.Context, email, password string) (string, error) {
	if pw, ok := c[email]; ok && pw == password {
		return "id-" + email, nil
	}
	return "", auth.ErrInvalidCredentials
}

func TestLoginWhoAmILogout(t *testing.T) {
	color.NoColor = true
	ctx := context.Background()
	sessions := &auth.FileSessions{
		Path:        filepath.Join(t.TempDir(), "session"),
		Tokens:      auth.NewTokens("test-secret"),
		Credentials: credentials{"boss@example.com": "hunter2"},
	}
	allow := auth.NewAllowList("boss@example.com")

	var buf bytes.Buffer
	bad := &Login{Sessions: sessions, Allow: allow, Email: "boss@example.com", Password: "nope", Out: &buf}
	if err := bad.Do(ctx); !errors.Is(err, auth.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}

	login := &Login{Sessions: sessions, Allow: allow, Email: "boss@example.com", In: strings.NewReader("hunter2\n"), Out: &buf}
	if err := login.Do(ctx); err != nil {
		t.Fatalf("login: %v", err)
	}
	if !strings.Contains(buf.String(), "Signed in as boss@example.com (admin)") {
		t.Fatalf("unexpected login output %q", buf.String())
	}

	buf.Reset()
	if err := (&WhoAmI{Sessions: sessions, Allow: allow, Out: &buf}).Do(ctx); err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if !strings.Contains(buf.String(), "[admin]") {
		t.Fatalf("expected the admin marker, got %q", buf.String())
	}

	if err := (&Logout{Sessions: sessions, Out: &buf}).Do(ctx); err != nil {
		t.Fatalf("logout: %v", err)
	}
	buf.Reset()
	if err := (&WhoAmI{Sessions: sessions, Allow: allow, Out: &buf}).Do(ctx); err != nil {
		t.Fatalf("whoami: %v", err)
	}
	if !strings.Contains(buf.String(), "Not signed in") {
		t.Fatalf("expected signed out, got %q", buf.String())
	}
}

type seeder struct {
	users     []admin.User
	passwords []string
}

func (s *seeder) CreateUser(_ context.Context, u admin.User, password string) error {
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return admin.ErrDuplicate
		}
	}
	s.users = append(s.users, u)
	s.passwords = append(s.passwords, password)
	return nil
}

func TestRegister(t *testing.T) {
	ctx := context.Background()
	users := &seeder{}
	var buf bytes.Buffer

	short := &Register{Users: users, Email: "new@example.com", Password: "abc", Out: &buf}
	if err := short.Do(ctx); err == nil {
		t.Fatalf("expected a short password to be rejected")
	}

	r := &Register{Users: users, Email: " new@example.com ", Name: "New Person", In: strings.NewReader("longenough\n"), Out: &buf}
	if err := r.Do(ctx); err != nil {
		t.Fatalf("register: %v", err)
	}
	if len(users.users) != 1 || users.users[0].Email != "new@example.com" || users.passwords[0] != "longenough" {
		t.Fatalf("unexpected users %+v %v", users.users, users.passwords)
	}
	if users.users[0].CreatedAt.IsZero() {
		t.Fatalf("expected a creation time")
	}

	again := &Register{Users: users, Email: "new@example.com", Password: "longenough", Out: &buf}
	if err := again.Do(ctx); !errors.Is(err, admin.ErrDuplicate) {
		t.Fatalf("expected ErrDuplicate, got %v", err)
	}
}
