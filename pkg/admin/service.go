package admin

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"tableflip.dev/pilot/pkg/logging"
	"tableflip.dev/pilot/pkg/validate"
)

// ErrDuplicate is returned by a Seeder for an email that already exists.
var ErrDuplicate = errors.New("admin: user already exists")

// Service runs admin operations. Every mutation is followed by a reload of
// the user list; a failed mutation leaves the list as it was and alerts the
// operator.
type Service struct {
	Directory   Directory
	Broadcaster Broadcaster
	StatsSource StatsSource
	Seeder      Seeder
	Notifier    Notifier
	Confirmer   Confirmer
	Limit       int
	Now         func() time.Time
	Log         *slog.Logger

	mu    sync.Mutex
	users []User
}

func (s *Service) now() time.Time {
	if s.Now == nil {
		return time.Now()
	}
	return s.Now()
}

func (s *Service) limit() int {
	if s.Limit <= 0 {
		return DefaultLimit
	}
	return s.Limit
}

func (s *Service) alert(msg string) {
	if s.Notifier != nil {
		s.Notifier.Alert(msg)
	}
}

// fail logs and reports a backend failure and returns it wrapped.
func (s *Service) fail(op string, err error) error {
	logging.OrDiscard(s.Log).Error("admin operation failed", "op", op, "err", err)
	s.alert(fmt.Sprintf("Failed to %s.", op))
	return fmt.Errorf("admin: %s: %w", op, err)
}

// Users returns the last loaded user list.
func (s *Service) Users() []User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]User(nil), s.users...)
}

// Refresh reloads the user list from the directory.
func (s *Service) Refresh(ctx context.Context) error {
	users, err := s.Directory.ListUsers(ctx, s.limit())
	if err != nil {
		return s.fail("load users", err)
	}
	s.mu.Lock()
	s.users = users
	s.mu.Unlock()
	return nil
}

// resync reloads after a successful mutation.
func (s *Service) resync(ctx context.Context) {
	if err := s.Refresh(ctx); err != nil {
		logging.OrDiscard(s.Log).Warn("resync after mutation", "err", err)
	}
}

// Search filters the loaded users by email or full name, ignoring case.
func (s *Service) Search(term string) []User {
	return Filter(s.Users(), term)
}

// Filter keeps users whose email or full name contains term, ignoring case.
func Filter(users []User, term string) []User {
	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]User, 0, len(users))
	for _, u := range users {
		if term == "" ||
			strings.Contains(strings.ToLower(u.Email), term) ||
			strings.Contains(strings.ToLower(u.FullName), term) {
			out = append(out, u)
		}
	}
	return out
}

// Suspend marks a user suspended.
func (s *Service) Suspend(ctx context.Context, id string) error {
	return s.setSuspended(ctx, id, true)
}

// Reinstate lifts a suspension.
func (s *Service) Reinstate(ctx context.Context, id string) error {
	return s.setSuspended(ctx, id, false)
}

func (s *Service) setSuspended(ctx context.Context, id string, suspended bool) error {
	op := "suspend user"
	if !suspended {
		op = "reinstate user"
	}
	if err := s.Directory.SetSuspended(ctx, id, suspended); err != nil {
		return s.fail(op, err)
	}
	s.resync(ctx)
	logging.OrDiscard(s.Log).Info("user updated", "id", id, "suspended", suspended)
	if suspended {
		s.alert("User suspended.")
	} else {
		s.alert("User reinstated.")
	}
	return nil
}

// Delete removes a user after the operator confirms.
func (s *Service) Delete(ctx context.Context, id string) error {
	if s.Confirmer == nil || !s.Confirmer.Confirm("Delete this user? This cannot be undone.") {
		return ErrCancelled
	}
	if err := s.Directory.DeleteUser(ctx, id); err != nil {
		return s.fail("delete user", err)
	}
	s.resync(ctx)
	logging.OrDiscard(s.Log).Info("user deleted", "id", id)
	s.alert("User deleted.")
	return nil
}

// Notify broadcasts a global notification. Title and message are required.
func (s *Service) Notify(ctx context.Context, title, message string) (Notification, error) {
	n := Notification{
		Title:     strings.TrimSpace(title),
		Message:   strings.TrimSpace(message),
		CreatedAt: s.now(),
		Global:    true,
	}
	if err := validate.Struct(n); err != nil {
		s.alert("Fill in every field.")
		return Notification{}, err
	}
	if err := s.Broadcaster.InsertNotification(ctx, n); err != nil {
		return Notification{}, s.fail("send notification", err)
	}
	logging.OrDiscard(s.Log).Info("notification sent", "title", n.Title)
	s.alert("Notification sent.")
	return n, nil
}

// Dashboard returns the usage statistics.
func (s *Service) Dashboard(ctx context.Context) (Stats, error) {
	if s.StatsSource == nil {
		return Stats{}, errors.New("admin: no statistics source configured")
	}
	stats, err := s.StatsSource.Stats(ctx, s.now())
	if err != nil {
		return Stats{}, s.fail("load statistics", err)
	}
	return stats, nil
}

// SampleUsers are created by Seed.
func SampleUsers(now time.Time) []User {
	return []User{
		{Email: "user1@example.com", FullName: "João Silva", CreatedAt: now, LastSignIn: now},
		{Email: "user2@example.com", FullName: "Maria Santos", CreatedAt: now.Add(-24 * time.Hour), LastSignIn: now},
	}
}

// Seed creates the sample users, skipping any that already exist, and
// returns how many were created.
func (s *Service) Seed(ctx context.Context, password string) (int, error) {
	if s.Seeder == nil {
		return 0, errors.New("admin: no seeder configured")
	}
	created := 0
	for _, u := range SampleUsers(s.now()) {
		err := s.Seeder.CreateUser(ctx, u, password)
		switch {
		case errors.Is(err, ErrDuplicate):
			continue
		case err != nil:
			return created, s.fail("seed users", err)
		}
		created++
	}
	s.resync(ctx)
	return created, nil
}
