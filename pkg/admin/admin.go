// Package admin is the administration surface: the user list, suspensions,
// deletions, global notifications and usage statistics.
package admin

import (
	"context"
	"errors"
	"time"
)

// DefaultLimit caps the user list.
const DefaultLimit = 50

// ErrCancelled is returned when the operator declines a destructive action.
var ErrCancelled = errors.New("admin: cancelled")

// User is a row of the user directory.
type User struct {
	ID         string    `json:"id" db:"id"`
	Email      string    `json:"email" db:"email"`
	FullName   string    `json:"full_name,omitempty" db:"full_name"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	LastSignIn time.Time `json:"last_sign_in" db:"last_sign_in"`
	Suspended  bool      `json:"is_suspended" db:"is_suspended"`
}

// Notification is a message broadcast to users.
type Notification struct {
	ID        int64     `json:"id,omitempty" db:"id"`
	Title     string    `json:"title" db:"title" validate:"required"`
	Message   string    `json:"message" db:"message" validate:"required"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
	Global    bool      `json:"is_global" db:"is_global"`
}

// Stats are the dashboard figures.
type Stats struct {
	TotalUsers         int `json:"total_users" db:"total_users"`
	ActiveUsers24h     int `json:"active_users_24h" db:"active_users_24h"`
	ActiveUsers7d      int `json:"active_users_7d" db:"active_users_7d"`
	ActiveUsers30d     int `json:"active_users_30d" db:"active_users_30d"`
	DailyActiveUsers   int `json:"daily_active_users" db:"daily_active_users"`
	MonthlyActiveUsers int `json:"monthly_active_users" db:"monthly_active_users"`
	EventsCreated30d   int `json:"events_created_30d" db:"events_created_30d"`
	AIInteractions     int `json:"ai_interactions" db:"ai_interactions"`
}

// Directory is the user store.
type Directory interface {
	// ListUsers returns users newest first, at most limit of them.
	ListUsers(ctx context.Context, limit int) ([]User, error)
	SetSuspended(ctx context.Context, id string, suspended bool) error
	DeleteUser(ctx context.Context, id string) error
}

// Broadcaster stores notifications.
type Broadcaster interface {
	InsertNotification(ctx context.Context, n Notification) error
}

// StatsSource computes dashboard statistics as of now.
type StatsSource interface {
	Stats(ctx context.Context, now time.Time) (Stats, error)
}

// Seeder creates users; used only by the explicit seed operation.
type Seeder interface {
	CreateUser(ctx context.Context, u User, password string) error
}

// Notifier shows a short message to the operator.
type Notifier interface {
	Alert(msg string)
}

// Confirmer asks the operator a yes or no question.
type Confirmer interface {
	Confirm(prompt string) bool
}

// NotifierFunc adapts a function to Notifier.
type NotifierFunc func(msg string)

func (f NotifierFunc) Alert(msg string) { f(msg) }

// ConfirmerFunc adapts a function to Confirmer.
type ConfirmerFunc func(prompt string) bool

func (f ConfirmerFunc) Confirm(prompt string) bool { return f(prompt) }
