package social

import (
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/pilot/pkg/validate"
)

// Presence of a friend.
type Presence string

const (
	Online  Presence = "online"
	Offline Presence = "offline"
)

// Friend is an entry on the friend list.
type Friend struct {
	ID           string    `json:"id" validate:"required"`
	Name         string    `json:"name" validate:"required"`
	Avatar       string    `json:"avatar,omitempty"`
	Status       Presence  `json:"status" validate:"oneof=online offline"`
	LastActivity time.Time `json:"lastActivity"`
}

// NewFriend returns an offline friend.
func NewFriend(name, avatar string, seen time.Time) (*Friend, error) {
	f := &Friend{
		ID:           uuid.NewString(),
		Name:         strings.TrimSpace(name),
		Avatar:       avatar,
		Status:       Offline,
		LastActivity: seen,
	}
	if err := f.Validate(); err != nil {
		return nil, err
	}
	return f, nil
}

// Validate checks field constraints.
func (f *Friend) Validate() error {
	if f == nil {
		return errors.New("social: nil friend")
	}
	return validate.Struct(f)
}

// Seen marks the friend online and records the activity time.
func (f *Friend) Seen(at time.Time) {
	f.Status = Online
	if at.After(f.LastActivity) {
		f.LastActivity = at
	}
}

// Idle marks friends offline when their last activity is older than window.
func Idle(friends []*Friend, now time.Time, window time.Duration) {
	for _, f := range friends {
		if now.Sub(f.LastActivity) > window {
			f.Status = Offline
		}
	}
}

// SortByPresence puts online friends first, then by name.
func SortByPresence(friends []*Friend) {
	sort.SliceStable(friends, func(i, j int) bool {
		a, b := friends[i], friends[j]
		if a.Status != b.Status {
			return a.Status == Online
		}
		return strings.ToLower(a.Name) < strings.ToLower(b.Name)
	})
}
