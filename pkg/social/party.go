// Package social holds parties, their invites and the friend list.
package social

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"tableflip.dev/pilot/pkg/event"
	"tableflip.dev/pilot/pkg/timeutil"
	"tableflip.dev/pilot/pkg/validate"
)

// Status is the state of an invite or a party.
type Status string

const (
	Pending  Status = "pending"
	Accepted Status = "accepted"
	Declined Status = "declined"
)

// ParseStatus accepts pending, accepted or declined.
func ParseStatus(raw string) (Status, error) {
	switch s := Status(strings.ToLower(strings.TrimSpace(raw))); s {
	case Pending, Accepted, Declined:
		return s, nil
	}
	return "", fmt.Errorf("social: unknown status %q", raw)
}

var (
	// ErrNotInvited is returned when a friend responds to a party they were not invited to.
	ErrNotInvited = errors.New("social: friend is not invited")
	// ErrAlreadyInvited is returned when inviting the same friend twice.
	ErrAlreadyInvited = errors.New("social: friend already invited")
	// ErrLateStart is returned for a party starting at 23:59, which leaves it no time on the calendar.
	ErrLateStart = errors.New("social: party must start before 23:59")
)

// Invite is one friend's answer to a party.
type Invite struct {
	FriendID    string     `json:"friendId" validate:"required"`
	Status      Status     `json:"status" validate:"oneof=pending accepted declined"`
	RespondedAt *time.Time `json:"respondedAt,omitempty"`
}

// Party is a group event with invites.
type Party struct {
	ID          string         `json:"id" validate:"required"`
	Title       string         `json:"title" validate:"required"`
	Date        timeutil.Date  `json:"date" validate:"isodate"`
	Time        timeutil.Clock `json:"time" validate:"clock"`
	Description string         `json:"description,omitempty"`
	Creator     string         `json:"creator" validate:"required"`
	CreatorID   string         `json:"creatorId" validate:"required"`
	Invites     []Invite       `json:"invites" validate:"dive"`
	Status      Status         `json:"status" validate:"oneof=pending accepted declined"`
	Cost        string         `json:"cost,omitempty"`
	ChatID      string         `json:"chatId,omitempty"`
}

// NewParty creates a pending party with one pending invite per friend.
func NewParty(title string, date timeutil.Date, at timeutil.Clock, creator, creatorID string, friendIDs ...string) (*Party, error) {
	p := &Party{
		ID:        uuid.NewString(),
		Title:     strings.TrimSpace(title),
		Date:      date,
		Time:      at,
		Creator:   creator,
		CreatorID: creatorID,
		Invites:   []Invite{},
		Status:    Pending,
	}
	for _, id := range friendIDs {
		if err := p.Invite(id); err != nil {
			return nil, err
		}
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate checks field constraints.
func (p *Party) Validate() error {
	if p == nil {
		return errors.New("social: nil party")
	}
	if err := validate.Struct(p); err != nil {
		return err
	}
	if p.Time >= timeutil.EndOfDay {
		return fmt.Errorf("%w, got %s", ErrLateStart, p.Time)
	}
	return nil
}

// Invite adds a pending invite for a friend.
func (p *Party) Invite(friendID string) error {
	if p.find(friendID) >= 0 {
		return fmt.Errorf("%w: %s", ErrAlreadyInvited, friendID)
	}
	p.Invites = append(p.Invites, Invite{FriendID: friendID, Status: Pending})
	p.Status = p.Resolve()
	return nil
}

// Respond records a friend's answer and re-derives the party status.
func (p *Party) Respond(friendID string, status Status, at time.Time) error {
	i := p.find(friendID)
	if i < 0 {
		return fmt.Errorf("%w: %s", ErrNotInvited, friendID)
	}
	inv := &p.Invites[i]
	inv.Status = status
	if status == Pending {
		inv.RespondedAt = nil
	} else {
		t := at
		inv.RespondedAt = &t
	}
	p.Status = p.Resolve()
	return nil
}

// Resolve derives the party status from its invites: declined when every
// invite declined, accepted when none is pending and one accepted, otherwise
// pending. A party with no invites is pending.
func (p *Party) Resolve() Status {
	if len(p.Invites) == 0 {
		return Pending
	}
	var accepted, declined int
	for _, inv := range p.Invites {
		switch inv.Status {
		case Accepted:
			accepted++
		case Declined:
			declined++
		default:
			return Pending
		}
	}
	if declined == len(p.Invites) {
		return Declined
	}
	if accepted > 0 {
		return Accepted
	}
	return Pending
}

// Count returns how many invites hold the given status.
func (p *Party) Count(s Status) int {
	n := 0
	for _, inv := range p.Invites {
		if inv.Status == s {
			n++
		}
	}
	return n
}

// AsEvent renders the party as a two hour social event on the calendar,
// cut short at the end of the day.
func (p *Party) AsEvent() (*event.Event, error) {
	if p.Time >= timeutil.EndOfDay {
		return nil, fmt.Errorf("%w, got %s", ErrLateStart, p.Time)
	}
	return &event.Event{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Start:       p.Time,
		End:         p.Time.Plus(120),
		Category:    event.CategorySocial,
		Date:        p.Date,
	}, nil
}

// Clone returns a deep copy of p.
func (p *Party) Clone() *Party {
	if p == nil {
		return nil
	}
	cp := *p
	cp.Invites = make([]Invite, len(p.Invites))
	for i, inv := range p.Invites {
		if inv.RespondedAt != nil {
			t := *inv.RespondedAt
			inv.RespondedAt = &t
		}
		cp.Invites[i] = inv
	}
	return &cp
}

func (p *Party) find(friendID string) int {
	for i, inv := range p.Invites {
		if inv.FriendID == friendID {
			return i
		}
	}
	return -1
}
