// Package collection names the kinds of records the planner persists.
package collection

import (
	"fmt"
	"strings"
)

// Type identifies a stored collection.
type Type string

const (
	// TypeEvents holds one-off calendar events.
	TypeEvents Type = "events"
	// TypeGoals holds dated personal goals.
	TypeGoals Type = "goals"
	// TypeRecurring holds weekly recurring tasks.
	TypeRecurring Type = "recurring"
	// TypeAIGoals holds coached AI goals.
	TypeAIGoals Type = "ai-goals"
	// TypeParties holds parties and their invites.
	TypeParties Type = "parties"
	// TypeFriends holds the friend list.
	TypeFriends Type = "friends"
)

// AllTypes returns the list of supported collection types.
func AllTypes() []Type {
	return []Type{
		TypeEvents,
		TypeGoals,
		TypeRecurring,
		TypeAIGoals,
		TypeParties,
		TypeFriends,
	}
}

// ParseType converts a string to a Type or returns an error for unknown values.
// Singular names and "aigoals" are accepted for convenience on the command line.
func ParseType(raw string) (Type, error) {
	t := strings.ToLower(strings.TrimSpace(raw))
	switch t {
	case "event":
		t = string(TypeEvents)
	case "goal":
		t = string(TypeGoals)
	case "recurring-task", "task", "tasks":
		t = string(TypeRecurring)
	case "aigoal", "aigoals", "ai-goal":
		t = string(TypeAIGoals)
	case "party":
		t = string(TypeParties)
	case "friend":
		t = string(TypeFriends)
	}
	for _, candidate := range AllTypes() {
		if string(candidate) == t {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("collection: unknown type %q", raw)
}

// MustType parses the input and panics on error. Intended for tests/config.
func MustType(raw string) Type {
	t, err := ParseType(raw)
	if err != nil {
		panic(err)
	}
	return t
}

func (t Type) String() string {
	return string(t)
}
