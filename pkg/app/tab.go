package app

import (
	"fmt"
	"strings"
)

// Tab is one of the top level screens. Switching tabs is pure selection.
type Tab int

const (
	TabCalendar Tab = iota
	TabGoals
	TabAIGoals
	TabParties
	TabFriends
	TabProfile
)

var tabNames = map[Tab]string{
	TabCalendar: "calendar",
	TabGoals:    "goals",
	TabAIGoals:  "ai-goals",
	TabParties:  "parties",
	TabFriends:  "friends",
	TabProfile:  "profile",
}

// AllTabs returns the tabs in display order.
func AllTabs() []Tab {
	return []Tab{TabCalendar, TabGoals, TabAIGoals, TabParties, TabFriends, TabProfile}
}

// ParseTab accepts a tab name.
func ParseTab(raw string) (Tab, error) {
	raw = strings.ToLower(strings.TrimSpace(raw))
	for tab, name := range tabNames {
		if name == raw {
			return tab, nil
		}
	}
	return TabCalendar, fmt.Errorf("app: unknown tab %q", raw)
}

func (t Tab) String() string {
	if name, ok := tabNames[t]; ok {
		return name
	}
	return fmt.Sprintf("tab(%d)", int(t))
}

// Next cycles to the following tab.
func (t Tab) Next() Tab {
	return Tab((int(t) + 1) % len(tabNames))
}

// Prev cycles to the preceding tab.
func (t Tab) Prev() Tab {
	return Tab((int(t) + len(tabNames) - 1) % len(tabNames))
}
