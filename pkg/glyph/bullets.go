package glyph

import "github.com/fatih/color"

type Glyph struct {
	Key     string
	Symbol  string
	Meaning string
}

var (
	bold   = color.New(color.Bold)
	italic = color.New(color.Italic)
	strike = color.New(color.CrossedOut)
)

// Strike, Bold and Italic follow color.NoColor, so piped output stays plain.
func Strike(in string) string { return strike.Sprint(in) }

func Bold(in string) string { return bold.Sprint(in) }

func Italic(in string) string { return italic.Sprint(in) }

// Categories returns the glyph used for every event category, keyed by the
// category's wire name.
func Categories() map[string]Glyph {
	return map[string]Glyph{
		"work":      {Key: "work", Symbol: "💼", Meaning: "work"},
		"leisure":   {Key: "leisure", Symbol: "🎯", Meaning: "leisure"},
		"sleep":     {Key: "sleep", Symbol: "😴", Meaning: "sleep"},
		"meals":     {Key: "meals", Symbol: "🍽️", Meaning: "meals"},
		"gaming":    {Key: "gaming", Symbol: "🎮", Meaning: "gaming"},
		"social":    {Key: "social", Symbol: "🎉", Meaning: "social"},
		"recurring": {Key: "recurring", Symbol: "🔄", Meaning: "recurring task"},
		"goal":      {Key: "goal", Symbol: "🎯", Meaning: "goal"},
		"ai-goal":   {Key: "ai-goal", Symbol: "🤖", Meaning: "ai goal"},
	}
}

// Category looks up the glyph for a category name, falling back to a dot.
func Category(name string) Glyph {
	if g, ok := Categories()[name]; ok {
		return g
	}
	return Glyph{Key: name, Symbol: "•", Meaning: name}
}

// Coach returns the glyph for a coach message type.
func Coach(kind string) Glyph {
	switch kind {
	case "motivation":
		return Glyph{Key: kind, Symbol: "💪", Meaning: "motivation"}
	case "tip":
		return Glyph{Key: kind, Symbol: "💡", Meaning: "tip"}
	case "adjustment":
		return Glyph{Key: kind, Symbol: "🔧", Meaning: "adjustment"}
	case "celebration":
		return Glyph{Key: kind, Symbol: "🏆", Meaning: "celebration"}
	}
	return Glyph{Key: kind, Symbol: "›", Meaning: kind}
}

// Status returns the glyph for an invite or completion state.
func Status(state string) Glyph {
	switch state {
	case "accepted", "done":
		return Glyph{Key: state, Symbol: "✔", Meaning: state}
	case "declined":
		return Glyph{Key: state, Symbol: "✘", Meaning: state}
	case "pending", "open":
		return Glyph{Key: state, Symbol: "○", Meaning: state}
	case "online":
		return Glyph{Key: state, Symbol: "●", Meaning: state}
	case "offline":
		return Glyph{Key: state, Symbol: "◌", Meaning: state}
	}
	return Glyph{Key: state, Symbol: " ", Meaning: state}
}

func (g Glyph) String() string {
	return g.Symbol
}
