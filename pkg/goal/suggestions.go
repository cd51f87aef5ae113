package goal

import (
	"fmt"
	"time"

	"tableflip.dev/pilot/pkg/timeutil"
)

// Suggestion is a ready-made AI goal plan.
type Suggestion struct {
	ID           string     `json:"id"`
	Title        string     `json:"title"`
	Description  string     `json:"description"`
	Category     Area       `json:"category"`
	Difficulty   Difficulty `json:"difficulty"`
	Weeks        int        `json:"estimatedWeeks"`
	DailyMinutes int        `json:"dailyTimeMinutes"`
	Benefits     []string   `json:"benefits"`
	Icon         string     `json:"icon"`
}

var suggestions = []Suggestion{
	{
		ID:           "1",
		Title:        "Morning Run",
		Description:  "Build the habit of running every morning to improve cardiovascular health",
		Category:     AreaFitness,
		Difficulty:   Beginner,
		Weeks:        4,
		DailyMinutes: 20,
		Benefits:     []string{"Better cardio", "More energy", "Morning discipline"},
		Icon:         "🏃",
	},
	{
		ID:           "2",
		Title:        "Daily Reading",
		Description:  "Read 30 minutes a day to broaden knowledge and sharpen focus",
		Category:     AreaLearning,
		Difficulty:   Beginner,
		Weeks:        6,
		DailyMinutes: 30,
		Benefits:     []string{"Broader knowledge", "Better focus", "Richer vocabulary"},
		Icon:         "📚",
	},
	{
		ID:           "3",
		Title:        "Mindfulness Meditation",
		Description:  "Meditate daily to lower stress and raise well-being",
		Category:     AreaWellness,
		Difficulty:   Beginner,
		Weeks:        8,
		DailyMinutes: 15,
		Benefits:     []string{"Less stress", "Better sleep", "Mental clarity"},
		Icon:         "🧘",
	},
	{
		ID:           "4",
		Title:        "Learn Programming",
		Description:  "Spend an hour a day learning a new programming language",
		Category:     AreaLearning,
		Difficulty:   Intermediate,
		Weeks:        12,
		DailyMinutes: 60,
		Benefits:     []string{"New skill", "Career opportunities", "Sharper logic"},
		Icon:         "💻",
	},
	{
		ID:           "5",
		Title:        "Strength Training",
		Description:  "Lift three times a week to build strength and muscle",
		Category:     AreaFitness,
		Difficulty:   Intermediate,
		Weeks:        16,
		DailyMinutes: 45,
		Benefits:     []string{"More strength", "Muscle mass", "Faster metabolism"},
		Icon:         "💪",
	},
	{
		ID:           "6",
		Title:        "Artistic Drawing",
		Description:  "Develop drawing skills with 45 minutes of daily practice",
		Category:     AreaCreativity,
		Difficulty:   Beginner,
		Weeks:        10,
		DailyMinutes: 45,
		Benefits:     []string{"Creativity", "Motor coordination", "Artistic expression"},
		Icon:         "🎨",
	},
	{
		ID:           "7",
		Title:        "Professional Networking",
		Description:  "Connect with two new professionals every week to grow your network",
		Category:     AreaSocial,
		Difficulty:   Intermediate,
		Weeks:        8,
		DailyMinutes: 30,
		Benefits:     []string{"Wider network", "Opportunities", "Social skills"},
		Icon:         "🤝",
	},
	{
		ID:           "8",
		Title:        "Digital Organisation",
		Description:  "Sort email, files and tasks to get more done",
		Category:     AreaProductivity,
		Difficulty:   Beginner,
		Weeks:        4,
		DailyMinutes: 25,
		Benefits:     []string{"More productivity", "Less stress", "Optimised time"},
		Icon:         "📋",
	},
}

// Suggestions returns a copy of the suggestion catalog.
func Suggestions() []Suggestion {
	out := make([]Suggestion, len(suggestions))
	copy(out, suggestions)
	return out
}

// FindSuggestion looks up a catalog entry by id.
func FindSuggestion(id string) (Suggestion, bool) {
	for _, s := range suggestions {
		if s.ID == id {
			return s, true
		}
	}
	return Suggestion{}, false
}

// FromSuggestion starts an AI goal from a catalog entry with one milestone per
// week and a welcome message from the coach.
func FromSuggestion(s Suggestion, start timeutil.Date, schedule Schedule, now time.Time) (*AIGoal, error) {
	g, err := NewAIGoal(s.Title, s.Description, s.Category, s.Difficulty, s.Weeks, s.DailyMinutes, schedule, start)
	if err != nil {
		return nil, err
	}
	for week := 1; week <= s.Weeks; week++ {
		title := fmt.Sprintf("Week %d", week)
		desc := fmt.Sprintf("Practise %d minutes on every scheduled day", s.DailyMinutes)
		switch week {
		case 1:
			desc = "Settle into the routine and keep every session short"
		case s.Weeks:
			desc = "Finish strong and review how far you came"
		}
		if _, err := g.AddMilestone(title, desc, week); err != nil {
			return nil, err
		}
	}
	welcome := fmt.Sprintf("Welcome to %s! %d weeks, %d minutes a day. Small steps count.", s.Title, s.Weeks, s.DailyMinutes)
	if _, err := g.AddCoachMessage(MessageMotivation, welcome, now); err != nil {
		return nil, err
	}
	return g, nil
}
