package commands

import (
	"context"
	"errors"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/pilot/pkg/commands/options"
	"tableflip.dev/pilot/pkg/goal"
	"tableflip.dev/pilot/pkg/runner/add"
	"tableflip.dev/pilot/pkg/timeutil"
)

func addAdd(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add something",
		Example: `
pilot add event --on 7/16 --start 18:00 --end 19:00 -c leisure Swim
pilot add goal --on 2024-09-01 Read two books
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addEvent(cmd)
	addGoal(cmd)
	addRecurring(cmd)
	addAIGoalItem(cmd)
	addPartyItem(cmd)
	addFriend(cmd)

	topLevel.AddCommand(cmd)
}

func requireTitle(what string) cobra.PositionalArgs {
	return func(_ *cobra.Command, args []string) error {
		if len(args) < 1 {
			return errors.New("requires a " + what)
		}
		return nil
	}
}

func target(cmd *cobra.Command, e *env, oo *options.OutputOptions) add.Target {
	return add.Target{App: e.app, ShowID: oo.ShowID, JSON: oo.JSON, Out: cmd.OutOrStdout()}
}

func addEvent(parent *cobra.Command) {
	oo := &options.OutputOptions{}
	on := &options.OnOptions{}
	span := &options.SpanOptions{}
	detail := &options.DetailOptions{}

	cmd := &cobra.Command{
		Use:   "event <title>",
		Short: "Add a calendar event",
		Example: `
pilot add event --on 2024-07-16 --start 18:00 --end 19:00 -c leisure Swim
`,
		Args: requireTitle("title"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
				day, err := on.GetOn()
				if err != nil {
					return err
				}
				if day.IsZero() {
					day = e.app.Session.Selected()
				}
				start, end, err := span.Clocks()
				if err != nil {
					return err
				}
				n := add.Event{
					Target:      target(cmd, e, oo),
					Title:       strings.Join(args, " "),
					On:          day,
					Start:       start,
					End:         end,
					Category:    detail.Category,
					Description: detail.Description,
				}
				return n.Do(ctx)
			})
		},
	}

	options.AddOnArgs(cmd, on, "Day of the event, defaults to today.")
	options.AddSpanArgs(cmd, span)
	options.AddDetailArgs(cmd, detail, "work", "One of work, leisure, sleep, meals, gaming, social.")
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addGoal(parent *cobra.Command) {
	oo := &options.OutputOptions{}
	due := &options.OnOptions{}
	detail := &options.DetailOptions{}
	var (
		at       string
		priority string
	)

	cmd := &cobra.Command{
		Use:   "goal <title>",
		Short: "Add a goal with a target date",
		Example: `
pilot add goal --on 2024-09-01 --priority high -c personal Read two books
`,
		Args: requireTitle("title"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
				day, err := due.GetOn()
				if err != nil {
					return err
				}
				if day.IsZero() {
					return errors.New("a goal needs a target date, use --on")
				}
				clock, err := timeutil.ParseClock(at)
				if err != nil {
					return err
				}
				n := add.Goal{
					Target:      target(cmd, e, oo),
					Title:       strings.Join(args, " "),
					Due:         day,
					At:          clock,
					Priority:    priority,
					Kind:        detail.Category,
					Description: detail.Description,
				}
				return n.Do(ctx)
			})
		},
	}

	options.AddOnArgs(cmd, due, "Target date.")
	cmd.Flags().StringVar(&at, "at", "18:00", "Target time, HH:MM.")
	cmd.Flags().StringVarP(&priority, "priority", "p", "medium", "One of low, medium, high.")
	options.AddDetailArgs(cmd, detail, "personal", "One of personal, professional, health, learning, other.")
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addRecurring(parent *cobra.Command) {
	oo := &options.OutputOptions{}
	days := &options.DaysOptions{}
	span := &options.SpanOptions{}
	detail := &options.DetailOptions{}

	cmd := &cobra.Command{
		Use:     "recurring <title>",
		Aliases: []string{"task"},
		Short:   "Add a task that repeats on weekdays",
		Example: `
pilot add recurring --days mon,wed,fri --start 07:00 --end 07:30 Stretch
`,
		Args: requireTitle("title"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
				set, err := days.Set()
				if err != nil {
					return err
				}
				start, end, err := span.Clocks()
				if err != nil {
					return err
				}
				n := add.Recurring{
					Target:      target(cmd, e, oo),
					Title:       strings.Join(args, " "),
					Days:        set,
					Start:       start,
					End:         end,
					Kind:        detail.Category,
					Description: detail.Description,
				}
				return n.Do(ctx)
			})
		},
	}

	options.AddDaysArgs(cmd, days)
	options.AddSpanArgs(cmd, span)
	options.AddDetailArgs(cmd, detail, "other", "One of work, sport, study, health, other.")
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addAIGoalItem(parent *cobra.Command) {
	oo := &options.OutputOptions{}
	start := &options.OnOptions{}
	days := &options.DaysOptions{}
	detail := &options.DetailOptions{}
	var (
		suggestion string
		difficulty string
		weeks      int
		minutes    int
		at         string
	)

	cmd := &cobra.Command{
		Use:     "aigoal [title]",
		Aliases: []string{"ai-goal", "plan"},
		Short:   "Start an AI coached plan",
		Long:    options.Wrap80(`Start a coached plan either from a suggestion (see "pilot aigoal suggestions") or from scratch with one milestone per week.`),
		Example: `
pilot add aigoal --suggestion 1 --days mon,wed,fri --at 07:00
pilot add aigoal --weeks 6 --minutes 20 --days tue,thu -c learning Learn Spanish
`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
				if suggestion == "" && len(args) == 0 {
					return errors.New("requires a title or --suggestion")
				}
				day, err := start.GetOn()
				if err != nil {
					return err
				}
				set, err := days.Set()
				if err != nil {
					return err
				}
				clock, err := timeutil.ParseClock(at)
				if err != nil {
					return err
				}
				n := add.AIGoal{
					Target:       target(cmd, e, oo),
					Suggestion:   suggestion,
					Title:        strings.Join(args, " "),
					Description:  detail.Description,
					Area:         detail.Category,
					Difficulty:   difficulty,
					Weeks:        weeks,
					DailyMinutes: minutes,
					Schedule:     goal.Schedule{Days: set, Time: clock},
					Start:        day,
				}
				return n.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&suggestion, "suggestion", "", "Start from a suggestion id.")
	cmd.Flags().StringVar(&difficulty, "difficulty", "beginner", "One of beginner, intermediate, advanced.")
	cmd.Flags().IntVarP(&weeks, "weeks", "w", 4, "Length of the plan in weeks.")
	cmd.Flags().IntVar(&minutes, "minutes", 30, "Minutes per day.")
	cmd.Flags().StringVar(&at, "at", "07:00", "Time of day for the sessions, HH:MM.")
	options.AddDaysArgs(cmd, days)
	options.AddOnArgs(cmd, start, "First day of the plan, defaults to today.")
	options.AddDetailArgs(cmd, detail, "productivity", "One of fitness, learning, productivity, wellness, creativity, social.")
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addPartyItem(parent *cobra.Command) {
	oo := &options.OutputOptions{}
	on := &options.OnOptions{}
	var (
		at      string
		friends []string
		cost    string
		desc    string
	)

	cmd := &cobra.Command{
		Use:   "party <title>",
		Short: "Plan a party and invite friends",
		Example: `
pilot add party --on 8/10 --at 12:00 --invite <friend id>,<friend id> Picnic
`,
		Args: requireTitle("title"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
				day, err := on.GetOn()
				if err != nil {
					return err
				}
				if day.IsZero() {
					return errors.New("a party needs a date, use --on")
				}
				clock, err := timeutil.ParseClock(at)
				if err != nil {
					return err
				}
				n := add.Party{
					Target:      target(cmd, e, oo),
					Title:       strings.Join(args, " "),
					On:          day,
					At:          clock,
					Friends:     friends,
					Cost:        cost,
					Description: desc,
				}
				return n.Do(ctx)
			})
		},
	}

	options.AddOnArgs(cmd, on, "Day of the party.")
	cmd.Flags().StringVar(&at, "at", "19:00", "Start time, HH:MM.")
	cmd.Flags().StringSliceVar(&friends, "invite", nil, "Friend ids to invite.")
	cmd.Flags().StringVar(&cost, "cost", "", "What it costs, free text.")
	cmd.Flags().StringVarP(&desc, "description", "d", "", "Longer description.")
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addFriend(parent *cobra.Command) {
	oo := &options.OutputOptions{}
	var avatar string

	cmd := &cobra.Command{
		Use:   "friend <name>",
		Short: "Add a friend",
		Args:  requireTitle("name"),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
				n := add.Friend{
					Target: target(cmd, e, oo),
					Name:   strings.Join(args, " "),
					Avatar: avatar,
				}
				return n.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&avatar, "avatar", "", "Avatar URL.")
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArg(cmd, oo)

	parent.AddCommand(cmd)
}
