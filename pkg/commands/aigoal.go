package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	"tableflip.dev/pilot/pkg/commands/options"
	"tableflip.dev/pilot/pkg/runner/aigoal"
)

func addAIGoal(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:     "aigoal",
		Aliases: []string{"ai", "plan"},
		Short:   "Work through AI coached plans",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addAIGoalComplete(cmd)
	addAIGoalAdvance(cmd)
	addAIGoalMessage(cmd)
	addAIGoalRead(cmd)
	addAIGoalList(cmd)
	addAIGoalSuggestions(cmd)

	topLevel.AddCommand(cmd)
}

func aiOutput(cmd *cobra.Command, oo *options.OutputOptions) aigoal.Output {
	return aigoal.Output{ShowID: oo.ShowID, JSON: oo.JSON, Out: cmd.OutOrStdout()}
}

func addAIGoalComplete(parent *cobra.Command) {
	oo := &options.OutputOptions{}
	var milestone string

	cmd := &cobra.Command{
		Use:     "complete <goal id>",
		Aliases: []string{"done"},
		Short:   "Complete a milestone of this week",
		Long: options.Wrap80(`Complete a milestone. Without --milestone the first open milestone of the
current week is completed. Milestones of later weeks stay locked until the plan advances.`),
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
				n := aigoal.Complete{Output: aiOutput(cmd, oo), App: e.app, GoalID: args[0], MilestoneID: milestone}
				return n.Do(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&milestone, "milestone", "", "Milestone id.")
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addAIGoalAdvance(parent *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "advance <goal id>",
		Aliases: []string{"next"},
		Short:   "Move a plan to its next week",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
				n := aigoal.Advance{Output: aiOutput(cmd, oo), App: e.app, GoalID: args[0]}
				return n.Do(ctx)
			})
		},
	}
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addAIGoalMessage(parent *cobra.Command) {
	oo := &options.OutputOptions{}
	var kind string

	cmd := &cobra.Command{
		Use:   "message <goal id> <text>",
		Short: "Add a coach message to a plan",
		Example: `
pilot aigoal message <goal id> --type tip Stretch before you run.
`,
		Args: cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
				n := aigoal.Message{
					Output: aiOutput(cmd, oo),
					App:    e.app,
					GoalID: args[0],
					Kind:   kind,
					Text:   strings.Join(args[1:], " "),
				}
				return n.Do(ctx)
			})
		},
	}
	cmd.Flags().StringVarP(&kind, "type", "t", "motivation", "One of motivation, tip, adjustment, celebration.")
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addAIGoalRead(parent *cobra.Command) {
	oo := &options.OutputOptions{}
	var message string

	cmd := &cobra.Command{
		Use:   "read <goal id>",
		Short: "Mark coach messages read",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
				n := aigoal.Read{Output: aiOutput(cmd, oo), App: e.app, GoalID: args[0], MessageID: message}
				return n.Do(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&message, "message", "", "Message id, defaults to every unread message.")
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addAIGoalList(parent *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list [goal id]",
		Aliases: []string{"ls", "show"},
		Short:   "List plans, or show one with its milestones",
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
				n := aigoal.List{Output: aiOutput(cmd, oo), App: e.app}
				if len(args) == 1 {
					n.GoalID = args[0]
				}
				return n.Do(ctx)
			})
		},
	}
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addAIGoalSuggestions(parent *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "suggestions",
		Short: "Show the ready-made plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n := aigoal.Suggestions{Output: aiOutput(cmd, oo)}
			return oo.HandleError(n.Do(cmd.Context()))
		},
	}
	options.AddOutputArg(cmd, oo)

	parent.AddCommand(cmd)
}
