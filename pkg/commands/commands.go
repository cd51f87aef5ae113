package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/pilot/pkg/commands/options"
)

func New() *cobra.Command {

	cmd := &cobra.Command{
		Use:   "pilot",
		Short: options.Wrap80("A planner with a month calendar, goals, AI coached plans and parties."),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	AddCommands(cmd)
	return cmd
}

func AddCommands(topLevel *cobra.Command) {
	addUI(topLevel)
	addCalendar(topLevel)
	addAgenda(topLevel)
	addAdd(topLevel)
	addDelete(topLevel)
	addList(topLevel)
	addAIGoal(topLevel)
	addParty(topLevel)
	addReport(topLevel)
	addExport(topLevel)
	addKey(topLevel)
	addInfo(topLevel)
	addRegister(topLevel)
	addLogin(topLevel)
	addLogout(topLevel)
	addWhoAmI(topLevel)
	addAdmin(topLevel)
	addServe(topLevel)
	addMCP(topLevel)
	addVersion(topLevel)
	addCompletions(topLevel)
}

// withEnv loads the environment, runs fn and reports the error the way oo
// asks for.
func withEnv(cmd *cobra.Command, oo *options.OutputOptions, fn func(ctx context.Context, e *env) error) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	e, err := loadEnv(ctx)
	if err != nil {
		return oo.HandleError(err)
	}
	defer e.Close()
	return oo.HandleError(fn(ctx, e))
}
