package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/pilot/pkg/collection"
	"tableflip.dev/pilot/pkg/commands/options"
	"tableflip.dev/pilot/pkg/runner/remove"
)

func addDelete(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "delete <kind> <id>",
		Aliases: []string{"rm", "remove"},
		Short:   "Delete a planner item by kind and id",
		Example: `
pilot delete event <id>
pilot delete aigoal <id>
`,
		ValidArgs: kinds(),
		Args:      cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
				r := remove.Remove{App: e.app, Kind: args[0], ID: args[1], Out: cmd.OutOrStdout()}
				return r.Do(ctx)
			})
		},
	}
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func kinds() []string {
	out := make([]string, 0, len(collection.AllTypes()))
	for _, t := range collection.AllTypes() {
		out = append(out, string(t))
	}
	return out
}
