package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/pilot/pkg/commands/options"
	"tableflip.dev/pilot/pkg/runner/list"
)

func addList(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "list <kind>",
		Aliases: []string{"ls", "get"},
		Short:   "List the items of one kind",
		Example: `
pilot list events
pilot list goals --show-id
pilot list friends --json
`,
		ValidArgs: kinds(),
		Args:      cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
				l := list.List{
					App:    e.app,
					Kind:   args[0],
					ShowID: oo.ShowID,
					JSON:   oo.JSON,
					Out:    cmd.OutOrStdout(),
				}
				return l.Do(ctx)
			})
		},
	}
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
