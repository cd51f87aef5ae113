package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/pilot/pkg/commands/options"
	"tableflip.dev/pilot/pkg/runner/info"
)

func addInfo(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show where pilot keeps its data",
		Example: `
pilot info
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
				i := info.Info{Config: e.cfg, Persistence: e.persistence, Out: cmd.OutOrStdout()}
				return i.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}
