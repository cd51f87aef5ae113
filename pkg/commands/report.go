package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/pilot/pkg/commands/options"
	"tableflip.dev/pilot/pkg/runner/report"
)

func addReport(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	wo := &options.WindowOptions{}

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Show completed milestones and party answers of a recent window",
		Example: `
pilot report
pilot report --last 3d
pilot report --last 1w2d`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cmd.SilenceUsage = true
			return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
				r := report.Report{App: e.app, Window: wo.Last, JSON: oo.JSON, Out: cmd.OutOrStdout()}
				return r.Do(ctx)
			})
		},
	}

	options.AddWindowArgs(cmd, wo)
	options.AddOutputArg(cmd, oo)
	topLevel.AddCommand(cmd)
}
