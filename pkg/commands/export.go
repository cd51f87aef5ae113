package commands

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/pilot/pkg/commands/options"
	"tableflip.dev/pilot/pkg/runner/export"
)

func addExport(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	var (
		from, to string
		path     string
		zone     string
	)

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export events as an iCalendar file",
		Long:  options.Wrap80("Export writes the events of a date range, recurring task occurrences and accepted parties included, as iCalendar. The range defaults to this month."),
		Example: `
pilot export --ics july.ics --from 2024-07-01 --to 2024-07-31
pilot export > month.ics
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
				now := time.Now()
				first, err := options.ParseDay(from, now)
				if err != nil {
					return err
				}
				last, err := options.ParseDay(to, now)
				if err != nil {
					return err
				}
				loc := time.Local
				if zone != "" {
					if loc, err = time.LoadLocation(zone); err != nil {
						return err
					}
				}
				x := export.Export{
					App:      e.app,
					From:     first,
					To:       last,
					Path:     path,
					Location: loc,
					Out:      cmd.OutOrStdout(),
				}
				return x.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "First day, defaults to the first of this month.")
	cmd.Flags().StringVar(&to, "to", "", "Last day, defaults to the end of the month of --from.")
	cmd.Flags().StringVar(&path, "ics", "", "File to write, defaults to standard output.")
	cmd.Flags().StringVar(&zone, "tz", "", "IANA time zone of the events, defaults to local time.")
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
