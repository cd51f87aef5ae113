package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/pilot/pkg/commands/options"
	"tableflip.dev/pilot/pkg/runner/agenda"
	"tableflip.dev/pilot/pkg/runner/calendar"
)

func addCalendar(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	var (
		month     string
		selectDay string
		long      bool
	)

	cmd := &cobra.Command{
		Use:     "calendar",
		Aliases: []string{"cal", "month"},
		Short:   "Show a month grid and the agenda of the selected day",
		Example: `
pilot calendar
pilot calendar --month 2024-07 --select 2024-07-16
pilot calendar --long
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
				c := calendar.Calendar{
					App:    e.app,
					Month:  month,
					Select: selectDay,
					Long:   long,
					ShowID: oo.ShowID,
					JSON:   oo.JSON,
					Out:    cmd.OutOrStdout(),
				}
				return c.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVarP(&month, "month", "m", "", "Month to show, YYYY-MM. Defaults to this month.")
	cmd.Flags().StringVarP(&selectDay, "select", "s", "", "Day to select, YYYY-MM-DD. Also shows its month.")
	cmd.Flags().BoolVarP(&long, "long", "l", false, "List every day of the month instead of the grid.")
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArg(cmd, oo)

	topLevel.AddCommand(cmd)
}

func addAgenda(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	on := &options.OnOptions{}
	var byStart bool

	cmd := &cobra.Command{
		Use:   "agenda",
		Short: "List the events of one day",
		Example: `
pilot agenda
pilot agenda --on 7/16 --by-start
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
				day, err := on.GetOn()
				if err != nil {
					return err
				}
				a := agenda.Agenda{
					App:     e.app,
					ByStart: byStart,
					ShowID:  oo.ShowID,
					JSON:    oo.JSON,
					Out:     cmd.OutOrStdout(),
				}
				if !day.IsZero() {
					a.On = day.String()
				}
				return a.Do(ctx)
			})
		},
	}

	options.AddOnArgs(cmd, on, "Day to list, defaults to today.")
	cmd.Flags().BoolVar(&byStart, "by-start", false, "Order by start time instead of the order added.")
	options.AddOutputArg(cmd, oo)
	options.AddShowIDArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
