package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/pilot/pkg/timeutil"
)

// SpanOptions is a start and end clock on one day.
type SpanOptions struct {
	Start string
	End   string
}

func AddSpanArgs(cmd *cobra.Command, o *SpanOptions) {
	cmd.Flags().StringVar(&o.Start, "start", "09:00", "Start time, HH:MM.")
	cmd.Flags().StringVar(&o.End, "end", "10:00", "End time, HH:MM.")
}

func (o *SpanOptions) Clocks() (timeutil.Clock, timeutil.Clock, error) {
	start, err := timeutil.ParseClock(o.Start)
	if err != nil {
		return 0, 0, err
	}
	end, err := timeutil.ParseClock(o.End)
	if err != nil {
		return 0, 0, err
	}
	return start, end, nil
}

// DetailOptions are the free text fields shared by most items.
type DetailOptions struct {
	Description string
	Category    string
}

func AddDetailArgs(cmd *cobra.Command, o *DetailOptions, category, usage string) {
	cmd.Flags().StringVarP(&o.Description, "description", "d", "", "Longer description.")
	cmd.Flags().StringVarP(&o.Category, "category", "c", category, usage)
}

// DaysOptions selects weekdays.
type DaysOptions struct {
	Days []string
}

func AddDaysArgs(cmd *cobra.Command, o *DaysOptions) {
	cmd.Flags().StringSliceVar(&o.Days, "days", nil,
		`Weekdays, example: --days=mon,wed,fri.`)
}

func (o *DaysOptions) Set() (timeutil.WeekdaySet, error) {
	return timeutil.ParseWeekdays(o.Days)
}
