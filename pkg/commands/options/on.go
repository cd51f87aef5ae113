package options

import (
	"time"

	"github.com/spf13/cobra"

	"tableflip.dev/pilot/pkg/timeutil"
)

const (
	layoutISO      = "2006-1-2"
	layoutISOShort = "1/2"
)

// OnOptions
type OnOptions struct {
	OnString string
}

func AddOnArgs(cmd *cobra.Command, o *OnOptions, usage string) {
	cmd.Flags().StringVar(&o.OnString, "on", "",
		usage+` Example: --on="2024-2-28" or --on="2/28".`)
}

// GetOn parses the date. An empty flag yields the zero Date.
func (o *OnOptions) GetOn() (timeutil.Date, error) {
	return ParseDay(o.OnString, time.Now())
}

// ParseDay accepts a full date or a month/day. A month/day that already
// passed this year means next year.
func ParseDay(s string, now time.Time) (timeutil.Date, error) {
	if s == "" {
		return timeutil.Date{}, nil
	}
	t, err := time.Parse(layoutISO, s)
	if err != nil {
		// Let the year be the same.
		t, err = time.Parse(layoutISOShort, s)
		if err != nil {
			return timeutil.Date{}, err
		}
		t = t.AddDate(now.Year(), 0, 0)
		if timeutil.DateOf(t).Before(timeutil.DateOf(now)) {
			t = t.AddDate(1, 0, 0)
		}
	}
	return timeutil.DateOf(t), nil
}
