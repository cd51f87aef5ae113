package options

import (
	"github.com/spf13/cobra"

	"tableflip.dev/pilot/pkg/timeutil"
)

// WindowOptions
type WindowOptions struct {
	Last string
}

func AddWindowArgs(cmd *cobra.Command, o *WindowOptions) {
	cmd.Flags().StringVar(&o.Last, "last", timeutil.DefaultWindow,
		"Time window to include in days, weeks or months, for example 3d, 1w2d or 1m.")
}
