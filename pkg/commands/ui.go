package commands

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"tableflip.dev/pilot/pkg/commands/options"
	"tableflip.dev/pilot/pkg/runner/ui"
	"tableflip.dev/pilot/pkg/tui"
)

func addUI(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	var noWatch bool

	cmd := &cobra.Command{
		Use:   "ui",
		Short: "open the text-based user interface",
		Example: `
pilot ui
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
				i := ui.UI{App: e.app, Watch: !noWatch, Colour: tui.ColourEnabled(os.Stdout)}
				return i.Do(ctx)
			})
		},
	}
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload when another process changes the data.")

	topLevel.AddCommand(cmd)
}
