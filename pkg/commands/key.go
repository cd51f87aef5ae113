package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/pilot/pkg/runner/key"
)

func addKey(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "key",
		Short: "Show the symbols used for categories, coach messages and invites",
		Example: `
pilot key
`,
		ValidArgs: []string{},
		RunE: func(cmd *cobra.Command, args []string) error {
			k := key.Key{Out: cmd.OutOrStdout()}
			return k.Do(context.Background())
		},
	}

	topLevel.AddCommand(cmd)
}
