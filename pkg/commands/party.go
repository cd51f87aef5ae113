package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/pilot/pkg/commands/options"
	"tableflip.dev/pilot/pkg/runner/party"
)

func addParty(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "party",
		Short: "Manage party invites",
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addPartyRespond(cmd)

	topLevel.AddCommand(cmd)
}

func addPartyRespond(parent *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "respond <party id> <friend id> <accepted|declined|pending>",
		Short: "Record a friend's answer to an invite",
		Example: `
pilot party respond <party id> <friend id> accepted
`,
		ValidArgs: []string{"accepted", "declined", "pending"},
		Args:      cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
				r := party.Respond{
					App:      e.app,
					PartyID:  args[0],
					FriendID: args[1],
					Status:   args[2],
					JSON:     oo.JSON,
					Out:      cmd.OutOrStdout(),
				}
				return r.Do(ctx)
			})
		},
	}
	options.AddOutputArg(cmd, oo)

	parent.AddCommand(cmd)
}
