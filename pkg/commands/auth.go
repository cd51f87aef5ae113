package commands

import (
	"context"

	"github.com/spf13/cobra"

	"tableflip.dev/pilot/pkg/commands/options"
	"tableflip.dev/pilot/pkg/runner/signin"
)

func addRegister(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	var (
		name     string
		password string
	)

	cmd := &cobra.Command{
		Use:     "register <email>",
		Aliases: []string{"signup"},
		Short:   "Create an account in the user directory",
		Example: `
pilot register me@example.com --name "Ana Costa"
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
				dir, err := e.directory()
				if err != nil {
					return err
				}
				r := signin.Register{
					Users:    dir,
					Email:    args[0],
					Name:     name,
					Password: password,
					In:       cmd.InOrStdin(),
					Out:      cmd.OutOrStdout(),
				}
				return r.Do(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&name, "name", "", "Full name.")
	cmd.Flags().StringVar(&password, "password", "", "Password, read from standard input when empty.")

	topLevel.AddCommand(cmd)
}

func addLogin(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	var password string

	cmd := &cobra.Command{
		Use:     "login <email>",
		Aliases: []string{"signin"},
		Short:   "Sign in and keep the session on this machine",
		Example: `
pilot login me@example.com
`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
				if _, err := e.directory(); err != nil {
					return err
				}
				l := signin.Login{
					Sessions: e.sessions,
					Allow:    e.allow,
					Email:    args[0],
					Password: password,
					In:       cmd.InOrStdin(),
					Out:      cmd.OutOrStdout(),
				}
				return l.Do(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Password, read from standard input when empty.")

	topLevel.AddCommand(cmd)
}

func addLogout(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "logout",
		Aliases: []string{"signout"},
		Short:   "Forget the stored session",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
				l := signin.Logout{Sessions: e.sessions, Out: cmd.OutOrStdout()}
				return l.Do(ctx)
			})
		},
	}

	topLevel.AddCommand(cmd)
}

func addWhoAmI(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:   "whoami",
		Short: "Show the signed in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
				w := signin.WhoAmI{Sessions: e.sessions, Allow: e.allow, JSON: oo.JSON, Out: cmd.OutOrStdout()}
				return w.Do(ctx)
			})
		},
	}
	options.AddOutputArg(cmd, oo)

	topLevel.AddCommand(cmd)
}
