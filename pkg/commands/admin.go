package commands

import (
	"context"
	"strings"

	"github.com/spf13/cobra"

	adminsvc "tableflip.dev/pilot/pkg/admin"
	"tableflip.dev/pilot/pkg/commands/options"
	"tableflip.dev/pilot/pkg/runner/admin"
)

func addAdmin(topLevel *cobra.Command) {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Manage users, notifications and the dashboard",
		Long:  options.Wrap80(`Admin commands need a signed in user whose email is on the admins list of the configuration.`),
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
	}

	addAdminUsers(cmd)
	addAdminSuspend(cmd, false)
	addAdminSuspend(cmd, true)
	addAdminDelete(cmd)
	addAdminNotify(cmd)
	addAdminStats(cmd)
	addAdminSeed(cmd)

	topLevel.AddCommand(cmd)
}

// withAdmin runs fn with an admin service that reports alerts on stderr.
func withAdmin(cmd *cobra.Command, oo *options.OutputOptions, confirm adminsvc.Confirmer, fn func(ctx context.Context, svc *adminsvc.Service) error) error {
	return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
		svc, err := e.adminService(ctx, admin.Alerts(cmd.ErrOrStderr()), confirm)
		if err != nil {
			return err
		}
		return fn(ctx, svc)
	})
}

func adminOutput(cmd *cobra.Command, oo *options.OutputOptions) admin.Output {
	return admin.Output{JSON: oo.JSON, Out: cmd.OutOrStdout()}
}

func addAdminUsers(parent *cobra.Command) {
	oo := &options.OutputOptions{}
	var search string

	cmd := &cobra.Command{
		Use:   "users",
		Short: "List users, newest first",
		Example: `
pilot admin users --search maria
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withAdmin(cmd, oo, nil, func(ctx context.Context, svc *adminsvc.Service) error {
				n := admin.Users{Admin: svc, Query: search, Output: adminOutput(cmd, oo)}
				return n.Do(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&search, "search", "", "Only users whose email or name contains this.")
	options.AddOutputArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addAdminSuspend(parent *cobra.Command, reinstate bool) {
	oo := &options.OutputOptions{}
	use, short := "suspend <user id>", "Block a user from signing in"
	if reinstate {
		use, short = "reinstate <user id>", "Lift a suspension"
	}

	cmd := &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAdmin(cmd, oo, nil, func(ctx context.Context, svc *adminsvc.Service) error {
				n := admin.Suspend{Admin: svc, ID: args[0], Reinstate: reinstate, Output: adminOutput(cmd, oo)}
				return n.Do(ctx)
			})
		},
	}

	parent.AddCommand(cmd)
}

func addAdminDelete(parent *cobra.Command) {
	oo := &options.OutputOptions{}
	co := &options.ConfirmOptions{}

	cmd := &cobra.Command{
		Use:   "delete <user id>",
		Short: "Delete a user after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var confirm adminsvc.Confirmer = admin.Prompt(cmd.InOrStdin(), cmd.ErrOrStderr())
			if co.Yes {
				confirm = admin.Yes
			}
			return withAdmin(cmd, oo, confirm, func(ctx context.Context, svc *adminsvc.Service) error {
				n := admin.Delete{Admin: svc, ID: args[0], Output: adminOutput(cmd, oo)}
				return n.Do(ctx)
			})
		},
	}
	options.AddConfirmArgs(cmd, co)

	parent.AddCommand(cmd)
}

func addAdminNotify(parent *cobra.Command) {
	oo := &options.OutputOptions{}
	var title string

	cmd := &cobra.Command{
		Use:   "notify <message>",
		Short: "Send a notification to every user",
		Example: `
pilot admin notify --title Maintenance The service is down at noon.
`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withAdmin(cmd, oo, nil, func(ctx context.Context, svc *adminsvc.Service) error {
				n := admin.Notify{Admin: svc, Title: title, Message: strings.Join(args, " "), Output: adminOutput(cmd, oo)}
				return n.Do(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&title, "title", "", "Notification title.")
	options.AddOutputArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addAdminStats(parent *cobra.Command) {
	oo := &options.OutputOptions{}

	cmd := &cobra.Command{
		Use:     "stats",
		Aliases: []string{"dashboard"},
		Short:   "Show usage statistics",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withAdmin(cmd, oo, nil, func(ctx context.Context, svc *adminsvc.Service) error {
				n := admin.Stats{Admin: svc, Output: adminOutput(cmd, oo)}
				return n.Do(ctx)
			})
		},
	}
	options.AddOutputArg(cmd, oo)

	parent.AddCommand(cmd)
}

func addAdminSeed(parent *cobra.Command) {
	oo := &options.OutputOptions{}
	var password string

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Create the sample users",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withAdmin(cmd, oo, nil, func(ctx context.Context, svc *adminsvc.Service) error {
				n := admin.Seed{Admin: svc, Password: password, Output: adminOutput(cmd, oo)}
				return n.Do(ctx)
			})
		},
	}
	cmd.Flags().StringVar(&password, "password", "", "Password of the sample users.")

	parent.AddCommand(cmd)
}
