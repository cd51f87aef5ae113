package commands

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	adminsvc "tableflip.dev/pilot/pkg/admin"
	"tableflip.dev/pilot/pkg/auth"
	"tableflip.dev/pilot/pkg/commands/options"
	"tableflip.dev/pilot/pkg/runner/admin"
	"tableflip.dev/pilot/pkg/runner/serve"
	"tableflip.dev/pilot/pkg/server"
)

func addServe(topLevel *cobra.Command) {
	oo := &options.OutputOptions{}
	var (
		addr  string
		debug bool
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the planner and admin REST API",
		Long:  options.Wrap80(`Serve the planner and admin API with bearer tokens from POST /api/login, and Prometheus metrics on /metrics. The address defaults to the addr setting.`),
		Example: `
pilot serve --addr 127.0.0.1:8080
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return withEnv(cmd, oo, func(ctx context.Context, e *env) error {
				dir, err := e.directory()
				if err != nil {
					return err
				}
				if e.cfg.Secret() == "" {
					return errors.New("serve needs a secret to sign tokens, set PILOT_SECRET")
				}
				if addr == "" {
					addr = e.cfg.Addr()
				}
				s := serve.Serve{
					Server: &server.Server{
						Planners: &server.Planners{Open: e.userPlanner},
						Admin: &adminsvc.Service{
							Directory:   dir,
							Broadcaster: dir,
							StatsSource: dir,
							Seeder:      dir,
							Notifier:    admin.Alerts(cmd.ErrOrStderr()),
							Confirmer:   admin.Yes,
							Log:         e.log,
						},
						Accounts:    dir,
						Tokens:      auth.NewTokens(e.cfg.Secret()),
						Credentials: dir,
						Allow:       e.allow,
						Log:         e.log,
					},
					Addr:  addr,
					Debug: debug,
					Out:   cmd.OutOrStdout(),
				}
				return s.Do(ctx)
			})
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, host:port.")
	cmd.Flags().BoolVar(&debug, "debug", false, "Run gin in debug mode.")

	topLevel.AddCommand(cmd)
}
