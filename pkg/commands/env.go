package commands

import (
	"context"
	"errors"
	"log/slog"

	"tableflip.dev/pilot/pkg/admin"
	"tableflip.dev/pilot/pkg/app"
	"tableflip.dev/pilot/pkg/auth"
	"tableflip.dev/pilot/pkg/directory"
	"tableflip.dev/pilot/pkg/logging"
	"tableflip.dev/pilot/pkg/store"
)

// env is what a command needs to run: config, the planner service and,
// when it can be opened, the user directory.
type env struct {
	cfg         store.Config
	log         *slog.Logger
	persistence store.Persistence
	app         *app.Service
	dir         *directory.Directory
	sessions    *auth.FileSessions
	allow       auth.AllowList
}

func loadEnv(ctx context.Context) (*env, error) {
	cfg, err := store.LoadConfig()
	if err != nil {
		return nil, err
	}
	log := logging.New(cfg.LogLevel())

	p, err := store.Load(cfg, store.WithLogger(log))
	if err != nil {
		return nil, err
	}
	e := &env{
		cfg:         cfg,
		log:         log,
		persistence: p,
		allow:       auth.NewAllowList(cfg.Admins()...),
		app: &app.Service{
			Persistence: p,
			Session:     app.NewSession(nil),
			Log:         log,
		},
	}

	dir, err := directory.Open(cfg.DirectoryPath(), log)
	if err != nil {
		log.Warn("user directory unavailable", "path", cfg.DirectoryPath(), "err", err)
	} else {
		e.dir = dir
		e.app.Activity = dir
	}
	e.sessions = &auth.FileSessions{
		Path:   cfg.SessionPath(),
		Tokens: auth.NewTokens(cfg.Secret()),
	}
	if e.dir != nil {
		e.sessions.Credentials = e.dir
	}

	if s, err := e.sessions.Session(ctx); err == nil {
		e.app.Session.SetUser(s.UserID, s.Email)
	} else if !errors.Is(err, auth.ErrUnauthenticated) {
		log.Debug("no session", "err", err)
	}

	if err := e.app.Load(ctx); err != nil {
		e.Close()
		return nil, err
	}
	return e, nil
}

// directory returns the user directory or an error when it failed to open.
func (e *env) directory() (*directory.Directory, error) {
	if e.dir == nil {
		return nil, errors.New("user directory unavailable, check the directory setting")
	}
	return e.dir, nil
}

// adminService returns the admin service for an allow-listed, signed-in user.
func (e *env) adminService(ctx context.Context, notifier admin.Notifier, confirmer admin.Confirmer) (*admin.Service, error) {
	dir, err := e.directory()
	if err != nil {
		return nil, err
	}
	gate := &auth.Gate{Auth: e.sessions, Allow: e.allow}
	if _, err := gate.RequireAdmin(ctx); err != nil {
		return nil, err
	}
	return &admin.Service{
		Directory:   dir,
		Broadcaster: dir,
		StatsSource: dir,
		Seeder:      dir,
		Notifier:    notifier,
		Confirmer:   confirmer,
		Log:         e.log,
	}, nil
}

// userPlanner opens the planner of a signed-in API user from their own
// record tree, so users never see each other's items.
func (e *env) userPlanner(_ context.Context, sess *auth.Session) (*app.Service, error) {
	cfg, err := store.ForUser(e.cfg, sess.UserID)
	if err != nil {
		return nil, err
	}
	p, err := store.Load(cfg, store.WithLogger(e.log))
	if err != nil {
		return nil, err
	}
	svc := &app.Service{
		Persistence: p,
		Session:     app.NewSession(nil),
		Log:         e.log.With("user", sess.UserID),
	}
	if e.dir != nil {
		svc.Activity = e.dir
	}
	return svc, nil
}

func (e *env) Close() {
	if e.dir != nil {
		_ = e.dir.Close()
	}
}
