package server

import (
	"context"
	"errors"
	"sync"

	"tableflip.dev/pilot/pkg/app"
	"tableflip.dev/pilot/pkg/auth"
)

// OpenFunc opens the planner that belongs to one signed-in user.
type OpenFunc func(ctx context.Context, sess *auth.Session) (*app.Service, error)

// Planners hands every user their own planner, opening it on first use.
type Planners struct {
	Open OpenFunc

	mu   sync.Mutex
	open map[string]*app.Service
}

// For returns the planner of the session's user.
func (p *Planners) For(ctx context.Context, sess *auth.Session) (*app.Service, error) {
	if sess == nil || sess.UserID == "" {
		return nil, auth.ErrUnauthenticated
	}
	if p == nil || p.Open == nil {
		return nil, errors.New("server: no planner opener configured")
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if svc, ok := p.open[sess.UserID]; ok {
		return svc, nil
	}
	svc, err := p.Open(ctx, sess)
	if err != nil {
		return nil, err
	}
	if svc.Session == nil {
		svc.Session = app.NewSession(svc.Now)
	}
	svc.Session.SetUser(sess.UserID, sess.Email)
	if err := svc.Load(ctx); err != nil {
		return nil, err
	}
	if p.open == nil {
		p.open = make(map[string]*app.Service)
	}
	p.open[sess.UserID] = svc
	return svc, nil
}

// Forget drops a cached planner, e.g. after the user was deleted.
func (p *Planners) Forget(userID string) {
	if p == nil {
		return
	}
	p.mu.Lock()
	delete(p.open, userID)
	p.mu.Unlock()
}
