// Package server exposes the planner and the admin surface over HTTP.
package server

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"tableflip.dev/pilot/pkg/admin"
	"tableflip.dev/pilot/pkg/app"
	"tableflip.dev/pilot/pkg/auth"
	"tableflip.dev/pilot/pkg/logging"
)

const (
	userKey    = "pilot.session"
	plannerKey = "pilot.planner"
)

// Accounts looks up the current state of a user behind a token.
type Accounts interface {
	User(ctx context.Context, id string) (admin.User, error)
}

// Server wires the HTTP routes. Every signed-in user gets their own planner
// from Planners; tokens of suspended or deleted users are refused when
// Accounts is set.
type Server struct {
	Planners    *Planners
	Admin       *admin.Service
	Accounts    Accounts
	Tokens      *auth.Tokens
	Credentials auth.Credentials
	Allow       auth.AllowList
	Log         *slog.Logger
}

func (s *Server) log() *slog.Logger {
	return logging.OrDiscard(s.Log)
}

// Router builds the gin engine.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), metricsMiddleware(), s.requestLog())

	r.GET("/healthz", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	api.POST("/login", s.login)

	planner := api.Group("")
	planner.Use(s.authenticate(), s.openPlanner())
	{
		planner.GET("/calendar/:year/:month", s.calendarMonth)
		planner.GET("/agenda", s.agenda)
		planner.POST("/events", s.addEvent)
		planner.DELETE("/events/:id", s.deleteEvent)
		planner.GET("/aigoals", s.aiGoals)
		planner.POST("/aigoals/:id/milestones/:mid/complete", s.completeMilestone)
		planner.POST("/aigoals/:id/advance", s.advanceWeek)
	}

	adm := api.Group("/admin")
	adm.Use(s.authenticate(), s.requireAdmin())
	{
		adm.GET("/users", s.users)
		adm.POST("/users/:id/suspend", s.suspend(true))
		adm.POST("/users/:id/reinstate", s.suspend(false))
		adm.DELETE("/users/:id", s.deleteUser)
		adm.POST("/notifications", s.notify)
		adm.GET("/stats", s.stats)
	}
	return r
}

// Run serves on addr until ctx is cancelled.
func (s *Server) Run(ctx context.Context, addr string) error {
	srv := &http.Server{Addr: addr, Handler: s.Router(), ReadHeaderTimeout: 10 * time.Second}
	errc := make(chan error, 1)
	go func() {
		s.log().Info("listening", "addr", addr)
		errc <- srv.ListenAndServe()
	}()
	select {
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdown, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdown)
	}
}

func (s *Server) requestLog() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		s.log().Debug("request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}

// authenticate requires a valid bearer token.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, err := auth.Bearer{Tokens: s.Tokens, Header: c.GetHeader("Authorization")}.Session(c.Request.Context())
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token", "route": auth.RouteLogin})
			return
		}
		if s.Accounts != nil {
			u, err := s.Accounts.User(c.Request.Context(), sess.UserID)
			if err != nil {
				s.log().Warn("token for unknown user", "user", sess.UserID, "err", err)
				c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing or invalid token", "route": auth.RouteLogin})
				return
			}
			if u.Suspended {
				c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": auth.ErrSuspended.Error(), "route": auth.RouteLogin})
				return
			}
		}
		c.Set(userKey, sess)
		c.Next()
	}
}

// openPlanner loads the caller's own planner into the request.
func (s *Server) openPlanner() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := c.Get(userKey)
		svc, err := s.Planners.For(c.Request.Context(), sess.(*auth.Session))
		if err != nil {
			s.log().Error("open planner", "err", err)
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "planner unavailable"})
			return
		}
		c.Set(plannerKey, svc)
		c.Next()
	}
}

func planner(c *gin.Context) *app.Service {
	return c.MustGet(plannerKey).(*app.Service)
}

// requireAdmin lets only allow-listed users through.
func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, _ := c.Get(userKey)
		gate := auth.Gate{Allow: s.Allow}
		if !gate.IsAdmin(sess.(*auth.Session)) {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "not allowed", "route": auth.RouteMain})
			return
		}
		c.Next()
	}
}

// fail maps domain errors to status codes.
func (s *Server) fail(c *gin.Context, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, app.ErrNotFound):
		status = http.StatusNotFound
	case isBadRequest(err):
		status = http.StatusBadRequest
	case errors.Is(err, auth.ErrInvalidCredentials):
		status = http.StatusUnauthorized
	case errors.Is(err, auth.ErrSuspended):
		status = http.StatusForbidden
	}
	if status == http.StatusInternalServerError {
		s.log().Error("request failed", "path", c.FullPath(), "err", err)
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

func (s *Server) login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if s.Credentials == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "sign in is not configured"})
		return
	}
	id, err := s.Credentials.Verify(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		s.fail(c, err)
		return
	}
	token, err := s.Tokens.Issue(id, req.Email)
	if err != nil {
		s.fail(c, err)
		return
	}
	route := auth.RouteMain
	if s.Allow.Allows(req.Email) {
		route = auth.RouteAdmin
	}
	c.JSON(http.StatusOK, gin.H{"token": token, "route": route})
}
