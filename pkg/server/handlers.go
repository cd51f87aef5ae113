package server

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"tableflip.dev/pilot/pkg/admin"
	"tableflip.dev/pilot/pkg/calendar"
	"tableflip.dev/pilot/pkg/collection"
	"tableflip.dev/pilot/pkg/event"
	"tableflip.dev/pilot/pkg/goal"
	"tableflip.dev/pilot/pkg/social"
	"tableflip.dev/pilot/pkg/timeutil"
	"tableflip.dev/pilot/pkg/validate"
)

func isBadRequest(err error) bool {
	for _, target := range []error{
		validate.ErrInvalid,
		event.ErrTimeOrder,
		goal.ErrInactive,
		goal.ErrLocked,
		goal.ErrWeekRange,
		goal.ErrNoDays,
		goal.ErrLateSchedule,
		social.ErrNotInvited,
		social.ErrAlreadyInvited,
		social.ErrLateStart,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

type monthResponse struct {
	Month    string          `json:"month"`
	Title    string          `json:"title"`
	Selected timeutil.Date   `json:"selected"`
	Today    timeutil.Date   `json:"today"`
	Cells    []calendar.Cell `json:"cells"`
}

func (s *Server) calendarMonth(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "year must be a number"})
		return
	}
	month, err := strconv.Atoi(c.Param("month"))
	if err != nil || month < 1 || month > 12 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "month must be 1-12"})
		return
	}
	m := calendar.Month{Year: year, Month: time.Month(month)}
	svc := planner(c)
	c.JSON(http.StatusOK, monthResponse{
		Month:    m.String(),
		Title:    m.Title(),
		Selected: svc.Session.Selected(),
		Today:    timeutil.Today(svc.Now),
		Cells:    svc.MonthGrid(m),
	})
}

func (s *Server) agenda(c *gin.Context) {
	svc := planner(c)
	d := svc.Session.Selected()
	if raw := c.Query("date"); raw != "" {
		parsed, err := timeutil.ParseDate(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		d = parsed
	}
	events := svc.AgendaOn(d)
	if c.Query("sort") == "start" {
		event.SortByStart(events)
	}
	c.JSON(http.StatusOK, gin.H{"date": d, "events": events})
}

type eventRequest struct {
	Title       string `json:"title" binding:"required"`
	Date        string `json:"date" binding:"required"`
	StartTime   string `json:"startTime" binding:"required"`
	EndTime     string `json:"endTime" binding:"required"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Progress    *int   `json:"progress"`
}

func (r eventRequest) build() (*event.Event, error) {
	d, err := timeutil.ParseDate(r.Date)
	if err != nil {
		return nil, err
	}
	start, err := timeutil.ParseClock(r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := timeutil.ParseClock(r.EndTime)
	if err != nil {
		return nil, err
	}
	cat := event.CategoryWork
	if r.Category != "" {
		if cat, err = event.ParseCategory(r.Category); err != nil {
			return nil, err
		}
	}
	e, err := event.New(r.Title, d, start, end, cat)
	if err != nil {
		return nil, err
	}
	e.Description = r.Description
	if r.Progress != nil {
		e.SetProgress(*r.Progress)
	}
	return e, nil
}

func (s *Server) addEvent(c *gin.Context) {
	var req eventRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	e, err := req.build()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	saved, err := planner(c).AddEvent(c.Request.Context(), e)
	if err != nil {
		s.fail(c, err)
		return
	}
	trackMutation("add_event")
	c.JSON(http.StatusCreated, saved)
}

func (s *Server) deleteEvent(c *gin.Context) {
	if err := planner(c).Delete(c.Request.Context(), collection.TypeEvents, c.Param("id")); err != nil {
		s.fail(c, err)
		return
	}
	trackMutation("delete_event")
	c.Status(http.StatusNoContent)
}

func (s *Server) aiGoals(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"goals": planner(c).Session.AIGoals()})
}

func (s *Server) completeMilestone(c *gin.Context) {
	g, err := planner(c).CompleteMilestone(c.Request.Context(), c.Param("id"), c.Param("mid"))
	if err != nil {
		s.fail(c, err)
		return
	}
	trackMutation("complete_milestone")
	c.JSON(http.StatusOK, g)
}

func (s *Server) advanceWeek(c *gin.Context) {
	g, err := planner(c).AdvanceWeek(c.Request.Context(), c.Param("id"))
	if err != nil {
		s.fail(c, err)
		return
	}
	trackMutation("advance_week")
	c.JSON(http.StatusOK, g)
}

func (s *Server) users(c *gin.Context) {
	err := s.Admin.Refresh(c.Request.Context())
	trackAdmin("list_users", err)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": s.Admin.Search(c.Query("q"))})
}

func (s *Server) suspend(suspended bool) gin.HandlerFunc {
	action := "suspend"
	if !suspended {
		action = "reinstate"
	}
	return func(c *gin.Context) {
		var err error
		if suspended {
			err = s.Admin.Suspend(c.Request.Context(), c.Param("id"))
		} else {
			err = s.Admin.Reinstate(c.Request.Context(), c.Param("id"))
		}
		trackAdmin(action, err)
		if err != nil {
			s.fail(c, err)
			return
		}
		c.JSON(http.StatusOK, gin.H{"users": s.Admin.Users()})
	}
}

func (s *Server) deleteUser(c *gin.Context) {
	err := s.Admin.Delete(c.Request.Context(), c.Param("id"))
	trackAdmin("delete", err)
	if errors.Is(err, admin.ErrCancelled) {
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
		return
	}
	if err != nil {
		s.fail(c, err)
		return
	}
	s.Planners.Forget(c.Param("id"))
	c.Status(http.StatusNoContent)
}

type notifyRequest struct {
	Title   string `json:"title"`
	Message string `json:"message"`
}

func (s *Server) notify(c *gin.Context) {
	var req notifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	n, err := s.Admin.Notify(c.Request.Context(), req.Title, req.Message)
	trackAdmin("notify", err)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusCreated, n)
}

func (s *Server) stats(c *gin.Context) {
	st, err := s.Admin.Dashboard(c.Request.Context())
	trackAdmin("stats", err)
	if err != nil {
		s.fail(c, err)
		return
	}
	c.JSON(http.StatusOK, st)
}
