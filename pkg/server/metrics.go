package server

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	httpRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pilot_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	httpRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "pilot_http_request_duration_seconds",
			Help:    "Duration of HTTP requests",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path"},
	)

	plannerMutations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pilot_planner_mutations_total",
			Help: "Planner changes made through the API",
		},
		[]string{"operation"}, // add_event, delete_event, complete_milestone, advance_week
	)

	adminActions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "pilot_admin_actions_total",
			Help: "Admin actions by outcome",
		},
		[]string{"action", "result"},
	)
)

func metricsMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		method := c.Request.Method
		httpRequestsTotal.WithLabelValues(method, path, strconv.Itoa(c.Writer.Status())).Inc()
		httpRequestDuration.WithLabelValues(method, path).Observe(time.Since(start).Seconds())
	}
}

func trackMutation(op string) {
	plannerMutations.WithLabelValues(op).Inc()
}

func trackAdmin(action string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	adminActions.WithLabelValues(action, result).Inc()
}
