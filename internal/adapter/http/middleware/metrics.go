package middleware

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics counts requests and server errors per route.
type Metrics struct {
	requests *prometheus.CounterVec
	errors   *prometheus.CounterVec
}

func NewMetrics(registry prometheus.Registerer) *Metrics {
	m := &Metrics{
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskboard_requests_total",
			Help: "Total number of HTTP requests handled, by route and status.",
		}, []string{"method", "route", "status"}),
		errors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "taskboard_errors_total",
			Help: "Total number of HTTP requests that ended in a server error, by route.",
		}, []string{"method", "route"}),
	}
	registry.MustRegister(m.requests, m.errors)
	return m
}

func (m *Metrics) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		route := c.FullPath()
		if route == "" {
			route = "unmatched"
		}

		status := c.Writer.Status()
		m.requests.WithLabelValues(c.Request.Method, route, strconv.Itoa(status)).Inc()
		if status >= http.StatusInternalServerError {
			m.errors.WithLabelValues(c.Request.Method, route).Inc()
		}
	}
}
