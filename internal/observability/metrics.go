// Package observability wires Prometheus metrics for the session engine and
// its HTTP surface.
package observability

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Nudge outcomes used as the "outcome" label.
const (
	OutcomeYouNudged = "you_nudged"
	OutcomeMutual    = "mutual"
	OutcomeNoop      = "noop"
	OutcomeNotFound  = "not_found"
)

// Collector bundles the Prometheus metrics and implements the session
// recorder interface.
type Collector struct {
	gatherer prometheus.Gatherer

	Nudges           *prometheus.CounterVec
	ChatMessages     *prometheus.CounterVec
	RepliesCancelled prometheus.Counter
	ActiveSessions   prometheus.Gauge
	RosterSize       prometheus.Histogram

	HTTPRequests  *prometheus.CounterVec
	HTTPDurations *prometheus.HistogramVec
}

// NewCollector registers metrics on reg, defaulting to the global registry.
func NewCollector(reg prometheus.Registerer) (*Collector, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	gatherer := prometheus.DefaultGatherer
	if g, ok := reg.(prometheus.Gatherer); ok {
		gatherer = g
	}

	nudges, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nudge_sent_total",
		Help: "Nudge actions by outcome.",
	}, []string{"outcome"}), "nudge_sent_total")
	if err != nil {
		return nil, err
	}
	messages, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nudge_chat_messages_total",
		Help: "Chat messages delivered, labeled by sender.",
	}, []string{"sender"}), "nudge_chat_messages_total")
	if err != nil {
		return nil, err
	}
	cancelled, err := register(reg, prometheus.NewCounter(prometheus.CounterOpts{
		Name: "nudge_chat_replies_cancelled_total",
		Help: "Simulated replies dropped before delivery.",
	}), "nudge_chat_replies_cancelled_total")
	if err != nil {
		return nil, err
	}
	active, err := register(reg, prometheus.NewGauge(prometheus.GaugeOpts{
		Name: "nudge_active_sessions",
		Help: "Viewer sessions currently held in memory.",
	}), "nudge_active_sessions")
	if err != nil {
		return nil, err
	}
	roster, err := register(reg, prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "nudge_roster_size",
		Help:    "Number of simulated users per generated roster.",
		Buckets: prometheus.LinearBuckets(1, 1, 10),
	}), "nudge_roster_size")
	if err != nil {
		return nil, err
	}
	requests, err := register(reg, prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "nudge_http_requests_total",
		Help: "HTTP requests by method, route and status code.",
	}, []string{"method", "route", "code"}), "nudge_http_requests_total")
	if err != nil {
		return nil, err
	}
	durations, err := register(reg, prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "nudge_http_request_duration_seconds",
		Help:    "HTTP request latency in seconds.",
		Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5},
	}, []string{"method", "route"}), "nudge_http_request_duration_seconds")
	if err != nil {
		return nil, err
	}

	return &Collector{
		gatherer:         gatherer,
		Nudges:           nudges,
		ChatMessages:     messages,
		RepliesCancelled: cancelled,
		ActiveSessions:   active,
		RosterSize:       roster,
		HTTPRequests:     requests,
		HTTPDurations:    durations,
	}, nil
}

func (c *Collector) NudgeSent(outcome string) {
	if c == nil {
		return
	}
	c.Nudges.WithLabelValues(outcome).Inc()
}

func (c *Collector) ChatMessage(sender string) {
	if c == nil {
		return
	}
	c.ChatMessages.WithLabelValues(sender).Inc()
}

func (c *Collector) ReplyCancelled() {
	if c == nil {
		return
	}
	c.RepliesCancelled.Inc()
}

func (c *Collector) RosterGenerated(size int) {
	if c == nil {
		return
	}
	c.RosterSize.Observe(float64(size))
}

func (c *Collector) SetActiveSessions(n int) {
	if c == nil {
		return
	}
	c.ActiveSessions.Set(float64(n))
}

// GinMiddleware records request counts and latencies by matched route.
func (c *Collector) GinMiddleware() gin.HandlerFunc {
	return func(ctx *gin.Context) {
		start := time.Now()
		ctx.Next()
		if c == nil {
			return
		}
		route := ctx.FullPath()
		if route == "" {
			route = "unmatched"
		}
		method := ctx.Request.Method
		c.HTTPRequests.WithLabelValues(method, route, strconv.Itoa(ctx.Writer.Status())).Inc()
		c.HTTPDurations.WithLabelValues(method, route).Observe(time.Since(start).Seconds())
	}
}

// Handler exposes a ready-to-use /metrics handler.
func (c *Collector) Handler() http.Handler {
	gatherer := prometheus.DefaultGatherer
	if c != nil && c.gatherer != nil {
		gatherer = c.gatherer
	}
	return promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})
}

// register tolerates a collector that is already registered with the same type.
func register[T prometheus.Collector](reg prometheus.Registerer, c T, name string) (T, error) {
	if err := reg.Register(c); err != nil {
		if are, ok := err.(prometheus.AlreadyRegisteredError); ok {
			if existing, ok := are.ExistingCollector.(T); ok {
				return existing, nil
			}
			var zero T
			return zero, fmt.Errorf("collector %s already registered with incompatible type", name)
		}
		var zero T
		return zero, err
	}
	return c, nil
}
