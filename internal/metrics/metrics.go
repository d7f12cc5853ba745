package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

var (
	// HTTP metrics

	HTTPRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "todoapi",
		Name:      "http_request_duration_seconds",
		Help:      "HTTP request latency.",
		Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
	}, []string{"method", "path", "status"})

	HTTPRequestsTotal = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "todoapi",
		Name:      "http_requests_total",
		Help:      "Total HTTP requests.",
	}, []string{"method", "path", "status"})

	// Auth metrics

	RegistrationsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "todoapi",
		Name:      "registrations_total",
		Help:      "Total successful user registrations.",
	})

	LoginsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "todoapi",
		Name:      "logins_total",
		Help:      "Total successful logins.",
	})

	AuthRejectionsTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "todoapi",
		Name:      "auth_rejections_total",
		Help:      "Requests rejected by the auth middleware.",
	})

	// Session reaper

	TokensPrunedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "todoapi",
		Name:      "session_tokens_pruned_total",
		Help:      "Expired session tokens removed by the reaper.",
	})
)

func Register() {
	prometheus.MustRegister(
		HTTPRequestDuration,
		HTTPRequestsTotal,
		RegistrationsTotal,
		LoginsTotal,
		AuthRejectionsTotal,
		TokensPrunedTotal,
	)
}
