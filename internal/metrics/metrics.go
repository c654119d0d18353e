package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "finderid"

// HTTP metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests",
		},
		[]string{"method", "path", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency distribution",
			Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "http_requests_in_flight",
			Help:      "Current number of HTTP requests being processed",
		},
	)
)

// Entitlement metrics
var (
	EntitlementDecisionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entitlement_decisions_total",
			Help:      "Total number of plan limit checks by resource kind, effective plan and outcome",
		},
		[]string{"kind", "plan", "outcome"},
	)

	EntitlementErrorsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "entitlement_errors_total",
			Help:      "Total number of plan limit checks that could not be evaluated",
		},
		[]string{"kind"},
	)
)

// Background job metrics
var (
	JobsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "jobs_total",
			Help:      "Total number of jobs processed",
		},
		[]string{"type", "status"},
	)

	JobDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "job_duration_seconds",
			Help:      "Job execution time distribution",
			Buckets:   []float64{.1, .5, 1, 5, 10, 30, 60, 120},
		},
		[]string{"type"},
	)

	CardsExpiredTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cards_expired_total",
			Help:      "Total number of card subscriptions moved to expired by the sweep",
		},
	)
)

// Outcome labels for EntitlementDecisionsTotal.
const (
	OutcomeAllowed = "allowed"
	OutcomeDenied  = "denied"
)

// RecordDecision counts one limit check.
func RecordDecision(kind, plan string, allowed bool) {
	outcome := OutcomeDenied
	if allowed {
		outcome = OutcomeAllowed
	}
	EntitlementDecisionsTotal.WithLabelValues(kind, plan, outcome).Inc()
}

// RecordDecisionError counts a limit check that failed before a decision was made.
func RecordDecisionError(kind string) {
	EntitlementErrorsTotal.WithLabelValues(kind).Inc()
}
