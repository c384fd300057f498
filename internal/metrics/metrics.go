// Package metrics holds the Prometheus collectors of the web app and worker.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "belutin",
	Subsystem: "http",
	Name:      "requests_total",
	Help:      "HTTP requests by route, method and status code.",
}, []string{"route", "method", "status"})

var HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "belutin",
	Subsystem: "http",
	Name:      "request_duration_seconds",
	Help:      "HTTP request latency by route.",
	Buckets:   prometheus.DefBuckets,
}, []string{"route", "method"})

var TransactionsRecorded = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "belutin",
	Subsystem: "ledger",
	Name:      "transactions_recorded_total",
	Help:      "Journal entries written, by kind (sale, purchase, other).",
}, []string{"kind"})

var AdjustmentRows = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "belutin",
	Subsystem: "ledger",
	Name:      "adjustment_rows_total",
	Help:      "Adjustment rows written, by template.",
}, []string{"template"})

var ReportDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
	Namespace: "belutin",
	Subsystem: "ledger",
	Name:      "report_duration_seconds",
	Help:      "Time spent loading and deriving a report.",
	Buckets:   []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5},
}, []string{"report"})

var OTPChallenges = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "belutin",
	Subsystem: "auth",
	Name:      "otp_challenges_total",
	Help:      "OTP challenge outcomes (issued, verified, rejected, expired, throttled).",
}, []string{"outcome"})

var OTPDeliveries = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "belutin",
	Subsystem: "auth",
	Name:      "otp_deliveries_total",
	Help:      "OTP deliveries by sender and result.",
}, []string{"sender", "result"})
