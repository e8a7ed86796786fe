// Package metrics holds the Prometheus collectors of the bridge.
package metrics

import "github.com/prometheus/client_golang/prometheus"

const namespace = "bridge"

var (
	DepositsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deposits_total",
			Help:      "Deposit verification attempts by result code.",
		},
		[]string{"chain", "result"},
	)

	DepositedAmount = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "deposited_base_units_total",
			Help:      "Base units credited from verified deposits.",
		},
		[]string{"chain"},
	)

	WithdrawalsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "withdrawals_total",
			Help:      "Withdrawal requests by result code.",
		},
		[]string{"chain", "result"},
	)

	WithdrawalOutcomesTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "withdrawal_outcomes_total",
			Help:      "Signer outcome reports applied, by terminal status.",
		},
		[]string{"chain", "status"},
	)

	ScheduleFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "schedule_failures_total",
			Help:      "Committed withdrawals that could not be handed to the signer queue.",
		},
	)

	ChainLookupDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "chain_lookup_duration_seconds",
			Help:      "Latency of chain transaction lookups by result status.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"chain", "status"},
	)

	ChainBreakerState = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "chain_circuitbreaker_state",
			Help:      "Chain circuit breaker state (0/1).",
		},
		[]string{"chain", "state"}, // closed/open/half-open
	)

	HTTPRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		},
		[]string{"method", "route", "status"},
	)

	HTTPRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)
)

// MustRegister registers every collector with reg.
func MustRegister(reg prometheus.Registerer) {
	reg.MustRegister(
		DepositsTotal,
		DepositedAmount,
		WithdrawalsTotal,
		WithdrawalOutcomesTotal,
		ScheduleFailuresTotal,
		ChainLookupDuration,
		ChainBreakerState,
		HTTPRequestsTotal,
		HTTPRequestDuration,
	)
}
