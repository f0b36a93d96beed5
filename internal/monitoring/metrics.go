package monitoring

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus collectors for the trading API. Registered once at package init
// on the default registry, which /metrics exposes.
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trading_api_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "trading_api_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	OrdersProcessed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trading_api_orders_processed_total",
			Help: "Total number of processed orders by type and outcome",
		},
		[]string{"type", "outcome"},
	)

	WalletTransactionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trading_api_wallet_transactions_total",
			Help: "Total number of wallet ledger entries by type",
		},
		[]string{"type"},
	)

	WithdrawalsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trading_api_withdrawals_total",
			Help: "Total number of withdrawal requests by final status",
		},
		[]string{"status"},
	)

	ExternalCallsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "trading_api_external_calls_total",
			Help: "Total number of calls to external providers",
		},
		[]string{"provider", "outcome"},
	)
)
