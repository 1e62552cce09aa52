package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parking_http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "parking_http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	WalletOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parking_wallet_operations_total",
			Help: "Total number of wallet ledger operations by outcome",
		},
		[]string{"operation", "result"},
	)

	WalletAmountTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parking_wallet_amount_total",
			Help: "Sum of completed wallet transaction amounts by type",
		},
		[]string{"type"},
	)

	BookingTransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parking_booking_transitions_total",
			Help: "Total number of booking payment transitions by outcome",
		},
		[]string{"transition", "result"},
	)

	RewardCacheTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "parking_reward_cache_total",
			Help: "Reward profile cache lookups by result",
		},
		[]string{"result"},
	)
)

func RecordHTTPRequest(method, path, status string, duration float64) {
	HTTPRequestsTotal.WithLabelValues(method, path, status).Inc()
	HTTPRequestDuration.WithLabelValues(method, path).Observe(duration)
}

func RecordWalletOperation(operation string, err error) {
	WalletOperationsTotal.WithLabelValues(operation, result(err)).Inc()
}

func RecordWalletAmount(txType string, amount float64) {
	WalletAmountTotal.WithLabelValues(txType).Add(amount)
}

func RecordBookingTransition(transition string, err error) {
	BookingTransitionsTotal.WithLabelValues(transition, result(err)).Inc()
}

func RecordRewardCache(hit bool) {
	if hit {
		RewardCacheTotal.WithLabelValues("hit").Inc()
		return
	}
	RewardCacheTotal.WithLabelValues("miss").Inc()
}

func result(err error) string {
	if err != nil {
		return ResultFailure
	}
	return ResultSuccess
}
