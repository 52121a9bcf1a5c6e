package monitoring

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "Duration of HTTP requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"handler", "method", "status_code"},
	)

	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"handler", "method", "status_code"},
	)
)

var (
	CartOperationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cart_operations_total",
			Help: "Total number of cart mutations by operation",
		},
		[]string{"operation"},
	)

	CheckoutAttemptsTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_attempts_total",
			Help: "Total number of checkout attempts",
		},
	)

	CheckoutSuccessTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "checkout_success_total",
			Help: "Total number of successful checkouts",
		},
	)

	CheckoutFailureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "checkout_failure_total",
			Help: "Total number of failed checkouts",
		},
		[]string{"reason"},
	)

	OrdersCreatedTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "orders_created_total",
			Help: "Total number of remote orders created",
		},
	)

	OrderCreationFailureTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "order_creation_failure_total",
			Help: "Total number of failed remote order creations",
		},
	)

	PaymentSessionFailureTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payment_session_failure_total",
			Help: "Total number of payment sessions that failed after order creation",
		},
	)

	SessionResolutionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "session_resolutions_total",
			Help: "Total number of session resolutions by outcome",
		},
		[]string{"outcome"},
	)
)

var (
	CommerceRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "commerce_request_duration_seconds",
			Help:    "Duration of commerce backend requests in seconds",
			Buckets: []float64{0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"method", "path"},
	)

	DBQueryDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Duration of database queries in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10},
		},
		[]string{"query_type", "table"},
	)

	DBConnectionsActive = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_active",
			Help: "Number of active database connections",
		},
	)

	DBConnectionsIdle = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Number of idle database connections",
		},
	)
)

var (
	RedisCommandDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "redis_command_duration_seconds",
			Help:    "Duration of Redis commands in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1},
		},
		[]string{"command"},
	)

	RedisLockSuccessTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_lock_success_total",
			Help: "Total number of successful lock acquisitions",
		},
		[]string{"lock_type"},
	)

	RedisLockFailureTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "redis_lock_failure_total",
			Help: "Total number of failed lock acquisitions",
		},
		[]string{"lock_type", "reason"},
	)
)

func TimeDBQuery(queryType, table string) func() {
	start := time.Now()
	return func() {
		duration := time.Since(start).Seconds()
		DBQueryDuration.WithLabelValues(queryType, table).Observe(duration)
	}
}

func TimeCommerceRequest(method, path string) func() {
	start := time.Now()
	return func() {
		duration := time.Since(start).Seconds()
		CommerceRequestDuration.WithLabelValues(method, path).Observe(duration)
	}
}

func RecordCartOperation(operation string) {
	CartOperationsTotal.WithLabelValues(operation).Inc()
}

func RecordCheckoutAttempt() {
	CheckoutAttemptsTotal.Inc()
}

func RecordCheckoutSuccess() {
	CheckoutSuccessTotal.Inc()
}

func RecordCheckoutFailure(reason string) {
	CheckoutFailureTotal.WithLabelValues(reason).Inc()
}

func RecordOrderCreated() {
	OrdersCreatedTotal.Inc()
}

func RecordOrderCreationFailure() {
	OrderCreationFailureTotal.Inc()
}

func RecordPaymentSessionFailure() {
	PaymentSessionFailureTotal.Inc()
}

func RecordSessionResolution(outcome string) {
	SessionResolutionsTotal.WithLabelValues(outcome).Inc()
}

func RecordLockSuccess(lockType string) {
	RedisLockSuccessTotal.WithLabelValues(lockType).Inc()
}

func RecordLockFailure(lockType, reason string) {
	RedisLockFailureTotal.WithLabelValues(lockType, reason).Inc()
}
