// Package telemetry exposes business-level Prometheus metrics. They sit
// next to the HTTP metrics middleware and answer questions the request
// counters cannot: how many orders, for how much, paid how.
package telemetry

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// BusinessMetrics holds Prometheus metrics for business-level observability.
type BusinessMetrics struct {
	// Orders
	OrdersCreated  *prometheus.CounterVec
	OrderValue     *prometheus.HistogramVec
	OrderItemCount prometheus.Histogram
	StatusChanges  *prometheus.CounterVec
	OrdersCancelled *prometheus.CounterVec

	// Checkout funnel
	QuotesServed   *prometheus.CounterVec
	CouponsApplied prometheus.Counter

	// Accounts
	Signups prometheus.Counter
	Logins  *prometheus.CounterVec

	// Background sweeps
	StaleOrdersSwept prometheus.Counter
	SessionsPruned   prometheus.Counter
}

// Business is the process-wide metrics instance, set by Init. A nil
// instance is safe: every Record helper is a no-op until Init runs, which
// keeps unit tests free of registry bookkeeping.
var Business *BusinessMetrics

// Init registers the business metrics under the given namespace.
func Init(namespace string) {
	Business = NewBusinessMetrics(namespace)
}

// NewBusinessMetrics creates and registers all business metrics.
func NewBusinessMetrics(namespace string) *BusinessMetrics {
	if namespace == "" {
		namespace = "pazar"
	}

	subsystem := "business"

	return &BusinessMetrics{
		OrdersCreated: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_created_total",
				Help:      "Orders created, by payment method",
			},
			[]string{"payment_method"},
		),
		OrderValue: promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_value",
				Help:      "Final order totals, by payment method",
				Buckets:   []float64{50, 100, 250, 500, 750, 1000, 2500, 5000},
			},
			[]string{"payment_method"},
		),
		OrderItemCount: promauto.NewHistogram(
			prometheus.HistogramOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_item_count",
				Help:      "Number of distinct lines per order",
				Buckets:   []float64{1, 2, 3, 5, 8, 13, 21},
			},
		),
		StatusChanges: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "order_status_changes_total",
				Help:      "Order status transitions, by new status",
			},
			[]string{"status"},
		),
		OrdersCancelled: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "orders_cancelled_total",
				Help:      "Cancelled orders, by who cancelled them",
			},
			[]string{"by"},
		),
		QuotesServed: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "checkout_quotes_total",
				Help:      "Checkout quotes served, by step",
			},
			[]string{"step"},
		),
		CouponsApplied: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "coupons_applied_total",
				Help:      "Orders submitted with a coupon applied",
			},
		),
		Signups: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "signups_total",
				Help:      "New account registrations",
			},
		),
		Logins: promauto.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "logins_total",
				Help:      "Login attempts, by result",
			},
			[]string{"result"},
		),
		StaleOrdersSwept: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "stale_orders_swept_total",
				Help:      "Bank transfer orders cancelled by the payment timeout sweep",
			},
		),
		SessionsPruned: promauto.NewCounter(
			prometheus.CounterOpts{
				Namespace: namespace,
				Subsystem: subsystem,
				Name:      "sessions_pruned_total",
				Help:      "Expired sessions removed by the sweep",
			},
		),
	}
}

// RecordOrderCreated tracks a successful order submission.
func RecordOrderCreated(paymentMethod string, total float64, itemCount int, couponApplied bool) {
	if Business == nil {
		return
	}
	Business.OrdersCreated.WithLabelValues(paymentMethod).Inc()
	Business.OrderValue.WithLabelValues(paymentMethod).Observe(total)
	Business.OrderItemCount.Observe(float64(itemCount))
	if couponApplied {
		Business.CouponsApplied.Inc()
	}
}

// RecordStatusChange tracks an order status transition.
func RecordStatusChange(status string) {
	if Business == nil {
		return
	}
	Business.StatusChanges.WithLabelValues(status).Inc()
}

// RecordCancellation tracks who cancelled an order: "customer", "admin" or
// "sweep".
func RecordCancellation(by string) {
	if Business == nil {
		return
	}
	Business.OrdersCancelled.WithLabelValues(by).Inc()
}

// RecordQuote tracks a served checkout quote.
func RecordQuote(step string) {
	if Business == nil {
		return
	}
	Business.QuotesServed.WithLabelValues(step).Inc()
}

// RecordSignup tracks a new registration.
func RecordSignup() {
	if Business == nil {
		return
	}
	Business.Signups.Inc()
}

// RecordLogin tracks a login attempt.
func RecordLogin(ok bool) {
	if Business == nil {
		return
	}
	result := "failure"
	if ok {
		result = "success"
	}
	Business.Logins.WithLabelValues(result).Inc()
}

// RecordSweep tracks the background sweep results.
func RecordSweep(staleOrders, sessions int64) {
	if Business == nil {
		return
	}
	Business.StaleOrdersSwept.Add(float64(staleOrders))
	Business.SessionsPruned.Add(float64(sessions))
}
