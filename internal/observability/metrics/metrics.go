package metrics

import "github.com/prometheus/client_golang/prometheus"

// BookingMetrics exposes counters for the booking and payment flows.
type BookingMetrics struct {
	bookingsCreated   *prometheus.CounterVec
	bookingsCancelled prometheus.Counter
	paymentsVerified  prometheus.Counter
	paymentFailures   *prometheus.CounterVec
	pendingExpired    prometheus.Counter
}

func NewBookingMetrics(reg prometheus.Registerer) *BookingMetrics {
	m := &BookingMetrics{
		bookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mindvale",
			Subsystem: "bookings",
			Name:      "created_total",
			Help:      "Total bookings created",
		}, []string{"channel", "discounted"}),
		bookingsCancelled: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mindvale",
			Subsystem: "bookings",
			Name:      "cancelled_total",
			Help:      "Total bookings cancelled by users",
		}),
		paymentsVerified: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mindvale",
			Subsystem: "payments",
			Name:      "verified_total",
			Help:      "Total successfully verified payments",
		}),
		paymentFailures: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "mindvale",
			Subsystem: "payments",
			Name:      "failures_total",
			Help:      "Total payment flow failures",
		}, []string{"reason"}),
		pendingExpired: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "mindvale",
			Subsystem: "bookings",
			Name:      "pending_expired_total",
			Help:      "Total pending bookings expired by the sweep",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.bookingsCreated, m.bookingsCancelled, m.paymentsVerified, m.paymentFailures, m.pendingExpired)
	return m
}

func (m *BookingMetrics) ObserveBookingCreated(channel string, discounted bool) {
	if m == nil {
		return
	}
	label := "false"
	if discounted {
		label = "true"
	}
	m.bookingsCreated.WithLabelValues(channel, label).Inc()
}

func (m *BookingMetrics) ObserveBookingCancelled() {
	if m == nil {
		return
	}
	m.bookingsCancelled.Inc()
}

func (m *BookingMetrics) ObservePaymentVerified() {
	if m == nil {
		return
	}
	m.paymentsVerified.Inc()
}

func (m *BookingMetrics) ObservePaymentFailure(reason string) {
	if m == nil {
		return
	}
	m.paymentFailures.WithLabelValues(reason).Inc()
}

func (m *BookingMetrics) ObservePendingExpired(count int) {
	if m == nil || count <= 0 {
		return
	}
	m.pendingExpired.Add(float64(count))
}
