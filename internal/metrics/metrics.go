package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	once sync.Once

	httpRequests = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studio_portal",
			Name:      "http_requests_total",
			Help:      "Portal HTTP requests by route.",
		},
		[]string{"route"},
	)

	bookingActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studio_portal",
			Name:      "booking_actions_total",
			Help:      "Booking lifecycle actions by action and outcome.",
		},
		[]string{"action", "outcome"},
	)

	gatewayErrors = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "studio_portal",
			Name:      "gateway_errors_total",
			Help:      "Backend gateway failures by error kind.",
		},
		[]string{"kind"},
	)
)

// Register registers Prometheus metrics. Safe to call multiple times.
func Register() {
	once.Do(func() {
		prometheus.MustRegister(httpRequests, bookingActions, gatewayErrors)
	})
}

// IncHTTP increments the request counter for a route label.
func IncHTTP(route string) {
	httpRequests.WithLabelValues(route).Inc()
}

// IncBookingAction counts a lifecycle action attempt.
func IncBookingAction(action, outcome string) {
	bookingActions.WithLabelValues(action, outcome).Inc()
}

// IncGatewayError counts a gateway failure by taxonomy kind.
func IncGatewayError(kind string) {
	gatewayErrors.WithLabelValues(kind).Inc()
}
