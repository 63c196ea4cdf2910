// Package metrics provides Prometheus metrics instrumentation.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestDuration tracks HTTP request duration.
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "webhook_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: []float64{.005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5},
		},
		[]string{"method", "path", "status"},
	)

	// RequestsTotal tracks total HTTP requests.
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "webhook_requests_total",
			Help: "Total HTTP requests",
		},
		[]string{"method", "path", "status"},
	)

	// TransitionsTotal tracks dialogue transitions by event type and the
	// step the user landed on ("none" meaning no active flow).
	TransitionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "dialogue_transitions_total",
			Help: "Total dialogue state transitions",
		},
		[]string{"event", "next_step"},
	)

	// FallbacksTotal tracks events that matched no transition.
	FallbacksTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "dialogue_fallbacks_total",
			Help: "Total events answered with the fallback response",
		},
	)

	// ActiveConversations tracks users with an in-progress flow.
	ActiveConversations = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "dialogue_active_conversations",
			Help: "Number of users with an active conversation state",
		},
	)

	// TicketsTotal tracks support tickets opened through the bot.
	TicketsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "helpdesk_tickets_total",
			Help: "Total support tickets opened",
		},
		[]string{"priority"},
	)

	// SignatureFailuresTotal tracks rejected webhook deliveries.
	SignatureFailuresTotal = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "webhook_signature_failures_total",
			Help: "Total webhook requests rejected by signature verification",
		},
	)

	// OutboundDeliveriesTotal tracks messages sent to the platform API.
	OutboundDeliveriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "outbound_deliveries_total",
			Help: "Total outbound message deliveries by result",
		},
		[]string{"result"},
	)
)

// RecordRequest records metrics for an HTTP request.
func RecordRequest(method, path, status string, duration float64) {
	RequestDuration.WithLabelValues(method, path, status).Observe(duration)
	RequestsTotal.WithLabelValues(method, path, status).Inc()
}

// RecordTransition records a dialogue turn outcome.
func RecordTransition(event, nextStep string) {
	if nextStep == "" {
		nextStep = "none"
	}
	TransitionsTotal.WithLabelValues(event, nextStep).Inc()
}

// RecordTicket records a support ticket opened this turn. Priority is
// "none" when the ticket carries no urgency assessment.
func RecordTicket(priority string) {
	if priority == "" {
		priority = "none"
	}
	TicketsTotal.WithLabelValues(priority).Inc()
}

// RecordDelivery records an outbound delivery attempt.
func RecordDelivery(ok bool) {
	if ok {
		OutboundDeliveriesTotal.WithLabelValues("ok").Inc()
		return
	}
	OutboundDeliveriesTotal.WithLabelValues("error").Inc()
}
