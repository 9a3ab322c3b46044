package observability

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
)

var (
	registerOnce sync.Once

	inboundEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "imposterctl",
			Subsystem: "session",
			Name:      "inbound_events_total",
			Help:      "Inbound events applied to session state.",
		},
		[]string{"event"},
	)
	unknownEvents = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "imposterctl",
			Subsystem: "session",
			Name:      "unknown_events_total",
			Help:      "Inbound events ignored as unrecognized.",
		},
		[]string{"event"},
	)
	actions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "imposterctl",
			Subsystem: "session",
			Name:      "actions_total",
			Help:      "Player intents emitted to the server.",
		},
		[]string{"action"},
	)
	rejectedActions = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: "imposterctl",
			Subsystem: "session",
			Name:      "actions_rejected_total",
			Help:      "Player intents rejected by local validation.",
		},
		[]string{"action"},
	)
	connectAttempts = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "imposterctl",
			Subsystem: "transport",
			Name:      "connect_attempts_total",
			Help:      "Websocket dial attempts, first connects and reconnects alike.",
		},
	)
	connectFailures = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: "imposterctl",
			Subsystem: "transport",
			Name:      "connect_failures_total",
			Help:      "Websocket dial attempts that failed.",
		},
	)
)

func RegisterMetrics() {
	registerOnce.Do(func() {
		prometheus.MustRegister(
			inboundEvents, unknownEvents, actions, rejectedActions,
			connectAttempts, connectFailures,
		)
	})
}

func RecordInboundEvent(event string) {
	RegisterMetrics()
	inboundEvents.WithLabelValues(event).Inc()
}

func RecordUnknownEvent(event string) {
	RegisterMetrics()
	unknownEvents.WithLabelValues(event).Inc()
}

func RecordAction(action string) {
	RegisterMetrics()
	actions.WithLabelValues(action).Inc()
}

func RecordRejectedAction(action string) {
	RegisterMetrics()
	rejectedActions.WithLabelValues(action).Inc()
}

func RecordConnectAttempt(ok bool) {
	RegisterMetrics()
	connectAttempts.Inc()
	if !ok {
		connectFailures.Inc()
	}
}
