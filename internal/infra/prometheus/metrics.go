package prometheus

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Relay metrics. Registered on the default registry served by NewServer.
var (
	EventsRelayed = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "webanalytics",
		Subsystem: "relay",
		Name:      "events_relayed_total",
		Help:      "Tracked events accepted and forwarded to the collector, by type.",
	}, []string{"event_type"})

	EmitFailures = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "webanalytics",
		Subsystem: "relay",
		Name:      "emit_failures_total",
		Help:      "Deliveries to the collector that failed.",
	})

	EventsRejected = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "webanalytics",
		Subsystem: "relay",
		Name:      "events_rejected_total",
		Help:      "Incoming page events rejected before reaching the collector.",
	})
)
