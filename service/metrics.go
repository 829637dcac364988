package service

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the Prometheus collectors shared by the registry, resolver, broadcaster and authentication.
// A nil *Metrics is valid and records nothing.
type Metrics struct {
	lookupAttempts        *prometheus.CounterVec
	invalidationsSent     *prometheus.CounterVec
	authenticationResults *prometheus.CounterVec
	registryEvents        *prometheus.CounterVec
	registeredInstances   prometheus.Gauge
}

// NewMetrics registers the collectors with registerer (prometheus.DefaultRegisterer when nil).
func NewMetrics(registerer prometheus.Registerer) *Metrics {
	if registerer == nil {
		registerer = prometheus.DefaultRegisterer
	}
	factory := promauto.With(registerer)
	return &Metrics{
		lookupAttempts: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mymesh",
				Subsystem: "resolver",
				Name:      "lookup_attempts_total",
				Help:      "Instance lookup attempts by outcome (success, transient, fatal)",
			},
			[]string{"outcome"},
		),
		invalidationsSent: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mymesh",
				Subsystem: "broadcaster",
				Name:      "invalidations_total",
				Help:      "Cache invalidation requests sent to routers by result (ok, failed)",
			},
			[]string{"result"},
		),
		authenticationResults: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mymesh",
				Subsystem: "auth",
				Name:      "authentications_total",
				Help:      "Authentication attempts by credential kind and result code",
			},
			[]string{"kind", "result"},
		),
		registryEvents: factory.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "mymesh",
				Subsystem: "registry",
				Name:      "events_total",
				Help:      "Registry change events by type",
			},
			[]string{"type"},
		),
		registeredInstances: factory.NewGauge(
			prometheus.GaugeOpts{
				Namespace: "mymesh",
				Subsystem: "registry",
				Name:      "instances",
				Help:      "Instances seen by the last expiry sweep",
			},
		),
	}
}

func (m *Metrics) lookupAttempt(outcome string) {
	if m == nil {
		return
	}
	m.lookupAttempts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) invalidation(result string) {
	if m == nil {
		return
	}
	m.invalidationsSent.WithLabelValues(result).Inc()
}

func (m *Metrics) authentication(kind string, err error) {
	if m == nil {
		return
	}
	result := "success"
	if err != nil {
		result = ToMyErrorCode(err)
		if result == "" {
			result = ErrInternalServerError
		}
	}
	m.authenticationResults.WithLabelValues(kind, result).Inc()
}

func (m *Metrics) registryEvent(eventType string) {
	if m == nil {
		return
	}
	m.registryEvents.WithLabelValues(eventType).Inc()
}

func (m *Metrics) instances(n int) {
	if m == nil {
		return
	}
	m.registeredInstances.Set(float64(n))
}
