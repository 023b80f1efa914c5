// Package metrics provides Prometheus metrics for the settleup service.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Calculation outcomes.
const (
	OutcomeOK      = "ok"
	OutcomeInvalid = "invalid"
)

// Manager owns a registry and the metrics recorded into it.
// A nil *Manager is valid and records nothing.
type Manager struct {
	namespace string
	registry  *prometheus.Registry

	calculations         *prometheus.CounterVec
	settlementsPerRun    prometheus.Histogram
	participantsPerRun   prometheus.Histogram
	calculationDuration  prometheus.Histogram
	rpcRequests          *prometheus.CounterVec
	rpcRequestDuration   *prometheus.HistogramVec
	sessionsCreatedTotal prometheus.Counter
}

// Option configures a Manager.
type Option func(*Manager)

// WithNamespace overrides the metric namespace (default "settleup").
func WithNamespace(ns string) Option {
	return func(m *Manager) { m.namespace = ns }
}

// WithRuntimeCollectors registers Go runtime and process collectors.
func WithRuntimeCollectors() Option {
	return func(m *Manager) {
		m.registry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}
}

// NewManager creates a Manager with its own registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace: "settleup",
		registry:  prometheus.NewRegistry(),
	}
	for _, opt := range opts {
		opt(m)
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	m.calculations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "settlement",
		Name:      "calculations_total",
		Help:      "Settlement calculations by outcome.",
	}, []string{"outcome"})

	m.settlementsPerRun = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "settlement",
		Name:      "transfers",
		Help:      "Transfers emitted per successful calculation.",
		Buckets:   prometheus.LinearBuckets(0, 2, 10),
	})

	m.participantsPerRun = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "settlement",
		Name:      "participants",
		Help:      "Participants per calculation.",
		Buckets:   prometheus.ExponentialBuckets(2, 2, 8),
	})

	m.calculationDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "settlement",
		Name:      "calculation_duration_seconds",
		Help:      "Time spent computing balances and settlements.",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
	})

	m.rpcRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "rpc",
		Name:      "requests_total",
		Help:      "RPC requests by procedure and status code.",
	}, []string{"procedure", "code"})

	m.rpcRequestDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: m.namespace,
		Subsystem: "rpc",
		Name:      "request_duration_seconds",
		Help:      "RPC latency by procedure.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"procedure"})

	m.sessionsCreatedTotal = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: "session",
		Name:      "created_total",
		Help:      "Sessions created.",
	})

	m.registry.MustRegister(
		m.calculations,
		m.settlementsPerRun,
		m.participantsPerRun,
		m.calculationDuration,
		m.rpcRequests,
		m.rpcRequestDuration,
		m.sessionsCreatedTotal,
	)
}

// ObserveCalculation records one calculation. settlements is ignored unless outcome is OutcomeOK.
func (m *Manager) ObserveCalculation(outcome string, participants, settlements int, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.calculations.WithLabelValues(outcome).Inc()
	m.participantsPerRun.Observe(float64(participants))
	m.calculationDuration.Observe(elapsed.Seconds())
	if outcome == OutcomeOK {
		m.settlementsPerRun.Observe(float64(settlements))
	}
}

// ObserveRPC records one RPC.
func (m *Manager) ObserveRPC(procedure, code string, elapsed time.Duration) {
	if m == nil {
		return
	}
	m.rpcRequests.WithLabelValues(procedure, code).Inc()
	m.rpcRequestDuration.WithLabelValues(procedure).Observe(elapsed.Seconds())
}

// SessionCreated records a new session.
func (m *Manager) SessionCreated() {
	if m == nil {
		return
	}
	m.sessionsCreatedTotal.Inc()
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}
