// Package metrics exposes faultd's Prometheus metrics.
//
// The registry is non-global: it is created with the daemon and handed to
// the components that record into it, so tests never share state.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Rejection reasons for RejectedTotal.
const (
	ReasonTooLarge = "payload_too_large"
)

// Registry holds the faultd metrics and the registry they live in.
type Registry struct {
	reg *prometheus.Registry

	// TriggersTotal counts dispatched trigger requests.
	// Labels: kind (catalog name, or NONE for unrecognized input).
	TriggersTotal *prometheus.CounterVec

	// RejectedTotal counts trigger requests rejected before dispatch.
	// Labels: reason.
	RejectedTotal *prometheus.CounterVec

	// StartTime is the daemon start time as a unix timestamp.
	StartTime prometheus.Gauge
}

// New creates a Registry with all faultd metrics registered.
func New() *Registry {
	reg := prometheus.NewRegistry()

	r := &Registry{
		reg: reg,
		TriggersTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "faultd",
			Name:      "triggers_total",
			Help:      "Trigger requests dispatched, by fault kind",
		}, []string{"kind"}),
		RejectedTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "faultd",
			Name:      "rejected_total",
			Help:      "Trigger requests rejected before dispatch, by reason",
		}, []string{"reason"}),
		StartTime: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "faultd",
			Name:      "start_time_seconds",
			Help:      "Unix timestamp at which the daemon started",
		}),
	}

	reg.MustRegister(
		r.TriggersTotal,
		r.RejectedTotal,
		r.StartTime,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	r.StartTime.Set(float64(time.Now().Unix()))

	return r
}

// Handler returns the /metrics exposition handler.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}

// Gatherer exposes the underlying registry for tests.
func (r *Registry) Gatherer() prometheus.Gatherer { return r.reg }
