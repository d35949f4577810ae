package permission

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics are the store's Prometheus counters. They are registered on the
// injected registerer so embedding applications control exposure; a nil
// registerer keeps the counters usable but unexported.
type Metrics struct {
	LookupHits   *prometheus.CounterVec
	LookupMisses *prometheus.CounterVec
	Fetches      *prometheus.CounterVec
}

// NewMetrics creates and optionally registers the store metrics.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		LookupHits: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "driftboard",
			Subsystem: "permission_store",
			Name:      "lookup_hits_total",
			Help:      "Memoized lookups answered from the cache.",
		}, []string{"lookup"}),
		LookupMisses: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "driftboard",
			Subsystem: "permission_store",
			Name:      "lookup_misses_total",
			Help:      "Memoized lookups that fell through to the maps.",
		}, []string{"lookup"}),
		Fetches: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "driftboard",
			Subsystem: "permission_store",
			Name:      "fetches_total",
			Help:      "Remote fetch/mutation operations by outcome.",
		}, []string{"operation", "outcome"}),
	}

	if reg != nil {
		reg.MustRegister(m.LookupHits, m.LookupMisses, m.Fetches)
	}

	return m
}

const (
	outcomeSuccess = "success"
	outcomeError   = "error"
	outcomeAbsent  = "absent"
)

func (m *Metrics) fetch(operation, outcome string) {
	m.Fetches.WithLabelValues(operation, outcome).Inc()
}
