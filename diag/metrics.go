// SPDX-License-Identifier: MIT

package diag

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics are the prometheus collectors updated by runs.
type Metrics struct {
	Runs          *prometheus.CounterVec // by outcome state
	KPoints       prometheus.Counter
	EigenDuration prometheus.Histogram
}

// NewMetrics creates the collectors and registers them on reg.
// A nil reg creates unregistered collectors.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)

	return &Metrics{
		Runs: f.NewCounterVec(prometheus.CounterOpts{
			Name: "tightbind_diag_runs_total",
			Help: "Diagonalization runs by outcome",
		}, []string{"outcome"}),
		KPoints: f.NewCounter(prometheus.CounterOpts{
			Name: "tightbind_diag_kpoints_total",
			Help: "k-points diagonalized",
		}),
		EigenDuration: f.NewHistogram(prometheus.HistogramOpts{
			Name:    "tightbind_diag_eigen_duration_seconds",
			Help:    "Duration of one H(k) build plus eigensolve",
			Buckets: []float64{0.000001, 0.00001, 0.0001, 0.001, 0.01, 0.1, 1},
		}),
	}
}

func (m *Metrics) observeRun(s State) {
	if m != nil {
		m.Runs.WithLabelValues(s.String()).Inc()
	}
}

func (m *Metrics) observeKPoint(seconds float64) {
	if m != nil {
		m.KPoints.Inc()
		m.EigenDuration.Observe(seconds)
	}
}
