package cmd

import (
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/common/expfmt"
)

// benchMetrics bundles the counters and histograms every subcommand
// reports; each subcommand registers its own benchMetrics against a
// fresh registry so runs never leak state between invocations.
type benchMetrics struct {
	registry  *prometheus.Registry
	opsTotal  *prometheus.CounterVec
	opLatency *prometheus.HistogramVec
}

func newBenchMetrics(workload string) *benchMetrics {
	reg := prometheus.NewRegistry()

	opsTotal := prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "bptreebench_operations_total",
			Help: "Total number of tree operations performed, by kind.",
			ConstLabels: prometheus.Labels{
				"workload": workload,
			},
		},
		[]string{"op"},
	)

	opLatency := prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name: "bptreebench_operation_latency_seconds",
			Help: "Per-operation latency in seconds, by kind.",
			ConstLabels: prometheus.Labels{
				"workload": workload,
			},
			Buckets: prometheus.DefBuckets,
		},
		[]string{"op"},
	)

	reg.MustRegister(opsTotal, opLatency)

	return &benchMetrics{registry: reg, opsTotal: opsTotal, opLatency: opLatency}
}

// record tallies one operation of the given kind, taking took seconds to
// complete.
func (m *benchMetrics) record(op string, took time.Duration) {
	m.opsTotal.WithLabelValues(op).Inc()
	m.opLatency.WithLabelValues(op).Observe(took.Seconds())
}

// dump writes every registered metric family as Prometheus text exposition
// format to stdout. There is no HTTP server here — a one-shot dump at the
// end of a run is just a report format, not a persistent service surface.
func (m *benchMetrics) dump() error {
	families, err := m.registry.Gather()
	if err != nil {
		return err
	}

	enc := expfmt.NewEncoder(os.Stdout, expfmt.FmtText)

	for _, mf := range families {
		if err := enc.Encode(mf); err != nil {
			return err
		}
	}

	return nil
}
