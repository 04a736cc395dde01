package observability

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics holds the Prometheus counters, histograms, and gauges for the
// compute pipeline.
type Metrics struct {
	TimestepsConsumed prometheus.Counter
	ResultsProduced   prometheus.Counter
	ComputeErrors     prometheus.Counter
	PipelineRunning   prometheus.Gauge

	StationsPerTimestep prometheus.Histogram
	ComputeDuration     prometheus.Histogram

	// Results by model variant (fao_daily, fao_hourly, pt_daily, pt_hourly).
	ResultsByModel *prometheus.CounterVec
}

// NewMetrics creates and registers all pipeline metrics with the default
// Prometheus registry.
func NewMetrics() *Metrics {
	m := &Metrics{
		TimestepsConsumed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "etp_engine",
			Name:      "timesteps_consumed_total",
			Help:      "Total forcing messages read from the source topic.",
		}),
		ResultsProduced: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "etp_engine",
			Name:      "results_produced_total",
			Help:      "Total result events written to the sink topic.",
		}),
		ComputeErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "etp_engine",
			Name:      "compute_errors_total",
			Help:      "Total forcing messages that failed to parse or compute.",
		}),
		PipelineRunning: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "etp_engine",
			Name:      "pipeline_running",
			Help:      "1 when the pipeline is active, 0 when shut down.",
		}),
		StationsPerTimestep: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "etp_engine",
			Name:      "stations_per_timestep",
			Help:      "Number of stations computed per forcing message.",
			Buckets:   []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
		}),
		ComputeDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "etp_engine",
			Name:      "compute_duration_seconds",
			Help:      "Duration of a complete parse-compute-serialize cycle.",
			Buckets:   []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		}),
		ResultsByModel: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "etp_engine",
			Name:      "results_by_model_total",
			Help:      "Result events produced by model variant.",
		}, []string{"model"}),
	}

	prometheus.MustRegister(
		m.TimestepsConsumed,
		m.ResultsProduced,
		m.ComputeErrors,
		m.PipelineRunning,
		m.StationsPerTimestep,
		m.ComputeDuration,
		m.ResultsByModel,
	)

	return m
}

// NewMetricsForTesting creates Metrics with a fresh registry to avoid
// "already registered" panics when called from multiple tests.
func NewMetricsForTesting() *Metrics {
	return &Metrics{
		TimestepsConsumed:   prometheus.NewCounter(prometheus.CounterOpts{Namespace: "etp_engine", Name: "timesteps_consumed_total"}),
		ResultsProduced:     prometheus.NewCounter(prometheus.CounterOpts{Namespace: "etp_engine", Name: "results_produced_total"}),
		ComputeErrors:       prometheus.NewCounter(prometheus.CounterOpts{Namespace: "etp_engine", Name: "compute_errors_total"}),
		PipelineRunning:     prometheus.NewGauge(prometheus.GaugeOpts{Namespace: "etp_engine", Name: "pipeline_running"}),
		StationsPerTimestep: prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "etp_engine", Name: "stations_per_timestep"}),
		ComputeDuration:     prometheus.NewHistogram(prometheus.HistogramOpts{Namespace: "etp_engine", Name: "compute_duration_seconds"}),
		ResultsByModel:      prometheus.NewCounterVec(prometheus.CounterOpts{Namespace: "etp_engine", Name: "results_by_model_total"}, []string{"model"}),
	}
}
