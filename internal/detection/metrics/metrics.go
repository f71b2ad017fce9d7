package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics bundles detection run metrics.
type Metrics struct {
	DevicesTotal *prometheus.CounterVec
	RunDuration  prometheus.Histogram
	FaultsTotal  prometheus.Counter
	ReportsTotal prometheus.Counter
}

// New constructs and registers metrics.
func New() *Metrics {
	m := &Metrics{
		DevicesTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Name: "devicewatch_devices_total",
				Help: "Total evaluated devices by status",
			},
			[]string{"status"},
		),
		RunDuration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "devicewatch_run_duration_seconds",
			Help:    "Day run duration in seconds",
			Buckets: prometheus.DefBuckets,
		}),
		FaultsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "devicewatch_faults_total",
			Help: "Total devices flagged as faulty",
		}),
		ReportsTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "devicewatch_reports_total",
			Help: "Total device reports written",
		}),
	}
	prometheus.MustRegister(
		m.DevicesTotal,
		m.RunDuration,
		m.FaultsTotal,
		m.ReportsTotal,
	)
	return m
}
