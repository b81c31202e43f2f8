package metrics

import (
	"errors"
	"strconv"

	"github.com/prometheus/client_golang/prometheus"

	coremetrics "github.com/kilianp07/platalloc/core/metrics"
)

// PromSink records assignment runs in Prometheus metrics.
type PromSink struct {
	runs      prometheus.Counter
	duration  prometheus.Histogram
	platforms prometheus.Gauge
	delayed   prometheus.Gauge
	endMetric *prometheus.GaugeVec
	load      *prometheus.GaugeVec
	idle      *prometheus.GaugeVec
}

// NewPromSink registers the metrics on the default Prometheus registerer.
// The HTTP endpoint is started separately with StartPromServer.
func NewPromSink() (*PromSink, error) {
	return NewPromSinkWithRegistry(prometheus.DefaultRegisterer)
}

// register returns the already registered collector when c was registered
// before, so sinks can be rebuilt without failing.
func register[C prometheus.Collector](reg prometheus.Registerer, c C) (C, error) {
	if err := reg.Register(c); err != nil {
		var are prometheus.AlreadyRegisteredError
		if errors.As(err, &are) {
			if existing, ok := are.ExistingCollector.(C); ok {
				return existing, nil
			}
		}
		return c, err
	}
	return c, nil
}

// NewPromSinkWithRegistry registers metrics on the provided registerer.
// A nil registerer defaults to the global Prometheus registerer.
func NewPromSinkWithRegistry(reg prometheus.Registerer) (*PromSink, error) {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	s := &PromSink{
		runs: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "assignment_runs_total",
			Help: "Total number of platform assignment runs",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Name:    "assignment_run_duration_seconds",
			Help:    "Time spent assigning trains to platforms",
			Buckets: prometheus.ExponentialBuckets(1e-6, 4, 10),
		}),
		platforms: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "platforms_in_use",
			Help: "Number of platforms opened by the latest run",
		}),
		delayed: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "trains_delayed",
			Help: "Number of delayed trains in the latest snapshot",
		}),
		endMetric: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "platform_end_metric",
			Help: "Congestion figure per platform for the latest run",
		}, []string{"platform"}),
		load: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "platform_trains",
			Help: "Trains assigned per platform for the latest run",
		}, []string{"platform"}),
		idle: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name: "platform_idle_minutes",
			Help: "Idle minutes between trains per platform for the latest run",
		}, []string{"platform"}),
	}
	var err error
	if s.runs, err = register(reg, s.runs); err != nil {
		return nil, err
	}
	if s.duration, err = register(reg, s.duration); err != nil {
		return nil, err
	}
	if s.platforms, err = register(reg, s.platforms); err != nil {
		return nil, err
	}
	if s.delayed, err = register(reg, s.delayed); err != nil {
		return nil, err
	}
	if s.endMetric, err = register(reg, s.endMetric); err != nil {
		return nil, err
	}
	if s.load, err = register(reg, s.load); err != nil {
		return nil, err
	}
	if s.idle, err = register(reg, s.idle); err != nil {
		return nil, err
	}
	return s, nil
}

// RecordAssignmentRun updates the run counters and gauges.
func (s *PromSink) RecordAssignmentRun(ev coremetrics.RunEvent) error {
	s.runs.Inc()
	s.duration.Observe(ev.Duration.Seconds())
	s.platforms.Set(float64(ev.Platforms))
	s.delayed.Set(float64(ev.Delayed))
	return nil
}

// RecordPlatformStats replaces the per-platform gauges with the run's values.
// Platforms are rebuilt on every run, so stale labels are dropped.
func (s *PromSink) RecordPlatformStats(ev coremetrics.PlatformStatsEvent) error {
	s.endMetric.Reset()
	s.load.Reset()
	s.idle.Reset()
	for _, p := range ev.Platforms {
		id := strconv.Itoa(p.PlatformID)
		s.endMetric.WithLabelValues(id).Set(p.EndMetric)
		s.load.WithLabelValues(id).Set(float64(p.TotalTrains))
		s.idle.WithLabelValues(id).Set(p.IdleMinutes)
	}
	return nil
}
