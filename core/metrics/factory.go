package metrics

import (
	"fmt"

	"github.com/kilianp07/platalloc/core/factory"
)

var sinkRegistry = factory.NewRegistry[MetricsSink]()

// RegisterMetricsSink adds a metrics sink factory identified by name.
func RegisterMetricsSink(name string, f factory.Factory[MetricsSink]) error {
	return sinkRegistry.Register(name, f)
}

// RegisteredSinks lists the available sink types.
func RegisteredSinks() []string { return sinkRegistry.Names() }

// NewMetricsSink builds the sinks listed by cfg.SinkConfigs. No sink yields
// a NopSink and several are combined in a MultiSink.
func NewMetricsSink(cfg Config) (MetricsSink, error) {
	cfgs := cfg.SinkConfigs()
	if len(cfgs) == 0 {
		return NopSink{}, nil
	}
	sinks := make([]MetricsSink, len(cfgs))
	for i, c := range cfgs {
		s, err := sinkRegistry.Create(c)
		if err != nil {
			return nil, fmt.Errorf("metrics sink %d (%s): %w", i, c.Type, err)
		}
		sinks[i] = s
	}
	if len(sinks) == 1 {
		return sinks[0], nil
	}
	return NewMultiSink(sinks...), nil
}
