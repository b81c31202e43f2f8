package metrics

import "github.com/kilianp07/platalloc/core/factory"

// PrometheusSinkType is the registry name of the Prometheus sink.
const PrometheusSinkType = "prometheus"

// Config defines settings for metrics sinks.
type Config struct {
	Sinks []factory.ModuleConfig `json:"sinks"`
	// PrometheusAddr enables the /metrics endpoint when not empty.
	PrometheusAddr string `json:"prometheus_addr"`
}

// SinkConfigs returns the configured sinks. When the /metrics endpoint is
// enabled a Prometheus sink is appended unless one is already listed, so the
// endpoint never serves an empty registry.
func (c Config) SinkConfigs() []factory.ModuleConfig {
	out := append([]factory.ModuleConfig(nil), c.Sinks...)
	if c.PrometheusAddr == "" {
		return out
	}
	for _, s := range out {
		if s.Type == PrometheusSinkType {
			return out
		}
	}
	return append(out, factory.ModuleConfig{Type: PrometheusSinkType})
}
