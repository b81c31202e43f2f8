// Package metrics defines the observability sinks fed by assignment runs.
// Sinks such as PromSink and InfluxSink live in infra/metrics and can be
// combined with a MultiSink; NewMetricsSink builds one from configuration.
package metrics
