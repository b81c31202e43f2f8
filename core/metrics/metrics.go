package metrics

import (
	"errors"
	"time"

	"github.com/kilianp07/platalloc/core/stats"
)

// RunEvent describes one assignment pass.
type RunEvent struct {
	RunID     string
	Tick      uint64
	Trains    int
	Delayed   int
	Platforms int
	Summary   stats.Summary
	Duration  time.Duration
	Time      time.Time
}

// MetricsSink records assignment runs for observability purposes.
type MetricsSink interface {
	RecordAssignmentRun(ev RunEvent) error
}

// PlatformStatsEvent carries the per-platform figures of a run.
type PlatformStatsEvent struct {
	RunID     string
	Tick      uint64
	Platforms []stats.PlatformStats
	Time      time.Time
}

// PlatformStatsRecorder is implemented by sinks able to record platform figures.
type PlatformStatsRecorder interface {
	RecordPlatformStats(ev PlatformStatsEvent) error
}

// TrainReportEvent carries the per-train reach figures of a run.
type TrainReportEvent struct {
	RunID   string
	Tick    uint64
	Reports []stats.TrainReport
	Time    time.Time
}

// TrainReportRecorder is implemented by sinks able to record train reports.
type TrainReportRecorder interface {
	RecordTrainReports(ev TrainReportEvent) error
}

// NopSink implements every recorder with no-op methods.
type NopSink struct{}

func (NopSink) RecordAssignmentRun(RunEvent) error           { return nil }
func (NopSink) RecordPlatformStats(PlatformStatsEvent) error { return nil }
func (NopSink) RecordTrainReports(TrainReportEvent) error    { return nil }

// MultiSink fans events out to several sinks.
type MultiSink struct {
	Sinks []MetricsSink
}

// NewMultiSink creates a MultiSink with the provided sinks.
func NewMultiSink(sinks ...MetricsSink) *MultiSink {
	return &MultiSink{Sinks: sinks}
}

// RecordAssignmentRun forwards the event to every sink. A failing sink does
// not skip the others; all errors are joined.
func (m *MultiSink) RecordAssignmentRun(ev RunEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if err := s.RecordAssignmentRun(ev); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// RecordPlatformStats forwards to sinks implementing PlatformStatsRecorder.
func (m *MultiSink) RecordPlatformStats(ev PlatformStatsEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(PlatformStatsRecorder); ok {
			if err := rec.RecordPlatformStats(ev); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// RecordTrainReports forwards to sinks implementing TrainReportRecorder.
func (m *MultiSink) RecordTrainReports(ev TrainReportEvent) error {
	var errs []error
	for _, s := range m.Sinks {
		if rec, ok := s.(TrainReportRecorder); ok {
			if err := rec.RecordTrainReports(ev); err != nil {
				errs = append(errs, err)
			}
		}
	}
	return errors.Join(errs...)
}

// Close closes every sink that exposes a Close method.
func (m *MultiSink) Close() {
	for _, s := range m.Sinks {
		if c, ok := s.(interface{ Close() }); ok {
			c.Close()
		}
	}
}
