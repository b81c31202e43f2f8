package metrics

import (
	"context"

	"github.com/kilianp07/platalloc/core/events"
	coremetrics "github.com/kilianp07/platalloc/core/metrics"
	"github.com/kilianp07/platalloc/infra/logger"
	"github.com/kilianp07/platalloc/internal/eventbus"
)

// Record forwards one completed run to the sink and the optional recorders
// it implements.
func Record(sink coremetrics.MetricsSink, ev events.RunCompleted) error {
	run := ev.Run
	if err := sink.RecordAssignmentRun(coremetrics.RunEvent{
		RunID:     run.ID,
		Tick:      run.Tick,
		Trains:    run.TrainCount(),
		Delayed:   ev.Delayed(),
		Platforms: len(run.Platforms),
		Summary:   ev.Report.Summary,
		Duration:  run.Duration,
		Time:      run.StartedAt,
	}); err != nil {
		return err
	}
	if rec, ok := sink.(coremetrics.PlatformStatsRecorder); ok {
		if err := rec.RecordPlatformStats(coremetrics.PlatformStatsEvent{
			RunID: run.ID, Tick: run.Tick, Platforms: ev.Report.Platforms, Time: run.StartedAt,
		}); err != nil {
			return err
		}
	}
	if rec, ok := sink.(coremetrics.TrainReportRecorder); ok {
		if err := rec.RecordTrainReports(coremetrics.TrainReportEvent{
			RunID: run.ID, Tick: run.Tick, Reports: ev.Report.Trains, Time: run.StartedAt,
		}); err != nil {
			return err
		}
	}
	return nil
}

// StartRunCollector subscribes to the bus and records every completed run.
// It stops when the context is canceled or the bus is closed.
func StartRunCollector(ctx context.Context, bus *eventbus.TypedBus[events.RunCompleted], sink coremetrics.MetricsSink, log logger.Logger) {
	if bus == nil || sink == nil {
		return
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := Record(sink, ev); err != nil {
					log.Errorf("record run %s: %v", ev.Run.ID, err)
				}
			}
		}
	}()
}
