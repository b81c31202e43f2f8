package metrics

import (
	"context"
	"math"
	"net/http"
	"strconv"
	"strings"
	"time"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"
	"github.com/influxdata/influxdb-client-go/v2/api/write"

	coremetrics "github.com/kilianp07/platalloc/core/metrics"
	"github.com/kilianp07/platalloc/infra/logger"
)

// InfluxSink writes assignment runs to an InfluxDB instance using the official client.
type InfluxSink struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
	log      logger.Logger
}

// NewInfluxSink creates a new sink configured for the given InfluxDB endpoint.
func NewInfluxSink(url, token, org, bucket string) *InfluxSink {
	base := strings.TrimSuffix(url, "/api/v2/write")
	client := influxdb2.NewClientWithOptions(base, token,
		influxdb2.DefaultOptions().SetHTTPClient(&http.Client{Timeout: 5 * time.Second}))
	return &InfluxSink{
		client:   client,
		writeAPI: client.WriteAPIBlocking(org, bucket),
		log:      logger.New("influx-sink"),
	}
}

// NewInfluxSinkWithFallback pings the InfluxDB instance and returns a
// NopSink if the health check fails.
func NewInfluxSinkWithFallback(url, token, org, bucket string) coremetrics.MetricsSink {
	sink := NewInfluxSink(url, token, org, bucket)
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	health, err := sink.client.Health(ctx)
	if err != nil || health.Status != "pass" {
		if err != nil {
			sink.log.Errorf("influx health check error: %v", err)
		} else {
			sink.log.Errorf("influx health status: %s", health.Status)
		}
		sink.client.Close()
		return coremetrics.NopSink{}
	}
	return sink
}

// Close releases the underlying HTTP client.
func (s *InfluxSink) Close() { s.client.Close() }

// RecordAssignmentRun writes one assignment_run point. Tags are written in
// key order as the line protocol recommends.
func (s *InfluxSink) RecordAssignmentRun(ev coremetrics.RunEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	p := write.NewPointWithMeasurement("assignment_run").
		AddTag("run_id", ev.RunID).
		AddTag("component", "assignment_engine").
		AddField("tick", int64(ev.Tick)).
		AddField("trains", ev.Trains).
		AddField("delayed", ev.Delayed).
		AddField("platforms", ev.Platforms).
		AddField("mean_end_metric", round3(ev.Summary.MeanEndMetric)).
		AddField("stddev_end_metric", round3(ev.Summary.StdDevEndMetric)).
		AddField("duration_us", ev.Duration.Microseconds()).
		SetTime(ev.Time).
		SortTags()
	return s.writeAPI.WritePoint(ctx, p)
}

// RecordPlatformStats writes one platform_stats point per platform.
func (s *InfluxSink) RecordPlatformStats(ev coremetrics.PlatformStatsEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, st := range ev.Platforms {
		p := write.NewPointWithMeasurement("platform_stats").
			AddTag("run_id", ev.RunID).
			AddTag("platform", strconv.Itoa(st.PlatformID)).
			AddField("trains", st.TotalTrains).
			AddField("delay_minutes", round3(st.TotalDelayMinutes)).
			AddField("delayed", st.DelayedCount).
			AddField("end_metric", round3(st.EndMetric)).
			AddField("idle_minutes", round3(st.IdleMinutes)).
			SetTime(ev.Time).
			SortTags()
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

// RecordTrainReports writes one train_report point per train.
func (s *InfluxSink) RecordTrainReports(ev coremetrics.TrainReportEvent) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	for _, r := range ev.Reports {
		p := write.NewPointWithMeasurement("train_report").
			AddTag("run_id", ev.RunID).
			AddTag("train_id", r.TrainID).
			AddTag("platform", strconv.Itoa(r.PlatformID)).
			AddField("previous_delay", round3(r.PreviousDelay)).
			AddField("absolute_reach_delay", round3(r.AbsoluteReachDelay)).
			AddField("clamped_reach_delay", round3(r.ClampedReachDelay)).
			AddField("reach_delta", round3(r.ReachDelta)).
			SetTime(ev.Time).
			SortTags()
		if err := s.writeAPI.WritePoint(ctx, p); err != nil {
			return err
		}
	}
	return nil
}

func round3(f float64) float64 {
	return math.Round(f*1000) / 1000
}
