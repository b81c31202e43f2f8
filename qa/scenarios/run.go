package scenarios

import (
	"math"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/kilianp07/platalloc/core/assign"
	"github.com/kilianp07/platalloc/core/events"
	"github.com/kilianp07/platalloc/core/stats"
	"github.com/kilianp07/platalloc/infra/metrics"
)

const tolerance = 1e-9

func RunScenario(t *testing.T, sc *Scenario) {
	reg := prometheus.NewRegistry()
	sink, err := metrics.NewPromSinkWithRegistry(reg)
	if err != nil {
		t.Fatalf("prom sink: %v", err)
	}

	run := assign.NewEngine(sc.weights()).Run(1, sc.Trains)
	ev := events.RunCompleted{Run: run, Report: stats.Aggregate(run.Platforms)}
	if err := metrics.Record(sink, ev); err != nil {
		t.Fatalf("record: %v", err)
	}

	got := layout(run.Platforms)
	if !equalLayout(got, sc.Expected.Platforms) {
		t.Errorf("scenario %s expected layout %v, got %v", sc.Name, sc.Expected.Platforms, got)
	}
	for id, want := range sc.Expected.EndMetrics {
		if id < 1 || id > len(ev.Report.Platforms) {
			t.Errorf("scenario %s has no platform %d", sc.Name, id)
			continue
		}
		if v := ev.Report.Platforms[id-1].EndMetric; math.Abs(v-want) > tolerance {
			t.Errorf("scenario %s platform %d end metric %v, want %v", sc.Name, id, v, want)
		}
	}
	if sc.Expected.Delayed != nil && ev.Delayed() != *sc.Expected.Delayed {
		t.Errorf("scenario %s expected %d delayed, got %d", sc.Name, *sc.Expected.Delayed, ev.Delayed())
	}
	if v, ok := gauge(t, reg, "platforms_in_use"); !ok || int(v) != len(sc.Expected.Platforms) {
		t.Errorf("scenario %s platforms_in_use gauge %v, want %d", sc.Name, v, len(sc.Expected.Platforms))
	}
}

func layout(platforms []assign.Platform) [][]string {
	out := make([][]string, len(platforms))
	for i, p := range platforms {
		ids := make([]string, len(p.Trains))
		for j, at := range p.Trains {
			ids[j] = at.Train.ID
		}
		out[i] = ids
	}
	return out
}

func equalLayout(a, b [][]string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if len(a[i]) != len(b[i]) {
			return false
		}
		for j := range a[i] {
			if a[i][j] != b[i][j] {
				return false
			}
		}
	}
	return true
}

func gauge(t *testing.T, g prometheus.Gatherer, name string) (float64, bool) {
	t.Helper()
	families, err := g.Gather()
	if err != nil {
		t.Fatalf("gather: %v", err)
	}
	for _, mf := range families {
		if mf.GetName() != name || len(mf.GetMetric()) == 0 {
			continue
		}
		return mf.GetMetric()[0].GetGauge().GetValue(), true
	}
	return 0, false
}
