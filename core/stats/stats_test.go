package stats

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/platalloc/core/assign"
	"github.com/kilianp07/platalloc/core/model"
)

func TestEndMetric(t *testing.T) {
	assert.InDelta(t, 5.5, EndMetric(10, 1, 2), 1e-9)
	assert.Zero(t, EndMetric(10, 1, 0))
}

func platformOf(id int, trains ...model.Train) assign.Platform {
	p := assign.Platform{ID: id}
	for i := range trains {
		at := assign.AssignedTrain{Index: i, Train: &trains[i], Interval: trains[i].Effective()}
		p.Trains = append(p.Trains, at)
		p.NextFreeAt = at.Departure
	}
	return p
}

func TestForPlatform(t *testing.T) {
	p := platformOf(3,
		model.Train{ID: "a", ScheduledArrival: 0, ScheduledDeparture: 10, DelayMinutes: 10, Status: model.StatusDelayed},
		model.Train{ID: "b", ScheduledArrival: 25, ScheduledDeparture: 30},
	)
	st := ForPlatform(p)
	assert.Equal(t, 3, st.PlatformID)
	assert.Equal(t, 2, st.TotalTrains)
	assert.Equal(t, 10.0, st.TotalDelayMinutes)
	assert.Equal(t, 1, st.DelayedCount)
	assert.InDelta(t, 5.5, st.EndMetric, 1e-9)
	assert.Equal(t, 5.0, st.IdleMinutes)

	empty := ForPlatform(assign.Platform{ID: 9})
	assert.Zero(t, empty.EndMetric)
	assert.Zero(t, empty.TotalTrains)
}

func TestReportTrainBothDelayViews(t *testing.T) {
	tr := model.Train{ID: "x", Name: "IC 1", ScheduledArrival: 40, ScheduledDeparture: 50, DelayMinutes: 2}
	at := assign.AssignedTrain{Train: &tr, Interval: tr.Effective()}

	r := ReportTrain(at, 1, 5.5)
	assert.Equal(t, "IC 1", r.Name)
	assert.InDelta(t, 3.5, r.AbsoluteReachDelay, 1e-9)
	assert.Zero(t, r.ClampedReachDelay)
	assert.InDelta(t, 55.5, r.NewReachTime, 1e-9)
	assert.InDelta(t, 3.5, r.ReachDelta, 1e-9)

	tr.DelayMinutes = 9
	r = ReportTrain(at, 1, 5.5)
	assert.InDelta(t, 3.5, r.AbsoluteReachDelay, 1e-9)
	assert.InDelta(t, 3.5, r.ClampedReachDelay, 1e-9)
	assert.InDelta(t, -3.5, r.ReachDelta, 1e-9)
}

func TestAggregate(t *testing.T) {
	trains := []model.Train{
		{ID: "A", ScheduledArrival: 0, ScheduledDeparture: 20, DelayMinutes: 10, Status: model.StatusDelayed},
		{ID: "B", ScheduledArrival: 10, ScheduledDeparture: 30},
		{ID: "C", ScheduledArrival: 25, ScheduledDeparture: 40},
	}
	// A shifted to 10..30 conflicts with B, so placement changes with delay.
	platforms := assign.Assign(trains, assign.DefaultWeights())
	rep := Aggregate(platforms)
	require.Len(t, rep.Platforms, len(platforms))
	require.Len(t, rep.Trains, 3)

	total := 0
	for _, p := range rep.Platforms {
		total += p.TotalTrains
	}
	assert.Equal(t, 3, total)
	assert.Equal(t, 3, rep.Summary.Trains)
	assert.Equal(t, 1, rep.Summary.Delayed)
	assert.Equal(t, len(platforms), rep.Summary.Platforms)

	empty := Aggregate(nil)
	assert.Empty(t, empty.Platforms)
	assert.Empty(t, empty.Trains)
	assert.Zero(t, empty.Summary.Platforms)
}

func TestSummarize(t *testing.T) {
	s := Summarize([]PlatformStats{
		{PlatformID: 1, TotalTrains: 2, DelayedCount: 1, EndMetric: 5.5, IdleMinutes: 4},
		{PlatformID: 2, TotalTrains: 1, EndMetric: 0.5},
	})
	assert.Equal(t, 2, s.Platforms)
	assert.Equal(t, 3, s.Trains)
	assert.Equal(t, 2, s.MaxLoad)
	assert.InDelta(t, 3.0, s.MeanEndMetric, 1e-9)
	// sample std dev of {5.5, 0.5}
	assert.InDelta(t, 3.5355339, s.StdDevEndMetric, 1e-6)
	assert.InDelta(t, 1.5, s.MeanLoad, 1e-9)
	assert.InDelta(t, 2.0, s.MeanIdleMinutes, 1e-9)

	one := Summarize([]PlatformStats{{TotalTrains: 1, EndMetric: 2}})
	assert.Zero(t, one.StdDevEndMetric)
}
