// Package stats derives per-platform and per-train figures from an
// assignment run for reporting views.
package stats

import (
	"math"

	"github.com/kilianp07/platalloc/core/assign"
)

// PlatformStats summarises the trains committed to one platform.
type PlatformStats struct {
	PlatformID        int     `json:"platform_id"`
	TotalTrains       int     `json:"total_trains"`
	TotalDelayMinutes float64 `json:"total_delay_minutes"`
	DelayedCount      int     `json:"delayed_count"`
	// EndMetric blends total delay and delayed density into one congestion figure.
	EndMetric float64 `json:"end_metric"`
	// IdleMinutes is the summed gap between consecutive trains.
	IdleMinutes float64 `json:"idle_minutes"`
}

// TrainReport compares a train's current delay with its platform's end metric.
//
// AbsoluteReachDelay and ClampedReachDelay combine the same inputs with two
// different formulas. Both views are reported as-is.
type TrainReport struct {
	TrainID            string  `json:"train_id"`
	Name               string  `json:"name"`
	PlatformID         int     `json:"platform_id"`
	PreviousDelay      float64 `json:"previous_delay"`
	AbsoluteReachDelay float64 `json:"absolute_reach_delay"`
	ClampedReachDelay  float64 `json:"clamped_reach_delay"`
	NewReachTime       float64 `json:"new_reach_time"`
	ReachDelta         float64 `json:"reach_delta"`
}

// Report groups the derived figures of one run.
type Report struct {
	Platforms []PlatformStats `json:"platforms"`
	Trains    []TrainReport   `json:"trains"`
	Summary   Summary         `json:"summary"`
}

// EndMetric returns (totalDelay + delayedCount) / totalTrains, or 0 when the
// platform is empty.
func EndMetric(totalDelay float64, delayedCount, totalTrains int) float64 {
	if totalTrains <= 0 {
		return 0
	}
	return (totalDelay + float64(delayedCount)) / float64(totalTrains)
}

// ForPlatform computes the statistics of a single platform.
func ForPlatform(p assign.Platform) PlatformStats {
	st := PlatformStats{PlatformID: p.ID, TotalTrains: len(p.Trains)}
	for i, at := range p.Trains {
		st.TotalDelayMinutes += at.Train.DelayMinutes
		if at.Train.IsDelayed() {
			st.DelayedCount++
		}
		if i > 0 {
			st.IdleMinutes += math.Max(0, at.Arrival-p.Trains[i-1].Departure)
		}
	}
	st.EndMetric = EndMetric(st.TotalDelayMinutes, st.DelayedCount, st.TotalTrains)
	return st
}

// ReportTrain derives the reach figures of one train given its platform's
// end metric.
func ReportTrain(at assign.AssignedTrain, platformID int, endMetric float64) TrainReport {
	prev := at.Train.DelayMinutes
	reach := at.Train.ScheduledDeparture + endMetric
	return TrainReport{
		TrainID:            at.Train.ID,
		Name:               at.Train.Name,
		PlatformID:         platformID,
		PreviousDelay:      prev,
		AbsoluteReachDelay: math.Abs(endMetric - prev),
		ClampedReachDelay:  math.Max(0, prev-endMetric),
		NewReachTime:       reach,
		ReachDelta:         reach - (at.Train.ScheduledDeparture + prev),
	}
}

// Aggregate computes platform statistics, train reports and the fleet
// summary. Trains are reported in platform then assignment order.
func Aggregate(platforms []assign.Platform) Report {
	rep := Report{Platforms: make([]PlatformStats, 0, len(platforms))}
	for _, p := range platforms {
		st := ForPlatform(p)
		rep.Platforms = append(rep.Platforms, st)
		for _, at := range p.Trains {
			rep.Trains = append(rep.Trains, ReportTrain(at, p.ID, st.EndMetric))
		}
	}
	rep.Summary = Summarize(rep.Platforms)
	return rep
}
