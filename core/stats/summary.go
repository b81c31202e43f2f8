package stats

import "gonum.org/v1/gonum/stat"

// Summary aggregates platform statistics across a run.
type Summary struct {
	Platforms       int     `json:"platforms"`
	Trains          int     `json:"trains"`
	Delayed         int     `json:"delayed"`
	MaxLoad         int     `json:"max_load"`
	MeanEndMetric   float64 `json:"mean_end_metric"`
	StdDevEndMetric float64 `json:"stddev_end_metric"`
	MeanLoad        float64 `json:"mean_load"`
	MeanIdleMinutes float64 `json:"mean_idle_minutes"`
}

// Summarize computes fleet-wide figures. The standard deviation is the
// unbiased sample deviation and is 0 with fewer than two platforms.
func Summarize(platforms []PlatformStats) Summary {
	s := Summary{Platforms: len(platforms)}
	if len(platforms) == 0 {
		return s
	}
	end := make([]float64, len(platforms))
	load := make([]float64, len(platforms))
	idle := make([]float64, len(platforms))
	for i, p := range platforms {
		s.Trains += p.TotalTrains
		s.Delayed += p.DelayedCount
		if p.TotalTrains > s.MaxLoad {
			s.MaxLoad = p.TotalTrains
		}
		end[i] = p.EndMetric
		load[i] = float64(p.TotalTrains)
		idle[i] = p.IdleMinutes
	}
	s.MeanEndMetric = stat.Mean(end, nil)
	if len(end) > 1 {
		s.StdDevEndMetric = stat.StdDev(end, nil)
	}
	s.MeanLoad = stat.Mean(load, nil)
	s.MeanIdleMinutes = stat.Mean(idle, nil)
	return s
}
