package model

import (
	"errors"
	"fmt"
	"math"
)

// TrainStatus reports whether a train currently runs to schedule.
type TrainStatus int

const (
	StatusOnTime TrainStatus = iota
	StatusDelayed
)

// String returns the human readable status.
func (s TrainStatus) String() string {
	switch s {
	case StatusOnTime:
		return "On Time"
	case StatusDelayed:
		return "Delayed"
	default:
		return fmt.Sprintf("TrainStatus(%d)", int(s))
	}
}

// MarshalText encodes the status as its lower-case token.
func (s TrainStatus) MarshalText() ([]byte, error) {
	switch s {
	case StatusOnTime:
		return []byte("on_time"), nil
	case StatusDelayed:
		return []byte("delayed"), nil
	}
	return nil, fmt.Errorf("unknown train status %d", int(s))
}

// UnmarshalText decodes "on_time" or "delayed". An empty value means on time.
func (s *TrainStatus) UnmarshalText(b []byte) error {
	switch string(b) {
	case "", "on_time", "ontime":
		*s = StatusOnTime
	case "delayed":
		*s = StatusDelayed
	default:
		return fmt.Errorf("unknown train status %q", string(b))
	}
	return nil
}

// ErrInvalidTrain is returned by Validate for malformed schedules.
var ErrInvalidTrain = errors.New("invalid train")

// Train is a vehicle arriving at the station. Times are minutes relative to
// the start of the scheduling window.
type Train struct {
	ID                 string      `json:"id" yaml:"id"`
	Name               string      `json:"name" yaml:"name"`
	ScheduledArrival   float64     `json:"scheduled_arrival" yaml:"scheduled_arrival"`
	ScheduledDeparture float64     `json:"scheduled_departure" yaml:"scheduled_departure"`
	DelayMinutes       float64     `json:"delay_minutes" yaml:"delay_minutes"`
	Status             TrainStatus `json:"status" yaml:"status"`
}

// Interval is a half-open occupancy period [Arrival, Departure) in minutes.
type Interval struct {
	Arrival   float64 `json:"arrival"`
	Departure float64 `json:"departure"`
}

// Duration returns the dwell time of the interval.
func (i Interval) Duration() float64 { return i.Departure - i.Arrival }

// Effective returns the scheduled interval shifted by the current delay.
// Both endpoints move by the same amount so the dwell time never stretches.
func (t Train) Effective() Interval {
	return Interval{
		Arrival:   t.ScheduledArrival + t.DelayMinutes,
		Departure: t.ScheduledDeparture + t.DelayMinutes,
	}
}

// IsDelayed reports whether the train is flagged as delayed.
func (t Train) IsDelayed() bool { return t.Status == StatusDelayed }

// Validate checks that the schedule is well formed. The assignment engine
// never calls it; callers loading timetables opt in.
func (t Train) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("%w: empty id", ErrInvalidTrain)
	}
	if math.IsNaN(t.ScheduledArrival) || math.IsNaN(t.ScheduledDeparture) || math.IsNaN(t.DelayMinutes) {
		return fmt.Errorf("%w: %s has NaN times", ErrInvalidTrain, t.ID)
	}
	if t.ScheduledDeparture < t.ScheduledArrival {
		return fmt.Errorf("%w: %s departs at %.1f before arriving at %.1f",
			ErrInvalidTrain, t.ID, t.ScheduledDeparture, t.ScheduledArrival)
	}
	return nil
}

// CloneTrains returns a copy of the slice so snapshots never share backing arrays.
func CloneTrains(ts []Train) []Train {
	if ts == nil {
		return nil
	}
	out := make([]Train, len(ts))
	copy(out, ts)
	return out
}
