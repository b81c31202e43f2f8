package model

import (
	"fmt"
	"time"
)

// DefaultWindowMinutes is the length of the scheduling window (4 hours).
const DefaultWindowMinutes = 240

// Window describes the scheduling horizon. Minute 0 is the window origin.
type Window struct {
	// Start is the wall-clock time of minute 0. It is only used for labels.
	Start         time.Time `json:"start"`
	LengthMinutes float64   `json:"length_minutes"`
}

// SetDefaults applies the 240 minute window.
func (w *Window) SetDefaults() {
	if w.LengthMinutes == 0 {
		w.LengthMinutes = DefaultWindowMinutes
	}
}

// Validate checks the window length.
func (w Window) Validate() error {
	if w.LengthMinutes <= 0 {
		return fmt.Errorf("window length must be positive, got %v", w.LengthMinutes)
	}
	return nil
}

// End returns the last minute of the window.
func (w Window) End() float64 { return w.LengthMinutes }

// Contains reports whether the interval lies fully inside the window.
func (w Window) Contains(i Interval) bool {
	return i.Arrival >= 0 && i.Departure <= w.LengthMinutes
}

// At converts a minute offset into wall-clock time relative to Start.
func (w Window) At(minutes float64) time.Time {
	return w.Start.Add(time.Duration(minutes * float64(time.Minute)))
}

// Label formats a minute offset as HH:MM relative to Start.
func (w Window) Label(minutes float64) string {
	return w.At(minutes).Format("15:04")
}
