package delay

import (
	"fmt"
	"time"
)

// Config defines the live delay simulation.
type Config struct {
	// Enabled turns the periodic driver on.
	Enabled bool `json:"enabled"`
	// IntervalSeconds is the tick cadence.
	IntervalSeconds int `json:"interval_seconds"`
	// DelayedPerTick is the number of trains marked delayed on each tick.
	DelayedPerTick int `json:"delayed_per_tick"`
	// MinDelayMinutes and MaxDelayMinutes bound the injected delay, inclusive.
	MinDelayMinutes int `json:"min_delay_minutes"`
	MaxDelayMinutes int `json:"max_delay_minutes"`
	// Seed fixes the random source. Zero seeds from the clock.
	Seed int64 `json:"seed"`
}

// SetDefaults applies the reference values: two delays of 1 to 30 minutes
// every 5 seconds.
func (c *Config) SetDefaults() {
	if c.IntervalSeconds == 0 {
		c.IntervalSeconds = 5
	}
	if c.DelayedPerTick == 0 {
		c.DelayedPerTick = 2
	}
	if c.MinDelayMinutes == 0 && c.MaxDelayMinutes == 0 {
		c.MinDelayMinutes = 1
		c.MaxDelayMinutes = 30
	}
}

// Validate checks the ranges.
func (c Config) Validate() error {
	if c.IntervalSeconds <= 0 {
		return fmt.Errorf("interval_seconds must be positive")
	}
	if c.DelayedPerTick < 0 {
		return fmt.Errorf("delayed_per_tick must not be negative")
	}
	if c.MinDelayMinutes < 0 || c.MaxDelayMinutes < c.MinDelayMinutes {
		return fmt.Errorf("invalid delay range [%d, %d]", c.MinDelayMinutes, c.MaxDelayMinutes)
	}
	return nil
}

// Interval returns the tick cadence as a duration.
func (c Config) Interval() time.Duration {
	return time.Duration(c.IntervalSeconds) * time.Second
}
