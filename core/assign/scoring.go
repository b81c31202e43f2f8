package assign

import (
	"fmt"
	"math"
)

// Weights scales the three score components. Every weight is a
// non-negative multiplier; zero disables the corresponding term.
type Weights struct {
	IdleGap       float64 `json:"idle_gap" yaml:"idle_gap"`
	Load          float64 `json:"load" yaml:"load"`
	DelayedSpread float64 `json:"delayed_spread" yaml:"delayed_spread"`
}

// DefaultWeights returns the reference weighting.
func DefaultWeights() Weights {
	return Weights{IdleGap: 1.0, Load: 0.3, DelayedSpread: 0.5}
}

// Validate rejects negative or NaN weights.
func (w Weights) Validate() error {
	for name, v := range map[string]float64{
		"idle_gap":       w.IdleGap,
		"load":           w.Load,
		"delayed_spread": w.DelayedSpread,
	} {
		if math.IsNaN(v) || v < 0 {
			return fmt.Errorf("weight %s must be non-negative, got %v", name, v)
		}
	}
	return nil
}

// Feasible reports whether the platform is free before the train arrives.
// No overlap and no buffer are allowed.
func Feasible(p *Platform, at AssignedTrain) bool {
	return p.NextFreeAt <= at.Arrival
}

// Score returns the placement cost of the train on p. Lower is better.
// The second result is false when the platform is infeasible, in which
// case the score is meaningless and must be ignored.
func Score(p *Platform, at AssignedTrain, w Weights) (float64, bool) {
	if !Feasible(p, at) {
		return 0, false
	}
	gap := math.Max(0, at.Arrival-p.NextFreeAt)
	load := float64(len(p.Trains))
	delayed := float64(p.DelayedCount())
	return w.IdleGap*gap + w.Load*load + w.DelayedSpread*delayed, true
}
