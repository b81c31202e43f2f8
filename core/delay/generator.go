package delay

import (
	"math/rand"
	"time"

	"github.com/kilianp07/platalloc/core/model"
)

// Generator produces delayed snapshots of a base timetable.
type Generator struct {
	cfg Config
	rng *rand.Rand
}

// NewGenerator returns a Generator using cfg. A zero seed uses the clock.
func NewGenerator(cfg Config) *Generator {
	seed := cfg.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Generator{cfg: cfg, rng: rand.New(rand.NewSource(seed))}
}

// Next returns a new snapshot of base in which every train is reset to on
// time and DelayedPerTick distinct trains, at most len(base), are delayed.
// base is never modified.
func (g *Generator) Next(base []model.Train) []model.Train {
	snap := model.CloneTrains(base)
	for i := range snap {
		snap[i].DelayMinutes = 0
		snap[i].Status = model.StatusOnTime
	}
	n := g.cfg.DelayedPerTick
	if n > len(snap) {
		n = len(snap)
	}
	if n <= 0 {
		return snap
	}
	span := g.cfg.MaxDelayMinutes - g.cfg.MinDelayMinutes + 1
	for _, idx := range g.rng.Perm(len(snap))[:n] {
		snap[idx].DelayMinutes = float64(g.cfg.MinDelayMinutes + g.rng.Intn(span))
		snap[idx].Status = model.StatusDelayed
	}
	return snap
}
