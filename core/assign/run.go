package assign

import (
	"time"

	"github.com/google/uuid"

	"github.com/kilianp07/platalloc/core/model"
)

// Run is the outcome of one assignment pass over a snapshot.
type Run struct {
	ID        string        `json:"id"`
	Tick      uint64        `json:"tick"`
	Trains    []model.Train `json:"-"`
	Platforms []Platform    `json:"platforms"`
	Weights   Weights       `json:"weights"`
	StartedAt time.Time     `json:"started_at"`
	Duration  time.Duration `json:"duration"`
}

// Engine binds a set of weights to Assign and stamps each pass.
type Engine struct {
	Weights Weights
	now     func() time.Time
}

// NewEngine returns an engine using the given weights.
func NewEngine(w Weights) *Engine {
	return &Engine{Weights: w, now: time.Now}
}

// Run assigns the snapshot and returns a Run owning a private copy of it.
func (e *Engine) Run(tick uint64, trains []model.Train) Run {
	snapshot := model.CloneTrains(trains)
	start := e.now()
	platforms := Assign(snapshot, e.Weights)
	return Run{
		ID:        uuid.NewString(),
		Tick:      tick,
		Trains:    snapshot,
		Platforms: platforms,
		Weights:   e.Weights,
		StartedAt: start,
		Duration:  e.now().Sub(start),
	}
}

// TrainCount returns the number of trains placed in the run.
func (r Run) TrainCount() int {
	n := 0
	for _, p := range r.Platforms {
		n += len(p.Trains)
	}
	return n
}
