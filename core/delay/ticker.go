package delay

import (
	"context"
	"time"

	"github.com/kilianp07/platalloc/core/logger"
	"github.com/kilianp07/platalloc/core/model"
)

// Snapshot is one tick of the live delay simulation.
type Snapshot struct {
	Tick   uint64
	Trains []model.Train
	Time   time.Time
}

// Ticker drives a Generator on a fixed cadence.
type Ticker struct {
	Generator *Generator
	Interval  time.Duration
	Logger    logger.Logger
}

// Run emits a snapshot derived from base every Interval until ctx is done.
// The returned channel is closed once the ticker stops. Sends block, so a
// slow consumer delays the next tick rather than dropping one.
func (t *Ticker) Run(ctx context.Context, base []model.Train) <-chan Snapshot {
	out := make(chan Snapshot)
	base = model.CloneTrains(base)
	go func() {
		defer close(out)
		tk := time.NewTicker(t.Interval)
		defer tk.Stop()
		var tick uint64
		for {
			select {
			case <-ctx.Done():
				if t.Logger != nil {
					t.Logger.Infof("delay ticker stopped after %d ticks", tick)
				}
				return
			case now := <-tk.C:
				tick++
				snap := Snapshot{Tick: tick, Trains: t.Generator.Next(base), Time: now}
				select {
				case out <- snap:
				case <-ctx.Done():
					return
				}
			}
		}
	}()
	return out
}
