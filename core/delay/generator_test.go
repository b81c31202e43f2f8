package delay

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kilianp07/platalloc/core/model"
)

func fleet(n int) []model.Train {
	ts := make([]model.Train, n)
	for i := range ts {
		ts[i] = model.Train{ID: fmt.Sprintf("T%d", i), ScheduledArrival: float64(i * 10), ScheduledDeparture: float64(i*10 + 8)}
	}
	return ts
}

func delayed(ts []model.Train) int {
	n := 0
	for _, tr := range ts {
		if tr.IsDelayed() {
			n++
		}
	}
	return n
}

func TestGeneratorMarksExactlyN(t *testing.T) {
	cfg := Config{Seed: 1}
	cfg.SetDefaults()
	g := NewGenerator(cfg)
	base := fleet(8)
	base[0].Status = model.StatusDelayed
	base[0].DelayMinutes = 99
	for i := 0; i < 20; i++ {
		snap := g.Next(base)
		require.Len(t, snap, 8)
		assert.Equal(t, 2, delayed(snap))
		for _, tr := range snap {
			if tr.IsDelayed() {
				assert.GreaterOrEqual(t, tr.DelayMinutes, 1.0)
				assert.LessOrEqual(t, tr.DelayMinutes, 30.0)
			} else {
				assert.Zero(t, tr.DelayMinutes)
			}
		}
	}
	assert.Equal(t, 99.0, base[0].DelayMinutes)
}

func TestGeneratorClampsToFleet(t *testing.T) {
	g := NewGenerator(Config{Seed: 3, DelayedPerTick: 5, MinDelayMinutes: 2, MaxDelayMinutes: 2})
	snap := g.Next(fleet(3))
	assert.Equal(t, 3, delayed(snap))
	for _, tr := range snap {
		assert.Equal(t, 2.0, tr.DelayMinutes)
	}
	assert.Empty(t, g.Next(nil))

	none := NewGenerator(Config{Seed: 3, MinDelayMinutes: 1, MaxDelayMinutes: 5})
	assert.Zero(t, delayed(none.Next(fleet(4))))
}

func TestGeneratorSeedIsDeterministic(t *testing.T) {
	cfg := Config{Seed: 7}
	cfg.SetDefaults()
	a := NewGenerator(cfg).Next(fleet(10))
	b := NewGenerator(cfg).Next(fleet(10))
	assert.Equal(t, a, b)
}

func TestConfigValidate(t *testing.T) {
	var cfg Config
	cfg.SetDefaults()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 5*time.Second, cfg.Interval())
	assert.Error(t, Config{IntervalSeconds: 1, MinDelayMinutes: 5, MaxDelayMinutes: 1}.Validate())
	assert.Error(t, Config{IntervalSeconds: 0}.Validate())
	assert.Error(t, Config{IntervalSeconds: 1, DelayedPerTick: -1}.Validate())
}

func TestTickerEmitsAndStops(t *testing.T) {
	cfg := Config{Seed: 11}
	cfg.SetDefaults()
	tk := &Ticker{Generator: NewGenerator(cfg), Interval: 5 * time.Millisecond}
	ctx, cancel := context.WithCancel(context.Background())
	ch := tk.Run(ctx, fleet(4))

	first := <-ch
	second := <-ch
	assert.Equal(t, uint64(1), first.Tick)
	assert.Equal(t, uint64(2), second.Tick)
	assert.Equal(t, 2, delayed(first.Trains))

	cancel()
	deadline := time.After(time.Second)
	for {
		select {
		case _, ok := <-ch:
			if !ok {
				return
			}
		case <-deadline:
			t.Fatal("ticker did not stop after cancel")
		}
	}
}
