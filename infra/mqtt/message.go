package mqtt

import (
	"context"

	"github.com/kilianp07/platalloc/core/events"
	coremqtt "github.com/kilianp07/platalloc/core/mqtt"
	"github.com/kilianp07/platalloc/core/stats"
	"github.com/kilianp07/platalloc/infra/logger"
	"github.com/kilianp07/platalloc/internal/eventbus"
)

// LayoutTrain is one train slot in the published layout.
type LayoutTrain struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Arrival   float64 `json:"arrival"`
	Departure float64 `json:"departure"`
	Delay     float64 `json:"delay_minutes"`
	Status    string  `json:"status"`
}

// LayoutPlatform lists the trains of one platform in assignment order.
type LayoutPlatform struct {
	ID         int           `json:"id"`
	NextFreeAt float64       `json:"next_free_at"`
	Trains     []LayoutTrain `json:"trains"`
}

// LayoutMessage is the payload published on the platforms topic.
type LayoutMessage struct {
	RunID     string           `json:"run_id"`
	Tick      uint64           `json:"tick"`
	Timestamp int64            `json:"timestamp"`
	Platforms []LayoutPlatform `json:"platforms"`
	Summary   stats.Summary    `json:"summary"`
}

// StatsMessage is the payload published on a platform stats topic.
type StatsMessage struct {
	RunID string `json:"run_id"`
	Tick  uint64 `json:"tick"`
	stats.PlatformStats
}

// NewLayoutMessage flattens a run into its wire representation.
func NewLayoutMessage(ev events.RunCompleted) LayoutMessage {
	msg := LayoutMessage{
		RunID:     ev.Run.ID,
		Tick:      ev.Run.Tick,
		Timestamp: ev.Run.StartedAt.UnixMilli(),
		Platforms: make([]LayoutPlatform, 0, len(ev.Run.Platforms)),
		Summary:   ev.Report.Summary,
	}
	for _, p := range ev.Run.Platforms {
		lp := LayoutPlatform{ID: p.ID, NextFreeAt: p.NextFreeAt, Trains: make([]LayoutTrain, 0, len(p.Trains))}
		for _, at := range p.Trains {
			status, _ := at.Train.Status.MarshalText()
			lp.Trains = append(lp.Trains, LayoutTrain{
				ID:        at.Train.ID,
				Name:      at.Train.Name,
				Arrival:   at.Arrival,
				Departure: at.Departure,
				Delay:     at.Train.DelayMinutes,
				Status:    string(status),
			})
		}
		msg.Platforms = append(msg.Platforms, lp)
	}
	return msg
}

// StartRunPublisher forwards every run published on the bus to pub until
// ctx is canceled or the bus is closed.
func StartRunPublisher(ctx context.Context, bus *eventbus.TypedBus[events.RunCompleted], pub coremqtt.Publisher, log logger.Logger) {
	if bus == nil || pub == nil {
		return
	}
	if log == nil {
		log = logger.NopLogger{}
	}
	sub := bus.Subscribe()
	go func() {
		defer bus.Unsubscribe(sub)
		for {
			select {
			case <-ctx.Done():
				return
			case ev, ok := <-sub:
				if !ok {
					return
				}
				if err := pub.PublishRun(ev); err != nil {
					log.Errorf("publish run %s: %v", ev.Run.ID, err)
				}
			}
		}
	}()
}
