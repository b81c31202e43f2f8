package assign

import (
	"sort"

	"github.com/kilianp07/platalloc/core/model"
)

// AssignedTrain references a train of the input snapshot together with the
// effective interval computed for this run.
type AssignedTrain struct {
	// Index is the position of the train in the input slice.
	Index int `json:"index"`
	// Train points into the input slice. It must be treated as read-only.
	Train *model.Train `json:"train"`
	model.Interval
}

// Platform is a single-occupancy bin. Trains are kept in assignment order.
type Platform struct {
	ID     int             `json:"id"`
	Trains []AssignedTrain `json:"trains"`
	// NextFreeAt is the effective departure of the most recently assigned train.
	NextFreeAt float64 `json:"next_free_at"`
}

// DelayedCount returns the number of delayed trains already on the platform.
func (p *Platform) DelayedCount() int {
	n := 0
	for _, at := range p.Trains {
		if at.Train.IsDelayed() {
			n++
		}
	}
	return n
}

func (p *Platform) add(at AssignedTrain) {
	p.Trains = append(p.Trains, at)
	p.NextFreeAt = at.Departure
}

// effectiveOrder returns the trains wrapped with their effective intervals,
// sorted by effective arrival. Ties keep their input order.
func effectiveOrder(trains []model.Train) []AssignedTrain {
	order := make([]AssignedTrain, len(trains))
	for i := range trains {
		order[i] = AssignedTrain{Index: i, Train: &trains[i], Interval: trains[i].Effective()}
	}
	sort.SliceStable(order, func(i, j int) bool {
		if order[i].Arrival != order[j].Arrival {
			return order[i].Arrival < order[j].Arrival
		}
		return order[i].Index < order[j].Index
	})
	return order
}

// best returns the index of the feasible platform with the lowest score, or
// -1 when none is feasible. The first minimum in creation order wins.
func best(platforms []*Platform, at AssignedTrain, w Weights) int {
	idx := -1
	var min float64
	for i, p := range platforms {
		s, ok := Score(p, at, w)
		if !ok {
			continue
		}
		if idx == -1 || s < min {
			idx, min = i, s
		}
	}
	return idx
}

// Assign distributes every train onto a platform and returns the platforms
// in creation order. Each train appears in exactly one platform. The input
// slice is not modified; returned trains reference its elements.
func Assign(trains []model.Train, w Weights) []Platform {
	var platforms []*Platform
	for _, at := range effectiveOrder(trains) {
		if i := best(platforms, at, w); i >= 0 {
			platforms[i].add(at)
			continue
		}
		p := &Platform{ID: len(platforms) + 1}
		p.add(at)
		platforms = append(platforms, p)
	}
	out := make([]Platform, len(platforms))
	for i, p := range platforms {
		out[i] = *p
	}
	return out
}
