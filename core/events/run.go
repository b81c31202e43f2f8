package events

import (
	"github.com/kilianp07/platalloc/core/assign"
	"github.com/kilianp07/platalloc/core/stats"
)

// RunCompleted is published after every assignment pass.
type RunCompleted struct {
	Run    assign.Run   `json:"run"`
	Report stats.Report `json:"report"`
}

// Delayed returns the number of delayed trains in the run snapshot.
func (e RunCompleted) Delayed() int { return e.Report.Summary.Delayed }
