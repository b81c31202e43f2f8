// Package mqtt defines the transport contract used to publish assignment
// results to downstream displays.
package mqtt

import "github.com/kilianp07/platalloc/core/events"

// Publisher sends completed assignment runs to a message broker.
type Publisher interface {
	// PublishRun sends the platform layout and statistics of a run.
	PublishRun(ev events.RunCompleted) error
}
