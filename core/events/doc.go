// Package events defines the events emitted on the service event bus.
//
// Available event types:
//   - RunCompleted: an assignment pass and its derived statistics
package events
