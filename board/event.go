package board

import "github.com/plus3/fallgrid/piece"

// EventType identifies an engine notification.
type EventType uint8

const (
	EventSpawned EventType = iota + 1
	EventLocked
	EventGameOver
)

func (t EventType) String() string {
	switch t {
	case EventSpawned:
		return "spawned"
	case EventLocked:
		return "locked"
	case EventGameOver:
		return "game over"
	}
	return "unknown"
}

// Event is delivered synchronously to the listener registered with
// WithListener, from inside the engine call that caused it.
type Event struct {
	Type EventType

	// Kind is the spawned or locked piece kind. Unset for EventGameOver.
	Kind piece.Kind

	// Lines and Points are set for EventLocked.
	Lines  int
	Points int

	// Score is the total score after the event.
	Score int
}
