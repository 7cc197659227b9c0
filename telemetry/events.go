// Package telemetry provides colony health tracking, phase timing and CSV output.
package telemetry

import (
	"log/slog"

	"github.com/pthm-cable/trails/components"
)

// EventType identifies telemetry events.
type EventType uint8

const (
	EventPickup EventType = iota
	EventDelivery
)

func (t EventType) String() string {
	if t == EventPickup {
		return "pickup"
	}
	return "delivery"
}

// Event represents a single food transition.
type Event struct {
	Type EventType
	Tick uint64
	Ant  uint64
	Cell components.CoarsePosition
}

// NewPickupEvent creates an event for an ant picking up food.
func NewPickupEvent(tick, ant uint64, cell components.CoarsePosition) Event {
	return Event{Type: EventPickup, Tick: tick, Ant: ant, Cell: cell}
}

// NewDeliveryEvent creates an event for an ant dropping food at the base.
func NewDeliveryEvent(tick, ant uint64, cell components.CoarsePosition) Event {
	return Event{Type: EventDelivery, Tick: tick, Ant: ant, Cell: cell}
}

// LogValue implements slog.LogValuer for structured logging.
func (e Event) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("type", e.Type.String()),
		slog.Uint64("tick", e.Tick),
		slog.Uint64("ant", e.Ant),
		slog.Int("x", e.Cell.X),
		slog.Int("y", e.Cell.Y),
	)
}
