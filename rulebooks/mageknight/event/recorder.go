package event

import (
	"context"
	"sort"

	"github.com/mage-knight-digital/MageKnight-sub011/events"
)

// Topic is the bus routing key for the engine's game-event stream.
const Topic events.Topic = "mageknight.game_event"

// Recorder accumulates the ordered event stream produced by one state
// transition. The engine creates one Recorder per ProcessAction call,
// emits into it the events the command returned, and returns Events()
// to the caller.
// When a bus is attached, every emitted event is also published on
// Topic so out-of-engine sinks (UI adapters, match history) can
// subscribe without the engine knowing about them.
type Recorder struct {
	events []Event
	topic  events.TypedTopic[Event]
}

// NewRecorder builds an empty recorder with no bus attached.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// NewRecorderWithBus builds a recorder that mirrors every event onto
// the given bus under Topic.
func NewRecorderWithBus(bus events.EventBus) *Recorder {
	return &Recorder{topic: events.GetTopic[Event](bus, Topic)}
}

// Emit appends e to the stream, preserving emission order.
func (r *Recorder) Emit(e Event) {
	r.events = append(r.events, e)
	if r.topic != nil {
		// Bus delivery failures do not affect the authoritative stream;
		// subscribers are observers, never rule participants.
		_ = r.topic.Publish(context.Background(), e)
	}
}

// EmitAll appends a batch in order.
func (r *Recorder) EmitAll(evts []Event) {
	for _, e := range evts {
		r.Emit(e)
	}
}

// Events returns the accumulated stream. The returned slice is a copy.
func (r *Recorder) Events() []Event {
	cp := make([]Event, len(r.events))
	copy(cp, r.events)
	return cp
}

// Len reports the number of events emitted so far.
func (r *Recorder) Len() int {
	return len(r.events)
}

// SortedKeys returns an event's payload keys in sorted order, for
// deterministic serialization of the Attrs map.
func SortedKeys(e Event) []string {
	keys := make([]string, 0, len(e.Attrs))
	for k := range e.Attrs {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
