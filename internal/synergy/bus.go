// Package synergy propagates decaying cross-subsystem bonuses. One
// production line emits an event ("fresh herbs in the kitchen"), another
// reads the aggregate as a growth multiplier. Events never mutate; they age
// out linearly over a fixed window and are eventually pruned.
package synergy

import "log/slog"

// Subsystem identifies an emitter or consumer on the bus.
type Subsystem string

const (
	SubsystemPlants    Subsystem = "garden.plants"
	SubsystemMushrooms Subsystem = "garden.mushrooms"
	SubsystemKitchen   Subsystem = "kitchen"
	SubsystemPantry    Subsystem = "pantry"
)

// Event is one immutable bonus emission.
type Event struct {
	Type         string    `json:"type"`
	Source       Subsystem `json:"source"`
	Target       Subsystem `json:"target"`
	Amount       float64   `json:"amount"`
	EmittedOnDay float64   `json:"emitted_on_day"`
}

// Bus is a caller-owned event log with synchronous subscribers. It is not
// safe for concurrent use; the orchestrating caller serializes access, same
// as the rest of the simulation state.
type Bus struct {
	decayWindow float64
	events      []Event
	subscribers []func(Event)
}

// NewBus creates a bus with the given decay window in simulated days.
func NewBus(decayWindowDays float64) *Bus {
	return &Bus{decayWindow: decayWindowDays}
}

// Subscribe registers a listener. Listeners are notified synchronously, in
// registration order, before Emit returns.
func (b *Bus) Subscribe(fn func(Event)) {
	b.subscribers = append(b.subscribers, fn)
}

// Emit appends the event and notifies all subscribers. A panicking
// subscriber is isolated so the remaining subscribers still run.
func (b *Bus) Emit(ev Event) {
	b.events = append(b.events, ev)
	for _, fn := range b.subscribers {
		b.notify(fn, ev)
	}
}

func (b *Bus) notify(fn func(Event), ev Event) {
	defer func() {
		if r := recover(); r != nil {
			slog.Error("synergy subscriber panicked", "type", ev.Type, "panic", r)
		}
	}()
	fn(ev)
}

// BonusFor sums the decayed contributions of all non-expired events
// targeting the subsystem as of the given simulated day.
func (b *Bus) BonusFor(target Subsystem, asOfDay float64) float64 {
	total := 0.0
	for _, ev := range b.events {
		total += b.contribution(ev, target, asOfDay)
	}
	return total
}

// ActiveEvents returns the non-expired events targeting the subsystem, for
// inspection.
func (b *Bus) ActiveEvents(target Subsystem, asOfDay float64) []Event {
	var active []Event
	for _, ev := range b.events {
		if b.contribution(ev, target, asOfDay) > 0 {
			active = append(active, ev)
		}
	}
	return active
}

func (b *Bus) contribution(ev Event, target Subsystem, asOfDay float64) float64 {
	if ev.Target != target {
		return 0
	}
	age := asOfDay - ev.EmittedOnDay
	if age < 0 {
		age = 0
	}
	if age > b.decayWindow {
		return 0
	}
	return ev.Amount * (1 - age/b.decayWindow)
}

// Prune drops events older than the decay window. Their contribution is
// already zero for any day at or after asOfDay, so aggregates are
// unaffected.
func (b *Bus) Prune(asOfDay float64) {
	kept := b.events[:0]
	for _, ev := range b.events {
		if asOfDay-ev.EmittedOnDay <= b.decayWindow {
			kept = append(kept, ev)
		}
	}
	b.events = kept
}

// Events returns the full event log, for persistence.
func (b *Bus) Events() []Event {
	out := make([]Event, len(b.events))
	copy(out, b.events)
	return out
}

// Restore replaces the event log, for rehydration from a snapshot.
func (b *Bus) Restore(events []Event) {
	b.events = append(b.events[:0:0], events...)
}
