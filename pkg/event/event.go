// pkg/event/event.go
package event

import (
	"sync"
	"time"
)

// Type represents the type of event
type Type string

// Gameplay event types
const (
	RocketLaunched  Type = "rocket_launched"
	RocketLanded    Type = "rocket_landed"
	RocketCrashed   Type = "rocket_crashed"
	RocketSucceeded Type = "rocket_succeeded"
	RocketReset     Type = "rocket_reset"
	FuelEmpty       Type = "fuel_empty"
	EntityCollision Type = "entity_collision"
	ReplaySaved     Type = "replay_saved"
	ReplayLoaded    Type = "replay_loaded"
	ReplayFailed    Type = "replay_failed"
)

// Event is the base interface for all events
type Event interface {
	GetType() Type
	GetSource() interface{}
}

// BaseEvent provides common functionality for all events
type BaseEvent struct {
	EventType Type
	Source    interface{}
}

// GetType returns the event type
func (e *BaseEvent) GetType() Type {
	return e.EventType
}

// GetSource returns the event source
func (e *BaseEvent) GetSource() interface{} {
	return e.Source
}

// Handler is a function that handles events
type Handler func(Event)

// Subscription identifies a registered handler. Cancel removes it.
type Subscription struct {
	ID     uint64
	Type   Type
	Cancel func()
}

type registration struct {
	id      uint64
	handler Handler
}

// Bus manages event subscriptions and dispatching. Handlers run
// synchronously on the publishing goroutine, in subscription order.
type Bus struct {
	handlers map[Type][]registration
	nextID   uint64
	mu       sync.RWMutex
}

// NewEventBus creates a new event bus
func NewEventBus() *Bus {
	return &Bus{
		handlers: make(map[Type][]registration),
		nextID:   1,
	}
}

// Subscribe registers a handler for a specific event type
func (b *Bus) Subscribe(eventType Type, handler Handler) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[eventType] = append(b.handlers[eventType], registration{id: id, handler: handler})

	return &Subscription{
		ID:     id,
		Type:   eventType,
		Cancel: func() { b.Unsubscribe(eventType, id) },
	}
}

// Unsubscribe removes the handler registered under id. Unknown ids are ignored.
func (b *Bus) Unsubscribe(eventType Type, id uint64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	regs := b.handlers[eventType]
	for i, r := range regs {
		if r.id == id {
			// copy so in-flight Publish snapshots stay intact
			next := make([]registration, 0, len(regs)-1)
			next = append(next, regs[:i]...)
			next = append(next, regs[i+1:]...)
			if len(next) == 0 {
				delete(b.handlers, eventType)
			} else {
				b.handlers[eventType] = next
			}
			return
		}
	}
}

// Publish sends an event to all subscribed handlers
func (b *Bus) Publish(event Event) {
	if event == nil {
		return
	}
	b.mu.RLock()
	regs := b.handlers[event.GetType()]
	b.mu.RUnlock()

	for _, r := range regs {
		r.handler(event)
	}
}

// HandlerCount returns the number of handlers registered for eventType.
func (b *Bus) HandlerCount(eventType Type) int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[eventType])
}

// Specific event implementations

// FlightEvent reports a rocket state change.
type FlightEvent struct {
	BaseEvent
	Tick     uint64
	Speed    float64
	Rotation float64
	Fuel     float64
	Elapsed  time.Duration
}

// NewFlightEvent creates a new flight event
func NewFlightEvent(eventType Type, source interface{}, tick uint64, speed, rotation, fuel float64, elapsed time.Duration) *FlightEvent {
	return &FlightEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Tick:     tick,
		Speed:    speed,
		Rotation: rotation,
		Fuel:     fuel,
		Elapsed:  elapsed,
	}
}

// CollisionEvent contains information about entity collisions
type CollisionEvent struct {
	BaseEvent
	Other interface{}
	Tick  uint64
}

// NewCollisionEvent creates a new collision event
func NewCollisionEvent(source, other interface{}, tick uint64) *CollisionEvent {
	return &CollisionEvent{
		BaseEvent: BaseEvent{
			EventType: EntityCollision,
			Source:    source,
		},
		Other: other,
		Tick:  tick,
	}
}

// ReplayEvent reports a replay file operation.
type ReplayEvent struct {
	BaseEvent
	Path    string
	Entries int
	Err     error
}

// NewReplayEvent creates a new replay event
func NewReplayEvent(eventType Type, source interface{}, path string, entries int, err error) *ReplayEvent {
	return &ReplayEvent{
		BaseEvent: BaseEvent{
			EventType: eventType,
			Source:    source,
		},
		Path:    path,
		Entries: entries,
		Err:     err,
	}
}
