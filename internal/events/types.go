// Package events is a synchronous, advisory-only event bus for match
// observability (SPEC_FULL.md §10). Publishing never affects engine
// outcomes: spec.md §7 requires "log output is advisory only".
package events

import "time"

// Event is the base interface every published event satisfies.
type Event interface {
	Type() string
	Timestamp() time.Time
	GameID() string
}

// BaseEvent supplies the common fields every concrete event embeds.
type BaseEvent struct {
	EventType string    `json:"type"`
	Time      time.Time `json:"timestamp"`
	Game      string    `json:"game_id"`
}

func (e BaseEvent) Type() string      { return e.EventType }
func (e BaseEvent) Timestamp() time.Time { return e.Time }
func (e BaseEvent) GameID() string    { return e.Game }

// EventHandler is a function-form subscriber.
type EventHandler func(Event)

// Subscriber is an object-form subscriber.
type Subscriber interface {
	ID() string
	HandleEvent(Event)
	InterestedIn(eventType string) bool
}

// Publisher publishes events to interested subscribers.
type Publisher interface {
	Publish(Event)
}

// Bus is the full event bus contract.
type Bus interface {
	Publisher
	Subscribe(Subscriber)
	Unsubscribe(subscriberID string)
	SubscribeFunc(eventType string, handler EventHandler) string
}
