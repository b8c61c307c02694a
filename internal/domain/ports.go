package domain

import (
	"context"
	"time"
)

// Clock is the injected time source for every subsystem timer, so the
// whole core can be driven deterministically in tests.
type Clock interface {
	Now() time.Time
}

// ProgressStore persists economy/unlock state. Implementations can be a
// JSON file on disk or in-memory for tests.
type ProgressStore interface {
	Load(ctx context.Context) (*Progress, error)
	Save(ctx context.Context, p *Progress) error
}

// Event is a fire-and-forget gameplay notification, consumed by the sound
// layer. The core never depends on delivery or timing.
type Event int

const (
	EventPlace Event = iota
	EventSuccess
	EventWrong
	EventBonus
	EventLevelUp
	EventCoin
	EventSizzle
	EventChop
	EventCustomerHappy
	EventCustomerAngry
	EventPurchase
	EventClick
)

// String returns a human-readable event name.
func (e Event) String() string {
	switch e {
	case EventPlace:
		return "place"
	case EventSuccess:
		return "success"
	case EventWrong:
		return "wrong"
	case EventBonus:
		return "bonus"
	case EventLevelUp:
		return "levelup"
	case EventCoin:
		return "coin"
	case EventSizzle:
		return "sizzle"
	case EventChop:
		return "chop"
	case EventCustomerHappy:
		return "customer_happy"
	case EventCustomerAngry:
		return "customer_angry"
	case EventPurchase:
		return "purchase"
	case EventClick:
		return "click"
	default:
		return "unknown"
	}
}

// Notifier delivers gameplay events to the player. Implementations can
// synthesize sounds or just log.
type Notifier interface {
	Notify(event Event)
}
