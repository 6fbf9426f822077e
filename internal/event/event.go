package event

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/osse101/SlotMachine_Go/internal/domain"
)

// SchemaVersion is stamped on every event the machine publishes
const SchemaVersion = "1.0"

// Type represents the type of an event
type Type string

// Metadata defines the type for event metadata
type Metadata map[string]interface{}

// Event represents a generic event in the system
type Event struct {
	Version   string      `json:"version"`
	Type      Type        `json:"type"`
	Timestamp int64       `json:"timestamp"`
	Payload   interface{} `json:"payload"`
	Metadata  Metadata    `json:"metadata,omitempty"`
}

// Slot machine event types
const (
	RoundStarted  Type = domain.EventTypeRoundStarted
	RoundResolved Type = domain.EventTypeRoundResolved
	WagerRejected Type = domain.EventTypeWagerRejected
	Depleted      Type = domain.EventTypeDepleted
)

// AllSlotsTypes lists every event type the machine publishes
var AllSlotsTypes = []Type{RoundStarted, RoundResolved, WagerRejected, Depleted}

func newEvent(t Type, payload interface{}, roundID string) Event {
	evt := Event{
		Version:   SchemaVersion,
		Type:      t,
		Timestamp: time.Now().Unix(),
		Payload:   payload,
	}
	if roundID != "" {
		evt.Metadata = Metadata{"round_id": roundID}
	}
	return evt
}

// NewRoundStartedEvent reports a debited wager with the reels now spinning
func NewRoundStartedEvent(roundID string, wager, balance int) Event {
	return newEvent(RoundStarted, domain.RoundStartedPayload{
		RoundID: roundID,
		Wager:   wager,
		Balance: balance,
	}, roundID)
}

// NewRoundResolvedEvent reports a settled round
func NewRoundResolvedEvent(result domain.RoundResult) Event {
	return newEvent(RoundResolved, result, result.RoundID)
}

// NewWagerRejectedEvent reports a refused submission. No round exists yet.
func NewWagerRejectedEvent(input, reason, kind string, balance int) Event {
	return newEvent(WagerRejected, domain.WagerRejectedPayload{
		Input:   input,
		Reason:  reason,
		Kind:    kind,
		Balance: balance,
	}, "")
}

// NewDepletedEvent reports that roundID left the balance at zero
func NewDepletedEvent(roundID string) Event {
	return newEvent(Depleted, domain.DepletedPayload{RoundID: roundID}, roundID)
}

// Handler is a function that handles an event
type Handler func(ctx context.Context, event Event) error

// Bus defines the interface for an event bus
type Bus interface {
	Publish(ctx context.Context, event Event) error
	Subscribe(eventType Type, handler Handler)
}

// MemoryBus is an in-memory implementation of the Event Bus
type MemoryBus struct {
	handlers map[Type][]Handler
	mu       sync.RWMutex
}

// NewMemoryBus creates a new MemoryBus
func NewMemoryBus() *MemoryBus {
	return &MemoryBus{
		handlers: make(map[Type][]Handler),
	}
}

// Publish runs every handler subscribed to the event's type, synchronously
// and in subscription order. A failing handler does not stop the others;
// their errors are joined into the returned error.
func (b *MemoryBus) Publish(ctx context.Context, event Event) error {
	b.mu.RLock()
	handlers := b.handlers[event.Type]
	b.mu.RUnlock()

	var errs []error
	for _, handler := range handlers {
		if err := handler(ctx, event); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) == 0 {
		return nil
	}
	return fmt.Errorf("%d handler(s) failed for %s: %w", len(errs), event.Type, errors.Join(errs...))
}

// Subscribe subscribes a handler to an event type
func (b *MemoryBus) Subscribe(eventType Type, handler Handler) {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.handlers[eventType] = append(b.handlers[eventType], handler)
}
