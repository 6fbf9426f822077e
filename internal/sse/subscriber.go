package sse

import (
	"context"
	"log/slog"

	"github.com/osse101/SlotMachine_Go/internal/event"
)

// Subscriber bridges the internal event bus to the SSE hub
type Subscriber struct {
	hub *Hub
	bus event.Bus
}

// NewSubscriber creates a new SSE subscriber
func NewSubscriber(hub *Hub, bus event.Bus) *Subscriber {
	return &Subscriber{
		hub: hub,
		bus: bus,
	}
}

// Subscribe registers the forwarding handler for every slot machine event
func (s *Subscriber) Subscribe() {
	types := make([]string, 0, len(event.AllSlotsTypes))
	for _, t := range event.AllSlotsTypes {
		s.bus.Subscribe(t, s.forward)
		types = append(types, string(t))
	}

	slog.Info(LogMsgSubscribed, "types", types)
}

// forward rebroadcasts the event payload under its bus type name
func (s *Subscriber) forward(_ context.Context, evt event.Event) error {
	s.hub.Broadcast(string(evt.Type), evt.Payload)

	slog.Debug(LogMsgEventBroadcast, "event_type", evt.Type)
	return nil
}
