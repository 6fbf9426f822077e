package metrics

import (
	"context"

	"github.com/osse101/SlotMachine_Go/internal/domain"
	"github.com/osse101/SlotMachine_Go/internal/event"
	"github.com/osse101/SlotMachine_Go/internal/logger"
)

// EventMetricsCollector subscribes to events and records metrics
type EventMetricsCollector struct{}

// NewEventMetricsCollector creates a new event metrics collector
func NewEventMetricsCollector() *EventMetricsCollector {
	return &EventMetricsCollector{}
}

// Register subscribes to all slot machine events
func (e *EventMetricsCollector) Register(bus event.Bus) error {
	for _, eventType := range event.AllSlotsTypes {
		bus.Subscribe(eventType, e.HandleEvent)
	}
	return nil
}

// HandleEvent processes events and updates metrics
func (e *EventMetricsCollector) HandleEvent(ctx context.Context, evt event.Event) error {
	log := logger.FromContext(ctx)

	// Always increment event counter
	EventsPublished.WithLabelValues(string(evt.Type)).Inc()

	switch payload := evt.Payload.(type) {
	case domain.RoundStartedPayload:
		Balance.Set(float64(payload.Balance))

	case domain.RoundResult:
		RoundsTotal.WithLabelValues(outcome(payload)).Inc()
		// Void rounds were refunded so their wager never counts
		if !payload.Void {
			WageredTotal.Add(float64(payload.Wager))
		}
		if payload.Win {
			PaidTotal.Add(float64(payload.Payout))
		}
		Balance.Set(float64(payload.Balance))

	case domain.WagerRejectedPayload:
		WagersRejected.WithLabelValues(payload.Kind).Inc()

	case domain.DepletedPayload:
		DepletedTotal.Inc()
		Balance.Set(0)

	default:
		log.Debug(LogMsgUnexpectedPayload, "type", evt.Type)
		return nil
	}

	log.Debug(LogMsgMetricsRecorded, "type", evt.Type)
	return nil
}

func outcome(r domain.RoundResult) string {
	switch {
	case r.Void:
		return OutcomeVoid
	case r.Win:
		return OutcomeWin
	default:
		return OutcomeLoss
	}
}
