package bootstrap

import (
	"fmt"
	"log/slog"

	"github.com/osse101/SlotMachine_Go/internal/event"
	"github.com/osse101/SlotMachine_Go/internal/metrics"
	"github.com/osse101/SlotMachine_Go/internal/sse"
)

// EventHandlerDependencies holds the dependencies needed for event handler registration.
type EventHandlerDependencies struct {
	EventBus event.Bus
	SSEHub   *sse.Hub // optional
}

// RegisterEventHandlers sets up all event handlers and subscribers.
// This includes:
// - Metrics collector (round, wager and balance metrics)
// - SSE subscriber (forwards round events to watching browsers)
func RegisterEventHandlers(deps EventHandlerDependencies) error {
	metricsCollector := metrics.NewEventMetricsCollector()
	if err := metricsCollector.Register(deps.EventBus); err != nil {
		return fmt.Errorf("%s: %w", ErrMsgFailedRegisterMetrics, err)
	}
	slog.Info(LogMsgMetricsCollectorRegistered)

	if deps.SSEHub != nil {
		sse.NewSubscriber(deps.SSEHub, deps.EventBus).Subscribe()
		slog.Info(LogMsgSSESubscriberRegistered)
	}

	return nil
}
