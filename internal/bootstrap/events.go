package bootstrap

import (
	"log/slog"

	"github.com/osse101/SlotMachine_Go/internal/event"
)

// InitializeEventSystem creates the in-process event bus that carries round
// events from the machine to metrics and SSE watchers.
func InitializeEventSystem() event.Bus {
	eventBus := event.NewMemoryBus()

	slog.Info(LogMsgEventSystemInitialized, "types", len(event.AllSlotsTypes))

	return eventBus
}
