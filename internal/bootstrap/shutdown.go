package bootstrap

import (
	"context"
	"log/slog"

	"github.com/osse101/SlotMachine_Go/internal/server"
	"github.com/osse101/SlotMachine_Go/internal/slots"
	"github.com/osse101/SlotMachine_Go/internal/sse"
	"github.com/osse101/SlotMachine_Go/internal/wsgateway"
)

// ShutdownComponents holds all components that need graceful shutdown.
// Nil components are skipped.
type ShutdownComponents struct {
	Server  *server.Server
	Gateway *wsgateway.Gateway
	SSEHub  *sse.Hub
	Machine slots.Service
}

// GracefulShutdown performs graceful shutdown of all application components.
// It shuts down in this order:
// 1. Long-lived streams (WebSocket clients and SSE watchers), which would
// otherwise hold the HTTP server open
// 2. HTTP server (stop accepting requests, finish in-flight spins)
// 3. Machine (wait for a spinning round to settle)
//
// Errors during shutdown are logged but do not stop the shutdown sequence.
func GracefulShutdown(ctx context.Context, components ShutdownComponents) {
	slog.Info(LogMsgShuttingDownServer)

	if components.Gateway != nil {
		components.Gateway.Close()
		slog.Info(LogMsgGatewayClosed)
	}

	if components.SSEHub != nil {
		components.SSEHub.Stop()
		slog.Info(LogMsgSSEHubStopped)
	}

	if components.Server != nil {
		if err := components.Server.Stop(ctx); err != nil {
			slog.Error(LogMsgServerForcedShutdown, "error", err)
		}
	}

	if components.Machine != nil {
		shutdownService(ctx, ServiceNameMachine, components.Machine)
		slog.Info(LogMsgMachineSettled)
	}

	slog.Info(LogMsgServerStopped)
}

// shutdownableService is anything that can drain its in-flight work
type shutdownableService interface {
	Shutdown(context.Context) error
}

func shutdownService(ctx context.Context, name string, service shutdownableService) {
	if err := service.Shutdown(ctx); err != nil {
		slog.Error(name+LogMsgServiceShutdownFailed, "error", err)
	}
}
