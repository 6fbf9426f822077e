package sse

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/osse101/SlotMachine_Go/internal/domain"
)

// SnapshotFunc reports the machine state sent with the connected event
type SnapshotFunc func() domain.Snapshot

// Handler returns an HTTP handler for SSE connections.
// snapshot may be nil, in which case the connected event carries no state.
func Handler(hub *Hub, snapshot SnapshotFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		// Check for flusher support
		flusher, ok := w.(http.Flusher)
		if !ok {
			http.Error(w, "SSE not supported", http.StatusInternalServerError)
			return
		}

		// Set SSE headers
		w.Header().Set("Content-Type", "text/event-stream")
		w.Header().Set("Cache-Control", "no-cache")
		w.Header().Set("Connection", "keep-alive")

		// Parse event type filters from query param
		var eventTypes []string
		if filterParam := r.URL.Query().Get(QueryParamTypes); filterParam != "" {
			eventTypes = strings.Split(filterParam, ",")
		}

		// Register client
		client := hub.Register(eventTypes)
		slog.Info(LogMsgClientConnected,
			"client_id", client.ID,
			"filters", eventTypes,
			"total_clients", hub.ClientCount())

		// Ensure cleanup on disconnect
		defer func() {
			hub.Unregister(client.ID)
			slog.Info(LogMsgClientDisconnected, "client_id", client.ID)
		}()

		// Send initial connection event
		payload := ConnectedPayload{ClientID: client.ID, Filters: eventTypes}
		if snapshot != nil {
			snap := snapshot()
			payload.Snapshot = &snap
		}
		connectEvent := Event{
			ID:        client.ID,
			Type:      EventTypeConnected,
			Timestamp: time.Now().Unix(),
			Payload:   payload,
		}
		if !writeEvent(w, flusher, connectEvent) {
			return
		}

		// Keepalive ticker
		ticker := time.NewTicker(KeepaliveInterval)
		defer ticker.Stop()

		// Event loop
		ctx := r.Context()
		for {
			select {
			case <-ctx.Done():
				// Client disconnected
				return

			case event, ok := <-client.EventChannel:
				if !ok {
					// Channel closed, hub is shutting down
					return
				}
				if !writeEvent(w, flusher, event) {
					return
				}

			case <-ticker.C:
				keepalive := Event{
					Type:      EventTypeKeepalive,
					Timestamp: time.Now().Unix(),
				}
				if !writeEvent(w, flusher, keepalive) {
					return
				}
			}
		}
	}
}

// writeEvent reports false once the client can no longer be written to
func writeEvent(w http.ResponseWriter, flusher http.Flusher, event Event) bool {
	msg, err := FormatSSEMessage(event)
	if err != nil {
		slog.Error(LogMsgWriteError, "event_type", event.Type, "error", err)
		return true
	}

	if _, err := w.Write(msg); err != nil {
		slog.Warn(LogMsgWriteError, "event_type", event.Type, "error", err)
		return false
	}
	flusher.Flush()
	return true
}
