package sse

import "github.com/osse101/SlotMachine_Go/internal/domain"

// ConnectedPayload is sent once when a stream opens
type ConnectedPayload struct {
	ClientID string           `json:"client_id"`
	Filters  []string         `json:"filters,omitempty"`
	Snapshot *domain.Snapshot `json:"snapshot,omitempty"`
}
