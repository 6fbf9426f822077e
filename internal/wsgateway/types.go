package wsgateway

import (
	"github.com/osse101/SlotMachine_Go/internal/domain"
	"github.com/osse101/SlotMachine_Go/internal/slots"
)

// InboundFrame is a message from the browser
type InboundFrame struct {
	Type  string           `json:"type"`
	Wager slots.WagerInput `json:"wager,omitempty"`
}

// OutboundFrame is a message to the browser
type OutboundFrame struct {
	Type    string      `json:"type"`
	Payload interface{} `json:"payload,omitempty"`
}

// BalancePayload accompanies balance_changed
type BalancePayload struct {
	Balance int `json:"balance"`
}

// MessagePayload carries display text for round_started, invalid_wager, depleted and error
type MessagePayload struct {
	Message string `json:"message"`
}

// StatePayload answers a state request
type StatePayload struct {
	Snapshot domain.Snapshot        `json:"snapshot"`
	Paytable []domain.PaytableEntry `json:"paytable"`
}
