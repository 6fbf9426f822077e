package handler

import (
	"net/http"

	"github.com/osse101/SlotMachine_Go/internal/domain"
	"github.com/osse101/SlotMachine_Go/internal/logger"
	"github.com/osse101/SlotMachine_Go/internal/slots"
)

// SlotsHandler handles slots-related HTTP requests
type SlotsHandler struct {
	service slots.Service
}

// NewSlotsHandler creates a new slots handler
func NewSlotsHandler(service slots.Service) *SlotsHandler {
	return &SlotsHandler{service: service}
}

// SpinRequest represents a request to spin the reels.
// The wager may be sent as a string or a number; it is coerced by the machine
// so that every presenter sees the same rejection.
type SpinRequest struct {
	Wager slots.WagerInput `json:"wager" validate:"max=32"`
}

// MachineResponse is the current machine state plus the paytable
type MachineResponse struct {
	domain.Snapshot
	Paytable []domain.PaytableEntry `json:"paytable"`
}

// PaytableResponse lists the symbol multipliers
type PaytableResponse struct {
	Paytable []domain.PaytableEntry `json:"paytable"`
}

// HandleGetMachine returns the balance, round state and paytable
func (h *SlotsHandler) HandleGetMachine(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, MachineResponse{
		Snapshot: h.service.Snapshot(),
		Paytable: h.service.Paytable(),
	})
}

// HandleGetPaytable returns the symbol multipliers
func (h *SlotsHandler) HandleGetPaytable(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, PaytableResponse{Paytable: h.service.Paytable()})
}

// HandleSpin submits a wager and waits for the round to resolve
func (h *SlotsHandler) HandleSpin(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	log := logger.FromContext(ctx)

	var req SpinRequest
	if err := DecodeAndValidateRequest(r, w, &req, OpSpin); err != nil {
		return
	}
	log.Debug(LogMsgSpinRequestDecoded, "wager", req.Wager.String())

	result, err := h.service.Spin(ctx, req.Wager.String())
	if err != nil {
		respondServiceError(w, r, OpSpin, err)
		return
	}

	respondJSON(w, http.StatusOK, result)
}
