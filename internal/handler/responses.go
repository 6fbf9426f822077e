package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"sync"

	"github.com/osse101/SlotMachine_Go/internal/domain"
	"github.com/osse101/SlotMachine_Go/internal/logger"
)

// Standard response types for consistent API responses

// ErrorResponse represents an error response
type ErrorResponse struct {
	Error string `json:"error"`
	Kind  string `json:"kind,omitempty"`
}

// Helper functions for responding

// Snapshots and round results fit well inside the initial size. A buffer that
// grew past maxPooledBuffer is left for the GC.
const (
	initialBufferSize = 512
	maxPooledBuffer   = 64 << 10
)

var bufferPool = sync.Pool{
	New: func() interface{} {
		return bytes.NewBuffer(make([]byte, 0, initialBufferSize))
	},
}

func releaseBuffer(buf *bytes.Buffer) {
	if buf.Cap() > maxPooledBuffer {
		return
	}
	buf.Reset()
	bufferPool.Put(buf)
}

// respondJSON sends a JSON response with the given status code and payload
func respondJSON(w http.ResponseWriter, status int, payload interface{}) {
	buf := bufferPool.Get().(*bytes.Buffer)
	defer releaseBuffer(buf)

	// Encode before writing headers so an encoding failure can still become a 500
	if err := json.NewEncoder(buf).Encode(payload); err != nil {
		slog.Error(LogMsgEncodeFailed, "error", err)
		http.Error(w, ErrMsgGenericServerError, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	if _, err := buf.WriteTo(w); err != nil {
		slog.Error(LogMsgWriteFailed, "error", err)
	}
}

// respondError sends a JSON error response
func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, ErrorResponse{Error: message})
}

// respondServiceError logs err and writes the mapped status and user-facing message
func respondServiceError(w http.ResponseWriter, r *http.Request, opName string, err error) {
	status, resp := mapServiceErrorToResponse(err)

	log := logger.FromContext(r.Context())
	if status >= http.StatusInternalServerError {
		log.Error(opName+" failed", "error", err)
	} else {
		log.Info(opName+" rejected", "error", err, "status", status)
	}

	respondJSON(w, status, resp)
}

// mapServiceErrorToResponse maps domain errors to HTTP status codes and
// messages the player can act on
func mapServiceErrorToResponse(err error) (int, ErrorResponse) {
	if err == nil {
		return http.StatusInternalServerError, ErrorResponse{Error: ErrMsgUnknownError}
	}

	resp := ErrorResponse{Error: ErrMsgGenericServerError}
	var rejection *domain.RejectionError
	if errors.As(err, &rejection) {
		resp = ErrorResponse{Error: rejection.Reason, Kind: rejection.Kind}
	}

	switch {
	case errors.Is(err, domain.ErrInvalidWager):
		if resp.Kind == "" {
			resp = ErrorResponse{Error: ErrMsgInvalidWager, Kind: domain.RejectKindInvalidWager}
		}
		return http.StatusBadRequest, resp
	case errors.Is(err, domain.ErrRoundInProgress):
		return http.StatusConflict, resp
	case errors.Is(err, domain.ErrDepleted):
		return http.StatusGone, resp
	case errors.Is(err, context.DeadlineExceeded), errors.Is(err, context.Canceled):
		return http.StatusServiceUnavailable, ErrorResponse{Error: ErrMsgUnavailableError}
	}

	return http.StatusInternalServerError, ErrorResponse{Error: ErrMsgGenericServerError}
}
