package handler

import (
	"bytes"
	"context"
	"fmt"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/osse101/SlotMachine_Go/internal/domain"
)

func TestMapServiceErrorToResponse(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantStatus int
		wantResp   ErrorResponse
	}{
		{
			name:       "nil",
			err:        nil,
			wantStatus: http.StatusInternalServerError,
			wantResp:   ErrorResponse{Error: ErrMsgUnknownError},
		},
		{
			name:       "rejection reason surfaces",
			err:        &domain.RejectionError{Kind: domain.RejectKindInvalidWager, Reason: "nope", Err: domain.ErrInvalidWager},
			wantStatus: http.StatusBadRequest,
			wantResp:   ErrorResponse{Error: "nope", Kind: domain.RejectKindInvalidWager},
		},
		{
			name:       "bare invalid wager",
			err:        fmt.Errorf("%w: empty", domain.ErrInvalidWager),
			wantStatus: http.StatusBadRequest,
			wantResp:   ErrorResponse{Error: ErrMsgInvalidWager, Kind: domain.RejectKindInvalidWager},
		},
		{
			name:       "round in progress",
			err:        &domain.RejectionError{Kind: domain.RejectKindRoundInProgress, Reason: "busy", Err: domain.ErrRoundInProgress},
			wantStatus: http.StatusConflict,
			wantResp:   ErrorResponse{Error: "busy", Kind: domain.RejectKindRoundInProgress},
		},
		{
			name:       "depleted",
			err:        &domain.RejectionError{Kind: domain.RejectKindDepleted, Reason: "over", Err: domain.ErrDepleted},
			wantStatus: http.StatusGone,
			wantResp:   ErrorResponse{Error: "over", Kind: domain.RejectKindDepleted},
		},
		{
			name:       "client went away",
			err:        context.Canceled,
			wantStatus: http.StatusServiceUnavailable,
			wantResp:   ErrorResponse{Error: ErrMsgUnavailableError},
		},
		{
			name:       "internal details hidden",
			err:        fmt.Errorf("reel 2: entropy exhausted"),
			wantStatus: http.StatusInternalServerError,
			wantResp:   ErrorResponse{Error: ErrMsgGenericServerError},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, resp := mapServiceErrorToResponse(tt.err)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantResp, resp)
		})
	}
}

func TestRespondJSON_EncodeFailure(t *testing.T) {
	w := httptest.NewRecorder()
	respondJSON(w, http.StatusOK, math.Inf(1))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.Contains(t, w.Body.String(), ErrMsgGenericServerError)
}

func TestRespondError(t *testing.T) {
	w := httptest.NewRecorder()
	respondError(w, http.StatusTeapot, "short and stout")

	assert.Equal(t, http.StatusTeapot, w.Code)
	assert.JSONEq(t, `{"error":"short and stout"}`, w.Body.String())
}

func TestReleaseBufferDropsOversizedBuffers(t *testing.T) {
	big := bytes.NewBuffer(make([]byte, 0, maxPooledBuffer+1))
	big.WriteString("stale")
	releaseBuffer(big)
	assert.Equal(t, "stale", big.String(), "oversized buffers are not reset for reuse")

	small := bytes.NewBufferString("stale")
	releaseBuffer(small)
	assert.Equal(t, 0, small.Len())
}
