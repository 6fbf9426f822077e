package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/osse101/SlotMachine_Go/internal/logger"
)

// errTrailingData rejects bodies holding more than one JSON value
var errTrailingData = errors.New("unexpected data after JSON body")

// ValidationErrorResponse defines the response structure for validation errors
type ValidationErrorResponse struct {
	Error  string            `json:"error"`
	Fields map[string]string `json:"fields"`
}

// DecodeAndValidateRequest reads a single JSON object into req and runs its
// validate tags. Unknown fields and trailing data are rejected.
//
// On error the 400 response has already been written and the handler should return:
//
//	var req SpinRequest
//	if err := DecodeAndValidateRequest(r, w, &req, OpSpin); err != nil {
//	    return
//	}
func DecodeAndValidateRequest(r *http.Request, w http.ResponseWriter, req interface{}, op string) error {
	log := logger.FromContext(r.Context())

	if err := decodeStrict(r.Body, req); err != nil {
		log.Warn(LogMsgDecodeFailed, "operation", op, "error", err)
		respondError(w, http.StatusBadRequest, ErrMsgInvalidRequest)
		return err
	}

	if err := GetValidator().ValidateStruct(req); err != nil {
		fields := FormatValidationError(err)
		log.Debug(LogMsgValidationFailed, "operation", op, "fields", fields)
		respondJSON(w, http.StatusBadRequest, ValidationErrorResponse{
			Error:  ErrMsgInvalidRequestSummary,
			Fields: fields,
		})
		return err
	}

	return nil
}

func decodeStrict(body io.Reader, dst interface{}) error {
	dec := json.NewDecoder(body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return err
	}
	if _, err := dec.Token(); !errors.Is(err, io.EOF) {
		return errTrailingData
	}
	return nil
}
