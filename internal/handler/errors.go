package handler

// Generic HTTP error messages for client responses.
// These messages intentionally do not expose internal error details for security reasons.
// Both handlers and tests should reference these constants to maintain consistency.
const (
	ErrMsgGenericServerError    = "Something went wrong"
	ErrMsgUnknownError          = "Unknown error"
	ErrMsgUnavailableError      = "Server is temporarily unavailable. Please try again later."
	ErrMsgInvalidRequest        = "Invalid request body"
	ErrMsgInvalidRequestSummary = "Invalid request"
	ErrMsgInvalidWager          = "Please enter a valid bet amount!"
)

// Operation names used in logs
const (
	OpSpin = "Spin"
)

// Log messages
const (
	LogMsgEncodeFailed       = "Failed to encode JSON response"
	LogMsgWriteFailed        = "Failed to write response buffer"
	LogMsgReadinessFailed    = "Readiness check failed"
	LogMsgSpinRequestDecoded = "Spin request decoded"
	LogMsgDecodeFailed       = "Failed to decode request body"
	LogMsgValidationFailed   = "Request failed validation"
)

// Environment variable consulted when no version was stamped at build time
const EnvVersion = "VERSION"

// Health status values
const (
	StatusOK          = "ok"
	StatusUnavailable = "unavailable"
)
