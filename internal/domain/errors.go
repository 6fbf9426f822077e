package domain

import "errors"

// Error message string constants - single source of truth for error messages
// Use these in assert.Contains() checks when testing error messages
const (
	// Wager errors
	ErrMsgInvalidWager    = "invalid wager"
	ErrMsgRoundInProgress = "round in progress"
	ErrMsgDepleted        = "balance depleted"

	// Ledger errors
	ErrMsgInvalidAmount = "invalid amount"

	// Input errors
	ErrMsgInvalidInput = "invalid input"
)

// Common domain errors
// Wrap these errors with fmt.Errorf("%w: %s", domain.ErrXxx, details) for additional context.
var (
	// Wager errors
	ErrInvalidWager    = errors.New(ErrMsgInvalidWager)
	ErrRoundInProgress = errors.New(ErrMsgRoundInProgress)
	ErrDepleted        = errors.New(ErrMsgDepleted)

	// Ledger errors
	ErrInvalidAmount = errors.New(ErrMsgInvalidAmount)

	// Validation errors
	ErrInvalidInput = errors.New(ErrMsgInvalidInput)
)

// RejectionError is returned when the machine refuses a wager.
// It unwraps to ErrInvalidWager, ErrRoundInProgress or ErrDepleted and carries
// the player-facing reason shown by presentation adapters.
type RejectionError struct {
	Kind   string
	Reason string
	Err    error
}

func (e *RejectionError) Error() string {
	return e.Err.Error() + ": " + e.Reason
}

func (e *RejectionError) Unwrap() error {
	return e.Err
}
