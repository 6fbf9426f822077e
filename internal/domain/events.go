package domain

// Event type constants used for event bus subscriptions, metrics tracking
// and the SSE stream.
//
// Event types follow the pattern: <entity>.<action> (e.g., "slots.round_resolved")
const (
	// EventTypeRoundStarted is published when a wager is debited and the reels start
	EventTypeRoundStarted = "slots.round_started"

	// EventTypeRoundResolved is published when a round is settled
	EventTypeRoundResolved = "slots.round_resolved"

	// EventTypeWagerRejected is published when a submission is refused
	EventTypeWagerRejected = "slots.wager_rejected"

	// EventTypeDepleted is published when the balance reaches zero
	EventTypeDepleted = "slots.depleted"
)

// Rejection kinds carried by WagerRejectedPayload
const (
	RejectKindInvalidWager    = "invalid_wager"
	RejectKindDepleted        = "depleted"
	RejectKindRoundInProgress = "round_in_progress"
)
