package domain

// Symbol is one reel face produced by the generator
type Symbol string

// RoundState is the orchestration state of a slot machine
type RoundState string

// Machine states
const (
	StateIdle     RoundState = "idle"
	StateSpinning RoundState = "spinning"
)

// Evaluation is the pure outcome of checking three symbols against a wager
type Evaluation struct {
	Win    bool `json:"win"`
	Payout int  `json:"payout"`
}

// RoundResult represents the outcome of one resolved round
type RoundResult struct {
	RoundID    string    `json:"round_id"`
	Wager      int       `json:"wager"`
	Symbols    [3]Symbol `json:"symbols"`        // Symbol names
	Faces      [3]string `json:"faces"`          // Display faces (emoji)
	Win        bool      `json:"win"`            // True only when all three symbols match
	Payout     int       `json:"payout"`         // Amount credited (0 on loss)
	Multiplier int       `json:"multiplier"`     // Paytable multiplier applied (0 on loss)
	Balance    int       `json:"balance"`        // Balance after settlement
	Message    string    `json:"message"`        // Headline text
	Detail     string    `json:"detail"`         // Amount won or lost
	Depleted   bool      `json:"depleted"`       // Balance reached zero with this round
	Void       bool      `json:"void,omitempty"` // Draw failed, wager refunded
}

// Snapshot is a read-only view of the machine
type Snapshot struct {
	Balance  int        `json:"balance"`
	State    RoundState `json:"state"`
	Depleted bool       `json:"depleted"`
	RoundID  string     `json:"round_id,omitempty"` // Set while spinning
	Wager    int        `json:"wager,omitempty"`    // Set while spinning
}

// PaytableEntry describes the payout of three matching symbols
type PaytableEntry struct {
	Symbol     Symbol `json:"symbol"`
	Face       string `json:"face"`
	Multiplier int    `json:"multiplier"`
}

// RoundStartedPayload is the event payload for slots.round_started events
type RoundStartedPayload struct {
	RoundID string `json:"round_id"`
	Wager   int    `json:"wager"`
	Balance int    `json:"balance"`
}

// WagerRejectedPayload is the event payload for slots.wager_rejected events
type WagerRejectedPayload struct {
	Input   string `json:"input"`
	Reason  string `json:"reason"`
	Kind    string `json:"kind"` // "invalid_wager", "depleted", "round_in_progress"
	Balance int    `json:"balance"`
}

// DepletedPayload is the event payload for slots.depleted events
type DepletedPayload struct {
	RoundID string `json:"round_id,omitempty"`
}
