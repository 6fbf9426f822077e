package wsgateway

import "time"

// Connection settings
const (
	DefaultWriteWait      = 10 * time.Second
	DefaultPongWait       = 60 * time.Second
	DefaultMaxMessageSize = 1024
	SendBufferSize        = 32
)

// Inbound frame types
const (
	FrameSpin  = "spin"
	FrameState = "state"
)

// Outbound frame types, one per presenter callback plus state and error replies
const (
	FrameBalanceChanged = "balance_changed"
	FrameRoundStarted   = "round_started"
	FrameRoundResolved  = "round_resolved"
	FrameInvalidWager   = "invalid_wager"
	FrameDepleted       = "depleted"
	FrameStateReply     = "state"
	FrameError          = "error"
)

// Error messages sent to clients
const (
	ErrMsgMalformedFrame = "Malformed frame"
	ErrMsgUnknownFrame   = "Unknown frame type"
	ErrMsgUnavailable    = "Machine unavailable"
)

// Log messages
const (
	LogMsgUpgradeFailed      = "WebSocket upgrade failed"
	LogMsgClientConnected    = "WebSocket client connected"
	LogMsgClientDisconnected = "WebSocket client disconnected"
	LogMsgClientTooSlow      = "WebSocket client too slow, dropping"
	LogMsgReadError          = "WebSocket read error"
	LogMsgWriteError         = "WebSocket write error"
	LogMsgEncodeFailed       = "Failed to encode WebSocket frame"
	LogMsgSpinFailed         = "Spin request failed"
	LogMsgFrameRejected      = "WebSocket frame failed schema validation"
)
