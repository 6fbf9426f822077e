package slots

import (
	"time"

	"github.com/osse101/SlotMachine_Go/internal/domain"
)

// Symbol constants
const (
	SymbolCherry  domain.Symbol = "CHERRY"
	SymbolStar    domain.Symbol = "STAR"
	SymbolDiamond domain.Symbol = "DIAMOND"
)

// reelSymbols is the fixed, ordered symbol set every reel draws from
var reelSymbols = []domain.Symbol{SymbolCherry, SymbolStar, SymbolDiamond}

// PayoutMultipliers defines the payout for 3 matching symbols
var PayoutMultipliers = map[domain.Symbol]int{
	SymbolCherry:  3,  // 3x bet
	SymbolStar:    5,  // 5x bet
	SymbolDiamond: 10, // 10x bet
}

// SymbolFaces maps symbols to the faces shown on the reels
var SymbolFaces = map[domain.Symbol]string{
	SymbolCherry:  "🍒",
	SymbolStar:    "⭐",
	SymbolDiamond: "💎",
}

// Machine defaults
const (
	DefaultStartingBalance = 100
	DefaultSpinDelay       = 1 * time.Second
)

// Player-facing messages
const (
	MsgGoodLuck          = "Good luck!"
	MsgWin               = "🎉 YOU WON! 🎉"
	MsgLoss              = "Sorry, try again!"
	MsgGameOver          = "Game Over! You're out of money!"
	MsgInvalidBet        = "Please enter a valid bet amount!"
	MsgInsufficientFunds = "You don't have enough money for that bet!"
	MsgRoundInProgress   = "The reels are still spinning!"
	MsgVoidRound         = "The reels jammed!"

	DetailWinFormat    = "You won $%s!"
	DetailLossFormat   = "You lost $%s"
	DetailRefundFormat = "Your $%s bet was returned"
)

// Log messages
const (
	LogMsgRoundStarted    = "Round started"
	LogMsgRoundResolved   = "Round resolved"
	LogMsgWagerRejected   = "Wager rejected"
	LogMsgDrawFailed      = "Reel draw failed, refunding wager"
	LogMsgPayoutFailed    = "Payout cannot be credited, refunding wager"
	LogMsgRefundFailed    = "Refund could not be credited"
	LogMsgPublishFailed   = "Failed to publish slots event"
	LogMsgPresenterPanic  = "Presenter callback panicked"
	LogMsgBalanceDepleted = "Balance depleted"
)
