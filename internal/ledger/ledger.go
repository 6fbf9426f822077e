// Package ledger holds the player's virtual currency balance.
package ledger

import (
	"fmt"
	"math"

	"github.com/osse101/SlotMachine_Go/internal/domain"
)

// ErrInsufficientFunds is returned by Debit when the amount exceeds the balance
var ErrInsufficientFunds = fmt.Errorf("%w: insufficient funds", domain.ErrInvalidWager)

// Ledger is a single non-negative integer balance.
// It is not safe for concurrent use; the owning machine serializes access.
type Ledger struct {
	balance int
}

// New creates a ledger with the given starting balance
func New(initial int) (*Ledger, error) {
	if initial < 0 {
		return nil, fmt.Errorf("%w: starting balance %d is negative", domain.ErrInvalidAmount, initial)
	}
	return &Ledger{balance: initial}, nil
}

// Balance returns the current balance
func (l *Ledger) Balance() int {
	return l.balance
}

// Debit removes a wager from the balance.
// The amount must be positive and must not exceed the balance.
func (l *Ledger) Debit(amount int) error {
	if amount <= 0 {
		return fmt.Errorf("%w: amount %d must be positive", domain.ErrInvalidWager, amount)
	}
	if amount > l.balance {
		return fmt.Errorf("%w: amount %d exceeds balance %d", ErrInsufficientFunds, amount, l.balance)
	}
	l.balance -= amount
	return nil
}

// Credit adds winnings (or a refund) to the balance.
// A credit that would overflow the balance is refused and leaves it unchanged.
func (l *Ledger) Credit(amount int) error {
	if amount < 0 {
		return fmt.Errorf("%w: amount %d must not be negative", domain.ErrInvalidAmount, amount)
	}
	if amount > math.MaxInt-l.balance {
		return fmt.Errorf("%w: crediting %d would overflow balance %d", domain.ErrInvalidAmount, amount, l.balance)
	}
	l.balance += amount
	return nil
}

// IsDepleted reports whether the balance is zero
func (l *Ledger) IsDepleted() bool {
	return l.balance == 0
}
