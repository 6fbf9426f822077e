package slots

import (
	"fmt"
	"math"

	"github.com/osse101/SlotMachine_Go/internal/domain"
)

// ErrPayoutOverflow is returned when wager x multiplier exceeds the int range
var ErrPayoutOverflow = fmt.Errorf("%w: payout overflows", domain.ErrInvalidAmount)

// Symbols returns the ordered reel symbol set
func Symbols() []domain.Symbol {
	out := make([]domain.Symbol, len(reelSymbols))
	copy(out, reelSymbols)
	return out
}

// Multiplier looks up the payout multiplier for three of a symbol
func Multiplier(sym domain.Symbol) (int, bool) {
	m, ok := PayoutMultipliers[sym]
	return m, ok
}

// Face returns the display face for a symbol, or the symbol name if it has none
func Face(sym domain.Symbol) string {
	if f, ok := SymbolFaces[sym]; ok {
		return f
	}
	return string(sym)
}

// Paytable lists every symbol with its face and multiplier in reel order
func Paytable() []domain.PaytableEntry {
	entries := make([]domain.PaytableEntry, 0, len(reelSymbols))
	for _, sym := range reelSymbols {
		entries = append(entries, domain.PaytableEntry{
			Symbol:     sym,
			Face:       Face(sym),
			Multiplier: PayoutMultipliers[sym],
		})
	}
	return entries
}

// Evaluate decides a round from the wager and the three drawn symbols.
// Only an exact three-way match wins; two of a kind pays nothing.
// A match on a symbol missing from the paytable is treated as a loss.
// A winning payout that does not fit in an int returns ErrPayoutOverflow.
func Evaluate(wager int, s1, s2, s3 domain.Symbol) (domain.Evaluation, error) {
	if s1 != s2 || s2 != s3 {
		return domain.Evaluation{}, nil
	}

	multiplier, ok := Multiplier(s1)
	if !ok {
		return domain.Evaluation{}, nil
	}
	if wager > math.MaxInt/multiplier {
		return domain.Evaluation{}, fmt.Errorf("%w: %d x %d", ErrPayoutOverflow, wager, multiplier)
	}

	return domain.Evaluation{
		Win:    true,
		Payout: wager * multiplier,
	}, nil
}
