package slots

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/osse101/SlotMachine_Go/internal/domain"
)

// ParseWager coerces raw presentation input into an integer wager.
// Only plain base-10 integers are accepted; "10.5", "1e2" and "" are rejected.
// Range checks against the balance happen in the machine.
func ParseWager(raw string) (int, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return 0, fmt.Errorf("%w: wager is empty", domain.ErrInvalidWager)
	}

	amount, err := strconv.Atoi(trimmed)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a whole number", domain.ErrInvalidWager, raw)
	}
	return amount, nil
}

// WagerInput is raw wager text decoded from JSON.
// It accepts a string ("10") or a bare number (10) so both browser
// form values and typed clients coerce the same way.
type WagerInput string

// UnmarshalJSON keeps the literal text of a number instead of converting it
func (w *WagerInput) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if trimmed == "null" {
		*w = ""
		return nil
	}
	if strings.HasPrefix(trimmed, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*w = WagerInput(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: wager must be a string or number", domain.ErrInvalidWager)
	}
	*w = WagerInput(n.String())
	return nil
}

// String returns the raw text
func (w WagerInput) String() string {
	return string(w)
}
