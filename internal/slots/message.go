package slots

import (
	"fmt"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats amounts with thousands separators ("$1,000")
var printer = message.NewPrinter(language.English)

// FormatAmount renders an amount the way every presenter shows it
func FormatAmount(amount int) string {
	return printer.Sprintf("%d", amount)
}

// outcomeText builds the headline and detail for a settled round
func outcomeText(wager, payout int, win, void, depleted bool) (string, string) {
	var msg, detail string
	switch {
	case void:
		msg = MsgVoidRound
		detail = fmt.Sprintf(DetailRefundFormat, FormatAmount(wager))
	case win:
		msg = MsgWin
		detail = fmt.Sprintf(DetailWinFormat, FormatAmount(payout))
	default:
		msg = MsgLoss
		detail = fmt.Sprintf(DetailLossFormat, FormatAmount(wager))
	}

	if depleted {
		msg = MsgGameOver
	}
	return msg, detail
}
