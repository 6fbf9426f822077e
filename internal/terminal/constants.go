package terminal

// Commands accepted at the prompt
const (
	CmdQuit     = "quit"
	CmdExit     = "exit"
	CmdBalance  = "balance"
	CmdPaytable = "paytable"
	CmdHelp     = "help"
)

// Screen text
const (
	Banner        = "🎰 SLOTS 🎰"
	Prompt        = "Bet amount> "
	Goodbye       = "Thanks for playing!"
	HelpText      = "Type a bet amount to spin, or one of: balance, paytable, help, quit"
	SpinningText  = "Spinning..."
	ReelFormat    = "[ %s | %s | %s ]"
	BalanceFormat = "Balance: $%s"
	PaytableRow   = "%s %s %s  pays %dx"
)
