package terminal

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/osse101/SlotMachine_Go/internal/domain"
	"github.com/osse101/SlotMachine_Go/internal/slots"
)

// Machine is what the terminal needs from the slot machine
type Machine interface {
	SubmitWagerInput(ctx context.Context, raw string) (*slots.Round, error)
	Snapshot() domain.Snapshot
	Paytable() []domain.PaytableEntry
}

// Game is a line-oriented REPL over a machine. It is also the machine's
// Presenter: register it with AddPresenter or slots.WithPresenter.
type Game struct {
	machine Machine
	in      io.Reader

	mu  sync.Mutex
	out io.Writer
}

var _ slots.Presenter = (*Game)(nil)

// NewGame creates a game reading commands from in and drawing to out
func NewGame(machine Machine, in io.Reader, out io.Writer) *Game {
	return &Game{
		machine: machine,
		in:      in,
		out:     out,
	}
}

// Run plays until quit, end of input, depletion, or ctx is done.
// Each wager blocks until its round resolves, so the prompt never runs ahead of the reels.
func (g *Game) Run(ctx context.Context) error {
	g.println(Banner)
	g.printPaytable()
	g.OnBalanceChanged(g.machine.Snapshot().Balance)
	g.println(HelpText)

	if g.machine.Snapshot().Depleted {
		g.OnDepleted()
		return nil
	}

	done := make(chan struct{})
	defer close(done)

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		scanner := bufio.NewScanner(g.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		readErr <- scanner.Err()
	}()

	for {
		g.print(Prompt)

		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case err := <-readErr:
			g.println("")
			return err
		case line = <-lines:
		}

		switch cmd := strings.ToLower(strings.TrimSpace(line)); cmd {
		case "":
			continue
		case CmdQuit, CmdExit:
			g.println(Goodbye)
			return nil
		case CmdBalance:
			g.OnBalanceChanged(g.machine.Snapshot().Balance)
		case CmdPaytable:
			g.printPaytable()
		case CmdHelp:
			g.println(HelpText)
		default:
			if err := g.spin(ctx, line); err != nil {
				return err
			}
			if g.machine.Snapshot().Depleted {
				return nil
			}
		}
	}
}

// spin submits a wager and waits for the reels. Rejections have already been
// drawn by the presenter callbacks and only ctx errors end the game.
func (g *Game) spin(ctx context.Context, input string) error {
	round, err := g.machine.SubmitWagerInput(ctx, input)
	if err != nil {
		var rejection *domain.RejectionError
		switch {
		case !errors.As(err, &rejection):
			g.println(err.Error())
		case rejection.Kind == domain.RejectKindRoundInProgress:
			g.println(rejection.Reason)
		}
		return nil
	}

	if _, err := round.Wait(ctx); err != nil {
		return err
	}
	return nil
}

func (g *Game) printPaytable() {
	for _, entry := range g.machine.Paytable() {
		g.println(fmt.Sprintf(PaytableRow, entry.Face, entry.Face, entry.Face, entry.Multiplier))
	}
}

// OnBalanceChanged prints the new balance
func (g *Game) OnBalanceChanged(balance int) {
	g.println(fmt.Sprintf(BalanceFormat, slots.FormatAmount(balance)))
}

// OnRoundStarted announces the spin
func (g *Game) OnRoundStarted() {
	g.println(SpinningText + " " + slots.MsgGoodLuck)
}

// OnRoundResolved draws the reels and the outcome.
// The game over headline is left to OnDepleted.
func (g *Game) OnRoundResolved(result domain.RoundResult) {
	g.println(fmt.Sprintf(ReelFormat, result.Faces[0], result.Faces[1], result.Faces[2]))
	if !result.Depleted {
		g.println(result.Message)
	}
	g.println(result.Detail)
}

// OnInvalidWager prints the rejection reason
func (g *Game) OnInvalidWager(reason string) {
	g.println(reason)
}

// OnDepleted prints the game over message
func (g *Game) OnDepleted() {
	g.println(slots.MsgGameOver)
}

func (g *Game) print(s string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fmt.Fprint(g.out, s)
}

func (g *Game) println(s string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	fmt.Fprintln(g.out, s)
}
