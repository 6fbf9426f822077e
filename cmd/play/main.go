package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/osse101/SlotMachine_Go/internal/bootstrap"
	"github.com/osse101/SlotMachine_Go/internal/config"
	"github.com/osse101/SlotMachine_Go/internal/slots"
	"github.com/osse101/SlotMachine_Go/internal/terminal"
)

func main() {
	seq := flag.String("seq", "", "Comma separated symbols drawn in order, e.g. CHERRY,CHERRY,CHERRY (demo mode)")
	balance := flag.Int("balance", -1, "Starting balance (defaults to STARTING_BALANCE)")
	delay := flag.Duration("delay", -1, "Spin delay (defaults to SPIN_DELAY)")
	flag.Parse()

	if err := run(*seq, *balance, *delay); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func run(seq string, balance int, delay time.Duration) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if balance >= 0 {
		cfg.StartingBalance = balance
	}
	if delay >= 0 {
		cfg.SpinDelay = delay
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid flags: %w", err)
	}

	// Logs never go to the screen; set LOG_DIR to keep them
	logFile, err := bootstrap.SetupLogger(cfg, nil)
	if err != nil {
		return err
	}
	if logFile != nil {
		defer logFile.Close()
	}

	var opts []slots.Option
	if seq != "" {
		symbols, err := slots.ParseSequence(seq)
		if err != nil {
			return fmt.Errorf("invalid -seq: %w", err)
		}
		gen, err := slots.NewSequenceGenerator(symbols...)
		if err != nil {
			return fmt.Errorf("invalid -seq: %w", err)
		}
		opts = append(opts, slots.WithGenerator(gen))
	}

	machine, err := bootstrap.NewMachine(cfg, nil, opts...)
	if err != nil {
		return err
	}

	game := terminal.NewGame(machine, os.Stdin, os.Stdout)
	machine.AddPresenter(game)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := game.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	return machine.Shutdown(shutdownCtx)
}
