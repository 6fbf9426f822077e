package bootstrap

import (
	"github.com/osse101/SlotMachine_Go/internal/config"
	"github.com/osse101/SlotMachine_Go/internal/event"
	"github.com/osse101/SlotMachine_Go/internal/slots"
)

// NewMachine builds the slot machine from configuration.
// extra options are applied last, so callers can swap the generator or add presenters.
func NewMachine(cfg *config.Config, bus event.Bus, extra ...slots.Option) (*slots.Machine, error) {
	opts := []slots.Option{slots.WithSpinDelay(cfg.SpinDelay)}
	if bus != nil {
		opts = append(opts, slots.WithEventBus(bus))
	}
	opts = append(opts, extra...)

	return slots.NewMachine(cfg.StartingBalance, opts...)
}
