package slots

import (
	"log/slog"

	"github.com/osse101/SlotMachine_Go/internal/domain"
)

// Presenter renders machine output. Implementations are the presentation
// adapters (HTTP, WebSocket, terminal); they never own game state.
type Presenter interface {
	OnBalanceChanged(balance int)
	OnRoundStarted()
	OnRoundResolved(result domain.RoundResult)
	OnInvalidWager(reason string)
	OnDepleted()
}

// NopPresenter ignores every callback
type NopPresenter struct{}

func (NopPresenter) OnBalanceChanged(int)               {}
func (NopPresenter) OnRoundStarted()                    {}
func (NopPresenter) OnRoundResolved(domain.RoundResult) {}
func (NopPresenter) OnInvalidWager(string)              {}
func (NopPresenter) OnDepleted()                        {}

// MultiPresenter fans callbacks out to several presenters in order.
// A panicking presenter is logged and skipped so the others still run.
type MultiPresenter []Presenter

func (m MultiPresenter) OnBalanceChanged(balance int) {
	m.each(func(p Presenter) { p.OnBalanceChanged(balance) })
}

func (m MultiPresenter) OnRoundStarted() {
	m.each(func(p Presenter) { p.OnRoundStarted() })
}

func (m MultiPresenter) OnRoundResolved(result domain.RoundResult) {
	m.each(func(p Presenter) { p.OnRoundResolved(result) })
}

func (m MultiPresenter) OnInvalidWager(reason string) {
	m.each(func(p Presenter) { p.OnInvalidWager(reason) })
}

func (m MultiPresenter) OnDepleted() {
	m.each(func(p Presenter) { p.OnDepleted() })
}

func (m MultiPresenter) each(fn func(Presenter)) {
	for _, p := range m {
		func() {
			defer func() {
				if r := recover(); r != nil {
					slog.Error(LogMsgPresenterPanic, "panic", r)
				}
			}()
			fn(p)
		}()
	}
}
