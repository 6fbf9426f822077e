package slots

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/osse101/SlotMachine_Go/internal/domain"
	"github.com/osse101/SlotMachine_Go/internal/event"
	"github.com/osse101/SlotMachine_Go/internal/ledger"
	"github.com/osse101/SlotMachine_Go/internal/logger"
)

// Service defines the interface for slot machine operations
type Service interface {
	SubmitWager(ctx context.Context, amount int) (*Round, error)
	SubmitWagerInput(ctx context.Context, raw string) (*Round, error)
	Spin(ctx context.Context, raw string) (*domain.RoundResult, error)
	Snapshot() domain.Snapshot
	Paytable() []domain.PaytableEntry
	Shutdown(ctx context.Context) error
}

// Round is one wager -> draw -> evaluate -> settle cycle
type Round struct {
	ID     string
	Wager  int
	done   chan struct{}
	result domain.RoundResult
}

func newRound(id string, wager int) *Round {
	return &Round{
		ID:    id,
		Wager: wager,
		done:  make(chan struct{}),
	}
}

// Done is closed once the round has been settled and reported
func (r *Round) Done() <-chan struct{} {
	return r.done
}

// Wait blocks until the round resolves or ctx is done.
// Cancelling ctx does not cancel the round.
func (r *Round) Wait(ctx context.Context) (domain.RoundResult, error) {
	select {
	case <-r.done:
		return r.result, nil
	case <-ctx.Done():
		return domain.RoundResult{}, ctx.Err()
	}
}

func (r *Round) complete(result domain.RoundResult) {
	r.result = result
	close(r.done)
}

// Option configures a Machine
type Option func(*Machine)

// WithGenerator replaces the uniform crypto-backed generator
func WithGenerator(g Generator) Option {
	return func(m *Machine) { m.generator = g }
}

// WithScheduler replaces the timer used for the spin delay
func WithScheduler(s Scheduler) Option {
	return func(m *Machine) { m.scheduler = s }
}

// WithSpinDelay sets how long the reels spin before a round resolves
func WithSpinDelay(d time.Duration) Option {
	return func(m *Machine) { m.spinDelay = d }
}

// WithEventBus publishes round events to bus
func WithEventBus(bus event.Bus) Option {
	return func(m *Machine) { m.bus = bus }
}

// WithPresenter registers a presenter at construction time
func WithPresenter(p Presenter) Option {
	return func(m *Machine) { m.presenters = append(m.presenters, p) }
}

// Machine owns the balance and runs rounds one at a time.
// States: Idle (accepting wagers) and Spinning (wager debited, draw pending).
type Machine struct {
	mu         sync.Mutex
	ledger     *ledger.Ledger
	state      domain.RoundState
	current    *Round
	presenters MultiPresenter

	generator Generator
	scheduler Scheduler
	spinDelay time.Duration
	bus       event.Bus
	newID     func() string

	wg sync.WaitGroup
}

var _ Service = (*Machine)(nil)

// NewMachine creates an idle machine holding startingBalance
func NewMachine(startingBalance int, opts ...Option) (*Machine, error) {
	l, err := ledger.New(startingBalance)
	if err != nil {
		return nil, err
	}

	m := &Machine{
		ledger:    l,
		state:     domain.StateIdle,
		generator: NewUniformGenerator(),
		scheduler: TimerScheduler{},
		spinDelay: DefaultSpinDelay,
		newID:     uuid.NewString,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m, nil
}

// AddPresenter registers another presentation adapter
func (m *Machine) AddPresenter(p Presenter) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.presenters = append(m.presenters, p)
}

// SubmitWager validates and debits amount, then starts a round
func (m *Machine) SubmitWager(ctx context.Context, amount int) (*Round, error) {
	return m.submit(ctx, strconv.Itoa(amount), amount, nil)
}

// SubmitWagerInput coerces raw input to an integer wager before submitting it.
// Non-numeric input is rejected the same way as a non-positive wager.
func (m *Machine) SubmitWagerInput(ctx context.Context, raw string) (*Round, error) {
	amount, err := ParseWager(raw)
	return m.submit(ctx, raw, amount, err)
}

// Spin submits raw input and waits for the round to resolve
func (m *Machine) Spin(ctx context.Context, raw string) (*domain.RoundResult, error) {
	round, err := m.SubmitWagerInput(ctx, raw)
	if err != nil {
		return nil, err
	}

	result, err := round.Wait(ctx)
	if err != nil {
		return nil, err
	}
	return &result, nil
}

func (m *Machine) submit(ctx context.Context, input string, amount int, parseErr error) (*Round, error) {
	m.mu.Lock()
	balance := m.ledger.Balance()

	if kind, reason := m.checkWagerLocked(parseErr); kind != "" {
		presenters := m.presenters
		m.mu.Unlock()
		return nil, m.reject(ctx, presenters, input, kind, reason, balance)
	}

	// The ledger owns the range checks: positive and covered by the balance
	if err := m.ledger.Debit(amount); err != nil {
		presenters := m.presenters
		m.mu.Unlock()
		reason := MsgInvalidBet
		if errors.Is(err, ledger.ErrInsufficientFunds) {
			reason = MsgInsufficientFunds
		}
		return nil, m.reject(ctx, presenters, input, domain.RejectKindInvalidWager, reason, balance)
	}

	round := newRound(m.newID(), amount)
	m.state = domain.StateSpinning
	m.current = round
	balance = m.ledger.Balance()
	presenters := m.presenters
	m.wg.Add(1)
	m.mu.Unlock()

	// The round outlives the request that started it
	roundCtx := context.WithoutCancel(ctx)

	logger.FromContext(ctx).Info(LogMsgRoundStarted, "round_id", round.ID, "wager", amount, "balance", balance)
	presenters.OnBalanceChanged(balance)
	presenters.OnRoundStarted()
	m.publish(roundCtx, event.NewRoundStartedEvent(round.ID, amount, balance))

	m.scheduler.AfterFunc(m.spinDelay, func() {
		m.resolve(roundCtx, round)
	})

	return round, nil
}

// checkWagerLocked returns the rejection kind and reason for a machine that
// cannot take a wager right now, or "" when the ledger should decide
func (m *Machine) checkWagerLocked(parseErr error) (string, string) {
	switch {
	case m.state == domain.StateSpinning:
		return domain.RejectKindRoundInProgress, MsgRoundInProgress
	case m.ledger.IsDepleted():
		return domain.RejectKindDepleted, MsgGameOver
	case parseErr != nil:
		return domain.RejectKindInvalidWager, MsgInvalidBet
	}
	return "", ""
}

// reject reports a refused submission and returns the matching domain error
func (m *Machine) reject(ctx context.Context, presenters MultiPresenter, input, kind, reason string, balance int) error {
	logger.FromContext(ctx).Info(LogMsgWagerRejected, "input", input, "kind", kind, "reason", reason, "balance", balance)
	m.publish(ctx, event.NewWagerRejectedEvent(input, reason, kind, balance))

	rejection := &domain.RejectionError{Kind: kind, Reason: reason}
	switch kind {
	case domain.RejectKindRoundInProgress:
		rejection.Err = domain.ErrRoundInProgress
	case domain.RejectKindDepleted:
		rejection.Err = domain.ErrDepleted
		presenters.OnDepleted()
	default:
		rejection.Err = domain.ErrInvalidWager
		presenters.OnInvalidWager(reason)
	}
	return rejection
}

// CheckHealth reports whether the machine state can be read before ctx expires
func (m *Machine) CheckHealth(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		_ = m.Snapshot()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return fmt.Errorf("machine unresponsive: %w", ctx.Err())
	}
}

// resolve is the scheduled continuation: draw, evaluate, settle, report.
// The machine stays Spinning until every callback for the round has run, so
// the next round's callbacks can never reach presenters ahead of this one's.
func (m *Machine) resolve(ctx context.Context, round *Round) {
	defer m.wg.Done()
	log := logger.FromContext(ctx)

	symbols, drawErr := m.drawReels()

	m.mu.Lock()
	result := m.settleLocked(ctx, round, symbols, drawErr)
	presenters := m.presenters
	m.mu.Unlock()

	log.Info(LogMsgRoundResolved,
		"round_id", round.ID,
		"symbols", symbols,
		"win", result.Win,
		"void", result.Void,
		"payout", result.Payout,
		"balance", result.Balance)

	if result.Win || result.Void {
		presenters.OnBalanceChanged(result.Balance)
	}
	presenters.OnRoundResolved(result)
	m.publish(ctx, event.NewRoundResolvedEvent(result))

	if result.Depleted {
		log.Info(LogMsgBalanceDepleted, "round_id", round.ID)
		presenters.OnDepleted()
		m.publish(ctx, event.NewDepletedEvent(round.ID))
	}

	m.mu.Lock()
	m.state = domain.StateIdle
	m.current = nil
	m.mu.Unlock()

	round.complete(result)
}

// settleLocked applies the round's outcome to the ledger. A failed draw or a
// payout the ledger cannot hold voids the round and refunds the wager.
func (m *Machine) settleLocked(ctx context.Context, round *Round, symbols [3]domain.Symbol, drawErr error) domain.RoundResult {
	log := logger.FromContext(ctx)
	result := domain.RoundResult{
		RoundID: round.ID,
		Wager:   round.Wager,
		Symbols: symbols,
	}

	settleErr := drawErr
	if drawErr != nil {
		log.Error(LogMsgDrawFailed, "round_id", round.ID, "error", drawErr)
	} else {
		settleErr = m.payoutLocked(symbols, round.Wager, &result)
		if settleErr != nil {
			log.Error(LogMsgPayoutFailed, "round_id", round.ID, "wager", round.Wager, "error", settleErr)
		}
	}

	if settleErr != nil {
		result.Win = false
		result.Payout = 0
		result.Multiplier = 0
		result.Void = true
		if err := m.ledger.Credit(round.Wager); err != nil {
			// The wager was debited from this balance, so it always fits back
			log.Error(LogMsgRefundFailed, "round_id", round.ID, "error", err)
		}
	}

	for i, sym := range symbols {
		result.Faces[i] = Face(sym)
	}
	result.Balance = m.ledger.Balance()
	result.Depleted = m.ledger.IsDepleted()
	result.Message, result.Detail = outcomeText(round.Wager, result.Payout, result.Win, result.Void, result.Depleted)
	return result
}

// payoutLocked evaluates the symbols and credits any winnings
func (m *Machine) payoutLocked(symbols [3]domain.Symbol, wager int, result *domain.RoundResult) error {
	eval, err := Evaluate(wager, symbols[0], symbols[1], symbols[2])
	if err != nil {
		return err
	}
	if !eval.Win {
		return nil
	}
	if err := m.ledger.Credit(eval.Payout); err != nil {
		return err
	}
	result.Win = true
	result.Payout = eval.Payout
	result.Multiplier, _ = Multiplier(symbols[0])
	return nil
}

// drawReels draws the three symbols independently
func (m *Machine) drawReels() ([3]domain.Symbol, error) {
	var symbols [3]domain.Symbol
	for i := range symbols {
		sym, err := m.generator.Draw()
		if err != nil {
			return [3]domain.Symbol{}, fmt.Errorf("reel %d: %w", i+1, err)
		}
		symbols[i] = sym
	}
	return symbols, nil
}

func (m *Machine) publish(ctx context.Context, evt event.Event) {
	if m.bus == nil {
		return
	}
	if err := m.bus.Publish(ctx, evt); err != nil {
		logger.FromContext(ctx).Warn(LogMsgPublishFailed, "type", evt.Type, "error", err)
	}
}

// Snapshot returns the current balance and state, including the in-flight round if any
func (m *Machine) Snapshot() domain.Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()

	snap := domain.Snapshot{
		Balance:  m.ledger.Balance(),
		State:    m.state,
		Depleted: m.ledger.IsDepleted(),
	}
	if m.current != nil {
		snap.RoundID = m.current.ID
		snap.Wager = m.current.Wager
	}
	return snap
}

// Balance returns the current balance
func (m *Machine) Balance() int {
	return m.Snapshot().Balance
}

// State returns Idle or Spinning
func (m *Machine) State() domain.RoundState {
	return m.Snapshot().State
}

// Paytable returns the fixed symbol multipliers
func (m *Machine) Paytable() []domain.PaytableEntry {
	return Paytable()
}

// Shutdown waits for an in-flight round to settle.
// Rounds are never cancelled; ctx only bounds how long to wait.
func (m *Machine) Shutdown(ctx context.Context) error {
	done := make(chan struct{})
	go func() {
		m.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
