package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SlotMachine_Go/internal/domain"
	"github.com/osse101/SlotMachine_Go/internal/slots"
)

// MockSlotsService is a testify mock of slots.Service
type MockSlotsService struct {
	mock.Mock
}

func (m *MockSlotsService) SubmitWager(ctx context.Context, amount int) (*slots.Round, error) {
	args := m.Called(ctx, amount)
	round, _ := args.Get(0).(*slots.Round)
	return round, args.Error(1)
}

func (m *MockSlotsService) SubmitWagerInput(ctx context.Context, raw string) (*slots.Round, error) {
	args := m.Called(ctx, raw)
	round, _ := args.Get(0).(*slots.Round)
	return round, args.Error(1)
}

func (m *MockSlotsService) Spin(ctx context.Context, raw string) (*domain.RoundResult, error) {
	args := m.Called(ctx, raw)
	result, _ := args.Get(0).(*domain.RoundResult)
	return result, args.Error(1)
}

func (m *MockSlotsService) Snapshot() domain.Snapshot {
	return m.Called().Get(0).(domain.Snapshot)
}

func (m *MockSlotsService) Paytable() []domain.PaytableEntry {
	return m.Called().Get(0).([]domain.PaytableEntry)
}

func (m *MockSlotsService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestHandleSpin(t *testing.T) {
	win := &domain.RoundResult{
		RoundID: "r1",
		Wager:   10,
		Symbols: [3]domain.Symbol{slots.SymbolCherry, slots.SymbolCherry, slots.SymbolCherry},
		Win:     true,
		Payout:  30,
		Balance: 120,
		Message: slots.MsgWin,
	}

	tests := []struct {
		name       string
		body       string
		setupMock  func(*MockSlotsService)
		wantStatus int
		wantBody   string
	}{
		{
			name: "string wager wins",
			body: `{"wager":"10"}`,
			setupMock: func(m *MockSlotsService) {
				m.On("Spin", mock.Anything, "10").Return(win, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"payout":30`,
		},
		{
			name: "numeric wager accepted",
			body: `{"wager":10}`,
			setupMock: func(m *MockSlotsService) {
				m.On("Spin", mock.Anything, "10").Return(win, nil)
			},
			wantStatus: http.StatusOK,
			wantBody:   `"balance":120`,
		},
		{
			name: "insufficient funds",
			body: `{"wager":"10"}`,
			setupMock: func(m *MockSlotsService) {
				m.On("Spin", mock.Anything, "10").Return(nil, &domain.RejectionError{
					Kind: domain.RejectKindInvalidWager, Reason: slots.MsgInsufficientFunds, Err: domain.ErrInvalidWager,
				})
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"error":"You don't have enough money for that bet!"`,
		},
		{
			name: "non numeric wager reaches machine",
			body: `{"wager":"lots"}`,
			setupMock: func(m *MockSlotsService) {
				m.On("Spin", mock.Anything, "lots").Return(nil, &domain.RejectionError{
					Kind: domain.RejectKindInvalidWager, Reason: slots.MsgInvalidBet, Err: domain.ErrInvalidWager,
				})
			},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"kind":"invalid_wager"`,
		},
		{
			name: "round in progress",
			body: `{"wager":"10"}`,
			setupMock: func(m *MockSlotsService) {
				m.On("Spin", mock.Anything, "10").Return(nil, &domain.RejectionError{
					Kind: domain.RejectKindRoundInProgress, Reason: slots.MsgRoundInProgress, Err: domain.ErrRoundInProgress,
				})
			},
			wantStatus: http.StatusConflict,
			wantBody:   slots.MsgRoundInProgress,
		},
		{
			name: "depleted",
			body: `{"wager":"10"}`,
			setupMock: func(m *MockSlotsService) {
				m.On("Spin", mock.Anything, "10").Return(nil, &domain.RejectionError{
					Kind: domain.RejectKindDepleted, Reason: slots.MsgGameOver, Err: domain.ErrDepleted,
				})
			},
			wantStatus: http.StatusGone,
			wantBody:   `"kind":"depleted"`,
		},
		{
			name:       "malformed body",
			body:       `{"wager":`,
			setupMock:  func(*MockSlotsService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   ErrMsgInvalidRequest,
		},
		{
			name:       "unknown field",
			body:       `{"bet":10}`,
			setupMock:  func(*MockSlotsService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   ErrMsgInvalidRequest,
		},
		{
			name:       "trailing data",
			body:       `{"wager":"10"}{"wager":"20"}`,
			setupMock:  func(*MockSlotsService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   ErrMsgInvalidRequest,
		},
		{
			name:       "oversized wager text",
			body:       `{"wager":"` + strings.Repeat("9", 40) + `"}`,
			setupMock:  func(*MockSlotsService) {},
			wantStatus: http.StatusBadRequest,
			wantBody:   `"wager":"Must be at most 32 characters"`,
		},
		{
			name: "unexpected failure",
			body: `{"wager":"10"}`,
			setupMock: func(m *MockSlotsService) {
				m.On("Spin", mock.Anything, "10").Return(nil, assert.AnError)
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   ErrMsgGenericServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := new(MockSlotsService)
			tt.setupMock(svc)
			h := NewSlotsHandler(svc)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/slots/spin", strings.NewReader(tt.body))
			w := httptest.NewRecorder()
			h.HandleSpin(w, req)

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
			assert.Contains(t, w.Body.String(), tt.wantBody)
			svc.AssertExpectations(t)
		})
	}
}

func TestHandleGetMachine(t *testing.T) {
	svc := new(MockSlotsService)
	svc.On("Snapshot").Return(domain.Snapshot{Balance: 90, State: domain.StateSpinning, RoundID: "r1", Wager: 10})
	svc.On("Paytable").Return(slots.Paytable())

	w := httptest.NewRecorder()
	NewSlotsHandler(svc).HandleGetMachine(w, httptest.NewRequest(http.MethodGet, "/api/v1/slots", nil))

	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, float64(90), body["balance"])
	assert.Equal(t, "spinning", body["state"])
	assert.Equal(t, "r1", body["round_id"])
	assert.Len(t, body["paytable"], 3)
}

func TestHandleGetPaytable(t *testing.T) {
	svc := new(MockSlotsService)
	svc.On("Paytable").Return(slots.Paytable())

	w := httptest.NewRecorder()
	NewSlotsHandler(svc).HandleGetPaytable(w, httptest.NewRequest(http.MethodGet, "/api/v1/slots/paytable", nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"paytable":[
		{"symbol":"CHERRY","face":"🍒","multiplier":3},
		{"symbol":"STAR","face":"⭐","multiplier":5},
		{"symbol":"DIAMOND","face":"💎","multiplier":10}
	]}`, w.Body.String())
}

// TestHandleSpin_RealMachine drives the handler against a machine with a fixed draw
func TestHandleSpin_RealMachine(t *testing.T) {
	gen, err := slots.NewSequenceGenerator(slots.SymbolCherry, slots.SymbolStar, slots.SymbolDiamond)
	require.NoError(t, err)
	m, err := slots.NewMachine(100, slots.WithGenerator(gen), slots.WithScheduler(slots.ImmediateScheduler{}))
	require.NoError(t, err)
	h := NewSlotsHandler(m)

	w := httptest.NewRecorder()
	h.HandleSpin(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"wager":"10"}`)))

	require.Equal(t, http.StatusOK, w.Code)
	var result domain.RoundResult
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &result))
	assert.False(t, result.Win)
	assert.Equal(t, 90, result.Balance)
	assert.Equal(t, "You lost $10", result.Detail)
	assert.Equal(t, [3]string{"🍒", "⭐", "💎"}, result.Faces)
}
