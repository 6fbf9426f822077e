package wsgateway

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SlotMachine_Go/internal/domain"
	"github.com/osse101/SlotMachine_Go/internal/slots"
	"github.com/osse101/SlotMachine_Go/internal/testing/leaktest"
)

type received struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func newGateway(t *testing.T, balance int, cfg Config, seq ...domain.Symbol) (*Gateway, *slots.Machine, *httptest.Server) {
	t.Helper()
	gen, err := slots.NewSequenceGenerator(seq...)
	require.NoError(t, err)

	m, err := slots.NewMachine(balance, slots.WithGenerator(gen), slots.WithScheduler(slots.ImmediateScheduler{}))
	require.NoError(t, err)

	g := New(m, cfg)
	m.AddPresenter(g)

	srv := httptest.NewServer(g)
	t.Cleanup(func() {
		g.Close()
		srv.Close()
	})
	return g, m, srv
}

func dial(t *testing.T, srv *httptest.Server, header http.Header) *websocket.Conn {
	t.Helper()
	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, resp, err := websocket.DefaultDialer.Dial(url, header)
	require.NoError(t, err)
	if resp != nil && resp.Body != nil {
		resp.Body.Close()
	}
	t.Cleanup(func() { conn.Close() })
	return conn
}

func read(t *testing.T, conn *websocket.Conn) received {
	t.Helper()
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	var frame received
	require.NoError(t, conn.ReadJSON(&frame))
	return frame
}

func waitClients(t *testing.T, g *Gateway, n int) {
	t.Helper()
	require.Eventually(t, func() bool { return g.ClientCount() == n }, time.Second, 5*time.Millisecond)
}

func TestGateway_SpinBroadcastsRound(t *testing.T) {
	g, m, srv := newGateway(t, 100, DefaultConfig(), slots.SymbolCherry)
	player := dial(t, srv, nil)
	watcher := dial(t, srv, nil)
	waitClients(t, g, 2)

	require.NoError(t, player.WriteJSON(map[string]interface{}{"type": "spin", "wager": 10}))

	for _, conn := range []*websocket.Conn{player, watcher} {
		f := read(t, conn)
		assert.Equal(t, FrameBalanceChanged, f.Type)
		assert.JSONEq(t, `{"balance":90}`, string(f.Payload))

		f = read(t, conn)
		assert.Equal(t, FrameRoundStarted, f.Type)
		assert.JSONEq(t, `{"message":"Good luck!"}`, string(f.Payload))

		f = read(t, conn)
		assert.Equal(t, FrameBalanceChanged, f.Type)
		assert.JSONEq(t, `{"balance":120}`, string(f.Payload))

		f = read(t, conn)
		assert.Equal(t, FrameRoundResolved, f.Type)
		var result domain.RoundResult
		require.NoError(t, json.Unmarshal(f.Payload, &result))
		assert.True(t, result.Win)
		assert.Equal(t, 30, result.Payout)
		assert.Equal(t, 120, result.Balance)
	}

	assert.Equal(t, 120, m.Balance())
}

func TestGateway_InvalidWager(t *testing.T) {
	g, m, srv := newGateway(t, 5, DefaultConfig(), slots.SymbolCherry)
	conn := dial(t, srv, nil)
	waitClients(t, g, 1)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "spin", "wager": "10"}))

	f := read(t, conn)
	assert.Equal(t, FrameInvalidWager, f.Type)
	assert.JSONEq(t, `{"message":"You don't have enough money for that bet!"}`, string(f.Payload))
	assert.Equal(t, 5, m.Balance())
}

func TestGateway_Depleted(t *testing.T) {
	g, _, srv := newGateway(t, 0, DefaultConfig(), slots.SymbolCherry)
	conn := dial(t, srv, nil)
	waitClients(t, g, 1)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "spin", "wager": "1"}))

	f := read(t, conn)
	assert.Equal(t, FrameDepleted, f.Type)
	assert.JSONEq(t, `{"message":"Game Over! You're out of money!"}`, string(f.Payload))
}

func TestGateway_State(t *testing.T) {
	g, _, srv := newGateway(t, 100, DefaultConfig(), slots.SymbolCherry)
	conn := dial(t, srv, nil)
	waitClients(t, g, 1)

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "state"}))

	f := read(t, conn)
	assert.Equal(t, FrameStateReply, f.Type)
	var state StatePayload
	require.NoError(t, json.Unmarshal(f.Payload, &state))
	assert.Equal(t, domain.Snapshot{Balance: 100, State: domain.StateIdle}, state.Snapshot)
	assert.Len(t, state.Paytable, 3)
}

func TestGateway_BadFrames(t *testing.T) {
	g, _, srv := newGateway(t, 100, DefaultConfig(), slots.SymbolCherry)
	conn := dial(t, srv, nil)
	waitClients(t, g, 1)

	require.NoError(t, conn.WriteMessage(websocket.TextMessage, []byte("not json")))
	f := read(t, conn)
	assert.Equal(t, FrameError, f.Type)
	assert.JSONEq(t, `{"message":"Malformed frame"}`, string(f.Payload))

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "dance"}))
	f = read(t, conn)
	assert.Equal(t, FrameError, f.Type)
	assert.JSONEq(t, `{"message":"Unknown frame type"}`, string(f.Payload))

	// Fails the inbound frame schema
	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "spin", "wager": "10", "player": "bob"}))
	f = read(t, conn)
	assert.Equal(t, FrameError, f.Type)
	assert.JSONEq(t, `{"message":"Malformed frame"}`, string(f.Payload))
	assert.Equal(t, 100, g.service.Snapshot().Balance)
}

// MockService is a testify mock of slots.Service
type MockService struct {
	mock.Mock
}

func (m *MockService) SubmitWager(ctx context.Context, amount int) (*slots.Round, error) {
	args := m.Called(ctx, amount)
	round, _ := args.Get(0).(*slots.Round)
	return round, args.Error(1)
}

func (m *MockService) SubmitWagerInput(ctx context.Context, raw string) (*slots.Round, error) {
	args := m.Called(ctx, raw)
	round, _ := args.Get(0).(*slots.Round)
	return round, args.Error(1)
}

func (m *MockService) Spin(ctx context.Context, raw string) (*domain.RoundResult, error) {
	args := m.Called(ctx, raw)
	result, _ := args.Get(0).(*domain.RoundResult)
	return result, args.Error(1)
}

func (m *MockService) Snapshot() domain.Snapshot {
	return m.Called().Get(0).(domain.Snapshot)
}

func (m *MockService) Paytable() []domain.PaytableEntry {
	return m.Called().Get(0).([]domain.PaytableEntry)
}

func (m *MockService) Shutdown(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

func TestGateway_RoundInProgressRepliesToSender(t *testing.T) {
	svc := new(MockService)
	svc.On("SubmitWagerInput", mock.Anything, "10").Return(nil, domain.ErrRoundInProgress)

	g := New(svc, DefaultConfig())
	srv := httptest.NewServer(g)
	defer srv.Close()
	defer g.Close()

	conn := dial(t, srv, nil)
	waitClients(t, g, 1)

	require.NoError(t, conn.WriteJSON(map[string]interface{}{"type": "spin", "wager": 10}))
	f := read(t, conn)
	assert.Equal(t, FrameError, f.Type)
	assert.JSONEq(t, `{"message":"The reels are still spinning!"}`, string(f.Payload))
	svc.AssertExpectations(t)
}

func TestGateway_OriginCheck(t *testing.T) {
	cfg := DefaultConfig()
	cfg.AllowedOrigins = []string{"https://casino.example"}
	g, _, srv := newGateway(t, 100, cfg, slots.SymbolCherry)
	url := "ws" + strings.TrimPrefix(srv.URL, "http")

	_, resp, err := websocket.DefaultDialer.Dial(url, http.Header{"Origin": {"https://evil.example"}})
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
	resp.Body.Close()

	dial(t, srv, http.Header{"Origin": {"https://casino.example"}})
	dial(t, srv, http.Header{"Origin": {srv.URL}})
	waitClients(t, g, 2)
}

func TestCheckOrigin(t *testing.T) {
	tests := []struct {
		name    string
		allowed []string
		origin  string
		host    string
		want    bool
	}{
		{name: "no origin header", origin: "", host: "a.example", want: true},
		{name: "same origin", origin: "http://a.example", host: "a.example", want: true},
		{name: "cross origin rejected", origin: "http://b.example", host: "a.example", want: false},
		{name: "listed origin", allowed: []string{"http://b.example"}, origin: "http://b.example", host: "a.example", want: true},
		{name: "wildcard", allowed: []string{"*"}, origin: "http://c.example", host: "a.example", want: true},
		{name: "unparseable origin", origin: "http://%zz", host: "a.example", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := New(nil, Config{AllowedOrigins: tt.allowed})
			r := httptest.NewRequest(http.MethodGet, "/ws", nil)
			r.Host = tt.host
			if tt.origin != "" {
				r.Header.Set("Origin", tt.origin)
			}
			assert.Equal(t, tt.want, g.checkOrigin(r))
		})
	}
}

func TestGateway_CloseDisconnectsClients(t *testing.T) {
	checker := leaktest.NewGoroutineChecker(t)

	m, err := slots.NewMachine(100)
	require.NoError(t, err)
	g := New(m, DefaultConfig())
	srv := httptest.NewServer(g)

	url := "ws" + strings.TrimPrefix(srv.URL, "http")
	conn, _, err := websocket.DefaultDialer.Dial(url, nil)
	require.NoError(t, err)
	waitClients(t, g, 1)

	g.Close()
	assert.Equal(t, 0, g.ClientCount())

	require.NoError(t, conn.SetReadDeadline(time.Now().Add(2*time.Second)))
	_, _, err = conn.ReadMessage()
	assert.True(t, websocket.IsCloseError(err, websocket.CloseNormalClosure), "got %v", err)
	conn.Close()

	// Late connections are refused
	late, _, err := websocket.DefaultDialer.Dial(url, nil)
	if err == nil {
		require.NoError(t, late.SetReadDeadline(time.Now().Add(2*time.Second)))
		_, _, err = late.ReadMessage()
		assert.True(t, websocket.IsCloseError(err, websocket.CloseGoingAway), "got %v", err)
		late.Close()
	}

	srv.Close()
	checker.Check(2)
}

func TestGateway_CloseWaitsForRegisteredPumps(t *testing.T) {
	g := New(nil, DefaultConfig())
	c := &client{id: "pending", gateway: g, send: make(chan []byte, 1)}

	// Admitted but its pumps have not started yet
	require.True(t, g.register(c))

	closed := make(chan struct{})
	go func() {
		g.Close()
		close(closed)
	}()

	select {
	case <-closed:
		t.Fatal("Close returned before the pumps of a registered client exited")
	case <-time.After(50 * time.Millisecond):
	}

	g.wg.Done()
	g.wg.Done()
	select {
	case <-closed:
	case <-time.After(time.Second):
		t.Fatal("Close did not return after the pumps exited")
	}

	assert.False(t, g.register(&client{gateway: g, send: make(chan []byte, 1)}), "closed gateway refuses clients")
}

func TestConfigDefaults(t *testing.T) {
	cfg := Config{PongWait: 10 * time.Second, PingPeriod: 20 * time.Second}.withDefaults()
	assert.Equal(t, 9*time.Second, cfg.PingPeriod)
	assert.Equal(t, DefaultWriteWait, cfg.WriteWait)
	assert.Equal(t, int64(DefaultMaxMessageSize), cfg.MaxMessageSize)
}
