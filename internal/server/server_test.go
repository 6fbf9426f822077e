package server

import (
	"bufio"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/osse101/SlotMachine_Go/internal/config"
	"github.com/osse101/SlotMachine_Go/internal/domain"
	"github.com/osse101/SlotMachine_Go/internal/slots"
	"github.com/osse101/SlotMachine_Go/internal/sse"
	"github.com/osse101/SlotMachine_Go/internal/wsgateway"
)

func testConfig() *config.Config {
	return &config.Config{
		Port:            8080,
		LogLevel:        "info",
		LogFormat:       "text",
		Environment:     "dev",
		ServiceName:     "slot-machine",
		Version:         "test",
		StartingBalance: 100,
		ShutdownTimeout: time.Second,
	}
}

// newCherryMachine always draws three cherries and resolves without a delay
func newCherryMachine(t *testing.T) *slots.Machine {
	t.Helper()
	gen, err := slots.NewSequenceGenerator(slots.SymbolCherry)
	require.NoError(t, err)

	m, err := slots.NewMachine(100,
		slots.WithGenerator(gen),
		slots.WithScheduler(slots.ImmediateScheduler{}))
	require.NoError(t, err)
	return m
}

func TestRoutes(t *testing.T) {
	srv := NewServer(testConfig(), newCherryMachine(t), nil, nil)
	h := srv.Handler()

	tests := []struct {
		name       string
		method     string
		path       string
		body       string
		wantStatus int
		wantBody   string
	}{
		{name: "liveness", method: http.MethodGet, path: "/healthz", wantStatus: http.StatusOK, wantBody: `"status":"ok"`},
		{name: "readiness", method: http.MethodGet, path: "/readyz", wantStatus: http.StatusOK},
		{name: "version", method: http.MethodGet, path: "/version", wantStatus: http.StatusOK, wantBody: `"version"`},
		{name: "metrics", method: http.MethodGet, path: "/metrics", wantStatus: http.StatusOK, wantBody: "http_requests_total"},
		{name: "machine", method: http.MethodGet, path: "/api/v1/slots", wantStatus: http.StatusOK, wantBody: `"balance":100`},
		{name: "paytable", method: http.MethodGet, path: "/api/v1/slots/paytable", wantStatus: http.StatusOK, wantBody: `"multiplier":10`},
		{name: "invalid wager", method: http.MethodPost, path: "/api/v1/slots/spin", body: `{"wager":"abc"}`, wantStatus: http.StatusBadRequest},
		{name: "spin method not allowed", method: http.MethodGet, path: "/api/v1/slots/spin", wantStatus: http.StatusMethodNotAllowed},
		{name: "unknown route", method: http.MethodGet, path: "/api/v1/nope", wantStatus: http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(tt.method, tt.path, strings.NewReader(tt.body))
			rec := httptest.NewRecorder()

			h.ServeHTTP(rec, req)

			assert.Equal(t, tt.wantStatus, rec.Code, rec.Body.String())
			if tt.wantBody != "" {
				assert.Contains(t, rec.Body.String(), tt.wantBody)
			}
			assert.Equal(t, HeaderValueNoSniff, rec.Header().Get(HeaderContentType))
		})
	}
}

func TestSpinThroughRouter(t *testing.T) {
	machine := newCherryMachine(t)
	h := NewServer(testConfig(), machine, nil, nil).Handler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/slots/spin", strings.NewReader(`{"wager":10}`))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var result domain.RoundResult
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	assert.True(t, result.Win)
	assert.Equal(t, 30, result.Payout)
	assert.Equal(t, 120, result.Balance)
	assert.Equal(t, 120, machine.Balance())
}

func TestSpinRejectsOversizedBody(t *testing.T) {
	h := NewServer(testConfig(), newCherryMachine(t), nil, nil).Handler()

	body := `{"wager":"` + strings.Repeat("9", MaxRequestBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/api/v1/slots/spin", strings.NewReader(body))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestCORS(t *testing.T) {
	preflight := func(h http.Handler) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodOptions, "/api/v1/slots/spin", nil)
		req.Header.Set("Origin", "https://play.example")
		req.Header.Set("Access-Control-Request-Method", http.MethodPost)
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, req)
		return rec
	}

	t.Run("listed origin allowed", func(t *testing.T) {
		cfg := testConfig()
		cfg.AllowedOrigins = []string{"https://play.example"}
		rec := preflight(NewServer(cfg, newCherryMachine(t), nil, nil).Handler())

		assert.Equal(t, "https://play.example", rec.Header().Get("Access-Control-Allow-Origin"))
	})

	t.Run("no origins configured", func(t *testing.T) {
		rec := preflight(NewServer(testConfig(), newCherryMachine(t), nil, nil).Handler())

		assert.Empty(t, rec.Header().Get("Access-Control-Allow-Origin"))
	})
}

func TestRateLimitConfigured(t *testing.T) {
	cfg := testConfig()
	cfg.RateLimit = 2
	h := NewServer(cfg, newCherryMachine(t), nil, nil).Handler()

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
		codes = append(codes, rec.Code)
	}

	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

type wireFrame struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func TestWebSocketThroughMiddleware(t *testing.T) {
	machine := newCherryMachine(t)
	gateway := wsgateway.New(machine, wsgateway.DefaultConfig())
	machine.AddPresenter(gateway)
	t.Cleanup(gateway.Close)

	ts := httptest.NewServer(NewServer(testConfig(), machine, gateway, nil).Handler())
	t.Cleanup(ts.Close)

	conn, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(ts.URL, "http")+"/ws", nil)
	require.NoError(t, err)
	defer conn.Close()

	require.NoError(t, conn.WriteJSON(map[string]string{"type": "spin", "wager": "10"}))

	var seen []string
	require.NoError(t, conn.SetReadDeadline(time.Now().Add(5*time.Second)))
	for {
		var frame wireFrame
		require.NoError(t, conn.ReadJSON(&frame))
		seen = append(seen, frame.Type)
		if frame.Type == wsgateway.FrameRoundResolved {
			var result domain.RoundResult
			require.NoError(t, json.Unmarshal(frame.Payload, &result))
			assert.Equal(t, 120, result.Balance)
			break
		}
	}

	assert.Equal(t, []string{
		wsgateway.FrameBalanceChanged,
		wsgateway.FrameRoundStarted,
		wsgateway.FrameBalanceChanged,
		wsgateway.FrameRoundResolved,
	}, seen)
}

func TestEventStreamThroughMiddleware(t *testing.T) {
	machine := newCherryMachine(t)
	hub := sse.NewHub()
	hub.Start()
	t.Cleanup(hub.Stop)

	ts := httptest.NewServer(NewServer(testConfig(), machine, nil, hub).Handler())
	t.Cleanup(ts.Close)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, ts.URL+"/api/v1/events", nil)
	require.NoError(t, err)

	resp, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	scanner := bufio.NewScanner(resp.Body)
	var data string
	for scanner.Scan() {
		if line := scanner.Text(); strings.HasPrefix(line, "data: ") {
			data = strings.TrimPrefix(line, "data: ")
			break
		}
	}

	assert.Contains(t, data, `"type":"connected"`)
	assert.Contains(t, data, `"balance":100`)
}
