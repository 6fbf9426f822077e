package wsgateway

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/osse101/SlotMachine_Go/internal/domain"
	"github.com/osse101/SlotMachine_Go/internal/logger"
	"github.com/osse101/SlotMachine_Go/internal/metrics"
	"github.com/osse101/SlotMachine_Go/internal/slots"
	"github.com/osse101/SlotMachine_Go/internal/validation"
)

// Gateway serves the WebSocket play channel and mirrors machine output to
// every connected page. It implements slots.Presenter.
type Gateway struct {
	service  slots.Service
	cfg      Config
	upgrader websocket.Upgrader
	frames   validation.SchemaValidator

	mu      sync.Mutex
	clients map[*client]struct{}
	closed  bool
	wg      sync.WaitGroup
}

var (
	_ http.Handler    = (*Gateway)(nil)
	_ slots.Presenter = (*Gateway)(nil)
)

// New creates a gateway driving service
func New(service slots.Service, cfg Config) *Gateway {
	g := &Gateway{
		service: service,
		cfg:     cfg.withDefaults(),
		frames:  validation.MustNewSchemaValidator(),
		clients: make(map[*client]struct{}),
	}
	g.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     g.checkOrigin,
	}
	return g
}

// checkOrigin allows listed origins, any origin for "*", and same-origin
// or non-browser clients otherwise
func (g *Gateway) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" {
		return true
	}

	for _, allowed := range g.cfg.AllowedOrigins {
		if allowed == "*" || strings.EqualFold(allowed, origin) {
			return true
		}
	}

	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return strings.EqualFold(u.Host, r.Host)
}

// ServeHTTP upgrades the request and starts the connection pumps
func (g *Gateway) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := g.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// Upgrade has already written the HTTP error
		slog.Warn(LogMsgUpgradeFailed, "error", err, "origin", r.Header.Get("Origin"))
		return
	}

	id := uuid.NewString()
	c := &client{
		id:      id,
		gateway: g,
		conn:    conn,
		send:    make(chan []byte, SendBufferSize),
		// Spins outlive the upgrade request, so the connection carries its own context
		ctx: logger.WithRequestID(context.Background(), id),
	}

	if !g.register(c) {
		_ = conn.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseGoingAway, "shutting down"))
		_ = conn.Close()
		return
	}
	logger.FromContext(c.ctx).Info(LogMsgClientConnected, "remote_addr", r.RemoteAddr)

	go c.writePump()
	go c.readPump()
}

// register admits c and accounts for its two pumps under the same lock Close
// takes, so Close either refuses c or waits for it
func (g *Gateway) register(c *client) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.closed {
		return false
	}
	g.clients[c] = struct{}{}
	g.wg.Add(2)
	metrics.LiveConnections.WithLabelValues(metrics.TransportWebSocket).Inc()
	return true
}

// unregister removes c and closes its send channel, which stops its write pump
func (g *Gateway) unregister(c *client) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.removeLocked(c)
}

func (g *Gateway) removeLocked(c *client) {
	if _, ok := g.clients[c]; !ok {
		return
	}
	delete(g.clients, c)
	close(c.send)
	metrics.LiveConnections.WithLabelValues(metrics.TransportWebSocket).Dec()
}

// ClientCount returns the number of connected pages
func (g *Gateway) ClientCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.clients)
}

// Close disconnects every client and waits for their pumps to exit
func (g *Gateway) Close() {
	g.mu.Lock()
	g.closed = true
	for c := range g.clients {
		g.removeLocked(c)
	}
	g.mu.Unlock()

	g.wg.Wait()
}

// broadcast queues frame for every client, dropping any whose buffer is full
func (g *Gateway) broadcast(frame OutboundFrame) {
	msg, err := json.Marshal(frame)
	if err != nil {
		slog.Error(LogMsgEncodeFailed, "type", frame.Type, "error", err)
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	for c := range g.clients {
		select {
		case c.send <- msg:
		default:
			slog.Warn(LogMsgClientTooSlow, "client_id", c.id)
			g.removeLocked(c)
		}
	}
}

// reply queues frame for a single client
func (g *Gateway) reply(c *client, frame OutboundFrame) {
	msg, err := json.Marshal(frame)
	if err != nil {
		slog.Error(LogMsgEncodeFailed, "type", frame.Type, "error", err)
		return
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	if _, ok := g.clients[c]; !ok {
		return
	}
	select {
	case c.send <- msg:
	default:
		slog.Warn(LogMsgClientTooSlow, "client_id", c.id)
		g.removeLocked(c)
	}
}

// handle dispatches one inbound frame
func (g *Gateway) handle(c *client, data []byte) {
	if err := g.frames.ValidateBytes(data, validation.SchemaInboundFrame); err != nil {
		logger.FromContext(c.ctx).Debug(LogMsgFrameRejected, "error", err)
		g.reply(c, OutboundFrame{Type: FrameError, Payload: MessagePayload{Message: ErrMsgMalformedFrame}})
		return
	}

	var in InboundFrame
	if err := json.Unmarshal(data, &in); err != nil {
		g.reply(c, OutboundFrame{Type: FrameError, Payload: MessagePayload{Message: ErrMsgMalformedFrame}})
		return
	}

	switch in.Type {
	case FrameSpin:
		g.spin(c, in.Wager)
	case FrameState:
		g.reply(c, g.state())
	default:
		g.reply(c, OutboundFrame{Type: FrameError, Payload: MessagePayload{Message: ErrMsgUnknownFrame}})
	}
}

// spin submits the wager. Accepted rounds and validation failures reach every
// page through the presenter callbacks; only a busy machine is answered here.
func (g *Gateway) spin(c *client, wager slots.WagerInput) {
	_, err := g.service.SubmitWagerInput(c.ctx, wager.String())
	switch {
	case err == nil:
	case errors.Is(err, domain.ErrRoundInProgress):
		g.reply(c, OutboundFrame{Type: FrameError, Payload: MessagePayload{Message: slots.MsgRoundInProgress}})
	case errors.Is(err, domain.ErrInvalidWager), errors.Is(err, domain.ErrDepleted):
	default:
		logger.FromContext(c.ctx).Error(LogMsgSpinFailed, "error", err)
		g.reply(c, OutboundFrame{Type: FrameError, Payload: MessagePayload{Message: ErrMsgUnavailable}})
	}
}

func (g *Gateway) state() OutboundFrame {
	return OutboundFrame{
		Type: FrameStateReply,
		Payload: StatePayload{
			Snapshot: g.service.Snapshot(),
			Paytable: g.service.Paytable(),
		},
	}
}

// OnBalanceChanged implements slots.Presenter
func (g *Gateway) OnBalanceChanged(balance int) {
	g.broadcast(OutboundFrame{Type: FrameBalanceChanged, Payload: BalancePayload{Balance: balance}})
}

// OnRoundStarted implements slots.Presenter
func (g *Gateway) OnRoundStarted() {
	g.broadcast(OutboundFrame{Type: FrameRoundStarted, Payload: MessagePayload{Message: slots.MsgGoodLuck}})
}

// OnRoundResolved implements slots.Presenter
func (g *Gateway) OnRoundResolved(result domain.RoundResult) {
	g.broadcast(OutboundFrame{Type: FrameRoundResolved, Payload: result})
}

// OnInvalidWager implements slots.Presenter
func (g *Gateway) OnInvalidWager(reason string) {
	g.broadcast(OutboundFrame{Type: FrameInvalidWager, Payload: MessagePayload{Message: reason}})
}

// OnDepleted implements slots.Presenter
func (g *Gateway) OnDepleted() {
	g.broadcast(OutboundFrame{Type: FrameDepleted, Payload: MessagePayload{Message: slots.MsgGameOver}})
}
