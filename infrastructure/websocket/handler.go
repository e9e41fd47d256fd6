package websocket

import (
	"context"
	"log/slog"
	"net/http"
	"sng-lab/auth"
	"sng-lab/contract"
	"sng-lab/domain"
	"strings"
	"time"

	"github.com/gorilla/websocket"
)

const (
	pongWait     = 60 * time.Second
	pingInterval = 30 * time.Second
)

var upgrader = websocket.Upgrader{
	CheckOrigin:      func(r *http.Request) bool { return true },
	HandshakeTimeout: 10 * time.Second,
}

// Handler upgrades authenticated participants and feeds their frames to the interaction handler.
type Handler struct {
	log          *slog.Logger
	hub          *Hub
	surface      *Surface
	tokens       *auth.TokenIssuer
	interactions contract.InteractionHandler
	opTimeout    time.Duration
}

func NewHandler(log *slog.Logger, hub *Hub, surface *Surface, tokens *auth.TokenIssuer,
	interactions contract.InteractionHandler, opTimeout time.Duration) *Handler {
	return &Handler{
		log:          log,
		hub:          hub,
		surface:      surface,
		tokens:       tokens,
		interactions: interactions,
		opTimeout:    opTimeout,
	}
}

// ServeHTTP expects ?channel=<id> and a participant token, either as ?token= or a bearer header.
func (h *Handler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	channel := r.URL.Query().Get("channel")
	if channel == "" {
		http.Error(w, "Missing required query parameter: channel", http.StatusBadRequest)
		return
	}
	token := r.URL.Query().Get("token")
	if token == "" {
		token = strings.TrimPrefix(r.Header.Get("Authorization"), "Bearer ")
	}
	if token == "" {
		http.Error(w, "Missing token", http.StatusUnauthorized)
		return
	}
	claims, err := h.tokens.ValidateToken(token)
	if err != nil {
		h.log.Debug("Rejected handshake", "error", err)
		http.Error(w, "Invalid token", http.StatusUnauthorized)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.log.Warn("WebSocket upgrade failed", "error", err)
		return
	}

	participant := domain.Participant{
		ID:      domain.Identity(claims.UserID),
		Name:    claims.Name,
		Roles:   claims.Roles,
		Channel: domain.ChannelID(channel),
	}
	wsConn := NewConnection(conn, participant)
	h.hub.Register(wsConn)
	h.log.Info("Participant connected", "participant", participant.ID, "channel", participant.Channel)

	go h.handleConnection(wsConn)
}

func (h *Handler) handleConnection(conn *Connection) {
	p := conn.Participant()
	defer func() {
		h.hub.Unregister(conn)
		_ = conn.Close()
		h.log.Info("Participant disconnected", "participant", p.ID)
	}()

	if err := conn.conn.SetReadDeadline(time.Now().Add(pongWait)); err != nil {
		h.log.Debug("Failed to set read deadline", "error", err)
		return
	}
	conn.conn.SetPongHandler(func(string) error {
		return conn.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	go func() {
		ticker := time.NewTicker(pingInterval)
		defer ticker.Stop()
		for {
			select {
			case <-ticker.C:
				if err := conn.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(10*time.Second)); err != nil {
					return
				}
			case <-conn.Done():
				return
			}
		}
	}()

	for {
		_, data, err := conn.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				h.log.Debug("Unexpected close", "participant", p.ID, "error", err)
			}
			return
		}
		in, err := DecodeInbound(data)
		if err != nil {
			_ = conn.WriteJSON(Outbound{Type: FrameError, Text: err.Error(), At: time.Now().UTC()})
			continue
		}
		h.dispatch(p, in)
	}
}

func (h *Handler) dispatch(p domain.Participant, in Inbound) {
	ctx, cancel := context.WithTimeout(context.Background(), h.opTimeout)
	defer cancel()
	switch in.Type {
	case FrameCommand:
		h.interactions.HandleCommand(ctx, p, strings.TrimSpace(in.Text))
	case FrameInteract:
		h.interactions.HandleControl(ctx, p, in.Control)
	case FrameMessage:
		h.interactions.HandleMessage(ctx, h.surface.PostUserMessage(p, in.Text))
	}
}
