package feed

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"

	ws "github.com/triviabank/trivia-api/pkg/http/ws"
)

// Handler serves the read-only question event stream.
type Handler struct {
	hub      *ws.Hub
	upgrader *websocket.Upgrader
	logger   zerolog.Logger
}

// NewHandler creates the /ws/questions handler.
func NewHandler(hub *ws.Hub, upgrader *websocket.Upgrader, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:      hub,
		upgrader: upgrader,
		logger:   logger.With().Str("component", "feed_ws").Logger(),
	}
}

// HandleWebSocket upgrades the request and streams question events until the client leaves.
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("WebSocket upgrade failed")
		return
	}

	wsConn := ws.NewConnection(conn, h.logger)
	id := h.hub.Register(wsConn)
	go wsConn.WritePump()

	wsConn.ReadPump(func(msg ws.Message) error {
		return h.handleMessage(wsConn, msg)
	})

	h.hub.Unregister(id)
}

func (h *Handler) handleMessage(conn *ws.Connection, msg ws.Message) error {
	switch msg.Type {
	case ws.TypePing:
		return conn.Send(ws.Message{Type: ws.TypePong, RequestID: msg.RequestID})
	default:
		raw, err := json.Marshal(ws.ErrorPayload{Code: "unknown_message_type", Message: "Unknown message type: " + msg.Type})
		if err != nil {
			return err
		}
		return conn.Send(ws.Message{Type: ws.TypeError, Payload: raw, RequestID: msg.RequestID})
	}
}
