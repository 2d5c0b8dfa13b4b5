package server

import (
	"encoding/json"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/gorilla/websocket"

	"github.com/FocuswithJustin/CedarVerse/internal/logging"
)

const (
	wsMaxMessageSize = 64 * 1024
	wsReadDeadline   = 120 * time.Second
	wsWriteDeadline  = 10 * time.Second
)

// upgrader accepts any origin; the preview server binds to localhost
// and the socket carries no state beyond the text being previewed.
var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// clientCount tracks connected preview sessions for logging.
var clientCount atomic.Int64

// handleWebSocket upgrades the connection and answers every text
// message with its standardized form. Non-text frames are ignored.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", "error", err)
		return
	}
	defer conn.Close()

	n := clientCount.Add(1)
	logging.WebSocketEvent("client_connected", int(n))
	defer func() {
		logging.WebSocketEvent("client_disconnected", int(clientCount.Add(-1)))
	}()

	conn.SetReadLimit(wsMaxMessageSize)
	conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
	})

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				logging.Error("websocket unexpected close", "error", err)
			}
			return
		}
		conn.SetReadDeadline(time.Now().Add(wsReadDeadline))
		if msgType != websocket.TextMessage {
			continue
		}

		resp, err := json.Marshal(standardizeText(string(data)))
		if err != nil {
			logging.Error("websocket response encode failed", "error", err)
			return
		}
		conn.SetWriteDeadline(time.Now().Add(wsWriteDeadline))
		if err := conn.WriteMessage(websocket.TextMessage, resp); err != nil {
			return
		}
	}
}
