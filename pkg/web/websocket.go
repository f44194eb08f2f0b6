package web

import (
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/factybot/facty/pkg/logger"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// Local demo UI; the API carries no credentials worth protecting.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// handleWebsocket runs a session-backed chat over one connection. Each
// connection gets its own conversation identity, and messages are processed
// strictly in order.
func (s *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logger.Error("web").Err(err).Msg("websocket upgrade failed")
		return
	}
	defer conn.Close()

	identity := "ws:" + uuid.New().String()
	defer s.agent.Reset(identity)

	// Greet immediately so the page has something to show.
	greeting := s.agent.Start(identity)
	if err := conn.WriteMessage(websocket.TextMessage, []byte(greeting)); err != nil {
		return
	}

	for {
		msgType, data, err := conn.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}

		text := string(data)
		s.activity.Record("in", identity, text)
		reply := s.agent.HandleMessage(r.Context(), "web", identity, text)
		s.activity.Record("out", identity, reply)

		if err := conn.WriteMessage(websocket.TextMessage, []byte(reply)); err != nil {
			return
		}
	}
}
