package httpserver

import (
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/neboloop/nayru/internal/logging"
)

// statusPushInterval governs how often /ws/status pushes a fresh snapshot
// to a connected client, independent of the 20ms playback poll interval.
const statusPushInterval = 200 * time.Millisecond

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// handleStatusWS upgrades to a WebSocket and pushes the engine's Status
// snapshot on connect and whenever it changes (checked on an interval), so a
// UI can follow playback state without polling GET /status itself. The
// snapshot carries no sentence index.
func (s *Server) handleStatusWS(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		logging.Errorf("httpserver: websocket upgrade: %v", err)
		return
	}
	defer conn.Close()

	ticker := time.NewTicker(statusPushInterval)
	defer ticker.Stop()

	last := s.ctrl.Engine().Status()
	if err := conn.WriteJSON(last); err != nil {
		return
	}

	for range ticker.C {
		current := s.ctrl.Engine().Status()
		if current == last {
			continue
		}
		last = current
		if err := conn.WriteJSON(current); err != nil {
			return
		}
	}
}
