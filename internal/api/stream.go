package api

import (
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ambergrove/hearthome/internal/engine"
)

const streamWriteTimeout = 5 * time.Second

// streamHub fans tick events out to websocket subscribers. Slow or broken
// connections are dropped rather than allowed to stall a tick.
type streamHub struct {
	mu       sync.Mutex
	conns    map[*websocket.Conn]struct{}
	upgrader websocket.Upgrader
}

func newStreamHub() *streamHub {
	return &streamHub{
		conns: make(map[*websocket.Conn]struct{}),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// Observation stream; same stance as the GET endpoints.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

func (s *Server) handleStream(w http.ResponseWriter, r *http.Request) {
	conn, err := s.stream.upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Warn("stream upgrade failed", "error", err)
		return
	}

	s.stream.mu.Lock()
	s.stream.conns[conn] = struct{}{}
	s.stream.mu.Unlock()

	// Reader loop only to detect close; clients do not send messages.
	go func() {
		defer s.stream.drop(conn)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()
}

func (h *streamHub) broadcast(ev engine.Event) {
	h.mu.Lock()
	defer h.mu.Unlock()

	for conn := range h.conns {
		conn.SetWriteDeadline(time.Now().Add(streamWriteTimeout))
		if err := conn.WriteJSON(ev); err != nil {
			conn.Close()
			delete(h.conns, conn)
		}
	}
}

func (h *streamHub) drop(conn *websocket.Conn) {
	h.mu.Lock()
	defer h.mu.Unlock()
	conn.Close()
	delete(h.conns, conn)
}
