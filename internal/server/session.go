package server

import (
	"encoding/json"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/batonquest/server/internal/game"
)

// Request is one client command frame.
type Request struct {
	ID      string          `json:"id,omitempty"`
	Command string          `json:"command"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Response answers exactly one Request.
type Response struct {
	Type    string     `json:"type"`
	ID      string     `json:"id,omitempty"`
	Command string     `json:"command"`
	OK      bool       `json:"ok"`
	Error   *ErrorInfo `json:"error,omitempty"`
	Data    any        `json:"data,omitempty"`
}

// ErrorInfo carries a machine-readable code plus a human message.
type ErrorInfo struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// EventFrame is a server-pushed notification, outside request flow.
type EventFrame struct {
	Type    string `json:"type"`
	Event   string `json:"event"`
	Message string `json:"message"`
}

// session is one WebSocket connection. A session handles commands
// sequentially; a player may hold several sessions at once, and the
// server's per-player locks keep their commands from interleaving
// inside an engine operation.
type session struct {
	id   string
	srv  *Server
	conn *websocket.Conn

	playerID atomic.Int64 // 0 until login

	writeMu sync.Mutex
}

func newSession(srv *Server, conn *websocket.Conn) *session {
	return &session{
		id:   uuid.NewString(),
		srv:  srv,
		conn: conn,
	}
}

// run reads commands until the connection drops.
func (s *session) run() {
	defer s.conn.Close()

	for {
		var req Request
		if err := s.conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				s.srv.log.Warn("session read failed", "session", s.id, "error", err)
			}
			return
		}

		resp := s.srv.dispatch(s, &req)
		if err := s.writeJSON(resp); err != nil {
			s.srv.log.Warn("session write failed", "session", s.id, "error", err)
			return
		}
	}
}

func (s *session) boundPlayer() int64 {
	return s.playerID.Load()
}

func (s *session) bind(playerID int64) {
	s.playerID.Store(playerID)
}

func (s *session) sendEvent(e game.Event) error {
	return s.writeJSON(EventFrame{
		Type:    "event",
		Event:   string(e.Type),
		Message: e.Message,
	})
}

func (s *session) writeJSON(v any) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()
	// Wall clock, not the game clock: socket deadlines are real time.
	if timeout := s.srv.cfg.WriteTimeout(); timeout > 0 {
		s.conn.SetWriteDeadline(time.Now().Add(timeout))
	}
	return s.conn.WriteJSON(v)
}

func (s *session) close() {
	s.conn.Close()
}
