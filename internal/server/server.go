// Package server exposes the game engine over a WebSocket transport.
// Clients exchange JSON frames: one request per command, one response
// per request, plus server-pushed event frames.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/batonquest/server/internal/config"
	"github.com/batonquest/server/internal/game"
	"github.com/batonquest/server/internal/gameclock"
	"github.com/batonquest/server/internal/player"
)

// AccountStore is the slice of persistence the server needs before a
// session is bound to a player. Satisfied by *database.Database.
type AccountStore interface {
	CreatePlayer(name string, now time.Time) (*player.Player, error)
	GetPlayerByName(name string) (*player.Player, error)
}

// Server accepts WebSocket connections and routes commands into the
// engine. It also implements game.Notifier, fanning events out to the
// sessions of the player they concern.
type Server struct {
	cfg      config.ServerConfig
	accounts AccountStore
	clock    gameclock.Clock
	log      *slog.Logger

	engine   *game.Engine
	upgrader websocket.Upgrader
	httpSrv  *http.Server

	mu       sync.RWMutex
	sessions map[string]*session // session ID -> session

	locksMu     sync.Mutex
	playerLocks map[int64]*sync.Mutex // player ID -> command lock
}

// NewServer builds an unstarted server. The engine is attached with
// SetEngine after construction so it can be wired with the server as
// its notifier.
func NewServer(cfg config.ServerConfig, accounts AccountStore, clock gameclock.Clock, log *slog.Logger) *Server {
	s := &Server{
		cfg:         cfg,
		accounts:    accounts,
		clock:       clock,
		log:         log,
		sessions:    make(map[string]*session),
		playerLocks: make(map[int64]*sync.Mutex),
	}
	s.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			return cfg.IsOriginAllowed(r.Header.Get("Origin"), r.Host)
		},
	}
	return s
}

// SetEngine attaches the game engine. Must be called before Start.
func (s *Server) SetEngine(engine *game.Engine) {
	s.engine = engine
}

// Handler returns the HTTP handler serving the WebSocket endpoint.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", s.handleWebSocket)
	return mux
}

// Start listens on the configured address and blocks until Shutdown or
// listener failure.
func (s *Server) Start() error {
	if s.engine == nil {
		return fmt.Errorf("engine not set")
	}
	s.httpSrv = &http.Server{
		Addr:    s.cfg.ListenAddr,
		Handler: s.Handler(),
	}
	s.log.Info("server listening", "addr", s.cfg.ListenAddr)
	if err := s.httpSrv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("listener failed: %w", err)
	}
	return nil
}

// Shutdown stops the listener and closes every open session.
func (s *Server) Shutdown(ctx context.Context) error {
	s.mu.Lock()
	for _, sess := range s.sessions {
		sess.close()
	}
	s.sessions = make(map[string]*session)
	s.mu.Unlock()

	if s.httpSrv == nil {
		return nil
	}
	return s.httpSrv.Shutdown(ctx)
}

func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.log.Warn("websocket upgrade rejected", "remote", r.RemoteAddr, "error", err)
		return
	}
	if s.cfg.MaxMessageSize > 0 {
		conn.SetReadLimit(s.cfg.MaxMessageSize)
	}

	sess := newSession(s, conn)
	s.addSession(sess)
	s.log.Info("session opened", "session", sess.id, "remote", r.RemoteAddr)

	go func() {
		sess.run()
		s.removeSession(sess)
		s.log.Info("session closed", "session", sess.id)
	}()
}

func (s *Server) addSession(sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[sess.id] = sess
}

func (s *Server) removeSession(sess *session) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.sessions, sess.id)
}

// lockPlayers serializes engine operations for the given players, who
// may each be connected through several sessions. Locks are taken in
// ascending ID order so a duel cannot deadlock against the opponent's
// own commands. Zero and repeated IDs are skipped. The returned func
// releases every lock taken.
func (s *Server) lockPlayers(ids ...int64) func() {
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })

	var locked []*sync.Mutex
	var prev int64
	for _, id := range ids {
		if id == 0 || id == prev {
			continue
		}
		prev = id
		mu := s.playerLock(id)
		mu.Lock()
		locked = append(locked, mu)
	}
	return func() {
		for i := len(locked) - 1; i >= 0; i-- {
			locked[i].Unlock()
		}
	}
}

func (s *Server) playerLock(id int64) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	mu, ok := s.playerLocks[id]
	if !ok {
		mu = &sync.Mutex{}
		s.playerLocks[id] = mu
	}
	return mu
}

// Notify implements game.Notifier: the event is pushed to every session
// logged in as the player it concerns.
func (s *Server) Notify(e game.Event) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, sess := range s.sessions {
		if sess.boundPlayer() == e.PlayerID {
			if err := sess.sendEvent(e); err != nil {
				s.log.Warn("event delivery failed", "session", sess.id, "error", err)
			}
		}
	}
}
