// Package relay implements the HTTP + WebSocket endpoint set that
// binds runners and viewers to sessions (spec.md 4.3.1-4.3.3, 6, 7),
// following the teacher's internal/ws.Router + internal/auth split:
// a Server holds the session registry and auth checker, upgrades
// requests, and runs the same read/write-pump pair the teacher's
// internal/ws.Client used, adapted to runner/viewer roles instead of
// turn-taking controllers.
package relay

import (
	"io/fs"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"github.com/relaylabs/ptyshare/internal/auth"
	"github.com/relaylabs/ptyshare/internal/session"
)

// closeSessionNotFound is the non-standard WebSocket close code used
// when a viewer addresses an unknown session id (spec.md 5).
const closeSessionNotFound = 4004

// Server wires the sessions registry, auth checker, and static viewer
// asset together behind an http.Handler.
type Server struct {
	sessions *session.Manager
	auth     *auth.Checker
	static   fs.FS
	logger   *log.Logger

	upgrader websocket.Upgrader
}

// New creates a relay Server. enableDeflate turns on the WebSocket
// per-message-deflate extension on every upgrade, which is how the
// "deflate" compression mode is realized (it has no codec of its own).
func New(sessions *session.Manager, checker *auth.Checker, static fs.FS, enableDeflate bool, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}
	return &Server{
		sessions: sessions,
		auth:     checker,
		static:   static,
		logger:   logger,
		upgrader: websocket.Upgrader{
			ReadBufferSize:    4096,
			WriteBufferSize:   4096,
			EnableCompression: enableDeflate,
			CheckOrigin:       func(r *http.Request) bool { return true },
		},
	}
}

// Handler returns the complete routed HTTP handler, following the
// teacher's http.ServeMux + method-pattern registration style.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /runner", s.handleRunner)
	mux.HandleFunc("GET /ws", s.handleViewer)
	files := http.FileServer(http.FS(s.static))
	mux.HandleFunc("GET /", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/" {
			http.ServeFileFS(w, r, s.static, "viewer.html")
			return
		}
		files.ServeHTTP(w, r)
	})
	return mux
}

func (s *Server) handleRunner(w http.ResponseWriter, r *http.Request) {
	if !s.auth.Authenticate(r) {
		s.logger.Printf("auth: rejected /runner from %s: bad or missing token", r.RemoteAddr)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id := r.URL.Query().Get("id")

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("runner upgrade failed: %v", err)
		return
	}

	peer := session.NewPeer(uuid.New().String())
	sess, err := s.sessions.CreateRunnerSession(id, peer)
	if err != nil {
		s.logger.Printf("runner attach failed for id=%q: %v", id, err)
		conn.Close()
		return
	}

	c := newConn(conn, peer, s.logger)
	go c.writePump()
	c.readRunnerLoop(s.sessions, sess)
}

func (s *Server) handleViewer(w http.ResponseWriter, r *http.Request) {
	if !s.auth.Authenticate(r) {
		s.logger.Printf("auth: rejected /ws from %s: bad or missing token", r.RemoteAddr)
		http.Error(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	id := r.URL.Query().Get("id")
	if id == "" {
		http.Error(w, "missing id", http.StatusBadRequest)
		return
	}

	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("viewer upgrade failed: %v", err)
		return
	}

	peer := session.NewPeer(uuid.New().String())
	sess, err := s.sessions.AttachViewer(id, peer)
	if err != nil {
		conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(closeSessionNotFound, "session not found"),
			deadlineNow())
		conn.Close()
		return
	}

	c := newConn(conn, peer, s.logger)
	go c.writePump()
	c.readViewerLoop(s.sessions, sess)
}
