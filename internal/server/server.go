package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"

	"github.com/lox/holdemtable/internal/game"
)

// Server exposes the table manager over HTTP and websockets.
type Server struct {
	addr     string
	manager  *TableManager
	upgrader websocket.Upgrader
	logger   *log.Logger

	mu          sync.Mutex
	connections map[*Connection]bool
}

// NewServer creates a server for the tables in manager.
func NewServer(addr string, manager *TableManager, logger *log.Logger) *Server {
	return &Server{
		addr:    addr,
		manager: manager,
		upgrader: websocket.Upgrader{
			// Browser clients may be served from anywhere
			CheckOrigin:     func(r *http.Request) bool { return true },
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
		},
		logger:      logger.WithPrefix("server"),
		connections: make(map[*Connection]bool),
	}
}

// Handler routes /ws, /tables and /health.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /ws", s.handleWebSocket)
	mux.HandleFunc("GET /tables", s.handleTables)
	mux.HandleFunc("GET /health", s.handleHealth)
	return mux
}

// ListenAndServe serves until ctx is cancelled, then shuts down.
func (s *Server) ListenAndServe(ctx context.Context) error {
	srv := &http.Server{Addr: s.addr, Handler: s.Handler(), ReadHeaderTimeout: 10 * time.Second}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("Starting server", "addr", s.addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	s.logger.Info("Shutting down server")
	s.closeConnections()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutting down: %w", err)
	}
	if err := <-errCh; !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) closeConnections() {
	s.mu.Lock()
	defer s.mu.Unlock()
	for conn := range s.connections {
		_ = conn.Close()
	}
}

// handleWebSocket seats the caller at a table, then upgrades. Seating
// errors are reported as plain HTTP errors. The seat is given up when the
// socket closes.
func (s *Server) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	inst, ok := s.manager.Find(q.Get("table"))
	if !ok {
		http.Error(w, "unknown table", http.StatusNotFound)
		return
	}
	seatID := q.Get("seat")
	if seatID == "" {
		http.Error(w, "seat is required", http.StatusBadRequest)
		return
	}

	if err := inst.Runner.Join(game.Seat{ID: seatID, Name: q.Get("name")}); err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	ws, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Error("Failed to upgrade connection", "error", err)
		_ = inst.Runner.Leave(seatID)
		return
	}

	conn := NewConnection(ws, inst.Runner, seatID, s.logger)
	s.mu.Lock()
	s.connections[conn] = true
	total := len(s.connections)
	s.mu.Unlock()
	s.logger.Info("Client connected", "seat", seatID, "table", inst.Config.Name, "total", total)
	conn.Start()

	go func() {
		<-conn.Done()
		s.mu.Lock()
		delete(s.connections, conn)
		s.mu.Unlock()
		if err := inst.Runner.Leave(seatID); err != nil && !errors.Is(err, game.ErrUnknownSeat) {
			s.logger.Warn("Removing disconnected seat", "seat", seatID, "error", err)
		}
		s.logger.Info("Client disconnected", "seat", seatID, "table", inst.Config.Name)
	}()
}

func (s *Server) handleTables(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(s.manager.List()); err != nil {
		s.logger.Error("Failed to write table list", "error", err)
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = fmt.Fprintf(w, "OK")
}
