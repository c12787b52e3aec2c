package websocket

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

// Server represents the WebSocket server
type Server struct {
	port    string
	server  *http.Server
	hub     *Hub
	records Records
	origins map[string]bool
	logger  *log.Logger

	ctx    context.Context
	cancel context.CancelFunc

	upgrader websocket.Upgrader
}

// NewServer creates a new WebSocket server. An origin list containing "*"
// or nothing at all accepts every origin.
func NewServer(port string, hub *Hub, records Records, origins []string, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.New(log.Writer(), "[ws] ", log.LstdFlags)
	}
	ctx, cancel := context.WithCancel(context.Background())

	s := &Server{
		port:    port,
		hub:     hub,
		records: records,
		origins: make(map[string]bool, len(origins)),
		logger:  logger,
		ctx:     ctx,
		cancel:  cancel,
	}
	for _, o := range origins {
		s.origins[o] = true
	}
	s.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin:     s.checkOrigin,
	}
	return s
}

// Handler returns the WebSocket routes
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws/records", s.handleRecords)
	mux.HandleFunc("/ws/health", s.handleHealth)
	return mux
}

// Start starts the WebSocket server
func (s *Server) Start() error {
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%s", s.port),
		Handler: s.Handler(),
	}

	s.logger.Printf("WebSocket server listening on :%s", s.port)
	return s.server.ListenAndServe()
}

func (s *Server) checkOrigin(r *http.Request) bool {
	origin := r.Header.Get("Origin")
	if origin == "" || len(s.origins) == 0 || s.origins["*"] {
		return true
	}
	return s.origins[origin]
}

// handleRecords opens a records session
func (s *Server) handleRecords(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.logger.Printf("Failed to upgrade connection: %v", err)
		return
	}

	client := NewClient(uuid.NewString(), conn, s.hub, s.records, s.logger)
	s.hub.Register(client)

	go client.WritePump(s.ctx)
	go client.ReadPump(s.ctx)
}

// handleHealth returns WebSocket server health status
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(map[string]interface{}{
		"status":  "healthy",
		"clients": s.hub.ClientCount(),
	})
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.cancel()
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
