package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gorilla/mux"
)

const (
	serviceName    = "prepstats"
	serviceVersion = "1.0.0"
)

// Server represents the REST API server
type Server struct {
	port   string
	server *http.Server
}

// NewRouter builds the API routes
func NewRouter(handler *Handler, submissions *SubmissionHandler, corsOrigins []string) *mux.Router {
	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(mux.MiddlewareFunc(CORSMiddleware(corsOrigins)))

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Records
	api.HandleFunc("/records", handler.GetRecords).Methods("GET")
	api.HandleFunc("/columns", handler.GetColumns).Methods("GET")

	// Metadata
	api.HandleFunc("/schools", handler.GetSchools).Methods("GET")
	api.HandleFunc("/sports", handler.GetSports).Methods("GET")
	api.HandleFunc("/seasons", handler.GetSeasons).Methods("GET")

	// Submissions
	if submissions != nil {
		api.HandleFunc("/submissions/preview", submissions.HandlePreview).Methods("POST", "OPTIONS")
		api.HandleFunc("/submissions", submissions.HandleCreate).Methods("POST", "OPTIONS")
		api.HandleFunc("/submissions", submissions.HandleList).Methods("GET")
		api.HandleFunc("/submissions/{id:[0-9]+}/review", submissions.HandleReview).Methods("POST", "OPTIONS")
	}

	return router
}

// NewServer creates a new REST API server
func NewServer(port string, handler *Handler, submissions *SubmissionHandler, corsOrigins []string) *Server {
	return &Server{
		port: port,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: NewRouter(handler, submissions, corsOrigins),
		},
	}
}

// Start starts the REST API server
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	if s.server != nil {
		return s.server.Shutdown(ctx)
	}
	return nil
}
