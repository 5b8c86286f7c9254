package rest

import (
	"context"
	"fmt"
	"net/http"

	"github.com/fortuna/gridiron/internal/cache"
	"github.com/fortuna/gridiron/internal/publisher"
	"github.com/fortuna/gridiron/internal/store"
	"github.com/gorilla/mux"
)

// Server represents the REST API server
type Server struct {
	port    string
	server  *http.Server
	handler *Handler
}

// NewServer creates a new REST API server
func NewServer(port string, db *store.Database, redisCache *cache.RedisCache, redisPublisher *publisher.RedisPublisher) *Server {
	handler := NewHandler(db, redisCache, redisPublisher)

	router := mux.NewRouter()

	// Apply middleware
	router.Use(RecoveryMiddleware)
	router.Use(LoggingMiddleware)
	router.Use(CORSMiddleware)

	// Health check
	router.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	// API v1 routes
	api := router.PathPrefix("/api/v1").Subrouter()

	// Performances
	api.HandleFunc("/performances/top", handler.GetTopPerformances).Methods("GET")
	api.HandleFunc("/performances/leaderboard", handler.GetLeaderboard).Methods("GET")

	// Recruit reports
	api.HandleFunc("/recruit-reports", handler.GetRecruitReports).Methods("GET")
	api.HandleFunc("/recruit-reports/{recruitID}", handler.PutRecruitReport).Methods("PUT")

	// Recruits
	api.HandleFunc("/recruits", handler.GetRecruits).Methods("GET")

	// Players
	api.HandleFunc("/players", handler.GetPlayers).Methods("GET")
	api.HandleFunc("/players", handler.CreatePlayer).Methods("POST")
	api.HandleFunc("/players/{playerID}", handler.GetPlayer).Methods("GET")

	// Games
	api.HandleFunc("/games", handler.GetGamesByDate).Methods("GET")
	api.HandleFunc("/games", handler.CreateGame).Methods("POST")
	api.HandleFunc("/games/{gameID}", handler.GetGame).Methods("GET")
	api.HandleFunc("/games/{gameID}/players/{playerID}/stats", handler.GetStatEvents).Methods("GET")
	api.HandleFunc("/games/{gameID}/players/{playerID}/stats", handler.RecordStatEvents).Methods("POST")
	api.HandleFunc("/games/{gameID}/players/{playerID}/grade", handler.UpsertGrade).Methods("PUT")

	return &Server{
		port:    port,
		handler: handler,
		server: &http.Server{
			Addr:    fmt.Sprintf(":%s", port),
			Handler: router,
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
