package api

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"time"

	"freight-rates-api/cache"
	"freight-rates-api/database"
	"freight-rates-api/database/ports"
	"freight-rates-api/database/rates"
	"freight-rates-api/database/regions"
)

// Server handles HTTP API requests
type Server struct {
	db       *database.Database
	regions  *regions.Repository
	ports    *ports.Repository
	rates    *rates.Repository
	cache    *cache.RedisClient // nil disables response caching
	cacheTTL time.Duration

	httpServer *http.Server
}

// NewServer creates a new API server instance
func NewServer(db *database.Database, regionRepo *regions.Repository, portRepo *ports.Repository, rateRepo *rates.Repository, redisCache *cache.RedisClient, cacheTTL time.Duration) *Server {
	return &Server{
		db:       db,
		regions:  regionRepo,
		ports:    portRepo,
		rates:    rateRepo,
		cache:    redisCache,
		cacheTTL: cacheTTL,
	}
}

// routes builds the request multiplexer with all registered handlers
func (s *Server) routes() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /rates", s.handleGetRates)
	mux.HandleFunc("GET /health", s.handleHealth)

	return s.corsMiddleware(s.loggingMiddleware(mux))
}

// Start starts the HTTP server on the specified port
func (s *Server) Start(port int) error {
	serverAddr := fmt.Sprintf("0.0.0.0:%d", port)
	s.httpServer = &http.Server{
		Addr:              serverAddr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	log.Printf("🚀 API Server starting on %s", serverAddr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server, draining in-flight requests
func (s *Server) Stop(ctx context.Context) error {
	if s.httpServer == nil {
		return nil
	}
	return s.httpServer.Shutdown(ctx)
}

// Middleware
func (s *Server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %v", r.Method, r.URL.Path, time.Since(start))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if err := s.db.Ping(); err != nil {
		log.Printf("⚠️  health: database ping failed: %v", err)
		respondWithJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
		return
	}
	respondWithJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
