package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"

	"github.com/jonathan/skill-extractor/internal/config"
	"github.com/jonathan/skill-extractor/internal/ingestion"
	"github.com/jonathan/skill-extractor/internal/server/middleware"
	"github.com/jonathan/skill-extractor/internal/server/ratelimit"
	"github.com/jonathan/skill-extractor/internal/similarity"
	"github.com/jonathan/skill-extractor/internal/skills"
	"github.com/jonathan/skill-extractor/internal/types"
)

// maxBodyBytes bounds JSON request bodies.
const maxBodyBytes = 4 << 20

// AnalysisStore persists saved analyses. *db.DB implements it.
type AnalysisStore interface {
	SaveAnalysis(ctx context.Context, a *types.Analysis) error
	GetAnalysis(ctx context.Context, id uuid.UUID) (*types.Analysis, error)
	ListAnalyses(ctx context.Context, owner string, limit, offset int) ([]types.Analysis, error)
	DeleteAnalysis(ctx context.Context, id uuid.UUID) (bool, error)
}

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	skills      *skills.Database
	store       AnalysisStore
	embedder    similarity.Embedder
	ingest      *ingestion.URLOptions
	topK        int
	rateLimiter *ratelimit.Limiter
	jwtService  *JWTService
}

// Config holds server configuration
type Config struct {
	Port   int
	Skills *skills.Database
	// Store is optional; without it the /analyses endpoints answer 503.
	Store AnalysisStore
	// Embedder is optional; without it /similarity answers 503.
	Embedder similarity.Embedder
	Ingest   *ingestion.URLOptions
	TopK     int
	// JWT enables bearer auth on /analyses when set.
	JWT       *config.JWTConfig
	RateLimit *ratelimit.Config
}

// New creates a new server instance
func New(cfg Config) (*Server, error) {
	if cfg.Skills == nil {
		return nil, fmt.Errorf("skill database is required")
	}
	if cfg.TopK <= 0 {
		cfg.TopK = similarity.DefaultTopK
	}
	if cfg.RateLimit == nil {
		cfg.RateLimit = ratelimit.LoadConfig()
	}

	s := &Server{
		skills:      cfg.Skills,
		store:       cfg.Store,
		embedder:    cfg.Embedder,
		ingest:      cfg.Ingest,
		topK:        cfg.TopK,
		rateLimiter: ratelimit.NewLimiter(cfg.RateLimit),
	}
	if cfg.JWT != nil {
		s.jwtService = NewJWTService(cfg.JWT)
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /health", s.handleHealth)
	mux.HandleFunc("GET /skills", s.handleSkills)

	// Stateless analysis endpoints
	mux.HandleFunc("POST /clean", s.handleClean)
	mux.HandleFunc("POST /extract", s.handleExtract)
	mux.HandleFunc("POST /normalize", s.handleNormalize)
	mux.HandleFunc("POST /gap", s.handleGap)
	mux.HandleFunc("POST /recommend", s.handleRecommend)
	mux.HandleFunc("POST /similarity", s.handleSimilarity)

	// Saved analyses
	mux.Handle("POST /analyses", s.withAuth(s.handleCreateAnalysis))
	mux.Handle("POST /analyses/stream", s.withAuth(s.handleStreamAnalysis))
	mux.Handle("GET /analyses", s.withAuth(s.handleListAnalyses))
	mux.Handle("GET /analyses/{id}", s.withAuth(s.handleGetAnalysis))
	mux.Handle("DELETE /analyses/{id}", s.withAuth(s.handleDeleteAnalysis))
	mux.Handle("GET /analyses/{id}/export", s.withAuth(s.handleExportAnalysis))

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.withRateLimit(s.withLogging(s.withCORS(mux))),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 300 * time.Second, // URL ingestion may render pages in a browser
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// Handler returns the fully wrapped HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

// Start begins listening for requests and blocks until SIGINT or SIGTERM.
func (s *Server) Start() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		log.Printf("Server starting on %s", s.httpServer.Addr)
		if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		s.rateLimiter.Stop()
		return fmt.Errorf("server error: %w", err)
	case <-stop:
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.rateLimiter.Stop()
	log.Println("Server stopped")
	return nil
}

// Close releases background resources without serving. Used by tests.
func (s *Server) Close() {
	s.rateLimiter.Stop()
}

// withAuth requires a bearer token when JWT is configured; otherwise requests pass through
// with an empty owner.
func (s *Server) withAuth(next http.HandlerFunc) http.Handler {
	if s.jwtService == nil {
		return next
	}
	return middleware.AuthMiddleware(s.jwtService.AsTokenValidator())(next)
}

// owner returns the authenticated owner, or "" when auth is disabled.
func (s *Server) owner(r *http.Request) string {
	owner, err := middleware.GetOwner(r)
	if err != nil {
		return ""
	}
	return owner
}

// withCORS adds CORS headers
func (s *Server) withCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.URL.Path, r.Method)
		s.setRateLimitHeaders(w, info)
		if !allowed {
			s.rateLimitResponse(w, info)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// withLogging adds request logging
func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		log.Printf("[%s] %s %s", r.Method, r.URL.Path, r.RemoteAddr)
		next.ServeHTTP(w, r)
		log.Printf("[%s] %s completed in %v", r.Method, r.URL.Path, time.Since(start))
	})
}

// handleHealth returns server health status
func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.jsonResponse(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"skills":     s.skills.TotalSkills(),
		"embeddings": s.embedder != nil,
		"storage":    s.store != nil,
		"auth":       s.jwtService != nil,
	})
}

// decodeJSON reads a bounded JSON body into dst.
func (s *Server) decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		s.errorResponse(w, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return false
	}
	return true
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// errorResponse writes an error JSON response
func (s *Server) errorResponse(w http.ResponseWriter, status int, message string) {
	s.jsonResponse(w, status, map[string]string{"error": message})
}

// errorFrom maps err through HTTPStatus. Server-side failures are logged and not echoed.
func (s *Server) errorFrom(w http.ResponseWriter, err error) {
	status := HTTPStatus(err)
	if status >= http.StatusInternalServerError && status != http.StatusServiceUnavailable &&
		status != http.StatusBadGateway && status != http.StatusGatewayTimeout {
		log.Printf("Internal error: %v", err)
		s.errorResponse(w, status, "internal server error")
		return
	}
	s.errorResponse(w, status, ErrorMessage(err))
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr; X-Forwarded-For is not trusted.
func (s *Server) extractClientID(r *http.Request) string {
	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return ip
}

// setRateLimitHeaders sets standard rate limit headers on the response.
func (s *Server) setRateLimitHeaders(w http.ResponseWriter, info ratelimit.Info) {
	if info.Limit > 0 {
		w.Header().Set("X-RateLimit-Limit", fmt.Sprintf("%d", info.Limit))
		w.Header().Set("X-RateLimit-Remaining", fmt.Sprintf("%d", info.Remaining))
		w.Header().Set("X-RateLimit-Reset", fmt.Sprintf("%d", info.ResetTime.Unix()))
	}
}

// rateLimitResponse writes a 429 Too Many Requests response with rate limit information.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	response := map[string]interface{}{
		"error":     "rate_limit_exceeded",
		"message":   "Rate limit exceeded. Please try again later.",
		"limit":     info.Limit,
		"remaining": info.Remaining,
		"reset_at":  info.ResetTime.Format(time.RFC3339),
	}

	if info.RetryAfter > 0 {
		retry := int(info.RetryAfter.Seconds()) + 1
		response["retry_after"] = retry
		w.Header().Set("Retry-After", fmt.Sprintf("%d", retry))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.jsonResponse(w, http.StatusTooManyRequests, response)
}
