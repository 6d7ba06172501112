// Package server provides the HTTP wizard for the internship finder.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"html/template"
	"log"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jonathan/internship-finder/internal/config"
	"github.com/jonathan/internship-finder/internal/db"
	"github.com/jonathan/internship-finder/internal/listings"
	"github.com/jonathan/internship-finder/internal/server/middleware"
	"github.com/jonathan/internship-finder/internal/server/ratelimit"
	"github.com/jonathan/internship-finder/internal/session"
)

// Server represents the HTTP server
type Server struct {
	httpServer  *http.Server
	cfg         *config.Config
	db          *db.DB
	store       session.Store
	tokens      *session.Tokens
	fetcher     *listings.Fetcher
	rateLimiter *ratelimit.Limiter
	pages       *template.Template
	stopStore   func()
}

// Deps holds collaborators that New would otherwise build from the config.
// Nil fields are built from cfg.
type Deps struct {
	Store       session.Store
	Tokens      *session.Tokens
	Fetcher     *listings.Fetcher
	RateLimiter *ratelimit.Limiter
}

// New creates a new server instance. It creates the upload and applications
// directories and connects to PostgreSQL when cfg.DatabaseURL is set.
func New(cfg *config.Config, deps Deps) (*Server, error) {
	for _, dir := range []string{cfg.UploadDir, cfg.ApplicationsDir} {
		if dir == "" {
			continue
		}
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	pages, err := parsePages()
	if err != nil {
		return nil, err
	}

	s := &Server{
		cfg:         cfg,
		store:       deps.Store,
		tokens:      deps.Tokens,
		fetcher:     deps.Fetcher,
		rateLimiter: deps.RateLimiter,
		pages:       pages,
	}

	if s.tokens == nil {
		sessionCfg, err := config.NewSessionConfig(cfg.SessionTTLHours)
		if err != nil {
			return nil, fmt.Errorf("failed to create session config: %w", err)
		}
		s.tokens, err = session.NewTokens(sessionCfg.Secret, cfg.SessionTTL())
		if err != nil {
			return nil, err
		}
	}

	if s.fetcher == nil {
		sources, err := cfg.Sources()
		if err != nil {
			return nil, err
		}
		s.fetcher = listings.NewFetcher(listings.Config{
			Sources:    sources,
			Timeout:    cfg.FetchTimeout(),
			UseBrowser: cfg.UseBrowser,
		})
	}

	if s.store == nil {
		if err := s.openStore(); err != nil {
			return nil, err
		}
	}

	if s.rateLimiter == nil {
		s.rateLimiter = ratelimit.NewLimiter(ratelimit.LoadConfig())
	}

	s.httpServer = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Port),
		Handler:      s.Handler(),
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 120 * time.Second, // Covers the listing fetch on POST /jobs
		IdleTimeout:  60 * time.Second,
	}

	return s, nil
}

// sessionSweepInterval is how often expired sessions are dropped from either store.
const sessionSweepInterval = 10 * time.Minute

// openStore selects PostgreSQL or in-memory session storage.
func (s *Server) openStore() error {
	if s.cfg.DatabaseURL == "" {
		mem := session.NewMemoryStore(s.cfg.SessionTTL(), sessionSweepInterval)
		s.store = mem
		s.stopStore = mem.Stop
		log.Printf("[session] using in-memory session store")
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	database, err := db.Connect(ctx, s.cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	if err := database.Migrate(ctx); err != nil {
		database.Close()
		return err
	}
	store := db.NewSessionStore(database, s.cfg.SessionTTL())
	s.db = database
	s.store = store
	s.stopStore = session.StartPurging(store, sessionSweepInterval)
	log.Printf("[session] using PostgreSQL session store")
	return nil
}

// Handler returns the routed handler wrapped in the middleware chain.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /{$}", s.handleIndex)
	mux.HandleFunc("POST /details", s.handleDetails)
	mux.HandleFunc("GET /details", s.redirectToStart)
	mux.HandleFunc("POST /jobs", s.handleJobs)
	mux.HandleFunc("GET /jobs", s.redirectToStart)
	mux.HandleFunc("POST /apply", s.handleApply)
	mux.HandleFunc("GET /health", s.handleHealth)

	sessions := middleware.Session(s.tokens, middleware.SessionOptions{})
	return s.withRateLimit(s.withLogging(sessions(mux)))
}

// Start begins listening for requests
func (s *Server) Start() error {
	// Graceful shutdown
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
	case <-stop:
	case err := <-errCh:
		s.Close()
		return fmt.Errorf("server error: %w", err)
	}
	log.Println("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := s.httpServer.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	s.Close()
	log.Println("Server stopped")
	return nil
}

// Close releases background workers and the database pool.
func (s *Server) Close() {
	if s.rateLimiter != nil {
		s.rateLimiter.Stop()
	}
	if s.stopStore != nil {
		s.stopStore()
	}
	if s.db != nil {
		s.db.Close()
	}
}

// withRateLimit adds rate limiting middleware
func (s *Server) withRateLimit(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		clientID := s.extractClientID(r)

		allowed, info := s.rateLimiter.Allow(clientID, r.Method, r.URL.Path)
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
	s.jsonResponse(w, http.StatusOK, map[string]string{"status": "ok"})
}

// jsonResponse writes a JSON response
func (s *Server) jsonResponse(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(data); err != nil {
		log.Printf("Error encoding JSON response: %v", err)
	}
}

// extractClientID extracts the client identifier from the request.
// This uses the IP address from RemoteAddr.
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

// rateLimitResponse writes a 429 Too Many Requests page.
func (s *Server) rateLimitResponse(w http.ResponseWriter, info ratelimit.Info) {
	if info.RetryAfter > 0 {
		w.Header().Set("Retry-After", fmt.Sprintf("%d", int(info.RetryAfter.Seconds())))
	}

	log.Printf("[rate-limit] Rate limit exceeded: Limit=%d Remaining=%d Reset=%s",
		info.Limit, info.Remaining, info.ResetTime.Format(time.RFC3339))

	s.render(w, http.StatusTooManyRequests, pageError, errorPage{
		Status:     http.StatusTooManyRequests,
		StatusText: http.StatusText(http.StatusTooManyRequests),
	})
}
