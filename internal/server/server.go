// Package server exposes the stock insights HTTP API: price history and
// heuristic analysis endpoints backed by an upstream CSV quote source, plus
// a favorites collection backed by the document store.
package server

import (
	"context"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"
	"github.com/rxtech-lab/argo-insights/internal/logger"
	"github.com/rxtech-lab/argo-insights/internal/quote"
	"github.com/rxtech-lab/argo-insights/internal/store"
	"go.uber.org/zap"
)

// Server wires the quote fetcher, analyzer, and document store behind an
// HTTP API.
type Server struct {
	config     Config
	logger     *logger.Logger
	fetcher    quote.Fetcher
	documents  store.DocumentStore
	validate   *validator.Validate
	router     *mux.Router
	httpServer *http.Server
	listener   net.Listener
}

// NewServer creates a server from its collaborators. It does not start
// listening until Start is called.
func NewServer(config Config, log *logger.Logger, fetcher quote.Fetcher, documents store.DocumentStore) *Server {
	s := &Server{
		config:    config,
		logger:    log,
		fetcher:   fetcher,
		documents: documents,
		validate:  validator.New(),
	}
	s.router = s.routes()

	return s
}

func (s *Server) routes() *mux.Router {
	router := mux.NewRouter()
	router.Use(corsMiddleware)

	router.HandleFunc("/", s.handleRoot).Methods("GET")
	router.HandleFunc("/test", s.handleTest).Methods("GET")
	router.HandleFunc("/api/stocks/{symbol}/history", s.handleHistory).Methods("GET")
	router.HandleFunc("/api/stocks/{symbol}/analysis", s.handleAnalysis).Methods("GET")
	router.HandleFunc("/api/favorites", s.handleCreateFavorite).Methods("POST")
	router.HandleFunc("/api/favorites", s.handleListFavorites).Methods("GET")

	// Preflight requests for any route are answered by the CORS middleware.
	router.PathPrefix("/").Methods("OPTIONS").HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	return router
}

// Handler returns the fully routed HTTP handler. Useful for tests that drive
// the API without a real listener.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins listening on the given address. Passing port 0 in the address
// picks a free port; use Address to discover it.
func (s *Server) Start(address string) error {
	listener, err := net.Listen("tcp", address)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", address, err)
	}

	s.listener = listener
	s.httpServer = &http.Server{
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && err != http.ErrServerClosed {
			s.logger.Error("HTTP server error", zap.Error(err))
		}
	}()

	s.logger.Info("Server started", zap.String("address", s.Address()))

	return nil
}

// Stop gracefully shuts down the HTTP server and closes the document store.
func (s *Server) Stop() error {
	if s.httpServer != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := s.httpServer.Shutdown(ctx); err != nil {
			return fmt.Errorf("failed to shutdown server: %w", err)
		}
	}

	if s.documents != nil {
		if err := s.documents.Close(); err != nil {
			return fmt.Errorf("failed to close document store: %w", err)
		}
	}

	return nil
}

// Address returns the listen address, including the resolved port.
func (s *Server) Address() string {
	if s.listener == nil {
		return ""
	}

	return s.listener.Addr().String()
}

// BaseURL returns the http URL of the running server.
func (s *Server) BaseURL() string {
	return fmt.Sprintf("http://%s", s.Address())
}

func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}

		next.ServeHTTP(w, r)
	})
}
