// Package server exposes a qubit registry over HTTP and a websocket event
// stream.
package server

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/ha1tch/qubit-toolkit/pkg/qcfile"
	"github.com/ha1tch/qubit-toolkit/pkg/qubit"
)

// Config holds server configuration
type Config struct {
	Addr     string
	Log      zerolog.Logger
	Registry *qubit.Registry
	Render   qcfile.RenderOptions
}

// Server serves one registry. The registry is single-threaded, so every
// handler goes through mu.
type Server struct {
	router *chi.Mux
	server *http.Server
	log    zerolog.Logger
	hub    *Hub
	render qcfile.RenderOptions

	mu  sync.Mutex
	reg *qubit.Registry
}

// New creates a new HTTP server
func New(cfg Config) *Server {
	reg := cfg.Registry
	if reg == nil {
		reg = qubit.NewRegistry(qubit.RegistryOptions{Log: &cfg.Log})
	}
	log := cfg.Log.With().Str("component", "server").Logger()

	s := &Server{
		router: chi.NewRouter(),
		log:    log,
		hub:    NewHub(log),
		render: cfg.Render,
		reg:    reg,
	}

	s.setupMiddleware()
	s.setupRoutes()

	s.server = &http.Server{
		Addr:        cfg.Addr,
		Handler:     s.router,
		ReadTimeout: 15 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	return s
}

func (s *Server) setupMiddleware() {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "PUT", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))
}

func (s *Server) setupRoutes() {
	s.router.Get("/health", s.handleHealth)
	s.router.Get("/ws", s.handleEvents)

	s.router.Route("/api", func(r chi.Router) {
		r.Route("/qubits", func(r chi.Router) {
			r.Get("/", s.handleListQubits)
			r.Post("/", s.handleCreateQubit)
			r.Get("/{id}", s.handleGetQubit)
			r.Post("/{id}/gates", s.handleApplyGate)
			r.Put("/{id}/color", s.handleSetColor)
		})
		r.Get("/collocated", s.handleCollocated)
		r.Get("/diagram", s.handleDiagram)
		r.Get("/diagram.svg", s.handleDiagramSVG)
	})
}

// Handler returns the routed handler, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Snapshot returns a copy of every qubit.
func (s *Server) Snapshot() []qubit.Qubit {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.reg.Snapshot()
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Str("addr", s.server.Addr).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	s.hub.Close()
	return s.server.Shutdown(ctx)
}

func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}
