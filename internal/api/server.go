// Copyright (c) 2026 Annotate. All rights reserved.
// Author: annotate-system maintainers

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost presentation boundary.
  - It is the composition root for the chi router.
  - Only this package and cmd/api import net/http server primitives.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/Darigraye/MEPHI-practice/internal/clinic/cellimage"
	"github.com/Darigraye/MEPHI-practice/internal/clinic/patient"
	"github.com/Darigraye/MEPHI-practice/internal/clinic/research"
	"github.com/Darigraye/MEPHI-practice/internal/platform/config"
	"github.com/Darigraye/MEPHI-practice/internal/platform/constants"
	"github.com/Darigraye/MEPHI-practice/internal/platform/middleware"
	"github.com/Darigraye/MEPHI-practice/internal/platform/sec"
	"github.com/Darigraye/MEPHI-practice/internal/reference"
	"github.com/Darigraye/MEPHI-practice/internal/system"
	"github.com/Darigraye/MEPHI-practice/internal/users/account"
	"github.com/Darigraye/MEPHI-practice/internal/users/auth"
)

// # Server Definitions

// Server wraps the chi router and the [http.Server].
//
// It is constructed once in main.go with all dependencies injected.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	log        *slog.Logger
}

// # Handler Registry

// Handlers groups all domain-specific HTTP handler sets.
type Handlers struct {
	// Liveness answers /health while the process is alive.
	Liveness http.HandlerFunc

	// Readiness answers /ready with 200 only when Postgres and Redis respond.
	Readiness http.HandlerFunc

	// Auth handles registration, login preview, sessions and categories.
	Auth *auth.Handler

	// Account handles profiles and the caller's own account.
	Account *account.Handler

	Patient   *patient.Handler
	Research  *research.Handler
	CellImage *cellimage.Handler

	// Reference serves the marker, medication, cell type and characteristic dictionaries.
	Reference *reference.Handler

	// System exposes the journal and parameters to administrators.
	System *system.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *Server {
	r := NewRouter(context, cfg, log, verifier, h)

	return &Server{
		router: r,
		log:    log,
		httpServer: &http.Server{
			Addr:              ":" + cfg.ServerPort,
			Handler:           r,
			ReadTimeout:       constants.DefaultReadTimeout,
			WriteTimeout:      constants.DefaultWriteTimeout,
			IdleTimeout:       constants.DefaultIdleTimeout,
			ReadHeaderTimeout: constants.DefaultReadHeaderTimeout,
		},
	}
}

// NewRouter builds the routing tree without binding a listener.
func NewRouter(context context.Context, cfg *config.Config, log *slog.Logger, verifier middleware.TokenVerifier, h Handlers) *chi.Mux {
	r := chi.NewRouter()

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(context))
	r.Use(middleware.PanicRecovery(log))
	r.Use(middleware.Authenticate(verifier))
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Route("/api/v1", func(api chi.Router) {
		api.Mount("/auth", h.Auth.Routes())
		api.Mount("/users", h.Account.Routes())
		api.Mount("/patients", h.Patient.Routes())
		api.Mount("/researches", h.Research.Routes())
		api.Mount("/cell-images", h.CellImage.Routes())
		api.Mount("/terms", h.Reference.Routes())

		api.Group(func(admin chi.Router) {
			admin.Use(middleware.RequireRole(sec.RoleAdmin))
			admin.Mount("/system", h.System.Routes())
		})
	})

	return r
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server_starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	context, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(context)
}
