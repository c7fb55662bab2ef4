// Copyright (c) 2026 Artistry. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package api wires together the HTTP router, middleware chain, and all
domain handlers into a runnable [http.Server].

Architecture:

  - This package is the topmost Presentation layer boundary.
  - It acts as the central composition root for the HTTP transport framework (chi router).
  - Only this package and cmd/api are allowed to import net/http server primitives.

Routing:

  - Public: "/", "/health", "/ready" and everything under "/admin".
  - Protected: "/users", "/artists" and "/songs" sit behind the bearer token guard.
*/
package api

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/taibuivan/artistry/internal/core/artist"
	"github.com/taibuivan/artistry/internal/core/song"
	"github.com/taibuivan/artistry/internal/platform/config"
	"github.com/taibuivan/artistry/internal/platform/constants"
	"github.com/taibuivan/artistry/internal/platform/middleware"
	"github.com/taibuivan/artistry/internal/platform/respond"
	"github.com/taibuivan/artistry/internal/platform/sec"
	"github.com/taibuivan/artistry/internal/users/account"
	"github.com/taibuivan/artistry/internal/users/auth"
)

// Messages for requests that match no route.
const (
	MessageNotFound         = "Error 404! Endpoint not found!"
	MessageMethodNotAllowed = "Error 405! Method not allowed!"
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
	// Liveness is the /health handler, 200 whenever the process is up.
	Liveness http.HandlerFunc

	// Readiness is the /ready handler, 200 when all deps are healthy.
	Readiness http.HandlerFunc

	// Admin handles administrator register and login.
	Admin *auth.Handler

	Users   *account.Handler
	Artists *artist.Handler
	Songs   *song.Handler
}

// # Server Initialization

// NewServer constructs the chi router with the full middleware chain and
// registers all route groups.
func NewServer(cfg *config.Config, log *slog.Logger, verifier sec.TokenVerifier, limiter middleware.Limiter, h Handlers) *Server {
	r := chi.NewRouter()

	// Set before mounting so sub-routers inherit them.
	r.NotFound(func(writer http.ResponseWriter, _ *http.Request) {
		respond.Message(writer, http.StatusNotFound, MessageNotFound)
	})
	r.MethodNotAllowed(func(writer http.ResponseWriter, _ *http.Request) {
		respond.Message(writer, http.StatusMethodNotAllowed, MessageMethodNotAllowed)
	})

	// # Middleware Chain
	r.Use(middleware.RequestID())
	r.Use(middleware.StructuredLogger(log))
	r.Use(chimw.Timeout(constants.GlobalRequestTimeout))
	r.Use(middleware.RateLimit(limiter, cfg.TrustProxy))
	r.Use(middleware.PanicRecovery())
	r.Use(middleware.CORS(cfg))
	r.Use(chimw.CleanPath)

	// # Infrastructure Endpoints
	r.Get("/", banner)
	r.Get("/health", h.Liveness)
	r.Get("/ready", h.Readiness)

	// # Application API
	r.Mount("/admin", h.Admin.Routes())

	r.Group(func(protected chi.Router) {
		protected.Use(middleware.Authenticate(verifier))

		protected.Mount("/users", h.Users.Routes())
		protected.Mount("/artists", h.Artists.Routes())
		protected.Mount("/songs", h.Songs.Routes())
	})

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

// banner handles GET /.
func banner(writer http.ResponseWriter, _ *http.Request) {
	respond.JSON(writer, http.StatusOK, map[string]string{"res": constants.Banner})
}

// Handler exposes the fully wired router, for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// # Server Lifecycle

// ListenAndServe starts the HTTP server.
//
// It blocks until the server is closed or an error occurs.
func (s *Server) ListenAndServe() error {
	s.log.Info("server starting", slog.String("addr", s.httpServer.Addr))
	return s.httpServer.ListenAndServe()
}

// Shutdown gracefully stops the server, waiting for in-flight requests.
func (s *Server) Shutdown(timeout time.Duration) error {
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}
