// Package server sets up the HTTP server, router, and all route definitions.
//
// SERVER ARCHITECTURE:
// This package is the "wiring" layer — it connects handlers, middleware, and
// routes. Think of it as the control centre that decides:
// - Which URL patterns map to which handler functions
// - What middleware runs on which routes
// - How the server starts and stops gracefully
//
// DEPENDENCY INJECTION FLOW:
// cmd/server/main.go reads config and calls New(), which assembles:
//
//	sqlite.DB → services (auth, events, registrations) → handlers → routes
//
// This is the "composition root" pattern — all dependencies are wired in one
// place rather than scattered across the codebase.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/sakif/event-registration/internal/auth"
	"github.com/sakif/event-registration/internal/handler"
	"github.com/sakif/event-registration/internal/middleware"
	sqliteRepo "github.com/sakif/event-registration/internal/repository/sqlite"
	"github.com/sakif/event-registration/internal/service"
)

// Config holds server configuration, loaded once at process start.
// None of it is re-read at runtime.
type Config struct {
	Port        int
	TemplateDir string
	StaticDir   string
	DBPath      string
	JWTSecret   string
}

// Server owns the router and the database connection. The connection is
// closed during graceful shutdown in Start().
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New creates a Server with the full dependency chain assembled:
//
//  1. Open the database (sqlite.New — also runs migrations)
//  2. Build the auth primitives (TokenService, PasswordService)
//  3. Build the services on top of the repository interfaces
//  4. Build the handlers on top of the services
//  5. Wire handlers to routes
//
// Each layer only receives what it needs: services get repository
// interfaces (not the concrete sqlite.DB), handlers get services
// (not repositories).
//
// IMPORT ALIAS:
// repository/sqlite is imported as sqliteRepo to avoid confusion with the
// sqlite driver package.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("server: JWT secret is required")
	}

	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}

	if err := s.setupRoutes(); err != nil {
		db.Close() // Clean up DB if route setup fails
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	GET    /                                            → client page (HTML)
//	GET    /static/*                                    → static assets
//	GET    /api/health                                  → liveness check
//	POST   /api/auth/register                           → sign up, returns {token}
//	POST   /api/auth/login                              → log in, returns {token}
//	GET    /api/events                                  → list events (public)
//	GET    /api/events/{id}                             → event details (public)
//	POST   /api/events/{eventId}/register               → register (auth)
//	GET    /api/events/registrations/my                 → my registrations (auth)
//	DELETE /api/events/registrations/{registrationId}   → cancel (auth)
//
// MIDDLEWARE ORDER MATTERS — ours runs in this order on every request:
// 1. RequestID — assigns unique ID to each request (for tracing)
// 2. RealIP — extracts real client IP from proxy headers
// 3. Recoverer — catches panics and returns 500 instead of crashing
// 4. Logger — logs each request with timing info
// The auth gate applies only inside the protected route group.
func (s *Server) setupRoutes() error {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// === Auth primitives ===
	tokens, err := auth.NewTokenService(s.config.JWTSecret)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService()

	// === Services ===
	// s.db (sqlite.DB) implements all three repository interfaces; each
	// service sees only the interface it depends on.
	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	eventService := service.NewEventService(s.db, s.logger)
	registrationService := service.NewRegistrationService(s.db, s.db, s.logger)

	// === Handlers ===
	authHandler := handler.NewAuthHandler(authService, s.logger)
	eventHandler := handler.NewEventHandler(eventService, s.logger)
	registrationHandler := handler.NewRegistrationHandler(registrationService, s.logger)

	// === Client page + static assets ===
	pageHandler, err := handler.NewPageHandler(s.config.TemplateDir, s.logger)
	if err != nil {
		return fmt.Errorf("creating page handler: %w", err)
	}
	s.router.Get("/", pageHandler.HandleIndex)

	// http.StripPrefix removes "/static/" from the URL path before lookup,
	// so GET /static/js/app.js serves {StaticDir}/js/app.js.
	fileServer := http.FileServer(http.Dir(s.config.StaticDir))
	s.router.Handle("/static/*", http.StripPrefix("/static/", fileServer))

	// === API routes ===
	s.router.Route("/api", func(r chi.Router) {
		r.Get("/health", pageHandler.HandleHealth)

		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", authHandler.HandleRegister)
			r.Post("/login", authHandler.HandleLogin)
		})

		r.Route("/events", func(r chi.Router) {
			// Public catalog. Chi matches static segments before params, so
			// /events/registrations/my below never collides with /events/{id}.
			r.Get("/", eventHandler.HandleList)
			r.Get("/{id}", eventHandler.HandleGetByID)

			// Protected group: the auth gate runs before every handler here
			// and rejects the request outright when the token is missing or
			// invalid — handlers can assume a userID in the context.
			r.Group(func(r chi.Router) {
				r.Use(auth.RequireAuth(tokens))
				r.Post("/{eventId}/register", registrationHandler.HandleRegister)
				r.Get("/registrations/my", registrationHandler.HandleListMine)
				r.Delete("/registrations/{registrationId}", registrationHandler.HandleCancel)
			})
		})
	})

	return nil
}

// Start starts the HTTP server and handles graceful shutdown.
//
// GRACEFUL SHUTDOWN:
// 1. Stop accepting new HTTP connections
// 2. Wait for in-flight requests to finish (30s timeout)
// 3. Close the database connection (flushes WAL, releases the file lock)
//
// The `defer s.db.Close()` ensures step 3 happens even on a panic.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)

	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("url", fmt.Sprintf("http://localhost:%d", s.config.Port)),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		// Give in-flight requests 30 seconds to complete
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
