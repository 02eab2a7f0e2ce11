// Package server wires the repositories, services and handlers into a chi
// router and runs the HTTP server.
//
//	main.go → server.New: sqlite.DB → services → handlers → routes
//
// All dependencies are built here and nowhere else.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/sakif/content-analytics/internal/auth"
	"github.com/sakif/content-analytics/internal/handler"
	"github.com/sakif/content-analytics/internal/ingest"
	"github.com/sakif/content-analytics/internal/middleware"
	sqliteRepo "github.com/sakif/content-analytics/internal/repository/sqlite"
	"github.com/sakif/content-analytics/internal/service"
)

// Config holds server configuration.
type Config struct {
	Port               int
	DBPath             string
	JWTSecret          string
	CORSOrigins        []string
	LoginRatePerMinute int
	LoginBurst         int
}

// Server owns the router and the database connection.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database, runs migrations and registers every route.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	tokens, err := auth.NewTokenService(cfg.JWTSecret)
	if err != nil {
		return nil, fmt.Errorf("creating token service: %w", err)
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
	s.setupRoutes(tokens)
	return s, nil
}

// Handler exposes the router, mainly for httptest.
func (s *Server) Handler() http.Handler { return s.router }

// Close releases the database. Start calls it on shutdown.
func (s *Server) Close() error { return s.db.Close() }

// setupRoutes registers:
//
//	GET    /healthz
//	POST   /api/auth/register                 (rate limited)
//	POST   /api/auth/login                    (rate limited)
//
// and, behind a bearer token:
//
//	GET    /api/auth/me
//	GET    /api/platforms
//	POST   /api/platforms
//	GET    /api/platforms/stats
//	GET    /api/platforms/byName/{name}
//	GET    /api/platforms/{id}
//	DELETE /api/platforms/{id}
//	GET    /api/platforms/{id}/content
//	GET    /api/content?limit=&offset=
//	POST   /api/content
//	GET    /api/content/platform/{platformId}
//	POST   /api/ingest
//	GET    /api/classify?url=
//
// Middleware runs in the order added: request id, real ip, recoverer,
// logging, CORS.
func (s *Server) setupRoutes(tokens *auth.TokenService) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(cors.New(cors.Options{
		AllowedOrigins:   s.config.CORSOrigins,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: true,
		MaxAge:           300,
	}).Handler)

	passwords := auth.NewPasswordService()
	authService := service.NewAuthService(s.db, tokens, passwords, s.logger)
	platformService := service.NewPlatformService(s.db, s.logger)
	contentService := service.NewContentService(s.db, platformService, s.logger)

	healthHandler := handler.NewHealthHandler(s.db, s.logger)
	authHandler := handler.NewAuthHandler(authService, s.logger)
	platformHandler := handler.NewPlatformHandler(platformService, contentService, s.logger)
	contentHandler := handler.NewContentHandler(contentService, s.logger)
	ingestHandler := handler.NewIngestHandler(platformService, contentService, ingest.NewGate(), s.logger)

	loginLimiter := middleware.NewRateLimiter(s.config.LoginRatePerMinute, max(s.config.LoginBurst, 5), s.logger)

	s.router.Get("/healthz", healthHandler.HandleHealth)

	s.router.Route("/api", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(loginLimiter.Middleware)
			r.Post("/auth/register", authHandler.HandleRegister)
			r.Post("/auth/login", authHandler.HandleLogin)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Get("/auth/me", authHandler.HandleMe)

			r.Route("/platforms", func(r chi.Router) {
				r.Get("/", platformHandler.HandleList)
				r.Post("/", platformHandler.HandleCreate)
				r.Get("/stats", platformHandler.HandleStats)
				r.Get("/byName/{name}", platformHandler.HandleGetByName)
				r.Get("/{id}", platformHandler.HandleGet)
				r.Delete("/{id}", platformHandler.HandleDelete)
				r.Get("/{id}/content", platformHandler.HandleContents)
			})

			r.Route("/content", func(r chi.Router) {
				r.Get("/", contentHandler.HandleList)
				r.Post("/", contentHandler.HandleCreate)
				r.Get("/platform/{platformId}", contentHandler.HandleListByPlatform)
			})

			r.Post("/ingest", ingestHandler.HandleIngest)
			r.Get("/classify", ingestHandler.HandleClassify)
		})
	})
}

// Start serves until SIGINT/SIGTERM, then drains in-flight requests for up
// to 30 seconds and closes the database.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 30 * time.Second,
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
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
