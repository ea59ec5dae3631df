// Package server sets up the HTTP server, router, and all route definitions.
//
// This package is the "wiring" layer — the composition root where the whole
// dependency chain is assembled in one place:
//
//	memory.Store → FeedService → handlers → routes
//
// Each layer only receives what it needs: the service gets the repository
// interface (not the concrete store), the handlers get the service (not the
// repository), and nothing below the handlers knows HTTP exists.
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

	"github.com/sakif/photostream/internal/captioner"
	"github.com/sakif/photostream/internal/handler"
	"github.com/sakif/photostream/internal/middleware"
	"github.com/sakif/photostream/internal/model"
	"github.com/sakif/photostream/internal/repository/memory"
	"github.com/sakif/photostream/internal/service"
)

// Config holds server configuration. Using a struct (instead of individual
// parameters) makes it easy to add options without changing signatures.
type Config struct {
	Port int
	// CurrentUser and SeedPosts form the session's initial store state.
	CurrentUser model.User
	SeedPosts   []model.Post
}

// Server represents the HTTP server and all its dependencies.
type Server struct {
	router *chi.Mux
	config Config
	logger *slog.Logger
}

// New creates a new Server with the given config. The captioner may be nil —
// the caption endpoint then always answers with the fallback suggestion, and
// everything else works normally.
func New(cfg Config, logger *slog.Logger, assistant captioner.Captioner) (*Server, error) {
	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
	}
	s.setupRoutes(assistant)
	return s, nil
}

// setupRoutes configures all middleware and route handlers.
//
// ROUTE STRUCTURE:
//
//	GET  /api/feed            → list posts, newest first
//	POST /api/posts           → create a post
//	POST /api/posts/{id}/like → toggle the viewer's like
//	GET  /api/profile         → current user + their posts
//	PUT  /api/profile         → edit name/bio (resyncs author snapshots)
//	POST /api/caption         → AI caption suggestion (never fails hard)
//
// MIDDLEWARE ORDER MATTERS — it executes in the order added:
// RequestID → RealIP → Recoverer → our slog logger.
func (s *Server) setupRoutes(assistant captioner.Captioner) {
	s.router.Use(chimiddleware.RequestID) // Adds X-Request-ID header
	s.router.Use(chimiddleware.RealIP)    // Extracts real IP from X-Forwarded-For
	s.router.Use(chimiddleware.Recoverer) // Recovers from panics, returns 500
	s.router.Use(middleware.Logger(s.logger))

	// The store is constructed here, once per server — session state has the
	// server's lifetime. No ambient globals: everything flows down as an
	// explicit dependency.
	store := memory.New(s.config.CurrentUser, s.config.SeedPosts)
	feedService := service.NewFeedService(store, s.logger)

	feedHandler := handler.NewFeedHandler(feedService, s.logger)
	profileHandler := handler.NewProfileHandler(feedService, s.logger)
	captionHandler := handler.NewCaptionHandler(assistant, s.logger)

	s.router.Route("/api", func(r chi.Router) {
		r.Get("/feed", feedHandler.HandleFeed)
		r.Post("/posts", feedHandler.HandleCreatePost)
		r.Post("/posts/{id}/like", feedHandler.HandleToggleLike)
		r.Get("/profile", profileHandler.HandleGetProfile)
		r.Put("/profile", profileHandler.HandleUpdateProfile)
		r.Post("/caption", captionHandler.HandleSuggest)
	})
}

// Start starts the HTTP server and handles graceful shutdown:
// stop accepting new connections, then give in-flight requests up to 30
// seconds to finish. There is nothing to flush — the store is memory only
// and dies with the process, which is the whole point of a session store.
func (s *Server) Start() error {
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

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
