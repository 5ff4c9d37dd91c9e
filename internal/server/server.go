// Package server wires the application together: it builds the dependency
// chain (database → repositories → services → handlers), defines the routes,
// and runs the HTTP server with graceful shutdown.
//
// The route table mirrors the API surface:
//
//	POST   /register                     → register (no auth)
//	POST   /login                        → login, returns {jwtToken}
//	GET    /user/tweets/feed             → home feed (≤4 tweets, newest first)
//	GET    /user/following               → names the caller follows
//	GET    /user/followers               → names following the caller
//	POST   /user/following/{username}    → follow
//	DELETE /user/following/{username}    → unfollow
//	GET    /user/tweets                  → own tweets with like/reply counts
//	POST   /user/tweets                  → create tweet
//	GET    /tweets/{tweetID}             → details        (follow gate)
//	GET    /tweets/{tweetID}/likes       → liker usernames (follow gate)
//	POST   /tweets/{tweetID}/likes       → like            (follow gate)
//	GET    /tweets/{tweetID}/replies     → replies         (follow gate)
//	POST   /tweets/{tweetID}/replies     → reply           (follow gate)
//	DELETE /tweets/{tweetID}             → delete own tweet (owner only)
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

	"github.com/sakif/twitter-clone/internal/auth"
	"github.com/sakif/twitter-clone/internal/config"
	"github.com/sakif/twitter-clone/internal/handler"
	"github.com/sakif/twitter-clone/internal/middleware"
	sqliteRepo "github.com/sakif/twitter-clone/internal/repository/sqlite"
	"github.com/sakif/twitter-clone/internal/service"
)

// Server owns the router, the database pool, and their lifecycle.
type Server struct {
	router *chi.Mux
	config config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New assembles the full dependency chain and the route table.
func New(cfg config.Config, logger *slog.Logger) (*Server, error) {
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
		db.Close()
		return nil, fmt.Errorf("setting up routes: %w", err)
	}

	return s, nil
}

func (s *Server) setupRoutes() error {
	// Global middleware, in order: request IDs for tracing, real client IPs
	// behind proxies, panic recovery, then our request logger.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	tokens, err := auth.NewTokenService(s.config.JWTSecret, s.config.TokenTTL)
	if err != nil {
		return fmt.Errorf("creating token service: %w", err)
	}
	passwords := auth.NewPasswordService(s.config.BcryptCost)

	authService := service.NewAuthService(s.db.Users(), tokens, passwords, s.logger)
	followService := service.NewFollowService(s.db.Follows(), s.db.Users(), s.logger)
	tweetService := service.NewTweetService(s.db.Tweets(), s.logger)

	authHandler := handler.NewAuthHandler(authService, s.logger)
	followHandler := handler.NewFollowHandler(followService, s.logger)
	tweetHandler := handler.NewTweetHandler(tweetService, s.logger)

	// Public routes
	s.router.Post("/register", authHandler.HandleRegister)
	s.router.Post("/login", authHandler.HandleLogin)

	// Protected routes: everything below requires a valid Bearer token.
	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(tokens))

		r.Route("/user", func(r chi.Router) {
			r.Get("/tweets/feed", tweetHandler.HandleFeed)
			r.Get("/tweets", tweetHandler.HandleUserTweets)
			r.Post("/tweets", tweetHandler.HandleCreate)

			r.Get("/following", followHandler.HandleFollowing)
			r.Get("/followers", followHandler.HandleFollowers)
			r.Post("/following/{username}", followHandler.HandleFollow)
			r.Delete("/following/{username}", followHandler.HandleUnfollow)
		})

		r.Route("/tweets/{tweetID}", func(r chi.Router) {
			r.Get("/", tweetHandler.HandleDetails)
			r.Delete("/", tweetHandler.HandleDelete)
			r.Get("/likes", tweetHandler.HandleLikes)
			r.Post("/likes", tweetHandler.HandleLike)
			r.Get("/replies", tweetHandler.HandleReplies)
			r.Post("/replies", tweetHandler.HandleReply)
		})
	})

	return nil
}

// Router exposes the configured router, mainly for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

// Close releases the database pool. Start calls this itself; tests that
// never call Start use it directly.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start runs the server until SIGINT/SIGTERM, then shuts down gracefully:
// stop accepting connections, drain in-flight requests (30s budget), and
// close the database to flush the WAL.
func (s *Server) Start() error {
	defer s.Close()

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

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}
