// Package server wires the application together: storage backend,
// session manager, services, handlers, routes, and graceful shutdown.
// It is the composition root — all dependency injection happens in New
// and setupRoutes, nowhere else.
package server

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"

	"github.com/tanvir/blog-api/internal/auth"
	"github.com/tanvir/blog-api/internal/handler"
	"github.com/tanvir/blog-api/internal/middleware"
	"github.com/tanvir/blog-api/internal/repository"
	"github.com/tanvir/blog-api/internal/repository/postgres"
	"github.com/tanvir/blog-api/internal/repository/sqlite"
	"github.com/tanvir/blog-api/internal/service"
	"github.com/tanvir/blog-api/internal/session"
)

// Config holds server configuration.
type Config struct {
	Port        int
	DBPath      string        // SQLite file path (the default backend)
	DatabaseURL string        // when set, selects the PostgreSQL backend
	SessionTTL  time.Duration // session inactivity window
}

// Server owns the router and every long-lived resource: the database
// connection and the session store, both closed during shutdown.
type Server struct {
	router       *chi.Mux
	config       Config
	logger       *slog.Logger
	db           io.Closer
	sessionStore *session.MemoryStore
	sessions     *session.Manager
}

// New creates a Server: it opens the storage backend (which also
// establishes the schema — a failure here is fatal by design), builds
// the session manager, and wires services and handlers to routes.
func New(cfg Config, logger *slog.Logger) (*Server, error) {
	var (
		users    repository.UserRepository
		posts    repository.PostRepository
		comments repository.CommentRepository
		closer   io.Closer
	)

	if cfg.DatabaseURL != "" {
		db, err := postgres.New(cfg.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("opening postgres database: %w", err)
		}
		users, posts, comments, closer = db.Users(), db.Posts(), db.Comments(), db
	} else {
		db, err := sqlite.New(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite database: %w", err)
		}
		users, posts, comments, closer = db.Users(), db.Posts(), db.Comments(), db
	}

	sessionStore := session.NewMemoryStore(10 * time.Minute)

	s := &Server{
		router:       chi.NewRouter(),
		config:       cfg,
		logger:       logger,
		db:           closer,
		sessionStore: sessionStore,
		sessions:     session.NewManager(sessionStore, cfg.SessionTTL),
	}

	s.setupRoutes(users, posts, comments)

	return s, nil
}

// Handler returns the root handler, used directly by the tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// setupRoutes configures middleware and mounts the ten API routes.
//
// The three auth routes are public; everything else sits behind
// RequireAuth. RequireAdmin exists in the auth package but no current
// route mounts it.
func (s *Server) setupRoutes(
	users repository.UserRepository,
	posts repository.PostRepository,
	comments repository.CommentRepository,
) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger))

	// The session cookie needs credentialed CORS, which forbids the *
	// wildcard — so echo whatever origin called us instead.
	s.router.Use(cors.New(cors.Options{
		AllowOriginFunc:  func(origin string) bool { return true },
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}).Handler)

	authService := service.NewAuthService(users, auth.NewPasswordService(), s.logger)
	postService := service.NewPostService(posts, s.logger)
	commentService := service.NewCommentService(posts, comments, s.logger)

	authHandler := handler.NewAuthHandler(authService, s.sessions, s.logger)
	postHandler := handler.NewPostHandler(postService, s.logger)
	commentHandler := handler.NewCommentHandler(commentService, s.logger)

	s.router.Post("/register", authHandler.HandleRegister)
	s.router.Post("/login", authHandler.HandleLogin)
	s.router.Post("/logout", authHandler.HandleLogout)

	s.router.Group(func(r chi.Router) {
		r.Use(auth.RequireAuth(s.sessions))

		r.Get("/dashboard", postHandler.HandleDashboard)
		r.Post("/posts", postHandler.HandleCreate)
		r.Get("/posts", postHandler.HandleList)
		r.Get("/posts/{id}", postHandler.HandleGet)
		r.Put("/posts/edit/{id}", postHandler.HandleUpdate)
		r.Delete("/posts/delete/{post_id}", postHandler.HandleDelete)
		r.Post("/comment/post/{id}", commentHandler.HandleCreate)
		r.Get("/comment/posts/{id}", commentHandler.HandleGetPostWithComments)
	})
}

// Start runs the HTTP server until SIGINT/SIGTERM, then shuts down
// gracefully: stop accepting connections, drain in-flight requests,
// close the database and the session store.
func (s *Server) Start() error {
	defer s.db.Close()
	defer s.sessionStore.Close()

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
