// Package server is the composition root: it opens the stores, builds the
// services, handlers and generation job, mounts the routes and runs the HTTP
// server until shutdown.
//
//	config → stores → services → handlers → router
//	                ↘ generator.Job (started with the server, stopped on shutdown)
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/sakif/your-yoda/internal/auth"
	"github.com/sakif/your-yoda/internal/config"
	"github.com/sakif/your-yoda/internal/generator"
	"github.com/sakif/your-yoda/internal/handler"
	"github.com/sakif/your-yoda/internal/middleware"
	"github.com/sakif/your-yoda/internal/persona"
	"github.com/sakif/your-yoda/internal/repository"
	"github.com/sakif/your-yoda/internal/repository/memory"
	sqliteRepo "github.com/sakif/your-yoda/internal/repository/sqlite"
	"github.com/sakif/your-yoda/internal/seed"
	"github.com/sakif/your-yoda/internal/service"
)

// Option customises a Server. Tests use them to pin the clock and randomness.
type Option func(*options)

type options struct {
	clock   generator.Clock
	library *persona.Library
	github  *auth.GitHubProvider
}

// WithClock sets the clock used by the generation job, the seeder and read
// timestamps.
func WithClock(clock generator.Clock) Option {
	return func(o *options) { o.clock = clock }
}

// WithLibrary replaces the persona library, e.g. with a seeded one.
func WithLibrary(lib *persona.Library) Option {
	return func(o *options) { o.library = lib }
}

// WithGitHub replaces the GitHub provider built from the config.
func WithGitHub(p *auth.GitHubProvider) Option {
	return func(o *options) { o.github = p }
}

// stores groups the three repositories with whatever releases them.
type stores struct {
	users     repository.UserRepository
	schedules repository.ScheduleRepository
	letters   repository.LetterRepository
	close     func() error
}

// Server owns the router, the generation job and the store connection.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	job    *generator.Job
	stores stores
}

// New wires every dependency and, when configured, seeds the demo account.
func New(cfg *config.Config, logger *slog.Logger, opts ...Option) (*Server, error) {
	o := options{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}
	if o.library == nil {
		o.library = persona.New(nil)
	}

	st, err := openStores(cfg, logger)
	if err != nil {
		return nil, err
	}

	tokens, err := auth.NewTokenService(cfg.JWTSecret, cfg.TokenTTL)
	if err != nil {
		_ = st.close()
		return nil, fmt.Errorf("server: creating token service: %w", err)
	}
	if cfg.UsesDevSecret() {
		logger.Warn("JWT_SECRET not set; using the development secret")
	}
	passwords := auth.NewPasswordService(cfg.BcryptCost)

	if cfg.SeedDemo {
		deps := seed.Deps{
			Users:     st.users,
			Schedules: st.schedules,
			Letters:   st.letters,
			Passwords: passwords,
			Library:   o.library,
		}
		if _, err := seed.Run(context.Background(), deps, o.clock(), logger); err != nil {
			_ = st.close()
			return nil, fmt.Errorf("server: seeding demo data: %w", err)
		}
	}

	github := o.github
	if github == nil && cfg.GitHubEnabled() {
		github = auth.NewGitHubProvider(cfg.GitHubClientID, cfg.GitHubClientSecret, cfg.CallbackURL())
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		stores: st,
		job: generator.New(st.users, st.schedules, st.letters, o.library,
			generator.Options{Interval: cfg.GenerationInterval, Clock: o.clock}, logger),
	}

	authService := service.NewAuthService(st.users, tokens, passwords, logger)
	scheduleService := service.NewScheduleService(st.schedules, logger)
	letterService := service.NewLetterService(st.letters, o.clock, logger)

	s.setupRoutes(
		tokens,
		handler.NewAuthHandler(authService, github, logger),
		handler.NewScheduleHandler(scheduleService, logger),
		handler.NewLetterHandler(letterService, logger),
	)

	return s, nil
}

func openStores(cfg *config.Config, logger *slog.Logger) (stores, error) {
	if cfg.Store == config.StoreSQLite {
		if isFilePath(cfg.DBPath) {
			if err := os.MkdirAll(filepath.Dir(cfg.DBPath), 0o755); err != nil {
				return stores{}, fmt.Errorf("server: creating database directory: %w", err)
			}
		}
		db, err := sqliteRepo.New(cfg.DBPath)
		if err != nil {
			return stores{}, fmt.Errorf("server: opening database: %w", err)
		}
		logger.Info("using sqlite store", slog.String("path", cfg.DBPath))
		return stores{
			users:     db.Users(),
			schedules: db.Schedules(),
			letters:   db.Letters(),
			close:     db.Close,
		}, nil
	}

	m := memory.New()
	logger.Info("using in-memory store")
	return stores{
		users:     m.Users(),
		schedules: m.Schedules(),
		letters:   m.Letters(),
		close:     func() error { return nil },
	}, nil
}

func isFilePath(dsn string) bool {
	return dsn != "" && !strings.HasPrefix(dsn, ":memory:") && !strings.HasPrefix(dsn, "file:")
}

// setupRoutes mounts every API route twice: at the root and under /api, which
// is where the browser frontend calls them.
//
// GET   /health
// POST  /auth/register, /auth/login
// GET   /auth/github/login, /auth/github/callback
// GET   /auth/me                   (auth)
// GET   /schedules, POST /schedules (auth)
// GET   /letters                   (auth)
// PATCH /letters/{id}/read         (auth)
func (s *Server) setupRoutes(tokens *auth.TokenService, ah *handler.AuthHandler, sh *handler.ScheduleHandler, lh *handler.LetterHandler) {
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(middleware.Logger(s.logger))
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.config.Origins(),
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPatch, http.MethodOptions},
		AllowedHeaders:   []string{"Authorization", "Content-Type"},
		ExposedHeaders:   []string{"X-Request-Id"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	api := func(r chi.Router) {
		r.Get("/health", handler.HandleHealth)

		r.Post("/auth/register", ah.HandleRegister)
		r.Post("/auth/login", ah.HandleLogin)
		r.Get("/auth/github/login", ah.HandleGitHubLogin)
		r.Get("/auth/github/callback", ah.HandleGitHubCallback)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAuth(tokens))

			r.Get("/auth/me", ah.HandleMe)
			r.Get("/schedules", sh.HandleList)
			r.Post("/schedules", sh.HandleCreate)
			r.Get("/letters", lh.HandleList)
			r.Patch("/letters/{id}/read", lh.HandleMarkRead)
		})
	}

	s.router.Group(api)
	s.router.Route("/api", api)
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Job returns the letter generation job.
func (s *Server) Job() *generator.Job {
	return s.job
}

// Start runs the server until SIGINT or SIGTERM.
func (s *Server) Start() error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	ln, err := net.Listen("tcp", fmt.Sprintf(":%d", s.config.Port))
	if err != nil {
		_ = s.Close()
		return fmt.Errorf("server: listening: %w", err)
	}
	return s.Serve(ctx, ln)
}

// Serve accepts connections on ln and runs the generation job until ctx is
// done, then shuts down in order: stop accepting requests, let in-flight
// requests finish (30s), stop the job, close the store.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	defer s.Close()

	srv := &http.Server{
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	jobCtx, cancelJob := context.WithCancel(context.Background())
	defer cancelJob()
	s.job.Start(jobCtx)
	defer s.job.Stop()

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.String("addr", ln.Addr().String()),
			slog.String("store", s.config.Store),
			slog.Duration("generationInterval", s.config.GenerationInterval),
		)
		serverErrors <- srv.Serve(ln)
	}()

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil

	case <-ctx.Done():
		s.logger.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("server: graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

// Close releases the store.
func (s *Server) Close() error {
	return s.stores.close()
}
