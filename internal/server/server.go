package server

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bhel/hrm/internal/config"
	"github.com/bhel/hrm/internal/database"
	"github.com/bhel/hrm/internal/service"
	_ "github.com/go-sql-driver/mysql"
	"github.com/redis/go-redis/v9"
)

type Server struct {
	cfg     *config.Config
	db      *sql.DB
	manager *database.Manager
	rdb     *redis.Client
	router  http.Handler
	cleanup *service.CleanupService
	logger  *slog.Logger
}

func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	s := &Server{
		cfg:    cfg,
		logger: logger,
	}

	// Connect to MySQL
	db, err := sql.Open("mysql", cfg.Database.DSN())
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}
	db.SetMaxOpenConns(cfg.Database.MaxConns)
	db.SetMaxIdleConns(cfg.Database.MaxIdle)
	db.SetConnMaxLifetime(5 * time.Minute)
	if err := db.PingContext(context.Background()); err != nil {
		db.Close()
		return nil, fmt.Errorf("pinging database: %w", err)
	}
	s.db = db
	logger.Info("connected to MySQL", "host", cfg.Database.Host, "db", cfg.Database.Name)

	// The manager bootstraps the schema; a bootstrap failure is logged as
	// fatal but the process still serves whatever the store can answer.
	s.manager = database.NewManager(db, logger)

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Network:  cfg.Redis.Network(),
		Addr:     cfg.Redis.Addr(),
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		db.Close()
		return nil, fmt.Errorf("connecting to redis: %w", err)
	}
	s.rdb = rdb
	logger.Info("connected to Redis", "addr", cfg.Redis.Addr())

	// Setup routes
	s.router = s.setupRoutes()

	return s, nil
}

func (s *Server) Start() error {
	addr := s.cfg.Server.ListenAddr

	srv := &http.Server{
		Addr:         addr,
		Handler:      s.router,
		ReadTimeout:  s.cfg.Server.ReadTimeout,
		WriteTimeout: s.cfg.Server.WriteTimeout,
		IdleTimeout:  s.cfg.Server.IdleTimeout,
	}

	cleanupCtx, cancelCleanup := context.WithCancel(context.Background())
	defer cancelCleanup()
	if s.cleanup != nil {
		go s.cleanup.Start(cleanupCtx)
	}

	// Graceful shutdown
	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", "addr", addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	case sig := <-quit:
		s.logger.Info("shutting down server", "signal", sig.String())
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown: %w", err)
	}

	if s.cleanup != nil {
		s.cleanup.Stop()
	}
	s.db.Close()
	s.rdb.Close()
	s.logger.Info("server stopped gracefully")

	return nil
}
