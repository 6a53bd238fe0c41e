package service

import (
	"context"
	"log/slog"
	"time"

	"github.com/bhel/hrm/internal/repository"
)

// CleanupService periodically purges expired sessions from the store.
type CleanupService struct {
	queries  *repository.Queries
	interval time.Duration
	logger   *slog.Logger
	stopCh   chan struct{}
}

func NewCleanupService(queries *repository.Queries, interval time.Duration, logger *slog.Logger) *CleanupService {
	if interval < time.Minute {
		interval = time.Hour
	}
	return &CleanupService{
		queries:  queries,
		interval: interval,
		logger:   logger,
		stopCh:   make(chan struct{}),
	}
}

func (s *CleanupService) Start(ctx context.Context) {
	// Run once shortly after startup, then on the configured interval.
	timer := time.NewTimer(1 * time.Minute)
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-s.stopCh:
			return
		case <-timer.C:
			s.runCleanup(ctx)
			timer.Reset(s.interval)
		}
	}
}

func (s *CleanupService) Stop() {
	close(s.stopCh)
}

func (s *CleanupService) RunNow(ctx context.Context) (int64, error) {
	count, err := s.queries.DeleteExpiredSessions(ctx)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (s *CleanupService) runCleanup(ctx context.Context) {
	count, err := s.queries.DeleteExpiredSessions(ctx)
	if err != nil {
		s.logger.Error("failed to delete expired sessions", "error", err)
		return
	}
	if count > 0 {
		s.logger.Info("expired sessions purged", "count", count)
	}
}
