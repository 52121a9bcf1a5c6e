package scheduler

import (
	"context"
	"time"

	"github.com/mkravets/storefront-service/internal/application/ports"
	"github.com/mkravets/storefront-service/internal/pkg/clock"
	"github.com/mkravets/storefront-service/internal/pkg/logger"
)

// AttemptRetention periodically prunes old checkout attempt rows so the
// diagnostics table does not grow without bound.
type AttemptRetention struct {
	attempts  ports.AttemptLog
	logger    *logger.Logger
	clock     clock.Clock
	retention time.Duration
	stopChan  chan struct{}
}

func NewAttemptRetention(
	attempts ports.AttemptLog,
	logger *logger.Logger,
	clk clock.Clock,
	retention time.Duration,
) *AttemptRetention {
	return &AttemptRetention{
		attempts:  attempts,
		logger:    logger,
		clock:     clk,
		retention: retention,
		stopChan:  make(chan struct{}),
	}
}

func (s *AttemptRetention) Start(ctx context.Context) {
	s.logger.Info("Starting attempt retention sweeper", "retention", s.retention.String())

	if err := s.sweep(ctx); err != nil {
		s.logger.Error("Failed initial attempt sweep", "error", err)
	}

	ticker := time.NewTicker(time.Hour)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info("Attempt retention sweeper stopped")
			return
		case <-s.stopChan:
			s.logger.Info("Attempt retention sweeper stopped")
			return
		case <-ticker.C:
			if err := s.sweep(ctx); err != nil {
				s.logger.Error("Failed scheduled attempt sweep", "error", err)
			}
		}
	}
}

func (s *AttemptRetention) Stop() {
	close(s.stopChan)
}

func (s *AttemptRetention) sweep(ctx context.Context) error {
	cutoff := s.clock.Now().Add(-s.retention)

	deleted, err := s.attempts.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return err
	}

	if deleted > 0 {
		s.logger.Info("Pruned checkout attempts", "deleted", deleted, "cutoff", cutoff)
	}

	return nil
}
