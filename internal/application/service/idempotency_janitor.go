package service

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/sangkips/billdesk-api/internal/domain/repository"
	"github.com/sangkips/billdesk-api/pkg/logger"
)

// IdempotencyJanitor periodically removes expired idempotency keys
type IdempotencyJanitor struct {
	repo     repository.IdempotencyRepository
	interval time.Duration
	log      zerolog.Logger
	now      func() time.Time
}

// NewIdempotencyJanitor creates a janitor that sweeps every interval
func NewIdempotencyJanitor(repo repository.IdempotencyRepository, interval time.Duration) *IdempotencyJanitor {
	if interval <= 0 {
		interval = time.Hour
	}
	return &IdempotencyJanitor{
		repo:     repo,
		interval: interval,
		log:      logger.WithComponent("idempotency"),
		now:      time.Now,
	}
}

// Sweep deletes every key that has expired
func (j *IdempotencyJanitor) Sweep(ctx context.Context) (int64, error) {
	n, err := j.repo.DeleteExpired(ctx, j.now())
	if err != nil {
		return 0, err
	}
	if n > 0 {
		j.log.Debug().Int64("deleted", n).Msg("expired idempotency keys removed")
	}
	return n, nil
}

// Run sweeps until ctx is done
func (j *IdempotencyJanitor) Run(ctx context.Context) {
	ticker := time.NewTicker(j.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if _, err := j.Sweep(ctx); err != nil {
				j.log.Error().Err(err).Msg("failed to sweep idempotency keys")
			}
		}
	}
}
