package workers

import (
	"context"
	"time"

	"hera_backend/internal/logger"
	"hera_backend/internal/repositories"
)

// issuanceWindow is how long code issuances count toward the rate limit.
const issuanceWindow = 24 * time.Hour

type VerificationSweeper struct {
	repo     repositories.VerificationRepository
	interval time.Duration
	now      func() time.Time
}

func NewVerificationSweeper(repo repositories.VerificationRepository, interval time.Duration) *VerificationSweeper {
	return &VerificationSweeper{
		repo:     repo,
		interval: interval,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// Start runs the sweep loop until ctx is cancelled.
func (w *VerificationSweeper) Start(ctx context.Context) {
	go w.run(ctx)
}

func (w *VerificationSweeper) run(ctx context.Context) {
	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			logger.Info("verification sweeper stopped")
			return
		case <-ticker.C:
			w.Sweep(ctx)
		}
	}
}

// Sweep deletes expired codes and issuances outside the rate-limit window.
func (w *VerificationSweeper) Sweep(ctx context.Context) {
	now := w.now()

	codes, err := w.repo.DeleteExpiredCodes(ctx, now)
	if err != nil || codes > 0 {
		logger.WorkerLog("verification-sweeper", "delete expired codes", err, "deleted", codes)
	}

	issuances, err := w.repo.DeleteIssuancesBefore(ctx, now.Add(-issuanceWindow))
	if err != nil || issuances > 0 {
		logger.WorkerLog("verification-sweeper", "delete old issuances", err, "deleted", issuances)
	}
}
