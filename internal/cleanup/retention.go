package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/JitendraDubey2004/TalentFlow/internal/storage"
)

// Retention handles periodic pruning of old assessment submissions
type Retention struct {
	repo     storage.Repository
	maxAge   time.Duration
	interval time.Duration
}

// NewRetention creates a new retention worker
func NewRetention(repo storage.Repository, maxAge, interval time.Duration) *Retention {
	if interval <= 0 {
		interval = time.Hour
	}

	return &Retention{
		repo:     repo,
		maxAge:   maxAge,
		interval: interval,
	}
}

// Start begins the retention worker in a goroutine. It is a no-op when no
// max age is configured.
func (r *Retention) Start(ctx context.Context) {
	if r.maxAge <= 0 {
		slog.Info("submission retention disabled")
		return
	}
	go r.run(ctx)
}

// run is the main loop for the retention worker
func (r *Retention) run(ctx context.Context) {
	slog.Info("retention worker started",
		"max_age", r.maxAge,
		"interval", r.interval,
	)

	ticker := time.NewTicker(r.interval)
	defer ticker.Stop()

	// Run immediately on start
	r.prune(ctx)

	for {
		select {
		case <-ctx.Done():
			slog.Info("retention worker stopped")
			return
		case <-ticker.C:
			r.prune(ctx)
		}
	}
}

// prune removes submissions older than the retention window
func (r *Retention) prune(ctx context.Context) {
	cutoff := time.Now().UTC().Add(-r.maxAge)
	slog.Debug("running retention cycle", "cutoff", cutoff)

	removed, err := r.repo.DeleteSubmissionsBefore(ctx, cutoff)
	if err != nil {
		slog.Error("failed to prune submissions", "error", err)
		return
	}

	if removed > 0 {
		slog.Info("pruned old submissions", "count", removed, "cutoff", cutoff)
	}
}
