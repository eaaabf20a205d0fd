// Package retention prunes old game results on a schedule.
package retention

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/typeflow/typeflow/internal/metrics"
)

// Store is the subset of db.Repository the pruner needs.
type Store interface {
	DeleteOldResults(ctx context.Context, before time.Time) (int64, error)
}

type Pruner struct {
	store  Store
	maxAge time.Duration
	log    *slog.Logger
	now    func() time.Time
}

func NewPruner(store Store, maxAge time.Duration, log *slog.Logger) *Pruner {
	return &Pruner{store: store, maxAge: maxAge, log: log, now: time.Now}
}

// Prune deletes every result older than the configured age.
func (p *Pruner) Prune(ctx context.Context) (int64, error) {
	cutoff := p.now().Add(-p.maxAge)
	n, err := p.store.DeleteOldResults(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("deleting results before %s: %w", cutoff.Format(time.RFC3339), err)
	}
	metrics.ResultsDeleted.Add(float64(n))
	if n > 0 {
		p.log.InfoContext(ctx, "pruned old results", "count", n, "before", cutoff)
	}
	return n, nil
}

// Run prunes once immediately and then every interval until ctx is done.
// Failures are logged and retried on the next tick.
func (p *Pruner) Run(ctx context.Context, interval time.Duration) error {
	p.log.InfoContext(ctx, "retention starting", "interval", interval, "max_age", p.maxAge)
	p.runOnce(ctx)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			p.runOnce(ctx)
		case <-ctx.Done():
			p.log.Info("retention stopped")
			return nil
		}
	}
}

func (p *Pruner) runOnce(ctx context.Context) {
	if _, err := p.Prune(ctx); err != nil && ctx.Err() == nil {
		p.log.ErrorContext(ctx, "pruning results", "error", err)
	}
}
