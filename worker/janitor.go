// Package worker runs background housekeeping on a cron schedule.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/kmorales/wayfarer/pkg/logger"
)

// Pruner drops expired cache entries and reports how many were removed. The
// in-process cache satisfies this; the Redis backend expires server-side and
// needs no pruning.
type Pruner interface {
	Prune() int
}

// HistoryPurger deletes search-history records older than the retention
// window.
type HistoryPurger interface {
	PurgeOlderThan(ctx context.Context, retention time.Duration) (int64, error)
}

// Janitor periodically prunes the result cache and purges old search history.
// Neither task affects correctness: cache expiry is lazy and history is
// advisory, so the janitor only reclaims space.
type Janitor struct {
	cron      *cron.Cron
	pruner    Pruner
	purger    HistoryPurger
	retention time.Duration
	log       *logger.Logger
}

// NewJanitor builds a janitor. pruner and purger may each be nil, in which
// case the corresponding task is skipped.
func NewJanitor(pruner Pruner, purger HistoryPurger, retention time.Duration, log *logger.Logger) *Janitor {
	if log == nil {
		log = logger.Nop()
	}
	return &Janitor{
		cron:      cron.New(),
		pruner:    pruner,
		purger:    purger,
		retention: retention,
		log:       log,
	}
}

// Start schedules the housekeeping run and starts the cron loop.
func (j *Janitor) Start(schedule string) error {
	if _, err := j.cron.AddFunc(schedule, j.run); err != nil {
		return fmt.Errorf("failed to schedule janitor: %w", err)
	}
	j.cron.Start()
	j.log.Info("janitor started", "schedule", schedule)
	return nil
}

// Stop halts the cron loop and waits for an in-progress run to finish.
func (j *Janitor) Stop() {
	ctx := j.cron.Stop()
	<-ctx.Done()
	j.log.Info("janitor stopped")
}

func (j *Janitor) run() {
	if j.pruner != nil {
		if removed := j.pruner.Prune(); removed > 0 {
			j.log.Debug("pruned expired cache entries", "removed", removed)
		}
	}

	if j.purger != nil && j.retention > 0 {
		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()
		removed, err := j.purger.PurgeOlderThan(ctx, j.retention)
		if err != nil {
			j.log.Error(err, "search history purge failed")
			return
		}
		if removed > 0 {
			j.log.Info("purged old search history", "removed", removed)
		}
	}
}
