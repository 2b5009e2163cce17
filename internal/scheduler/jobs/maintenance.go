package jobs

import (
	"context"
	"time"

	"github.com/wonny/buffett/backend/internal/screener"
	"github.com/wonny/buffett/backend/pkg/logger"
)

// RunPruneJob deletes old persisted screening runs
type RunPruneJob struct {
	repo      *screener.Repository
	retention time.Duration
	logger    *logger.Logger
}

// NewRunPruneJob creates a prune job keeping runs for the given retention.
func NewRunPruneJob(repo *screener.Repository, retention time.Duration, log *logger.Logger) *RunPruneJob {
	return &RunPruneJob{
		repo:      repo,
		retention: retention,
		logger:    log,
	}
}

// Name returns the job name
func (j *RunPruneJob) Name() string {
	return "screening_run_prune"
}

// Schedule returns the cron schedule (daily at 02:00)
func (j *RunPruneJob) Schedule() string {
	return "0 0 2 * * *"
}

// Run executes the prune
func (j *RunPruneJob) Run(ctx context.Context) error {
	cutoff := time.Now().Add(-j.retention)

	removed, err := j.repo.PruneRuns(ctx, cutoff)
	if err != nil {
		return err
	}

	if removed > 0 {
		j.logger.WithField("removed", removed).Info("Old screening runs pruned")
	}

	return nil
}
