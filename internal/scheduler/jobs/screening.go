package jobs

import (
	"context"
	"fmt"

	"github.com/wonny/buffett/backend/internal/contracts"
	"github.com/wonny/buffett/backend/internal/screener"
	"github.com/wonny/buffett/backend/pkg/logger"
)

// ScreeningWarmJob runs the default screening for each market segment
// before the KRX open so the first API callers of the day hit a warm cache.
// ⭐ SSOT: 스크리닝 사전 실행 스케줄은 이 Job에서만
type ScreeningWarmJob struct {
	screener *screener.Screener
	segments []string
	logger   *logger.Logger
}

// NewScreeningWarmJob creates the daily screening warm-up job.
func NewScreeningWarmJob(s *screener.Screener, log *logger.Logger) *ScreeningWarmJob {
	return &ScreeningWarmJob{
		screener: s,
		segments: []string{"KOSPI", "KOSDAQ"},
		logger:   log,
	}
}

// Name returns the job name
func (j *ScreeningWarmJob) Name() string {
	return "screening_warmup"
}

// Schedule returns the cron schedule (weekdays 07:30 KST, before market open)
func (j *ScreeningWarmJob) Schedule() string {
	return "0 30 7 * * 1-5"
}

// Run executes the screening for every configured segment.
func (j *ScreeningWarmJob) Run(ctx context.Context) error {
	for _, segment := range j.segments {
		req := contracts.DefaultScreeningRequest()
		req.MarketSegment = segment

		result, err := j.screener.Screen(ctx, &req)
		if err != nil {
			return fmt.Errorf("warm screening for %s: %w", segment, err)
		}

		j.logger.WithFields(map[string]interface{}{
			"segment":   segment,
			"qualified": result.FilterCriteria.QualifiedCount,
			"partial":   result.Partial,
		}).Info("Screening warm-up completed")
	}

	return nil
}
