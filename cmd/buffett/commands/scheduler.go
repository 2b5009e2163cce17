package commands

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/buffett/backend/internal/scheduler"
	"github.com/wonny/buffett/backend/internal/scheduler/jobs"
)

// schedulerCmd represents the scheduler command
var schedulerCmd = &cobra.Command{
	Use:   "scheduler",
	Short: "스케줄러 시작",
	Long: `주기 작업 스케줄러를 시작합니다.

Jobs:
  screening_warmup     - 평일 07:30 장전 스크리닝 캐시 예열
  screening_run_prune  - 매일 02:00 오래된 스크리닝 이력 정리 (DB 사용 시)

Example:
  go run ./cmd/buffett scheduler
  go run ./cmd/buffett scheduler --retention 720h`,
	RunE: runScheduler,
}

var pruneRetention time.Duration

func init() {
	rootCmd.AddCommand(schedulerCmd)

	schedulerCmd.Flags().DurationVar(&pruneRetention, "retention", 30*24*time.Hour, "스크리닝 이력 보존 기간")
}

func runScheduler(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	log := a.log

	sched := scheduler.New(log)
	if err := sched.AddJob(jobs.NewScreeningWarmJob(a.screener, log)); err != nil {
		return fmt.Errorf("add warm-up job: %w", err)
	}
	if a.repo != nil {
		if err := sched.AddJob(jobs.NewRunPruneJob(a.repo, pruneRetention, log)); err != nil {
			return fmt.Errorf("add prune job: %w", err)
		}
	}

	sched.Start()
	fmt.Println("✅ Scheduler running. Press Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	sched.Stop()
	return nil
}
