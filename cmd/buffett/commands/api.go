package commands

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/wonny/buffett/backend/internal/api"
	"github.com/wonny/buffett/backend/internal/api/handlers"
)

// apiCmd represents the api command
var apiCmd = &cobra.Command{
	Use:   "api",
	Short: "API 서버 시작",
	Long: `REST API 서버를 시작합니다.

Endpoints:
  GET  /health                        - Health check
  POST /api/screen                    - 스크리닝 실행
  GET  /api/screen/runs               - 저장된 스크리닝 이력 조회
  GET  /api/stocks/{symbol}/analysis  - 단일 종목 분석
  POST /api/portfolio/optimize        - 포트폴리오 비중 최적화

Example:
  go run ./cmd/buffett api
  go run ./cmd/buffett api --port 8080`,
	RunE: runAPIServer,
}

var apiPort string

func init() {
	rootCmd.AddCommand(apiCmd)

	apiCmd.Flags().StringVar(&apiPort, "port", "", "API 서버 포트 (기본: PORT 환경변수)")
}

func runAPIServer(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	if apiPort != "" {
		a.cfg.Port = apiPort
	}

	log := a.log

	// repo가 nil이면 이력 엔드포인트는 503
	var runs handlers.RunReader
	if a.repo != nil {
		runs = a.repo
	}
	screenHandler := handlers.NewScreenHandler(a.screener, runs, log)
	portfolioHandler := handlers.NewPortfolioHandler(a.optimizer, log)

	router := api.NewRouter(screenHandler, portfolioHandler, log)
	server := api.New(a.cfg, log, router)

	go func() {
		if err := server.Start(); err != nil {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	log.Info("API server started successfully")
	fmt.Printf("\n✅ Server running on http://localhost:%s\n", a.cfg.Port)
	fmt.Println("\nAvailable endpoints:")
	fmt.Println("  GET  /health")
	fmt.Println("  POST /api/screen")
	fmt.Println("  GET  /api/screen/runs")
	fmt.Println("  GET  /api/stocks/{symbol}/analysis")
	fmt.Println("  POST /api/portfolio/optimize")
	fmt.Println("\nPress Ctrl+C to stop")

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}

	log.Info("Server stopped")
	return nil
}
