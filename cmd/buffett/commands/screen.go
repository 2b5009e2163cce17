package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/buffett/backend/internal/contracts"
)

// screenCmd represents the screen command
var screenCmd = &cobra.Command{
	Use:   "screen",
	Short: "스크리닝 1회 실행",
	Long: `버핏 기준 스크리닝을 한 번 실행하고 결과를 JSON으로 출력합니다.

Example:
  go run ./cmd/buffett screen
  go run ./cmd/buffett screen --segment KOSDAQ --min-score 70 --max-results 5
  go run ./cmd/buffett screen --real --sectors 반도체,인터넷`,
	RunE: runScreen,
}

var (
	screenSegment    string
	screenMinScore   float64
	screenMaxResults int
	screenSectors    []string
	screenReal       bool
	screenNoESG      bool
	screenNoRisk     bool
	screenNoPort     bool
)

func init() {
	rootCmd.AddCommand(screenCmd)

	screenCmd.Flags().StringVar(&screenSegment, "segment", "KOSPI", "시장 구분 (KOSPI|KOSDAQ|ALL)")
	screenCmd.Flags().Float64Var(&screenMinScore, "min-score", 60, "최소 종합 점수 (0~100)")
	screenCmd.Flags().IntVar(&screenMaxResults, "max-results", 10, "최대 추천 종목 수")
	screenCmd.Flags().StringSliceVar(&screenSectors, "sectors", nil, "업종 필터 (쉼표 구분)")
	screenCmd.Flags().BoolVar(&screenReal, "real", false, "실데이터 사용 (KRX/DART/네이버)")
	screenCmd.Flags().BoolVar(&screenNoESG, "no-esg", false, "ESG 분석 제외")
	screenCmd.Flags().BoolVar(&screenNoRisk, "no-risk", false, "리스크 분석 제외")
	screenCmd.Flags().BoolVar(&screenNoPort, "no-portfolio", false, "포트폴리오 최적화 제외")
}

func runScreen(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	req := contracts.ScreeningRequest{
		MarketSegment:       screenSegment,
		MinScore:            screenMinScore,
		MaxResults:          screenMaxResults,
		Sectors:             screenSectors,
		UseRealData:         screenReal,
		IncludeESG:          !screenNoESG,
		IncludeRiskAnalysis: !screenNoRisk,
		IncludePortfolio:    !screenNoPort,
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Screening.BatchTimeout)
	defer cancel()

	result, err := a.screener.Screen(ctx, &req)
	if err != nil {
		return fmt.Errorf("screening failed: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(result)
}
