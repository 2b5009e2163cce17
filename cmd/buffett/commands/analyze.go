package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// analyzeCmd represents the analyze command
var analyzeCmd = &cobra.Command{
	Use:   "analyze [symbol]",
	Short: "단일 종목 분석",
	Long: `종목 하나에 대해 전체 스코어링·ESG·리스크 분석을 실행합니다.

Example:
  go run ./cmd/buffett analyze 005930
  go run ./cmd/buffett analyze 035420 --real`,
	Args: cobra.ExactArgs(1),
	RunE: runAnalyze,
}

var analyzeReal bool

func init() {
	rootCmd.AddCommand(analyzeCmd)

	analyzeCmd.Flags().BoolVar(&analyzeReal, "real", false, "실데이터 사용 (KRX/DART/네이버)")
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	ctx, cancel := context.WithTimeout(context.Background(), a.cfg.Screening.BatchTimeout)
	defer cancel()

	analysis, err := a.screener.AnalyzeStock(ctx, args[0], analyzeReal)
	if err != nil {
		return fmt.Errorf("analysis failed: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(analysis)
}
