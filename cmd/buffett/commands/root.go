package commands

import (
	"github.com/spf13/cobra"
)

var (
	// Global flags
	verbose bool
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "buffett",
	Short: "Buffett Screener - 가치투자 기준 종목 스크리닝 시스템",
	Long: `Buffett Screener CLI

버핏 스타일 다기준 스크리닝 엔진.
시가총액, ROE, 수익성, 성장성, FCF, 밸류에이션에 ESG·리스크 분석을 더해
종목을 평가하고 포트폴리오 비중까지 제안한다.

Usage:
  go run ./cmd/buffett [command]

Examples:
  go run ./cmd/buffett api
  go run ./cmd/buffett screen --segment KOSPI --min-score 70
  go run ./cmd/buffett analyze 005930`,
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
}
