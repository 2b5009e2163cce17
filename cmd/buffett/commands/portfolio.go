package commands

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/wonny/buffett/backend/internal/contracts"
	"github.com/wonny/buffett/backend/internal/universe"
)

// portfolioCmd represents the portfolio command
var portfolioCmd = &cobra.Command{
	Use:   "portfolio [symbol...]",
	Short: "포트폴리오 비중 최적화",
	Long: `지정한 종목들로 최소분산 포트폴리오 비중을 계산합니다.

업종 정보는 스크리닝 유니버스에서 조회하므로 유니버스에 있는 종목만
받는다. 종목을 지정하지 않으면 유니버스 전체를 사용합니다.

Example:
  go run ./cmd/buffett portfolio 005930 000660 035420
  go run ./cmd/buffett portfolio`,
	RunE: runPortfolio,
}

func init() {
	rootCmd.AddCommand(portfolioCmd)
}

func runPortfolio(cmd *cobra.Command, args []string) error {
	a, err := buildApp()
	if err != nil {
		return err
	}
	defer a.close()

	provider := universe.NewMockProvider(a.log)
	stocks, err := provider.Universe(context.Background(), "ALL", nil)
	if err != nil {
		return fmt.Errorf("load universe: %w", err)
	}

	selected := stocks
	if len(args) > 0 {
		wanted := make(map[string]bool, len(args))
		for _, symbol := range args {
			wanted[symbol] = true
		}
		selected = make([]contracts.StockRecord, 0, len(args))
		for _, stock := range stocks {
			if wanted[stock.Symbol] {
				selected = append(selected, stock)
				delete(wanted, stock.Symbol)
			}
		}
		for symbol := range wanted {
			return fmt.Errorf("unknown symbol: %s", symbol)
		}
	}

	result, err := a.optimizer.Optimize(selected)
	if err != nil {
		return fmt.Errorf("optimization failed: %w", err)
	}

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	encoder.SetEscapeHTML(false)
	return encoder.Encode(result)
}
