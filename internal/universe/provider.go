package universe

import (
	"context"

	"github.com/wonny/buffett/backend/internal/contracts"
)

// Provider supplies the screening universe as scoring-ready stock records.
// segment는 KOSPI/KOSDAQ, sectors가 비어 있지 않으면 해당 업종만.
type Provider interface {
	Universe(ctx context.Context, segment string, sectors []string) ([]contracts.StockRecord, error)
}

// filterSectors keeps only stocks in the requested sectors. 빈 필터는 전체.
func filterSectors(stocks []contracts.StockRecord, sectors []string) []contracts.StockRecord {
	if len(sectors) == 0 {
		return stocks
	}
	allowed := make(map[string]struct{}, len(sectors))
	for _, s := range sectors {
		allowed[s] = struct{}{}
	}

	filtered := make([]contracts.StockRecord, 0, len(stocks))
	for _, stock := range stocks {
		if _, ok := allowed[stock.Sector]; ok {
			filtered = append(filtered, stock)
		}
	}
	return filtered
}
