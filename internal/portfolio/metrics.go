package portfolio

import (
	"math"

	"github.com/wonny/buffett/backend/internal/contracts"
)

// maxDrawdown follows the weighted portfolio cumulative path and reports the
// deepest peak-to-trough loss as a positive fraction.
func maxDrawdown(weights []float64, series [][]float64) float64 {
	if len(series) == 0 {
		return 0
	}
	t := len(series[0])
	for _, s := range series[1:] {
		if len(s) < t {
			t = len(s)
		}
	}

	cum := 1.0
	peak := 1.0
	worst := 0.0
	for i := 0; i < t; i++ {
		dailyReturn := 0.0
		for j, w := range weights {
			dailyReturn += w * series[j][i]
		}
		cum *= 1 + dailyReturn
		if cum > peak {
			peak = cum
		}
		drawdown := (cum - peak) / peak
		if drawdown < worst {
			worst = drawdown
		}
	}
	return math.Abs(worst)
}

// diversificationScore blends weight entropy (60%) with sector coverage (40%).
// 섹터 5개면 섹터 파트 만점.
func diversificationScore(weights []float64, sectors int) float64 {
	entropyPart := 0.0
	if len(weights) > 1 {
		entropy := 0.0
		for _, w := range weights {
			if w > 0 {
				entropy -= w * math.Log(w)
			}
		}
		entropyPart = entropy / math.Log(float64(len(weights))) * 100
	}

	sectorPart := math.Min(100, float64(sectors)/5*100)

	return 0.6*entropyPart + 0.4*sectorPart
}

func sectorCount(stocks []contracts.StockRecord) int {
	seen := make(map[string]struct{}, len(stocks))
	for _, s := range stocks {
		if s.Sector != "" {
			seen[s.Sector] = struct{}{}
		}
	}
	return len(seen)
}

// advice summarizes the risk-adjusted quality of the optimized portfolio.
func advice(sharpe, diversification float64) string {
	switch {
	case sharpe > 1.0 && diversification > 80:
		return "위험 대비 수익과 분산 효과가 모두 우수한 포트폴리오입니다"
	case sharpe > 0.7:
		return "양호한 포트폴리오입니다. 섹터 분산 보완을 검토하세요"
	default:
		return "변동성 대비 기대수익이 낮습니다. 종목 구성 재검토가 필요합니다"
	}
}
