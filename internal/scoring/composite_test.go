package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/wonny/buffett/backend/internal/contracts"
	"github.com/wonny/buffett/backend/internal/strategyconfig"
	"github.com/wonny/buffett/backend/pkg/logger"
)

func TestDynamicWeights_AlwaysNormalized(t *testing.T) {
	cfg := strategyconfig.Default()

	combos := []struct {
		name                    string
		includeESG, includeRisk bool
		factors                 int
	}{
		{"six factors", false, false, 6},
		{"esg only", true, false, 7},
		{"risk only", false, true, 7},
		{"all eight", true, true, 8},
	}

	for _, tt := range combos {
		t.Run(tt.name, func(t *testing.T) {
			weights := DynamicWeights(cfg, tt.includeESG, tt.includeRisk)
			assert.Len(t, weights, tt.factors)

			var sum float64
			for _, w := range weights {
				assert.Greater(t, w, 0.0)
				sum += w
			}
			assert.InDelta(t, 1.0, sum, 1e-6)
		})
	}
}

func TestCompose_ConvexCombination(t *testing.T) {
	c := NewCompositor(strategyconfig.Default(), logger.NewNop())

	stock := &contracts.StockRecord{
		Symbol:             "005930",
		MarketCapScore:     100,
		ROEScore:           100,
		ProfitabilityScore: 100,
		GrowthScore:        100,
		FCFProjectionScore: 100,
		ValuationScore:     100,
		ESGScore:           100,
		RiskScore:          100,
	}

	c.Compose(stock, true, true)

	// 모든 점수가 100이면 합도 정확히 100
	assert.Equal(t, 100.0, stock.TotalScore)
	assert.GreaterOrEqual(t, stock.TotalScore, 0.0)
	assert.LessOrEqual(t, stock.TotalScore, 100.0)
}

func TestCompose_TopStockIsStrongBuy(t *testing.T) {
	c := NewCompositor(strategyconfig.Default(), logger.NewNop())

	// 수익성은 {50,80} 래더라 최대 80: 나머지 전부 100이면
	// 0.15*100 + 0.20*100 + 0.20*80 + 0.15*100 + 0.20*100 + 0.10*100 = 96.0
	stock := &contracts.StockRecord{
		Symbol:             "005930",
		MarketCapScore:     100,
		ROEScore:           100,
		ProfitabilityScore: 80,
		GrowthScore:        100,
		FCFProjectionScore: 100,
		ValuationScore:     100,
	}

	c.Compose(stock, false, false)

	assert.Equal(t, 96.0, stock.TotalScore)
	assert.Equal(t, "Strong Buy", stock.Recommendation)
}

func TestCompose_RoundsToOneDecimal(t *testing.T) {
	c := NewCompositor(strategyconfig.Default(), logger.NewNop())

	stock := &contracts.StockRecord{
		MarketCapScore:     90,
		ROEScore:           80,
		ProfitabilityScore: 50,
		GrowthScore:        60,
		FCFProjectionScore: 40,
		ValuationScore:     60,
	}

	c.Compose(stock, false, false)

	// 0.15*90+0.20*80+0.20*50+0.15*60+0.20*40+0.10*60 = 62.5
	assert.Equal(t, 62.5, stock.TotalScore)
	assert.Equal(t, "Weak Hold", stock.Recommendation)
}

func TestRecommend_BaseLadder(t *testing.T) {
	c := NewCompositor(strategyconfig.Default(), logger.NewNop())

	tests := []struct {
		score float64
		want  string
	}{
		{90, "Strong Buy"}, {85, "Strong Buy"},
		{80, "Buy"}, {75, "Buy"},
		{70, "Hold"}, {65, "Hold"},
		{55, "Weak Hold"}, {50, "Weak Hold"},
		{49.9, "Avoid"}, {10, "Avoid"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, c.Recommend(tt.score, 0, 0), "score=%v", tt.score)
	}
}

func TestRecommend_Adjustments(t *testing.T) {
	c := NewCompositor(strategyconfig.Default(), logger.NewNop())

	tests := []struct {
		name            string
		score, esg, risk float64
		want            string
	}{
		{"esg downgrade of strong buy", 90, 55, 0, "Buy (ESG 주의)"},
		{"esg downgrade of buy", 78, 55, 0, "Hold (ESG 개선 필요)"},
		{"risk downgrade of strong buy", 90, 0, 55, "Buy (고위험)"},
		{"risk downgrade of buy", 78, 0, 55, "Hold (리스크 관리 필요)"},
		// ESG 먼저, 리스크가 그 결과에 다시 적용됨
		{"esg then risk compose", 90, 55, 55, "Hold (리스크 관리 필요)"},
		{"hold is not adjusted", 70, 55, 55, "Hold"},
		{"healthy scores untouched", 90, 80, 80, "Strong Buy"},
		{"zero esg means absent", 90, 0, 0, "Strong Buy"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, c.Recommend(tt.score, tt.esg, tt.risk))
		})
	}
}
