package portfolio

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/buffett/backend/internal/contracts"
	"github.com/wonny/buffett/backend/pkg/logger"
)

func stock(symbol, sector string) contracts.StockRecord {
	return contracts.StockRecord{Symbol: symbol, Sector: sector}
}

// fixedSeries returns canned series per symbol for deterministic assertions.
func fixedSeries(series map[string][]float64) SeriesSource {
	return func(symbol string, _ int) []float64 {
		return series[symbol]
	}
}

func TestOptimizeEmptyInput(t *testing.T) {
	o := NewOptimizer(nil, logger.NewNop())

	_, err := o.Optimize(nil)
	require.ErrorIs(t, err, ErrEmptyPortfolio)
}

func TestOptimizeSingleAsset(t *testing.T) {
	o := NewOptimizer(nil, logger.NewNop())

	got, err := o.Optimize([]contracts.StockRecord{stock("005930", "반도체")})
	require.NoError(t, err)

	assert.Equal(t, "single_asset", got.Method)
	assert.Equal(t, 1.0, got.Weights["005930"])
	assert.Equal(t, 0.12, got.ExpectedReturn)
	assert.Equal(t, 0.25, got.ExpectedRisk)
	assert.Equal(t, 0.48, got.SharpeRatio)
	assert.Equal(t, 0.0, got.DiversificationScore)
}

func TestOptimizeWeightsSumToOne(t *testing.T) {
	o := NewOptimizer(nil, logger.NewNop())

	got, err := o.Optimize([]contracts.StockRecord{
		stock("005930", "반도체"),
		stock("000660", "반도체"),
		stock("035420", "인터넷"),
		stock("005380", "자동차"),
	})
	require.NoError(t, err)

	assert.InDelta(t, 1.0, got.TotalWeight(), 1e-6)
	for symbol, w := range got.Weights {
		assert.GreaterOrEqual(t, w, 0.0, "weight for %s", symbol)
	}
	assert.Equal(t, "min_variance", got.Method)
	assert.Greater(t, got.ExpectedRisk, 0.0)
	assert.NotEmpty(t, got.Advice)
}

func TestOptimizeFavorsLowVarianceAsset(t *testing.T) {
	// 독립에 가까운 두 시리즈: 분산이 작은 쪽 비중이 커야 한다
	calm := make([]float64, 252)
	wild := make([]float64, 252)
	for i := range calm {
		sign := 1.0
		if i%2 == 1 {
			sign = -1.0
		}
		calm[i] = sign * 0.002
		wild[i] = sign * 0.03
		if i%3 == 0 {
			wild[i] = -wild[i]
		}
	}

	o := NewOptimizer(fixedSeries(map[string][]float64{"A": calm, "B": wild}), logger.NewNop())

	got, err := o.Optimize([]contracts.StockRecord{stock("A", "금융"), stock("B", "화학")})
	require.NoError(t, err)

	assert.Greater(t, got.Weights["A"], got.Weights["B"])
	assert.InDelta(t, 1.0, got.TotalWeight(), 1e-6)
}

func TestOptimizeSingularCovarianceFallsBack(t *testing.T) {
	// 완전히 동일한 시리즈 → 특이 공분산 행렬
	same := make([]float64, 252)
	for i := range same {
		same[i] = 0.001 * math.Sin(float64(i))
	}

	o := NewOptimizer(fixedSeries(map[string][]float64{
		"A": same, "B": same, "C": same,
	}), logger.NewNop())

	got, err := o.Optimize([]contracts.StockRecord{
		stock("A", "금융"), stock("B", "화학"), stock("C", "통신"),
	})
	require.NoError(t, err)

	assert.Equal(t, "equal_weight_fallback", got.Method)
	for _, w := range got.Weights {
		assert.InDelta(t, 1.0/3, w, 1e-9)
	}
}

func TestOptimizeDeterministic(t *testing.T) {
	o := NewOptimizer(nil, logger.NewNop())
	stocks := []contracts.StockRecord{
		stock("005930", "반도체"),
		stock("035420", "인터넷"),
		stock("005380", "자동차"),
	}

	first, err := o.Optimize(stocks)
	require.NoError(t, err)
	second, err := o.Optimize(stocks)
	require.NoError(t, err)

	assert.Equal(t, first.Weights, second.Weights)
	assert.Equal(t, first.ExpectedReturn, second.ExpectedReturn)
	assert.Equal(t, first.MaxDrawdown, second.MaxDrawdown)
}

func TestMaxDrawdown(t *testing.T) {
	// 10% 상승 후 20% 하락: peak 1.1 → trough 0.88 → drawdown 0.2
	series := [][]float64{{0.10, -0.20, 0.05}}
	got := maxDrawdown([]float64{1.0}, series)
	assert.InDelta(t, 0.20, got, 1e-9)
}

func TestMaxDrawdownMonotonicPathIsZero(t *testing.T) {
	series := [][]float64{{0.01, 0.02, 0.005}}
	assert.Equal(t, 0.0, maxDrawdown([]float64{1.0}, series))
}

func TestDiversificationScore(t *testing.T) {
	t.Run("equal weights five sectors is max", func(t *testing.T) {
		weights := []float64{0.2, 0.2, 0.2, 0.2, 0.2}
		got := diversificationScore(weights, 5)
		assert.InDelta(t, 100.0, got, 1e-9)
	})

	t.Run("concentrated weights score lower", func(t *testing.T) {
		balanced := diversificationScore([]float64{0.5, 0.5}, 2)
		concentrated := diversificationScore([]float64{0.95, 0.05}, 2)
		assert.Greater(t, balanced, concentrated)
	})

	t.Run("sector part caps at five sectors", func(t *testing.T) {
		weights := []float64{0.125, 0.125, 0.125, 0.125, 0.125, 0.125, 0.125, 0.125}
		got := diversificationScore(weights, 8)
		assert.InDelta(t, 100.0, got, 1e-9)
	})
}

func TestAdvice(t *testing.T) {
	assert.Contains(t, advice(1.2, 90), "우수")
	assert.Contains(t, advice(0.8, 50), "양호")
	assert.Contains(t, advice(0.3, 90), "재검토")
}
