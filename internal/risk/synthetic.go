package risk

import (
	"math"
	"math/rand"

	"github.com/wonny/buffett/backend/internal/contracts"
	"github.com/wonny/buffett/backend/pkg/seed"
)

// marketProxySymbol seeds the shared synthetic market series.
const marketProxySymbol = "KOSPI"

// SyntheticReturns exposes the per-symbol synthetic series for consumers that
// need raw return history (포트폴리오 최적화 등).
func SyntheticReturns(symbol string, days int) []float64 {
	return syntheticReturns(symbol, days)
}

// analyzeMock evaluates a synthetic return series when history is absent.
func (a *Analyzer) analyzeMock(symbol string) *contracts.RiskAssessment {
	returns := syntheticReturns(symbol, tradingDays)
	market := syntheticMarketReturns(tradingDays)

	assessment := assess(symbol, returns, market)
	assessment.DataSource = "mock"
	return assessment
}

// syntheticReturns builds a deterministic per-symbol daily return series.
// (연수익률, 변동성, 베타) 파라미터를 종목 시드에서 뽑고, 시장 프록시에
// 베타만큼 연동시킨다 → 계산된 베타가 종목별로 달라진다.
func syntheticReturns(symbol string, days int) []float64 {
	rng := rand.New(rand.NewSource(seed.ForSymbol(symbol)))

	annualReturn := uniform(rng, -0.05, 0.20)
	annualVol := uniform(rng, 0.15, 0.45)
	betaParam := uniform(rng, 0.6, 1.6)

	dailyMean := annualReturn / tradingDays
	dailySD := annualVol / math.Sqrt(tradingDays)

	market := syntheticMarketReturns(days)

	returns := make([]float64, days)
	for i := range returns {
		idio := rng.NormFloat64() * dailySD * 0.5
		returns[i] = dailyMean + betaParam*market[i] + idio
	}
	return returns
}

// syntheticMarketReturns is the shared market-proxy series (고정 시드).
func syntheticMarketReturns(days int) []float64 {
	rng := rand.New(rand.NewSource(seed.ForSymbol(marketProxySymbol)))

	dailyMean := 0.06 / tradingDays
	dailySD := 0.18 / math.Sqrt(tradingDays)

	returns := make([]float64, days)
	for i := range returns {
		returns[i] = dailyMean + rng.NormFloat64()*dailySD
	}
	return returns
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
