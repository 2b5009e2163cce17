package portfolio

import (
	"errors"
	"math"

	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat"

	"github.com/wonny/buffett/backend/internal/contracts"
	"github.com/wonny/buffett/backend/internal/risk"
	"github.com/wonny/buffett/backend/pkg/logger"
)

const (
	tradingDays = 252

	// 단일 종목은 최적화가 불가능 → 고정 프로파일
	singleAssetReturn = 0.12
	singleAssetRisk   = 0.25
	singleAssetSharpe = 0.48
)

// ErrEmptyPortfolio is returned when no stocks are given to optimize.
var ErrEmptyPortfolio = errors.New("portfolio: no stocks to optimize")

// SeriesSource supplies a daily return series per symbol.
type SeriesSource func(symbol string, days int) []float64

// Optimizer computes minimum-variance weights over a scored stock set
// ⭐ SSOT: 포트폴리오 최적화는 여기서만
type Optimizer struct {
	series SeriesSource
	logger *logger.Logger
}

// NewOptimizer creates a portfolio optimizer. series가 nil이면 종목 시드 기반
// 합성 시리즈를 쓴다.
func NewOptimizer(series SeriesSource, log *logger.Logger) *Optimizer {
	if series == nil {
		series = risk.SyntheticReturns
	}
	return &Optimizer{
		series: series,
		logger: log,
	}
}

// Optimize computes 최소분산 비중 w = (Σ⁻¹1) / (1ᵀΣ⁻¹1).
// 음수 비중은 절대값으로 접어 재정규화한다 — 공매도 불허 단순화로, 실제
// 최소분산 해와는 리스크 프로파일이 달라질 수 있다.
func (o *Optimizer) Optimize(stocks []contracts.StockRecord) (*contracts.PortfolioOptimization, error) {
	switch len(stocks) {
	case 0:
		return nil, ErrEmptyPortfolio
	case 1:
		return o.singleAsset(stocks[0]), nil
	}

	n := len(stocks)
	series := make([][]float64, n)
	means := make([]float64, n)
	for i, s := range stocks {
		series[i] = o.series(s.Symbol, tradingDays)
		means[i] = stat.Mean(series[i], nil)
	}

	sigma := covarianceMatrix(series)

	weights, method := o.minVarianceWeights(sigma, n)

	result := &contracts.PortfolioOptimization{
		Weights: make(map[string]float64, n),
		Method:  method,
	}
	for i, s := range stocks {
		result.Weights[s.Symbol] = weights[i]
	}

	result.ExpectedReturn = annualizedReturn(weights, means)
	result.ExpectedRisk = annualizedRisk(weights, sigma)
	if result.ExpectedRisk > 0 {
		result.SharpeRatio = result.ExpectedReturn / result.ExpectedRisk
	}
	result.MaxDrawdown = maxDrawdown(weights, series)
	result.DiversificationScore = diversificationScore(weights, sectorCount(stocks))
	result.Advice = advice(result.SharpeRatio, result.DiversificationScore)

	return result, nil
}

// singleAsset: 비중 1.0 + 고정 수익/위험 프로파일, 분산 점수 0
func (o *Optimizer) singleAsset(stock contracts.StockRecord) *contracts.PortfolioOptimization {
	series := o.series(stock.Symbol, tradingDays)

	result := &contracts.PortfolioOptimization{
		Weights:              map[string]float64{stock.Symbol: 1.0},
		ExpectedReturn:       singleAssetReturn,
		ExpectedRisk:         singleAssetRisk,
		SharpeRatio:          singleAssetSharpe,
		MaxDrawdown:          maxDrawdown([]float64{1.0}, [][]float64{series}),
		DiversificationScore: 0,
		Method:               "single_asset",
	}
	result.Advice = advice(result.SharpeRatio, result.DiversificationScore)
	return result
}

// minVarianceWeights solves Σx = 1 and normalizes. 특이 행렬이면 동일 비중으로
// 폴백한다.
func (o *Optimizer) minVarianceWeights(sigma *mat.SymDense, n int) ([]float64, string) {
	ones := mat.NewVecDense(n, nil)
	for i := 0; i < n; i++ {
		ones.SetVec(i, 1)
	}

	var x mat.VecDense
	if err := x.SolveVec(sigma, ones); err != nil {
		o.logger.WithField("stocks", n).Warn("singular covariance matrix, falling back to equal weights")
		return equalWeights(n), "equal_weight_fallback"
	}

	total := 0.0
	for i := 0; i < n; i++ {
		total += x.AtVec(i)
	}
	if math.Abs(total) < 1e-12 {
		return equalWeights(n), "equal_weight_fallback"
	}

	weights := make([]float64, n)
	negative := false
	for i := 0; i < n; i++ {
		weights[i] = x.AtVec(i) / total
		if weights[i] < 0 {
			negative = true
		}
	}

	if negative {
		absTotal := 0.0
		for i := range weights {
			weights[i] = math.Abs(weights[i])
			absTotal += weights[i]
		}
		for i := range weights {
			weights[i] /= absTotal
		}
	}

	return weights, "min_variance"
}

func equalWeights(n int) []float64 {
	weights := make([]float64, n)
	for i := range weights {
		weights[i] = 1.0 / float64(n)
	}
	return weights
}

// covarianceMatrix builds Σ from per-stock series (rows) via gonum.
// 시리즈 길이가 다르면 가장 짧은 길이에 맞춘다.
func covarianceMatrix(series [][]float64) *mat.SymDense {
	n := len(series)
	t := len(series[0])
	for _, s := range series[1:] {
		if len(s) < t {
			t = len(s)
		}
	}

	// stat.CovarianceMatrix expects observations in rows, variables in columns.
	data := mat.NewDense(t, n, nil)
	for j, s := range series {
		for i := 0; i < t; i++ {
			data.Set(i, j, s[i])
		}
	}

	sigma := mat.NewSymDense(n, nil)
	stat.CovarianceMatrix(sigma, data, nil)
	return sigma
}

func annualizedReturn(weights, means []float64) float64 {
	daily := 0.0
	for i, w := range weights {
		daily += w * means[i]
	}
	return daily * tradingDays
}

func annualizedRisk(weights []float64, sigma *mat.SymDense) float64 {
	n := len(weights)
	variance := 0.0
	for i := 0; i < n; i++ {
		for j := 0; j < n; j++ {
			variance += weights[i] * weights[j] * sigma.At(i, j)
		}
	}
	if variance <= 0 {
		return 0
	}
	return math.Sqrt(variance) * math.Sqrt(tradingDays)
}
