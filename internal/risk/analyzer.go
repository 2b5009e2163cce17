package risk

import (
	"context"
	"math"
	"sort"

	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/stat"

	"github.com/wonny/buffett/backend/internal/contracts"
	"github.com/wonny/buffett/backend/pkg/logger"
)

const tradingDays = 252

// HistorySource supplies daily return series. 실역사 데이터가 없으면 에러를
// 반환하고, Analyzer가 합성 시리즈로 강등한다. source가 nil이면 항상 합성.
type HistorySource interface {
	Returns(ctx context.Context, symbol string, days int) ([]float64, error)
	MarketReturns(ctx context.Context, days int) ([]float64, error)
}

// Analyzer computes beta / VaR / expected shortfall / volatility per stock
// ⭐ SSOT: 시장 리스크 계산은 여기서만
type Analyzer struct {
	source HistorySource
	logger *logger.Logger
}

// NewAnalyzer creates a new risk analyzer
func NewAnalyzer(source HistorySource, log *logger.Logger) *Analyzer {
	return &Analyzer{
		source: source,
		logger: log,
	}
}

// Analyze evaluates one stock's market risk. 실패는 배치를 중단시키지 않는다 —
// 어떤 단계에서든 오류면 합성 시리즈 기반 평가로 대체한다.
func (a *Analyzer) Analyze(ctx context.Context, symbol string) (*contracts.RiskAssessment, error) {
	if a.source == nil {
		return a.analyzeMock(symbol), nil
	}

	returns, err := a.source.Returns(ctx, symbol, tradingDays)
	if err != nil || len(returns) < 2 {
		if err != nil {
			a.logger.WithFields(map[string]interface{}{
				"symbol": symbol,
				"error":  err.Error(),
			}).Warn("return history unavailable, using synthetic series")
		}
		return a.analyzeMock(symbol), nil
	}

	market, err := a.source.MarketReturns(ctx, tradingDays)
	if err != nil {
		market = nil
	}

	assessment := assess(symbol, returns, market)
	assessment.DataSource = "history"
	return assessment, nil
}

// assess is the pure computation path shared by real and synthetic series.
func assess(symbol string, returns, market []float64) *contracts.RiskAssessment {
	vol := annualizedVolatility(returns)
	var95 := valueAtRisk(returns)

	assessment := &contracts.RiskAssessment{
		Symbol:            symbol,
		Beta:              beta(returns, market),
		ValueAtRisk:       var95,
		ExpectedShortfall: expectedShortfall(returns, var95),
		Volatility:        vol,
		DownsideRisk:      downsideRisk(returns),
	}
	assessment.RiskGrade = gradeFor(vol, assessment.Beta, math.Abs(var95))

	return assessment
}

// beta = Cov(stock, market) / Var(market). 시장 분산이 ~0이거나 시리즈 길이가
// 맞지 않으면 1.0
func beta(returns, market []float64) float64 {
	n := len(returns)
	if len(market) < n {
		return 1.0
	}
	market = market[:n]

	marketVar := stat.Variance(market, nil)
	if marketVar < 1e-12 {
		return 1.0
	}
	return stat.Covariance(returns, market, nil) / marketVar
}

// valueAtRisk is the empirical 5th percentile (파라메트릭 아님).
func valueAtRisk(returns []float64) float64 {
	if len(returns) == 0 {
		return 0
	}
	sorted := append([]float64(nil), returns...)
	sort.Float64s(sorted)
	idx := int(math.Floor(0.05 * float64(len(sorted))))
	if idx >= len(sorted) {
		idx = len(sorted) - 1
	}
	return sorted[idx]
}

// expectedShortfall is the mean of returns at or below VaR.
func expectedShortfall(returns []float64, varLevel float64) float64 {
	var tail []float64
	for _, r := range returns {
		if r <= varLevel {
			tail = append(tail, r)
		}
	}
	if len(tail) == 0 {
		return varLevel
	}
	mean, err := stats.Mean(stats.Float64Data(tail))
	if err != nil {
		return varLevel
	}
	return mean
}

func annualizedVolatility(returns []float64) float64 {
	sd, err := stats.StandardDeviation(stats.Float64Data(returns))
	if err != nil {
		return 0
	}
	return sd * math.Sqrt(tradingDays)
}

// downsideRisk annualizes the stddev of negative returns only.
func downsideRisk(returns []float64) float64 {
	var negative []float64
	for _, r := range returns {
		if r < 0 {
			negative = append(negative, r)
		}
	}
	if len(negative) < 2 {
		return 0
	}
	sd, err := stats.StandardDeviation(stats.Float64Data(negative))
	if err != nil {
		return 0
	}
	return sd * math.Sqrt(tradingDays)
}

// gradeFor is the 3-factor point system.
// 변동성 + 베타 크기 + VaR 크기, 합산 8 이상 High / 6 이상 Medium
func gradeFor(volatility, betaValue, varMagnitude float64) string {
	points := 0

	switch {
	case volatility > 0.4:
		points += 3
	case volatility > 0.25:
		points += 2
	default:
		points++
	}

	switch {
	case math.Abs(betaValue) > 1.5:
		points += 3
	case math.Abs(betaValue) > 1.0:
		points += 2
	default:
		points++
	}

	switch {
	case varMagnitude > 0.05:
		points += 3
	case varMagnitude > 0.03:
		points += 2
	default:
		points++
	}

	switch {
	case points >= 8:
		return contracts.RiskGradeHigh
	case points >= 6:
		return contracts.RiskGradeMedium
	default:
		return contracts.RiskGradeLow
	}
}
