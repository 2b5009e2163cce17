package scoring

import (
	"math"
	"sort"

	"github.com/wonny/buffett/backend/internal/contracts"
	"github.com/wonny/buffett/backend/pkg/logger"
)

// Engine scores one stock against the six Buffett criteria
// ⭐ SSOT: 기준별 점수 계산은 여기서만
// 래더 임계값은 동작 동일성 계약이므로 리터럴 상수 테이블로 고정한다.
type Engine struct {
	logger *logger.Logger
}

// NewEngine creates a new criterion scoring engine
func NewEngine(log *logger.Logger) *Engine {
	return &Engine{logger: log}
}

// bucket is one (threshold, score) step of a ladder.
type bucket struct {
	threshold float64
	score     float64
}

// ladderGTE returns the score of the first bucket whose threshold the value
// meets or exceeds. 값이 어느 버킷에도 못 미치면 fallback.
func ladderGTE(value float64, ladder []bucket, fallback float64) float64 {
	for _, b := range ladder {
		if value >= b.threshold {
			return b.score
		}
	}
	return fallback
}

// ladderLTE returns the score of the first bucket whose threshold the value
// is at or below.
func ladderLTE(value float64, ladder []bucket, fallback float64) float64 {
	for _, b := range ladder {
		if value <= b.threshold {
			return b.score
		}
	}
	return fallback
}

var (
	roeLadder = []bucket{
		{25, 100}, {20, 90}, {15, 80}, {10, 60}, {5, 40},
	}
	growthLadder = []bucket{
		{10, 100}, {5, 80}, {0, 60}, {-5, 40},
	}
	fcfLadder = []bucket{
		{1.5, 100}, {1.2, 90}, {1.0, 80}, {0.8, 60}, {0.6, 40},
	}
	perLadder = []bucket{{15, 50}, {25, 30}}
	pbrLadder = []bucket{{1.5, 50}, {2.5, 30}}
)

// ScoreAll fills the six criterion score fields of stock in place.
// universe는 상대 평가(시총 백분위, 업종 평균)에 사용된다.
func (e *Engine) ScoreAll(stock *contracts.StockRecord, universe []contracts.StockRecord) {
	stock.MarketCapScore = e.MarketCapScore(stock, universe)
	stock.ROEScore = e.ROEScore(stock)
	stock.ProfitabilityScore = e.ProfitabilityScore(stock, universe)
	stock.GrowthScore = e.GrowthScore(stock)
	stock.FCFProjectionScore = e.FCFProjectionScore(stock)
	stock.ValuationScore = e.ValuationScore(stock)
}

// MarketCapScore ranks the stock by market cap (descending) within the
// universe and scores its percentile.
// 1단계: 시가총액 기준 (상위 대형주 우대)
func (e *Engine) MarketCapScore(stock *contracts.StockRecord, universe []contracts.StockRecord) float64 {
	if len(universe) == 0 {
		return 0
	}

	sorted := make([]contracts.StockRecord, len(universe))
	copy(sorted, universe)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].MarketCap > sorted[j].MarketCap
	})

	rank := 0
	for i := range sorted {
		if sorted[i].Symbol == stock.Symbol {
			rank = i
			break
		}
	}

	percentile := float64(rank) / float64(len(sorted)) * 100

	switch {
	case percentile <= 10:
		return 100
	case percentile <= 20:
		return 90
	case percentile <= 30:
		return 80
	case percentile <= 50:
		return 60
	default:
		return math.Max(0, 40-math.Trunc(percentile-50))
	}
}

// ROEScore scores the 3-year weighted average ROE.
// 2단계: 자기자본이익률
func (e *Engine) ROEScore(stock *contracts.StockRecord) float64 {
	return ladderGTE(stock.ROE3YAvg, roeLadder, 20)
}

// ProfitabilityScore compares net profit margin to the sector average.
// 3단계: 수익성. 업종 평균 이상 50점 + 기본 30점, 미만 20점 + 30점.
// 결과는 {50, 80} 두 값뿐 — 원 시스템의 미완성 래더를 그대로 유지 (DESIGN.md 결정 3).
func (e *Engine) ProfitabilityScore(stock *contracts.StockRecord, universe []contracts.StockRecord) float64 {
	var sum float64
	var count int
	for i := range universe {
		if universe[i].Sector == stock.Sector {
			sum += universe[i].NetProfitMargin
			count++
		}
	}

	if count == 0 {
		// 자기 자신만으로도 업종 평균은 성립하므로 여기 오면 universe에
		// 해당 종목이 없는 경우다. 최저 브랜치로 강등.
		return 20 + 30
	}

	avgMargin := sum / float64(count)
	marginScore := 20.0
	if stock.NetProfitMargin >= avgMargin {
		marginScore = 50
	}
	return marginScore + 30
}

// GrowthScore scores market-cap growth in excess of equity growth.
// 4단계: 성장성
func (e *Engine) GrowthScore(stock *contracts.StockRecord) float64 {
	growthDiff := stock.MarketCapGrowth3Y - stock.EquityGrowth3Y
	return ladderGTE(growthDiff, growthLadder, 20)
}

// FCFProjectionScore scores the 5-year projected FCF sum against market cap.
// 5단계: 미래가치
func (e *Engine) FCFProjectionScore(stock *contracts.StockRecord) float64 {
	if stock.MarketCap <= 0 {
		return 20
	}
	ratio := stock.FCFProjection5YSum / stock.MarketCap
	return ladderGTE(ratio, fcfLadder, 20)
}

// ValuationScore sums independent PER and PBR sub-ladders.
// 6단계: 가치평가. 결과 범위 20~100.
func (e *Engine) ValuationScore(stock *contracts.StockRecord) float64 {
	perScore := ladderLTE(stock.PER, perLadder, 10)
	pbrScore := ladderLTE(stock.PBR, pbrLadder, 10)
	return perScore + pbrScore
}
