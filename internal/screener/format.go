package screener

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/wonny/buffett/backend/internal/contracts"
)

// formatResult assembles the caller-facing payload from ranked stocks.
func (s *Screener) formatResult(
	req *contracts.ScreeningRequest,
	top []contracts.StockRecord,
	portfolio *contracts.PortfolioOptimization,
	esgDetails map[string]*contracts.ESGAssessment,
	riskDetails map[string]*contracts.RiskAssessment,
	totalAnalyzed, qualifiedCount int,
) *contracts.ScreeningResult {
	result := &contracts.ScreeningResult{
		FilterCriteria: contracts.FilterCriteria{
			MarketSegment:  req.MarketSegment,
			MinScore:       req.MinScore,
			TotalAnalyzed:  totalAnalyzed,
			QualifiedCount: qualifiedCount,
			EnhancedFeatures: contracts.EnhancedFeatures{
				ESGAnalysis:           req.IncludeESG,
				RiskAnalysis:          req.IncludeRiskAnalysis,
				PortfolioOptimization: portfolio != nil,
			},
			StrategyHash: s.compositor.StrategyHash(),
		},
		Portfolio:   portfolio,
		GeneratedAt: time.Now(),
	}

	if len(top) == 0 {
		result.NoQualifying = true
		result.Summary = fmt.Sprintf("⚠️ 최소 점수 %.0f점 이상을 만족하는 종목이 없습니다.", req.MinScore)
		return result
	}

	result.Summary = fmt.Sprintf("📊 Enhanced Buffett Filter: %d개 종목 중 %d개가 강화된 기준을 통과했습니다.",
		totalAnalyzed, qualifiedCount)

	result.TopRecommendations = make([]contracts.StockResult, 0, len(top))
	for i, stock := range top {
		entry := contracts.StockResult{
			Rank:           i + 1,
			Symbol:         stock.Symbol,
			Name:           stock.Name,
			Sector:         stock.Sector,
			TotalScore:     stock.TotalScore,
			Recommendation: stock.Recommendation,
			KeyMetrics:     keyMetrics(&stock),
			DetailedScores: detailedScores(&stock, req.IncludeESG, req.IncludeRiskAnalysis),
		}

		if assessment, ok := esgDetails[stock.Symbol]; ok {
			entry.ESGInsights = &contracts.ESGInsights{
				OverallGrade:         assessment.Grade,
				BuffettCompatibility: assessment.BuffettCompatibility.Grade,
				KeyStrengths:         firstN(assessment.RiskAssessment.Strengths, 2),
				Concerns:             firstN(assessment.RiskAssessment.KeyConcerns, 2),
			}
		}
		if assessment, ok := riskDetails[stock.Symbol]; ok {
			entry.RiskInsights = &contracts.RiskInsights{
				RiskGrade:  assessment.RiskGrade,
				Beta:       round2(assessment.Beta),
				Volatility: fmt.Sprintf("%.1f%%", assessment.Volatility*100),
				VaR95:      fmt.Sprintf("%.1f%%", assessment.ValueAtRisk*100),
			}
		}

		result.TopRecommendations = append(result.TopRecommendations, entry)
	}

	return result
}

// keyMetrics formats the headline fundamentals of one ranked stock.
func keyMetrics(stock *contracts.StockRecord) map[string]string {
	fcfRatio := 0.0
	if stock.MarketCap > 0 {
		fcfRatio = stock.FCFProjection5YSum / stock.MarketCap
	}
	return map[string]string{
		"market_cap":           comma(stock.MarketCap) + "백만원",
		"roe_3y_avg":           fmt.Sprintf("%.1f%%", stock.ROE3YAvg),
		"net_profit_margin":    fmt.Sprintf("%.1f%%", stock.NetProfitMargin),
		"market_cap_growth_3y": fmt.Sprintf("%.1f%%", stock.MarketCapGrowth3Y),
		"fcf_valuation_ratio":  fmt.Sprintf("%.2f", fcfRatio),
		"per":                  fmt.Sprintf("%.1f", stock.PER),
		"pbr":                  fmt.Sprintf("%.2f", stock.PBR),
	}
}

// comma renders a value with thousands separators (소수점 이하 버림).
func comma(v float64) string {
	s := strconv.FormatFloat(math.Round(v), 'f', 0, 64)
	negative := strings.HasPrefix(s, "-")
	if negative {
		s = s[1:]
	}

	var b strings.Builder
	for i, digit := range s {
		if i > 0 && (len(s)-i)%3 == 0 {
			b.WriteByte(',')
		}
		b.WriteRune(digit)
	}
	if negative {
		return "-" + b.String()
	}
	return b.String()
}

// detailedScores exposes every factor score with Korean labels.
func detailedScores(stock *contracts.StockRecord, includeESG, includeRisk bool) map[string]float64 {
	scores := map[string]float64{
		"시가총액":  stock.MarketCapScore,
		"ROE":   stock.ROEScore,
		"수익성":   stock.ProfitabilityScore,
		"성장성":   stock.GrowthScore,
		"FCF예측": stock.FCFProjectionScore,
		"밸류에이션": stock.ValuationScore,
	}
	if includeESG {
		scores["ESG"] = stock.ESGScore
	}
	if includeRisk {
		scores["리스크"] = stock.RiskScore
	}
	return scores
}

func firstN(items []string, n int) []string {
	if len(items) > n {
		return items[:n]
	}
	return items
}

func round2(v float64) float64 {
	return math.Round(v*100) / 100
}
