package scoring

import (
	"math"
	"strings"

	"github.com/wonny/buffett/backend/internal/contracts"
	"github.com/wonny/buffett/backend/internal/strategyconfig"
	"github.com/wonny/buffett/backend/pkg/logger"
)

// Compositor combines criterion/ESG/risk scores into the total score and
// recommendation label
// ⭐ SSOT: 종합 점수와 추천 등급 산정은 여기서만
type Compositor struct {
	cfg    *strategyconfig.Config
	logger *logger.Logger
}

// NewCompositor creates a new composite scorer
func NewCompositor(cfg *strategyconfig.Config, log *logger.Logger) *Compositor {
	return &Compositor{cfg: cfg, logger: log}
}

// Compose fills TotalScore and Recommendation of stock in place.
// 전제: 6개 기준 점수는 이미 채워져 있고, ESG/리스크 점수는 해당 플래그가
// 켜진 경우에만 유효하다.
func (c *Compositor) Compose(stock *contracts.StockRecord, includeESG, includeRisk bool) {
	weights := DynamicWeights(c.cfg, includeESG, includeRisk)

	scores := stock.CriterionScores()
	if includeESG {
		scores["esg"] = stock.ESGScore
	}
	if includeRisk {
		scores["risk"] = stock.RiskScore
	}

	var total float64
	for key, w := range weights {
		total += scores[key] * w
	}

	// 소수점 1자리 반올림
	stock.TotalScore = math.Round(total*10) / 10
	stock.Recommendation = c.Recommend(stock.TotalScore, stock.ESGScore, stock.RiskScore)

	c.logger.WithFields(map[string]interface{}{
		"symbol":         stock.Symbol,
		"total_score":    stock.TotalScore,
		"recommendation": stock.Recommendation,
	}).Debug("Composite score calculated")
}

// StrategyHash identifies the active weight configuration.
func (c *Compositor) StrategyHash() string {
	hash, err := strategyconfig.Hash(c.cfg)
	if err != nil {
		return ""
	}
	return hash
}

// Recommend maps the total score to a label, then applies the ESG and risk
// downgrade annotations in that order (순서 고정: ESG 먼저, 리스크 다음).
// 조정은 점수를 바꾸지 않고 라벨만 바꾼다.
func (c *Compositor) Recommend(totalScore, esgScore, riskScore float64) string {
	rec := baseRecommendation(totalScore)

	if esgScore > 0 && esgScore < 60 {
		if strings.Contains(rec, "Strong Buy") {
			rec = "Buy (ESG 주의)"
		} else if strings.Contains(rec, "Buy") {
			rec = "Hold (ESG 개선 필요)"
		}
	}

	if riskScore > 0 && riskScore < 60 {
		if strings.Contains(rec, "Strong Buy") {
			rec = "Buy (고위험)"
		} else if strings.Contains(rec, "Buy") {
			rec = "Hold (리스크 관리 필요)"
		}
	}

	return rec
}

// baseRecommendation is the unadjusted label ladder.
func baseRecommendation(score float64) string {
	switch {
	case score >= 85:
		return "Strong Buy"
	case score >= 75:
		return "Buy"
	case score >= 65:
		return "Hold"
	case score >= 50:
		return "Weak Hold"
	default:
		return "Avoid"
	}
}
