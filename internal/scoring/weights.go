package scoring

import (
	"github.com/wonny/buffett/backend/internal/strategyconfig"
)

// DynamicWeights builds the normalized weight map for the active factors.
// ⭐ 핵심 불변식: 어떤 팩터 조합이든 가중치 합은 정확히 1.0 —
// total_score는 항상 활성 점수들의 convex combination이다.
func DynamicWeights(cfg *strategyconfig.Config, includeESG, includeRisk bool) map[string]float64 {
	weights := map[string]float64{
		"market_cap":     cfg.Weights.MarketCap,
		"roe":            cfg.Weights.ROE,
		"profitability":  cfg.Weights.Profitability,
		"growth":         cfg.Weights.Growth,
		"fcf_projection": cfg.Weights.FCFProjection,
		"valuation":      cfg.Weights.Valuation,
	}

	switch {
	case includeESG && includeRisk:
		weights["esg"] = cfg.Slices.Both
		weights["risk"] = cfg.Slices.Both
	case includeESG:
		weights["esg"] = cfg.Slices.Single
	case includeRisk:
		weights["risk"] = cfg.Slices.Single
	}

	// Renormalize so the total is exactly 1.0 regardless of active slices.
	var total float64
	for _, w := range weights {
		total += w
	}
	for k := range weights {
		weights[k] /= total
	}

	return weights
}
