package contracts

// PortfolioOptimization is the minimum-variance optimization output
// ⭐ SSOT: 포트폴리오 최적화 결과 스키마는 여기서만
// 불변식: 비중은 전부 0 이상이고 합이 1.0 (±1e-6)
type PortfolioOptimization struct {
	// Weights maps symbol to its portfolio weight.
	Weights map[string]float64 `json:"recommended_weights"`

	ExpectedReturn float64 `json:"expected_return"` // 연환산
	ExpectedRisk   float64 `json:"expected_risk"`   // 연환산 변동성
	SharpeRatio    float64 `json:"sharpe_ratio"`    // return/risk, risk=0이면 0
	MaxDrawdown    float64 `json:"max_drawdown"`    // abs(min drawdown)

	// DiversificationScore blends weight entropy and sector coverage (0~100).
	DiversificationScore float64 `json:"diversification_score"`

	// Method records how the weights were derived:
	// "min_variance", "equal_weight_fallback" or "single_asset".
	Method string `json:"method"`

	Advice string `json:"investment_advice,omitempty"`
}

// TotalWeight returns the sum of all weights.
func (p *PortfolioOptimization) TotalWeight() float64 {
	var total float64
	for _, w := range p.Weights {
		total += w
	}
	return total
}
