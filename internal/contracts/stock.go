package contracts

// StockRecord is one stock's joined feature set for a scoring pass
// ⭐ SSOT: 스크리닝 파이프라인의 종목 데이터 전달은 이 타입으로만
// 점수 필드는 스코어링 시점에 채워지며 모두 0~100 범위
type StockRecord struct {
	// Identity
	Symbol string `json:"symbol"`
	Name   string `json:"name"`
	Sector string `json:"sector"`

	// Market
	MarketCap         float64 `json:"market_cap"` // 백만원 단위
	CurrentPrice      float64 `json:"current_price"`
	SharesOutstanding float64 `json:"shares_outstanding"`
	Volume            float64 `json:"volume"`

	// Fundamentals
	ROE3YAvg           float64 `json:"roe_3y_avg"` // percent
	NetProfitMargin    float64 `json:"net_profit_margin"`
	Revenue            float64 `json:"revenue"`
	NetIncome          float64 `json:"net_income"`
	FCF                float64 `json:"fcf"`
	FCFProjection5YSum float64 `json:"fcf_projection_5y_sum"`
	MarketCapGrowth3Y  float64 `json:"market_cap_growth_3y"`
	EquityGrowth3Y     float64 `json:"equity_growth_3y"`
	PER                float64 `json:"per"`
	PBR                float64 `json:"pbr"`
	DebtToEquity       float64 `json:"debt_to_equity"`
	DividendYield      float64 `json:"dividend_yield"`

	// Derived at scoring time (0~100)
	MarketCapScore     float64 `json:"market_cap_score"`
	ROEScore           float64 `json:"roe_score"`
	ProfitabilityScore float64 `json:"profitability_score"`
	GrowthScore        float64 `json:"growth_score"`
	FCFProjectionScore float64 `json:"fcf_projection_score"`
	ValuationScore     float64 `json:"valuation_score"`
	ESGScore           float64 `json:"esg_score,omitempty"`
	RiskScore          float64 `json:"risk_score,omitempty"`

	TotalScore     float64 `json:"total_score"`
	Recommendation string  `json:"recommendation"`
}

// CriterionScores returns the six always-present criterion scores keyed by
// the weight names used in strategyconfig.
func (s *StockRecord) CriterionScores() map[string]float64 {
	return map[string]float64{
		"market_cap":     s.MarketCapScore,
		"roe":            s.ROEScore,
		"profitability":  s.ProfitabilityScore,
		"growth":         s.GrowthScore,
		"fcf_projection": s.FCFProjectionScore,
		"valuation":      s.ValuationScore,
	}
}
