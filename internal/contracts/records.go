package contracts

// Provider record shapes. 외부 데이터 제공자(KRX/DART/Naver)는 이 형태로만
// 데이터를 넘긴다. 숫자 필드는 제공자 단계에서 ToFloat로 방어적 변환됨.

// MarketRecord is one stock's market data snapshot
type MarketRecord struct {
	Symbol            string  `json:"symbol"`
	Name              string  `json:"name"`
	Sector            string  `json:"sector"`
	MarketCap         float64 `json:"market_cap"`
	CurrentPrice      float64 `json:"current_price"`
	SharesOutstanding float64 `json:"shares_outstanding"`
	Volume            float64 `json:"volume"`
	PER               float64 `json:"per"`
	PBR               float64 `json:"pbr"`
	DividendYield     float64 `json:"dividend_yield"`
}

// FinancialRecord is one stock's financial-statement derived data
type FinancialRecord struct {
	ROE3YAvg           float64 `json:"roe_3y_avg"`
	ROEYear1           float64 `json:"roe_y1,omitempty"`
	ROEYear2           float64 `json:"roe_y2,omitempty"`
	ROEYear3           float64 `json:"roe_y3,omitempty"`
	NetProfitMargin    float64 `json:"net_profit_margin"`
	Revenue            float64 `json:"revenue"`
	NetIncome          float64 `json:"net_income"`
	FCF                float64 `json:"fcf"`
	FCFPerShare        float64 `json:"fcf_per_share"`
	FCFProjection5YSum float64 `json:"fcf_projection_5y_sum"`
	MarketCapGrowth3Y  float64 `json:"market_cap_growth_3y"`
	EquityGrowth3Y     float64 `json:"equity_growth_3y"`
	DebtToEquity       float64 `json:"debt_to_equity"`
}

// ESGRecord is one stock's raw ESG sub-scores (each 0~100)
type ESGRecord struct {
	Environmental float64 `json:"environmental_score"`
	Social        float64 `json:"social_score"`
	Governance    float64 `json:"governance_score"`
}

// GovernanceRecord holds governance detail used by the ESG risk tiering
type GovernanceRecord struct {
	BoardIndependence float64 `json:"board_independence"` // 0~1 fraction
	TransparencyScore float64 `json:"transparency_score"` // 0~100
}

// Join merges market and financial records into a scoring-ready StockRecord.
func Join(m MarketRecord, f FinancialRecord) StockRecord {
	return StockRecord{
		Symbol:             m.Symbol,
		Name:               m.Name,
		Sector:             m.Sector,
		MarketCap:          m.MarketCap,
		CurrentPrice:       m.CurrentPrice,
		SharesOutstanding:  m.SharesOutstanding,
		Volume:             m.Volume,
		PER:                m.PER,
		PBR:                m.PBR,
		DividendYield:      m.DividendYield,
		ROE3YAvg:           f.ROE3YAvg,
		NetProfitMargin:    f.NetProfitMargin,
		Revenue:            f.Revenue,
		NetIncome:          f.NetIncome,
		FCF:                f.FCF,
		FCFProjection5YSum: f.FCFProjection5YSum,
		MarketCapGrowth3Y:  f.MarketCapGrowth3Y,
		EquityGrowth3Y:     f.EquityGrowth3Y,
		DebtToEquity:       f.DebtToEquity,
	}
}
