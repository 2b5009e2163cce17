package contracts

import "time"

// ScreeningResult is the structured payload returned to callers
// ⭐ SSOT: 스크리닝 결과 스키마는 여기서만
type ScreeningResult struct {
	FilterCriteria     FilterCriteria         `json:"filter_criteria"`
	TopRecommendations []StockResult          `json:"top_recommendations"`
	Portfolio          *PortfolioOptimization `json:"portfolio_optimization,omitempty"`
	Summary            string                 `json:"summary"`

	// NoQualifying marks the explicit empty-result case: 종목이 하나도
	// min_score를 넘지 못한 경우 (배치 에러와 구분됨).
	NoQualifying bool `json:"no_qualifying,omitempty"`

	// Partial marks a deadline-truncated batch: 완료된 종목만으로 랭킹.
	Partial bool `json:"partial,omitempty"`

	GeneratedAt time.Time `json:"generated_at"`
}

// FilterCriteria echoes the request parameters and batch counts
type FilterCriteria struct {
	MarketSegment    string           `json:"market_segment"`
	MinScore         float64          `json:"min_score"`
	TotalAnalyzed    int              `json:"total_analyzed"`
	QualifiedCount   int              `json:"qualified_count"`
	EnhancedFeatures EnhancedFeatures `json:"enhanced_features"`
	StrategyHash     string           `json:"strategy_hash,omitempty"`
}

// EnhancedFeatures flags which optional factors were active
type EnhancedFeatures struct {
	ESGAnalysis           bool `json:"esg_analysis"`
	RiskAnalysis          bool `json:"risk_analysis"`
	PortfolioOptimization bool `json:"portfolio_optimization"`
}

// StockResult is one ranked entry of the recommendation list
type StockResult struct {
	Rank           int     `json:"rank"` // 1-based
	Symbol         string  `json:"symbol"`
	Name           string  `json:"name"`
	Sector         string  `json:"sector"`
	TotalScore     float64 `json:"total_score"`
	Recommendation string  `json:"recommendation"`

	KeyMetrics     map[string]string  `json:"key_metrics"`
	DetailedScores map[string]float64 `json:"detailed_scores"`

	ESGInsights  *ESGInsights  `json:"esg_insights,omitempty"`
	RiskInsights *RiskInsights `json:"risk_insights,omitempty"`
}

// ESGInsights is the compact ESG block attached to a ranked entry
type ESGInsights struct {
	OverallGrade         string   `json:"overall_grade"`
	BuffettCompatibility string   `json:"buffett_compatibility"`
	KeyStrengths         []string `json:"key_strengths"`
	Concerns             []string `json:"concerns"`
}

// RiskInsights is the compact risk block attached to a ranked entry
type RiskInsights struct {
	RiskGrade  string  `json:"risk_grade"`
	Beta       float64 `json:"beta"`
	Volatility string  `json:"volatility"` // "32.1%"
	VaR95      string  `json:"var_95"`
}

// SingleStockAnalysis is the standalone per-symbol analysis payload
type SingleStockAnalysis struct {
	Stock StockRecord     `json:"stock"`
	ESG   *ESGAssessment  `json:"esg_analysis,omitempty"`
	Risk  *RiskAssessment `json:"risk_analysis,omitempty"`
}
