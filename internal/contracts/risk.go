package contracts

// Risk grade labels (3-factor point system 결과)
const (
	RiskGradeLow    = "Low Risk"
	RiskGradeMedium = "Medium Risk"
	RiskGradeHigh   = "High Risk"
)

// RiskAssessment is the per-stock market risk evaluation
// ⭐ SSOT: 리스크 평가 결과 스키마는 여기서만
// 부호 규약: ValueAtRisk/ExpectedShortfall은 수익률 그대로 (손실이면 음수).
// 등급 산정은 절대값 기준.
type RiskAssessment struct {
	Symbol string `json:"symbol"`

	// Beta vs. the market proxy series; 1.0 when market variance ~ 0.
	Beta float64 `json:"beta"`

	// ValueAtRisk is the empirical 5th percentile of daily returns.
	ValueAtRisk float64 `json:"value_at_risk"`

	// ExpectedShortfall is the mean of returns at or below VaR.
	ExpectedShortfall float64 `json:"expected_shortfall"`

	// Volatility is annualized (daily stddev * sqrt(252)).
	Volatility float64 `json:"volatility"`

	// DownsideRisk is the annualized stddev of negative returns only.
	DownsideRisk float64 `json:"downside_risk"`

	RiskGrade string `json:"risk_grade"` // Low|Medium|High Risk

	// DataSource marks whether real or synthetic return history backed this.
	DataSource string `json:"data_source"` // "history" | "mock"
}
