package contracts

// Risk tier labels shared by ESG and risk assessments
const (
	RiskTierLow    = "Low"
	RiskTierMedium = "Medium"
	RiskTierHigh   = "High"
)

// ESGAssessment is the per-stock ESG evaluation
// ⭐ SSOT: ESG 평가 결과 스키마는 여기서만. 생성 즉시 반환, 영속화하지 않음.
type ESGAssessment struct {
	Symbol string `json:"symbol"`
	Sector string `json:"sector"`

	Environmental ESGDimension `json:"environmental"`
	Social        ESGDimension `json:"social"`
	Governance    ESGDimension `json:"governance"`

	// OverallScore is the governance-weighted composite of relative scores.
	OverallScore float64 `json:"overall_score"`
	// Grade is the letter scale AAA..CCC derived from OverallScore.
	Grade string `json:"grade"`

	RiskAssessment       ESGRiskAssessment    `json:"risk_assessment"`
	BuffettCompatibility BuffettCompatibility `json:"buffett_compatibility"`
	Recommendations      []string             `json:"recommendations"`

	// DataSource marks whether real or mock ESG data backed this assessment.
	DataSource string `json:"data_source"` // "dart" | "mock"
}

// ESGDimension holds one dimension's absolute score, sector benchmark and
// sector-relative score.
type ESGDimension struct {
	Absolute  float64 `json:"absolute"`  // 0~100 원점수
	Relative  float64 `json:"relative"`  // min(100, abs/benchmark*80+20)
	Benchmark float64 `json:"benchmark"` // 업종 벤치마크
}

// ESGRiskAssessment is the qualitative risk view per dimension
type ESGRiskAssessment struct {
	EnvironmentalRisk string `json:"environmental_risk"` // Low|Medium|High
	SocialRisk        string `json:"social_risk"`
	GovernanceRisk    string `json:"governance_risk"`
	OverallRisk       string `json:"overall_risk"`

	// RiskScore는 절대 점수 3개의 단순 평균 (높을수록 안전)
	RiskScore float64 `json:"risk_score"`

	KeyConcerns []string `json:"key_concerns"`
	Strengths   []string `json:"strengths"`
}

// BuffettCompatibility grades how well the company's ESG profile matches
// Buffett-style ownership criteria.
type BuffettCompatibility struct {
	CompatibilityScore float64            `json:"compatibility_score"`
	Grade              string             `json:"grade"` // Excellent|Good|Fair|Poor
	Recommendation     string             `json:"recommendation"`
	KeyFactors         map[string]float64 `json:"key_factors"`
	Principles         BuffettPrinciples  `json:"buffett_principles"`
}

// BuffettPrinciples are the boolean principle checks of the original tool
type BuffettPrinciples struct {
	LongTermMoat        bool `json:"long_term_moat"`
	ManagementIntegrity bool `json:"management_integrity"`
	SustainableBusiness bool `json:"sustainable_business"`
	StakeholderValue    bool `json:"stakeholder_value"`
}
