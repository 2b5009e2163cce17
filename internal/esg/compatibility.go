package esg

import (
	"github.com/wonny/buffett/backend/internal/contracts"
)

// evaluateCompatibility grades the ESG profile against Buffett ownership
// criteria — 5개 요소의 단순 평균.
func evaluateCompatibility(raw contracts.ESGRecord, gov contracts.GovernanceRecord) contracts.BuffettCompatibility {
	transparency := gov.TransparencyScore
	if transparency == 0 {
		transparency = 75
	}

	factors := map[string]float64{
		"management_quality": raw.Governance,
		"long_term_thinking": raw.Environmental*0.7 + raw.Social*0.3,
		"stakeholder_care":   raw.Social,
		"transparency":       transparency,
		"ethical_business":   (raw.Governance + raw.Social) / 2,
	}

	total := 0.0
	for _, v := range factors {
		total += v
	}
	score := total / float64(len(factors))

	var grade, recommendation string
	switch {
	case score >= 85:
		grade = "Excellent"
		recommendation = "Buffett 스타일 투자에 매우 적합"
	case score >= 75:
		grade = "Good"
		recommendation = "Buffett 스타일 투자에 적합"
	case score >= 65:
		grade = "Fair"
		recommendation = "일부 개선 필요하지만 투자 고려 가능"
	default:
		grade = "Poor"
		recommendation = "Buffett 스타일 투자에 부적합"
	}

	return contracts.BuffettCompatibility{
		CompatibilityScore: score,
		Grade:              grade,
		Recommendation:     recommendation,
		KeyFactors:         factors,
		Principles: contracts.BuffettPrinciples{
			LongTermMoat:        score >= 70,
			ManagementIntegrity: raw.Governance >= 80,
			SustainableBusiness: raw.Environmental >= 70,
			StakeholderValue:    raw.Social >= 70,
		},
	}
}

// recommendations builds at most three improvement suggestions.
// 절대 점수 기준 — 상대 점수가 아니라 원점수를 본다.
func recommendations(raw contracts.ESGRecord, risk contracts.ESGRiskAssessment, sector string) []string {
	var recs []string

	if raw.Environmental < 70 {
		recs = append(recs, "환경 경영 전략 수립 및 탄소 중립 로드맵 필요")
	}
	if raw.Social < 70 {
		recs = append(recs, "사회적 책임 활동 강화 및 이해관계자 소통 개선")
	}
	if raw.Governance < 80 {
		recs = append(recs, "지배구조 투명성 제고 및 이사회 독립성 강화")
	}
	if risk.OverallRisk == contracts.RiskTierHigh {
		recs = append(recs, "ESG 리스크 관리 체계 구축 필요")
	}

	switch sector {
	case "반도체", "화학", "정유화학":
		recs = append(recs, "친환경 제조 공정 도입 검토")
	case "금융", "통신":
		recs = append(recs, "디지털 포용성 및 금융 접근성 개선")
	}

	if len(recs) > 3 {
		recs = recs[:3]
	}
	return recs
}
