package esg

import (
	"github.com/wonny/buffett/backend/internal/contracts"
)

// assessRisks grades each dimension and folds them into the overall tier.
// 지배구조는 절대 점수와 이사회 독립성 둘 다 본다.
func assessRisks(raw contracts.ESGRecord, gov contracts.GovernanceRecord) contracts.ESGRiskAssessment {
	envTier := tierFor(raw.Environmental, 60, 75)
	socTier := tierFor(raw.Social, 55, 70)
	govTier := governanceTier(raw.Governance, gov.BoardIndependence)

	overall := overallTier(envTier, socTier, govTier)

	risk := contracts.ESGRiskAssessment{
		EnvironmentalRisk: envTier,
		SocialRisk:        socTier,
		GovernanceRisk:    govTier,
		OverallRisk:       overall,
		RiskScore:         (raw.Environmental + raw.Social + raw.Governance) / 3,
	}

	if envTier == contracts.RiskTierHigh {
		risk.KeyConcerns = append(risk.KeyConcerns, "환경 규제 리스크")
	}
	if socTier == contracts.RiskTierHigh {
		risk.KeyConcerns = append(risk.KeyConcerns, "사회적 책임 이슈")
	}
	if govTier == contracts.RiskTierHigh {
		risk.KeyConcerns = append(risk.KeyConcerns, "지배구조 투명성 부족")
	}

	if raw.Governance > 85 {
		risk.Strengths = append(risk.Strengths, "우수한 지배구조")
	}
	if raw.Environmental > 80 {
		risk.Strengths = append(risk.Strengths, "환경 리더십")
	}
	if gov.BoardIndependence > 0.6 {
		risk.Strengths = append(risk.Strengths, "독립적 이사회")
	}

	return risk
}

// tierFor buckets a raw dimension score by the given thresholds.
func tierFor(score, highBelow, mediumBelow float64) string {
	switch {
	case score < highBelow:
		return contracts.RiskTierHigh
	case score < mediumBelow:
		return contracts.RiskTierMedium
	default:
		return contracts.RiskTierLow
	}
}

// governanceTier: 이사회 독립성 30% 미만이면 점수와 무관하게 High
func governanceTier(govScore, boardIndependence float64) string {
	if boardIndependence < 0.3 || govScore < 60 {
		return contracts.RiskTierHigh
	}
	if boardIndependence < 0.5 || govScore < 75 {
		return contracts.RiskTierMedium
	}
	return contracts.RiskTierLow
}

// overallTier averages the three tiers and re-buckets the mean.
func overallTier(tiers ...string) string {
	total := 0
	for _, t := range tiers {
		total += tierScore(t)
	}
	avg := float64(total) / float64(len(tiers))
	switch {
	case avg >= 2.5:
		return contracts.RiskTierHigh
	case avg >= 1.5:
		return contracts.RiskTierMedium
	default:
		return contracts.RiskTierLow
	}
}

func tierScore(tier string) int {
	switch tier {
	case contracts.RiskTierHigh:
		return 3
	case contracts.RiskTierMedium:
		return 2
	default:
		return 1
	}
}
