package esg

import (
	"math/rand"

	"github.com/wonny/buffett/backend/internal/contracts"
	"github.com/wonny/buffett/backend/pkg/seed"
)

// analyzeMock builds a deterministic profile when no real ESG data exists.
// 종목 시드 고정 → 같은 종목은 항상 같은 프로파일.
// mock은 벤치마크 보정 없이 원점수를 그대로 상대 점수로 쓴다.
func (a *Analyzer) analyzeMock(symbol, sector string) *contracts.ESGAssessment {
	rng := rand.New(rand.NewSource(seed.ForSymbol(symbol)))

	raw := contracts.ESGRecord{
		Environmental: uniform(rng, 60, 90),
		Social:        uniform(rng, 55, 85),
		Governance:    uniform(rng, 70, 95),
	}
	gov := contracts.GovernanceRecord{
		BoardIndependence: uniform(rng, 0.3, 0.8),
		TransparencyScore: uniform(rng, 65, 90),
	}

	bm, ok := sectorBenchmarks[sector]
	if !ok {
		bm = defaultBenchmark
	}

	composite := raw.Environmental*weightEnvironmental +
		raw.Social*weightSocial +
		raw.Governance*weightGovernance

	assessment := &contracts.ESGAssessment{
		Symbol: symbol,
		Sector: sector,
		Environmental: contracts.ESGDimension{
			Absolute: raw.Environmental, Relative: raw.Environmental, Benchmark: bm.environmental,
		},
		Social: contracts.ESGDimension{
			Absolute: raw.Social, Relative: raw.Social, Benchmark: bm.social,
		},
		Governance: contracts.ESGDimension{
			Absolute: raw.Governance, Relative: raw.Governance, Benchmark: bm.governance,
		},
		OverallScore: composite,
		Grade:        Grade(composite),
		DataSource:   "mock",
	}

	assessment.RiskAssessment = assessRisks(raw, gov)
	assessment.BuffettCompatibility = evaluateCompatibility(raw, gov)
	assessment.Recommendations = recommendations(raw, assessment.RiskAssessment, sector)

	return assessment
}

func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
