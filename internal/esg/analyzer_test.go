package esg

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/buffett/backend/internal/contracts"
	"github.com/wonny/buffett/backend/pkg/logger"
)

type stubSource struct {
	esg    contracts.ESGRecord
	gov    contracts.GovernanceRecord
	esgErr error
	govErr error
}

func (s *stubSource) ESG(_ context.Context, _ string) (contracts.ESGRecord, error) {
	return s.esg, s.esgErr
}

func (s *stubSource) Governance(_ context.Context, _ string) (contracts.GovernanceRecord, error) {
	return s.gov, s.govErr
}

func TestDimensionRelativeScore(t *testing.T) {
	tests := []struct {
		name  string
		raw   float64
		bench float64
		want  float64
	}{
		{"at benchmark", 75, 75, 100},
		{"above benchmark capped", 95, 75, 100},
		{"below benchmark", 60, 80, 80},
		{"zero raw keeps floor", 0, 70, 20},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := dimension(tt.raw, tt.bench)
			assert.InDelta(t, tt.want, d.Relative, 1e-9)
			assert.Equal(t, tt.raw, d.Absolute)
			assert.Equal(t, tt.bench, d.Benchmark)
		})
	}
}

func TestAnalyzeAtBenchmarkScoresHundred(t *testing.T) {
	src := &stubSource{
		esg: contracts.ESGRecord{Environmental: 75, Social: 70, Governance: 80},
		gov: contracts.GovernanceRecord{BoardIndependence: 0.6, TransparencyScore: 85},
	}
	a := NewAnalyzer(src, logger.NewNop())

	got, err := a.Analyze(context.Background(), "005930", "반도체")
	require.NoError(t, err)

	// 반도체 벤치마크 {75,70,80}와 정확히 일치 → 모든 상대 점수 100
	assert.InDelta(t, 100.0, got.OverallScore, 1e-9)
	assert.Equal(t, "AAA", got.Grade)
	assert.Equal(t, "dart", got.DataSource)
}

func TestAnalyzeGovernanceWeighting(t *testing.T) {
	// 지배구조가 합산의 절반을 차지한다
	src := &stubSource{
		esg: contracts.ESGRecord{Environmental: 70, Social: 65, Governance: 37.5},
		gov: contracts.GovernanceRecord{BoardIndependence: 0.6, TransparencyScore: 80},
	}
	a := NewAnalyzer(src, logger.NewNop())

	got, err := a.Analyze(context.Background(), "000000", "미분류")
	require.NoError(t, err)

	// 기본 벤치마크 {70,65,75}: env rel 100, soc rel 100, gov rel 60
	want := 100*0.25 + 100*0.25 + 60*0.50
	assert.InDelta(t, want, got.OverallScore, 1e-9)
}

func TestESGGrade(t *testing.T) {
	tests := []struct {
		score float64
		want  string
	}{
		{95, "AAA"},
		{90, "AAA"},
		{89.9, "AA"},
		{80, "AA"},
		{75, "A"},
		{65, "BBB"},
		{55, "BB"},
		{45, "B"},
		{30, "CCC"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, Grade(tt.score), "score %.1f", tt.score)
	}
}

func TestAssessRisksTiers(t *testing.T) {
	tests := []struct {
		name    string
		raw     contracts.ESGRecord
		gov     contracts.GovernanceRecord
		env     string
		social  string
		govTier string
		overall string
	}{
		{
			name:    "all low risk",
			raw:     contracts.ESGRecord{Environmental: 80, Social: 75, Governance: 85},
			gov:     contracts.GovernanceRecord{BoardIndependence: 0.7},
			env:     contracts.RiskTierLow,
			social:  contracts.RiskTierLow,
			govTier: contracts.RiskTierLow,
			overall: contracts.RiskTierLow,
		},
		{
			name:    "weak board overrides strong score",
			raw:     contracts.ESGRecord{Environmental: 80, Social: 75, Governance: 90},
			gov:     contracts.GovernanceRecord{BoardIndependence: 0.2},
			env:     contracts.RiskTierLow,
			social:  contracts.RiskTierLow,
			govTier: contracts.RiskTierHigh,
			overall: contracts.RiskTierMedium,
		},
		{
			name:    "all high",
			raw:     contracts.ESGRecord{Environmental: 50, Social: 40, Governance: 55},
			gov:     contracts.GovernanceRecord{BoardIndependence: 0.5},
			env:     contracts.RiskTierHigh,
			social:  contracts.RiskTierHigh,
			govTier: contracts.RiskTierHigh,
			overall: contracts.RiskTierHigh,
		},
		{
			name:    "board independence below half is medium",
			raw:     contracts.ESGRecord{Environmental: 80, Social: 75, Governance: 85},
			gov:     contracts.GovernanceRecord{BoardIndependence: 0.4},
			env:     contracts.RiskTierLow,
			social:  contracts.RiskTierLow,
			govTier: contracts.RiskTierMedium,
			overall: contracts.RiskTierLow,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := assessRisks(tt.raw, tt.gov)
			assert.Equal(t, tt.env, got.EnvironmentalRisk)
			assert.Equal(t, tt.social, got.SocialRisk)
			assert.Equal(t, tt.govTier, got.GovernanceRisk)
			assert.Equal(t, tt.overall, got.OverallRisk)
			mean := (tt.raw.Environmental + tt.raw.Social + tt.raw.Governance) / 3
			assert.InDelta(t, mean, got.RiskScore, 1e-9)
		})
	}
}

func TestEvaluateCompatibility(t *testing.T) {
	raw := contracts.ESGRecord{Environmental: 90, Social: 90, Governance: 90}
	gov := contracts.GovernanceRecord{BoardIndependence: 0.7, TransparencyScore: 90}

	got := evaluateCompatibility(raw, gov)

	// 모든 요소가 90이면 평균도 90
	assert.InDelta(t, 90.0, got.CompatibilityScore, 1e-9)
	assert.Equal(t, "Excellent", got.Grade)
	assert.True(t, got.Principles.LongTermMoat)
	assert.True(t, got.Principles.ManagementIntegrity)
	assert.True(t, got.Principles.SustainableBusiness)
	assert.True(t, got.Principles.StakeholderValue)
	assert.Len(t, got.KeyFactors, 5)
}

func TestEvaluateCompatibilityGrades(t *testing.T) {
	mk := func(v float64) contracts.BuffettCompatibility {
		return evaluateCompatibility(
			contracts.ESGRecord{Environmental: v, Social: v, Governance: v},
			contracts.GovernanceRecord{BoardIndependence: 0.5, TransparencyScore: v},
		)
	}
	assert.Equal(t, "Excellent", mk(85).Grade)
	assert.Equal(t, "Good", mk(75).Grade)
	assert.Equal(t, "Fair", mk(65).Grade)
	assert.Equal(t, "Poor", mk(60).Grade)
}

func TestRecommendationsCappedAtThree(t *testing.T) {
	raw := contracts.ESGRecord{Environmental: 50, Social: 50, Governance: 50}
	risk := contracts.ESGRiskAssessment{OverallRisk: contracts.RiskTierHigh}

	recs := recommendations(raw, risk, "반도체")
	require.Len(t, recs, 3)
	assert.Contains(t, recs[0], "환경 경영")
}

func TestRecommendationsSectorSpecific(t *testing.T) {
	raw := contracts.ESGRecord{Environmental: 90, Social: 90, Governance: 90}
	risk := contracts.ESGRiskAssessment{OverallRisk: contracts.RiskTierLow}

	recs := recommendations(raw, risk, "금융")
	require.Len(t, recs, 1)
	assert.Contains(t, recs[0], "금융 접근성")
}

func TestAnalyzeFallsBackToMock(t *testing.T) {
	src := &stubSource{esgErr: errors.New("dart unavailable")}
	a := NewAnalyzer(src, logger.NewNop())

	first, err := a.Analyze(context.Background(), "035420", "인터넷")
	require.NoError(t, err)
	second, err := a.Analyze(context.Background(), "035420", "인터넷")
	require.NoError(t, err)

	assert.Equal(t, "mock", first.DataSource)
	// 같은 종목은 항상 같은 mock 프로파일
	assert.Equal(t, first.OverallScore, second.OverallScore)
	assert.Equal(t, first.Environmental.Absolute, second.Environmental.Absolute)

	assert.GreaterOrEqual(t, first.Environmental.Absolute, 60.0)
	assert.Less(t, first.Environmental.Absolute, 90.0)
	assert.GreaterOrEqual(t, first.Governance.Absolute, 70.0)
	assert.Less(t, first.Governance.Absolute, 95.0)
}

func TestAnalyzeMockDiffersAcrossSymbols(t *testing.T) {
	src := &stubSource{esgErr: errors.New("dart unavailable")}
	a := NewAnalyzer(src, logger.NewNop())

	x, err := a.Analyze(context.Background(), "005930", "반도체")
	require.NoError(t, err)
	y, err := a.Analyze(context.Background(), "000660", "반도체")
	require.NoError(t, err)

	assert.NotEqual(t, x.OverallScore, y.OverallScore)
}
