package esg

import (
	"context"
	"math"

	"github.com/wonny/buffett/backend/internal/contracts"
	"github.com/wonny/buffett/backend/pkg/logger"
)

// Source supplies raw ESG and governance records for a symbol.
// 데이터가 없으면 에러를 반환하고, Analyzer가 mock으로 강등한다.
type Source interface {
	ESG(ctx context.Context, symbol string) (contracts.ESGRecord, error)
	Governance(ctx context.Context, symbol string) (contracts.GovernanceRecord, error)
}

// Analyzer computes the sector-relative, governance-weighted ESG assessment
// ⭐ SSOT: ESG 평가 로직은 여기서만
type Analyzer struct {
	source Source
	logger *logger.Logger
}

// NewAnalyzer creates a new ESG analyzer
func NewAnalyzer(source Source, log *logger.Logger) *Analyzer {
	return &Analyzer{
		source: source,
		logger: log,
	}
}

// Composite weights — Buffett 스타일로 지배구조 비중 최대
const (
	weightEnvironmental = 0.25
	weightSocial        = 0.25
	weightGovernance    = 0.50
)

// defaultBenchmark is used for sectors missing from the benchmark table.
var defaultBenchmark = benchmark{environmental: 70, social: 65, governance: 75}

type benchmark struct {
	environmental float64
	social        float64
	governance    float64
}

// sectorBenchmarks covers every sector of the stock universe.
// 업종별 ESG 벤치마크 (원 평가 기준표 그대로)
var sectorBenchmarks = map[string]benchmark{
	"반도체":   {75, 70, 80},
	"자동차":   {65, 75, 75},
	"자동차부품": {65, 75, 75},
	"바이오":   {80, 85, 80},
	"화학":    {60, 65, 70},
	"정유화학":  {60, 65, 70},
	"인터넷":   {85, 80, 85},
	"금융":    {75, 80, 90},
	"통신":    {70, 75, 80},
	"유통":    {70, 85, 75},
	"건설":    {55, 60, 65},
	"에너지":   {50, 55, 70},
	"배터리":   {65, 70, 75},
	"가전":    {70, 75, 80},
	"지주회사":  {70, 70, 85},
	"종합상사":  {65, 70, 75},
}

// Analyze computes the full ESG assessment for one stock.
// 실데이터 조회 실패 시 종목 시드 기반 mock 프로파일로 강등 (단일 종목 실패가
// 배치를 중단시키지 않는다).
func (a *Analyzer) Analyze(ctx context.Context, symbol, sector string) (*contracts.ESGAssessment, error) {
	raw, err := a.source.ESG(ctx, symbol)
	if err != nil {
		a.logger.WithFields(map[string]interface{}{
			"symbol": symbol,
			"error":  err.Error(),
		}).Warn("ESG data unavailable, using mock profile")
		return a.analyzeMock(symbol, sector), nil
	}

	gov, err := a.source.Governance(ctx, symbol)
	if err != nil {
		gov = contracts.GovernanceRecord{BoardIndependence: 0.5, TransparencyScore: 75}
	}

	assessment := a.assess(symbol, sector, raw, gov)
	assessment.DataSource = "dart"
	return assessment, nil
}

// assess is the pure scoring path shared by real and mock data.
func (a *Analyzer) assess(symbol, sector string, raw contracts.ESGRecord, gov contracts.GovernanceRecord) *contracts.ESGAssessment {
	bm, ok := sectorBenchmarks[sector]
	if !ok {
		bm = defaultBenchmark
	}

	env := dimension(raw.Environmental, bm.environmental)
	soc := dimension(raw.Social, bm.social)
	g := dimension(raw.Governance, bm.governance)

	// 벤치마크와 정확히 같으면 relative = min(100, 1.0*80+20) = 100
	composite := env.Relative*weightEnvironmental +
		soc.Relative*weightSocial +
		g.Relative*weightGovernance

	assessment := &contracts.ESGAssessment{
		Symbol:        symbol,
		Sector:        sector,
		Environmental: env,
		Social:        soc,
		Governance:    g,
		OverallScore:  composite,
		Grade:         Grade(composite),
	}

	assessment.RiskAssessment = assessRisks(raw, gov)
	assessment.BuffettCompatibility = evaluateCompatibility(raw, gov)
	assessment.Recommendations = recommendations(raw, assessment.RiskAssessment, sector)

	return assessment
}

// dimension builds one dimension's absolute/relative/benchmark triple.
// 상대 점수 바닥은 20 — 저점이 0으로 뭉개지지 않게 한다.
func dimension(raw, bench float64) contracts.ESGDimension {
	if bench <= 0 {
		bench = 1
	}
	return contracts.ESGDimension{
		Absolute:  raw,
		Relative:  math.Min(100, (raw/bench)*80+20),
		Benchmark: bench,
	}
}

// Grade maps the composite score to the AAA..CCC letter scale.
func Grade(score float64) string {
	switch {
	case score >= 90:
		return "AAA"
	case score >= 80:
		return "AA"
	case score >= 70:
		return "A"
	case score >= 60:
		return "BBB"
	case score >= 50:
		return "BB"
	case score >= 40:
		return "B"
	default:
		return "CCC"
	}
}
