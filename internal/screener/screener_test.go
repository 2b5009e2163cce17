package screener

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/wonny/buffett/backend/internal/contracts"
	"github.com/wonny/buffett/backend/internal/esg"
	"github.com/wonny/buffett/backend/internal/portfolio"
	"github.com/wonny/buffett/backend/internal/risk"
	"github.com/wonny/buffett/backend/internal/scoring"
	"github.com/wonny/buffett/backend/internal/strategyconfig"
	"github.com/wonny/buffett/backend/internal/universe"
	"github.com/wonny/buffett/backend/pkg/cache"
	"github.com/wonny/buffett/backend/pkg/config"
	"github.com/wonny/buffett/backend/pkg/logger"
)

// noESGData forces the ESG analyzer onto its deterministic mock path.
type noESGData struct{}

func (noESGData) ESG(_ context.Context, _ string) (contracts.ESGRecord, error) {
	return contracts.ESGRecord{}, errors.New("no data")
}

func (noESGData) Governance(_ context.Context, _ string) (contracts.GovernanceRecord, error) {
	return contracts.GovernanceRecord{}, errors.New("no data")
}

// fixedUniverse serves a crafted stock list.
type fixedUniverse struct {
	stocks []contracts.StockRecord
}

func (f *fixedUniverse) Universe(_ context.Context, _ string, _ []string) ([]contracts.StockRecord, error) {
	return append([]contracts.StockRecord(nil), f.stocks...), nil
}

func newTestScreener(t *testing.T, provider universe.Provider) *Screener {
	t.Helper()
	log := logger.NewNop()
	cfg := strategyconfig.Default()

	if provider == nil {
		provider = universe.NewMockProvider(log)
	}

	return New(
		provider,
		scoring.NewEngine(log),
		scoring.NewCompositor(cfg, log),
		esg.NewAnalyzer(noESGData{}, log),
		risk.NewAnalyzer(nil, log),
		portfolio.NewOptimizer(nil, log),
		config.ScreeningConfig{CacheTTL: time.Minute},
		log,
		Options{},
	)
}

func defaultRequest() *contracts.ScreeningRequest {
	req := contracts.DefaultScreeningRequest()
	return &req
}

func TestScreenInvalidRequest(t *testing.T) {
	s := newTestScreener(t, nil)

	req := defaultRequest()
	req.MinScore = 150

	_, err := s.Screen(context.Background(), req)
	require.ErrorIs(t, err, contracts.ErrInvalidRequest)
}

func TestScreenRankingContract(t *testing.T) {
	s := newTestScreener(t, nil)

	req := defaultRequest()
	req.MinScore = 0
	req.MaxResults = 5

	result, err := s.Screen(context.Background(), req)
	require.NoError(t, err)

	require.LessOrEqual(t, len(result.TopRecommendations), 5)
	require.NotEmpty(t, result.TopRecommendations)

	prev := 101.0
	for i, rec := range result.TopRecommendations {
		assert.Equal(t, i+1, rec.Rank)
		assert.LessOrEqual(t, rec.TotalScore, prev)
		assert.GreaterOrEqual(t, rec.TotalScore, req.MinScore)
		prev = rec.TotalScore
	}

	assert.Equal(t, 15, result.FilterCriteria.TotalAnalyzed)
	assert.NotEmpty(t, result.FilterCriteria.StrategyHash)
	assert.True(t, result.FilterCriteria.EnhancedFeatures.ESGAnalysis)
}

func TestScreenNoQualifyingPayload(t *testing.T) {
	s := newTestScreener(t, nil)

	req := defaultRequest()
	req.MinScore = 99.5
	req.IncludePortfolio = false

	result, err := s.Screen(context.Background(), req)
	require.NoError(t, err)

	assert.True(t, result.NoQualifying)
	assert.Empty(t, result.TopRecommendations)
	assert.Contains(t, result.Summary, "만족하는 종목이 없습니다")
	assert.Nil(t, result.Portfolio)
	assert.Equal(t, 0, result.FilterCriteria.QualifiedCount)
}

func TestScreenDeterministic(t *testing.T) {
	s := newTestScreener(t, nil)

	req := defaultRequest()
	req.MinScore = 0

	first, err := s.Screen(context.Background(), req)
	require.NoError(t, err)
	second, err := s.Screen(context.Background(), req)
	require.NoError(t, err)

	require.Equal(t, len(first.TopRecommendations), len(second.TopRecommendations))
	for i := range first.TopRecommendations {
		assert.Equal(t, first.TopRecommendations[i].Symbol, second.TopRecommendations[i].Symbol)
		assert.Equal(t, first.TopRecommendations[i].TotalScore, second.TopRecommendations[i].TotalScore)
	}
	if first.Portfolio != nil {
		assert.Equal(t, first.Portfolio.Weights, second.Portfolio.Weights)
	}
}

func TestScreenStableTieOrder(t *testing.T) {
	// AAA/BBB는 동일 프로파일이고 시총 상위 10% 버킷을 공유 → 완전 동점.
	// 동점이면 유니버스 순서가 유지되어야 한다.
	top := func(symbol string) contracts.StockRecord {
		return contracts.StockRecord{
			Symbol:             symbol,
			Name:               symbol,
			Sector:             "반도체",
			MarketCap:          2_000_000,
			ROE3YAvg:           20,
			NetProfitMargin:    10,
			MarketCapGrowth3Y:  15,
			EquityGrowth3Y:     5,
			FCFProjection5YSum: 3_000_000,
			PER:                10,
			PBR:                1.0,
		}
	}
	stocks := []contracts.StockRecord{top("AAA"), top("BBB")}
	for i := 0; i < 8; i++ {
		stocks = append(stocks, contracts.StockRecord{
			Symbol:             string(rune('C'+i)) + "00",
			Name:               "기타",
			Sector:             "금융",
			MarketCap:          float64(1_000_000 - i*50_000),
			ROE3YAvg:           4,
			NetProfitMargin:    1,
			MarketCapGrowth3Y:  -10,
			FCFProjection5YSum: 100_000,
			PER:                40,
			PBR:                4.0,
		})
	}
	s := newTestScreener(t, &fixedUniverse{stocks: stocks})

	req := defaultRequest()
	req.MinScore = 0
	req.IncludeESG = false
	req.IncludeRiskAnalysis = false
	req.IncludePortfolio = false

	result, err := s.Screen(context.Background(), req)
	require.NoError(t, err)
	require.GreaterOrEqual(t, len(result.TopRecommendations), 2)

	assert.Equal(t, "AAA", result.TopRecommendations[0].Symbol)
	assert.Equal(t, "BBB", result.TopRecommendations[1].Symbol)
	assert.Equal(t, result.TopRecommendations[0].TotalScore, result.TopRecommendations[1].TotalScore)
}

func TestScreenSkipsInvalidStocks(t *testing.T) {
	provider := &fixedUniverse{stocks: []contracts.StockRecord{
		{Symbol: "", Name: "빈코드"},
		{Symbol: "XXX", Name: "정상", Sector: "금융", MarketCap: 1_000_000, ROE3YAvg: 10,
			NetProfitMargin: 5, FCFProjection5YSum: 800_000, PER: 12, PBR: 1.2},
		{Symbol: "YYY", Name: "시총없음", Sector: "금융"},
	}}
	s := newTestScreener(t, provider)

	req := defaultRequest()
	req.MinScore = 0
	req.IncludePortfolio = false

	result, err := s.Screen(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, 1, result.FilterCriteria.TotalAnalyzed)
	require.Len(t, result.TopRecommendations, 1)
	assert.Equal(t, "XXX", result.TopRecommendations[0].Symbol)
}

func TestScreenPortfolioAttached(t *testing.T) {
	s := newTestScreener(t, nil)

	req := defaultRequest()
	req.MinScore = 0
	req.MaxResults = 5

	result, err := s.Screen(context.Background(), req)
	require.NoError(t, err)

	require.NotNil(t, result.Portfolio)
	assert.InDelta(t, 1.0, result.Portfolio.TotalWeight(), 1e-6)
	assert.Len(t, result.Portfolio.Weights, len(result.TopRecommendations))
	assert.True(t, result.FilterCriteria.EnhancedFeatures.PortfolioOptimization)
}

func TestScreenCacheRoundTrip(t *testing.T) {
	log := logger.NewNop()
	cfg := strategyconfig.Default()
	memory := NewMemoryCache(cache.NewWithTTL(time.Minute))

	s := New(
		universe.NewMockProvider(log),
		scoring.NewEngine(log),
		scoring.NewCompositor(cfg, log),
		esg.NewAnalyzer(noESGData{}, log),
		risk.NewAnalyzer(nil, log),
		portfolio.NewOptimizer(nil, log),
		config.ScreeningConfig{CacheTTL: time.Minute},
		log,
		Options{Cache: memory},
	)

	req := defaultRequest()
	req.MinScore = 0

	first, err := s.Screen(context.Background(), req)
	require.NoError(t, err)

	cached, ok := memory.Get(context.Background(), req.CacheKey())
	require.True(t, ok)
	assert.Equal(t, first, cached)

	second, err := s.Screen(context.Background(), req)
	require.NoError(t, err)
	assert.Same(t, first, second)
}

func TestScreenDeadlinePartial(t *testing.T) {
	s := newTestScreener(t, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	req := defaultRequest()
	req.MinScore = 0
	req.IncludePortfolio = false

	result, err := s.Screen(ctx, req)
	require.NoError(t, err)

	assert.True(t, result.Partial)
	assert.True(t, result.NoQualifying)
	assert.Equal(t, 0, result.FilterCriteria.TotalAnalyzed)
}

func TestRiskScoreMapping(t *testing.T) {
	assert.Equal(t, 90.0, riskScoreFor(contracts.RiskGradeLow))
	assert.Equal(t, 70.0, riskScoreFor(contracts.RiskGradeMedium))
	assert.Equal(t, 50.0, riskScoreFor(contracts.RiskGradeHigh))
	assert.Equal(t, 70.0, riskScoreFor("unknown"))
}
