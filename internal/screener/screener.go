package screener

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/wonny/buffett/backend/internal/contracts"
	"github.com/wonny/buffett/backend/internal/scoring"
	"github.com/wonny/buffett/backend/internal/universe"
	"github.com/wonny/buffett/backend/pkg/config"
	"github.com/wonny/buffett/backend/pkg/logger"
)

// 리스크 등급 → 점수 변환 (낮은 리스크 = 높은 점수)
const (
	riskScoreLow     = 90
	riskScoreMedium  = 70
	riskScoreHigh    = 50
	riskScoreDefault = 70

	esgScoreDefault = 70
)

// ESGAnalyzer evaluates one stock's ESG profile.
type ESGAnalyzer interface {
	Analyze(ctx context.Context, symbol, sector string) (*contracts.ESGAssessment, error)
}

// RiskAnalyzer evaluates one stock's market risk.
type RiskAnalyzer interface {
	Analyze(ctx context.Context, symbol string) (*contracts.RiskAssessment, error)
}

// PortfolioOptimizer computes weights over the top ranked stocks.
type PortfolioOptimizer interface {
	Optimize(stocks []contracts.StockRecord) (*contracts.PortfolioOptimization, error)
}

// RunStore persists completed screening runs. nil이면 영속화 생략.
type RunStore interface {
	SaveRun(ctx context.Context, request *contracts.ScreeningRequest, result *contracts.ScreeningResult) error
}

// Screener orchestrates universe fetch, scoring, ranking and optimization
// ⭐ SSOT: 스크리닝 파이프라인 오케스트레이션은 여기서만
type Screener struct {
	mockUniverse universe.Provider
	liveUniverse universe.Provider

	engine     *scoring.Engine
	compositor *scoring.Compositor
	esg        ESGAnalyzer
	risk       RiskAnalyzer
	optimizer  PortfolioOptimizer

	cache Cache
	store RunStore

	cfg    config.ScreeningConfig
	logger *logger.Logger
}

// Options carries the optional collaborators of a Screener.
type Options struct {
	LiveUniverse universe.Provider
	Cache        Cache
	Store        RunStore
}

// New creates a screener over the given collaborators.
func New(
	mock universe.Provider,
	engine *scoring.Engine,
	compositor *scoring.Compositor,
	esg ESGAnalyzer,
	risk RiskAnalyzer,
	optimizer PortfolioOptimizer,
	cfg config.ScreeningConfig,
	log *logger.Logger,
	opts Options,
) *Screener {
	return &Screener{
		mockUniverse: mock,
		liveUniverse: opts.LiveUniverse,
		engine:       engine,
		compositor:   compositor,
		esg:          esg,
		risk:         risk,
		optimizer:    optimizer,
		cache:        opts.Cache,
		store:        opts.Store,
		cfg:          cfg,
		logger:       log,
	}
}

// Screen runs the full pipeline for one request.
// 유니버스가 비어 있거나 요청이 잘못된 경우만 에러. 종목 단위 실패는 건너뛰고
// 계속한다. 마감시한에 걸리면 완료된 종목만으로 랭킹하고 Partial 표시.
func (s *Screener) Screen(ctx context.Context, req *contracts.ScreeningRequest) (*contracts.ScreeningResult, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	cacheKey := req.CacheKey()
	if s.cache != nil {
		if cached, ok := s.cache.Get(ctx, cacheKey); ok {
			s.logger.WithField("cache_key", cacheKey).Debug("Screening cache hit")
			return cached, nil
		}
	}

	stocks, err := s.fetchUniverse(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(stocks) == 0 {
		return nil, fmt.Errorf("no stocks in universe for segment %s", req.MarketSegment)
	}

	scored, esgDetails, riskDetails, partial := s.scoreAll(ctx, req, stocks)

	// min_score 필터: 유니버스 순서 유지 → 동점 시 안정적 순위
	qualified := make([]contracts.StockRecord, 0, len(scored))
	for _, stock := range scored {
		if stock.TotalScore >= req.MinScore {
			qualified = append(qualified, stock)
		}
	}
	sort.SliceStable(qualified, func(i, j int) bool {
		return qualified[i].TotalScore > qualified[j].TotalScore
	})

	top := qualified
	if len(top) > req.MaxResults {
		top = top[:req.MaxResults]
	}

	var portfolio *contracts.PortfolioOptimization
	if req.IncludePortfolio && len(top) > 0 {
		portfolio, err = s.optimizer.Optimize(top)
		if err != nil {
			s.logger.WithError(err).Warn("portfolio optimization failed, omitting from result")
			portfolio = nil
		}
	}

	result := s.formatResult(req, top, portfolio, esgDetails, riskDetails, len(scored), len(qualified))
	result.Partial = partial

	if s.store != nil {
		if err := s.store.SaveRun(ctx, req, result); err != nil {
			s.logger.WithError(err).Warn("failed to persist screening run")
		}
	}

	if s.cache != nil && !partial {
		s.cache.Set(ctx, cacheKey, result, s.cfg.CacheTTL)
	}

	return result, nil
}

// fetchUniverse picks the live provider when requested and available.
func (s *Screener) fetchUniverse(ctx context.Context, req *contracts.ScreeningRequest) ([]contracts.StockRecord, error) {
	if req.UseRealData && s.liveUniverse != nil {
		stocks, err := s.liveUniverse.Universe(ctx, req.MarketSegment, req.Sectors)
		if err == nil {
			return stocks, nil
		}
		s.logger.WithError(err).Warn("live universe unavailable, falling back to mock")
	}
	return s.mockUniverse.Universe(ctx, req.MarketSegment, req.Sectors)
}

// scoreAll runs the sequential scoring pass over the fetched universe.
// 반환된 스톡 수가 입력보다 적으면 일부는 건너뛴 것.
func (s *Screener) scoreAll(
	ctx context.Context,
	req *contracts.ScreeningRequest,
	stocks []contracts.StockRecord,
) ([]contracts.StockRecord, map[string]*contracts.ESGAssessment, map[string]*contracts.RiskAssessment, bool) {
	scored := make([]contracts.StockRecord, 0, len(stocks))
	esgDetails := make(map[string]*contracts.ESGAssessment)
	riskDetails := make(map[string]*contracts.RiskAssessment)
	partial := false

	for _, stock := range stocks {
		if err := ctx.Err(); err != nil {
			s.logger.WithFields(map[string]interface{}{
				"done":  len(scored),
				"total": len(stocks),
			}).Warn("deadline reached, ranking completed stocks only")
			partial = true
			break
		}
		if stock.Symbol == "" || stock.MarketCap <= 0 {
			s.logger.WithField("symbol", stock.Symbol).Warn("skipping stock with invalid market data")
			continue
		}

		s.engine.ScoreAll(&stock, stocks)

		if req.IncludeESG {
			assessment, err := s.esg.Analyze(ctx, stock.Symbol, stock.Sector)
			if err != nil {
				s.logger.WithFields(map[string]interface{}{
					"symbol": stock.Symbol,
					"error":  err.Error(),
				}).Warn("ESG analysis failed, using default score")
				stock.ESGScore = esgScoreDefault
			} else {
				stock.ESGScore = assessment.OverallScore
				esgDetails[stock.Symbol] = assessment
			}
		}

		if req.IncludeRiskAnalysis {
			assessment, err := s.risk.Analyze(ctx, stock.Symbol)
			if err != nil {
				s.logger.WithFields(map[string]interface{}{
					"symbol": stock.Symbol,
					"error":  err.Error(),
				}).Warn("risk analysis failed, using default score")
				stock.RiskScore = riskScoreDefault
			} else {
				stock.RiskScore = riskScoreFor(assessment.RiskGrade)
				riskDetails[stock.Symbol] = assessment
			}
		}

		s.compositor.Compose(&stock, req.IncludeESG, req.IncludeRiskAnalysis)
		scored = append(scored, stock)
	}

	return scored, esgDetails, riskDetails, partial
}

func riskScoreFor(grade string) float64 {
	switch grade {
	case contracts.RiskGradeLow:
		return riskScoreLow
	case contracts.RiskGradeMedium:
		return riskScoreMedium
	case contracts.RiskGradeHigh:
		return riskScoreHigh
	default:
		return riskScoreDefault
	}
}

// Cache is the minimal cache contract the screener needs.
type Cache interface {
	Get(ctx context.Context, key string) (*contracts.ScreeningResult, bool)
	Set(ctx context.Context, key string, result *contracts.ScreeningResult, ttl time.Duration)
}
