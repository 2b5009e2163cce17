package universe

import (
	"context"
	"fmt"
	"sort"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/wonny/buffett/backend/internal/contracts"
	"github.com/wonny/buffett/backend/internal/external/dart"
	"github.com/wonny/buffett/backend/internal/external/krx"
	"github.com/wonny/buffett/backend/internal/external/naver"
	"github.com/wonny/buffett/backend/pkg/logger"
)

// liveUniverseCap limits per-stock enrichment scraping to the largest caps.
const liveUniverseCap = 50

// LiveProvider composes KRX market data with Naver/DART enrichment
// ⭐ SSOT: 실데이터 유니버스 구성은 여기서만
// 종목 단위 보강 실패는 mock으로 강등하고 배치는 계속된다. 유니버스 전체를
// 못 가져온 경우만 에러.
type LiveProvider struct {
	krx       *krx.Client
	naver     *naver.Client
	dart      *dart.Client
	corpCodes map[string]string // symbol → DART corp_code
	workers   int
	logger    *logger.Logger
}

// NewLiveProvider creates a live universe provider. corpCodes가 없는 종목의
// 재무 데이터는 mock으로 채운다.
func NewLiveProvider(krxClient *krx.Client, naverClient *naver.Client, dartClient *dart.Client, corpCodes map[string]string, workers int, log *logger.Logger) *LiveProvider {
	if workers < 1 {
		workers = 1
	}
	return &LiveProvider{
		krx:       krxClient,
		naver:     naverClient,
		dart:      dartClient,
		corpCodes: corpCodes,
		workers:   workers,
		logger:    log,
	}
}

// Universe fetches the market snapshot and enriches the largest stocks with
// valuation and financial data under bounded concurrency.
func (p *LiveProvider) Universe(ctx context.Context, segment string, sectors []string) ([]contracts.StockRecord, error) {
	markets, err := p.krx.FetchMarketRecords(ctx, segment)
	if err != nil {
		return nil, fmt.Errorf("fetch universe: %w", err)
	}
	if len(markets) == 0 {
		return nil, fmt.Errorf("empty universe for segment %s", segment)
	}

	sort.SliceStable(markets, func(i, j int) bool {
		return markets[i].MarketCap > markets[j].MarketCap
	})
	if len(markets) > liveUniverseCap {
		markets = markets[:liveUniverseCap]
	}

	stocks := make([]contracts.StockRecord, len(markets))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)
	for i, market := range markets {
		g.Go(func() error {
			stocks[i] = p.enrich(gctx, market)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	p.logger.WithFields(map[string]interface{}{
		"segment": segment,
		"count":   len(stocks),
	}).Info("Built live universe")

	return filterSectors(stocks, sectors), nil
}

// enrich fills valuation and financial fields for one stock. 어떤 단계가
// 실패해도 해당 영역만 mock으로 채운다.
func (p *LiveProvider) enrich(ctx context.Context, market contracts.MarketRecord) contracts.StockRecord {
	if fundamentals, err := p.naver.FetchFundamentals(ctx, market.Symbol); err == nil {
		market.Sector = fundamentals.Sector
		market.PER = fundamentals.PER
		market.PBR = fundamentals.PBR
		market.DividendYield = fundamentals.DividendYield
	} else {
		p.logger.WithFields(map[string]interface{}{
			"symbol": market.Symbol,
			"error":  err.Error(),
		}).Warn("valuation enrichment failed, using mock values")
		mock := generateStock(market.Symbol, market.Name, market.Sector)
		market.Sector = mock.Sector
		market.PER = mock.PER
		market.PBR = mock.PBR
		market.DividendYield = mock.DividendYield
	}

	financial := p.financials(ctx, market)

	return contracts.Join(market, financial)
}

// financials fetches real statements when a corp code is known, mock otherwise.
func (p *LiveProvider) financials(ctx context.Context, market contracts.MarketRecord) contracts.FinancialRecord {
	corpCode, ok := p.corpCodes[market.Symbol]
	if ok && p.dart != nil {
		year := fmt.Sprintf("%d", time.Now().Year()-1)
		record, err := p.dart.FetchFinancials(ctx, corpCode, year)
		if err == nil {
			// 공시에 없는 파생 지표는 mock으로 보충
			mock := mockFinancials(market.Symbol, market.MarketCap, market.SharesOutstanding)
			record.FCF = mock.FCF
			record.FCFPerShare = mock.FCFPerShare
			record.FCFProjection5YSum = mock.FCFProjection5YSum
			record.MarketCapGrowth3Y = mock.MarketCapGrowth3Y
			if record.EquityGrowth3Y == 0 {
				record.EquityGrowth3Y = mock.EquityGrowth3Y
			}
			return *record
		}
		p.logger.WithFields(map[string]interface{}{
			"symbol": market.Symbol,
			"error":  err.Error(),
		}).Warn("financial enrichment failed, using mock values")
	}
	return mockFinancials(market.Symbol, market.MarketCap, market.SharesOutstanding)
}
